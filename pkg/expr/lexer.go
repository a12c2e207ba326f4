// Package expr is a small expression frontend over the arithmetic core:
// a tokenizer and parser for literal arithmetic expressions and an
// evaluator that drives the vm dispatcher. It exists for the CLI and for
// exercising the core end to end; it is not a full language.
package expr

import (
	"strings"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/unicode/norm"

	"cinder/pkg/errors"
)

// Token patterns, all anchored with \G so a match must start exactly at
// the scan position. The BigInt pattern is tried before the number
// pattern so that "123n" is not split into "123" and an identifier.
var (
	bigIntPattern = regexp2.MustCompile(`\G(?:0[xX][0-9a-fA-F]+|0[oO][0-7]+|0[bB][01]+|[0-9]+)n`, 0)
	numberPattern = regexp2.MustCompile(`\G(?:0[xX][0-9a-fA-F]+|0[oO][0-7]+|0[bB][01]+|(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?)`, 0)
	stringPattern = regexp2.MustCompile(`\G(?:"(?:[^"\\\r\n]|\\.)*"|'(?:[^'\\\r\n]|\\.)*')`, 0)
	identPattern  = regexp2.MustCompile(`\G[A-Za-z_$][A-Za-z0-9_$]*`, 0)
)

type Lexer struct {
	source    string
	pos       int
	line      int
	lineStart int
}

// NewLexer normalizes the input to NFC before scanning so that
// visually identical source always tokenizes the same way.
func NewLexer(source string) *Lexer {
	return &Lexer{source: norm.NFC.String(source), line: 1}
}

func (l *Lexer) position(start, end int) errors.Position {
	return errors.Position{
		Line:     l.line,
		Column:   start - l.lineStart + 1,
		StartPos: start,
		EndPos:   end,
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.source) {
		switch l.source[l.pos] {
		case ' ', '\t', '\r':
			l.pos++
		case '\n':
			l.pos++
			l.line++
			l.lineStart = l.pos
		default:
			return
		}
	}
}

// matchAt runs an anchored pattern at the current scan position and
// returns the matched text.
func (l *Lexer) matchAt(pattern *regexp2.Regexp) (string, bool) {
	m, err := pattern.FindStringMatchStartingAt(l.source, l.pos)
	if err != nil || m == nil || m.Index != l.pos {
		return "", false
	}
	return m.String(), true
}

func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	start := l.pos

	if l.pos >= len(l.source) {
		return Token{Type: TokenEOF, Pos: l.position(start, start)}
	}

	for _, candidate := range []struct {
		pattern *regexp2.Regexp
		typ     TokenType
	}{
		{bigIntPattern, TokenBigInt},
		{numberPattern, TokenNumber},
		{stringPattern, TokenString},
		{identPattern, TokenIdent},
	} {
		if text, ok := l.matchAt(candidate.pattern); ok {
			l.pos += len(text)
			return Token{Type: candidate.typ, Literal: text, Pos: l.position(start, l.pos)}
		}
	}

	makeToken := func(typ TokenType, width int) Token {
		literal := l.source[start : start+width]
		l.pos += width
		return Token{Type: typ, Literal: literal, Pos: l.position(start, l.pos)}
	}

	switch l.source[l.pos] {
	case '+':
		return makeToken(TokenPlus, 1)
	case '-':
		return makeToken(TokenMinus, 1)
	case '*':
		if strings.HasPrefix(l.source[l.pos:], "**") {
			return makeToken(TokenStarStar, 2)
		}
		return makeToken(TokenStar, 1)
	case '/':
		return makeToken(TokenSlash, 1)
	case '%':
		return makeToken(TokenPercent, 1)
	case '(':
		return makeToken(TokenLParen, 1)
	case ')':
		return makeToken(TokenRParen, 1)
	}
	return makeToken(TokenIllegal, 1)
}
