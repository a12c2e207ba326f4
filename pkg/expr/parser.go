package expr

import (
	"fmt"
	"strconv"
	"strings"

	"cinder/pkg/bigint"
	"cinder/pkg/errors"
)

// --- AST ---

type Node interface {
	Pos() errors.Position
}

type NumberLiteral struct {
	Value    float64
	Position errors.Position
}

func (n *NumberLiteral) Pos() errors.Position { return n.Position }

type BigIntLiteral struct {
	Magnitude *bigint.Magnitude
	Position  errors.Position
}

func (n *BigIntLiteral) Pos() errors.Position { return n.Position }

type StringLiteral struct {
	Value    string
	Position errors.Position
}

func (n *StringLiteral) Pos() errors.Position { return n.Position }

// Identifier covers the handful of value keywords the frontend knows:
// true, false, null, undefined, NaN, Infinity.
type Identifier struct {
	Name     string
	Position errors.Position
}

func (n *Identifier) Pos() errors.Position { return n.Position }

type UnaryExpr struct {
	Op      Token
	Operand Node
}

func (n *UnaryExpr) Pos() errors.Position { return n.Op.Pos }

type BinaryExpr struct {
	Op          Token
	Left, Right Node
}

func (n *BinaryExpr) Pos() errors.Position { return n.Op.Pos }

// --- Parser ---

// Binding powers, lowest first. Exponentiation is right-associative.
const (
	precLowest = iota
	precAdditive
	precMultiplicative
	precExponent
	precUnary
)

func tokenPrecedence(tt TokenType) int {
	switch tt {
	case TokenPlus, TokenMinus:
		return precAdditive
	case TokenStar, TokenSlash, TokenPercent:
		return precMultiplicative
	case TokenStarStar:
		return precExponent
	default:
		return precLowest
	}
}

type Parser struct {
	lexer     *Lexer
	cur, peek Token
}

func NewParser(lexer *Lexer) *Parser {
	p := &Parser{lexer: lexer}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) syntaxError(pos errors.Position, format string, args ...interface{}) *errors.SyntaxError {
	return &errors.SyntaxError{Position: pos, Msg: fmt.Sprintf(format, args...)}
}

// Parse consumes the whole input as a single expression.
func (p *Parser) Parse() (Node, error) {
	node, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if p.cur.Type != TokenEOF {
		return nil, p.syntaxError(p.cur.Pos, "unexpected %s after expression", p.cur.Type)
	}
	return node, nil
}

func (p *Parser) parseExpression(minPrecedence int) (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		precedence := tokenPrecedence(p.cur.Type)
		if precedence <= minPrecedence {
			return left, nil
		}
		op := p.cur
		p.advance()

		// Right-associative operators recurse at one level below their
		// own precedence so an equal-precedence operator binds rightward.
		nextMin := precedence
		if op.Type == TokenStarStar {
			nextMin = precedence - 1
		}
		right, err := p.parseExpression(nextMin)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() (Node, error) {
	if p.cur.Type == TokenPlus || p.cur.Type == TokenMinus {
		op := p.cur
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Node, error) {
	tok := p.cur
	switch tok.Type {
	case TokenNumber:
		value, err := parseNumberLiteral(tok.Literal)
		if err != nil {
			return nil, p.syntaxError(tok.Pos, "invalid number literal %q", tok.Literal)
		}
		p.advance()
		return &NumberLiteral{Value: value, Position: tok.Pos}, nil

	case TokenBigInt:
		magnitude, err := parseBigIntLiteral(tok.Literal)
		if err != nil {
			return nil, p.syntaxError(tok.Pos, "invalid BigInt literal %q", tok.Literal).CausedBy(err)
		}
		p.advance()
		return &BigIntLiteral{Magnitude: magnitude, Position: tok.Pos}, nil

	case TokenString:
		p.advance()
		return &StringLiteral{Value: unquoteString(tok.Literal), Position: tok.Pos}, nil

	case TokenIdent:
		switch tok.Literal {
		case "true", "false", "null", "undefined", "NaN", "Infinity":
			p.advance()
			return &Identifier{Name: tok.Literal, Position: tok.Pos}, nil
		}
		return nil, p.syntaxError(tok.Pos, "unknown identifier %q", tok.Literal)

	case TokenLParen:
		p.advance()
		inner, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if p.cur.Type != TokenRParen {
			return nil, p.syntaxError(p.cur.Pos, "expected ), got %s", p.cur.Type)
		}
		p.advance()
		return inner, nil

	case TokenEOF:
		return nil, p.syntaxError(tok.Pos, "unexpected end of expression")

	default:
		return nil, p.syntaxError(tok.Pos, "unexpected %s", tok.Type)
	}
}

func parseNumberLiteral(literal string) (float64, error) {
	if len(literal) >= 2 && literal[0] == '0' {
		switch literal[1] {
		case 'x', 'X':
			v, err := strconv.ParseUint(literal[2:], 16, 64)
			return float64(v), err
		case 'o', 'O':
			v, err := strconv.ParseUint(literal[2:], 8, 64)
			return float64(v), err
		case 'b', 'B':
			v, err := strconv.ParseUint(literal[2:], 2, 64)
			return float64(v), err
		}
	}
	return strconv.ParseFloat(literal, 64)
}

func parseBigIntLiteral(literal string) (*bigint.Magnitude, error) {
	digits := strings.TrimSuffix(literal, "n")
	radix := uint32(10)
	if len(digits) >= 2 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X':
			radix, digits = 16, digits[2:]
		case 'o', 'O':
			radix, digits = 8, digits[2:]
		case 'b', 'B':
			radix, digits = 2, digits[2:]
		}
	}
	return bigint.FromString(digits, radix)
}

// unquoteString strips the surrounding quotes and resolves the common
// escapes. The lexer has already validated the overall shape.
func unquoteString(literal string) string {
	body := literal[1 : len(literal)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var out strings.Builder
	out.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			out.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			out.WriteByte('\n')
		case 't':
			out.WriteByte('\t')
		case 'r':
			out.WriteByte('\r')
		case '0':
			out.WriteByte(0)
		default:
			out.WriteByte(body[i])
		}
	}
	return out.String()
}
