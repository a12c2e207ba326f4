package expr

import "cinder/pkg/errors"

type TokenType uint8

const (
	TokenEOF TokenType = iota
	TokenIllegal

	TokenNumber
	TokenBigInt
	TokenString
	TokenIdent

	TokenPlus
	TokenMinus
	TokenStar
	TokenStarStar
	TokenSlash
	TokenPercent
	TokenLParen
	TokenRParen
)

func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return "illegal"
	case TokenNumber:
		return "number"
	case TokenBigInt:
		return "bigint"
	case TokenString:
		return "string"
	case TokenIdent:
		return "identifier"
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenStarStar:
		return "**"
	case TokenSlash:
		return "/"
	case TokenPercent:
		return "%"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	default:
		return "unknown"
	}
}

type Token struct {
	Type    TokenType
	Literal string
	Pos     errors.Position
}
