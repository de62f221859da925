package lexer

import "fmt"

// TokenType represents the type of a lexer token.
type TokenType int

const (
	TokenEOF TokenType = iota

	// Keywords
	TokenRoles    // roles
	TokenState    // state
	TokenSequence // sequence
	TokenGroup    // group

	TokenIdent // Mount, Top, GuardPass, ...

	// Punctuation
	TokenLBrace   // {
	TokenRBrace   // }
	TokenLBracket // [
	TokenRBracket // ]
	TokenColon    // :
	TokenComma    // ,
	TokenArrow    // ->
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of file"
	case TokenRoles:
		return "'roles'"
	case TokenState:
		return "'state'"
	case TokenSequence:
		return "'sequence'"
	case TokenGroup:
		return "'group'"
	case TokenIdent:
		return "identifier"
	case TokenLBrace:
		return "'{'"
	case TokenRBrace:
		return "'}'"
	case TokenLBracket:
		return "'['"
	case TokenRBracket:
		return "']'"
	case TokenColon:
		return "':'"
	case TokenComma:
		return "','"
	case TokenArrow:
		return "'->'"
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Position locates a token or error in source text. Line and Column are
// 1-based. File is the name the lexer was created with and may be empty
// when lexing in-memory snippets.
type Position struct {
	File   string `json:"file,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Token is a single lexical unit with its source position.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

func (t Token) String() string {
	if t.Type == TokenIdent {
		return fmt.Sprintf("identifier %q", t.Literal)
	}
	return t.Type.String()
}

// Error is a lexical error: input matched no token rule.
type Error struct {
	Char     rune
	Expected string // non-empty when a multi-rune token was cut short
	Pos      Position
}

func (e *Error) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("%s: unexpected character %q, expected %s", e.Pos, e.Char, e.Expected)
	}
	return fmt.Sprintf("%s: unexpected character %q", e.Pos, e.Char)
}
