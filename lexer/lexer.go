// Package lexer tokenizes martial DSL source text.
//
// One Lexer handles exactly one file; it has no cross-file knowledge and no
// side effects. The token stream is always terminated by a TokenEOF marker.
package lexer

import "unicode"

var keywords = map[string]TokenType{
	"roles":    TokenRoles,
	"state":    TokenState,
	"sequence": TokenSequence,
	"group":    TokenGroup,
}

// Lexer tokenizes a single martial DSL source file.
type Lexer struct {
	file  string
	input []rune
	pos   int
	line  int
	col   int
}

// New creates a lexer for the given source text. file is used in positions
// and error messages only.
func New(file, input string) *Lexer {
	return &Lexer{
		file:  file,
		input: []rune(input),
		line:  1,
		col:   1,
	}
}

func (l *Lexer) position() Position {
	return Position{File: l.file, Line: l.line, Column: l.col}
}

func (l *Lexer) peek() (rune, bool) {
	if l.pos < len(l.input) {
		return l.input[l.pos], true
	}
	return 0, false
}

func (l *Lexer) peekNext() (rune, bool) {
	if l.pos+1 < len(l.input) {
		return l.input[l.pos+1], true
	}
	return 0, false
}

func (l *Lexer) advance() (rune, bool) {
	ch, ok := l.peek()
	if !ok {
		return 0, false
	}
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) skipWhitespace() {
	for {
		ch, ok := l.peek()
		if !ok || !unicode.IsSpace(ch) {
			return
		}
		l.advance()
	}
}

// skipComment consumes a // comment up to (not including) the newline.
func (l *Lexer) skipComment() {
	l.advance()
	l.advance()
	for {
		ch, ok := l.peek()
		if !ok || ch == '\n' {
			return
		}
		l.advance()
	}
}

func (l *Lexer) lexIdent() Token {
	pos := l.position()
	start := l.pos
	for {
		ch, ok := l.peek()
		if !ok || !isIdentChar(ch) {
			break
		}
		l.advance()
	}
	literal := string(l.input[start:l.pos])
	if typ, ok := keywords[literal]; ok {
		return Token{Type: typ, Literal: literal, Pos: pos}
	}
	return Token{Type: TokenIdent, Literal: literal, Pos: pos}
}

// Next returns the next token from the input, or a *Error when the input
// matches no token rule. After an error the lexer state is undefined; the
// caller is expected to abandon the file.
func (l *Lexer) Next() (Token, error) {
	for {
		l.skipWhitespace()
		if ch, ok := l.peek(); ok && ch == '/' {
			if next, ok := l.peekNext(); ok && next == '/' {
				l.skipComment()
				continue
			}
		}
		break
	}

	pos := l.position()

	ch, ok := l.peek()
	if !ok {
		return Token{Type: TokenEOF, Pos: pos}, nil
	}

	switch {
	case ch == '{':
		l.advance()
		return Token{Type: TokenLBrace, Literal: "{", Pos: pos}, nil
	case ch == '}':
		l.advance()
		return Token{Type: TokenRBrace, Literal: "}", Pos: pos}, nil
	case ch == '[':
		l.advance()
		return Token{Type: TokenLBracket, Literal: "[", Pos: pos}, nil
	case ch == ']':
		l.advance()
		return Token{Type: TokenRBracket, Literal: "]", Pos: pos}, nil
	case ch == ':':
		l.advance()
		return Token{Type: TokenColon, Literal: ":", Pos: pos}, nil
	case ch == ',':
		l.advance()
		return Token{Type: TokenComma, Literal: ",", Pos: pos}, nil
	case ch == '-':
		l.advance()
		if next, ok := l.peek(); ok && next == '>' {
			l.advance()
			return Token{Type: TokenArrow, Literal: "->", Pos: pos}, nil
		}
		return Token{}, &Error{Char: ch, Expected: "'>' to form '->'", Pos: pos}
	case isIdentStart(ch):
		return l.lexIdent(), nil
	}

	return Token{}, &Error{Char: ch, Pos: pos}
}

// Tokenize consumes the entire input and returns the ordered token sequence
// terminated by a TokenEOF marker, or the first lexical error.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}
