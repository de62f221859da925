// Package parser builds declaration lists from martial DSL token streams.
//
// Parsing is strictly single pass with one token of lookahead and performs
// no reference checking: a step endpoint like Mount[Top] is recorded as raw
// identifiers and resolved later by the semantic analyzer, so syntax errors
// are reportable without the merged role/state universe.
package parser

import (
	"fmt"

	"github.com/matlang/go-matlang/ast"
	"github.com/matlang/go-matlang/lexer"
)

// ErrorKind classifies parse errors.
type ErrorKind int

const (
	// UnexpectedToken is the general expected-vs-found failure.
	UnexpectedToken ErrorKind = iota
	// UnterminatedBlock means the file ended inside a { ... } list.
	UnterminatedBlock
	// MissingNodeRole means a state reference lacked its [Role] suffix.
	MissingNodeRole
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case UnterminatedBlock:
		return "unterminated block"
	case MissingNodeRole:
		return "missing node role"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a structural violation in the token sequence. Parsing stops at
// the first one; other files of the same system are unaffected.
type Error struct {
	Kind     ErrorKind
	Expected string
	Found    lexer.Token
	Pos      lexer.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: expected %s, got %s", e.Pos, e.Kind, e.Expected, e.Found)
}

// Parser consumes one file's token sequence.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New creates a parser over a token sequence produced by lexer.Tokenize.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseSource lexes and parses one file in a single call. The returned error
// is a *lexer.Error or a *Error.
func ParseSource(name, src string) (*ast.File, error) {
	tokens, err := lexer.New(name, src).Tokenize()
	if err != nil {
		return nil, err
	}
	decls, err := New(tokens).Parse()
	if err != nil {
		return nil, err
	}
	return &ast.File{Name: name, Decls: decls}, nil
}

func (p *Parser) peek() lexer.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	if len(p.tokens) > 0 {
		return p.tokens[len(p.tokens)-1]
	}
	return lexer.Token{Type: lexer.TokenEOF, Pos: lexer.Position{Line: 1, Column: 1}}
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) errorf(kind ErrorKind, expected string) *Error {
	found := p.peek()
	return &Error{Kind: kind, Expected: expected, Found: found, Pos: found.Pos}
}

func (p *Parser) expect(typ lexer.TokenType) (lexer.Token, *Error) {
	if p.peek().Type != typ {
		return lexer.Token{}, p.errorf(UnexpectedToken, typ.String())
	}
	return p.advance(), nil
}

func (p *Parser) expectIdent() (string, *Error) {
	if p.peek().Type != lexer.TokenIdent {
		return "", p.errorf(UnexpectedToken, "identifier")
	}
	return p.advance().Literal, nil
}

// Parse parses the whole token sequence into an ordered declaration list,
// stopping at the first structural violation.
//
// Grammar: program ::= declaration*
func (p *Parser) Parse() ([]ast.Decl, error) {
	var decls []ast.Decl
	for p.peek().Type != lexer.TokenEOF {
		decl, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

// declaration ::= roles_decl | state_decl | sequence_decl | group_decl
func (p *Parser) parseDecl() (ast.Decl, *Error) {
	switch p.peek().Type {
	case lexer.TokenRoles:
		return p.parseRoles()
	case lexer.TokenState:
		return p.parseState()
	case lexer.TokenSequence:
		return p.parseSequence()
	case lexer.TokenGroup:
		return p.parseGroup()
	}
	return nil, p.errorf(UnexpectedToken, "declaration ('roles', 'state', 'sequence', or 'group')")
}

// roles_decl ::= "roles" "{" IDENT { "," IDENT } "}"
func (p *Parser) parseRoles() (ast.Roles, *Error) {
	p.advance() // roles
	names, err := p.parseIdentBlock()
	if err != nil {
		return ast.Roles{}, err
	}
	return ast.Roles{Names: names}, nil
}

// state_decl ::= "state" IDENT [ "roles" "{" IDENT { "," IDENT } "}" ]
func (p *Parser) parseState() (ast.State, *Error) {
	p.advance() // state
	name, err := p.expectIdent()
	if err != nil {
		return ast.State{}, err
	}

	var roles []string
	if p.peek().Type == lexer.TokenRoles {
		p.advance()
		roles, err = p.parseIdentBlock()
		if err != nil {
			return ast.State{}, err
		}
	}

	return ast.State{Name: name, Roles: roles}, nil
}

// sequence_decl ::= "sequence" IDENT ":" sequence_step+
func (p *Parser) parseSequence() (ast.Sequence, *Error) {
	p.advance() // sequence
	name, err := p.expectIdent()
	if err != nil {
		return ast.Sequence{}, err
	}
	if _, err := p.expect(lexer.TokenColon); err != nil {
		return ast.Sequence{}, err
	}

	var steps []ast.Step
	step, err := p.parseStep()
	if err != nil {
		return ast.Sequence{}, err
	}
	steps = append(steps, step)

	// Every identifier after a complete step starts the next step; any
	// keyword starts the next declaration.
	for p.peek().Type == lexer.TokenIdent {
		step, err := p.parseStep()
		if err != nil {
			return ast.Sequence{}, err
		}
		steps = append(steps, step)
	}

	return ast.Sequence{Name: name, Steps: steps}, nil
}

// sequence_step ::= IDENT ":" node_ref "->" node_ref
func (p *Parser) parseStep() (ast.Step, *Error) {
	action, err := p.expectIdent()
	if err != nil {
		return ast.Step{}, err
	}
	if _, err := p.expect(lexer.TokenColon); err != nil {
		return ast.Step{}, err
	}
	from, err := p.parseNodeRef()
	if err != nil {
		return ast.Step{}, err
	}
	if _, err := p.expect(lexer.TokenArrow); err != nil {
		return ast.Step{}, err
	}
	to, err := p.parseNodeRef()
	if err != nil {
		return ast.Step{}, err
	}
	return ast.Step{Action: action, From: from, To: to}, nil
}

// node_ref ::= IDENT "[" IDENT "]"
func (p *Parser) parseNodeRef() (ast.NodeRef, *Error) {
	state, err := p.expectIdent()
	if err != nil {
		return ast.NodeRef{}, err
	}
	if p.peek().Type != lexer.TokenLBracket {
		return ast.NodeRef{}, p.errorf(MissingNodeRole, "'[' introducing the node's role")
	}
	p.advance()
	role, err := p.expectIdent()
	if err != nil {
		return ast.NodeRef{}, err
	}
	if _, err := p.expect(lexer.TokenRBracket); err != nil {
		return ast.NodeRef{}, err
	}
	return ast.NodeRef{State: state, Role: role}, nil
}

// group_decl ::= "group" IDENT "{" IDENT { "," IDENT } "}"
func (p *Parser) parseGroup() (ast.Group, *Error) {
	p.advance() // group
	name, err := p.expectIdent()
	if err != nil {
		return ast.Group{}, err
	}
	states, err := p.parseIdentBlock()
	if err != nil {
		return ast.Group{}, err
	}
	return ast.Group{Name: name, States: states}, nil
}

// parseIdentBlock parses "{" IDENT { "," IDENT } "}". Hitting end of file
// inside the braces is reported as an unterminated block.
func (p *Parser) parseIdentBlock() ([]string, *Error) {
	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}

	var names []string
	for {
		if p.peek().Type == lexer.TokenEOF {
			return nil, p.errorf(UnterminatedBlock, "'}' closing the block")
		}
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		names = append(names, name)

		switch p.peek().Type {
		case lexer.TokenComma:
			p.advance()
		case lexer.TokenRBrace:
			p.advance()
			return names, nil
		case lexer.TokenEOF:
			return nil, p.errorf(UnterminatedBlock, "',' or '}'")
		default:
			return nil, p.errorf(UnexpectedToken, "',' or '}'")
		}
	}
}
