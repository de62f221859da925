package compile

import (
	"github.com/matlang/go-matlang/ast"
	"github.com/matlang/go-matlang/lexer"
	"github.com/matlang/go-matlang/parser"
)

// parseOne tokenizes and parses a single file. Lexing and parsing of one
// file depend on nothing outside it, so files could be handled in parallel;
// semantic merging is the synchronization barrier either way, and a plain
// loop has been fast enough for every system seen so far.
func parseOne(file SourceFile) (*ast.File, error) {
	tokens, err := lexer.New(file.Name, file.Content).Tokenize()
	if err != nil {
		return nil, err
	}
	decls, err := parser.New(tokens).Parse()
	if err != nil {
		return nil, err
	}
	return &ast.File{Name: file.Name, Decls: decls}, nil
}
