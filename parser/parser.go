// Package parser implements Ironwood's recursive-descent grammar:
// precedence climbing for expressions, Scratch-style multi-word forms
// recognized by bounded look-ahead, and the isName predicate that lets
// contextual keywords stand in for plain identifiers.
package parser

import (
	"fmt"

	"github.com/TheServer-lab/ironwood/ast"
	"github.com/TheServer-lab/ironwood/lexer"
)

// Error is a fatal parse fault carrying the source line and offending
// lexeme; the parser never attempts error recovery.
type Error struct {
	Line    int
	Lexeme  string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s (near %q)", e.Line, e.Message, e.Lexeme)
}

// Parser walks a flat token slice. A fresh Parser is constructed for the
// top-level source, for every loaded module, and for every interpolated
// string fragment — there is no shared parser state across files.
type Parser struct {
	toks []ast.Token
	pos  int
}

// Parse lexes and parses a complete source buffer into a statement list.
func Parse(src string) ([]ast.Stmt, error) {
	toks, err := lexer.New(src).Tokenize()
	if err != nil {
		return nil, err
	}
	return NewFromTokens(toks).ParseProgram()
}

func NewFromTokens(toks []ast.Token) *Parser { return &Parser{toks: toks} }

func (p *Parser) cur() ast.Token  { return p.toks[p.pos] }
func (p *Parser) curKind() ast.Kind { return p.toks[p.pos].Kind }

func (p *Parser) at(off int) ast.Token {
	i := p.pos + off
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) advance() ast.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(k ast.Kind) bool { return p.curKind() == k }

func (p *Parser) match(k ast.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(k ast.Kind) (ast.Token, error) {
	if !p.check(k) {
		t := p.cur()
		return t, &Error{Line: t.Line, Lexeme: t.String(), Message: "unexpected token"}
	}
	return p.advance(), nil
}

// skipNewlines consumes zero or more NEWLINE tokens, used between
// statements and around block delimiters where blank lines are allowed.
func (p *Parser) skipNewlines() {
	for p.check(ast.NEWLINE) {
		p.advance()
	}
}

// isName reports whether the current token may stand in a name position:
// any IDENT, or a keyword flagged contextual in ast.Contextual.
func (p *Parser) isName() bool {
	k := p.curKind()
	return k == ast.IDENT || ast.Contextual[k]
}

// nameText returns the textual name of the current isName token without
// advancing.
func (p *Parser) nameText() string { return p.cur().Lexeme }

// ParseProgram parses a full statement list up to EOF.
func (p *Parser) ParseProgram() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	p.skipNewlines()
	for !p.check(ast.EOF) {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		if !p.check(ast.EOF) {
			if _, err := p.expect(ast.NEWLINE); err != nil {
				return nil, err
			}
			p.skipNewlines()
		}
	}
	return stmts, nil
}

// parseBlockUntil parses statements until the current token is one of the
// given terminators (which are NOT consumed), skipping blank lines freely.
func (p *Parser) parseBlockUntil(terms ...ast.Kind) ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	p.skipNewlines()
	for {
		for _, t := range terms {
			if p.check(t) {
				return stmts, nil
			}
		}
		if p.check(ast.EOF) {
			return nil, &Error{Line: p.cur().Line, Lexeme: p.cur().String(), Message: "unexpected end of input, expected 'end'"}
		}
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		p.skipNewlines()
	}
}
