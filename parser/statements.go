package parser

import "github.com/TheServer-lab/ironwood/ast"

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.curKind() {
	case ast.LET:
		return p.parseLet()
	case ast.SET:
		return p.parseSet()
	case ast.ADD:
		if isAddStatement := p.peekAddStatement(); isAddStatement {
			return p.parseAddTo()
		}
	case ast.SAY:
		return p.parseSay()
	case ast.ASK:
		return p.parseAskStmt()
	case ast.PAUSE:
		p.advance()
		return &ast.PauseStmt{}, nil
	case ast.CALL:
		return p.parseCall()
	case ast.IF:
		return p.parseIfStmt()
	case ast.WHILE:
		return p.parseWhile()
	case ast.FOR:
		return p.parseForEach()
	case ast.BREAK:
		p.advance()
		return &ast.BreakStmt{}, nil
	case ast.CONTINUE:
		p.advance()
		return &ast.ContinueStmt{}, nil
	case ast.RETURN:
		return p.parseReturn()
	case ast.FUNCTION:
		if p.at(1).Kind != ast.LPAREN {
			return p.parseFunctionStmt()
		}
	case ast.CLASS:
		return p.parseClassStmt()
	case ast.TRY:
		return p.parseTry()
	case ast.THROW:
		return p.parseThrow()
	case ast.GET:
		return p.parseGet()
	case ast.WRITE:
		return p.parseWriteFile()
	case ast.APPEND:
		if p.peekAppendStatement() {
			return p.parseAppendFile()
		}
	}

	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: x}, nil
}

// peekAddStatement distinguishes the `add VALUE to TARGET` statement from
// `add` used as a plain name in expression position: the statement form
// is recognized by bounded look-ahead on whatever follows, since `add` at
// the start of a statement with anything following other than an operator
// continuation is overwhelmingly the Scratch-style form. The one-token
// look-ahead the grammar needs is simply "does a `to` appear before the
// end of this line" — checked cheaply by scanning forward without
// consuming.
func (p *Parser) peekAddStatement() bool {
	depth := 0
	for i := p.pos + 1; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case ast.NEWLINE, ast.EOF:
			return false
		case ast.LPAREN, ast.LBRACKET, ast.LBRACE:
			depth++
		case ast.RPAREN, ast.RBRACKET, ast.RBRACE:
			depth--
		case ast.TO:
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

func (p *Parser) peekAppendStatement() bool {
	return p.peekAddStatement() // same "... to ..." shape, same scan.
}

func (p *Parser) parseLet() (ast.Stmt, error) {
	p.advance() // let
	if !p.isName() {
		t := p.cur()
		return nil, &Error{Line: t.Line, Lexeme: t.String(), Message: "expected name after 'let'"}
	}
	name := p.advance().Lexeme
	if _, err := p.expect(ast.ASSIGN); err != nil {
		return nil, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.LetStmt{Name: name, Value: val}, nil
}

func (p *Parser) parseSet() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance() // set
	target, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.ASSIGN); err != nil {
		return nil, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.SetStmt{Target: target, Value: val, Line: line}, nil
}

func (p *Parser) parseAddTo() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance() // add
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.TO); err != nil {
		return nil, err
	}
	target, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.AddToStmt{Value: val, Target: target, Line: line}, nil
}

func (p *Parser) parseSay() (ast.Stmt, error) {
	p.advance() // say
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.SayStmt{X: x}, nil
}

// parseAskStmt parses `ask NAME [PROMPT]`: a prompt-then-read-then-assign
// shorthand, distinct from the `ask [PROMPT]` expression form reachable
// only from a non-statement-leading position (e.g. `let x = ask "name?"`).
func (p *Parser) parseAskStmt() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance() // ask
	if !p.isName() {
		t := p.cur()
		return nil, &Error{Line: t.Line, Lexeme: t.String(), Message: "expected variable name after 'ask'"}
	}
	name := p.advance().Lexeme
	var prompt ast.Expr
	if !p.stmtEnd() {
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		prompt = x
	}
	return &ast.AskStmt{Var: name, Prompt: prompt, Line: line}, nil
}

func (p *Parser) parseCall() (ast.Stmt, error) {
	p.advance() // call
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.CallStmt{X: x}, nil
}

// parseIfStmt handles both the inline short form — `if COND then STMT`,
// terminated by end of line, no `end` keyword — and the block form —
// `if COND NEWLINE BODY [else BODY] end`. The short form is what the
// fibonacci idiom (`if n < 2 then return n`) relies on.
func (p *Parser) parseIfStmt() (ast.Stmt, error) {
	p.advance() // if
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.match(ast.THEN) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		return &ast.IfStmt{Cond: cond, Then: []ast.Stmt{stmt}}, nil
	}
	if _, err := p.expect(ast.NEWLINE); err != nil {
		return nil, err
	}
	thenBody, err := p.parseBlockUntil(ast.ELSE, ast.END)
	if err != nil {
		return nil, err
	}
	var elseBody []ast.Stmt
	if p.match(ast.ELSE) {
		if p.match(ast.IF) {
			// `else if` chains to another if-statement as the sole
			// statement of the else body.
			p.pos-- // rewind the consumed IF token so parseIfStmt sees it
			elseIf, err := p.parseIfStmt()
			if err != nil {
				return nil, err
			}
			elseBody = []ast.Stmt{elseIf}
			return &ast.IfStmt{Cond: cond, Then: thenBody, Else: elseBody}, nil
		}
		if _, err := p.expect(ast.NEWLINE); err != nil {
			return nil, err
		}
		elseBody, err = p.parseBlockUntil(ast.END)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(ast.END); err != nil {
		return nil, err
	}
	return &ast.IfStmt{Cond: cond, Then: thenBody, Else: elseBody}, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	p.advance() // while
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.NEWLINE); err != nil {
		return nil, err
	}
	body, err := p.parseBlockUntil(ast.END)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.END); err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body}, nil
}

func (p *Parser) parseForEach() (ast.Stmt, error) {
	p.advance() // for
	if _, err := p.expect(ast.EACH); err != nil {
		return nil, err
	}
	if !p.isName() {
		t := p.cur()
		return nil, &Error{Line: t.Line, Lexeme: t.String(), Message: "expected loop variable name"}
	}
	varName := p.advance().Lexeme
	if _, err := p.expect(ast.IN); err != nil {
		return nil, err
	}
	list, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.NEWLINE); err != nil {
		return nil, err
	}
	body, err := p.parseBlockUntil(ast.END)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.END); err != nil {
		return nil, err
	}
	return &ast.ForEachStmt{Var: varName, List: list, Body: body}, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	p.advance() // return
	if p.check(ast.NEWLINE) || p.check(ast.EOF) {
		return &ast.ReturnStmt{}, nil
	}
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{X: x}, nil
}

func (p *Parser) parseFunctionStmt() (ast.Stmt, error) {
	p.advance() // function
	if !p.isName() {
		t := p.cur()
		return nil, &Error{Line: t.Line, Lexeme: t.String(), Message: "expected function name"}
	}
	name := p.advance().Lexeme
	fn, err := p.parseFuncLitTail()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionStmt{Name: name, Fn: fn}, nil
}

// parseFuncLitTail parses `(params) BODY end`, with the leading `function`
// (and any name) already consumed.
func (p *Parser) parseFuncLitTail() (*ast.FuncLit, error) {
	line := p.cur().Line
	if _, err := p.expect(ast.LPAREN); err != nil {
		return nil, err
	}
	var params []string
	for !p.check(ast.RPAREN) {
		if !p.isName() {
			t := p.cur()
			return nil, &Error{Line: t.Line, Lexeme: t.String(), Message: "expected parameter name"}
		}
		params = append(params, p.advance().Lexeme)
		if !p.match(ast.COMMA) {
			break
		}
	}
	if _, err := p.expect(ast.RPAREN); err != nil {
		return nil, err
	}
	// A single-line body is permitted (`function(x) return x end`), as is
	// a multi-line body; both terminate at `end`.
	p.skipNewlines()
	body, err := p.parseBlockUntil(ast.END)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.END); err != nil {
		return nil, err
	}
	return &ast.FuncLit{Params: params, Body: body, Line: line}, nil
}

func (p *Parser) parseClassStmt() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance() // class
	if !p.isName() {
		t := p.cur()
		return nil, &Error{Line: t.Line, Lexeme: t.String(), Message: "expected class name"}
	}
	name := p.advance().Lexeme
	if _, err := p.expect(ast.NEWLINE); err != nil {
		return nil, err
	}
	body, err := p.parseBlockUntil(ast.END)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.END); err != nil {
		return nil, err
	}
	return &ast.ClassStmt{Name: name, Body: body, Line: line}, nil
}

func (p *Parser) parseTry() (ast.Stmt, error) {
	p.advance() // try
	if _, err := p.expect(ast.NEWLINE); err != nil {
		return nil, err
	}
	body, err := p.parseBlockUntil(ast.CATCH, ast.END)
	if err != nil {
		return nil, err
	}
	var catchName string
	var catchBody []ast.Stmt
	if p.match(ast.CATCH) {
		if p.isName() {
			catchName = p.advance().Lexeme
		}
		if _, err := p.expect(ast.NEWLINE); err != nil {
			return nil, err
		}
		catchBody, err = p.parseBlockUntil(ast.END)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(ast.END); err != nil {
		return nil, err
	}
	return &ast.TryStmt{Body: body, CatchName: catchName, CatchBody: catchBody}, nil
}

func (p *Parser) parseThrow() (ast.Stmt, error) {
	p.advance() // throw
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ThrowStmt{X: x}, nil
}

func (p *Parser) parseGet() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance() // get
	str, err := p.expect(ast.STRING)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.AS); err != nil {
		return nil, err
	}
	if !p.isName() {
		t := p.cur()
		return nil, &Error{Line: t.Line, Lexeme: t.String(), Message: "expected binding name after 'as'"}
	}
	as := p.advance().Lexeme
	return &ast.GetStmt{Path: str.Lexeme, As: as, Line: line}, nil
}

// parseWriteFile handles `write X to file PATH`. The `append X to file
// PATH` form is parsed by parseAppendFile; parseStmt never routes
// `append` here, so this function only ever sees `write`.
func (p *Parser) parseWriteFile() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance() // write
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.TO); err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.FILE); err != nil {
		return nil, err
	}
	path, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.WriteFileStmt{Value: val, Path: path, Line: line}, nil
}

func (p *Parser) parseAppendFile() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance() // append
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.TO); err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.FILE); err != nil {
		return nil, err
	}
	path, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.AppendFileStmt{Value: val, Path: path, Line: line}, nil
}
