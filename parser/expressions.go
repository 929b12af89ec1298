package parser

import "github.com/TheServer-lab/ironwood/ast"

// parseExpr enters the precedence chain at its lowest level (`or`).
func (p *Parser) parseExpr() (ast.Expr, error) { return p.parseOr() }

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(ast.OR) {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpr{Op: ast.OR, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.check(ast.AND) {
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpr{Op: ast.AND, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.check(ast.EQ) || p.check(ast.NEQ) {
		op := p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op.Kind, Left: left, Right: right, Line: op.Line}
	}
	return left, nil
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.check(ast.LT) || p.check(ast.GT) || p.check(ast.LE) || p.check(ast.GE) {
		op := p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op.Kind, Left: left, Right: right, Line: op.Line}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.check(ast.PLUS) || p.check(ast.MINUS) {
		op := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op.Kind, Left: left, Right: right, Line: op.Line}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.check(ast.STAR) || p.check(ast.SLASH) || p.check(ast.PERCENT) {
		op := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op.Kind, Left: left, Right: right, Line: op.Line}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.check(ast.MINUS) || p.check(ast.NOT) {
		op := p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: op.Kind, X: x, Line: op.Line}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary followed by any run of member, index, and
// call suffixes: `.x`, `[e]`, `(...)`.
func (p *Parser) parsePostfix() (ast.Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.curKind() {
		case ast.DOT:
			line := p.advance().Line
			if !p.isName() {
				t := p.cur()
				return nil, &Error{Line: t.Line, Lexeme: t.String(), Message: "expected member name after '.'"}
			}
			name := p.advance().Lexeme
			x = &ast.MemberExpr{X: x, Name: name, Line: line}
		case ast.LBRACKET:
			line := p.advance().Line
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(ast.RBRACKET); err != nil {
				return nil, err
			}
			x = &ast.IndexExpr{X: x, Index: idx, Line: line}
		case ast.LPAREN:
			line := p.advance().Line
			var args []ast.Expr
			for !p.check(ast.RPAREN) {
				a, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if !p.match(ast.COMMA) {
					break
				}
			}
			if _, err := p.expect(ast.RPAREN); err != nil {
				return nil, err
			}
			x = &ast.CallExpr{Callee: x, Args: args, Line: line}
		default:
			return x, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	t := p.cur()
	switch t.Kind {
	case ast.NUMBER:
		p.advance()
		return &ast.NumberLit{Value: t.Num}, nil
	case ast.STRING:
		p.advance()
		return &ast.StringLit{Parts: []string{t.Lexeme}}, nil
	case ast.TRUE:
		p.advance()
		return &ast.BoolLit{Value: true}, nil
	case ast.FALSE:
		p.advance()
		return &ast.BoolLit{Value: false}, nil
	case ast.NULL:
		p.advance()
		return &ast.NullLit{}, nil
	case ast.SELF:
		p.advance()
		return &ast.SelfExpr{}, nil
	case ast.LPAREN:
		p.advance()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ast.RPAREN); err != nil {
			return nil, err
		}
		return x, nil
	case ast.LBRACKET:
		return p.parseListLit()
	case ast.LBRACE:
		return p.parseDictLit()
	case ast.FUNCTION:
		p.advance()
		return p.parseFuncLitTail()
	case ast.NEW:
		return p.parseNewExpr()
	case ast.KEEP:
		return p.parseKeepExpr()
	case ast.KEYS:
		p.advance()
		if _, err := p.expect(ast.OF); err != nil {
			return nil, err
		}
		x, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		return &ast.KeysOfExpr{X: x}, nil
	case ast.VALUES:
		p.advance()
		if _, err := p.expect(ast.OF); err != nil {
			return nil, err
		}
		x, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		return &ast.ValuesOfExpr{X: x}, nil
	case ast.HAS:
		p.advance()
		needle, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ast.IN); err != nil {
			return nil, err
		}
		haystack, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		return &ast.HasInExpr{Needle: needle, Haystack: haystack}, nil
	case ast.ASK:
		p.advance()
		var prompt ast.Expr
		if !p.stmtEnd() {
			x, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			prompt = x
		}
		return &ast.AskExpr{Prompt: prompt}, nil
	case ast.IF:
		return p.parseTernary()
	case ast.SORT:
		return p.parseSortExpr()
	case ast.FETCH:
		return p.parseFetchExpr()
	case ast.RUN:
		p.advance()
		cmd, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return &ast.RunExpr{Cmd: cmd, Line: t.Line}, nil
	case ast.READ:
		p.advance()
		if _, err := p.expect(ast.FILE); err != nil {
			return nil, err
		}
		path, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return &ast.ReadFileExpr{Path: path, Line: t.Line}, nil
	case ast.PARSE:
		p.advance()
		if _, err := p.expect(ast.JSON); err != nil {
			return nil, err
		}
		x, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return &ast.ParseJSONExpr{X: x}, nil

	case ast.LENGTH:
		if p.at(1).Kind == ast.OF {
			p.advance()
			p.advance()
			x, err := p.parsePostfix()
			if err != nil {
				return nil, err
			}
			return &ast.LengthOfExpr{X: x}, nil
		}
	case ast.ITEM:
		if p.itemOfLookahead() {
			return p.parseItemOfExpr()
		}
	case ast.TYPE:
		if p.at(1).Kind == ast.OF {
			p.advance()
			p.advance()
			x, err := p.parsePostfix()
			if err != nil {
				return nil, err
			}
			return &ast.TypeOfExpr{X: x}, nil
		}
	case ast.FILE:
		if p.at(1).Kind == ast.EXISTS {
			p.advance()
			p.advance()
			path, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			return &ast.FileExistsExpr{Path: path}, nil
		}
	case ast.LINES:
		if p.at(1).Kind == ast.OF && p.at(2).Kind == ast.FILE {
			p.advance()
			p.advance()
			p.advance()
			path, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			return &ast.LinesOfFileExpr{Path: path, Line: t.Line}, nil
		}
	case ast.JSON:
		if p.at(1).Kind == ast.OF {
			p.advance()
			p.advance()
			x, err := p.parsePostfix()
			if err != nil {
				return nil, err
			}
			return &ast.JSONOfExpr{X: x}, nil
		}
	case ast.UPPERCASE, ast.LOWERCASE, ast.TRIM:
		return p.parseUnaryStringOp(t.Kind)
	case ast.CHARS:
		return p.parseCharsExpr()
	case ast.SPLIT:
		return p.parseSplitExpr()
	case ast.JOIN:
		return p.parseJoinExpr()
	case ast.REPLACE:
		return p.parseReplaceExpr()
	case ast.INDEX:
		return p.parseIndexOfExpr()
	}

	if p.isName() {
		p.advance()
		return &ast.Ident{Name: t.Lexeme}, nil
	}

	return nil, &Error{Line: t.Line, Lexeme: t.String(), Message: "unexpected token in expression"}
}

// stmtEnd reports whether the current position looks like the end of a
// statement (newline or EOF), used by `ask` to decide whether a prompt
// expression follows.
func (p *Parser) stmtEnd() bool {
	return p.check(ast.NEWLINE) || p.check(ast.EOF)
}

func (p *Parser) parseListLit() (ast.Expr, error) {
	p.advance() // [
	p.skipNewlines()
	var elems []ast.Expr
	for !p.check(ast.RBRACKET) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		p.skipNewlines()
		if !p.match(ast.COMMA) {
			break
		}
		p.skipNewlines()
	}
	p.skipNewlines()
	if _, err := p.expect(ast.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.ListLit{Elems: elems}, nil
}

func (p *Parser) parseDictLit() (ast.Expr, error) {
	p.advance() // {
	p.skipNewlines()
	var entries []ast.DictEntry
	for !p.check(ast.RBRACE) {
		if !p.isName() {
			t := p.cur()
			return nil, &Error{Line: t.Line, Lexeme: t.String(), Message: "expected object key"}
		}
		key := p.advance().Lexeme
		if _, err := p.expect(ast.COLON); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.DictEntry{Key: key, Value: val})
		p.skipNewlines()
		if !p.match(ast.COMMA) {
			break
		}
		p.skipNewlines()
	}
	p.skipNewlines()
	if _, err := p.expect(ast.RBRACE); err != nil {
		return nil, err
	}
	return &ast.DictLit{Entries: entries}, nil
}

func (p *Parser) parseNewExpr() (ast.Expr, error) {
	line := p.cur().Line
	p.advance() // new
	if !p.isName() {
		t := p.cur()
		return nil, &Error{Line: t.Line, Lexeme: t.String(), Message: "expected class name after 'new'"}
	}
	class := p.advance().Lexeme
	if _, err := p.expect(ast.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Expr
	for !p.check(ast.RPAREN) {
		a, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if !p.match(ast.COMMA) {
			break
		}
	}
	if _, err := p.expect(ast.RPAREN); err != nil {
		return nil, err
	}
	return &ast.NewExpr{Class: class, Args: args, Line: line}, nil
}

func (p *Parser) parseKeepExpr() (ast.Expr, error) {
	p.advance() // keep
	if _, err := p.expect(ast.ITEMS); err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.IN); err != nil {
		return nil, err
	}
	list, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.WHERE); err != nil {
		return nil, err
	}
	where, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.KeepExpr{List: list, Where: where}, nil
}

// itemOfLookahead implements `item N of EXPR fires only when item is
// immediately followed by a simple expression start (number/ident) and
// then of`.
func (p *Parser) itemOfLookahead() bool {
	n := p.at(1)
	if n.Kind != ast.NUMBER && n.Kind != ast.IDENT {
		return false
	}
	// The "N" position may itself be a short expression (e.g. `item i of
	// xs` or `item 1 of xs`); scan forward for `of` before a newline,
	// bounded to a short run so this stays a look-ahead, not a backtrack.
	depth := 0
	for i := p.pos + 1; i < len(p.toks) && i < p.pos+8; i++ {
		switch p.toks[i].Kind {
		case ast.NEWLINE, ast.EOF:
			return false
		case ast.LPAREN, ast.LBRACKET:
			depth++
		case ast.RPAREN, ast.RBRACKET:
			depth--
		case ast.OF:
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

func (p *Parser) parseItemOfExpr() (ast.Expr, error) {
	line := p.cur().Line
	p.advance() // item
	n, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.OF); err != nil {
		return nil, err
	}
	list, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	return &ast.ItemOfExpr{N: n, List: list, Line: line}, nil
}

// parseTernary handles `if COND then EXPR else EXPR` in expression
// position.
func (p *Parser) parseTernary() (ast.Expr, error) {
	p.advance() // if
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.THEN); err != nil {
		return nil, err
	}
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.ELSE); err != nil {
		return nil, err
	}
	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.TernaryExpr{Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) parseSortExpr() (ast.Expr, error) {
	p.advance() // sort
	list, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	sx := &ast.SortExpr{List: list}
	if p.match(ast.BY) {
		// Bare identifier immediately followed by end-of-expression is
		// the field-name shorthand; anything else is a callable key
		// expression.
		if p.isName() && exprTerminatesAfterName(p) {
			sx.ByField = p.advance().Lexeme
		} else {
			keyExpr, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			sx.ByExpr = keyExpr
		}
	}
	return sx, nil
}

// exprTerminatesAfterName reports whether the token after the current
// name-position token cannot continue an expression that the name started
// (no '(', '.', '['), meaning the name is a bare field reference rather
// than the start of a longer callable expression.
func exprTerminatesAfterName(p *Parser) bool {
	switch p.at(1).Kind {
	case ast.LPAREN, ast.DOT, ast.LBRACKET:
		return false
	}
	return true
}

func (p *Parser) parseFetchExpr() (ast.Expr, error) {
	line := p.cur().Line
	p.advance() // fetch
	url, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	fx := &ast.FetchExpr{URL: url, Line: line}
	if p.match(ast.WITH) {
		opts, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		fx.With = opts
	}
	return fx, nil
}

func (p *Parser) parseUnaryStringOp(op ast.Kind) (ast.Expr, error) {
	line := p.cur().Line
	p.advance()
	x, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return &ast.StringOpExpr{Op: op, Args: []ast.Expr{x}, Line: line}, nil
}

// parseCharsExpr parses `chars I to J of STR`, mirroring `item N of list`'s
// keyword-sandwiched-bounds shape rather than the plain-prefix shape of
// trim/uppercase/lowercase.
func (p *Parser) parseCharsExpr() (ast.Expr, error) {
	line := p.cur().Line
	p.advance() // chars
	from, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.TO); err != nil {
		return nil, err
	}
	to, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.OF); err != nil {
		return nil, err
	}
	s, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	return &ast.StringOpExpr{Op: ast.CHARS, Args: []ast.Expr{s, from, to}, Line: line}, nil
}

func (p *Parser) parseSplitExpr() (ast.Expr, error) {
	line := p.cur().Line
	p.advance() // split
	s, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.BY); err != nil {
		return nil, err
	}
	sep, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return &ast.StringOpExpr{Op: ast.SPLIT, Args: []ast.Expr{s, sep}, Line: line}, nil
}

func (p *Parser) parseJoinExpr() (ast.Expr, error) {
	line := p.cur().Line
	p.advance() // join
	list, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.WITH); err != nil {
		return nil, err
	}
	sep, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return &ast.StringOpExpr{Op: ast.JOIN, Args: []ast.Expr{list, sep}, Line: line}, nil
}

func (p *Parser) parseReplaceExpr() (ast.Expr, error) {
	line := p.cur().Line
	p.advance() // replace
	old, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.WITH); err != nil {
		return nil, err
	}
	replacement, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.IN); err != nil {
		return nil, err
	}
	target, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return &ast.StringOpExpr{Op: ast.REPLACE, Args: []ast.Expr{target, old, replacement}, Line: line}, nil
}

func (p *Parser) parseIndexOfExpr() (ast.Expr, error) {
	line := p.cur().Line
	p.advance() // index
	if _, err := p.expect(ast.OF); err != nil {
		return nil, err
	}
	needle, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.IN); err != nil {
		return nil, err
	}
	haystack, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return &ast.StringOpExpr{Op: ast.INDEX, Args: []ast.Expr{haystack, needle}, Line: line}, nil
}
