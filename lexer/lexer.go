// Package lexer turns Ironwood source bytes into a token stream for the
// parser, following the contextual-keyword table and significant-newline
// rules the grammar relies on.
package lexer

import (
	"fmt"

	"github.com/TheServer-lab/ironwood/ast"
)

// Error reports a lexical fault with the source line it occurred on.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Lexer scans a single source buffer into tokens. It is not reused across
// files; the parser constructs a fresh one for the top-level source, for
// every loaded module, and for every interpolated string fragment.
type Lexer struct {
	src  []byte
	pos  int
	line int

	// lastWasValue tracks whether the most recently emitted token could
	// end an expression (a literal, identifier, or closing bracket). A
	// '-' immediately followed by a digit attaches to the number as a
	// negative literal only when the previous token was NOT value-like —
	// i.e. at the start of input, after an operator, or after an opening
	// delimiter — so that "a - 5" still lexes as subtraction while
	// "(-5)" and "f(-5)" lex the literal.
	lastWasValue bool
}

func New(src string) *Lexer {
	return &Lexer{src: []byte(src), pos: 0, line: 1}
}

// Tokenize scans the entire buffer and returns the token list, always
// terminated by an EOF token. Consecutive newlines collapse to one NEWLINE
// token; a NEWLINE is emitted at EOF regardless of whether the source
// ended with one.
func (l *Lexer) Tokenize() ([]ast.Token, error) {
	var toks []ast.Token
	for {
		sawNewline := false
		startLine := l.line
		for {
			l.skipSpacesAndComments()
			if l.pos < len(l.src) && l.src[l.pos] == '\n' {
				sawNewline = true
				l.pos++
				l.line++
				continue
			}
			break
		}
		if sawNewline {
			if len(toks) > 0 && toks[len(toks)-1].Kind != ast.NEWLINE {
				toks = append(toks, ast.Token{Kind: ast.NEWLINE, Line: startLine})
			}
			l.lastWasValue = false
		}
		if l.pos >= len(l.src) {
			if len(toks) == 0 || toks[len(toks)-1].Kind != ast.NEWLINE {
				toks = append(toks, ast.Token{Kind: ast.NEWLINE, Line: l.line})
			}
			toks = append(toks, ast.Token{Kind: ast.EOF, Line: l.line})
			return toks, nil
		}

		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		l.lastWasValue = tokenEndsExpr(tok.Kind)
	}
}

func tokenEndsExpr(k ast.Kind) bool {
	switch k {
	case ast.NUMBER, ast.STRING, ast.IDENT, ast.RPAREN, ast.RBRACKET, ast.RBRACE,
		ast.TRUE, ast.FALSE, ast.NULL, ast.SELF:
		return true
	}
	return ast.Contextual[k]
}

func (l *Lexer) skipSpacesAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == ';':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }

// scanToken scans exactly one non-newline, non-whitespace token starting
// at the current position.
func (l *Lexer) scanToken() (ast.Token, error) {
	line := l.line
	c := l.src[l.pos]

	switch {
	case isDigit(c):
		return l.scanNumber()
	case c == '"':
		return l.scanString()
	case isAlpha(c):
		return l.scanIdentOrKeyword()
	}

	single := func(k ast.Kind, lexeme string) (ast.Token, error) {
		l.pos++
		return ast.Token{Kind: k, Lexeme: lexeme, Line: line}, nil
	}

	switch c {
	case '+':
		return single(ast.PLUS, "+")
	case '-':
		if !l.lastWasValue && isDigit(l.peekAt(1)) {
			return l.scanNumber()
		}
		return single(ast.MINUS, "-")
	case '*':
		return single(ast.STAR, "*")
	case '/':
		return single(ast.SLASH, "/")
	case '%':
		return single(ast.PERCENT, "%")
	case '(':
		return single(ast.LPAREN, "(")
	case ')':
		return single(ast.RPAREN, ")")
	case '[':
		return single(ast.LBRACKET, "[")
	case ']':
		return single(ast.RBRACKET, "]")
	case '{':
		return single(ast.LBRACE, "{")
	case '}':
		return single(ast.RBRACE, "}")
	case ',':
		return single(ast.COMMA, ",")
	case '.':
		return single(ast.DOT, ".")
	case ':':
		return single(ast.COLON, ":")
	case '=':
		if l.peekAt(1) == '=' {
			l.pos += 2
			return ast.Token{Kind: ast.EQ, Lexeme: "==", Line: line}, nil
		}
		return single(ast.ASSIGN, "=")
	case '!':
		if l.peekAt(1) == '=' {
			l.pos += 2
			return ast.Token{Kind: ast.NEQ, Lexeme: "!=", Line: line}, nil
		}
		return ast.Token{}, &Error{Line: line, Message: "unexpected '!'"}
	case '<':
		if l.peekAt(1) == '=' {
			l.pos += 2
			return ast.Token{Kind: ast.LE, Lexeme: "<=", Line: line}, nil
		}
		return single(ast.LT, "<")
	case '>':
		if l.peekAt(1) == '=' {
			l.pos += 2
			return ast.Token{Kind: ast.GE, Lexeme: ">=", Line: line}, nil
		}
		return single(ast.GT, ">")
	}

	return ast.Token{}, &Error{Line: line, Message: fmt.Sprintf("unexpected character %q", c)}
}

func (l *Lexer) scanNumber() (ast.Token, error) {
	line := l.line
	start := l.pos
	if l.pos < len(l.src) && l.src[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' && isDigit(l.peekAt(1)) {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	text := string(l.src[start:l.pos])
	var val float64
	if _, err := fmt.Sscanf(text, "%g", &val); err != nil {
		return ast.Token{}, &Error{Line: line, Message: "malformed number " + text}
	}
	return ast.Token{Kind: ast.NUMBER, Lexeme: text, Num: val, Line: line}, nil
}

// scanString scans a double-quoted string literal. Backslash escapes \n
// and \t are translated; any other escaped character passes through
// literally (including \" and \\). Interpolation is not resolved here —
// it happens at evaluation time against the raw literal text so that
// nested expressions can themselves be arbitrary Ironwood code.
func (l *Lexer) scanString() (ast.Token, error) {
	line := l.line
	l.pos++ // opening quote
	var buf []byte
	for {
		if l.pos >= len(l.src) {
			return ast.Token{}, &Error{Line: line, Message: "unterminated string literal"}
		}
		c := l.src[l.pos]
		if c == '"' {
			l.pos++
			return ast.Token{Kind: ast.STRING, Lexeme: string(buf), Line: line}, nil
		}
		if c == '\n' {
			return ast.Token{}, &Error{Line: line, Message: "unterminated string literal"}
		}
		if c == '\\' {
			l.pos++
			if l.pos >= len(l.src) {
				return ast.Token{}, &Error{Line: line, Message: "unterminated string literal"}
			}
			esc := l.src[l.pos]
			switch esc {
			case 'n':
				buf = append(buf, '\n')
			case 't':
				buf = append(buf, '\t')
			default:
				buf = append(buf, esc)
			}
			l.pos++
			continue
		}
		buf = append(buf, c)
		l.pos++
	}
}

func (l *Lexer) scanIdentOrKeyword() (ast.Token, error) {
	line := l.line
	start := l.pos
	for l.pos < len(l.src) && isAlnum(l.src[l.pos]) {
		l.pos++
	}
	text := string(l.src[start:l.pos])
	if kind, ok := ast.Keywords[text]; ok {
		return ast.Token{Kind: kind, Lexeme: text, Line: line}, nil
	}
	return ast.Token{Kind: ast.IDENT, Lexeme: text, Line: line}, nil
}
