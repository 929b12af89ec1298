package interp

import (
	"strings"

	"github.com/TheServer-lab/ironwood/ast"
	"github.com/TheServer-lab/ironwood/parser"
	"github.com/TheServer-lab/ironwood/value"
)

// interpolate expands a string literal's raw text: each `{...}` fragment,
// scanned brace-depth aware so nested braces inside the fragment don't
// close the splice early, is lexed and parsed as a fresh statement. If that
// statement is exactly one expression-statement, it is evaluated in env and
// its toString spliced in; anything else contributes nothing.
func (it *Interpreter) interpolate(raw string, env *value.Env) (string, error) {
	var out strings.Builder
	i, n := 0, len(raw)
	for i < n {
		c := raw[i]
		if c != '{' {
			out.WriteByte(c)
			i++
			continue
		}
		depth := 1
		j := i + 1
		for j < n && depth > 0 {
			switch raw[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
			if depth == 0 {
				break
			}
			j++
		}
		if depth != 0 {
			// Unterminated brace: the rest of the literal is passed through
			// as-is rather than raising, matching the language's generally
			// permissive string handling.
			out.WriteString(raw[i:])
			break
		}
		spliced, err := it.evalInterpolatedFragment(raw[i+1:j], env)
		if err != nil {
			return "", err
		}
		out.WriteString(spliced)
		i = j + 1
	}
	return out.String(), nil
}

func (it *Interpreter) evalInterpolatedFragment(src string, env *value.Env) (string, error) {
	stmts, err := parser.Parse(src)
	if err != nil || len(stmts) != 1 {
		return "", nil
	}
	exprStmt, ok := stmts[0].(*ast.ExprStmt)
	if !ok {
		return "", nil
	}
	v, err := it.evalExpr(exprStmt.X, env)
	if err != nil {
		return "", err
	}
	return value.ToString(v), nil
}
