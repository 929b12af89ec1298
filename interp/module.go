package interp

import (
	"strings"

	"github.com/TheServer-lab/ironwood/ast"
	"github.com/TheServer-lab/ironwood/parser"
	"github.com/TheServer-lab/ironwood/value"
)

// execGet implements `get "PATH.irw" as NAME`: a path ending in ".irw"
// selects file-module mode; anything else (including the literal "std"/
// "stdlib") falls through to the synthetic stdlib dict.
func (it *Interpreter) execGet(n *ast.GetStmt, env *value.Env) error {
	if strings.HasSuffix(n.Path, ".irw") {
		return it.loadFileModule(n, env)
	}
	env.Define(n.As, it.buildStdlibDict())
	return nil
}

// loadFileModule runs the full pipeline on another source file in a fresh
// child of the global environment, pins its AST and environment for the
// interpreter's entire run (module functions may close over module locals
// and be called long after this script finishes), and binds NAME to a dict
// exposing the module's top-level names.
func (it *Interpreter) loadFileModule(n *ast.GetStmt, env *value.Env) error {
	if d, ok := it.moduleByPath[n.Path]; ok {
		env.Define(n.As, d)
		return nil
	}

	src, err := it.Files.Read(n.Path)
	if err != nil {
		return it.runtimeErrorf(n.Line, "get %q: %v", n.Path, err)
	}
	stmts, perr := parser.Parse(src)
	if perr != nil {
		return toSyntaxError(perr)
	}

	modEnv := value.NewEnv(it.Globals)
	_, ctrl, err := it.execBlock(stmts, modEnv)
	if err != nil {
		return err
	}
	if ctrl.Kind != controlNone {
		return it.runtimeErrorf(n.Line, "module %q used return/break/continue at its top level", n.Path)
	}

	it.modules = append(it.modules, &module{path: n.Path, ast: stmts, env: modEnv})

	d := value.NewDict()
	for _, name := range topLevelNames(stmts) {
		if v, ok := modEnv.Vars[name]; ok {
			d.Set(name, v)
		}
	}
	it.moduleByPath[n.Path] = d
	env.Define(n.As, d)
	return nil
}

// topLevelNames walks a module's statement list in source order and
// collects the names it binds at the top level (`let`/`function`), so the
// exposed module dict can replay declaration order instead of the
// unordered iteration modEnv.Vars (a plain Go map) would otherwise give.
func topLevelNames(stmts []ast.Stmt) []string {
	seen := map[string]bool{}
	var names []string
	for _, s := range stmts {
		var name string
		switch n := s.(type) {
		case *ast.LetStmt:
			name = n.Name
		case *ast.FunctionStmt:
			name = n.Name
		default:
			continue
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
