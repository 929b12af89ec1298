package interp

import (
	"github.com/TheServer-lab/ironwood/ast"
	"github.com/TheServer-lab/ironwood/value"
)

// execBlock runs a statement list in env (the caller decides whether env
// is a fresh child scope), stopping as soon as any statement yields a
// non-none control signal and propagating it upward without running the
// remaining siblings.
func (it *Interpreter) execBlock(stmts []ast.Stmt, env *value.Env) (value.Value, control, error) {
	var last value.Value = value.Nil
	for _, s := range stmts {
		v, ctrl, err := it.execStmt(s, env)
		if err != nil {
			return value.Nil, noControl, err
		}
		last = v
		if ctrl.Kind != controlNone {
			return last, ctrl, nil
		}
	}
	return last, noControl, nil
}

func (it *Interpreter) execStmt(s ast.Stmt, env *value.Env) (value.Value, control, error) {
	switch n := s.(type) {
	case *ast.LetStmt:
		v, err := it.evalExpr(n.Value, env)
		if err != nil {
			return value.Nil, noControl, err
		}
		env.Define(n.Name, v)
		return value.Nil, noControl, nil

	case *ast.SetStmt:
		return it.execSet(n, env)

	case *ast.AddToStmt:
		return it.execAddTo(n, env)

	case *ast.ExprStmt:
		v, err := it.evalExpr(n.X, env)
		return v, noControl, err

	case *ast.SayStmt:
		v, err := it.evalExpr(n.X, env)
		if err != nil {
			return value.Nil, noControl, err
		}
		it.Term.Say(value.ToString(v))
		return value.Nil, noControl, nil

	case *ast.AskStmt:
		return it.execAsk(n, env)

	case *ast.PauseStmt:
		_, _ = it.Term.Ask("")
		return value.Nil, noControl, nil

	case *ast.CallStmt:
		_, err := it.evalExpr(n.X, env)
		return value.Nil, noControl, err

	case *ast.IfStmt:
		return it.execIf(n, env)

	case *ast.WhileStmt:
		return it.execWhile(n, env)

	case *ast.ForEachStmt:
		return it.execForEach(n, env)

	case *ast.BreakStmt:
		return value.Nil, control{Kind: controlBreak}, nil

	case *ast.ContinueStmt:
		return value.Nil, control{Kind: controlContinue}, nil

	case *ast.ReturnStmt:
		var v value.Value = value.Nil
		if n.X != nil {
			var err error
			v, err = it.evalExpr(n.X, env)
			if err != nil {
				return value.Nil, noControl, err
			}
		}
		return value.Nil, control{Kind: controlReturn, Value: v}, nil

	case *ast.FunctionStmt:
		fn := &value.Function{Name: n.Name, Params: n.Fn.Params, Body: n.Fn.Body, Env: env}
		env.Define(n.Name, fn)
		return value.Nil, noControl, nil

	case *ast.ClassStmt:
		return value.Nil, noControl, it.execClassStmt(n, env)

	case *ast.TryStmt:
		return it.execTry(n, env)

	case *ast.ThrowStmt:
		v, err := it.evalExpr(n.X, env)
		if err != nil {
			return value.Nil, noControl, err
		}
		return value.Nil, noControl, &ThrowSignal{Value: v}

	case *ast.GetStmt:
		return value.Nil, noControl, it.execGet(n, env)

	case *ast.WriteFileStmt:
		return it.execWriteFile(n, env)

	case *ast.AppendFileStmt:
		return it.execAppendFile(n, env)

	case *ast.BlockStmt:
		return it.execBlock(n.Body, value.NewEnv(env))
	}
	return value.Nil, noControl, it.runtimeErrorf(0, "unhandled statement type %T", s)
}

func (it *Interpreter) execSet(n *ast.SetStmt, env *value.Env) (value.Value, control, error) {
	v, err := it.evalExpr(n.Value, env)
	if err != nil {
		return value.Nil, noControl, err
	}
	switch target := n.Target.(type) {
	case *ast.Ident:
		env.Assign(target.Name, v)
	case *ast.IndexExpr:
		container, err := it.evalExpr(target.X, env)
		if err != nil {
			return value.Nil, noControl, err
		}
		idx, err := it.evalExpr(target.Index, env)
		if err != nil {
			return value.Nil, noControl, err
		}
		switch c := container.(type) {
		case *value.List:
			i, ok := idx.(float64)
			if !ok {
				return value.Nil, noControl, it.runtimeErrorf(target.Line, "list index must be a number")
			}
			c.Set(int(i), v)
		case *value.Dict:
			key := value.ToString(idx)
			if key == value.ClassKey {
				return value.Nil, noControl, nil // reserved key, silently ignored for user writes
			}
			c.Set(key, v)
		default:
			return value.Nil, noControl, it.runtimeErrorf(target.Line, "cannot index-assign a %s", value.TypeOf(container))
		}
	case *ast.MemberExpr:
		base, err := it.evalExpr(target.X, env)
		if err != nil {
			return value.Nil, noControl, err
		}
		d, ok := base.(*value.Dict)
		if !ok {
			return value.Nil, noControl, it.runtimeErrorf(target.Line, "cannot set member %q on a %s", target.Name, value.TypeOf(base))
		}
		if target.Name == value.ClassKey {
			return value.Nil, noControl, nil // reserved key, silently ignored for user writes
		}
		d.Set(target.Name, v)
	default:
		// Any other shape is silently ignored.
	}
	return value.Nil, noControl, nil
}

// execAsk implements `ask NAME [PROMPT]`: prints PROMPT (if any), reads one
// line from the terminal, and assigns it via env.Assign, which already
// walks the scope chain and falls back to defining in the calling scope —
// the same resolution the original gives this form by trying env.assign
// and falling back to env.define on failure.
func (it *Interpreter) execAsk(n *ast.AskStmt, env *value.Env) (value.Value, control, error) {
	prompt := ""
	if n.Prompt != nil {
		v, err := it.evalExpr(n.Prompt, env)
		if err != nil {
			return value.Nil, noControl, err
		}
		prompt = value.ToString(v)
	}
	line, err := it.Term.Ask(prompt)
	if err != nil {
		return value.Nil, noControl, err
	}
	env.Assign(n.Var, line)
	return value.Nil, noControl, nil
}

func (it *Interpreter) execAddTo(n *ast.AddToStmt, env *value.Env) (value.Value, control, error) {
	v, err := it.evalExpr(n.Value, env)
	if err != nil {
		return value.Nil, noControl, err
	}
	target, err := it.evalExpr(n.Target, env)
	if err != nil {
		return value.Nil, noControl, err
	}
	list, ok := target.(*value.List)
	if !ok {
		return value.Nil, noControl, it.runtimeErrorf(n.Line, "'add ... to' target must be a list, got %s", value.TypeOf(target))
	}
	list.Append(v)
	return value.Nil, noControl, nil
}

func (it *Interpreter) execIf(n *ast.IfStmt, env *value.Env) (value.Value, control, error) {
	cond, err := it.evalExpr(n.Cond, env)
	if err != nil {
		return value.Nil, noControl, err
	}
	if value.Truthy(cond) {
		return it.execBlock(n.Then, value.NewEnv(env))
	}
	if n.Else != nil {
		return it.execBlock(n.Else, value.NewEnv(env))
	}
	return value.Nil, noControl, nil
}

func (it *Interpreter) execWhile(n *ast.WhileStmt, env *value.Env) (value.Value, control, error) {
	for {
		cond, err := it.evalExpr(n.Cond, env)
		if err != nil {
			return value.Nil, noControl, err
		}
		if !value.Truthy(cond) {
			return value.Nil, noControl, nil
		}
		// Fresh child environment per iteration.
		_, ctrl, err := it.execBlock(n.Body, value.NewEnv(env))
		if err != nil {
			return value.Nil, noControl, err
		}
		switch ctrl.Kind {
		case controlBreak:
			return value.Nil, noControl, nil
		case controlReturn:
			return value.Nil, ctrl, nil
		case controlContinue, controlNone:
			// fall through to next iteration
		}
	}
}

func (it *Interpreter) execForEach(n *ast.ForEachStmt, env *value.Env) (value.Value, control, error) {
	listVal, err := it.evalExpr(n.List, env)
	if err != nil {
		return value.Nil, noControl, err
	}
	list, ok := listVal.(*value.List)
	if !ok {
		return value.Nil, noControl, it.runtimeErrorf(0, "'for each ... in' requires a list, got %s", value.TypeOf(listVal))
	}
	// Iterate a snapshot of the elements so that a body mutating the
	// list (append/remove) doesn't perturb iteration order or count —
	// "visits L in insertion order" is about the order observed, not a
	// live view.
	elems := append([]value.Value(nil), list.Elems...)
	for _, e := range elems {
		child := value.NewEnv(env)
		child.Define(n.Var, e)
		_, ctrl, err := it.execBlock(n.Body, child)
		if err != nil {
			return value.Nil, noControl, err
		}
		switch ctrl.Kind {
		case controlBreak:
			return value.Nil, noControl, nil
		case controlReturn:
			return value.Nil, ctrl, nil
		case controlContinue, controlNone:
		}
	}
	return value.Nil, noControl, nil
}

func (it *Interpreter) execTry(n *ast.TryStmt, env *value.Env) (value.Value, control, error) {
	v, ctrl, err := it.execBlock(n.Body, value.NewEnv(env))
	if err == nil {
		return v, ctrl, nil
	}
	// A syntax error (e.g. from a module loaded inside the body) is fatal.
	if _, ok := err.(*SyntaxError); ok {
		return value.Nil, noControl, err
	}

	// Control-flow signals are never caught — but err here is always a
	// genuine error (execBlock only returns a non-nil error for actual
	// faults; return/break/continue travel through ctrl, not err), so
	// reaching this point always means a throw or a runtime error.
	var message string
	switch e := err.(type) {
	case *ThrowSignal:
		message = value.ToString(e.Value)
	case *RuntimeError:
		message = e.Message
	default:
		message = err.Error()
	}

	if n.CatchName == "" && n.CatchBody == nil {
		return value.Nil, noControl, err
	}
	catchEnv := value.NewEnv(env)
	if n.CatchName != "" {
		catchEnv.Define(n.CatchName, message)
	}
	return it.execBlock(n.CatchBody, catchEnv)
}

func (it *Interpreter) execWriteFile(n *ast.WriteFileStmt, env *value.Env) (value.Value, control, error) {
	v, err := it.evalExpr(n.Value, env)
	if err != nil {
		return value.Nil, noControl, err
	}
	path, err := it.evalExpr(n.Path, env)
	if err != nil {
		return value.Nil, noControl, err
	}
	if err := it.Files.Write(value.ToString(path), value.ToString(v)); err != nil {
		return value.Nil, noControl, it.runtimeErrorf(n.Line, "write file: %v", err)
	}
	return value.Nil, noControl, nil
}

func (it *Interpreter) execAppendFile(n *ast.AppendFileStmt, env *value.Env) (value.Value, control, error) {
	v, err := it.evalExpr(n.Value, env)
	if err != nil {
		return value.Nil, noControl, err
	}
	path, err := it.evalExpr(n.Path, env)
	if err != nil {
		return value.Nil, noControl, err
	}
	if err := it.Files.Append(value.ToString(path), value.ToString(v)); err != nil {
		return value.Nil, noControl, it.runtimeErrorf(n.Line, "append file: %v", err)
	}
	return value.Nil, noControl, nil
}
