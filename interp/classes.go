package interp

import (
	"github.com/TheServer-lab/ironwood/ast"
	"github.com/TheServer-lab/ironwood/value"
)

// execClassStmt scans a class body for `let FIELD = DEFAULT` (collected into
// the ordered field list) and `function NAME(params) ... end` (collected
// into the method table); any other body statement is ignored.
// The enclosing environment is captured as the class's definition
// environment, used both to evaluate field defaults and as the closure
// parent for every method.
func (it *Interpreter) execClassStmt(n *ast.ClassStmt, env *value.Env) error {
	class := value.NewClass(n.Name, env)
	for _, s := range n.Body {
		switch st := s.(type) {
		case *ast.LetStmt:
			class.Fields = append(class.Fields, value.FieldDefault{Name: st.Name, Expr: st.Value})
		case *ast.FunctionStmt:
			class.Methods[st.Name] = &value.Function{Name: st.Name, Params: st.Fn.Params, Body: st.Fn.Body, Env: env}
		}
	}
	it.Classes.Define(class)
	return nil
}

// evalNew allocates an instance dict, sets __class__, evaluates each field
// default in the class's definition environment, and calls init(args) if
// present.
func (it *Interpreter) evalNew(n *ast.NewExpr, env *value.Env) (value.Value, error) {
	class, ok := it.Classes.Lookup(n.Class)
	if !ok {
		return value.Nil, it.runtimeErrorf(n.Line, "unknown class %q", n.Class)
	}
	instance := value.NewDict()
	instance.Set(value.ClassKey, n.Class)
	for _, f := range class.Fields {
		v, err := it.evalExpr(f.Expr, class.Def)
		if err != nil {
			return value.Nil, err
		}
		instance.Set(f.Name, v)
	}
	args, err := it.evalArgs(n.Args, env)
	if err != nil {
		return value.Nil, err
	}
	if init, ok := class.Methods["init"]; ok {
		if _, err := it.callMethod(init, instance, args); err != nil {
			return value.Nil, err
		}
	}
	return instance, nil
}

// bindMethod wraps a user method as a native callable closing over
// (instance, method) so that detaching it (passing obj.m as a callback)
// preserves receiver identity.
func (it *Interpreter) bindMethod(self *value.Dict, method *value.Function) *value.Function {
	return &value.Function{Name: method.Name, IsBound: true, Native: func(args []value.Value) (value.Value, error) {
		return it.callMethod(method, self, args)
	}}
}

func (it *Interpreter) callMethod(method *value.Function, self *value.Dict, args []value.Value) (value.Value, error) {
	child := value.NewEnv(method.Env)
	child.Define("self", self)
	for i, p := range method.Params {
		if i < len(args) {
			child.Define(p, args[i])
		} else {
			child.Define(p, value.Nil)
		}
	}
	_, ctrl, err := it.execBlock(method.Body, child)
	if err != nil {
		return value.Nil, err
	}
	switch ctrl.Kind {
	case controlReturn:
		return ctrl.Value, nil
	case controlBreak, controlContinue:
		return value.Nil, it.runtimeErrorf(0, "'break'/'continue' used outside a loop")
	}
	return value.Nil, nil
}
