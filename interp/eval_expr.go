package interp

import (
	"math"
	"sort"
	"strings"

	"github.com/TheServer-lab/ironwood/ast"
	"github.com/TheServer-lab/ironwood/value"
)

func (it *Interpreter) evalExpr(e ast.Expr, env *value.Env) (value.Value, error) {
	switch n := e.(type) {
	case *ast.NumberLit:
		return n.Value, nil
	case *ast.StringLit:
		return it.interpolate(n.Parts[0], env)
	case *ast.BoolLit:
		return n.Value, nil
	case *ast.NullLit:
		return value.Nil, nil
	case *ast.Ident:
		if v, ok := env.Get(n.Name); ok {
			return v, nil
		}
		return value.Nil, it.runtimeErrorf(0, "unknown identifier %q", n.Name)
	case *ast.SelfExpr:
		if v, ok := env.Get("self"); ok {
			return v, nil
		}
		return value.Nil, it.runtimeErrorf(0, "'self' used outside a method")
	case *ast.ListLit:
		elems := make([]value.Value, len(n.Elems))
		for i, x := range n.Elems {
			v, err := it.evalExpr(x, env)
			if err != nil {
				return value.Nil, err
			}
			elems[i] = v
		}
		return value.NewList(elems...), nil
	case *ast.DictLit:
		d := value.NewDict()
		for _, entry := range n.Entries {
			v, err := it.evalExpr(entry.Value, env)
			if err != nil {
				return value.Nil, err
			}
			d.Set(entry.Key, v)
		}
		return d, nil
	case *ast.UnaryExpr:
		return it.evalUnary(n, env)
	case *ast.BinaryExpr:
		return it.evalBinary(n, env)
	case *ast.LogicalExpr:
		return it.evalLogical(n, env)
	case *ast.CallExpr:
		return it.evalCall(n, env)
	case *ast.MemberExpr:
		return it.evalMember(n, env)
	case *ast.IndexExpr:
		return it.evalIndex(n, env)
	case *ast.FuncLit:
		return &value.Function{Params: n.Params, Body: n.Body, Env: env}, nil
	case *ast.TernaryExpr:
		cond, err := it.evalExpr(n.Cond, env)
		if err != nil {
			return value.Nil, err
		}
		if value.Truthy(cond) {
			return it.evalExpr(n.Then, env)
		}
		return it.evalExpr(n.Else, env)
	case *ast.LengthOfExpr:
		v, err := it.evalExpr(n.X, env)
		if err != nil {
			return value.Nil, err
		}
		return float64(lengthOf(v)), nil
	case *ast.ItemOfExpr:
		return it.evalItemOf(n, env)
	case *ast.KeepExpr:
		return it.evalKeep(n, env)
	case *ast.KeysOfExpr:
		v, err := it.evalExpr(n.X, env)
		if err != nil {
			return value.Nil, err
		}
		d, ok := v.(*value.Dict)
		if !ok {
			return value.Nil, it.runtimeErrorf(0, "'keys of' requires a dict, got %s", value.TypeOf(v))
		}
		var keys []value.Value
		for _, k := range d.Keys() {
			if k == value.ClassKey {
				continue
			}
			keys = append(keys, k)
		}
		return value.NewList(keys...), nil
	case *ast.ValuesOfExpr:
		v, err := it.evalExpr(n.X, env)
		if err != nil {
			return value.Nil, err
		}
		d, ok := v.(*value.Dict)
		if !ok {
			return value.Nil, it.runtimeErrorf(0, "'values of' requires a dict, got %s", value.TypeOf(v))
		}
		var vals []value.Value
		for _, k := range d.Keys() {
			if k == value.ClassKey {
				continue
			}
			val, _ := d.Get(k)
			vals = append(vals, val)
		}
		return value.NewList(vals...), nil
	case *ast.HasInExpr:
		return it.evalHasIn(n, env)
	case *ast.NewExpr:
		return it.evalNew(n, env)
	case *ast.AskExpr:
		prompt := ""
		if n.Prompt != nil {
			v, err := it.evalExpr(n.Prompt, env)
			if err != nil {
				return value.Nil, err
			}
			prompt = value.ToString(v)
		}
		line, err := it.Term.Ask(prompt)
		if err != nil {
			return value.Nil, err
		}
		return line, nil
	case *ast.TypeOfExpr:
		v, err := it.evalExpr(n.X, env)
		if err != nil {
			return value.Nil, err
		}
		return value.TypeOf(v), nil
	case *ast.SortExpr:
		return it.evalSort(n, env)
	case *ast.JSONOfExpr:
		v, err := it.evalExpr(n.X, env)
		if err != nil {
			return value.Nil, err
		}
		return jsonOf(v), nil
	case *ast.ParseJSONExpr:
		v, err := it.evalExpr(n.X, env)
		if err != nil {
			return value.Nil, err
		}
		parsed, perr := parseJSON(value.ToString(v))
		if perr != nil {
			return value.Nil, it.runtimeErrorf(0, "parse json: %v", perr)
		}
		return parsed, nil
	case *ast.FetchExpr:
		return it.evalFetch(n, env)
	case *ast.RunExpr:
		v, err := it.evalExpr(n.Cmd, env)
		if err != nil {
			return value.Nil, err
		}
		res := it.Proc.Run(value.ToString(v))
		d := value.NewDict()
		d.Set("output", res.Output)
		d.Set("code", float64(res.Code))
		d.Set("ok", res.OK)
		return d, nil
	case *ast.ReadFileExpr:
		v, err := it.evalExpr(n.Path, env)
		if err != nil {
			return value.Nil, err
		}
		content, rerr := it.Files.Read(value.ToString(v))
		if rerr != nil {
			return value.Nil, it.runtimeErrorf(n.Line, "read file: %v", rerr)
		}
		return content, nil
	case *ast.FileExistsExpr:
		v, err := it.evalExpr(n.Path, env)
		if err != nil {
			return value.Nil, err
		}
		return it.Files.Exists(value.ToString(v)), nil
	case *ast.LinesOfFileExpr:
		v, err := it.evalExpr(n.Path, env)
		if err != nil {
			return value.Nil, err
		}
		lines, rerr := it.Files.Lines(value.ToString(v))
		if rerr != nil {
			return value.Nil, it.runtimeErrorf(n.Line, "lines of file: %v", rerr)
		}
		out := make([]value.Value, len(lines))
		for i, l := range lines {
			out[i] = l
		}
		return value.NewList(out...), nil
	case *ast.StringOpExpr:
		return it.evalStringOp(n, env)
	}
	return value.Nil, it.runtimeErrorf(0, "unhandled expression type %T", e)
}

func (it *Interpreter) evalUnary(n *ast.UnaryExpr, env *value.Env) (value.Value, error) {
	v, err := it.evalExpr(n.X, env)
	if err != nil {
		return value.Nil, err
	}
	switch n.Op {
	case ast.MINUS:
		f, ok := v.(float64)
		if !ok {
			return value.Nil, it.runtimeErrorf(n.Line, "unary '-' requires a number, got %s", value.TypeOf(v))
		}
		return -f, nil
	case ast.NOT:
		return !value.Truthy(v), nil
	}
	return value.Nil, it.runtimeErrorf(n.Line, "unsupported unary operator")
}

func (it *Interpreter) evalBinary(n *ast.BinaryExpr, env *value.Env) (value.Value, error) {
	left, err := it.evalExpr(n.Left, env)
	if err != nil {
		return value.Nil, err
	}
	right, err := it.evalExpr(n.Right, env)
	if err != nil {
		return value.Nil, err
	}

	switch n.Op {
	case ast.EQ:
		return value.Equal(left, right), nil
	case ast.NEQ:
		return !value.Equal(left, right), nil
	}

	lf, lok := left.(float64)
	rf, rok := right.(float64)
	bothNum := lok && rok

	switch n.Op {
	case ast.PLUS:
		if bothNum {
			return lf + rf, nil
		}
		return value.ToString(left) + value.ToString(right), nil
	case ast.MINUS:
		if !bothNum {
			return value.Nil, it.runtimeErrorf(n.Line, "'-' requires two numbers")
		}
		return lf - rf, nil
	case ast.STAR:
		if !bothNum {
			return value.Nil, it.runtimeErrorf(n.Line, "'*' requires two numbers")
		}
		return lf * rf, nil
	case ast.SLASH:
		if !bothNum {
			return value.Nil, it.runtimeErrorf(n.Line, "'/' requires two numbers")
		}
		if rf == 0 {
			return value.Nil, it.runtimeErrorf(n.Line, "division by zero")
		}
		return lf / rf, nil
	case ast.PERCENT:
		if !bothNum {
			return value.Nil, it.runtimeErrorf(n.Line, "'%%' requires two numbers")
		}
		if rf == 0 {
			return value.Nil, it.runtimeErrorf(n.Line, "division by zero")
		}
		return math.Mod(lf, rf), nil
	case ast.LT, ast.GT, ast.LE, ast.GE:
		return compareOrdered(n.Op, left, right, bothNum, lf, rf), nil
	}
	return value.Nil, it.runtimeErrorf(n.Line, "unsupported binary operator")
}

func compareOrdered(op ast.Kind, left, right value.Value, bothNum bool, lf, rf float64) bool {
	var cmp int
	if bothNum {
		switch {
		case lf < rf:
			cmp = -1
		case lf > rf:
			cmp = 1
		}
	} else {
		cmp = strings.Compare(value.ToString(left), value.ToString(right))
	}
	switch op {
	case ast.LT:
		return cmp < 0
	case ast.GT:
		return cmp > 0
	case ast.LE:
		return cmp <= 0
	case ast.GE:
		return cmp >= 0
	}
	return false
}

func (it *Interpreter) evalLogical(n *ast.LogicalExpr, env *value.Env) (value.Value, error) {
	left, err := it.evalExpr(n.Left, env)
	if err != nil {
		return value.Nil, err
	}
	switch n.Op {
	case ast.AND:
		if !value.Truthy(left) {
			return left, nil
		}
	case ast.OR:
		if value.Truthy(left) {
			return left, nil
		}
	}
	return it.evalExpr(n.Right, env)
}

func (it *Interpreter) evalArgs(exprs []ast.Expr, env *value.Env) ([]value.Value, error) {
	args := make([]value.Value, len(exprs))
	for i, a := range exprs {
		v, err := it.evalExpr(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

func (it *Interpreter) evalCall(n *ast.CallExpr, env *value.Env) (value.Value, error) {
	callee, err := it.evalExpr(n.Callee, env)
	if err != nil {
		return value.Nil, err
	}
	fn, ok := callee.(*value.Function)
	if !ok {
		return value.Nil, it.runtimeErrorf(n.Line, "cannot call a %s", value.TypeOf(callee))
	}
	args, err := it.evalArgs(n.Args, env)
	if err != nil {
		return value.Nil, err
	}
	return it.call(fn, args, n.Line)
}

// call invokes a Function: native callables run directly; user functions get
// a fresh child of their captured definition environment, missing arguments
// bind to null and extra arguments are discarded.
func (it *Interpreter) call(fn *value.Function, args []value.Value, line int) (value.Value, error) {
	if fn.IsNative() {
		return fn.Native(args)
	}
	child := value.NewEnv(fn.Env)
	for i, p := range fn.Params {
		if i < len(args) {
			child.Define(p, args[i])
		} else {
			child.Define(p, value.Nil)
		}
	}
	_, ctrl, err := it.execBlock(fn.Body, child)
	if err != nil {
		return value.Nil, err
	}
	switch ctrl.Kind {
	case controlReturn:
		return ctrl.Value, nil
	case controlBreak, controlContinue:
		return value.Nil, it.runtimeErrorf(line, "'break'/'continue' used outside a loop")
	}
	return value.Nil, nil
}

func (it *Interpreter) evalMember(n *ast.MemberExpr, env *value.Env) (value.Value, error) {
	base, err := it.evalExpr(n.X, env)
	if err != nil {
		return value.Nil, err
	}
	switch b := base.(type) {
	case *value.List:
		switch n.Name {
		case "length":
			return float64(b.Len()), nil
		case "map":
			list := b
			return &value.Function{Name: "map", Native: func(args []value.Value) (value.Value, error) {
				if len(args) == 0 {
					return value.Nil, it.runtimeErrorf(n.Line, "map requires a function argument")
				}
				f, ok := args[0].(*value.Function)
				if !ok {
					return value.Nil, it.runtimeErrorf(n.Line, "map requires a function argument")
				}
				out := make([]value.Value, list.Len())
				for i, e := range list.Elems {
					v, err := it.call(f, []value.Value{e}, n.Line)
					if err != nil {
						return value.Nil, err
					}
					out[i] = v
				}
				return value.NewList(out...), nil
			}}, nil
		}
		return value.Nil, nil
	case *value.Dict:
		return it.memberOfDict(b, n.Name), nil
	}
	return value.Nil, it.runtimeErrorf(n.Line, "cannot access member %q on a %s", n.Name, value.TypeOf(base))
}

// memberOfDict resolves method lookup before plain field lookup when the
// dict is a class instance.
func (it *Interpreter) memberOfDict(d *value.Dict, name string) value.Value {
	if name == value.ClassKey {
		return value.Nil
	}
	if className, ok := d.ClassName(); ok {
		if class, ok := it.Classes.Lookup(className); ok {
			if method, ok := class.Methods[name]; ok {
				return it.bindMethod(d, method)
			}
		}
	}
	if v, ok := d.Get(name); ok {
		return v
	}
	return value.Nil
}

func (it *Interpreter) evalIndex(n *ast.IndexExpr, env *value.Env) (value.Value, error) {
	base, err := it.evalExpr(n.X, env)
	if err != nil {
		return value.Nil, err
	}
	idx, err := it.evalExpr(n.Index, env)
	if err != nil {
		return value.Nil, err
	}
	switch b := base.(type) {
	case *value.List:
		i, ok := idx.(float64)
		if !ok {
			return value.Nil, it.runtimeErrorf(n.Line, "list index must be a number")
		}
		v, _ := b.Get(int(i))
		return v, nil
	case *value.Dict:
		v, _ := b.Get(value.ToString(idx))
		return v, nil
	}
	return value.Nil, it.runtimeErrorf(n.Line, "cannot index a %s", value.TypeOf(base))
}

func (it *Interpreter) evalItemOf(n *ast.ItemOfExpr, env *value.Env) (value.Value, error) {
	nv, err := it.evalExpr(n.N, env)
	if err != nil {
		return value.Nil, err
	}
	listVal, err := it.evalExpr(n.List, env)
	if err != nil {
		return value.Nil, err
	}
	list, ok := listVal.(*value.List)
	if !ok {
		return value.Nil, it.runtimeErrorf(n.Line, "'item of' requires a list, got %s", value.TypeOf(listVal))
	}
	idx, ok := nv.(float64)
	if !ok {
		return value.Nil, it.runtimeErrorf(n.Line, "'item of' index must be a number")
	}
	i := int(idx)
	if i < 1 || i > list.Len() {
		return value.Nil, it.runtimeErrorf(n.Line, "'item %d of' out of range (length %d)", i, list.Len())
	}
	v, _ := list.Get(i - 1)
	return v, nil
}

func (it *Interpreter) evalKeep(n *ast.KeepExpr, env *value.Env) (value.Value, error) {
	listVal, err := it.evalExpr(n.List, env)
	if err != nil {
		return value.Nil, err
	}
	list, ok := listVal.(*value.List)
	if !ok {
		return value.Nil, it.runtimeErrorf(0, "'keep items in' requires a list, got %s", value.TypeOf(listVal))
	}
	whereVal, err := it.evalExpr(n.Where, env)
	if err != nil {
		return value.Nil, err
	}
	fn, ok := whereVal.(*value.Function)
	if !ok {
		return value.Nil, it.runtimeErrorf(0, "'where' clause must be a function")
	}
	var kept []value.Value
	for _, e := range list.Elems {
		v, err := it.call(fn, []value.Value{e}, 0)
		if err != nil {
			return value.Nil, err
		}
		if value.Truthy(v) {
			kept = append(kept, e)
		}
	}
	return value.NewList(kept...), nil
}

func (it *Interpreter) evalHasIn(n *ast.HasInExpr, env *value.Env) (value.Value, error) {
	needle, err := it.evalExpr(n.Needle, env)
	if err != nil {
		return value.Nil, err
	}
	haystack, err := it.evalExpr(n.Haystack, env)
	if err != nil {
		return value.Nil, err
	}
	switch h := haystack.(type) {
	case *value.List:
		for _, e := range h.Elems {
			if value.Equal(e, needle) {
				return true, nil
			}
		}
		return false, nil
	case *value.Dict:
		key := value.ToString(needle)
		if key == value.ClassKey {
			return false, nil
		}
		return h.Has(key), nil
	}
	return false, nil
}

func (it *Interpreter) evalSort(n *ast.SortExpr, env *value.Env) (value.Value, error) {
	listVal, err := it.evalExpr(n.List, env)
	if err != nil {
		return value.Nil, err
	}
	list, ok := listVal.(*value.List)
	if !ok {
		return value.Nil, it.runtimeErrorf(0, "'sort' requires a list, got %s", value.TypeOf(listVal))
	}
	out := list.Clone()

	var keyFn *value.Function
	if n.ByExpr != nil {
		kv, err := it.evalExpr(n.ByExpr, env)
		if err != nil {
			return value.Nil, err
		}
		f, ok := kv.(*value.Function)
		if !ok {
			return value.Nil, it.runtimeErrorf(0, "'sort by' callable key must be a function")
		}
		keyFn = f
	}

	key := func(v value.Value) (value.Value, error) {
		if keyFn != nil {
			return it.call(keyFn, []value.Value{v}, 0)
		}
		if n.ByField != "" {
			d, ok := v.(*value.Dict)
			if !ok {
				return value.Nil, it.runtimeErrorf(0, "'sort by' field key requires dict elements")
			}
			fv, _ := d.Get(n.ByField)
			return fv, nil
		}
		return v, nil
	}

	var sortErr error
	sort.SliceStable(out.Elems, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		ki, err := key(out.Elems[i])
		if err != nil {
			sortErr = err
			return false
		}
		kj, err := key(out.Elems[j])
		if err != nil {
			sortErr = err
			return false
		}
		kif, iok := ki.(float64)
		kjf, jok := kj.(float64)
		if iok && jok {
			return kif < kjf
		}
		return value.ToString(ki) < value.ToString(kj)
	})
	if sortErr != nil {
		return value.Nil, sortErr
	}
	return out, nil
}

func (it *Interpreter) evalFetch(n *ast.FetchExpr, env *value.Env) (value.Value, error) {
	urlVal, err := it.evalExpr(n.URL, env)
	if err != nil {
		return value.Nil, err
	}
	method := "GET"
	body := ""
	headers := map[string]string{}
	if n.With != nil {
		withVal, err := it.evalExpr(n.With, env)
		if err != nil {
			return value.Nil, err
		}
		if opts, ok := withVal.(*value.Dict); ok {
			if m, ok := opts.Get("method"); ok {
				method = value.ToString(m)
			}
			if b, ok := opts.Get("body"); ok {
				body = value.ToString(b)
			}
			if h, ok := opts.Get("headers"); ok {
				if hd, ok := h.(*value.Dict); ok {
					for _, k := range hd.Keys() {
						v, _ := hd.Get(k)
						headers[k] = value.ToString(v)
					}
				}
			}
		}
	}
	res := it.HTTP.Fetch(method, value.ToString(urlVal), body, headers)
	d := value.NewDict()
	d.Set("body", res.Body)
	d.Set("status", float64(res.Status))
	d.Set("ok", res.OK)
	return d, nil
}

func (it *Interpreter) evalStringOp(n *ast.StringOpExpr, env *value.Env) (value.Value, error) {
	args, err := it.evalArgs(n.Args, env)
	if err != nil {
		return value.Nil, err
	}
	switch n.Op {
	case ast.UPPERCASE:
		return strings.ToUpper(value.ToString(args[0])), nil
	case ast.LOWERCASE:
		return strings.ToLower(value.ToString(args[0])), nil
	case ast.TRIM:
		return strings.TrimSpace(value.ToString(args[0])), nil
	case ast.CHARS:
		s := value.ToString(args[0])
		from, ok := args[1].(float64)
		if !ok {
			return value.Nil, it.runtimeErrorf(n.Line, "'chars' bounds must be numbers")
		}
		to, ok := args[2].(float64)
		if !ok {
			return value.Nil, it.runtimeErrorf(n.Line, "'chars' bounds must be numbers")
		}
		i, j := int(from), int(to)
		if i < 0 {
			i = 0
		}
		if j > len(s) {
			j = len(s)
		}
		if i >= j {
			return "", nil
		}
		return s[i:j], nil
	case ast.SPLIT:
		s := value.ToString(args[0])
		sep := value.ToString(args[1])
		parts := strings.Split(s, sep)
		out := make([]value.Value, len(parts))
		for i, p := range parts {
			out[i] = p
		}
		return value.NewList(out...), nil
	case ast.JOIN:
		list, ok := args[0].(*value.List)
		if !ok {
			return value.Nil, it.runtimeErrorf(n.Line, "'join' requires a list")
		}
		sep := value.ToString(args[1])
		parts := make([]string, list.Len())
		for i, e := range list.Elems {
			parts[i] = value.ToString(e)
		}
		return strings.Join(parts, sep), nil
	case ast.REPLACE:
		target := value.ToString(args[0])
		old := value.ToString(args[1])
		replacement := value.ToString(args[2])
		return strings.ReplaceAll(target, old, replacement), nil
	case ast.INDEX:
		haystack := value.ToString(args[0])
		needle := value.ToString(args[1])
		return float64(strings.Index(haystack, needle)), nil
	}
	return value.Nil, it.runtimeErrorf(n.Line, "unsupported string operation")
}
