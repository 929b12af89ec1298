package interp

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/TheServer-lab/ironwood/value"
)

// registerGlobals installs the globals injected into every program:
// parseInt, parseFloat, toString, len, math.*, args. The stdlib/std module
// (see module.go) additionally exposes math.*, io.*, and add — kept as a
// separate synthetic dict rather than aliasing the same globals map, so
// a script that shadows a global name doesn't also shadow the stdlib
// member of the same name.
func (it *Interpreter) registerGlobals() {
	it.Globals.Define("parseInt", nativeFn("parseInt", func(args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Nil, nil
		}
		n, err := strconv.ParseFloat(value.ToString(args[0]), 64)
		if err != nil {
			return value.Nil, nil
		}
		return math.Trunc(n), nil
	}))

	it.Globals.Define("parseFloat", nativeFn("parseFloat", func(args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Nil, nil
		}
		n, err := strconv.ParseFloat(value.ToString(args[0]), 64)
		if err != nil {
			return value.Nil, nil
		}
		return n, nil
	}))

	it.Globals.Define("toString", nativeFn("toString", func(args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return "", nil
		}
		return value.ToString(args[0]), nil
	}))

	it.Globals.Define("len", nativeFn("len", func(args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return float64(0), nil
		}
		return float64(lengthOf(args[0])), nil
	}))

	mathPkg := buildMathDict()
	it.Globals.Define("math", mathPkg)

	argList := make([]value.Value, len(it.Args))
	for i, a := range it.Args {
		argList[i] = a
	}
	it.Globals.Define("args", value.NewList(argList...))
}

func nativeFn(name string, f func(args []value.Value) (value.Value, error)) *value.Function {
	return &value.Function{Name: name, Native: f}
}

func lengthOf(v value.Value) int {
	switch x := v.(type) {
	case string:
		return len(x)
	case *value.List:
		return x.Len()
	case *value.Dict:
		return x.Len()
	}
	return 0
}

// buildMathDict builds the math namespace as a plain Dict of native
// functions — a "small namespace object" expressed as a Dict since
// Ironwood has no separate package-value kind: member access on a Dict
// already does everything a namespace needs.
func buildMathDict() *value.Dict {
	d := value.NewDict()
	d.Set("abs", nativeFn("math.abs", func(args []value.Value) (value.Value, error) {
		return math.Abs(argNum(args, 0)), nil
	}))
	d.Set("floor", nativeFn("math.floor", func(args []value.Value) (value.Value, error) {
		return math.Floor(argNum(args, 0)), nil
	}))
	d.Set("ceil", nativeFn("math.ceil", func(args []value.Value) (value.Value, error) {
		return math.Ceil(argNum(args, 0)), nil
	}))
	d.Set("sqrt", nativeFn("math.sqrt", func(args []value.Value) (value.Value, error) {
		return math.Sqrt(argNum(args, 0)), nil
	}))
	d.Set("pow", nativeFn("math.pow", func(args []value.Value) (value.Value, error) {
		return math.Pow(argNum(args, 0), argNum(args, 1)), nil
	}))
	d.Set("random", nativeFn("math.random", func(args []value.Value) (value.Value, error) {
		return rand.Float64(), nil
	}))
	return d
}

func argNum(args []value.Value, i int) float64 {
	if i >= len(args) {
		return 0
	}
	f, _ := args[i].(float64)
	return f
}

// buildIODict builds the io namespace exposed only through get "std"/
// "stdlib" — io.alert/io.prompt/io.confirm are not injected globals,
// only stdlib members.
func (it *Interpreter) buildIODict() *value.Dict {
	d := value.NewDict()
	d.Set("alert", nativeFn("io.alert", func(args []value.Value) (value.Value, error) {
		if len(args) > 0 {
			it.Term.Say(value.ToString(args[0]))
		}
		return value.Nil, nil
	}))
	d.Set("prompt", nativeFn("io.prompt", func(args []value.Value) (value.Value, error) {
		prompt := ""
		if len(args) > 0 {
			prompt = value.ToString(args[0])
		}
		line, err := it.Term.Ask(prompt)
		if err != nil {
			return "", nil
		}
		return line, nil
	}))
	d.Set("confirm", nativeFn("io.confirm", func(args []value.Value) (value.Value, error) {
		prompt := ""
		if len(args) > 0 {
			prompt = value.ToString(args[0])
		}
		line, _ := it.Term.Ask(prompt)
		return line == "y" || line == "yes" || line == "true", nil
	}))
	return d
}

// buildStdlibDict builds the synthetic `std`/`stdlib` module dict: math,
// io, and the convenience `add`.
func (it *Interpreter) buildStdlibDict() *value.Dict {
	d := value.NewDict()
	d.Set("math", buildMathDict())
	d.Set("io", it.buildIODict())
	d.Set("add", nativeFn("add", func(args []value.Value) (value.Value, error) {
		return argNum(args, 0) + argNum(args, 1), nil
	}))
	return d
}
