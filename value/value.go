// Package value defines the Ironwood runtime value model: a tagged union
// over Go's own dynamic type via `any`, using a type-switch style rather
// than an interface hierarchy.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/TheServer-lab/ironwood/ast"
)

// Value is any Ironwood runtime value. The concrete Go types in play are:
// Null, bool, float64, string, *List, *Dict, *Function. Evaluator code
// dispatches on these with a type switch; there is no Value interface to
// implement per-variant.
type Value any

// Null is the singleton null value's type; Nil is its only instance.
type Null struct{}

// Nil is the one and only null Value.
var Nil = Null{}

// Function unifies user-defined and native callables: exactly one of
// Body/Native is set.
type Function struct {
	Name   string
	Params []string
	Body   []ast.Stmt
	Env    *Env  // defining environment; nil for native functions
	Native func(args []Value) (Value, error)

	// IsBound marks a native function created by member access on a
	// class instance (a "bound method"); it exists only so toString and
	// diagnostics can say something more specific than "<function>" if
	// ever needed. It carries no runtime behavior difference.
	IsBound bool
}

func (f *Function) IsNative() bool { return f.Native != nil }

// Truthy implements the language's truthiness rule for every variant.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case Null:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	case *List:
		return true
	case *Dict:
		return true
	case *Function:
		return true
	case nil:
		return false
	}
	return true
}

// ToString implements the language's toString rule for every variant.
// Class instances (Dicts carrying __class__) render as Name{ k: v, ... },
// omitting the __class__ key itself.
func ToString(v Value) string {
	switch x := v.(type) {
	case Null:
		return "null"
	case nil:
		return "null"
	case bool:
		if x {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(x)
	case string:
		return x
	case *List:
		parts := make([]string, len(x.Elems))
		for i, e := range x.Elems {
			parts[i] = ToString(e)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case *Dict:
		return dictToString(x)
	case *Function:
		return "<function>"
	}
	return fmt.Sprintf("%v", v)
}

func formatNumber(x float64) string {
	if !math.IsInf(x, 0) && !math.IsNaN(x) && x == math.Trunc(x) && math.Abs(x) < 1e15 {
		return strconv.FormatInt(int64(x), 10)
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func dictToString(d *Dict) string {
	class, isInstance := d.ClassName()
	var b strings.Builder
	if isInstance {
		b.WriteString(class)
		b.WriteByte('{')
	} else {
		b.WriteByte('{')
	}
	first := true
	for _, k := range d.Keys() {
		if k == ClassKey {
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		if isInstance {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteByte(':')
		if isInstance {
			b.WriteByte(' ')
		}
		v, _ := d.Get(k)
		b.WriteString(ToString(v))
	}
	if isInstance {
		b.WriteString(" }")
	} else {
		b.WriteByte('}')
	}
	return b.String()
}

// Equal implements `==`: numeric comparison when both sides are numbers,
// otherwise comparison of the toString renderings. This intentionally
// conflates 1 and "1" — see DESIGN.md's record of this as an inherited,
// deliberately-kept open question rather than a bug to silently fix.
func Equal(a, b Value) bool {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		return af == bf
	}
	return ToString(a) == ToString(b)
}

// TypeOf returns the literal type-name string used by `type of X`.
func TypeOf(v Value) string {
	switch v.(type) {
	case Null, nil:
		return "null"
	case bool:
		return "bool"
	case float64:
		return "number"
	case string:
		return "string"
	case *List:
		return "list"
	case *Dict:
		return "dict"
	case *Function:
		return "function"
	}
	return "null"
}
