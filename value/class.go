package value

import "github.com/TheServer-lab/ironwood/ast"

// FieldDefault is one (name, default-expression) pair of a class
// definition's ordered field list.
type FieldDefault struct {
	Name string
	Expr ast.Expr
}

// Class holds everything the evaluator needs to construct instances and
// dispatch methods: the ordered field defaults, the method table, and the
// environment active when the class body was evaluated (used both to
// evaluate field defaults and as the closure parent for every method).
type Class struct {
	Name    string
	Fields  []FieldDefault
	Methods map[string]*Function
	Def     *Env
}

func NewClass(name string, def *Env) *Class {
	return &Class{Name: name, Methods: map[string]*Function{}, Def: def}
}

// Registry is a process-wide-looking class table, scoped to one
// Interpreter instance (an instance field, never a package-level map) so
// that two interpreters can coexist, per the design notes.
type Registry struct {
	classes map[string]*Class
}

func NewRegistry() *Registry { return &Registry{classes: map[string]*Class{}} }

func (r *Registry) Define(c *Class) { r.classes[c.Name] = c }

func (r *Registry) Lookup(name string) (*Class, bool) {
	c, ok := r.classes[name]
	return c, ok
}
