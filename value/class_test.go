package value

import (
	"testing"

	"github.com/TheServer-lab/ironwood/ast"
)

func TestRegistryDefineAndLookup(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Lookup("Point"); ok {
		t.Fatal("empty registry should not know Point")
	}
	def := NewEnv(nil)
	c := NewClass("Point", def)
	c.Fields = append(c.Fields, FieldDefault{Name: "x", Expr: &ast.NumberLit{Value: 0}})
	r.Define(c)

	got, ok := r.Lookup("Point")
	if !ok {
		t.Fatal("expected Point to be registered")
	}
	if got.Name != "Point" || got.Def != def {
		t.Errorf("Lookup returned a different class: %+v", got)
	}
	if len(got.Fields) != 1 || got.Fields[0].Name != "x" {
		t.Errorf("Fields = %+v, want one field named x", got.Fields)
	}
}

func TestNewClassInitializesMethodTable(t *testing.T) {
	c := NewClass("Empty", NewEnv(nil))
	if c.Methods == nil {
		t.Fatal("NewClass should initialize a non-nil Methods map")
	}
	if len(c.Methods) != 0 {
		t.Errorf("expected no methods, got %v", c.Methods)
	}
}
