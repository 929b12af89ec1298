package value

import (
	"reflect"
	"testing"
)

func TestDictSetGetDelete(t *testing.T) {
	d := NewDict()
	if _, ok := d.Get("x"); ok {
		t.Fatal("empty dict should not have key x")
	}
	d.Set("x", 1.0)
	v, ok := d.Get("x")
	if !ok || v != 1.0 {
		t.Errorf("Get(x) = (%v, %v), want (1, true)", v, ok)
	}
	d.Delete("x")
	if d.Has("x") {
		t.Error("x should be gone after Delete")
	}
}

func TestDictKeysPreserveInsertionOrder(t *testing.T) {
	d := NewDict()
	d.Set("b", 1.0)
	d.Set("a", 2.0)
	d.Set("c", 3.0)
	if got, want := d.Keys(), []string{"b", "a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestDictClassName(t *testing.T) {
	d := NewDict()
	if _, ok := d.ClassName(); ok {
		t.Error("plain dict should not report a class name")
	}
	d.Set(ClassKey, "Point")
	name, ok := d.ClassName()
	if !ok || name != "Point" {
		t.Errorf("ClassName() = (%q, %v), want (Point, true)", name, ok)
	}
}

func TestDictLen(t *testing.T) {
	d := NewDict()
	d.Set("a", 1.0)
	d.Set("b", 2.0)
	if d.Len() != 2 {
		t.Errorf("Len() = %d, want 2", d.Len())
	}
}
