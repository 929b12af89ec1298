package value

import "github.com/iancoleman/orderedmap"

// ClassKey is the reserved field marking a Dict as a class instance; its
// value is the class name. No ordinary field/index assignment may rewrite
// it once construction has set it (the evaluator enforces this, not Dict
// itself, matching the language's "silently ignored" posture toward
// assignment shapes it doesn't recognize).
const ClassKey = "__class__"

// Dict is the shared, mutable, insertion-order-preserving keyed mapping
// backing the language's dict value, and also every class instance (a
// Dict additionally carrying ClassKey). Backed by orderedmap.OrderedMap
// rather than a hand-rolled slice+map pair.
type Dict struct {
	m *orderedmap.OrderedMap
}

func NewDict() *Dict {
	return &Dict{m: orderedmap.New()}
}

func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.m.Get(key)
	if !ok {
		return Nil, false
	}
	return v, true
}

func (d *Dict) Set(key string, v Value) { d.m.Set(key, v) }

func (d *Dict) Delete(key string) { d.m.Delete(key) }

func (d *Dict) Has(key string) bool {
	_, ok := d.m.Get(key)
	return ok
}

// Keys returns every key in insertion order, including ClassKey if
// present. Callers that must skip the class marker (keys of/values
// of/has...in) filter it themselves, keeping Dict itself ignorant of the
// class-instance convention beyond storage.
func (d *Dict) Keys() []string { return d.m.Keys() }

func (d *Dict) Len() int { return len(d.m.Keys()) }

// ClassName reports the class name and true if this Dict is a class
// instance (carries ClassKey).
func (d *Dict) ClassName() (string, bool) {
	v, ok := d.Get(ClassKey)
	if !ok {
		return "", false
	}
	name, ok := v.(string)
	return name, ok
}
