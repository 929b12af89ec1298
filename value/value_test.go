package value

import "testing"

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Nil, false},
		{nil, false},
		{true, true},
		{false, false},
		{0.0, false},
		{1.0, true},
		{-1.0, true},
		{"", false},
		{"x", true},
		{NewList(), true},
		{NewDict(), true},
		{&Function{}, true},
	}
	for _, c := range cases {
		if got := Truthy(c.v); got != c.want {
			t.Errorf("Truthy(%#v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestToStringNumbers(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{5, "5"},
		{-5, "-5"},
		{2.5, "2.5"},
		{999999999999999, "999999999999999"},
		{1e20, "1e+20"},
	}
	for _, c := range cases {
		if got := ToString(c.v); got != c.want {
			t.Errorf("ToString(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestToStringCollections(t *testing.T) {
	l := NewList(1.0, "a", true)
	if got, want := ToString(l), `[1,a,true]`; got != want {
		t.Errorf("ToString(list) = %q, want %q", got, want)
	}

	d := NewDict()
	d.Set("x", 1.0)
	d.Set("y", 2.0)
	if got, want := ToString(d), `{x:1,y:2}`; got != want {
		t.Errorf("ToString(dict) = %q, want %q", got, want)
	}
}

func TestToStringClassInstanceOmitsClassKey(t *testing.T) {
	d := NewDict()
	d.Set(ClassKey, "Point")
	d.Set("x", 3.0)
	if got, want := ToString(d), `Point{ x: 3 }`; got != want {
		t.Errorf("ToString(instance) = %q, want %q", got, want)
	}
}

func TestEqualConflatesNumberAndStringRenderings(t *testing.T) {
	if !Equal(1.0, "1") {
		t.Error("Equal(1.0, \"1\") should be true per the toString-based rule")
	}
	if Equal(1.0, 2.0) {
		t.Error("Equal(1.0, 2.0) should be false")
	}
	if !Equal("abc", "abc") {
		t.Error("Equal(\"abc\", \"abc\") should be true")
	}
}

func TestTypeOf(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Nil, "null"},
		{nil, "null"},
		{true, "bool"},
		{1.0, "number"},
		{"s", "string"},
		{NewList(), "list"},
		{NewDict(), "dict"},
		{&Function{}, "function"},
	}
	for _, c := range cases {
		if got := TypeOf(c.v); got != c.want {
			t.Errorf("TypeOf(%#v) = %q, want %q", c.v, got, c.want)
		}
	}
}
