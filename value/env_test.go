package value

import "testing"

func TestEnvGetWalksParentChain(t *testing.T) {
	root := NewEnv(nil)
	root.Define("x", 1.0)
	child := NewEnv(root)
	grandchild := NewEnv(child)

	v, ok := grandchild.Get("x")
	if !ok || v != 1.0 {
		t.Errorf("Get(x) from grandchild = (%v, %v), want (1, true)", v, ok)
	}
	if _, ok := grandchild.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}
}

func TestEnvDefineShadowsParent(t *testing.T) {
	root := NewEnv(nil)
	root.Define("x", 1.0)
	child := NewEnv(root)
	child.Define("x", 2.0)

	if v, _ := child.Get("x"); v != 2.0 {
		t.Errorf("child Get(x) = %v, want 2", v)
	}
	if v, _ := root.Get("x"); v != 1.0 {
		t.Errorf("root Get(x) = %v, want 1 (shadowing should not mutate the parent)", v)
	}
}

func TestEnvAssignUpdatesNearestExistingBinding(t *testing.T) {
	root := NewEnv(nil)
	root.Define("x", 1.0)
	child := NewEnv(root)

	child.Assign("x", 99.0)

	if v, _ := root.Get("x"); v != 99.0 {
		t.Errorf("Assign should update the existing binding in the parent, got %v", v)
	}
	if _, ok := child.Vars["x"]; ok {
		t.Error("Assign should not create a new binding in the child scope when the parent already has one")
	}
}

func TestEnvAssignUndefinedCreatesInCallingScope(t *testing.T) {
	root := NewEnv(nil)
	child := NewEnv(root)

	child.Assign("y", 5.0)

	if _, ok := root.Vars["y"]; ok {
		t.Error("Assign on an unbound name should not leak into the parent")
	}
	if v, ok := child.Vars["y"]; !ok || v != 5.0 {
		t.Errorf("Assign on an unbound name should define it in the calling scope, got (%v, %v)", v, ok)
	}
}
