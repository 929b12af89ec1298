package parser

import (
	"testing"

	"github.com/TheServer-lab/ironwood/ast"
)

func mustParse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	stmts, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return stmts
}

func TestParseLetAndSet(t *testing.T) {
	stmts := mustParse(t, "let x = 1\nset x = 2\n")
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
	let, ok := stmts[0].(*ast.LetStmt)
	if !ok || let.Name != "x" {
		t.Fatalf("stmts[0] = %#v, want LetStmt{Name: x}", stmts[0])
	}
	set, ok := stmts[1].(*ast.SetStmt)
	if !ok {
		t.Fatalf("stmts[1] = %#v, want SetStmt", stmts[1])
	}
	if _, ok := set.Target.(*ast.Ident); !ok {
		t.Errorf("set.Target = %#v, want *ast.Ident", set.Target)
	}
}

func TestParseIfOneLineForm(t *testing.T) {
	stmts := mustParse(t, `if x > 1 then say "big"`)
	ifs, ok := stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("stmts[0] = %#v, want IfStmt", stmts[0])
	}
	if len(ifs.Then) != 1 || ifs.Else != nil {
		t.Errorf("Then = %#v, Else = %#v", ifs.Then, ifs.Else)
	}
}

func TestParseIfBlockFormWithElse(t *testing.T) {
	stmts := mustParse(t, "if x > 1\n  say \"big\"\nelse\n  say \"small\"\nend\n")
	ifs, ok := stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("stmts[0] = %#v, want IfStmt", stmts[0])
	}
	if len(ifs.Then) != 1 || len(ifs.Else) != 1 {
		t.Errorf("Then = %#v, Else = %#v", ifs.Then, ifs.Else)
	}
}

func TestParseWhileAndForEach(t *testing.T) {
	stmts := mustParse(t, "while x < 1\n  break\nend\nfor each e in xs\n  continue\nend\n")
	if _, ok := stmts[0].(*ast.WhileStmt); !ok {
		t.Errorf("stmts[0] = %#v, want WhileStmt", stmts[0])
	}
	fe, ok := stmts[1].(*ast.ForEachStmt)
	if !ok || fe.Var != "e" {
		t.Errorf("stmts[1] = %#v, want ForEachStmt{Var: e}", stmts[1])
	}
}

func TestParseFunctionStmt(t *testing.T) {
	stmts := mustParse(t, "function add(a, b)\n  return a + b\nend\n")
	fn, ok := stmts[0].(*ast.FunctionStmt)
	if !ok || fn.Name != "add" {
		t.Fatalf("stmts[0] = %#v, want FunctionStmt{Name: add}", stmts[0])
	}
	if len(fn.Fn.Params) != 2 || fn.Fn.Params[0] != "a" || fn.Fn.Params[1] != "b" {
		t.Errorf("Params = %v, want [a b]", fn.Fn.Params)
	}
}

func TestParseClassStmt(t *testing.T) {
	src := "class Point\n  let x = 0\n  function norm()\n    return x\n  end\nend\n"
	stmts := mustParse(t, src)
	cs, ok := stmts[0].(*ast.ClassStmt)
	if !ok || cs.Name != "Point" {
		t.Fatalf("stmts[0] = %#v, want ClassStmt{Name: Point}", stmts[0])
	}
	if len(cs.Body) != 2 {
		t.Errorf("Body = %#v, want 2 statements", cs.Body)
	}
}

func TestParseTryCatch(t *testing.T) {
	stmts := mustParse(t, "try\n  throw \"x\"\ncatch e\n  say e\nend\n")
	ts, ok := stmts[0].(*ast.TryStmt)
	if !ok {
		t.Fatalf("stmts[0] = %#v, want TryStmt", stmts[0])
	}
	if ts.CatchName != "e" || len(ts.CatchBody) != 1 {
		t.Errorf("CatchName = %q, CatchBody = %#v", ts.CatchName, ts.CatchBody)
	}
}

func TestParseTryWithoutCatch(t *testing.T) {
	stmts := mustParse(t, "try\n  say 1\nend\n")
	ts, ok := stmts[0].(*ast.TryStmt)
	if !ok {
		t.Fatalf("stmts[0] = %#v, want TryStmt", stmts[0])
	}
	if ts.CatchName != "" || ts.CatchBody != nil {
		t.Errorf("expected no catch clause, got CatchName=%q CatchBody=%#v", ts.CatchName, ts.CatchBody)
	}
}

func TestParseGetStmt(t *testing.T) {
	stmts := mustParse(t, `get "math.irw" as m`)
	gs, ok := stmts[0].(*ast.GetStmt)
	if !ok || gs.Path != "math.irw" || gs.As != "m" {
		t.Fatalf("stmts[0] = %#v, want GetStmt{Path: math.irw, As: m}", stmts[0])
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	stmts := mustParse(t, "let x = 1 + 2 * 3")
	let := stmts[0].(*ast.LetStmt)
	bin, ok := let.Value.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.PLUS {
		t.Fatalf("top-level op = %#v, want PLUS", let.Value)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || rhs.Op != ast.STAR {
		t.Errorf("right operand = %#v, want a STAR expression (multiplication binds tighter)", bin.Right)
	}
}

func TestParseListAndDictLiterals(t *testing.T) {
	stmts := mustParse(t, "let xs = [1, 2, 3]\nlet d = {a: 1, b: 2}\n")
	list, ok := stmts[0].(*ast.LetStmt).Value.(*ast.ListLit)
	if !ok || len(list.Elems) != 3 {
		t.Fatalf("list = %#v, want 3 elements", list)
	}
	dict, ok := stmts[1].(*ast.LetStmt).Value.(*ast.DictLit)
	if !ok || len(dict.Entries) != 2 {
		t.Fatalf("dict = %#v, want 2 entries", dict)
	}
	if dict.Entries[0].Key != "a" || dict.Entries[1].Key != "b" {
		t.Errorf("entries = %#v, want keys a, b in order", dict.Entries)
	}
}

func TestParseMemberIndexAndCallChain(t *testing.T) {
	stmts := mustParse(t, "let v = a.b[0].c(1, 2)")
	call, ok := stmts[0].(*ast.LetStmt).Value.(*ast.CallExpr)
	if !ok || len(call.Args) != 2 {
		t.Fatalf("value = %#v, want a 2-arg CallExpr", stmts[0].(*ast.LetStmt).Value)
	}
	member, ok := call.Callee.(*ast.MemberExpr)
	if !ok || member.Name != "c" {
		t.Fatalf("callee = %#v, want MemberExpr{Name: c}", call.Callee)
	}
	if _, ok := member.X.(*ast.IndexExpr); !ok {
		t.Errorf("member.X = %#v, want IndexExpr", member.X)
	}
}

func TestParseMissingEndIsAnError(t *testing.T) {
	_, err := Parse("if x > 1\n  say \"x\"\n")
	if err == nil {
		t.Fatal("expected a parse error for a missing 'end'")
	}
}

func TestParseSortByFieldVsByExpr(t *testing.T) {
	stmts := mustParse(t, "let a = sort xs by age\nlet b = sort xs by function(x) return x end\n")
	sa := stmts[0].(*ast.LetStmt).Value.(*ast.SortExpr)
	if sa.ByField != "age" || sa.ByExpr != nil {
		t.Errorf("sort by age: ByField=%q ByExpr=%#v", sa.ByField, sa.ByExpr)
	}
	sb := stmts[1].(*ast.LetStmt).Value.(*ast.SortExpr)
	if sb.ByField != "" || sb.ByExpr == nil {
		t.Errorf("sort by function: ByField=%q ByExpr=%#v", sb.ByField, sb.ByExpr)
	}
}

func TestParseNewExprWithArgs(t *testing.T) {
	stmts := mustParse(t, "let p = new Point(1, 2)")
	n, ok := stmts[0].(*ast.LetStmt).Value.(*ast.NewExpr)
	if !ok || n.Class != "Point" || len(n.Args) != 2 {
		t.Fatalf("value = %#v, want NewExpr{Class: Point, 2 args}", stmts[0].(*ast.LetStmt).Value)
	}
}

func TestParseCharsBoundedSubstring(t *testing.T) {
	stmts := mustParse(t, `let x = chars 0 to 3 of name`)
	op, ok := stmts[0].(*ast.LetStmt).Value.(*ast.StringOpExpr)
	if !ok || op.Op != ast.CHARS || len(op.Args) != 3 {
		t.Fatalf("value = %#v, want StringOpExpr{Op: CHARS, 3 args}", stmts[0].(*ast.LetStmt).Value)
	}
	if _, ok := op.Args[0].(*ast.Ident); !ok {
		t.Errorf("Args[0] = %#v, want the string subject (Ident{name})", op.Args[0])
	}
}

func TestParseAskStmtWithAndWithoutPrompt(t *testing.T) {
	stmts := mustParse(t, "ask name \"What's your name?\"\nask age\n")
	a1, ok := stmts[0].(*ast.AskStmt)
	if !ok || a1.Var != "name" || a1.Prompt == nil {
		t.Fatalf("stmts[0] = %#v, want AskStmt{Var: name, Prompt: non-nil}", stmts[0])
	}
	a2, ok := stmts[1].(*ast.AskStmt)
	if !ok || a2.Var != "age" || a2.Prompt != nil {
		t.Fatalf("stmts[1] = %#v, want AskStmt{Var: age, Prompt: nil}", stmts[1])
	}
}
