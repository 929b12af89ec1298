package lexer

import (
	"testing"

	"github.com/TheServer-lab/ironwood/ast"
)

func kinds(toks []ast.Token) []ast.Kind {
	out := make([]ast.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func mustTokenize(t *testing.T, src string) []ast.Token {
	t.Helper()
	toks, err := New(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", src, err)
	}
	return toks
}

func TestTokenizeSimpleLet(t *testing.T) {
	toks := mustTokenize(t, `let x = 5`)
	got := kinds(toks)
	want := []ast.Kind{ast.LET, ast.IDENT, ast.ASSIGN, ast.NUMBER, ast.NEWLINE, ast.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSemicolonStartsLineComment(t *testing.T) {
	toks := mustTokenize(t, "let x = 1 ; this is a comment\nlet y = 2")
	got := kinds(toks)
	want := []ast.Kind{
		ast.LET, ast.IDENT, ast.ASSIGN, ast.NUMBER, ast.NEWLINE,
		ast.LET, ast.IDENT, ast.ASSIGN, ast.NUMBER, ast.NEWLINE, ast.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSemicolonConsumesRestOfLineIncludingKeywords(t *testing.T) {
	// The text after ';' is discarded wholesale, including an 'end' that
	// would otherwise close a block — this is why Ironwood source never
	// uses ';' to separate same-line statements.
	toks := mustTokenize(t, "say 1 ; end end end")
	got := kinds(toks)
	want := []ast.Kind{ast.SAY, ast.NUMBER, ast.NEWLINE, ast.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNegativeNumberLiteralVsSubtraction(t *testing.T) {
	lit := mustTokenize(t, "(-5)")
	if kinds(lit)[1] != ast.NUMBER {
		t.Errorf("(-5) should lex '-5' as one negative number literal, got %v", kinds(lit))
	}
	if lit[1].Num != -5 {
		t.Errorf("negative literal value = %v, want -5", lit[1].Num)
	}

	sub := mustTokenize(t, "a - 5")
	want := []ast.Kind{ast.IDENT, ast.MINUS, ast.NUMBER, ast.NEWLINE, ast.EOF}
	if got := kinds(sub); len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	} else {
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
			}
		}
	}
}

func TestStringEscapes(t *testing.T) {
	toks := mustTokenize(t, `"a\nb\tc\"d"`)
	if toks[0].Kind != ast.STRING {
		t.Fatalf("expected a STRING token, got %v", toks[0].Kind)
	}
	if want := "a\nb\tc\"d"; toks[0].Lexeme != want {
		t.Errorf("got %q, want %q", toks[0].Lexeme, want)
	}
}

func TestUnterminatedStringIsAnError(t *testing.T) {
	_, err := New(`"unterminated`).Tokenize()
	if err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestContextualKeywordLexesAsKeywordKind(t *testing.T) {
	// The lexer always lexes 'type' as the TYPE keyword; whether it behaves
	// as a keyword or a plain name is decided later by the parser via the
	// Contextual table, not here.
	toks := mustTokenize(t, "let type = 1")
	if toks[1].Kind != ast.TYPE {
		t.Errorf("got %v, want TYPE", toks[1].Kind)
	}
}

func TestConsecutiveNewlinesCollapseToOne(t *testing.T) {
	toks := mustTokenize(t, "let x = 1\n\n\nlet y = 2")
	count := 0
	for _, tok := range toks {
		if tok.Kind == ast.NEWLINE {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected exactly 2 NEWLINE tokens (one between statements, one at EOF), got %d", count)
	}
}

func TestTwoCharOperators(t *testing.T) {
	toks := mustTokenize(t, "a == b != c <= d >= e")
	got := kinds(toks)
	want := []ast.Kind{
		ast.IDENT, ast.EQ, ast.IDENT, ast.NEQ, ast.IDENT, ast.LE, ast.IDENT,
		ast.GE, ast.IDENT, ast.NEWLINE, ast.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
