package runtime

import (
	"strings"
	"testing"
)

func TestTerminalSayAppendsNewline(t *testing.T) {
	var out strings.Builder
	term := NewTerminalWith(strings.NewReader(""), &out)
	term.Say("hello")
	term.Say("world")
	if got, want := out.String(), "hello\nworld\n"; got != want {
		t.Errorf("out = %q, want %q", got, want)
	}
}

func TestTerminalAskReturnsLineWithoutTerminator(t *testing.T) {
	var out strings.Builder
	term := NewTerminalWith(strings.NewReader("Ada\n"), &out)
	got, err := term.Ask("name?")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if got != "Ada" {
		t.Errorf("Ask() = %q, want %q", got, "Ada")
	}
	if !strings.Contains(out.String(), "name?") {
		t.Errorf("prompt %q was not printed, got %q", "name?", out.String())
	}
}

func TestTerminalAskTrimsCarriageReturn(t *testing.T) {
	var out strings.Builder
	term := NewTerminalWith(strings.NewReader("Ada\r\n"), &out)
	got, err := term.Ask("")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if got != "Ada" {
		t.Errorf("Ask() = %q, want %q", got, "Ada")
	}
}

func TestTerminalAskAtEOFReturnsWhateverWasRead(t *testing.T) {
	var out strings.Builder
	term := NewTerminalWith(strings.NewReader("no newline"), &out)
	got, err := term.Ask("")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if got != "no newline" {
		t.Errorf("Ask() = %q, want %q", got, "no newline")
	}
}

func TestTerminalAskWithEmptyPromptPrintsNothingExtra(t *testing.T) {
	var out strings.Builder
	term := NewTerminalWith(strings.NewReader("x\n"), &out)
	if _, err := term.Ask(""); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if out.String() != "" {
		t.Errorf("expected no prompt output, got %q", out.String())
	}
}
