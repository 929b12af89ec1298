package runtime

import (
	"path/filepath"
	"testing"
)

func TestFileSystemWriteReadAppend(t *testing.T) {
	fs := NewFileSystem()
	path := filepath.Join(t.TempDir(), "out.txt")

	if err := fs.Write(path, "first"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := fs.Append(path, "\nsecond"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	got, err := fs.Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if want := "first\nsecond"; got != want {
		t.Errorf("Read() = %q, want %q", got, want)
	}
}

func TestFileSystemExists(t *testing.T) {
	fs := NewFileSystem()
	dir := t.TempDir()
	path := filepath.Join(dir, "present.txt")
	if err := fs.Write(path, "x"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !fs.Exists(path) {
		t.Error("Exists(present.txt) should be true")
	}
	if fs.Exists(filepath.Join(dir, "absent.txt")) {
		t.Error("Exists(absent.txt) should be false")
	}
}

func TestFileSystemLinesDropsSingleTrailingEmpty(t *testing.T) {
	fs := NewFileSystem()
	path := filepath.Join(t.TempDir(), "lines.txt")
	if err := fs.Write(path, "a\nb\nc\n"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := fs.Lines(path)
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("Lines() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFileSystemLinesWithoutTrailingNewline(t *testing.T) {
	fs := NewFileSystem()
	path := filepath.Join(t.TempDir(), "lines.txt")
	if err := fs.Write(path, "a\nb"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := fs.Lines(path)
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	want := []string{"a", "b"}
	if len(got) != len(want) {
		t.Fatalf("Lines() = %v, want %v", got, want)
	}
}
