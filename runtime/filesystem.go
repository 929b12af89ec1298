package runtime

import (
	"os"
	"strings"
)

// FileSystem is the seam for `read file`, `write ... to file`,
// `append ... to file`, `file exists`, and `lines of file`. Files are
// opened and closed within the single call that uses them; nothing here
// keeps a handle open past its own method.
type FileSystem interface {
	Read(path string) (string, error)
	Write(path, content string) error
	Append(path, content string) error
	Exists(path string) bool
	Lines(path string) ([]string, error)
}

type osFileSystem struct{}

func NewFileSystem() FileSystem { return &osFileSystem{} }

func (osFileSystem) Read(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (osFileSystem) Write(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func (osFileSystem) Append(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(content)
	return err
}

func (osFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Lines splits file content on "\n" and drops a single trailing empty
// element produced by a final newline.
func (fs osFileSystem) Lines(path string) ([]string, error) {
	content, err := fs.Read(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines, nil
}
