package interp

import (
	"fmt"

	"github.com/TheServer-lab/ironwood/runtime"
)

// fakeFileSystem is an in-memory runtime.FileSystem: a seam for feeding
// known content without touching the real filesystem.
type fakeFileSystem struct {
	files map[string]string
	reads int
}

func (f *fakeFileSystem) Read(path string) (string, error) {
	f.reads++
	content, ok := f.files[path]
	if !ok {
		return "", fmt.Errorf("no such file %q", path)
	}
	return content, nil
}

func (f *fakeFileSystem) Write(path, content string) error {
	f.files[path] = content
	return nil
}

func (f *fakeFileSystem) Append(path, content string) error {
	f.files[path] += content
	return nil
}

func (f *fakeFileSystem) Exists(path string) bool {
	_, ok := f.files[path]
	return ok
}

func (f *fakeFileSystem) Lines(path string) ([]string, error) {
	content, err := f.Read(path)
	if err != nil {
		return nil, err
	}
	var out []string
	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			out = append(out, content[start:i])
			start = i + 1
		}
	}
	if start < len(content) {
		out = append(out, content[start:])
	}
	return out, nil
}

// fakeHTTPClient is an HTTPGetText-echo idea generalized to the
// full FetchResult shape.
type fakeHTTPClient struct {
	status    int
	body      string
	ok        bool
	gotMethod string
	gotURL    string
}

func (f *fakeHTTPClient) Fetch(method, rawURL, body string, headers map[string]string) runtime.FetchResult {
	f.gotMethod = method
	f.gotURL = rawURL
	ok := f.ok
	if f.status >= 200 && f.status < 300 {
		ok = true
	}
	return runtime.FetchResult{Body: f.body, Status: f.status, OK: ok}
}

type fakeProcessRunner struct {
	output     string
	code       int
	ok         bool
	gotCommand string
}

func (f *fakeProcessRunner) Run(command string) runtime.RunResult {
	f.gotCommand = command
	return runtime.RunResult{Output: f.output, Code: f.code, OK: f.ok}
}
