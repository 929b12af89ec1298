// Package interp is the tree-walking evaluator: lexical scoping,
// control-flow unwinding, the class registry, the module loader, string
// interpolation, and the JSON codec.
package interp

import (
	"fmt"
	"log/slog"

	"github.com/TheServer-lab/ironwood/ast"
	"github.com/TheServer-lab/ironwood/lexer"
	"github.com/TheServer-lab/ironwood/parser"
	"github.com/TheServer-lab/ironwood/runtime"
	"github.com/TheServer-lab/ironwood/value"
)

// State is the interpreter lifecycle: ready -> parsed -> running ->
// completed, with failed reachable from any phase.
type State int

const (
	StateReady State = iota
	StateParsed
	StateRunning
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateParsed:
		return "parsed"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// module is a pinned, fully loaded `.irw` module: its AST and the
// environment its top-level script ran in are retained for the
// interpreter's entire lifetime because module functions may close over
// module locals and be called long after the module's script finished.
type module struct {
	path string
	ast  []ast.Stmt
	env  *value.Env
}

// Interpreter holds every piece of process-wide-looking state as an
// instance field — globals, the class registry, pinned module ASTs and
// environments, and the host collaborators — so two interpreters can
// coexist, per the design notes.
type Interpreter struct {
	Globals   *value.Env
	Classes   *value.Registry
	State     State
	Args      []string

	modules    []*module
	moduleByPath map[string]*value.Dict

	HTTP    runtime.HTTPClient
	Proc    runtime.ProcessRunner
	Files   runtime.FileSystem
	Term    runtime.Terminal

	Log *slog.Logger
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

func WithArgs(args []string) Option { return func(i *Interpreter) { i.Args = args } }
func WithLogger(l *slog.Logger) Option { return func(i *Interpreter) { i.Log = l } }
func WithHTTP(c runtime.HTTPClient) Option { return func(i *Interpreter) { i.HTTP = c } }
func WithProcess(p runtime.ProcessRunner) Option { return func(i *Interpreter) { i.Proc = p } }
func WithFileSystem(f runtime.FileSystem) Option { return func(i *Interpreter) { i.Files = f } }
func WithTerminal(t runtime.Terminal) Option { return func(i *Interpreter) { i.Term = t } }

func New(opts ...Option) *Interpreter {
	it := &Interpreter{
		Globals:      value.NewEnv(nil),
		Classes:      value.NewRegistry(),
		State:        StateReady,
		moduleByPath: map[string]*value.Dict{},
		Files:        runtime.NewFileSystem(),
		Term:         runtime.NewTerminal(),
		Log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(it)
	}
	// HTTP/Proc default construction happens after options run so that a
	// WithLogger override reaches their trace-id debug logging; WithHTTP/
	// WithProcess (tests substituting a fake transport) still win outright.
	if it.HTTP == nil {
		it.HTTP = runtime.NewHTTPClient(it.Log)
	}
	if it.Proc == nil {
		it.Proc = runtime.NewProcessRunner(it.Log)
	}
	it.registerGlobals()
	return it
}

// RunSource lexes, parses, and executes source text at the top level. It
// drives the ready -> parsed -> running -> completed/failed state machine.
func (it *Interpreter) RunSource(src string) error {
	stmts, err := parser.Parse(src)
	if err != nil {
		it.State = StateFailed
		return toSyntaxError(err)
	}
	it.State = StateParsed
	it.State = StateRunning

	_, ctrl, err := it.execBlock(stmts, it.Globals)
	if err != nil {
		it.State = StateFailed
		return err
	}
	if ctrl.Kind != controlNone {
		it.State = StateFailed
		return NewRuntimeError(0, "return/break/continue used outside a function or loop")
	}
	it.State = StateCompleted
	return nil
}

func toSyntaxError(err error) error {
	switch e := err.(type) {
	case *SyntaxError:
		return e
	case *parser.Error:
		return &SyntaxError{Line: e.Line, Message: fmt.Sprintf("%s (near %q)", e.Message, e.Lexeme)}
	case *lexer.Error:
		return &SyntaxError{Line: e.Line, Message: e.Message}
	}
	return &SyntaxError{Message: err.Error()}
}

func (it *Interpreter) runtimeErrorf(line int, format string, args ...any) error {
	return NewRuntimeError(line, fmt.Sprintf(format, args...))
}
