package interp

import "github.com/TheServer-lab/ironwood/value"

// controlKind distinguishes which of return/break/continue is unwinding.
// execStmt returns a control alongside its value and error, and every
// statement that nests other statements checks it after each nested call
// and propagates without re-executing the remaining siblings.
type controlKind int

const (
	controlNone controlKind = iota
	controlReturn
	controlBreak
	controlContinue
)

type control struct {
	Kind  controlKind
	Value value.Value
}

var noControl = control{Kind: controlNone}
