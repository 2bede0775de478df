package pass

import (
	"errors"
	"fmt"
)

// ErrNilTree is returned by Run when the input tree is nil.
var ErrNilTree = errors.New("pass: nil input tree")

// PassFailure reports the pass that stopped a pipeline. The snapshots
// produced before it remain valid in the Result returned alongside.
type PassFailure struct {
	// Index is the 0-based position of the failing pass.
	Index int

	// Pass is the name of the failing pass.
	Pass string

	// Kind is the kind of the failing pass.
	Kind Kind

	// Message is the human-readable failure description.
	Message string

	// Err is the underlying error. It is nil when an external pass
	// answered with a failure envelope.
	Err error
}

// Error returns the error message.
func (f *PassFailure) Error() string {
	return fmt.Sprintf("pass %d (%s) failed: %s", f.Index, f.Pass, f.Message)
}

// Unwrap returns the underlying error.
func (f *PassFailure) Unwrap() error {
	return f.Err
}

// Declined reports whether the pass answered with a failure envelope
// rather than erroring.
func (f *PassFailure) Declined() bool {
	return f.Err == nil
}

func newFailure(index int, p Pass, err error) *PassFailure {
	f := &PassFailure{Index: index, Pass: p.Name(), Kind: p.Kind(), Message: err.Error(), Err: err}
	var d *declined
	if errors.As(err, &d) {
		f.Err = nil
	}
	return f
}
