package ecc

import (
	"fmt"

	"github.com/pkg/errors"
)

// Fault is an internal consistency failure raised by the arithmetic.
// It always indicates a bug or malformed internal state, never bad caller
// input, and callers are expected to treat it as fatal.
type Fault struct {
	Op     string
	Reason string
	Err    error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("fault in %s: %s: %v", f.Op, f.Reason, f.Err)
	}
	return fmt.Sprintf("fault in %s: %s", f.Op, f.Reason)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// NewFault creates a new Fault.
func NewFault(op, reason string, err error) *Fault {
	return &Fault{
		Op:     op,
		Reason: reason,
		Err:    err,
	}
}

// IsFault reports whether err carries a Fault anywhere in its chain.
func IsFault(err error) bool {
	var f *Fault
	return errors.As(err, &f)
}
