package annot

import (
	"errors"
	"fmt"
)

var (
	// ErrNestedPrimary reports a primary marker while another block is still open.
	ErrNestedPrimary = errors.New("fix block opened while previous block is still open")
	// ErrOrphanContinuation reports a continuation marker with no open block.
	ErrOrphanContinuation = errors.New("continuation marker without an open fix block")
)

// ParseError locates a malformed marker sequence. It unwraps to one of the
// sentinel errors above.
type ParseError struct {
	Path string
	Line int // 1-based
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	path := e.Path
	if path == "" {
		path = "<input>"
	}
	return fmt.Sprintf("%s:%d: %v: %s", path, e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }
