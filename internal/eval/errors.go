package eval

import "errors"

// Sentinel error classes. Every error the core returns wraps exactly one of
// these via fmt.Errorf("%w: ...", ...), so callers can classify failures
// with errors.Is without parsing messages.
var (
	// ErrArgument marks a failure in the argument-binding protocol: wrong
	// type, missing required parameter, unconsumed positional/named
	// argument.
	ErrArgument = errors.New("argument error")

	// ErrBlock signals that a non-blocking compile step needs a worker
	// goroutine to proceed; it is caught by the resolver, never surfaced
	// to a user.
	ErrBlock = errors.New("block")

	// ErrInvalidData marks a value-level failure: an illegal cast, an
	// unhashable value used as a Dict key, an out-of-range field/index
	// access, or an attempt to clone a table stream.
	ErrInvalidData = errors.New("invalid data")

	// ErrGeneric covers everything else: unknown command name, scope
	// lookup failure, readonly violation, "not a command" errors.
	ErrGeneric = errors.New("error")
)

// BlockError carries the dependency list collected while a compile step
// decided it could not proceed inline, per spec.md §4.F.
type BlockError struct {
	Dependencies []Value
}

func (e *BlockError) Error() string { return "block: spawn required" }

func (e *BlockError) Unwrap() error { return ErrBlock }

func newBlockError(deps ...Value) error {
	return &BlockError{Dependencies: deps}
}

func asBlockError(err error) (*BlockError, bool) {
	var be *BlockError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
