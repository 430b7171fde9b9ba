package bindable

import "errors"

// Errors returned by event constructors and list operations. All of them
// describe programmer errors: the call is rejected before any state changes.
// Match with errors.Is; returned errors wrap these with call details.
var (
	// ErrInvalidArgument reports a malformed ChangeEvent: wrong item shape
	// for the action, a starting index below -1, or a Move to an unknown
	// position.
	ErrInvalidArgument = errors.New("bindable: invalid argument")

	// ErrIndexOutOfRange reports a mutation addressed outside the list bounds.
	ErrIndexOutOfRange = errors.New("bindable: index out of range")

	// ErrCyclicBinding reports a Bind that would make a list mirror itself,
	// directly or through a chain of bindings.
	ErrCyclicBinding = errors.New("bindable: cyclic binding")

	// ErrReentrantMutation reports a mutation issued from inside a handler
	// that is being notified about the same list.
	ErrReentrantMutation = errors.New("bindable: reentrant mutation")

	// ErrBoundTarget reports a direct mutation of a list that mirrors a
	// source. Mutate the source instead, or Unbind first.
	ErrBoundTarget = errors.New("bindable: list is bound to a source")
)
