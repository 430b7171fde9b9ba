package bindable

import (
	"fmt"
	"slices"
)

// ChangeAction identifies the kind of mutation a ChangeEvent describes.
type ChangeAction uint8

const (
	ActionAdd     ChangeAction = iota // items entered the list
	ActionRemove                      // items left the list
	ActionReplace                     // items were swapped in place
	ActionMove                        // one item changed position
	ActionReset                       // discard everything and re-read the list
)

var actionNames = [...]string{
	ActionAdd:     "Add",
	ActionRemove:  "Remove",
	ActionReplace: "Replace",
	ActionMove:    "Move",
	ActionReset:   "Reset",
}

func (a ChangeAction) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("ChangeAction(%d)", a)
}

// ChangeEvent describes one mutation of an ordered collection. Events are
// built by the constructors below and never change afterwards.
//
// Index fields use -1 for "not applicable" or "position unknown"; -1 is
// never a real position.
type ChangeEvent[T comparable] struct {
	action           ChangeAction
	newItems         []T
	oldItems         []T
	newStartingIndex int
	oldStartingIndex int
}

// Action returns the kind of mutation.
func (e ChangeEvent[T]) Action() ChangeAction { return e.action }

// NewItems returns the items that entered the collection. The returned slice
// belongs to the event and MUST NOT be mutated.
func (e ChangeEvent[T]) NewItems() []T { return e.newItems }

// OldItems returns the items that left the collection. The returned slice
// belongs to the event and MUST NOT be mutated.
func (e ChangeEvent[T]) OldItems() []T { return e.oldItems }

// NewStartingIndex returns where NewItems were inserted, or -1.
func (e ChangeEvent[T]) NewStartingIndex() int { return e.newStartingIndex }

// OldStartingIndex returns where OldItems were taken from, or -1.
func (e ChangeEvent[T]) OldStartingIndex() int { return e.oldStartingIndex }

func (e ChangeEvent[T]) String() string {
	switch e.action {
	case ActionAdd:
		return fmt.Sprintf("Add(%v at %d)", e.newItems, e.newStartingIndex)
	case ActionRemove:
		return fmt.Sprintf("Remove(%v at %d)", e.oldItems, e.oldStartingIndex)
	case ActionReplace:
		return fmt.Sprintf("Replace(%v with %v at %d)", e.oldItems, e.newItems, e.newStartingIndex)
	case ActionMove:
		return fmt.Sprintf("Move(%v from %d to %d)", e.newItems, e.oldStartingIndex, e.newStartingIndex)
	default:
		return e.action.String()
	}
}

// NewAddOrRemoveEvent builds an Add or Remove event for a batch of items.
// startingIndex is the position of the first item, or -1 when unknown.
func NewAddOrRemoveEvent[T comparable](action ChangeAction, items []T, startingIndex int) (ChangeEvent[T], error) {
	if action != ActionAdd && action != ActionRemove {
		return ChangeEvent[T]{}, fmt.Errorf("%w: action %v is not Add or Remove", ErrInvalidArgument, action)
	}
	if startingIndex < -1 {
		return ChangeEvent[T]{}, fmt.Errorf("%w: starting index %d < -1", ErrInvalidArgument, startingIndex)
	}
	if len(items) == 0 {
		return ChangeEvent[T]{}, fmt.Errorf("%w: %v event with no items", ErrInvalidArgument, action)
	}
	e := ChangeEvent[T]{action: action, newStartingIndex: -1, oldStartingIndex: -1}
	if action == ActionAdd {
		e.newItems = slices.Clone(items)
		e.newStartingIndex = startingIndex
	} else {
		e.oldItems = slices.Clone(items)
		e.oldStartingIndex = startingIndex
	}
	return e, nil
}

// NewReplaceEvent builds a Replace event: oldItems starting at startingIndex
// were replaced by newItems.
func NewReplaceEvent[T comparable](newItems, oldItems []T, startingIndex int) (ChangeEvent[T], error) {
	if startingIndex < -1 {
		return ChangeEvent[T]{}, fmt.Errorf("%w: starting index %d < -1", ErrInvalidArgument, startingIndex)
	}
	return ChangeEvent[T]{
		action:           ActionReplace,
		newItems:         slices.Clone(newItems),
		oldItems:         slices.Clone(oldItems),
		newStartingIndex: startingIndex,
		oldStartingIndex: startingIndex,
	}, nil
}

// NewMoveEvent builds a one-item Move event. newIndex must be a real
// position; oldIndex may be -1 if the prior position is unknown.
func NewMoveEvent[T comparable](item T, newIndex, oldIndex int) (ChangeEvent[T], error) {
	if newIndex < 0 {
		return ChangeEvent[T]{}, fmt.Errorf("%w: move to index %d", ErrInvalidArgument, newIndex)
	}
	if oldIndex < -1 {
		return ChangeEvent[T]{}, fmt.Errorf("%w: move from index %d < -1", ErrInvalidArgument, oldIndex)
	}
	// One backing array for both sides; the event never writes to it.
	items := []T{item}
	return ChangeEvent[T]{
		action:           ActionMove,
		newItems:         items,
		oldItems:         items,
		newStartingIndex: newIndex,
		oldStartingIndex: oldIndex,
	}, nil
}

// NewResetEvent builds a Reset event. It carries no items.
func NewResetEvent[T comparable]() ChangeEvent[T] {
	return ChangeEvent[T]{action: ActionReset, newStartingIndex: -1, oldStartingIndex: -1}
}

// NewChangeEvent builds an event from raw fields and checks every invariant
// of its action. It is meant for code that decodes or forwards events; list
// operations use the dedicated constructors.
func NewChangeEvent[T comparable](action ChangeAction, newItems, oldItems []T, newStartingIndex, oldStartingIndex int) (ChangeEvent[T], error) {
	switch action {
	case ActionAdd:
		if len(oldItems) != 0 || oldStartingIndex != -1 {
			return ChangeEvent[T]{}, fmt.Errorf("%w: Add event with old items or old index", ErrInvalidArgument)
		}
		return NewAddOrRemoveEvent(ActionAdd, newItems, newStartingIndex)
	case ActionRemove:
		if len(newItems) != 0 || newStartingIndex != -1 {
			return ChangeEvent[T]{}, fmt.Errorf("%w: Remove event with new items or new index", ErrInvalidArgument)
		}
		return NewAddOrRemoveEvent(ActionRemove, oldItems, oldStartingIndex)
	case ActionReplace:
		if len(newItems) == 0 || len(oldItems) == 0 {
			return ChangeEvent[T]{}, fmt.Errorf("%w: Replace event needs new and old items", ErrInvalidArgument)
		}
		if newStartingIndex != oldStartingIndex {
			return ChangeEvent[T]{}, fmt.Errorf("%w: Replace event indices differ (%d, %d)",
				ErrInvalidArgument, newStartingIndex, oldStartingIndex)
		}
		return NewReplaceEvent(newItems, oldItems, newStartingIndex)
	case ActionMove:
		if len(newItems) != 1 || len(oldItems) != 1 {
			return ChangeEvent[T]{}, fmt.Errorf("%w: Move event with %d new and %d old items",
				ErrInvalidArgument, len(newItems), len(oldItems))
		}
		if newItems[0] != oldItems[0] {
			return ChangeEvent[T]{}, fmt.Errorf("%w: Move event items differ", ErrInvalidArgument)
		}
		return NewMoveEvent(newItems[0], newStartingIndex, oldStartingIndex)
	case ActionReset:
		if len(newItems) != 0 || len(oldItems) != 0 || newStartingIndex != -1 || oldStartingIndex != -1 {
			return ChangeEvent[T]{}, fmt.Errorf("%w: Reset event with payload", ErrInvalidArgument)
		}
		return NewResetEvent[T](), nil
	default:
		return ChangeEvent[T]{}, fmt.Errorf("%w: unknown action %v", ErrInvalidArgument, action)
	}
}
