package bindable

import (
	"fmt"
	"slices"
)

// Apply replays e onto items and returns the resulting slice. Like append,
// the result may share items' backing array, so callers must use the return
// value. On error items is left untouched.
//
// Positional events are checked against items: a Remove, Replace or Move
// whose old items are not where the event says they are is rejected, which
// catches a mirror that drifted from its source. A Reset yields an empty
// slice; callers that can re-read the source should do so instead.
func Apply[T comparable](e ChangeEvent[T], items []T) ([]T, error) {
	switch e.action {
	case ActionAdd:
		idx := e.newStartingIndex
		if idx == -1 {
			return append(items, e.newItems...), nil
		}
		if idx > len(items) {
			return items, fmt.Errorf("%w: add at %d, length %d", ErrIndexOutOfRange, idx, len(items))
		}
		return slices.Insert(items, idx, e.newItems...), nil

	case ActionRemove:
		idx := e.oldStartingIndex
		if idx == -1 {
			return removeByValue(items, e.oldItems)
		}
		if err := checkSpan(items, e.oldItems, idx); err != nil {
			return items, err
		}
		return slices.Delete(items, idx, idx+len(e.oldItems)), nil

	case ActionReplace:
		idx := e.oldStartingIndex
		if idx == -1 {
			return items, fmt.Errorf("%w: replace at unknown position", ErrInvalidArgument)
		}
		if err := checkSpan(items, e.oldItems, idx); err != nil {
			return items, err
		}
		return slices.Replace(items, idx, idx+len(e.oldItems), e.newItems...), nil

	case ActionMove:
		item := e.oldItems[0]
		from, to := e.oldStartingIndex, e.newStartingIndex
		if from == -1 {
			from = slices.Index(items, item)
			if from == -1 {
				return items, fmt.Errorf("%w: moved item %v not present", ErrInvalidArgument, item)
			}
		}
		if from >= len(items) || to >= len(items) {
			return items, fmt.Errorf("%w: move %d to %d, length %d", ErrIndexOutOfRange, from, to, len(items))
		}
		if items[from] != item {
			return items, fmt.Errorf("%w: item at %d is %v, event moved %v", ErrInvalidArgument, from, items[from], item)
		}
		moveItem(items, from, to)
		return items, nil

	case ActionReset:
		clear(items)
		return items[:0], nil
	}
	return items, fmt.Errorf("%w: unknown action %v", ErrInvalidArgument, e.action)
}

// checkSpan verifies that want sits in items starting at idx.
func checkSpan[T comparable](items, want []T, idx int) error {
	if idx+len(want) > len(items) {
		return fmt.Errorf("%w: span %d..%d, length %d", ErrIndexOutOfRange, idx, idx+len(want), len(items))
	}
	for i, v := range want {
		if items[idx+i] != v {
			return fmt.Errorf("%w: item at %d is %v, event expected %v", ErrInvalidArgument, idx+i, items[idx+i], v)
		}
	}
	return nil
}

// removeByValue removes the first occurrence of each value in order. Equal
// values are interchangeable, so the result does not depend on which
// occurrence the original removal took.
func removeByValue[T comparable](items, values []T) ([]T, error) {
	out := slices.Clone(items)
	for _, v := range values {
		i := slices.Index(out, v)
		if i == -1 {
			return items, fmt.Errorf("%w: removed item %v not present", ErrInvalidArgument, v)
		}
		out = slices.Delete(out, i, i+1)
	}
	return out, nil
}

// moveItem shifts the elements between from and to so that the item at from
// ends up at to.
func moveItem[T any](items []T, from, to int) {
	if from == to {
		return
	}
	item := items[from]
	if from < to {
		copy(items[from:], items[from+1:to+1])
	} else {
		copy(items[to+1:], items[to:from])
	}
	items[to] = item
}
