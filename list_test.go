package bindable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects every event delivered to it.
type recorder[T comparable] struct {
	events []ChangeEvent[T]
}

func (r *recorder[T]) handle(e ChangeEvent[T]) {
	r.events = append(r.events, e)
}

func record[T comparable](l *List[T], replay bool) *recorder[T] {
	r := &recorder[T]{}
	l.Subscribe(r.handle, replay)
	return r
}

func (r *recorder[T]) last(t *testing.T) ChangeEvent[T] {
	t.Helper()
	require.NotEmpty(t, r.events)
	return r.events[len(r.events)-1]
}

func TestNewListCopiesItems(t *testing.T) {
	items := []int{1, 2}
	l := NewList(items...)
	items[0] = 9
	assert.Equal(t, []int{1, 2}, l.Items())
	assert.Equal(t, 2, l.Len())
}

func TestListRead(t *testing.T) {
	l := NewList("a", "b", "a")
	assert.Equal(t, "b", l.At(1))
	assert.Equal(t, 0, l.IndexOf("a"))
	assert.Equal(t, -1, l.IndexOf("z"))
	assert.True(t, l.Contains("b"))
	assert.False(t, l.Contains("z"))

	var seen []string
	for i, v := range l.All() {
		assert.Equal(t, l.At(i), v)
		seen = append(seen, v)
	}
	assert.Equal(t, []string{"a", "b", "a"}, seen)

	items := l.Items()
	items[0] = "mutated"
	assert.Equal(t, "a", l.At(0), "Items must return a copy")
}

func TestListAdd_EmptyList(t *testing.T) {
	l := NewList[int]()
	r := record(l, false)

	require.NoError(t, l.Add(5))

	assert.Equal(t, []int{5}, l.Items())
	require.Len(t, r.events, 1)
	e := r.events[0]
	assert.Equal(t, ActionAdd, e.Action())
	assert.Equal(t, []int{5}, e.NewItems())
	assert.Equal(t, 0, e.NewStartingIndex())
	assert.Empty(t, e.OldItems())
	assert.Equal(t, -1, e.OldStartingIndex())
}

func TestListAddRange(t *testing.T) {
	l := NewList(1)
	r := record(l, false)

	require.NoError(t, l.AddRange([]int{2, 3}))
	require.NoError(t, l.AddRange(nil))

	assert.Equal(t, []int{1, 2, 3}, l.Items())
	require.Len(t, r.events, 1, "empty batch emits nothing")
	assert.Equal(t, []int{2, 3}, r.events[0].NewItems())
	assert.Equal(t, 1, r.events[0].NewStartingIndex())
}

func TestListInsert(t *testing.T) {
	l := NewList(1, 4)
	r := record(l, false)

	require.NoError(t, l.InsertRange(1, []int{2, 3}))
	require.NoError(t, l.Insert(0, 0))
	require.NoError(t, l.Insert(5, 5))

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, l.Items())
	require.Len(t, r.events, 3)
	assert.Equal(t, 1, r.events[0].NewStartingIndex())
	assert.Equal(t, 0, r.events[1].NewStartingIndex())
	assert.Equal(t, 5, r.events[2].NewStartingIndex())

	assert.ErrorIs(t, l.Insert(7, 9), ErrIndexOutOfRange)
	assert.ErrorIs(t, l.Insert(-1, 9), ErrIndexOutOfRange)
	assert.Len(t, r.events, 3)
}

func TestListRemove(t *testing.T) {
	l := NewList(3, 5, 7)
	r := record(l, false)

	ok, err := l.Remove(5)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, []int{3, 7}, l.Items())
	e := r.last(t)
	assert.Equal(t, ActionRemove, e.Action())
	assert.Equal(t, []int{5}, e.OldItems())
	assert.Equal(t, 1, e.OldStartingIndex())
	assert.Equal(t, -1, e.NewStartingIndex())
}

func TestListRemove_Absent(t *testing.T) {
	l := NewList(3, 7)
	r := record(l, false)

	ok, err := l.Remove(5)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, r.events)
}

func TestListRemove_FirstOccurrence(t *testing.T) {
	l := NewList(1, 2, 1)
	r := record(l, false)

	_, err := l.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, l.Items())
	assert.Equal(t, 0, r.last(t).OldStartingIndex())
}

func TestListRemoveAt(t *testing.T) {
	l := NewList("a", "b", "c")
	r := record(l, false)

	require.NoError(t, l.RemoveAt(2))
	assert.Equal(t, []string{"a", "b"}, l.Items())
	assert.Equal(t, 2, r.last(t).OldStartingIndex())

	assert.ErrorIs(t, l.RemoveAt(2), ErrIndexOutOfRange)
	assert.ErrorIs(t, l.RemoveAt(-1), ErrIndexOutOfRange)
	assert.Len(t, r.events, 1)
}

func TestListRemoveRange(t *testing.T) {
	l := NewList(0, 1, 2, 3, 4)
	r := record(l, false)

	require.NoError(t, l.RemoveRange(1, 3))
	assert.Equal(t, []int{0, 4}, l.Items())
	assert.Equal(t, []int{1, 2, 3}, r.last(t).OldItems())
	assert.Equal(t, 1, r.last(t).OldStartingIndex())

	require.NoError(t, l.RemoveRange(1, 0))
	assert.Len(t, r.events, 1)

	assert.ErrorIs(t, l.RemoveRange(1, 2), ErrIndexOutOfRange)
	assert.ErrorIs(t, l.RemoveRange(0, -1), ErrIndexOutOfRange)
}

func TestListRemoveAll_RunsFromTheEnd(t *testing.T) {
	l := NewList(1, 2, 2, 3, 2, 4)
	r := record(l, false)

	calls := 0
	n, err := l.RemoveAll(func(v int) bool {
		calls++
		return v == 2
	})
	require.NoError(t, err)

	assert.Equal(t, 3, n)
	assert.Equal(t, 6, calls, "match runs once per item")
	assert.Equal(t, []int{1, 3, 4}, l.Items())
	require.Len(t, r.events, 2)
	assert.Equal(t, []int{2}, r.events[0].OldItems())
	assert.Equal(t, 4, r.events[0].OldStartingIndex())
	assert.Equal(t, []int{2, 2}, r.events[1].OldItems())
	assert.Equal(t, 1, r.events[1].OldStartingIndex())
}

func TestListRemoveAll_NoMatch(t *testing.T) {
	l := NewList(1, 3)
	r := record(l, false)

	n, err := l.RemoveAll(func(v int) bool { return v%2 == 0 })
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, r.events)
}

func TestListReplace(t *testing.T) {
	l := NewList(3, 5, 7)
	r := record(l, false)

	require.NoError(t, l.Replace(1, 9))

	assert.Equal(t, []int{3, 9, 7}, l.Items())
	e := r.last(t)
	assert.Equal(t, ActionReplace, e.Action())
	assert.Equal(t, []int{9}, e.NewItems())
	assert.Equal(t, []int{5}, e.OldItems())
	assert.Equal(t, 1, e.NewStartingIndex())
	assert.Equal(t, 1, e.OldStartingIndex())

	assert.ErrorIs(t, l.Replace(3, 0), ErrIndexOutOfRange)
}

func TestListReplaceRange(t *testing.T) {
	l := NewList(0, 1, 2, 3)
	r := record(l, false)

	require.NoError(t, l.ReplaceRange(1, 2, []int{7, 8, 9}))
	assert.Equal(t, []int{0, 7, 8, 9, 3}, l.Items())
	e := r.last(t)
	assert.Equal(t, ActionReplace, e.Action())
	assert.Equal(t, []int{1, 2}, e.OldItems())
	assert.Equal(t, []int{7, 8, 9}, e.NewItems())

	require.NoError(t, l.ReplaceRange(0, 0, []int{-1}))
	assert.Equal(t, ActionAdd, r.last(t).Action())

	require.NoError(t, l.ReplaceRange(0, 1, nil))
	assert.Equal(t, ActionRemove, r.last(t).Action())

	require.NoError(t, l.ReplaceRange(0, 0, nil))
	assert.Len(t, r.events, 3)

	assert.ErrorIs(t, l.ReplaceRange(4, 2, []int{1}), ErrIndexOutOfRange)
}

func TestListReplaceAll(t *testing.T) {
	l := NewList(1, 2)
	r := record(l, false)

	require.NoError(t, l.ReplaceAll([]int{3, 4, 5}))
	assert.Equal(t, []int{3, 4, 5}, l.Items())
	assert.Equal(t, ActionReplace, r.last(t).Action())
	assert.Equal(t, 0, r.last(t).NewStartingIndex())

	require.NoError(t, l.ReplaceAll(nil))
	assert.Zero(t, l.Len())
	assert.Equal(t, ActionReset, r.last(t).Action())
}

func TestListMove(t *testing.T) {
	l := NewList("a", "b", "c")
	r := record(l, false)

	require.NoError(t, l.Move(0, 2))

	assert.Equal(t, []string{"b", "c", "a"}, l.Items())
	e := r.last(t)
	assert.Equal(t, ActionMove, e.Action())
	assert.Equal(t, []string{"a"}, e.NewItems())
	assert.Equal(t, []string{"a"}, e.OldItems())
	assert.Equal(t, 2, e.NewStartingIndex())
	assert.Equal(t, 0, e.OldStartingIndex())

	require.NoError(t, l.Move(2, 0))
	assert.Equal(t, []string{"a", "b", "c"}, l.Items())

	require.NoError(t, l.Move(1, 1))
	assert.Len(t, r.events, 2, "moving onto itself emits nothing")

	assert.ErrorIs(t, l.Move(3, 0), ErrIndexOutOfRange)
	assert.ErrorIs(t, l.Move(0, 3), ErrIndexOutOfRange)
	assert.ErrorIs(t, l.Move(-1, 0), ErrIndexOutOfRange)
}

func TestListClear(t *testing.T) {
	l := NewList(1, 2, 3, 4)
	r := record(l, false)

	require.NoError(t, l.Clear())
	assert.Zero(t, l.Len())
	require.Len(t, r.events, 1)
	e := r.events[0]
	assert.Equal(t, ActionReset, e.Action())
	assert.Empty(t, e.NewItems())
	assert.Empty(t, e.OldItems())

	require.NoError(t, l.Clear())
	assert.Len(t, r.events, 1, "clearing an empty list emits nothing")
}

func TestSubscribe_Replay(t *testing.T) {
	l := NewList(1, 2)

	r := record(l, true)
	require.Len(t, r.events, 1)
	assert.Equal(t, ActionAdd, r.events[0].Action())
	assert.Equal(t, []int{1, 2}, r.events[0].NewItems())
	assert.Equal(t, 0, r.events[0].NewStartingIndex())

	empty := record(NewList[int](), true)
	assert.Empty(t, empty.events, "no backfill for an empty list")

	plain := record(l, false)
	assert.Empty(t, plain.events)
}

func TestSubscribe_Order(t *testing.T) {
	l := NewList[int]()
	var order []string
	l.Subscribe(func(ChangeEvent[int]) { order = append(order, "first") }, false)
	l.Subscribe(func(ChangeEvent[int]) { order = append(order, "second") }, false)
	l.Subscribe(func(ChangeEvent[int]) { order = append(order, "third") }, false)

	require.NoError(t, l.Add(1))
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestSubscribe_NilHandlerPanics(t *testing.T) {
	assert.Panics(t, func() { NewList[int]().Subscribe(nil, false) })
}

func TestSubscribe_EventSeesUpdatedList(t *testing.T) {
	l := NewList(1)
	var seen []int
	l.Subscribe(func(ChangeEvent[int]) { seen = l.Items() }, false)

	require.NoError(t, l.Add(2))
	assert.Equal(t, []int{1, 2}, seen)
}

func TestUnsubscribe(t *testing.T) {
	l := NewList[int]()
	r := &recorder[int]{}
	sub := l.Subscribe(r.handle, false)
	assert.True(t, sub.Active())

	require.NoError(t, l.Add(1))
	sub.Unsubscribe()
	sub.Unsubscribe()
	require.NoError(t, l.Add(2))

	assert.False(t, sub.Active())
	assert.Len(t, r.events, 1)

	var nilSub *Subscription
	nilSub.Unsubscribe()
	assert.False(t, nilSub.Active())
}

func TestUnsubscribe_DuringDelivery(t *testing.T) {
	l := NewList[int]()
	var later *Subscription
	calls := 0
	l.Subscribe(func(ChangeEvent[int]) { later.Unsubscribe() }, false)
	later = l.Subscribe(func(ChangeEvent[int]) { calls++ }, false)

	require.NoError(t, l.Add(1))
	assert.Zero(t, calls, "handler removed mid-delivery must not run")
}

func TestSubscribe_DuringDeliveryWaitsForNextEvent(t *testing.T) {
	l := NewList[int]()
	late := &recorder[int]{}
	added := false
	l.Subscribe(func(ChangeEvent[int]) {
		if !added {
			added = true
			l.Subscribe(late.handle, false)
		}
	}, false)

	require.NoError(t, l.Add(1))
	assert.Empty(t, late.events)
	require.NoError(t, l.Add(2))
	assert.Len(t, late.events, 1)
}

func TestUnbindEvents(t *testing.T) {
	l := NewList[int]()
	r := &recorder[int]{}
	sub := l.Subscribe(r.handle, false)
	target := l.BoundCopy()

	l.UnbindEvents()
	require.NoError(t, l.Add(1))

	assert.Empty(t, r.events)
	assert.False(t, sub.Active())
	assert.Equal(t, []int{1}, target.Items(), "bindings survive UnbindEvents")
}

func TestReentrantMutationRejected(t *testing.T) {
	l := NewList[int]()
	var inner error
	l.Subscribe(func(e ChangeEvent[int]) {
		if e.Action() == ActionAdd {
			inner = l.Add(99)
		}
	}, false)

	require.NoError(t, l.Add(1))
	assert.ErrorIs(t, inner, ErrReentrantMutation)
	assert.Equal(t, []int{1}, l.Items())

	require.NoError(t, l.Add(2), "list is usable after the handler returns")
}

func TestReentrantMutationRejectedDuringBackfill(t *testing.T) {
	l := NewList(1)
	var inner error
	l.Subscribe(func(ChangeEvent[int]) { inner = l.Clear() }, true)

	assert.ErrorIs(t, inner, ErrReentrantMutation)
	assert.Equal(t, []int{1}, l.Items())
}

func TestHandlerPanicRestoresState(t *testing.T) {
	l := NewList[int]()
	sub := l.Subscribe(func(ChangeEvent[int]) { panic("boom") }, false)

	assert.Panics(t, func() { _ = l.Add(1) })
	sub.Unsubscribe()
	assert.NoError(t, l.Add(2))
}

func TestWatch(t *testing.T) {
	l := NewList("a", "b")
	var added, removed [][]string
	l.Watch(
		func(items []string) { added = append(added, items) },
		func(items []string) { removed = append(removed, items) },
		true,
	)

	require.NoError(t, l.Add("c"))
	require.NoError(t, l.Move(0, 2))
	require.NoError(t, l.Replace(0, "x"))
	_, err := l.Remove("c")
	require.NoError(t, err)
	require.NoError(t, l.Clear())

	assert.Equal(t, [][]string{{"a", "b"}, {"c"}, {"x"}}, added)
	assert.Equal(t, [][]string{{"b"}, {"c"}, {"x", "a"}}, removed)
}

func TestWatch_NilCallbacks(t *testing.T) {
	l := NewList(1)
	var removed []int
	l.Watch(nil, func(items []int) { removed = append(removed, items...) }, true)

	require.NoError(t, l.Add(2))
	require.NoError(t, l.Clear())
	assert.Equal(t, []int{1, 2}, removed)
}

func TestListErrorsNameTheList(t *testing.T) {
	l := NewList[int]()
	l.SetName("mixers")
	assert.Equal(t, "mixers", l.Name())

	err := l.RemoveAt(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"mixers"`)
}
