package bindable

import (
	"fmt"
	"iter"
	"slices"
)

// List is an observable ordered collection. Every mutation updates storage
// and then delivers exactly one ChangeEvent (or, for RemoveAll, one event per
// removed run) to each subscriber before returning. When a handler runs, the
// list already reflects every event delivered so far.
//
// A List is owned by one logical context and does no locking. Handlers must
// not mutate the list they are being notified about; such calls fail with
// ErrReentrantMutation.
type List[T comparable] struct {
	name  string
	items []T
	subs  subscriberRegistry[T]
	owner *ExecutionContext

	// notifying counts active deliveries; mutations are rejected while > 0.
	notifying int

	// Binding (see binding.go)
	source    *List[T]
	sourceSub *subscriber[T]
}

// NewList creates a list holding a copy of items.
func NewList[T comparable](items ...T) *List[T] {
	return &List[T]{items: slices.Clone(items)}
}

// Name returns the name used in errors and debug logs.
func (l *List[T]) Name() string {
	return l.name
}

// SetName sets the name used in errors and debug logs.
func (l *List[T]) SetName(name string) {
	l.name = name
}

// SetOwner attaches the execution context that owns this list. In debug mode
// every mutation asserts the owner is active. Pass nil to detach.
func (l *List[T]) SetOwner(ctx *ExecutionContext) {
	l.owner = ctx
}

// Owner returns the attached execution context, or nil.
func (l *List[T]) Owner() *ExecutionContext {
	return l.owner
}

// --- Reading ---

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.items)
}

// At returns the item at index. Panics if index is out of range.
func (l *List[T]) At(index int) T {
	return l.items[index]
}

// Items returns a copy of the current contents.
func (l *List[T]) Items() []T {
	return slices.Clone(l.items)
}

// All iterates over index/item pairs. The list must not be mutated while
// iterating.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range l.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// IndexOf returns the index of the first occurrence of item, or -1.
func (l *List[T]) IndexOf(item T) int {
	return slices.Index(l.items, item)
}

// Contains reports whether item is in the list.
func (l *List[T]) Contains(item T) bool {
	return l.IndexOf(item) >= 0
}

// --- Mutation ---

// Add appends item.
func (l *List[T]) Add(item T) error {
	return l.insert("Add", len(l.items), []T{item})
}

// AddRange appends items. An empty batch is a no-op and emits nothing.
func (l *List[T]) AddRange(items []T) error {
	return l.insert("AddRange", len(l.items), items)
}

// Insert places item at index, shifting later items up. index may equal Len.
func (l *List[T]) Insert(index int, item T) error {
	return l.insert("Insert", index, []T{item})
}

// InsertRange places items starting at index. index may equal Len.
func (l *List[T]) InsertRange(index int, items []T) error {
	return l.insert("InsertRange", index, items)
}

func (l *List[T]) insert(op string, index int, items []T) error {
	if err := l.checkMutable(op); err != nil {
		return err
	}
	if index < 0 || index > len(l.items) {
		return l.indexError(op, index)
	}
	if len(items) == 0 {
		return nil
	}
	l.items = slices.Insert(l.items, index, items...)
	l.notify(mustEvent(NewAddOrRemoveEvent(ActionAdd, items, index)))
	return nil
}

// Remove removes the first occurrence of item. It reports false, and emits
// nothing, when item is not in the list.
func (l *List[T]) Remove(item T) (bool, error) {
	if err := l.checkMutable("Remove"); err != nil {
		return false, err
	}
	i := l.IndexOf(item)
	if i < 0 {
		return false, nil
	}
	l.removeRange(i, 1)
	return true, nil
}

// RemoveAt removes the item at index.
func (l *List[T]) RemoveAt(index int) error {
	if err := l.checkMutable("RemoveAt"); err != nil {
		return err
	}
	if index < 0 || index >= len(l.items) {
		return l.indexError("RemoveAt", index)
	}
	l.removeRange(index, 1)
	return nil
}

// RemoveRange removes count items starting at index.
func (l *List[T]) RemoveRange(index, count int) error {
	if err := l.checkMutable("RemoveRange"); err != nil {
		return err
	}
	if index < 0 || count < 0 || index+count > len(l.items) {
		return fmt.Errorf("%w: RemoveRange(%d, %d) on list %q of length %d",
			ErrIndexOutOfRange, index, count, l.name, len(l.items))
	}
	if count == 0 {
		return nil
	}
	l.removeRange(index, count)
	return nil
}

// RemoveAll removes every item for which match returns true and reports how
// many were removed. Each contiguous run of matches is removed with its own
// Remove event, starting from the end of the list, so every event's index is
// valid for the state it was delivered in. match is called once per item,
// before anything is removed.
func (l *List[T]) RemoveAll(match func(T) bool) (int, error) {
	if err := l.checkMutable("RemoveAll"); err != nil {
		return 0, err
	}
	hits := make([]bool, len(l.items))
	for i, v := range l.items {
		hits[i] = match(v)
	}
	removed := 0
	for end := len(hits); end > 0; {
		last := end - 1
		for last >= 0 && !hits[last] {
			last--
		}
		if last < 0 {
			break
		}
		first := last
		for first > 0 && hits[first-1] {
			first--
		}
		l.removeRange(first, last+1-first)
		removed += last + 1 - first
		end = first
	}
	return removed, nil
}

func (l *List[T]) removeRange(index, count int) {
	old := slices.Clone(l.items[index : index+count])
	l.items = slices.Delete(l.items, index, index+count)
	l.notify(mustEvent(NewAddOrRemoveEvent(ActionRemove, old, index)))
}

// Replace puts item at index in place of the current item.
func (l *List[T]) Replace(index int, item T) error {
	if err := l.checkMutable("Replace"); err != nil {
		return err
	}
	if index < 0 || index >= len(l.items) {
		return l.indexError("Replace", index)
	}
	old := l.items[index]
	l.items[index] = item
	l.notify(mustEvent(NewReplaceEvent([]T{item}, []T{old}, index)))
	return nil
}

// ReplaceRange replaces count items starting at index with items. When one
// side is empty the change is reported as a plain Add or Remove; when both
// are empty nothing happens.
func (l *List[T]) ReplaceRange(index, count int, items []T) error {
	if err := l.checkMutable("ReplaceRange"); err != nil {
		return err
	}
	if index < 0 || count < 0 || index+count > len(l.items) {
		return fmt.Errorf("%w: ReplaceRange(%d, %d) on list %q of length %d",
			ErrIndexOutOfRange, index, count, l.name, len(l.items))
	}
	switch {
	case count == 0 && len(items) == 0:
		return nil
	case count == 0:
		return l.insert("ReplaceRange", index, items)
	case len(items) == 0:
		l.removeRange(index, count)
		return nil
	}
	old := slices.Clone(l.items[index : index+count])
	l.items = slices.Replace(l.items, index, index+count, items...)
	l.notify(mustEvent(NewReplaceEvent(items, old, index)))
	return nil
}

// ReplaceAll swaps the whole contents for items. Replacing with nothing is
// the same as Clear.
func (l *List[T]) ReplaceAll(items []T) error {
	if len(items) == 0 {
		return l.Clear()
	}
	return l.ReplaceRange(0, len(l.items), items)
}

// Move relocates the item at from so that it ends up at index to. Moving an
// item onto its own position is a no-op.
func (l *List[T]) Move(from, to int) error {
	if err := l.checkMutable("Move"); err != nil {
		return err
	}
	if from < 0 || from >= len(l.items) {
		return l.indexError("Move", from)
	}
	if to < 0 || to >= len(l.items) {
		return l.indexError("Move", to)
	}
	if from == to {
		return nil
	}
	item := l.items[from]
	moveItem(l.items, from, to)
	l.notify(mustEvent(NewMoveEvent(item, to, from)))
	return nil
}

// Clear removes everything and emits a single Reset, whatever the previous
// size. Clearing an empty list emits nothing.
func (l *List[T]) Clear() error {
	if err := l.checkMutable("Clear"); err != nil {
		return err
	}
	if len(l.items) == 0 {
		return nil
	}
	clear(l.items)
	l.items = l.items[:0]
	l.notify(NewResetEvent[T]())
	return nil
}

// --- Subscription ---

// Subscribe registers handler for every future change. With replay set and a
// non-empty list, handler first receives a synthetic Add event covering the
// current contents from index 0, before Subscribe returns.
//
// Handlers run synchronously in registration order and must not mutate the
// list. The items inside delivered events are owned by the event, never by
// the list storage.
func (l *List[T]) Subscribe(handler func(ChangeEvent[T]), replay bool) *Subscription {
	if handler == nil {
		panic("bindable: nil handler")
	}
	s := l.subs.add(handler, nil)
	if globalDebug {
		debugCheckSubscriberCount(l)
	}
	if replay && len(l.items) > 0 {
		if globalDebug {
			debugCheckBackfill(l, len(l.items))
		}
		e := mustEvent(NewAddOrRemoveEvent(ActionAdd, l.items, 0))
		l.notifying++
		defer func() { l.notifying-- }()
		handler(e)
	}
	return &Subscription{entry: s}
}

// UnbindEvents removes every handler registered with Subscribe or Watch.
// Bound lists keep mirroring.
func (l *List[T]) UnbindEvents() {
	l.subs.removeHandlers()
}

// Watch is a convenience over Subscribe for consumers that only care about
// which items came and went. added receives inserted items, removed receives
// items that left, Replace reports both, and Move reports nothing. On Reset,
// removed gets everything that was known before and added gets whatever the
// list holds afterwards. Either callback may be nil.
func (l *List[T]) Watch(added, removed func([]T), replay bool) *Subscription {
	var known []T
	return l.Subscribe(func(e ChangeEvent[T]) {
		if e.Action() == ActionReset {
			gone := known
			known = l.Items()
			if len(gone) > 0 && removed != nil {
				removed(gone)
			}
			if len(known) > 0 && added != nil {
				added(slices.Clone(known))
			}
			return
		}
		next, err := Apply(e, known)
		if err != nil {
			panic(fmt.Sprintf("bindable: watcher of list %q out of sync: %v", l.name, err))
		}
		known = next
		if len(e.OldItems()) > 0 && e.Action() != ActionMove && removed != nil {
			removed(e.OldItems())
		}
		if len(e.NewItems()) > 0 && e.Action() != ActionMove && added != nil {
			added(e.NewItems())
		}
	}, replay)
}

// --- Helpers ---

// checkMutable rejects a direct mutation that would break delivery ordering
// or a binding mirror.
func (l *List[T]) checkMutable(op string) error {
	if globalDebug {
		debugCheckOwner(l, op)
	}
	if l.notifying > 0 {
		return fmt.Errorf("%w: %s on list %q while it is notifying", ErrReentrantMutation, op, l.name)
	}
	if l.source != nil {
		return fmt.Errorf("%w: %s on list %q", ErrBoundTarget, op, l.name)
	}
	return nil
}

func (l *List[T]) indexError(op string, index int) error {
	return fmt.Errorf("%w: %s(%d) on list %q of length %d", ErrIndexOutOfRange, op, index, l.name, len(l.items))
}

// notify delivers e to a snapshot of the current subscribers.
func (l *List[T]) notify(e ChangeEvent[T]) {
	l.notifying++
	defer func() { l.notifying-- }()
	for _, s := range l.subs.snapshot() {
		if s.removed {
			continue
		}
		if s.target != nil {
			s.target.replay(e)
			continue
		}
		s.fn(e)
	}
}

// mustEvent unwraps a constructor result whose arguments were already
// validated by the caller.
func mustEvent[T comparable](e ChangeEvent[T], err error) ChangeEvent[T] {
	if err != nil {
		panic(err.Error())
	}
	return e
}
