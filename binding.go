package bindable

import "fmt"

// Bind makes l mirror source. Any previous binding is dropped first. l's
// contents are then replaced by a snapshot of source: subscribers of l see a
// Reset if l held anything, followed by an Add of the snapshot if source is
// non-empty. From then on every change to source is applied to l and
// re-emitted to l's own subscribers, so bindings chain and fan out.
//
// While bound, l cannot be mutated directly (ErrBoundTarget). Binding l to
// itself, or to a list that already mirrors l, fails with ErrCyclicBinding
// and changes nothing. Binding to the current source is a no-op.
//
// Binding from inside a handler of source is allowed: l takes the source
// state as it is now and receives only the changes that follow the one being
// delivered.
func (l *List[T]) Bind(source *List[T]) error {
	if source == nil {
		return fmt.Errorf("%w: bind list %q to nil source", ErrInvalidArgument, l.name)
	}
	if globalDebug {
		debugCheckOwner(l, "Bind")
	}
	for s := source; s != nil; s = s.source {
		if s == l {
			return fmt.Errorf("%w: list %q to %q", ErrCyclicBinding, l.name, source.name)
		}
	}
	if l.notifying > 0 {
		return fmt.Errorf("%w: Bind on list %q while it is notifying", ErrReentrantMutation, l.name)
	}
	if l.source == source {
		return nil
	}

	l.Unbind()
	if globalDebug {
		debugLogBind(l, source)
		debugCheckBackfill(l, len(source.items))
	}

	// Hold the source still while l's subscribers see the backfill, so the
	// snapshot cannot go stale before l starts listening.
	source.notifying++
	func() {
		defer func() { source.notifying-- }()
		l.resync(source.items)
	}()

	l.source = source
	l.sourceSub = source.subs.add(nil, l)
	if globalDebug {
		debugCheckSubscriberCount(source)
	}
	return nil
}

// Unbind stops mirroring the current source. l keeps its contents and becomes
// mutable again. Unbinding an unbound list is a no-op.
func (l *List[T]) Unbind() {
	if l.source == nil {
		return
	}
	if globalDebug {
		debugLogUnbind(l, l.source)
	}
	l.sourceSub.cancel()
	l.source = nil
	l.sourceSub = nil
}

// UnbindAll tears down every relation l takes part in: its own source, every
// list bound to it, and every handler. Call it when the owner of l goes away.
func (l *List[T]) UnbindAll() {
	l.Unbind()
	for _, t := range l.Targets() {
		t.Unbind()
	}
	l.UnbindEvents()
}

// Source returns the list l mirrors, or nil.
func (l *List[T]) Source() *List[T] {
	return l.source
}

// IsBound reports whether l mirrors a source.
func (l *List[T]) IsBound() bool {
	return l.source != nil
}

// Targets returns the lists currently bound to l, in binding order.
func (l *List[T]) Targets() []*List[T] {
	var out []*List[T]
	for _, s := range l.subs.subs {
		if s.target != nil {
			out = append(out, s.target)
		}
	}
	return out
}

// BoundCopy returns a new list with l's name and owner that is already bound
// to l.
func (l *List[T]) BoundCopy() *List[T] {
	c := &List[T]{name: l.name, owner: l.owner}
	if err := c.Bind(l); err != nil {
		panic(err.Error())
	}
	return c
}

// resync replaces l's contents with a copy of items and tells l's subscribers.
func (l *List[T]) resync(items []T) {
	if len(l.items) > 0 {
		clear(l.items)
		l.items = l.items[:0]
		l.notify(NewResetEvent[T]())
	}
	if len(items) > 0 {
		l.items = append(l.items, items...)
		l.notify(mustEvent(NewAddOrRemoveEvent(ActionAdd, items, 0)))
	}
}

// replay applies a change delivered by l's source and passes it on.
func (l *List[T]) replay(e ChangeEvent[T]) {
	if e.Action() == ActionReset {
		// Reset means "re-read": take the source state as it is now.
		clear(l.items)
		l.items = append(l.items[:0], l.source.items...)
	} else {
		items, err := Apply(e, l.items)
		if err != nil {
			panic(fmt.Sprintf("bindable: list %q out of sync with source %q: %v", l.name, l.source.name, err))
		}
		l.items = items
	}
	l.notify(e)
}
