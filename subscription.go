package bindable

// --- Subscriber registry ---

type subscriber[T comparable] struct {
	id uint32
	fn func(ChangeEvent[T])
	// target is set when the subscriber is a bound list rather than a handler.
	target  *List[T]
	removed bool
	reg     *subscriberRegistry[T]
}

func (s *subscriber[T]) cancel() { s.reg.remove(s.id) }
func (s *subscriber[T]) cancelled() bool { return s.removed }

type subscriberRegistry[T comparable] struct {
	subs   []*subscriber[T]
	buf    []*subscriber[T] // delivery snapshot, reused across events
	nextID uint32
}

func (r *subscriberRegistry[T]) add(fn func(ChangeEvent[T]), target *List[T]) *subscriber[T] {
	r.nextID++
	s := &subscriber[T]{id: r.nextID, fn: fn, target: target, reg: r}
	r.subs = append(r.subs, s)
	return s
}

// remove unregisters the subscriber with the given id. Unknown ids are ignored.
// A subscriber removed while an event is being delivered does not receive it.
func (r *subscriberRegistry[T]) remove(id uint32) {
	for i, s := range r.subs {
		if s.id == id {
			s.removed = true
			copy(r.subs[i:], r.subs[i+1:])
			r.subs[len(r.subs)-1] = nil
			r.subs = r.subs[:len(r.subs)-1]
			return
		}
	}
}

// removeHandlers drops every handler subscriber and keeps bound targets.
func (r *subscriberRegistry[T]) removeHandlers() {
	kept := r.subs[:0]
	for _, s := range r.subs {
		if s.target != nil {
			kept = append(kept, s)
			continue
		}
		s.removed = true
	}
	clear(r.subs[len(kept):])
	r.subs = kept
}

// snapshot returns the subscribers registered right now, in registration
// order. The returned slice is only valid until the next snapshot call.
func (r *subscriberRegistry[T]) snapshot() []*subscriber[T] {
	r.buf = append(r.buf[:0], r.subs...)
	return r.buf
}

func (r *subscriberRegistry[T]) len() int {
	return len(r.subs)
}

// --- Subscription handle ---

type cancelable interface {
	cancel()
	cancelled() bool
}

// Subscription is returned by List.Subscribe and List.Watch and removes the
// handler again. The zero value and nil are valid and do nothing.
type Subscription struct {
	entry cancelable
}

// Unsubscribe stops further deliveries to the handler. It takes effect
// immediately, including for an event that is currently being delivered.
// Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.entry == nil || s.entry.cancelled() {
		return
	}
	s.entry.cancel()
}

// Active reports whether the handler is still subscribed. It turns false
// after Unsubscribe, List.UnbindEvents or List.UnbindAll.
func (s *Subscription) Active() bool {
	return s != nil && s.entry != nil && !s.entry.cancelled()
}
