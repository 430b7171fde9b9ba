package ecs

import (
	"github.com/phanxgames/bindable"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// NewChangeEventType creates the Donburi event type carrying change events of
// one item type. Create one per item type and share it between the
// publishing list and the consuming systems.
func NewChangeEventType[T comparable]() *events.EventType[bindable.ChangeEvent[T]] {
	return events.NewEventType[bindable.ChangeEvent[T]]()
}

// Forward publishes every change of list into world under eventType. With
// replay set, the current contents are published first as an Add. Events are
// queued; systems receive them when eventType.ProcessEvents runs. Unsubscribe
// the returned handle to stop forwarding.
func Forward[T comparable](world donburi.World, list *bindable.List[T], eventType *events.EventType[bindable.ChangeEvent[T]], replay bool) *bindable.Subscription {
	return list.Subscribe(func(e bindable.ChangeEvent[T]) {
		eventType.Publish(world, e)
	}, replay)
}
