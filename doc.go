// Package bindable provides observable ordered collections for a
// retained-mode game framework built on [Ebitengine].
//
// A [List] owns its items and reports every mutation as one immutable
// [ChangeEvent]: Add, Remove, Replace, Move or Reset. Subscribers, bound
// lists and scene tree consumers apply those events incrementally instead of
// rebuilding from scratch.
//
// # Lists and events
//
//	mixers := bindable.NewList[*Mixer]()
//	sub := mixers.Subscribe(func(e bindable.ChangeEvent[*Mixer]) {
//		switch e.Action() {
//		case bindable.ActionAdd:
//			// e.NewItems() entered at e.NewStartingIndex()
//		case bindable.ActionReset:
//			// discard and re-read mixers.Items()
//		}
//	}, true)
//	defer sub.Unsubscribe()
//
// Passing true as the last argument delivers a backfill Add of the current
// contents before Subscribe returns. Delivery is synchronous and in
// subscription order; a handler must not mutate the list it is notified
// about ([ErrReentrantMutation]).
//
// # Bindings
//
// [List.Bind] makes one list mirror another. The target is resynchronised
// from the source, then every source change is replayed onto it and passed
// on to its own subscribers, so bindings chain and fan out:
//
//	visible := bindable.NewList[*Mixer]()
//	visible.Bind(audio.ActiveMixers)
//
// # Scene consumers
//
// [Flow] mirrors a list into child [Node]s laid out along one axis, with
// optional fade-in tweens (via [gween]). [Scene] drives updates inside its
// [ExecutionContext] and draws node images. Package ecs forwards changes into
// a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package bindable
