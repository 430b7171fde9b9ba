// Package ecs provides ECS adapters for bindable lists.
//
// [Forward] publishes every change of a [bindable.List] into a [Donburi]
// world as a typed event, so ECS systems can follow a list without holding
// a subscription themselves.
//
// Usage:
//
//	changes := ecs.NewChangeEventType[*Mixer]()
//	ecs.Forward(world, mixers, changes, true)
//	changes.Subscribe(world, onMixerChange)
//	// each frame:
//	changes.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
