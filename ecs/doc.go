// Package ecs provides ECS adapters for ornament's morph events.
//
// The primary adapter is [NewDonburiStore], which publishes every
// ornament.MorphEvent into a [Donburi] world as a typed event. Subscribe to
// [MorphEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
