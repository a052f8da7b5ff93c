// Package ecs bridges grasp cursor events into a [Donburi] world.
//
// [NewDonburiStore] publishes every cursor event routed to a node with a
// non-zero EntityID as a typed Donburi event. Subscribe to
// [InteractionEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// Pass event types to forward only those:
//
//	store := ecs.NewDonburiStore(world, grasp.EventCursorDown, grasp.EventCursorUp)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
