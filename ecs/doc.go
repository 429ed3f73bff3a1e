// Package ecs provides ECS adapters for vrml's event router.
//
// The primary adapter is [NewDonburiSink], which bridges every event a
// scene emits (field changes, sensor outputs, interpolator values) into a
// [Donburi] world as typed events. Subscribe to [EventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene := vrml.NewScene(nil, vrml.WithEventSink(sink))
//
// [AddNode] gives a node an entity so systems can query scene nodes with
// [NodeComponent].
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
