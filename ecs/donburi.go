// Package ecs provides ECS adapters for vrml.
package ecs

import (
	"github.com/phanxgames/vrml"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EventType is the Donburi event type for vrml events.
// Subscribe to this in your ECS systems to receive every event the scene
// emits, routed or not.
var EventType = events.NewEventType[vrml.Event]()

// NodeData links an entity to a scene node.
type NodeData struct {
	Node *vrml.Node
}

// NodeComponent is the Donburi component holding NodeData.
var NodeComponent = donburi.NewComponentType[NodeData]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to EventType and can be consumed with events.Subscribe and
// ProcessEvents.
func NewDonburiSink(world donburi.World) vrml.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event vrml.Event) {
	EventType.Publish(s.world, event)
}

// AddNode creates an entity carrying n in its NodeComponent.
func AddNode(world donburi.World, n *vrml.Node) donburi.Entity {
	e := world.Create(NodeComponent)
	NodeComponent.Get(world.Entry(e)).Node = n
	return e
}
