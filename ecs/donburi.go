package ecs

import (
	"github.com/phanxgames/ornament"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// MorphEventType is the Donburi event type for ornament state transitions.
// Subscribe to this in your ECS systems to react to ASSEMBLED/SCATTERED flips.
var MorphEventType = events.NewEventType[ornament.MorphEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Morph events are published to MorphEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) ornament.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitMorph(event ornament.MorphEvent) {
	MorphEventType.Publish(s.world, event)
}
