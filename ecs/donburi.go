package ecs

import (
	"github.com/phanxgames/grasp"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for grasp cursor events.
var InteractionEventType = events.NewEventType[grasp.InteractionEvent]()

type donburiStore struct {
	world donburi.World
	// accept is nil when every event type is forwarded.
	accept map[grasp.EventType]bool
}

// NewDonburiStore creates an EntityStore backed by a Donburi world. Events
// are published to InteractionEventType and delivered when the world
// processes events (events.ProcessAllEvents or
// InteractionEventType.ProcessEvents). With no types given, every cursor
// event is forwarded; otherwise only the listed types are.
func NewDonburiStore(world donburi.World, types ...grasp.EventType) grasp.EntityStore {
	s := &donburiStore{world: world}
	if len(types) > 0 {
		s.accept = make(map[grasp.EventType]bool, len(types))
		for _, t := range types {
			s.accept[t] = true
		}
	}
	return s
}

func (s *donburiStore) EmitEvent(event grasp.InteractionEvent) {
	if s.accept != nil && !s.accept[event.Type] {
		return
	}
	InteractionEventType.Publish(s.world, event)
}
