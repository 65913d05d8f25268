package physics

import (
	"github.com/oliverbestmann/bump/gm"
)

// CollisionEventName is the event name published once per resolved
// contact.
const CollisionEventName = "physicsCollision"

// CollisionEvent is the payload of a collision notification.
type CollisionEvent struct {
	A, B           EntityId
	LayerA, LayerB string
	Normal         gm.Vec
	Depth          float64
}

// Sink receives named events with arbitrary payloads. The host framework
// plugs its event bus in here.
type Sink interface {
	Publish(name string, payload any)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(name string, payload any)

func (f SinkFunc) Publish(name string, payload any) {
	f(name, payload)
}
