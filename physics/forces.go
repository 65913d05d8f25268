package physics

import (
	"github.com/oliverbestmann/bump/gm"
)

// ApplyForce adds to the force accumulator of the entity. The force is
// consumed by the next integration step. Returns false if the entity has
// no force accumulator.
func ApplyForce(c Components, id EntityId, force gm.Vec) bool {
	forces, ok := c.Forces(id)
	if !ok {
		return false
	}

	forces.Linear = forces.Linear.Add(force)
	return true
}

// ApplyImpulse adds the impulse directly to the velocity of the entity,
// bypassing the force accumulator. Returns false if the entity has no
// velocity.
func ApplyImpulse(c Components, id EntityId, impulse gm.Vec) bool {
	velocity, ok := c.Velocity(id)
	if !ok {
		return false
	}

	*velocity = velocity.Add(impulse)
	return true
}

// SetVelocity replaces the velocity of the entity. Returns false if the
// entity has no velocity.
func SetVelocity(c Components, id EntityId, value gm.Vec) bool {
	velocity, ok := c.Velocity(id)
	if !ok {
		return false
	}

	*velocity = value
	return true
}
