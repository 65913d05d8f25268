package physics

import (
	"iter"
	"slices"

	"github.com/oliverbestmann/bump/gm"
)

// Components is the narrow view of the host framework's entity storage
// that the physics pass works on.
//
// Accessors return pointers into caller owned storage so integration and
// resolution mutate state in place. The bool result reports whether the
// entity has the component at all, absence is an expected condition and
// never an error.
type Components interface {
	// Entities yields every entity the physics pass should consider, in a
	// stable order.
	Entities() iter.Seq[EntityId]

	Position(id EntityId) (*gm.Vec, bool)
	Velocity(id EntityId) (*gm.Vec, bool)
	RigidBody(id EntityId) (*RigidBody, bool)
	Forces(id EntityId) (*Forces, bool)
	BoxCollider(id EntityId) (*BoxCollider, bool)
	CircleCollider(id EntityId) (*CircleCollider, bool)
	Layer(id EntityId) (*Layer, bool)
}

// Store is a simple map backed Components implementation. A host framework
// normally adapts its own storage instead, Store exists for tests, tools
// and small standalone simulations.
type Store struct {
	nextId EntityId
	ids    []EntityId

	positions  map[EntityId]*gm.Vec
	velocities map[EntityId]*gm.Vec
	bodies     map[EntityId]*RigidBody
	forces     map[EntityId]*Forces
	boxes      map[EntityId]*BoxCollider
	circles    map[EntityId]*CircleCollider
	layers     map[EntityId]*Layer
}

func NewStore() *Store {
	return &Store{
		positions:  map[EntityId]*gm.Vec{},
		velocities: map[EntityId]*gm.Vec{},
		bodies:     map[EntityId]*RigidBody{},
		forces:     map[EntityId]*Forces{},
		boxes:      map[EntityId]*BoxCollider{},
		circles:    map[EntityId]*CircleCollider{},
		layers:     map[EntityId]*Layer{},
	}
}

// Spawn allocates a fresh entity id.
func (s *Store) Spawn() EntityId {
	s.nextId += 1
	s.ids = append(s.ids, s.nextId)
	return s.nextId
}

// Despawn removes the entity and all of its components.
func (s *Store) Despawn(id EntityId) {
	if idx := slices.Index(s.ids, id); idx >= 0 {
		s.ids = slices.Delete(s.ids, idx, idx+1)
	}

	delete(s.positions, id)
	delete(s.velocities, id)
	delete(s.bodies, id)
	delete(s.forces, id)
	delete(s.boxes, id)
	delete(s.circles, id)
	delete(s.layers, id)
}

func (s *Store) SetPosition(id EntityId, position gm.Vec) {
	s.positions[id] = &position
}

func (s *Store) SetVelocity(id EntityId, velocity gm.Vec) {
	s.velocities[id] = &velocity
}

// SetRigidBody attaches the body and a zero initialized force accumulator.
func (s *Store) SetRigidBody(id EntityId, body RigidBody) {
	s.bodies[id] = &body
	s.forces[id] = &Forces{}
}

func (s *Store) SetBoxCollider(id EntityId, collider BoxCollider) {
	s.boxes[id] = &collider
}

func (s *Store) SetCircleCollider(id EntityId, collider CircleCollider) {
	s.circles[id] = &collider
}

func (s *Store) SetLayer(id EntityId, layer Layer) {
	s.layers[id] = &layer
}

func (s *Store) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for _, id := range s.ids {
			if !yield(id) {
				return
			}
		}
	}
}

func (s *Store) Position(id EntityId) (*gm.Vec, bool) {
	value, ok := s.positions[id]
	return value, ok
}

func (s *Store) Velocity(id EntityId) (*gm.Vec, bool) {
	value, ok := s.velocities[id]
	return value, ok
}

func (s *Store) RigidBody(id EntityId) (*RigidBody, bool) {
	value, ok := s.bodies[id]
	return value, ok
}

func (s *Store) Forces(id EntityId) (*Forces, bool) {
	value, ok := s.forces[id]
	return value, ok
}

func (s *Store) BoxCollider(id EntityId) (*BoxCollider, bool) {
	value, ok := s.boxes[id]
	return value, ok
}

func (s *Store) CircleCollider(id EntityId) (*CircleCollider, bool) {
	value, ok := s.circles[id]
	return value, ok
}

func (s *Store) Layer(id EntityId) (*Layer, bool) {
	value, ok := s.layers[id]
	return value, ok
}
