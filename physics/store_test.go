package physics

import (
	"testing"

	"github.com/oliverbestmann/bump/gm"
	"github.com/stretchr/testify/require"
)

func TestStore_SpawnDespawn(t *testing.T) {
	store := NewStore()

	a := store.Spawn()
	b := store.Spawn()
	require.NotEqual(t, a, b)

	store.SetPosition(a, gm.Vec{X: 1})
	store.SetPosition(b, gm.Vec{X: 2})

	store.Despawn(a)

	_, ok := store.Position(a)
	require.False(t, ok)

	var ids []EntityId
	for id := range store.Entities() {
		ids = append(ids, id)
	}
	require.Equal(t, []EntityId{b}, ids)
}

func TestStore_RigidBodyAttachesForces(t *testing.T) {
	store := NewStore()

	id := store.Spawn()
	store.SetRigidBody(id, NewRigidBody(BodyDynamic))

	forces, ok := store.Forces(id)
	require.True(t, ok)
	require.Equal(t, gm.VecZero, forces.Linear)
}

func TestMutators_MissingComponentsAreNoOps(t *testing.T) {
	store := NewStore()
	id := store.Spawn()

	// no forces, no velocity attached yet
	require.False(t, ApplyForce(store, id, gm.Vec{X: 1}))
	require.False(t, ApplyImpulse(store, id, gm.Vec{X: 1}))
	require.False(t, SetVelocity(store, id, gm.Vec{X: 1}))
}

func TestMutators_MutateInPlace(t *testing.T) {
	store := NewStore()

	id := store.Spawn()
	store.SetVelocity(id, gm.Vec{X: 1})
	store.SetRigidBody(id, NewRigidBody(BodyDynamic))

	require.True(t, ApplyImpulse(store, id, gm.Vec{X: 2, Y: 3}))
	velocity, _ := store.Velocity(id)
	require.Equal(t, gm.Vec{X: 3, Y: 3}, *velocity)

	require.True(t, SetVelocity(store, id, gm.Vec{Y: -1}))
	require.Equal(t, gm.Vec{Y: -1}, *velocity)

	require.True(t, ApplyForce(store, id, gm.Vec{X: 10}))
	require.True(t, ApplyForce(store, id, gm.Vec{X: 5}))

	forces, _ := store.Forces(id)
	require.Equal(t, gm.Vec{X: 15}, forces.Linear)
}

func TestNewRigidBody_Defaults(t *testing.T) {
	dynamic := NewRigidBody(BodyDynamic)
	require.Equal(t, 1.0, dynamic.Mass)
	require.Equal(t, 1.0, dynamic.GravityScale)
	require.Equal(t, 1.0, dynamic.InverseMass())

	static := NewRigidBody(BodyStatic)
	require.True(t, static.Mass > 1e300)
	require.Equal(t, 0.0, static.InverseMass())

	kinematic := NewRigidBody(BodyKinematic)
	require.Equal(t, 1.0, kinematic.Mass)
	require.Equal(t, 0.0, kinematic.InverseMass())
}
