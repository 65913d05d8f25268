package physics

import (
	"fmt"
	"math"

	"github.com/oliverbestmann/bump/gm"
)

// EntityId identifies an entity in the host framework.
type EntityId uint32

func (e EntityId) String() string {
	return fmt.Sprintf("EntityId(%d)", uint32(e))
}

// BodyKind decides how a body reacts to forces and collisions.
type BodyKind uint8

const (
	// BodyStatic bodies never move. Their stored velocity is ignored by
	// integration and they are never displaced by the resolver.
	BodyStatic BodyKind = iota

	// BodyKinematic bodies move with their velocity but are immovable as
	// far as collision response is concerned, despite their finite mass.
	BodyKinematic

	// BodyDynamic bodies are fully simulated.
	BodyDynamic
)

func (k BodyKind) String() string {
	switch k {
	case BodyStatic:
		return "static"
	case BodyKinematic:
		return "kinematic"
	case BodyDynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("BodyKind(%d)", uint8(k))
	}
}

// RigidBody holds the physical identity of an entity. Mutated only by
// integration and resolution.
type RigidBody struct {
	Kind BodyKind

	Mass float64

	// Drag dampens linear velocity by the factor max(0, 1-Drag*dt) each tick.
	Drag float64

	// Restitution is the bounciness of the body in [0, 1].
	Restitution float64

	// Friction dampens tangential velocity during contact resolution.
	Friction float64

	// GravityScale scales the global gravity for this body.
	GravityScale float64
}

// NewRigidBody creates a body of the given kind with mass 1, no drag, no
// restitution, friction 0.5 and gravity scale 1. Static bodies get an
// infinite mass, though immovability is decided by the kind alone.
func NewRigidBody(kind BodyKind) RigidBody {
	mass := 1.0
	if kind == BodyStatic {
		mass = math.Inf(1)
	}

	return RigidBody{
		Kind:         kind,
		Mass:         mass,
		Friction:     0.5,
		GravityScale: 1,
	}
}

// InverseMass returns 1/Mass for dynamic bodies and zero for static and
// kinematic ones, so immovable bodies drop out of the impulse formulas
// without special casing.
func (b *RigidBody) InverseMass() float64 {
	if b.Kind != BodyDynamic || b.Mass <= 0 {
		return 0
	}

	return 1 / b.Mass
}

// Forces accumulates external forces applied to an entity. Integration
// consumes the accumulated value once per tick and resets it to zero.
type Forces struct {
	Linear gm.Vec
}

// BoxCollider is an axis aligned box attached to an entity.
type BoxCollider struct {
	HalfExtents gm.Vec

	// Offset of the box center relative to the entity position.
	Offset gm.Vec
}

func NewBoxCollider(width, height float64) BoxCollider {
	return BoxCollider{
		HalfExtents: gm.Vec{X: width / 2, Y: height / 2},
	}
}

// CircleCollider is a circle attached to an entity.
type CircleCollider struct {
	Radius float64

	// Offset of the circle center relative to the entity position.
	Offset gm.Vec
}

func NewCircleCollider(radius float64) CircleCollider {
	return CircleCollider{Radius: radius}
}

// Layer assigns an entity to a named collision group and lists the groups
// it wants to collide with.
//
// The permission list is not required to be symmetric. A pair is eligible
// if either side lists the other's group, so one directional detector
// layers work without duplicating data on the watched side.
type Layer struct {
	Name         string
	CollidesWith []string
}

func NewLayer(name string, collidesWith ...string) Layer {
	return Layer{
		Name:         name,
		CollidesWith: collidesWith,
	}
}
