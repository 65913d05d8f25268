package physics

import (
	"github.com/oliverbestmann/bump/gm"
)

// Contact describes how two overlapping shapes interpenetrate. Normal is a
// unit vector pointing from the first shape toward the second, Depth is
// strictly positive. Shapes that merely touch produce no Contact.
type Contact struct {
	Normal gm.Vec
	Depth  float64
}

// ShapeKind tags the variant stored in a Shape.
type ShapeKind uint8

const (
	ShapeNone ShapeKind = iota
	ShapeBox
	ShapeCircle
)

// Shape is the world space collision shape of an entity, one of an axis
// aligned box or a circle.
type Shape struct {
	Kind ShapeKind

	// Half extents, set for ShapeBox.
	Half gm.Vec

	// Radius, set for ShapeCircle.
	Radius float64
}

// Envelope returns the half extents of the axis aligned bounding box of
// the shape. A circle uses its radius on both axes.
func (s Shape) Envelope() gm.Vec {
	switch s.Kind {
	case ShapeBox:
		return s.Half
	case ShapeCircle:
		return gm.VecSplat(s.Radius)
	default:
		return gm.VecZero
	}
}

// Collide computes the contact between the two snapshots, routing on the
// shape kinds. The normal of the returned contact points from a toward b.
func Collide(a, b *Snapshot) (Contact, bool) {
	switch {
	case a.Shape.Kind == ShapeBox && b.Shape.Kind == ShapeBox:
		return collideBoxBox(a.Center, a.Shape.Half, b.Center, b.Shape.Half)

	case a.Shape.Kind == ShapeCircle && b.Shape.Kind == ShapeCircle:
		return collideCircleCircle(a.Center, a.Shape.Radius, b.Center, b.Shape.Radius)

	case a.Shape.Kind == ShapeBox && b.Shape.Kind == ShapeCircle:
		return collideBoxCircle(a.Center, a.Shape.Half, b.Center, b.Shape.Radius)

	case a.Shape.Kind == ShapeCircle && b.Shape.Kind == ShapeBox:
		// compute with swapped arguments, then flip the normal so it still
		// points from a toward b
		contact, ok := collideBoxCircle(b.Center, b.Shape.Half, a.Center, a.Shape.Radius)
		if !ok {
			return Contact{}, false
		}

		contact.Normal = contact.Normal.Neg()
		return contact, true

	default:
		return Contact{}, false
	}
}

// collideBoxBox runs a separating axis test on x and y. The contact axis is
// the one with the smaller positive overlap, the normal sign follows the
// direction from a to b.
func collideBoxBox(aCenter, aHalf, bCenter, bHalf gm.Vec) (Contact, bool) {
	delta := bCenter.Sub(aCenter)

	overlapX := aHalf.X + bHalf.X - abs(delta.X)
	if overlapX <= 0 {
		return Contact{}, false
	}

	overlapY := aHalf.Y + bHalf.Y - abs(delta.Y)
	if overlapY <= 0 {
		return Contact{}, false
	}

	if overlapX <= overlapY {
		normal := gm.Vec{X: 1}
		if delta.X < 0 {
			normal.X = -1
		}

		return Contact{Normal: normal, Depth: overlapX}, true
	}

	normal := gm.Vec{Y: 1}
	if delta.Y < 0 {
		normal.Y = -1
	}

	return Contact{Normal: normal, Depth: overlapY}, true
}

// collideCircleCircle reports overlap of two circles. Coincident centers
// leave the direction undefined, in that case a fixed (1, 0) normal is used
// so the result stays deterministic and free of NaN.
func collideCircleCircle(aCenter gm.Vec, aRadius float64, bCenter gm.Vec, bRadius float64) (Contact, bool) {
	delta := bCenter.Sub(aCenter)
	distance := delta.Length()

	radiusSum := aRadius + bRadius
	if distance >= radiusSum {
		return Contact{}, false
	}

	if distance == 0 {
		return Contact{Normal: gm.Vec{X: 1}, Depth: radiusSum}, true
	}

	return Contact{
		Normal: delta.Mul(1 / distance),
		Depth:  radiusSum - distance,
	}, true
}

// collideBoxCircle clamps the circle center to the box to find the closest
// point on the box surface. A circle whose center lies inside the box is
// pushed out along the face with the least separation distance.
func collideBoxCircle(boxCenter, boxHalf, circleCenter gm.Vec, radius float64) (Contact, bool) {
	lo := boxCenter.Sub(boxHalf)
	hi := boxCenter.Add(boxHalf)

	closest := circleCenter.Clamp(lo, hi)

	if closest == circleCenter {
		// center inside the box, push out along the nearest face
		type face struct {
			distance float64
			normal   gm.Vec
		}

		faces := [4]face{
			{distance: hi.X - circleCenter.X, normal: gm.Vec{X: 1}},
			{distance: circleCenter.X - lo.X, normal: gm.Vec{X: -1}},
			{distance: hi.Y - circleCenter.Y, normal: gm.Vec{Y: 1}},
			{distance: circleCenter.Y - lo.Y, normal: gm.Vec{Y: -1}},
		}

		nearest := faces[0]
		for _, f := range faces[1:] {
			if f.distance < nearest.distance {
				nearest = f
			}
		}

		return Contact{
			Normal: nearest.normal,
			Depth:  nearest.distance + radius,
		}, true
	}

	delta := circleCenter.Sub(closest)
	distance := delta.Length()
	if distance >= radius {
		return Contact{}, false
	}

	return Contact{
		Normal: delta.Mul(1 / distance),
		Depth:  radius - distance,
	}, true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
