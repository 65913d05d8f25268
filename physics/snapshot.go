package physics

import (
	"github.com/oliverbestmann/bump/gm"
)

// Snapshot is the per tick, world space record of one collidable entity.
// Snapshots are rebuilt from the component store every tick and never kept
// across ticks.
type Snapshot struct {
	Entity       EntityId
	Center       gm.Vec
	Layer        string
	CollidesWith []string
	Shape        Shape
}

// Footprint returns the axis aligned bounds of the snapshot's shape, used
// as the broadphase entry of the entity.
func (s *Snapshot) Footprint() gm.Rect {
	envelope := s.Shape.Envelope()
	return gm.Rect{
		Min: s.Center.Sub(envelope),
		Max: s.Center.Add(envelope),
	}
}

// snapshotOf builds the snapshot for a single entity. Returns false if the
// entity has no position or no collider.
func snapshotOf(c Components, id EntityId, precedence ShapePrecedence) (Snapshot, bool) {
	position, ok := c.Position(id)
	if !ok {
		return Snapshot{}, false
	}

	shape, offset, ok := shapeOf(c, id, precedence)
	if !ok {
		return Snapshot{}, false
	}

	snapshot := Snapshot{
		Entity: id,
		Center: position.Add(offset),
		Shape:  shape,
	}

	if layer, ok := c.Layer(id); ok {
		snapshot.Layer = layer.Name
		snapshot.CollidesWith = layer.CollidesWith
	}

	return snapshot, true
}

// shapeOf picks the collision shape of an entity. An entity may carry a box
// and a circle collider at the same time, only one of them is used per
// collision check as decided by the configured precedence.
func shapeOf(c Components, id EntityId, precedence ShapePrecedence) (Shape, gm.Vec, bool) {
	box, hasBox := c.BoxCollider(id)
	circle, hasCircle := c.CircleCollider(id)

	if hasBox && hasCircle && precedence == PreferCircle {
		hasBox = false
	}

	switch {
	case hasBox:
		return Shape{Kind: ShapeBox, Half: box.HalfExtents}, box.Offset, true
	case hasCircle:
		return Shape{Kind: ShapeCircle, Radius: circle.Radius}, circle.Offset, true
	default:
		return Shape{}, gm.VecZero, false
	}
}

// appendSnapshots rebuilds the snapshot list for the current tick,
// reusing the backing array of dst.
func appendSnapshots(dst []Snapshot, c Components, precedence ShapePrecedence) []Snapshot {
	dst = dst[:0]

	for id := range c.Entities() {
		snapshot, ok := snapshotOf(c, id, precedence)
		if !ok {
			continue
		}

		dst = append(dst, snapshot)
	}

	return dst
}
