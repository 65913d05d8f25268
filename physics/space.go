package physics

import (
	"math"
	"slices"

	"github.com/oliverbestmann/bump/gm"
	"github.com/oliverbestmann/bump/spatial"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Space runs the physics of one world: force integration, collision
// detection and contact resolution, in that order, once per Step.
//
// A Space owns its tick scoped scratch state (grid, snapshots) and must
// not be stepped concurrently.
type Space struct {
	config Config
	store  Components
	grid   *spatial.Grid[EntityId]
	sink   Sink
	logger *zap.Logger

	detector  Detector
	snapshots []Snapshot
	contacts  []pendingContact
	stats     StepStats
}

// pendingContact is one entry of the contact list produced by detection
// and consumed by resolution.
type pendingContact struct {
	a, b    *Snapshot
	contact Contact
}

type Option func(*Space)

// WithSink routes collision events into the given sink.
func WithSink(sink Sink) Option {
	return func(s *Space) {
		s.sink = sink
	}
}

// WithLogger enables per step debug logging.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Space) {
		s.logger = logger
	}
}

// WithGrid uses an externally owned broadphase grid instead of the one
// derived from the config. Passing nil disables the broadphase.
func WithGrid(grid *spatial.Grid[EntityId]) Option {
	return func(s *Space) {
		s.grid = grid
	}
}

func NewSpace(store Components, config Config, options ...Option) *Space {
	space := &Space{
		config: config,
		store:  store,
		logger: zap.NewNop(),
	}

	if config.CellSize > 0 {
		space.grid = spatial.NewGrid[EntityId](config.CellSize)
	}

	for _, option := range options {
		option(space)
	}

	return space
}

// StepStats counts the work done by the most recent Step.
type StepStats struct {
	Integrated int
	Snapshots  int
	Contacts   int
}

func (s *Space) Stats() StepStats {
	return s.stats
}

// Step advances the simulation by dt seconds: velocities and positions are
// integrated first, then contacts are detected on the updated positions
// and resolved in place.
func (s *Space) Step(dt float64) {
	s.stats = StepStats{}

	s.integrate(dt)

	s.snapshots = appendSnapshots(s.snapshots, s.store, s.config.ShapePrecedence)
	s.stats.Snapshots = len(s.snapshots)

	// detection produces a contact list first, resolution consumes it
	// afterwards. Event handlers and proximity queries triggered by a
	// resolved contact therefore never observe a detection in progress.
	s.contacts = s.contacts[:0]
	s.detector.Detect(s.snapshots, s.grid, collectContactFunc, s)

	for idx := range s.contacts {
		pending := &s.contacts[idx]
		s.resolveContact(pending.a, pending.b, pending.contact)
	}

	if entry := s.logger.Check(zapcore.DebugLevel, "physics step"); entry != nil {
		fields := []zap.Field{
			zap.Float64("dt", dt),
			zap.Int("integrated", s.stats.Integrated),
			zap.Int("snapshots", s.stats.Snapshots),
			zap.Int("contacts", s.stats.Contacts),
		}

		if s.grid != nil {
			stats := s.grid.Stats()
			fields = append(fields,
				zap.Int("gridCells", stats.OccupiedCells),
				zap.Int("gridEntries", stats.Entries))
		}

		entry.Write(fields...)
	}
}

// integrate applies gravity, accumulated forces and drag to the velocity
// of every dynamic body, then advances the position of every non static
// body. Force accumulators are consumed and reset.
func (s *Space) integrate(dt float64) {
	for id := range s.store.Entities() {
		body, ok := s.store.RigidBody(id)
		if !ok {
			continue
		}

		velocity, hasVelocity := s.store.Velocity(id)
		if !hasVelocity {
			continue
		}

		if body.Kind == BodyDynamic {
			accel := s.config.Gravity.Mul(body.GravityScale)

			if forces, ok := s.store.Forces(id); ok {
				if body.Mass > 0 && !math.IsInf(body.Mass, 1) {
					accel = accel.Add(forces.Linear.Mul(1 / body.Mass))
				}

				forces.Linear = gm.VecZero
			}

			damping := max(0, 1-body.Drag*dt)
			*velocity = velocity.Add(accel.Mul(dt)).Mul(damping)

			s.stats.Integrated += 1
		}

		if body.Kind == BodyStatic {
			continue
		}

		if position, ok := s.store.Position(id); ok {
			*position = position.Add(velocity.Mul(dt))
		}
	}
}

func collectContactFunc(a, b *Snapshot, contact Contact, ctx any) {
	space := ctx.(*Space)
	space.contacts = append(space.contacts, pendingContact{a: a, b: b, contact: contact})
}

func (s *Space) resolveContact(a, b *Snapshot, contact Contact) {
	bodyA := s.bodyOf(a.Entity)
	bodyB := s.bodyOf(b.Entity)

	invMassA := bodyA.InverseMass()
	invMassB := bodyB.InverseMass()
	total := invMassA + invMassB

	if total > 0 {
		s.correctPositions(a, b, contact, invMassA/total, invMassB/total)
		s.resolveVelocities(a, b, bodyA, bodyB, contact, invMassA, invMassB)
	}

	s.stats.Contacts += 1

	if s.sink != nil {
		s.sink.Publish(CollisionEventName, CollisionEvent{
			A:      a.Entity,
			B:      b.Entity,
			LayerA: a.Layer,
			LayerB: b.Layer,
			Normal: contact.Normal,
			Depth:  contact.Depth,
		})
	}
}

// bodyOf returns a copy of the entity's rigid body. Entities that collide
// without carrying one, such as pure trigger volumes, act as static
// anchors with zero restitution and friction.
func (s *Space) bodyOf(id EntityId) RigidBody {
	if body, ok := s.store.RigidBody(id); ok {
		return *body
	}

	return RigidBody{Kind: BodyStatic}
}

// correctPositions splits the penetration depth between the two bodies in
// proportion to their inverse mass, so the lighter body is displaced
// further. Static and kinematic bodies have a zero share and stay put.
func (s *Space) correctPositions(a, b *Snapshot, contact Contact, shareA, shareB float64) {
	if shareA > 0 {
		if position, ok := s.store.Position(a.Entity); ok {
			*position = position.Sub(contact.Normal.Mul(contact.Depth * shareA))
		}
	}

	if shareB > 0 {
		if position, ok := s.store.Position(b.Entity); ok {
			*position = position.Add(contact.Normal.Mul(contact.Depth * shareB))
		}
	}
}

// resolveVelocities applies the restitution impulse along the contact
// normal and dampens the tangential velocity by friction. Pairs that are
// already separating are left alone even while still overlapping.
//
// Mismatched restitution and friction values of the two bodies are
// combined by arithmetic mean.
func (s *Space) resolveVelocities(a, b *Snapshot, bodyA, bodyB RigidBody, contact Contact, invMassA, invMassB float64) {
	velocityA, hasVelocityA := s.store.Velocity(a.Entity)
	velocityB, hasVelocityB := s.store.Velocity(b.Entity)

	var va, vb gm.Vec
	if hasVelocityA {
		va = *velocityA
	}
	if hasVelocityB {
		vb = *velocityB
	}

	relative := vb.Sub(va)
	normalSpeed := relative.Dot(contact.Normal)
	if normalSpeed >= 0 {
		return
	}

	total := invMassA + invMassB

	restitution := (bodyA.Restitution + bodyB.Restitution) / 2
	j := -(1 + restitution) * normalSpeed / total
	impulse := contact.Normal.Mul(j)

	friction := (bodyA.Friction + bodyB.Friction) / 2
	tangential := relative.Sub(contact.Normal.Mul(normalSpeed))

	if hasVelocityA && invMassA > 0 {
		*velocityA = velocityA.
			Sub(impulse.Mul(invMassA)).
			Add(tangential.Mul(friction * invMassA / total))
	}

	if hasVelocityB && invMassB > 0 {
		*velocityB = velocityB.
			Add(impulse.Mul(invMassB)).
			Sub(tangential.Mul(friction * invMassB / total))
	}
}

// QueryRect returns the candidate entities near the given rectangle, for
// use by game logic. The result reflects the broadphase state of the most
// recent Step and may overinclude, it is never missing a true overlap.
func (s *Space) QueryRect(rect gm.Rect) []EntityId {
	if s.grid != nil {
		return slices.Clone(s.grid.QueryRect(rect))
	}

	var result []EntityId
	for idx := range s.snapshots {
		if rect.Overlaps(s.snapshots[idx].Footprint()) {
			result = append(result, s.snapshots[idx].Entity)
		}
	}

	return result
}

// QueryRadius returns the candidate entities touching the bounding square
// of the circle. Exact distance filtering is left to the caller.
func (s *Space) QueryRadius(center gm.Vec, radius float64) []EntityId {
	half := gm.VecSplat(radius)
	return s.QueryRect(gm.Rect{
		Min: center.Sub(half),
		Max: center.Add(half),
	})
}
