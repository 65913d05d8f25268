package physics

import (
	"slices"

	"github.com/oliverbestmann/bump/spatial"
)

// ContactFunc is invoked once per colliding pair. The context value given
// to the detector is forwarded unchanged.
type ContactFunc func(a, b *Snapshot, contact Contact, ctx any)

// Detector enumerates colliding snapshot pairs. It owns reusable scratch
// buffers, a long lived Detector runs without per tick allocations. The
// zero value is ready for use.
type Detector struct {
	byId       map[EntityId]int
	candidates []EntityId
}

// Detect produces exactly one callback per unordered pair of snapshots
// that passes layer filtering and overlaps.
//
// With a grid, the snapshots are refreshed into it first and candidate
// pairs come from footprint queries. Candidates are copied out of the
// grid's query buffer before the callback runs, so callbacks are free to
// query the same grid. A nil grid falls back to checking all pairs, with
// identical results modulo ordering.
func (d *Detector) Detect(snapshots []Snapshot, grid *spatial.Grid[EntityId], fn ContactFunc, ctx any) {
	if grid == nil {
		detectBruteForce(snapshots, fn, ctx)
		return
	}

	grid.Clear()
	for idx := range snapshots {
		grid.Insert(snapshots[idx].Entity, snapshots[idx].Footprint())
	}

	if d.byId == nil {
		d.byId = make(map[EntityId]int, len(snapshots))
	}

	clear(d.byId)
	for idx := range snapshots {
		d.byId[snapshots[idx].Entity] = idx
	}

	for idx := range snapshots {
		a := &snapshots[idx]

		d.candidates = append(d.candidates[:0], grid.QueryRect(a.Footprint())...)

		for _, candidate := range d.candidates {
			// visit each unordered pair only once
			if candidate <= a.Entity {
				continue
			}

			b := &snapshots[d.byId[candidate]]
			checkPair(a, b, fn, ctx)
		}
	}
}

// DetectCollisions runs Detect with a throwaway Detector.
func DetectCollisions(snapshots []Snapshot, grid *spatial.Grid[EntityId], fn ContactFunc, ctx any) {
	var detector Detector
	detector.Detect(snapshots, grid, fn, ctx)
}

func detectBruteForce(snapshots []Snapshot, fn ContactFunc, ctx any) {
	for i := range snapshots {
		for j := i + 1; j < len(snapshots); j++ {
			checkPair(&snapshots[i], &snapshots[j], fn, ctx)
		}
	}
}

func checkPair(a, b *Snapshot, fn ContactFunc, ctx any) {
	if !layersEligible(a, b) {
		return
	}

	contact, ok := Collide(a, b)
	if !ok {
		return
	}

	fn(a, b, contact, ctx)
}

// layersEligible applies the one sided permission rule: the pair is
// eligible if either snapshot lists the other's layer.
func layersEligible(a, b *Snapshot) bool {
	return slices.Contains(a.CollidesWith, b.Layer) ||
		slices.Contains(b.CollidesWith, a.Layer)
}
