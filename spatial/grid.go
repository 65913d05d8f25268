// Package spatial provides the uniform spatial hash grid used as the
// collision broadphase.
//
// The grid is a pure acceleration structure: queries may return candidates
// outside the true query region (anything sharing a touched cell), never
// fewer. Callers are expected to run an exact narrowphase test on the
// result.
package spatial

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/oliverbestmann/bump/gm"
)

// Grid is a uniform spatial hash mapping 2d space to buckets of ids.
//
// Bucket storage is reused across Clear calls, so a grid that is cleared
// and refilled every tick settles into a zero-allocation steady state.
//
// A Grid is not safe for concurrent use.
type Grid[ID comparable] struct {
	cellSize    float64
	invCellSize float64

	buckets map[uint64][]ID

	// keys of buckets written since the last Clear
	occupied []uint64
	entries  int

	// scratch state reused between queries
	seen    map[ID]struct{}
	results []ID
}

// NewGrid creates an empty grid with the given cell size. The cell size
// should roughly match the footprint of a typical entity, larger entities
// simply span multiple cells.
func NewGrid[ID comparable](cellSize float64) *Grid[ID] {
	return &Grid[ID]{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		buckets:     map[uint64][]ID{},
		seen:        map[ID]struct{}{},
	}
}

func (g *Grid[ID]) CellSize() float64 {
	return g.cellSize
}

// cellOf returns the cell coordinate containing the given scalar position.
func (g *Grid[ID]) cellOf(value float64) int32 {
	return int32(math.Floor(value * g.invCellSize))
}

// cellKey hashes a pair of integer cell coordinates into a bucket key.
func cellKey(cx, cy int32) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[0:], uint32(cx))
	binary.LittleEndian.PutUint32(buf[4:], uint32(cy))
	return xxhash.Sum64(buf[:])
}

// Insert adds the id to every cell touched by the axis aligned footprint.
// An entity overlapping four cells appears in exactly those four buckets.
func (g *Grid[ID]) Insert(id ID, footprint gm.Rect) {
	minX := g.cellOf(footprint.Min.X)
	maxX := g.cellOf(footprint.Max.X)
	minY := g.cellOf(footprint.Min.Y)
	maxY := g.cellOf(footprint.Max.Y)

	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			key := cellKey(cx, cy)

			bucket := g.buckets[key]
			if len(bucket) == 0 {
				g.occupied = append(g.occupied, key)
			}

			g.buckets[key] = append(bucket, id)
			g.entries += 1
		}
	}
}

// Clear empties all buckets while keeping their capacity. Runs in
// O(occupied cells), not in O(all cells ever touched).
func (g *Grid[ID]) Clear() {
	for _, key := range g.occupied {
		g.buckets[key] = g.buckets[key][:0]
	}

	g.occupied = g.occupied[:0]
	g.entries = 0
}

// QueryRect returns the deduplicated ids of all entities whose footprint
// touches a cell overlapping the given rectangle.
//
// The returned slice is reused by the next query. Callers that keep the
// result must copy it.
func (g *Grid[ID]) QueryRect(rect gm.Rect) []ID {
	clear(g.seen)
	g.results = g.results[:0]

	minX := g.cellOf(rect.Min.X)
	maxX := g.cellOf(rect.Max.X)
	minY := g.cellOf(rect.Min.Y)
	maxY := g.cellOf(rect.Max.Y)

	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			for _, id := range g.buckets[cellKey(cx, cy)] {
				if _, ok := g.seen[id]; ok {
					continue
				}

				g.seen[id] = struct{}{}
				g.results = append(g.results, id)
			}
		}
	}

	return g.results
}

// QueryRadius returns the candidates touching the bounding square of the
// circle. The grid does not filter by true circular distance, candidates
// near the corners of the square may lie outside the circle.
func (g *Grid[ID]) QueryRadius(center gm.Vec, radius float64) []ID {
	half := gm.VecSplat(radius)
	return g.QueryRect(gm.Rect{
		Min: center.Sub(half),
		Max: center.Add(half),
	})
}

// GridStats holds occupancy counters for debugging and logging.
type GridStats struct {
	OccupiedCells int
	Entries       int
	MaxBucket     int
}

func (g *Grid[ID]) Stats() GridStats {
	stats := GridStats{Entries: g.entries}

	for _, key := range g.occupied {
		count := len(g.buckets[key])
		if count == 0 {
			continue
		}

		stats.OccupiedCells += 1
		stats.MaxBucket = max(stats.MaxBucket, count)
	}

	return stats
}
