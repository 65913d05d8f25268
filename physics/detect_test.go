package physics

import (
	"math/rand/v2"
	"testing"

	"github.com/oliverbestmann/bump/gm"
	"github.com/oliverbestmann/bump/spatial"
	"github.com/stretchr/testify/require"
)

type pair struct {
	A, B EntityId
}

func orderedPair(a, b EntityId) pair {
	if a > b {
		a, b = b, a
	}
	return pair{A: a, B: b}
}

func collectPairs(snapshots []Snapshot, grid *spatial.Grid[EntityId]) map[pair]int {
	pairs := map[pair]int{}
	DetectCollisions(snapshots, grid, func(a, b *Snapshot, contact Contact, ctx any) {
		pairs[orderedPair(a.Entity, b.Entity)] += 1
	}, nil)

	return pairs
}

func sameLayer(snapshots []Snapshot) []Snapshot {
	for idx := range snapshots {
		snapshots[idx].Layer = "stuff"
		snapshots[idx].CollidesWith = []string{"stuff"}
	}
	return snapshots
}

func TestDetectCollisions_PairsOnce(t *testing.T) {
	snapshots := sameLayer([]Snapshot{
		boxSnapshot(1, 0, 0, 10, 10),
		boxSnapshot(2, 15, 0, 10, 10),
		boxSnapshot(3, 500, 500, 10, 10),
	})

	pairs := collectPairs(snapshots, nil)
	require.Equal(t, map[pair]int{{A: 1, B: 2}: 1}, pairs)

	pairs = collectPairs(snapshots, spatial.NewGrid[EntityId](32))
	require.Equal(t, map[pair]int{{A: 1, B: 2}: 1}, pairs)
}

func TestDetectCollisions_ContextForwarded(t *testing.T) {
	snapshots := sameLayer([]Snapshot{
		circleSnapshot(1, 0, 0, 5),
		circleSnapshot(2, 4, 0, 5),
	})

	type contextValue struct{ calls int }
	value := &contextValue{}

	DetectCollisions(snapshots, nil, func(a, b *Snapshot, contact Contact, ctx any) {
		ctx.(*contextValue).calls += 1
	}, value)

	require.Equal(t, 1, value.calls)
}

func TestDetectCollisions_LayerFilter(t *testing.T) {
	t.Run("one sided permission is enough", func(t *testing.T) {
		snapshots := []Snapshot{
			boxSnapshot(1, 0, 0, 10, 10),
			boxSnapshot(2, 5, 0, 10, 10),
		}

		snapshots[0].Layer = "sensor"
		snapshots[0].CollidesWith = []string{"player"}
		snapshots[1].Layer = "player"
		snapshots[1].CollidesWith = nil

		pairs := collectPairs(snapshots, nil)
		require.Equal(t, map[pair]int{{A: 1, B: 2}: 1}, pairs)
	})

	t.Run("no permission on either side filters the pair", func(t *testing.T) {
		snapshots := []Snapshot{
			boxSnapshot(1, 0, 0, 10, 10),
			boxSnapshot(2, 5, 0, 10, 10),
		}

		snapshots[0].Layer = "a"
		snapshots[0].CollidesWith = []string{"c"}
		snapshots[1].Layer = "b"
		snapshots[1].CollidesWith = []string{"c"}

		require.Empty(t, collectPairs(snapshots, nil))
	})
}

func TestDetectCollisions_GridMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for run := range 20 {
		var snapshots []Snapshot
		for id := EntityId(1); id <= 60; id++ {
			x := rng.Float64()*400 - 200
			y := rng.Float64()*400 - 200

			if id%2 == 0 {
				snapshots = append(snapshots, boxSnapshot(id, x, y, 5+rng.Float64()*15, 5+rng.Float64()*15))
			} else {
				snapshots = append(snapshots, circleSnapshot(id, x, y, 5+rng.Float64()*15))
			}
		}

		snapshots = sameLayer(snapshots)

		brute := collectPairs(snapshots, nil)
		gridded := collectPairs(snapshots, spatial.NewGrid[EntityId](48))

		require.Equal(t, brute, gridded, "run %d", run)
	}
}

func TestDetectCollisions_CallbackMayQueryTheGrid(t *testing.T) {
	grid := spatial.NewGrid[EntityId](32)

	snapshots := sameLayer([]Snapshot{
		boxSnapshot(1, 0, 0, 10, 10),
		boxSnapshot(2, 5, 0, 10, 10),
		boxSnapshot(3, 10, 0, 10, 10),
		boxSnapshot(4, 500, 500, 10, 10),
		boxSnapshot(5, 505, 500, 10, 10),
		boxSnapshot(6, 510, 500, 10, 10),
	})

	pairs := map[pair]int{}
	everything := gm.RectWithPoints(gm.Vec{X: -100, Y: -100}, gm.Vec{X: 600, Y: 600})

	DetectCollisions(snapshots, grid, func(a, b *Snapshot, contact Contact, ctx any) {
		pairs[orderedPair(a.Entity, b.Entity)] += 1

		// a query from inside the callback reuses the grid's result
		// buffer, candidate iteration must not be affected by it
		grid.QueryRect(everything)
		grid.QueryRadius(gm.Vec{X: 500, Y: 500}, 50)
	}, nil)

	require.Equal(t, collectPairs(snapshots, nil), pairs)
	require.Len(t, pairs, 6)
}

func TestDetector_ReusedAcrossTicks(t *testing.T) {
	var detector Detector
	grid := spatial.NewGrid[EntityId](32)

	collect := func(snapshots []Snapshot) map[pair]int {
		pairs := map[pair]int{}
		detector.Detect(snapshots, grid, func(a, b *Snapshot, contact Contact, ctx any) {
			pairs[orderedPair(a.Entity, b.Entity)] += 1
		}, nil)
		return pairs
	}

	first := sameLayer([]Snapshot{
		boxSnapshot(1, 0, 0, 10, 10),
		boxSnapshot(2, 15, 0, 10, 10),
		boxSnapshot(3, 200, 0, 10, 10),
	})
	require.Equal(t, map[pair]int{{A: 1, B: 2}: 1}, collect(first))

	// a different set of entities on the next tick, nothing of the first
	// one may leak through the reused scratch state
	second := sameLayer([]Snapshot{
		boxSnapshot(4, 200, 0, 10, 10),
		boxSnapshot(5, 215, 0, 10, 10),
	})
	require.Equal(t, map[pair]int{{A: 4, B: 5}: 1}, collect(second))

	require.Equal(t, collectPairs(second, nil), collect(second))
}

func TestDetectCollisions_GridReusedAcrossTicks(t *testing.T) {
	grid := spatial.NewGrid[EntityId](32)

	snapshots := sameLayer([]Snapshot{
		boxSnapshot(1, 0, 0, 10, 10),
		boxSnapshot(2, 15, 0, 10, 10),
	})

	require.Len(t, collectPairs(snapshots, grid), 1)

	// moving the entities apart must not leave stale grid entries behind
	snapshots[1].Center = gm.Vec{X: 500}
	require.Empty(t, collectPairs(snapshots, grid))
}
