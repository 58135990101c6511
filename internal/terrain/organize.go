package terrain

import (
	"fmt"
	"sort"
)

// noWall marks the end of a kind chain.
const noWall = -1

// OrganizedWalls is the per-level spatial index over a wall set: an arena
// of walls sorted ascending by start x, with one chain per kind threaded
// through it so a kind-filtered sweep visits exactly the walls of that
// kind, in x order, and no others.
//
// The index is built once at level load and never mutated. Destruction of
// Explode walls is tracked in the alive bitmap only; geometry and order
// are untouched.
type OrganizedWalls struct {
	walls []Wall          // arena, ascending StartX (stable)
	first [kindCount]int  // first arena index per kind, or noWall
	next  []int           // next arena index of the same kind, or noWall
	byID  map[int]int     // wall ID -> arena index
	alive []bool          // per arena index; only Explode walls ever flip
}

// Organize builds the index. Duplicate IDs are a load-time data error.
func Organize(walls []Wall) (*OrganizedWalls, error) {
	arena := make([]Wall, len(walls))
	copy(arena, walls)
	sort.SliceStable(arena, func(i, j int) bool {
		return arena[i].StartX < arena[j].StartX
	})

	ow := &OrganizedWalls{
		walls: arena,
		next:  make([]int, len(arena)),
		byID:  make(map[int]int, len(arena)),
		alive: make([]bool, len(arena)),
	}
	for k := range ow.first {
		ow.first[k] = noWall
	}
	// Thread the kind chains back to front so each head ends up on the
	// leftmost wall of its kind.
	for i := len(arena) - 1; i >= 0; i-- {
		w := &arena[i]
		ow.next[i] = ow.first[w.Kind]
		ow.first[w.Kind] = i
		ow.alive[i] = true
		if _, dup := ow.byID[w.ID]; dup {
			return nil, fmt.Errorf("organize: duplicate wall id %d", w.ID)
		}
		ow.byID[w.ID] = i
	}
	return ow, nil
}

// Len returns the total wall count.
func (ow *OrganizedWalls) Len() int {
	return len(ow.walls)
}

// Walls returns the x-sorted arena. Callers must not modify it.
func (ow *OrganizedWalls) Walls() []Wall {
	return ow.walls
}

// ByID returns the wall with the given ID, or nil.
func (ow *OrganizedWalls) ByID(id int) *Wall {
	i, ok := ow.byID[id]
	if !ok {
		return nil
	}
	return &ow.walls[i]
}

// Alive reports whether the wall at arena index i still exists.
func (ow *OrganizedWalls) Alive(i int) bool {
	return ow.alive[i]
}

// AliveID reports whether the wall with the given ID still exists.
// Unknown IDs are dead.
func (ow *OrganizedWalls) AliveID(id int) bool {
	i, ok := ow.byID[id]
	return ok && ow.alive[i]
}

// Destroy marks an Explode wall dead, removing it from rendering and
// collision without touching geometry or order. Other kinds are not
// destructible and the call is a no-op for them.
func (ow *OrganizedWalls) Destroy(id int) bool {
	i, ok := ow.byID[id]
	if !ok || ow.walls[i].Kind != KindExplode || !ow.alive[i] {
		return false
	}
	ow.alive[i] = false
	return true
}

// EachOfKind walks the kind chain in ascending start-x order, calling fn
// for each live wall until fn returns false. The arena index accompanies
// the wall so callers can consult Alive bookkeeping.
func (ow *OrganizedWalls) EachOfKind(k Kind, fn func(i int, w *Wall) bool) {
	for i := ow.first[k]; i != noWall; i = ow.next[i] {
		if !ow.alive[i] {
			continue
		}
		if !fn(i, &ow.walls[i]) {
			return
		}
	}
}

// firstOfKind returns the head arena index of a kind chain (tests).
func (ow *OrganizedWalls) firstOfKind(k Kind) int {
	return ow.first[k]
}
