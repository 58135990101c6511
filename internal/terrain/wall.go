package terrain

import "fmt"

// Kind classifies how a wall renders and behaves on contact.
type Kind uint8

const (
	KindNormal  Kind = iota // solid, lethal terrain
	KindBounce              // reflects the ship instead of killing it
	KindGhost               // drawn behind everything, no collision
	KindExplode             // destructible; drawn last, lethal via shots
	kindCount               // sentinel
)

func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindBounce:
		return "bounce"
	case KindGhost:
		return "ghost"
	case KindExplode:
		return "explode"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Valid reports whether k is a known render kind.
func (k Kind) Valid() bool {
	return k < kindCount
}

// Wall is one world-space terrain segment. Geometry is immutable after
// construction; the only mutable state a level keeps about a wall is the
// Alive flag on destructible walls, which lives outside this struct.
type Wall struct {
	ID     int
	StartX int
	StartY int
	Length int // length units (see Dir.Delta)
	Dir    Dir
	Kind   Kind

	// Derived at construction.
	EndX int
	EndY int

	// Black-pass span along the wall, in scanlines (pixels along x for
	// DirE). Junction patching trims these so wall tops stop short where
	// a patch takes over.
	H1 int
	H2 int
}

// NewWall validates the inputs and derives the end point and default
// black span. Invalid direction, kind, or a non-positive length are
// load-time data errors.
func NewWall(id, startX, startY, length int, dir Dir, kind Kind) (Wall, error) {
	if !dir.Valid() {
		return Wall{}, fmt.Errorf("wall %d: invalid direction %d", id, uint8(dir))
	}
	if !kind.Valid() {
		return Wall{}, fmt.Errorf("wall %d: invalid kind %d", id, uint8(kind))
	}
	if length <= 0 {
		return Wall{}, fmt.Errorf("wall %d: non-positive length %d", id, length)
	}
	w := Wall{
		ID:     id,
		StartX: startX,
		StartY: startY,
		Length: length,
		Dir:    dir,
		Kind:   kind,
	}
	w.EndX, w.EndY = dir.EndPoint(startX, startY, length)
	w.H1 = 0
	w.H2 = w.spanLen()
	return w, nil
}

// spanLen is the number of scanlines the black pass walks for this wall
// (pixel columns for DirE walls).
func (w *Wall) spanLen() int {
	if w.Dir == DirE {
		return w.EndX - w.StartX
	}
	dy := w.EndY - w.StartY
	if dy < 0 {
		dy = -dy
	}
	return dy
}

// TopY returns the y of the upper endpoint and whether the wall's start
// is that endpoint. The black pass always walks downward.
func (w *Wall) TopY() (y int, startOnTop bool) {
	if w.StartY <= w.EndY {
		return w.StartY, true
	}
	return w.EndY, false
}

// MinX returns the leftmost x the wall touches.
func (w *Wall) MinX() int {
	if w.EndX < w.StartX {
		return w.EndX
	}
	return w.StartX
}

// MaxX returns the rightmost x the wall touches.
func (w *Wall) MaxX() int {
	if w.EndX > w.StartX {
		return w.EndX
	}
	return w.StartX
}

// Endpoint returns the start (i == 0) or end (i == 1) point.
func (w *Wall) Endpoint(i int) (x, y int) {
	if i == 0 {
		return w.StartX, w.StartY
	}
	return w.EndX, w.EndY
}
