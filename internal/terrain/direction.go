package terrain

import (
	"fmt"
	"math"
)

// Dir is one of the 8 canonical wall directions. Walls only ever point
// into the south/east half-plane; a wall running the opposite way is the
// same record with start and end swapped (see Rot16).
type Dir uint8

const (
	DirS   Dir = iota // straight down
	DirSSE            // down, half-step right
	DirSE             // down-right diagonal
	DirESE            // right, half-step down
	DirE              // straight right
	DirENE            // right, half-step up
	DirNE             // up-right diagonal
	DirNNE            // up, half-step right
	dirCount          // sentinel
)

// Q16.16 fixed point used by the scanline stepper.
const (
	fixShift = 16
	fixScale = 1 << fixShift
	fixHalf  = fixScale / 2
)

func (d Dir) String() string {
	switch d {
	case DirS:
		return "S"
	case DirSSE:
		return "SSE"
	case DirSE:
		return "SE"
	case DirESE:
		return "ESE"
	case DirE:
		return "E"
	case DirENE:
		return "ENE"
	case DirNE:
		return "NE"
	case DirNNE:
		return "NNE"
	default:
		return fmt.Sprintf("Dir(%d)", uint8(d))
	}
}

// Valid reports whether d is one of the 8 canonical directions.
func (d Dir) Valid() bool {
	return d < dirCount
}

// dirDelta holds the per-length-unit displacement of a direction in
// half-pixel units. End-point derivation is end = start + delta*length/2,
// which stays exact in integers for every direction.
type dirDelta struct {
	dx, dy int // half-pixels per length unit
}

var dirDeltas = [dirCount]dirDelta{
	DirS:   {0, 2},
	DirSSE: {1, 2},
	DirSE:  {2, 2},
	DirESE: {2, 1},
	DirE:   {2, 0},
	DirENE: {2, -1},
	DirNE:  {2, -2},
	DirNNE: {1, -2},
}

// Delta returns the half-pixel displacement per length unit.
func (d Dir) Delta() (dx, dy int) {
	dd := dirDeltas[d]
	return dd.dx, dd.dy
}

// EndPoint derives the end of a wall of this direction and length
// starting at (x, y). Deterministic, integer-only.
func (d Dir) EndPoint(x, y, length int) (ex, ey int) {
	dd := dirDeltas[d]
	return x + dd.dx*length/2, y + dd.dy*length/2
}

// SlopeFix returns the x advance per downward scanline in Q16.16, valid
// for every direction except DirE (which has no vertical extent and is
// rasterized as a single horizontal run).
func (d Dir) SlopeFix() int {
	switch d {
	case DirS:
		return 0
	case DirSSE:
		return fixHalf
	case DirSE:
		return fixScale
	case DirESE:
		return 2 * fixScale
	case DirENE:
		return -2 * fixScale
	case DirNE:
		return -fixScale
	case DirNNE:
		return -fixHalf
	default:
		return 0
	}
}

// RunWidth is the number of pixels set per scanline for this direction.
// Shallow directions (ESE, ENE) cover two columns per row so the drawn
// line has no gaps.
func (d Dir) RunWidth() int {
	if d == DirESE || d == DirENE {
		return 2
	}
	return 1
}

// Normal returns the unit normal of the wall line, pointing into the
// half-plane a bouncing ship is pushed toward (up/left of the stroke).
func (d Dir) Normal() (nx, ny float64) {
	dd := dirDeltas[d]
	// Perpendicular of (dx, dy), normalised. Sign chosen so the normal
	// has a negative or zero y component (points upward on screen).
	px, py := float64(dd.dy), float64(-dd.dx)
	if py > 0 {
		px, py = -px, -py
	}
	n := 1.0 / math.Hypot(px, py)
	return px * n, py * n
}

// Rot16 is a direction on the full 16-point compass, used to key junction
// patch selection. A wall of direction d contributes Rot16(d, false) at
// its start point and Rot16(d, true) at its end point, i.e. the outgoing
// heading as seen from that endpoint.
type Rot16 uint8

// rot16Of maps a canonical direction to its 16-point rotation, with the
// endpoint flag flipping to the opposite compass point.
func rot16Of(d Dir, atEnd bool) Rot16 {
	r := Rot16(8 - uint8(d))
	if atEnd {
		r = (r + 8) & 15
	}
	return r
}
