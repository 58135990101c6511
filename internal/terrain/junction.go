package terrain

import "sort"

// junctionTol is the endpoint coincidence tolerance in pixels. Two wall
// endpoints within a 6x6 box (±3 each axis) meet at a junction.
const junctionTol = 3

// patchHeight is the row count of the standard endpoint patterns.
const patchHeight = 6

// hashFigure is the crosshatch drawn at junction points.
var hashFigure = [patchHeight]uint16{0x8000, 0x6000, 0x1800, 0x0600, 0x0180, 0x0040}

// Endpoint underside patterns, one 16-bit row per line. Zero bits erase.
// The start/end pattern pair per direction lives in whitePicts.
var (
	genericTop = [patchHeight]uint16{0xFFFF, 0x3FFF, 0x0FFF, 0x03FF, 0x00FF, 0x007F}
	nneBot     = [patchHeight]uint16{0x800F, 0xC01F, 0xF01F, 0xFC3F, 0xFF3F, 0xFFFF}
	neBot      = [patchHeight]uint16{0x8001, 0xC003, 0xF007, 0xFC0F, 0xFF1F, 0xFFFF}
	eneLeft    = [patchHeight]uint16{0x8000, 0xC000, 0xF000, 0xFC01, 0xFF07, 0xFFDF}
	eLeft      = [patchHeight]uint16{0xFFFF, 0xFFFF, 0xF000, 0xFC00, 0xFF00, 0xFF80}
	eseRight   = [patchHeight]uint16{0xFFFF, 0x3FFF, 0x8FFF, 0xE3FF, 0xF8FF, 0xFE7F}
	seTop      = [patchHeight]uint16{0xFFFF, 0xFFFF, 0xEFFF, 0xF3FF, 0xF8FF, 0xFC3F}
	seBot      = [patchHeight]uint16{0x87FF, 0xC3FF, 0xF1FF, 0xFCFF, 0xFF7F, 0xFFFF}
	sseTop     = [patchHeight]uint16{0xFFFF, 0xBFFF, 0xCFFF, 0xC3FF, 0xE0FF, 0xE03F}
	sseBot     = [patchHeight]uint16{0x80FF, 0xC07F, 0xF07F, 0xFC3F, 0xFF3F, 0xFFFF}
	sBot       = [patchHeight]uint16{0x803F, 0xC03F, 0xF03F, 0xFC3F, 0xFF3F, 0xFFFF}
)

// whitePicts maps direction -> {start piece, end piece}. Nil means the
// direction has no underside piece at that endpoint.
var whitePicts = [dirCount][2]*[patchHeight]uint16{
	DirS:   {&genericTop, &sBot},
	DirSSE: {&sseTop, &sseBot},
	DirSE:  {&seTop, &seBot},
	DirESE: {nil, &eseRight},
	DirE:   {&eLeft, &genericTop},
	DirENE: {&eneLeft, &genericTop},
	DirNE:  {&neBot, &genericTop},
	DirNNE: {&nneBot, &genericTop},
}

// Glitch-fix pieces: extra erases at fixed offsets that keep certain
// direction renderings from leaving stray pixels.
var (
	neGlitch   = []uint16{0xEFFF, 0xCFFF, 0x8FFF, 0x0FFF}
	eneGlitch1 = []uint16{0x07FF, 0x1FFF, 0x7FFF}
	eneGlitch2 = []uint16{0xFF3F, 0xFC3F, 0xF03F, 0xC03F, 0x003F}
	eseGlitch  = []uint16{0x3FFF, 0xCFFF, 0xF3FF, 0xFDFF}
)

// Junction patch patterns, keyed by the pointing-away rotation of the
// wall being patched.
var (
	nePatch  = []uint16{0xE000, 0xC001, 0x8003, 0x0007}
	enePatch = []uint16{0xFC00, 0xF003, 0xC00F, 0x003F}
	ePatch   = []uint16{0x0003, 0x0003, 0x0003, 0x0003}
	sePatch  = []uint16{0x07FF, 0x83FF, 0xC1FF, 0xE0FF, 0xF07F, 0xF83F, 0xFC1F,
		0xFE0F, 0xFF07, 0xFF83, 0xFFC1}
	ssePatch = []uint16{0x00FF, 0x00FF, 0x807F, 0x807F, 0xC03F, 0xC03F,
		0xE01F, 0xE01F, 0xF00F, 0xF00F, 0xF807, 0xF807,
		0xFC03, 0xFC03, 0xFE01, 0xFE01, 0xFF00, 0xFF00}
	nPatch = []uint16{0x003F, 0x003F, 0x003F, 0x003F, 0x003F, 0x003F,
		0x003F, 0x003F, 0x003F, 0x003F, 0x003F, 0x003F,
		0x003F, 0x003F, 0x003F, 0x003F, 0x003F, 0x003F,
		0x003F, 0x003F, 0x003F, 0x003F}
)

// Junction marks a point where two walls of differing direction meet.
// The pattern is the 6-row pixel-mask patch drawn over the default
// underside rendering at that point.
type Junction struct {
	X, Y    int
	Pattern [patchHeight]uint16
}

// FindJunctions scans all wall-endpoint pairs and emits one junction per
// meeting point of two walls of differing direction. Output is keyed only
// by geometry and direction, so it is independent of input order, and is
// sorted ascending by x then y.
//
// Pairwise scan is fine at level-scale wall counts (tens to low
// hundreds); bucket endpoints by rounded coordinate first if that ever
// stops being true.
func FindJunctions(walls []Wall) []Junction {
	type meet struct {
		x, y int
	}
	seen := make(map[meet][patchHeight]uint16)
	for i := range walls {
		for j := i + 1; j < len(walls); j++ {
			w1, w2 := &walls[i], &walls[j]
			if w1.Dir == w2.Dir {
				continue
			}
			for e1 := 0; e1 < 2; e1++ {
				x1, y1 := w1.Endpoint(e1)
				for e2 := 0; e2 < 2; e2++ {
					x2, y2 := w2.Endpoint(e2)
					if abs(x1-x2) > junctionTol || abs(y1-y2) > junctionTol {
						continue
					}
					// Key on the lexicographically smaller endpoint so
					// both orderings of the pair land on one record.
					kx, ky := x1, y1
					if x2 < x1 || (x2 == x1 && y2 < y1) {
						kx, ky = x2, y2
					}
					k := meet{kx, ky}
					pat := junctionPattern(rot16Of(w1.Dir, e1 == 1), rot16Of(w2.Dir, e2 == 1))
					if old, ok := seen[k]; ok {
						// Multiple pairs meeting here AND their patches.
						for r := range pat {
							pat[r] &= old[r]
						}
					}
					seen[k] = pat
				}
			}
		}
	}
	out := make([]Junction, 0, len(seen))
	for k, pat := range seen {
		out = append(out, Junction{X: k.x, Y: k.y, Pattern: pat})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].X != out[b].X {
			return out[a].X < out[b].X
		}
		return out[a].Y < out[b].Y
	})
	return out
}

// junctionPattern picks the patch for a direction pair. Selection is
// canonicalised on the smaller rotation first so it cannot depend on
// argument order.
func junctionPattern(r1, r2 Rot16) [patchHeight]uint16 {
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	src := patchFor(r1)
	var out [patchHeight]uint16
	for i := 0; i < patchHeight; i++ {
		if i < len(src) {
			out[i] = src[i]
		} else {
			out[i] = 0xFFFF
		}
	}
	return out
}

// patchFor maps a pointing-away rotation to its patch family.
func patchFor(r Rot16) []uint16 {
	switch r {
	case 0, 8:
		return nPatch
	case 1, 7:
		return ssePatch
	case 2, 6:
		return sePatch
	case 3, 5:
		return enePatch
	case 4, 12:
		return ePatch
	case 9, 15:
		return ssePatch
	case 10, 14:
		return nePatch
	default: // 11, 13
		return enePatch
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
