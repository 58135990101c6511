package terrain

import "sort"

// whitePiece is one underside erase patch: h rows of 16-bit keep-masks
// anchored at (x, y). Zero bits erase. A hashed piece additionally draws
// the junction crosshatch over its footprint.
type whitePiece struct {
	x, y   int
	h      int
	data   []uint16
	hashed bool
}

// Whites is the per-level static white-pass input: underside pieces in
// ascending (x, y) order plus the junction patches that were not consumed
// by a piece. Built once at level load, immutable afterwards.
type Whites struct {
	pieces  []whitePiece
	patches []Junction // remaining junctions; drawn as patch + crosshatch
}

// Crater is a blast mark left where a destructible wall died. Craters
// are dynamic (the game appends as walls are destroyed) and are carved
// out of the drawn terrain after the black passes.
type Crater struct {
	X, Y int
}

// craterFigure erases a rough blast hole; zero bits clear.
var craterFigure = [patchHeight]uint16{0xE3C7, 0xC183, 0x8001, 0x8001, 0xC183, 0xE3C7}

// BuildWhites constructs the white-pass data for an organized wall set
// and trims each wall's black span where junction patches take over.
// It must run before the first frame; it is the only code that writes
// H1/H2 after construction.
func BuildWhites(ow *OrganizedWalls, junctions []Junction) *Whites {
	w := &Whites{}
	w.normWhites(ow)
	closeTrims(ow)
	w.sortPieces()
	w.mergeCoincident()
	w.patches = w.hashMerge(junctions)
	return w
}

// normWhites adds the standard endpoint pieces and the per-direction
// glitch fixes.
func (w *Whites) normWhites(ow *OrganizedWalls) {
	for i := range ow.walls {
		wall := &ow.walls[i]
		for e := 0; e < 2; e++ {
			pict := whitePicts[wall.Dir][e]
			if pict == nil {
				continue
			}
			x, y := wall.Endpoint(e)
			w.add(x, y, patchHeight, pict[:])
		}
		switch wall.Dir {
		case DirNE:
			w.add(wall.EndX-4, wall.EndY+2, 4, neGlitch)
		case DirENE:
			w.add(wall.StartX+16, wall.StartY, 3, eneGlitch1)
			w.add(wall.EndX-10, wall.EndY+1, 5, eneGlitch2)
		case DirESE:
			w.add(wall.EndX-7, wall.EndY-2, 4, eseGlitch)
		}
	}
}

func (w *Whites) add(x, y, h int, data []uint16) {
	w.pieces = append(w.pieces, whitePiece{x: x, y: y, h: h, data: data})
}

func (w *Whites) sortPieces() {
	sort.SliceStable(w.pieces, func(i, j int) bool {
		if w.pieces[i].x != w.pieces[j].x {
			return w.pieces[i].x < w.pieces[j].x
		}
		return w.pieces[i].y < w.pieces[j].y
	})
}

// mergeCoincident combines full-height pieces sharing a position by
// ANDing their keep-masks, so stacked endpoint shadows erase the union.
func (w *Whites) mergeCoincident() {
	out := w.pieces[:0]
	for i := 0; i < len(w.pieces); i++ {
		p := w.pieces[i]
		for i+1 < len(w.pieces) {
			q := &w.pieces[i+1]
			if q.x != p.x || q.y != p.y || p.h != patchHeight || q.h != patchHeight {
				break
			}
			merged := make([]uint16, patchHeight)
			for r := 0; r < patchHeight; r++ {
				merged[r] = p.data[r] & q.data[r]
			}
			p.data = merged
			i++
		}
		out = append(out, p)
	}
	w.pieces = out
}

// hashMerge marks isolated full-height pieces that sit exactly on a
// junction: the piece takes over the crosshatch and the junction is
// consumed. Junctions left over are returned for standalone drawing.
func (w *Whites) hashMerge(junctions []Junction) []Junction {
	remaining := make([]Junction, 0, len(junctions))
	for _, j := range junctions {
		consumed := false
		for i := range w.pieces {
			p := &w.pieces[i]
			if p.x == j.X && p.y == j.Y && p.h == patchHeight && w.isolated(i) {
				p.hashed = true
				consumed = true
				break
			}
		}
		if !consumed {
			remaining = append(remaining, j)
		}
	}
	return remaining
}

// isolated reports whether no other piece lies within the junction
// tolerance box of piece i. The list is x-sorted, so scanning stops as
// soon as the x gap exceeds the tolerance.
func (w *Whites) isolated(i int) bool {
	p := &w.pieces[i]
	for k := i - 1; k >= 0 && w.pieces[k].x > p.x-junctionTol; k-- {
		if abs(w.pieces[k].y-p.y) < junctionTol {
			return false
		}
	}
	for k := i + 1; k < len(w.pieces) && w.pieces[k].x < p.x+junctionTol; k++ {
		if abs(w.pieces[k].y-p.y) < junctionTol {
			return false
		}
	}
	return true
}

// closeTrims shortens the black span of walls whose endpoints meet
// another wall, so the junction patch renders instead of two overlapping
// wall tops. The sweep mirrors the junction scan: both endpoints of every
// wall against every differing-direction wall within tolerance.
func closeTrims(ow *OrganizedWalls) {
	walls := ow.walls
	for i := range walls {
		w1 := &walls[i]
		for j := range walls {
			w2 := &walls[j]
			if i == j || w1.Dir == w2.Dir {
				continue
			}
			for e1 := 0; e1 < 2; e1++ {
				x1, y1 := w1.Endpoint(e1)
				for e2 := 0; e2 < 2; e2++ {
					x2, y2 := w2.Endpoint(e2)
					if abs(x1-x2) > junctionTol || abs(y1-y2) > junctionTol {
						continue
					}
					applyTrim(w1, e1, trimFor(rot16Of(w1.Dir, e1 == 1), rot16Of(w2.Dir, e2 == 1)))
				}
			}
		}
	}
}

// applyTrim shortens wall w's black span by n scanlines at endpoint e.
func applyTrim(w *Wall, e int, n int) {
	if n <= 0 {
		return
	}
	span := w.spanLen()
	if n > span {
		n = span
	}
	atTop := false
	if w.Dir == DirE {
		atTop = e == 0 // left end
	} else {
		_, startOnTop := w.TopY()
		atTop = (e == 0) == startOnTop
	}
	if atTop {
		if w.H1 < n {
			w.H1 = n
		}
		if w.H1 > w.H2 {
			w.H1 = w.H2
		}
	} else {
		if w.H2 > span-n {
			w.H2 = span - n
		}
		if w.H2 < w.H1 {
			w.H2 = w.H1
		}
	}
}

// trimFor returns how many scanlines of wall top the patch replaces for
// a meeting of pointing-away rotations r1 (the wall being trimmed) and
// r2. Near-parallel meetings need long patches; perpendicular and wider
// meetings need none. Only vertical and diagonal strokes trim; the
// other rotations keep their full span and rely on the patch pieces
// alone.
func trimFor(r1, r2 Rot16) int {
	rel := (r2 - r1) & 15
	switch r1 {
	case 0, 8: // vertical stroke
		switch rel {
		case 1, 15:
			return 21
		case 2:
			return 10
		case 3, 14:
			return 6
		}
	case 2, 6, 10, 14: // diagonal stroke
		switch rel {
		case 1:
			return 17
		case 12:
			return 5
		case 13:
			return 9
		case 14:
			return 13
		case 15:
			return 25
		}
	}
	return 0
}
