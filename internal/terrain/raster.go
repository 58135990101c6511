package terrain

// whiteMargin is how far left of the viewport the white sweep starts, so
// pieces whose 16-pixel-wide patterns straddle the left edge still draw.
const whiteMargin = 15

// Rasterizer draws organized walls into a 1bpp framebuffer, one viewport
// per frame. It owns no per-frame state beyond the framebuffer; the
// caller passes the viewport into every render call.
type Rasterizer struct {
	fb    *Bitmap
	world World
}

// NewRasterizer wraps a framebuffer sized to the viewport.
func NewRasterizer(fb *Bitmap, world World) *Rasterizer {
	return &Rasterizer{fb: fb, world: world}
}

// FB returns the framebuffer the rasterizer writes.
func (r *Rasterizer) FB() *Bitmap {
	return r.fb
}

// Clear erases the framebuffer. First step of every frame.
func (r *Rasterizer) Clear() {
	r.fb.Clear()
}

// RenderWhite runs the white pass: underside pieces (erase) plus
// junction patches and crosshatches. Must run before any black pass so
// wall tops draw over the patches. Runs once more with a translated
// viewport when the world wraps under the right edge.
func (r *Rasterizer) RenderWhite(vp Viewport, w *Whites) {
	for _, pass := range r.world.wrapPasses(vp) {
		r.whitePass(pass, w)
	}
}

func (r *Rasterizer) whitePass(vp Viewport, w *Whites) {
	fb := r.fb
	// Underside pieces, swept in x order. Entry is on the piece's right
	// edge overlapping the viewport; exit solely on x passing the right
	// edge.
	for i := range w.pieces {
		p := &w.pieces[i]
		if p.x <= vp.X-whiteMargin-1 {
			continue
		}
		if p.x >= vp.Right {
			break
		}
		if p.y+p.h <= vp.Y || p.y >= vp.Bottom {
			continue
		}
		sx, sy := p.x-vp.X, p.y-vp.Y
		for row := 0; row < p.h; row++ {
			fb.blit16(sx, sy+row, p.data[row], 0, fb.W, blitAnd)
		}
		if p.hashed {
			for row := 0; row < patchHeight; row++ {
				fb.blit16(sx, sy+row, hashFigure[row], 0, fb.W, blitXor)
			}
		}
	}

	// Standalone junction patches and their crosshatch. The patch
	// extends 8 pixels left of its anchor, so the sweep exits only once
	// even that overhang is past the right edge.
	for i := range w.patches {
		j := &w.patches[i]
		if j.X <= vp.X-whiteMargin-1 {
			continue
		}
		if j.X-8 >= vp.Right {
			break
		}
		if j.Y+patchHeight <= vp.Y || j.Y >= vp.Bottom {
			continue
		}
		for row := 0; row < patchHeight; row++ {
			fb.blit16(j.X-8-vp.X, j.Y-3+row-vp.Y, j.Pattern[row], 0, fb.W, blitAnd)
			fb.blit16(j.X-vp.X, j.Y+row-vp.Y, hashFigure[row], 0, fb.W, blitOr)
		}
	}
}

// RenderCraters erases blast marks over the drawn terrain. Runs after
// the black passes; a crater carves its hole out of whatever walls it
// overlaps, so it must not be buried under a later layer.
func (r *Rasterizer) RenderCraters(vp Viewport, craters []Crater) {
	for _, pass := range r.world.wrapPasses(vp) {
		for _, c := range craters {
			for row := 0; row < patchHeight; row++ {
				r.fb.blit16(c.X-8-pass.X, c.Y-3+row-pass.Y, craterFigure[row], 0, r.fb.W, blitAnd)
			}
		}
	}
}

// RenderBlack runs the black pass for one render kind: each wall top is
// drawn scanline by scanline along its direction's fixed-point slope,
// restricted to the wall's [H1, H2) span and clipped to the viewport.
// Callers invoke it once per kind, back to front (ghost, bounce, normal,
// explode) per the frame sequence.
func (r *Rasterizer) RenderBlack(vp Viewport, ow *OrganizedWalls, kind Kind) {
	for _, pass := range r.world.wrapPasses(vp) {
		r.blackPass(pass, ow, kind)
	}
}

func (r *Rasterizer) blackPass(vp Viewport, ow *OrganizedWalls, kind Kind) {
	ow.EachOfKind(kind, func(_ int, w *Wall) bool {
		// Every direction points rightward or straight down, so StartX
		// is the wall's left edge and the x-sorted chain can stop for
		// good once a start passes the right edge. Walls left of the
		// viewport are skipped but never stop the sweep.
		if w.StartX >= vp.Right {
			return false
		}
		if w.MaxX() < vp.X {
			return true
		}
		r.drawWall(vp, w)
		return true
	})
}

func (r *Rasterizer) drawWall(vp Viewport, w *Wall) {
	fb := r.fb
	if w.Dir == DirE {
		// Horizontal runs have no scanline walk; one clipped run.
		fb.setRun(w.StartX+w.H1-vp.X, w.StartY-vp.Y, w.H2-w.H1, 0, fb.W)
		return
	}
	ty, startOnTop := w.TopY()
	tx := w.EndX
	if startOnTop {
		tx = w.StartX
	}
	slope := w.Dir.SlopeFix()
	run := w.Dir.RunWidth()
	for i := w.H1; i < w.H2; i++ {
		sy := ty + i - vp.Y
		if sy < 0 || sy >= fb.H {
			continue
		}
		x := tx + (i*slope+fixHalf)>>fixShift
		if slope < 0 {
			x -= run - 1
		}
		fb.setRun(x-vp.X, sy, run, 0, fb.W)
	}
}
