package terrain

// Viewport is the world-space rectangle currently visible. It is
// recomputed by the caller every frame; the engine never stores one.
type Viewport struct {
	X, Y          int // top-left world coordinate
	Right, Bottom int // exclusive
}

// NewViewport builds a viewport of the given size with its top-left at
// (x, y).
func NewViewport(x, y, w, h int) Viewport {
	return Viewport{X: x, Y: y, Right: x + w, Bottom: y + h}
}

// W returns the viewport width.
func (v Viewport) W() int { return v.Right - v.X }

// H returns the viewport height.
func (v Viewport) H() int { return v.Bottom - v.Y }

// Translate returns the viewport shifted by (dx, dy).
func (v Viewport) Translate(dx, dy int) Viewport {
	return Viewport{X: v.X + dx, Y: v.Y + dy, Right: v.Right + dx, Bottom: v.Bottom + dy}
}

// World describes the level geometry bounds and whether the x axis wraps
// toroidally.
type World struct {
	Width  int
	Height int
	Wrap   bool
}

// ClampViewport clamps a viewport to the world bounds in y, and in x when
// the world does not wrap. A transiently out-of-range viewport is an
// expected input, never an error.
func (wo World) ClampViewport(v Viewport) Viewport {
	w, h := v.W(), v.H()
	if v.Y < 0 {
		v.Y = 0
	}
	if v.Y+h > wo.Height {
		v.Y = wo.Height - h
		if v.Y < 0 {
			v.Y = 0
		}
	}
	if !wo.Wrap {
		if v.X < 0 {
			v.X = 0
		}
		if v.X+w > wo.Width {
			v.X = wo.Width - w
			if v.X < 0 {
				v.X = 0
			}
		}
	} else {
		for v.X < 0 {
			v.X += wo.Width
		}
		for v.X >= wo.Width {
			v.X -= wo.Width
		}
	}
	v.Right = v.X + w
	v.Bottom = v.Y + h
	return v
}

// wrapPasses returns the viewports a render pass must run with: the
// viewport itself, plus (when the right edge crosses the world seam with
// wrap enabled) the same viewport translated left by the world width so
// content past the seam reappears on screen.
func (wo World) wrapPasses(v Viewport) []Viewport {
	if wo.Wrap && v.Right > wo.Width {
		return []Viewport{v, v.Translate(-wo.Width, 0)}
	}
	return []Viewport{v}
}
