package terrain

// CheckFigure tests a figure mask against the framebuffer at screen
// position (x, y): any set mask pixel over a set framebuffer pixel is a
// collision. Callers must run it only after every lethal layer for the
// frame has been rasterized; pixels drawn later are invisible to it.
func CheckFigure(fb, mask *Bitmap, x, y int) bool {
	for row := 0; row < mask.H; row++ {
		fy := y + row
		if fy < 0 || fy >= fb.H {
			continue
		}
		for bi := 0; bi < mask.Stride; bi++ {
			m := mask.Pix[row*mask.Stride+bi]
			if m == 0 {
				continue
			}
			if fbByte(fb, x+bi*8, fy)&m != 0 {
				return true
			}
		}
	}
	return false
}

// CheckPoint reports whether the single framebuffer pixel at (x, y) is
// set. Shot-vs-terrain termination uses this.
func CheckPoint(fb *Bitmap, x, y int) bool {
	return fb.Bit(x, y)
}

// DrawFigure ORs a figure mask into the framebuffer at (x, y).
func DrawFigure(fb, mask *Bitmap, x, y int) {
	figureOp(fb, mask, x, y, false)
}

// EraseFigure clears the framebuffer pixels under a figure mask at
// (x, y). The frame sequence erases the ship's own pixels before lethal
// layers draw, so the ship never collides with itself.
func EraseFigure(fb, mask *Bitmap, x, y int) {
	figureOp(fb, mask, x, y, true)
}

func figureOp(fb, mask *Bitmap, x, y int, erase bool) {
	for row := 0; row < mask.H; row++ {
		fy := y + row
		if fy < 0 || fy >= fb.H {
			continue
		}
		for bi := 0; bi < mask.Stride; bi++ {
			m := mask.Pix[row*mask.Stride+bi]
			if m == 0 {
				continue
			}
			writeByte(fb, x+bi*8, fy, m, erase)
		}
	}
}

// fbByte returns the 8 framebuffer pixels starting at column x of row y,
// MSB first. Columns outside the framebuffer read as unset.
func fbByte(fb *Bitmap, x, y int) byte {
	if x <= -8 || x >= fb.W {
		return 0
	}
	bx := x >> 3
	off := uint(x - bx*8)
	var v uint16
	if bx >= 0 && bx < fb.Stride {
		v = uint16(fb.Pix[y*fb.Stride+bx]) << 8
	}
	if bx+1 >= 0 && bx+1 < fb.Stride {
		v |= uint16(fb.Pix[y*fb.Stride+bx+1])
	}
	return byte(v >> (8 - off) & 0xFF)
}

// writeByte ORs (or clears, when erase is set) 8 mask pixels starting at
// column x of row y.
func writeByte(fb *Bitmap, x, y int, m byte, erase bool) {
	if x <= -8 || x >= fb.W {
		return
	}
	bx := x >> 3
	off := uint(x - bx*8)
	v := uint16(m) << (8 - off)
	row := y * fb.Stride
	for j := 0; j < 2; j++ {
		bi := bx + j
		if bi < 0 || bi >= fb.Stride {
			continue
		}
		b := byte(v >> (8 * (1 - j)) & 0xFF)
		if b == 0 {
			continue
		}
		if erase {
			fb.Pix[row+bi] &^= b
		} else {
			fb.Pix[row+bi] |= b
		}
	}
}

// Motion is a moving point's position and velocity in world coordinates.
type Motion struct {
	X, Y   float64
	VX, VY float64
}

// BounceWalls tests the ship against every live bounce wall and, on
// penetration, reflects the velocity about the wall normal and snaps the
// position back outside. The second return is true when a bounce
// happened. Geometry is analytic; it does not read the framebuffer, so
// the caller may order it anywhere in the bounce phase of the frame.
func BounceWalls(ow *OrganizedWalls, m Motion, radius float64) (Motion, bool) {
	bounced := false
	ow.EachOfKind(KindBounce, func(_ int, w *Wall) bool {
		if hit, out := bounceOne(w, m, radius); hit {
			m = out
			bounced = true
		}
		return true
	})
	return m, bounced
}

func bounceOne(w *Wall, m Motion, radius float64) (bool, Motion) {
	sx, sy := float64(w.StartX), float64(w.StartY)
	ex, ey := float64(w.EndX), float64(w.EndY)
	dx, dy := ex-sx, ey-sy
	segLen2 := dx*dx + dy*dy
	if segLen2 == 0 {
		return false, m
	}
	// Along-wall projection must fall inside the segment.
	t := ((m.X-sx)*dx + (m.Y-sy)*dy) / segLen2
	if t < 0 || t > 1 {
		return false, m
	}
	nx, ny := w.Dir.Normal()
	d := (m.X-sx)*nx + (m.Y-sy)*ny
	side := 1.0
	if d < 0 {
		side = -1
		d = -d
	}
	if d >= radius {
		return false, m
	}
	nx, ny = nx*side, ny*side
	dot := m.VX*nx + m.VY*ny
	if dot < 0 {
		m.VX -= 2 * dot * nx
		m.VY -= 2 * dot * ny
	}
	// Snap one pixel clear of the wall so the snapped silhouette no
	// longer touches the wall's drawn pixels.
	m.X += nx * (radius - d + 1)
	m.Y += ny * (radius - d + 1)
	return true, m
}

// ShipMask builds a filled circular mask of the given radius, the
// default collision silhouette when the sprite subsystem supplies none.
func ShipMask(radius int) *Bitmap {
	d := radius*2 + 1
	b := NewBitmap(d, d)
	r2 := float64(radius) * float64(radius)
	for y := 0; y < d; y++ {
		for x := 0; x < d; x++ {
			fx, fy := float64(x-radius), float64(y-radius)
			if fx*fx+fy*fy <= r2+0.5 {
				b.SetBit(x, y)
			}
		}
	}
	return b
}
