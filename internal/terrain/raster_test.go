package terrain

import (
	"bytes"
	"testing"
)

// newTestScene organizes walls and builds whites for a wrap-less world.
func newTestScene(t *testing.T, world World, walls ...Wall) (*OrganizedWalls, *Whites) {
	t.Helper()
	ow, err := Organize(walls)
	if err != nil {
		t.Fatal(err)
	}
	whites := BuildWhites(ow, FindJunctions(ow.Walls()))
	return ow, whites
}

func TestRenderBlack_SingleEastWall(t *testing.T) {
	world := World{Width: 256, Height: 256}
	ow, whites := newTestScene(t, world,
		mustWall(t, 1, 10, 10, 25, DirE, KindNormal))
	fb := NewBitmap(64, 64)
	r := NewRasterizer(fb, world)
	vp := NewViewport(0, 0, 64, 64)

	r.Clear()
	r.RenderWhite(vp, whites)
	r.RenderBlack(vp, ow, KindNormal)

	// Exactly 25 contiguous bits in row 10 from column 10.
	for x := 0; x < 64; x++ {
		want := x >= 10 && x < 35
		if fb.Bit(x, 10) != want {
			t.Fatalf("row 10 col %d = %v, want %v", x, fb.Bit(x, 10), want)
		}
	}
}

func TestRenderBlack_KindFilter(t *testing.T) {
	world := World{Width: 256, Height: 256}
	ow, _ := newTestScene(t, world,
		mustWall(t, 1, 10, 10, 20, DirE, KindNormal),
		mustWall(t, 2, 10, 30, 20, DirE, KindBounce))
	fb := NewBitmap(64, 64)
	r := NewRasterizer(fb, world)
	vp := NewViewport(0, 0, 64, 64)

	r.RenderBlack(vp, ow, KindBounce)
	if fb.Bit(15, 10) {
		t.Fatal("bounce pass drew a normal wall")
	}
	if !fb.Bit(15, 30) {
		t.Fatal("bounce pass missed the bounce wall")
	}
}

func TestRenderBlack_WallLeftOfViewportDoesNotStopSweep(t *testing.T) {
	world := World{Width: 512, Height: 256}
	ow, _ := newTestScene(t, world,
		mustWall(t, 1, 5, 10, 10, DirE, KindNormal),   // fully left of viewport
		mustWall(t, 2, 100, 30, 20, DirE, KindNormal)) // inside viewport
	fb := NewBitmap(64, 64)
	r := NewRasterizer(fb, world)
	vp := NewViewport(90, 0, 64, 64)

	r.RenderBlack(vp, ow, KindNormal)
	if !fb.Bit(100-90, 30) {
		t.Fatal("sweep stopped at an off-left-edge wall instead of continuing")
	}
}

func TestRenderBlack_DiagonalScanlines(t *testing.T) {
	world := World{Width: 256, Height: 256}
	ow, _ := newTestScene(t, world,
		mustWall(t, 1, 10, 10, 12, DirSE, KindNormal))
	fb := NewBitmap(64, 64)
	r := NewRasterizer(fb, world)
	r.RenderBlack(NewViewport(0, 0, 64, 64), ow, KindNormal)

	for i := 0; i < 12; i++ {
		if !fb.Bit(10+i, 10+i) {
			t.Fatalf("SE wall missing pixel at (%d,%d)", 10+i, 10+i)
		}
	}
	if fb.CountBits() != 12 {
		t.Fatalf("SE wall set %d bits, want 12", fb.CountBits())
	}
}

func TestRender_DeterministicAcrossFrames(t *testing.T) {
	world := World{Width: 256, Height: 256}
	ow, whites := newTestScene(t, world,
		mustWall(t, 1, 40, 20, 30, DirS, KindNormal),
		mustWall(t, 2, 40, 50, 30, DirNE, KindNormal),
		mustWall(t, 3, 90, 40, 16, DirSSE, KindBounce))
	fb := NewBitmap(128, 128)
	r := NewRasterizer(fb, world)
	vp := NewViewport(10, 5, 128, 128)

	render := func() []byte {
		r.Clear()
		r.RenderWhite(vp, whites)
		for _, k := range []Kind{KindGhost, KindBounce, KindNormal, KindExplode} {
			r.RenderBlack(vp, ow, k)
		}
		out := make([]byte, len(fb.Pix))
		copy(out, fb.Pix)
		return out
	}

	first := render()
	second := render()
	if !bytes.Equal(first, second) {
		t.Fatal("identical inputs produced different framebuffers")
	}
}

func TestRender_WorldWrapRoundTrip(t *testing.T) {
	wrapWorld := World{Width: 128, Height: 64, Wrap: true}
	flatWorld := World{Width: 128, Height: 64}

	walls := []Wall{mustWall(t, 1, 2, 20, 10, DirE, KindNormal)}
	ow, whites := newTestScene(t, wrapWorld, walls...)

	// Render with the viewport straddling the seam.
	fbWrap := NewBitmap(64, 64)
	rw := NewRasterizer(fbWrap, wrapWorld)
	vpSeam := NewViewport(wrapWorld.Width-10, 0, 64, 64)
	rw.RenderWhite(vpSeam, whites)
	rw.RenderBlack(vpSeam, ow, KindNormal)

	// Render the same walls with the viewport translated by -width.
	fbFlat := NewBitmap(64, 64)
	rf := NewRasterizer(fbFlat, flatWorld)
	vpLeft := vpSeam.Translate(-wrapWorld.Width, 0)
	rf.RenderWhite(vpLeft, whites)
	rf.RenderBlack(vpLeft, ow, KindNormal)

	if !bytes.Equal(fbWrap.Pix, fbFlat.Pix) {
		t.Fatal("wrapped seam render differs from translated render")
	}
	if fbWrap.CountBits() == 0 {
		t.Fatal("seam render drew nothing; wall should reappear past the seam")
	}
}

func TestRender_NoWrapPassWhenWrapDisabled(t *testing.T) {
	world := World{Width: 128, Height: 64}
	ow, whites := newTestScene(t, world,
		mustWall(t, 1, 2, 20, 10, DirE, KindNormal))
	fb := NewBitmap(64, 64)
	r := NewRasterizer(fb, world)
	vp := NewViewport(world.Width-10, 0, 64, 64)
	r.RenderWhite(vp, whites)
	r.RenderBlack(vp, ow, KindNormal)
	if fb.CountBits() != 0 {
		t.Fatal("wrap pass ran with wrap disabled")
	}
}

func TestRenderBlack_TrimmedSpanSkipsJunctionRows(t *testing.T) {
	world := World{Width: 256, Height: 256}
	ow, whites := newTestScene(t, world,
		mustWall(t, 1, 50, 50, 30, DirS, KindNormal),
		mustWall(t, 2, 50, 80, 30, DirNE, KindNormal))
	fb := NewBitmap(128, 128)
	r := NewRasterizer(fb, world)
	vp := NewViewport(0, 0, 128, 128)
	r.RenderWhite(vp, whites)
	r.RenderBlack(vp, ow, KindNormal)

	s := ow.ByID(1)
	if s.H2 >= 30 {
		t.Fatalf("expected junction trim on S wall, H2=%d", s.H2)
	}
	// Rows inside the trimmed span are drawn, rows past H2 are not
	// drawn by the S wall (the junction patch owns them).
	if !fb.Bit(50, 50) {
		t.Fatal("S wall top pixel missing")
	}
	if fb.Bit(50, 50+s.H2) {
		t.Fatal("S wall drew into its trimmed junction span")
	}
}

func TestRenderCraters_CarvesDrawnWall(t *testing.T) {
	world := World{Width: 256, Height: 256}
	ow, whites := newTestScene(t, world,
		mustWall(t, 1, 30, 40, 30, DirE, KindNormal))
	fb := NewBitmap(64, 64)
	r := NewRasterizer(fb, world)
	vp := NewViewport(0, 0, 64, 64)
	r.Clear()
	r.RenderWhite(vp, whites)
	r.RenderBlack(vp, ow, KindNormal)
	if !fb.Bit(40, 40) {
		t.Fatal("wall pixel missing before crater")
	}
	before := make([]byte, len(fb.Pix))
	copy(before, fb.Pix)

	r.RenderCraters(vp, []Crater{{X: 40, Y: 40}})
	if bytes.Equal(before, fb.Pix) {
		t.Fatal("crater changed no pixels")
	}
	if fb.Bit(40, 40) {
		t.Fatal("crater center still black")
	}
	if !fb.Bit(50, 40) {
		t.Fatal("crater erased the wall outside its figure")
	}
}

func TestRenderWhite_PatchOverhangsRightEdge(t *testing.T) {
	world := World{Width: 256, Height: 256}
	_, whites := newTestScene(t, world,
		mustWall(t, 1, 50, 50, 20, DirS, KindNormal),
		mustWall(t, 2, 50, 50, 20, DirE, KindNormal),
		mustWall(t, 3, 52, 52, 20, DirSE, KindNormal))
	if len(whites.patches) == 0 {
		t.Fatal("expected an unconsumed junction patch")
	}
	// Viewport right edge at column 46: the patch anchor (50) is past
	// the edge but its overhang reaches back to column 42.
	fb := NewBitmap(46, 64)
	r := NewRasterizer(fb, world)
	for y := 45; y < 55; y++ {
		for x := 38; x < 46; x++ {
			fb.SetBit(x, y)
		}
	}
	r.RenderWhite(NewViewport(0, 0, 46, 64), whites)
	if fb.Bit(44, 47) {
		t.Fatal("patch overhang inside the viewport was not drawn")
	}
	if !fb.Bit(40, 47) {
		t.Fatal("patch erased pixels left of its window")
	}
}

func TestViewport_ClampNeverPanics(t *testing.T) {
	world := World{Width: 128, Height: 128}
	vp := world.ClampViewport(NewViewport(-500, -500, 64, 64))
	if vp.X != 0 || vp.Y != 0 {
		t.Fatalf("clamp of far-negative viewport = %+v, want origin", vp)
	}
	vp = world.ClampViewport(NewViewport(5000, 5000, 64, 64))
	if vp.Right > world.Width || vp.Bottom > world.Height {
		t.Fatalf("clamp of far-positive viewport = %+v, exceeds world", vp)
	}

	wrap := World{Width: 128, Height: 128, Wrap: true}
	vp = wrap.ClampViewport(NewViewport(-300, 10, 64, 64))
	if vp.X < 0 || vp.X >= wrap.Width {
		t.Fatalf("wrap clamp left viewport x=%d outside [0,%d)", vp.X, wrap.Width)
	}
}

func TestRenderWhite_JunctionHashDrawn(t *testing.T) {
	world := World{Width: 256, Height: 256}
	// Three walls meet near (50,50); the crowding keeps the junction
	// from merging into a single piece, so it draws its standalone
	// crosshatch.
	_, whites := newTestScene(t, world,
		mustWall(t, 1, 50, 50, 20, DirS, KindNormal),
		mustWall(t, 2, 50, 50, 20, DirE, KindNormal),
		mustWall(t, 3, 52, 52, 20, DirSE, KindNormal))
	if len(whites.patches) == 0 {
		t.Fatal("expected an unconsumed junction patch")
	}
	fb := NewBitmap(128, 128)
	r := NewRasterizer(fb, world)
	r.RenderWhite(NewViewport(0, 0, 128, 128), whites)
	if fb.CountBits() == 0 {
		t.Fatal("white pass drew no crosshatch for the junction")
	}
}
