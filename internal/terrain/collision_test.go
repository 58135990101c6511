package terrain

import (
	"math"
	"testing"
)

func TestCheckFigure_EmptyTerrainNoCollision(t *testing.T) {
	fb := NewBitmap(64, 64)
	mask := ShipMask(5)
	if CheckFigure(fb, mask, 20, 20) {
		t.Fatal("collision reported against empty terrain")
	}
}

func TestCheckFigure_ViewportShiftBringsWallUnderMask(t *testing.T) {
	world := World{Width: 512, Height: 256}
	ow, whites := newTestScene(t, world,
		mustWall(t, 1, 200, 100, 25, DirE, KindNormal))
	fb := NewBitmap(64, 64)
	r := NewRasterizer(fb, world)
	mask := ShipMask(4)

	// Ship at world (210,100); viewport far away: no wall pixels under
	// the mask, no collision.
	vp := NewViewport(0, 0, 64, 64)
	r.Clear()
	r.RenderWhite(vp, whites)
	r.RenderBlack(vp, ow, KindNormal)
	if CheckFigure(fb, mask, 210-vp.X-4, 100-vp.Y-4) {
		t.Fatal("collision against a wall outside the viewport")
	}

	// Shift the viewport so the wall is rendered; same world position
	// must now collide.
	vp = NewViewport(180, 80, 64, 64)
	r.Clear()
	r.RenderWhite(vp, whites)
	r.RenderBlack(vp, ow, KindNormal)
	if !CheckFigure(fb, mask, 210-vp.X-4, 100-vp.Y-4) {
		t.Fatal("no collision after the viewport shift rendered the wall")
	}
}

func TestCheckFigure_MaskOffscreenEdges(t *testing.T) {
	fb := NewBitmap(64, 64)
	fb.SetBit(0, 0)
	fb.SetBit(63, 63)
	mask := ShipMask(3)
	// Straddling the edges must not panic and must still detect the
	// corner pixels.
	if !CheckFigure(fb, mask, -3, -3) {
		t.Fatal("missed collision at top-left corner")
	}
	if !CheckFigure(fb, mask, 60, 60) {
		t.Fatal("missed collision at bottom-right corner")
	}
	if CheckFigure(fb, mask, -100, -100) {
		t.Fatal("collision reported fully offscreen")
	}
}

func TestEraseFigure_PreventsSelfCollision(t *testing.T) {
	fb := NewBitmap(64, 64)
	mask := ShipMask(4)
	DrawFigure(fb, mask, 20, 20)
	if !CheckFigure(fb, mask, 20, 20) {
		t.Fatal("drawn figure should collide with itself")
	}
	EraseFigure(fb, mask, 20, 20)
	if CheckFigure(fb, mask, 20, 20) {
		t.Fatal("erased figure still collides")
	}
}

func TestCheckPoint_ShotTermination(t *testing.T) {
	fb := NewBitmap(64, 64)
	fb.SetBit(30, 12)
	if !CheckPoint(fb, 30, 12) {
		t.Fatal("shot should terminate on a wall pixel")
	}
	if CheckPoint(fb, 31, 12) {
		t.Fatal("shot terminated on an empty pixel")
	}
	if CheckPoint(fb, -5, 900) {
		t.Fatal("out-of-range point should read unset")
	}
}

func TestBounceWalls_ReflectsOffHorizontalWall(t *testing.T) {
	walls := []Wall{mustWall(t, 1, 100, 100, 50, DirE, KindBounce)}
	ow, err := Organize(walls)
	if err != nil {
		t.Fatal(err)
	}
	// Ship just above the wall, moving down into it.
	m := Motion{X: 120, Y: 98, VX: 1, VY: 3}
	out, bounced := BounceWalls(ow, m, 4)
	if !bounced {
		t.Fatal("expected a bounce")
	}
	if out.VY != -3 {
		t.Fatalf("VY = %v, want -3 (reflected)", out.VY)
	}
	if out.VX != 1 {
		t.Fatalf("VX = %v, want 1 (tangential component preserved)", out.VX)
	}
	if out.Y >= 98 {
		t.Fatalf("position not snapped outside the wall: Y = %v", out.Y)
	}
}

func TestBounceWalls_MissesOutsideSegment(t *testing.T) {
	walls := []Wall{mustWall(t, 1, 100, 100, 50, DirE, KindBounce)}
	ow, err := Organize(walls)
	if err != nil {
		t.Fatal(err)
	}
	// Same height but left of the segment.
	m := Motion{X: 50, Y: 99, VX: 0, VY: 2}
	if _, bounced := BounceWalls(ow, m, 4); bounced {
		t.Fatal("bounced against a point outside the segment span")
	}
}

func TestBounceWalls_DiagonalPreservesSpeed(t *testing.T) {
	walls := []Wall{mustWall(t, 1, 100, 100, 40, DirSE, KindBounce)}
	ow, err := Organize(walls)
	if err != nil {
		t.Fatal(err)
	}
	m := Motion{X: 120, Y: 118, VX: 0, VY: 2}
	out, bounced := BounceWalls(ow, m, 3)
	if !bounced {
		t.Fatal("expected a bounce off the diagonal")
	}
	speedIn := math.Hypot(m.VX, m.VY)
	speedOut := math.Hypot(out.VX, out.VY)
	if math.Abs(speedIn-speedOut) > 1e-9 {
		t.Fatalf("reflection changed speed: %v -> %v", speedIn, speedOut)
	}
}

func TestBounceWalls_IgnoresNonBounceKinds(t *testing.T) {
	walls := []Wall{mustWall(t, 1, 100, 100, 50, DirE, KindNormal)}
	ow, err := Organize(walls)
	if err != nil {
		t.Fatal(err)
	}
	m := Motion{X: 120, Y: 99, VX: 0, VY: 2}
	if _, bounced := BounceWalls(ow, m, 4); bounced {
		t.Fatal("normal walls must not bounce")
	}
}
