package game

import (
	"fmt"

	"github.com/Garsondee/Gravity-Well/internal/terrain"
)

// shipRadius is the ship's collision silhouette radius in pixels.
const shipRadius = 6

// shotLife is how many frames an enemy shot survives without hitting
// terrain.
const shotLife = 90

// Ship is the player vessel.
type Ship struct {
	terrain.Motion
	Alive bool
}

// Shot is one enemy projectile. Shots are lethal to the ship and
// terminate on terrain.
type Shot struct {
	X, Y   float64
	VX, VY float64
	Life   int
}

// FrameResult reports what one simulated frame produced.
type FrameResult struct {
	Tick     int
	ShipHit  bool
	Bounced  bool
	Checksum uint64
}

// Session owns everything with per-level lifetime: the organized walls,
// junction whites, framebuffer and rasterizer, plus the mutable ship and
// shot state. All of it is rebuilt from scratch on level load; nothing
// is reused across levels.
type Session struct {
	level  Level
	ow     *terrain.OrganizedWalls
	whites *terrain.Whites
	raster *terrain.Rasterizer
	mask   *terrain.Bitmap

	craters []terrain.Crater

	Ship  Ship
	Shots []Shot

	viewW, viewH int
	tick         int
}

// NewSession builds the per-level structures for a framebuffer of the
// given viewport size. Index and junction construction happen here,
// once; frames only read them.
func NewSession(lv Level, viewW, viewH int) (*Session, error) {
	if viewW <= 0 || viewH <= 0 {
		return nil, fmt.Errorf("session: invalid viewport %dx%d", viewW, viewH)
	}
	ow, err := terrain.Organize(lv.Walls)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	junctions := terrain.FindJunctions(ow.Walls())
	whites := terrain.BuildWhites(ow, junctions)
	fb := terrain.NewBitmap(viewW, viewH)
	s := &Session{
		level:  lv,
		ow:     ow,
		whites: whites,
		raster: terrain.NewRasterizer(fb, lv.World),
		mask:   terrain.ShipMask(shipRadius),
		viewW:  viewW,
		viewH:  viewH,
	}
	s.Ship = Ship{
		Motion: terrain.Motion{
			X: float64(lv.World.Width) / 2,
			Y: float64(lv.World.Height) / 3,
		},
		Alive: true,
	}
	return s, nil
}

// FB returns the framebuffer of the most recent frame.
func (s *Session) FB() *terrain.Bitmap {
	return s.raster.FB()
}

// Walls returns the level's organized wall set.
func (s *Session) Walls() *terrain.OrganizedWalls {
	return s.ow
}

// Tick returns the number of completed frames.
func (s *Session) Tick() int {
	return s.tick
}

// Viewport centers the view on the ship, clamped to the world.
func (s *Session) Viewport() terrain.Viewport {
	vp := terrain.NewViewport(
		int(s.Ship.X)-s.viewW/2,
		int(s.Ship.Y)-s.viewH/2,
		s.viewW, s.viewH)
	return s.level.World.ClampViewport(vp)
}

// AddShot spawns an enemy shot.
func (s *Session) AddShot(x, y, vx, vy float64) {
	s.Shots = append(s.Shots, Shot{X: x, Y: y, VX: vx, VY: vy, Life: shotLife})
}

// DestroyWall removes a destructible wall and leaves a crater at its
// midpoint. Returns false for unknown or indestructible walls.
func (s *Session) DestroyWall(id int) bool {
	w := s.ow.ByID(id)
	if w == nil || !s.ow.Destroy(id) {
		return false
	}
	s.craters = append(s.craters, terrain.Crater{
		X: (w.StartX + w.EndX) / 2,
		Y: (w.StartY + w.EndY) / 2,
	})
	return true
}

// Step advances one simulated frame: integrate motion with the given
// thrust, then render and collide in the fixed pass order. The ordering
// is a hard invariant; reordering changes collision outcomes.
func (s *Session) Step(ax, ay float64) FrameResult {
	s.tick++
	if s.Ship.Alive {
		s.Ship.VX += ax
		s.Ship.VY += ay
		s.Ship.X += s.Ship.VX
		s.Ship.Y += s.Ship.VY
		s.wrapShip()
	}
	for i := range s.Shots {
		s.Shots[i].X += s.Shots[i].VX
		s.Shots[i].Y += s.Shots[i].VY
		s.Shots[i].Life--
	}
	return s.renderFrame(s.Viewport())
}

// wrapShip keeps the ship inside the toroidal world.
func (s *Session) wrapShip() {
	w := float64(s.level.World.Width)
	if s.level.World.Wrap {
		for s.Ship.X < 0 {
			s.Ship.X += w
		}
		for s.Ship.X >= w {
			s.Ship.X -= w
		}
	}
}

// renderFrame runs the per-frame pass sequence:
//
//	clear -> white -> black ghost -> erase ship -> black bounce (with
//	bounce check) -> black normal -> black explode -> craters -> enemy
//	shots -> ship collision check -> draw ship
func (s *Session) renderFrame(vp terrain.Viewport) FrameResult {
	r := s.raster
	fb := s.FB()
	res := FrameResult{Tick: s.tick}

	r.Clear()
	r.RenderWhite(vp, s.whites)
	r.RenderBlack(vp, s.ow, terrain.KindGhost)

	shipSX := int(s.Ship.X) - vp.X - shipRadius
	shipSY := int(s.Ship.Y) - vp.Y - shipRadius
	if s.Ship.Alive {
		// Reserve the ship's own pixels so later lethal layers are the
		// only thing the collision check can see.
		terrain.EraseFigure(fb, s.mask, shipSX, shipSY)
	}

	if s.Ship.Alive {
		m, bounced := terrain.BounceWalls(s.ow, s.Ship.Motion, shipRadius)
		if bounced {
			s.Ship.Motion = m
			res.Bounced = true
			// The snap moved the ship clear of the wall; the collision
			// check and the drawn ship both use the snapped position.
			shipSX = int(s.Ship.X) - vp.X - shipRadius
			shipSY = int(s.Ship.Y) - vp.Y - shipRadius
		}
	}
	r.RenderBlack(vp, s.ow, terrain.KindBounce)
	r.RenderBlack(vp, s.ow, terrain.KindNormal)
	r.RenderBlack(vp, s.ow, terrain.KindExplode)
	r.RenderCraters(vp, s.craters)

	s.drawShots(vp)

	if s.Ship.Alive && terrain.CheckFigure(fb, s.mask, shipSX, shipSY) {
		s.Ship.Alive = false
		res.ShipHit = true
	}
	if s.Ship.Alive {
		terrain.DrawFigure(fb, s.mask, shipSX, shipSY)
	}

	res.Checksum = fb.Checksum()
	return res
}

// drawShots terminates shots on terrain and draws the survivors. Shots
// draw after all walls so the ship check sees them as lethal pixels.
func (s *Session) drawShots(vp terrain.Viewport) {
	fb := s.FB()
	live := s.Shots[:0]
	for _, sh := range s.Shots {
		if sh.Life <= 0 {
			continue
		}
		sx, sy := int(sh.X)-vp.X, int(sh.Y)-vp.Y
		if terrain.CheckPoint(fb, sx, sy) {
			continue // hit terrain, shot ends
		}
		fb.SetBit(sx, sy)
		fb.SetBit(sx+1, sy)
		fb.SetBit(sx, sy+1)
		fb.SetBit(sx+1, sy+1)
		live = append(live, sh)
	}
	s.Shots = live
}
