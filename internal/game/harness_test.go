package game

import (
	"testing"

	"github.com/Garsondee/Gravity-Well/internal/terrain"
)

// TestWorld is a headless harness used exclusively by tests. It mirrors
// the windowed game's per-frame calls with deterministic inputs and no
// ebiten dependency.
type TestWorld struct {
	Session *Session
	Log     *RenderLog
}

// worldConfig is accumulated by options before the session is built.
type worldConfig struct {
	width, height int
	wrap          bool
	viewW, viewH  int
	shipX, shipY  float64
	shipSet       bool
	specs         []WallSpec
}

// WorldOption configures a TestWorld during construction.
type WorldOption func(*worldConfig)

// WithWorld sets the world dimensions and wrap flag.
func WithWorld(w, h int, wrap bool) WorldOption {
	return func(c *worldConfig) {
		c.width, c.height, c.wrap = w, h, wrap
	}
}

// WithView sets the framebuffer/viewport size.
func WithView(w, h int) WorldOption {
	return func(c *worldConfig) {
		c.viewW, c.viewH = w, h
	}
}

// WithWall adds one wall record.
func WithWall(id, x, y, length int, dir terrain.Dir, kind terrain.Kind) WorldOption {
	return func(c *worldConfig) {
		c.specs = append(c.specs, WallSpec{ID: id, X: x, Y: y, Length: length, Dir: dir, Kind: kind})
	}
}

// WithShipAt places the ship at a world position with zero velocity.
func WithShipAt(x, y float64) WorldOption {
	return func(c *worldConfig) {
		c.shipX, c.shipY, c.shipSet = x, y, true
	}
}

// NewTestWorld builds a harness world. Defaults: 512x512 world, no
// wrap, 128x128 view, ship at world center.
func NewTestWorld(t *testing.T, opts ...WorldOption) *TestWorld {
	t.Helper()
	c := worldConfig{width: 512, height: 512, viewW: 128, viewH: 128}
	for _, opt := range opts {
		opt(&c)
	}
	lv, err := BuildLevel("test", terrain.World{Width: c.width, Height: c.height, Wrap: c.wrap}, c.specs)
	if err != nil {
		t.Fatalf("harness level: %v", err)
	}
	s, err := NewSession(lv, c.viewW, c.viewH)
	if err != nil {
		t.Fatalf("harness session: %v", err)
	}
	if c.shipSet {
		s.Ship.X, s.Ship.Y = c.shipX, c.shipY
	}
	return &TestWorld{Session: s, Log: NewRenderLog(false)}
}

// StepFrames advances n coasting frames, logging collisions and bounces.
func (tw *TestWorld) StepFrames(n int) FrameResult {
	var res FrameResult
	for i := 0; i < n; i++ {
		res = tw.Session.Step(0, 0)
		if res.ShipHit {
			tw.Log.Add(res.Tick, "collision", "ship_hit", "", 0)
		}
		if res.Bounced {
			tw.Log.Add(res.Tick, "bounce", "ship_bounce", "", 0)
		}
	}
	return res
}
