package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Gravity-Well/internal/terrain"
)

const (
	viewW = 512
	viewH = 318
	// hudH is the pixel strip under the playfield reserved for text.
	hudH = 24

	gravity = 0.04
	thrust  = 0.12
)

// App is the windowed ebiten shell around a Session. All terrain state
// lives in the session; App only translates input and blits the 1bpp
// framebuffer to the screen.
type App struct {
	session  *Session
	worldBuf *ebiten.Image
	pix      []byte // RGBA staging for the framebuffer blit
	prevKeys map[ebiten.Key]bool

	frames  int
	bounces int
	deaths  int
}

// NewApp builds the shell around the demo level.
func NewApp() (*App, error) {
	s, err := NewSession(DemoLevel(), viewW, viewH)
	if err != nil {
		return nil, err
	}
	return &App{
		session:  s,
		worldBuf: ebiten.NewImage(viewW, viewH),
		pix:      make([]byte, viewW*viewH*4),
		prevKeys: make(map[ebiten.Key]bool),
	}, nil
}

func (a *App) Update() error {
	ax, ay := 0.0, gravity
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		ax -= thrust
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		ax += thrust
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		ay -= thrust
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		ay += thrust
	}
	if a.keyJustPressed(ebiten.KeyR) {
		s, err := NewSession(DemoLevel(), viewW, viewH)
		if err != nil {
			return err
		}
		a.session = s
	}
	if a.keyJustPressed(ebiten.KeyE) {
		a.destroyNextSpur()
	}

	res := a.session.Step(ax, ay)
	a.frames++
	if res.Bounced {
		a.bounces++
	}
	if res.ShipHit {
		a.deaths++
	}
	return nil
}

// keyJustPressed is an edge-triggered key test.
func (a *App) keyJustPressed(k ebiten.Key) bool {
	down := ebiten.IsKeyPressed(k)
	was := a.prevKeys[k]
	a.prevKeys[k] = down
	return down && !was
}

// destroyNextSpur blows up the first still-standing destructible wall.
func (a *App) destroyNextSpur() {
	for _, w := range a.session.Walls().Walls() {
		if w.Kind == terrain.KindExplode && a.session.Walls().AliveID(w.ID) {
			a.session.DestroyWall(w.ID)
			return
		}
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	a.blitFramebuffer()
	screen.DrawImage(a.worldBuf, nil)

	vp := a.session.Viewport()
	hud := fmt.Sprintf("pos %4d,%4d  bounces %d  deaths %d",
		int(a.session.Ship.X), int(a.session.Ship.Y), a.bounces, a.deaths)
	text.Draw(screen, hud, basicfont.Face7x13, 6, viewH+16, color.White)
	if !a.session.Ship.Alive {
		text.Draw(screen, "SHIP DESTROYED - press R", basicfont.Face7x13,
			viewW/2-84, viewH/2, color.White)
	}
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("vp %d,%d", vp.X, vp.Y), viewW-90, viewH+2)
}

// blitFramebuffer expands the 1bpp framebuffer into the RGBA staging
// buffer: set bits draw black, clear bits the paper tone.
func (a *App) blitFramebuffer() {
	fb := a.session.FB()
	const paper = 0xE8
	for y := 0; y < fb.H; y++ {
		row := y * fb.Stride
		for x := 0; x < fb.W; x++ {
			v := byte(paper)
			if fb.Pix[row+x>>3]&(0x80>>(x&7)) != 0 {
				v = 0
			}
			o := (y*fb.W + x) * 4
			a.pix[o] = v
			a.pix[o+1] = v
			a.pix[o+2] = v
			a.pix[o+3] = 0xFF
		}
	}
	a.worldBuf.WritePixels(a.pix)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewW, viewH + hudH
}
