package game

import (
	"fmt"

	"github.com/Garsondee/Gravity-Well/internal/terrain"
)

// Level is the pre-parsed geometry of one playfield: the world bounds
// plus the wall records handed over by the galaxy decoder.
type Level struct {
	Name  string
	World terrain.World
	Walls []terrain.Wall
}

// WallSpec is one wall record as the galaxy decoder yields it.
type WallSpec struct {
	ID     int
	X, Y   int
	Length int
	Dir    terrain.Dir
	Kind   terrain.Kind
}

// BuildLevel validates wall specs into a Level. Malformed geometry is a
// load-time error; nothing about a level may fail after this point.
func BuildLevel(name string, world terrain.World, specs []WallSpec) (Level, error) {
	if world.Width <= 0 || world.Height <= 0 {
		return Level{}, fmt.Errorf("level %q: invalid world %dx%d", name, world.Width, world.Height)
	}
	walls := make([]terrain.Wall, 0, len(specs))
	for _, s := range specs {
		w, err := terrain.NewWall(s.ID, s.X, s.Y, s.Length, s.Dir, s.Kind)
		if err != nil {
			return Level{}, fmt.Errorf("level %q: %w", name, err)
		}
		walls = append(walls, w)
	}
	return Level{Name: name, World: world, Walls: walls}, nil
}

// DemoLevel is the built-in playfield used by cmd/game and the headless
// renderer: a wrapped world with a floor, a bounce pen, a ghost ridge
// and a destructible spur, with several junctions between them.
func DemoLevel() Level {
	world := terrain.World{Width: 1024, Height: 512, Wrap: true}
	specs := []WallSpec{
		// Floor running most of the world, in two spans.
		{ID: 1, X: 40, Y: 420, Length: 400, Dir: terrain.DirE, Kind: terrain.KindNormal},
		{ID: 2, X: 560, Y: 420, Length: 400, Dir: terrain.DirE, Kind: terrain.KindNormal},
		// Left cliff up from the floor's west end.
		{ID: 3, X: 40, Y: 300, Length: 120, Dir: terrain.DirS, Kind: terrain.KindNormal},
		// Ramp climbing east out of the floor gap.
		{ID: 4, X: 440, Y: 420, Length: 60, Dir: terrain.DirNE, Kind: terrain.KindNormal},
		{ID: 5, X: 500, Y: 360, Length: 60, Dir: terrain.DirENE, Kind: terrain.KindNormal},
		// Bounce pen near the middle of the map.
		{ID: 6, X: 300, Y: 180, Length: 120, Dir: terrain.DirE, Kind: terrain.KindBounce},
		{ID: 7, X: 300, Y: 120, Length: 60, Dir: terrain.DirS, Kind: terrain.KindBounce},
		{ID: 8, X: 420, Y: 120, Length: 60, Dir: terrain.DirS, Kind: terrain.KindBounce},
		// Ghost ridge drifting behind everything.
		{ID: 9, X: 600, Y: 200, Length: 80, Dir: terrain.DirSE, Kind: terrain.KindGhost},
		{ID: 10, X: 680, Y: 280, Length: 80, Dir: terrain.DirSSE, Kind: terrain.KindGhost},
		// Destructible spur off the east floor.
		{ID: 11, X: 760, Y: 420, Length: 80, Dir: terrain.DirNE, Kind: terrain.KindExplode},
		{ID: 12, X: 840, Y: 340, Length: 40, Dir: terrain.DirNNE, Kind: terrain.KindExplode},
		// Wall crossing the wrap seam.
		{ID: 13, X: 990, Y: 100, Length: 60, Dir: terrain.DirE, Kind: terrain.KindNormal},
	}
	lv, err := BuildLevel("demo", world, specs)
	if err != nil {
		// The built-in level is compile-time data; a failure here is a
		// programming error.
		panic(err)
	}
	return lv
}
