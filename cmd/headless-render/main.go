package main

import (
	"flag"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Gravity-Well/internal/game"
	"github.com/Garsondee/Gravity-Well/internal/terrain"
)

const gravity = 0.04

func main() {
	var frames int
	var viewW int
	var viewH int
	var destroyAt int
	var shotEvery int
	var verbose bool
	var clip bool

	flag.IntVar(&frames, "frames", 600, "frames to render")
	flag.IntVar(&viewW, "view-w", 512, "viewport width in pixels")
	flag.IntVar(&viewH, "view-h", 318, "viewport height in pixels")
	flag.IntVar(&destroyAt, "destroy-at", 240, "frame at which to blow up a destructible wall (-1 to disable)")
	flag.IntVar(&shotEvery, "shot-every", 120, "fire a test shot every N frames (0 to disable)")
	flag.BoolVar(&verbose, "verbose", false, "log per-frame checksums")
	flag.BoolVar(&clip, "clip", false, "copy the event log to the system clipboard")
	flag.Parse()

	if frames <= 0 {
		fmt.Println("error: -frames must be > 0")
		return
	}
	if viewW <= 0 || viewH <= 0 {
		fmt.Println("error: viewport dimensions must be > 0")
		return
	}

	lv := game.DemoLevel()
	s, err := game.NewSession(lv, viewW, viewH)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Printf("=== Headless Terrain Render ===\n")
	fmt.Printf("level=%s world=%dx%d wrap=%v walls=%d view=%dx%d frames=%d\n\n",
		lv.Name, lv.World.Width, lv.World.Height, lv.World.Wrap,
		s.Walls().Len(), viewW, viewH, frames)

	log := game.NewRenderLog(verbose)
	bounces := 0
	deaths := 0
	shots := 0
	destroyed := 0

	for i := 0; i < frames; i++ {
		if destroyAt >= 0 && i == destroyAt {
			if id, ok := firstAliveExplodable(s); ok {
				s.DestroyWall(id)
				destroyed++
				log.Add(i, "wall", "destroyed", fmt.Sprintf("id=%d", id), float64(id))
			}
		}
		if shotEvery > 0 && i > 0 && i%shotEvery == 0 {
			s.AddShot(s.Ship.X, s.Ship.Y-10, 0, -6)
			shots++
			log.Add(i, "shot", "fired", fmt.Sprintf("from (%.0f,%.0f)", s.Ship.X, s.Ship.Y-10), 0)
		}

		res := s.Step(0, gravity)
		if res.Bounced {
			bounces++
			log.Add(res.Tick, "bounce", "deflected",
				fmt.Sprintf("ship at (%.1f,%.1f) v=(%.2f,%.2f)",
					s.Ship.X, s.Ship.Y, s.Ship.VX, s.Ship.VY), 0)
		}
		if res.ShipHit {
			deaths++
			log.Add(res.Tick, "collision", "ship_hit",
				fmt.Sprintf("at (%.0f,%.0f)", s.Ship.X, s.Ship.Y), 0)
		}
		log.AddVerbose(res.Tick, "frame", "checksum",
			fmt.Sprintf("%#016x", res.Checksum), float64(res.Checksum))
	}

	final := s.Step(0, 0)
	fmt.Printf("event_totals: bounces=%d ship_hits=%d shots_fired=%d walls_destroyed=%d\n",
		bounces, deaths, shots, destroyed)
	fmt.Printf("framebuffer: black_pixels=%d checksum=%#016x\n",
		s.FB().CountBits(), final.Checksum)
	fmt.Printf("walls_alive: %d/%d\n", aliveCount(s), s.Walls().Len())

	dump := log.Dump()
	if len(log.Entries()) > 0 {
		fmt.Println("\n=== Event Log ===")
		fmt.Print(dump)
	}

	if clip {
		if err := clipboard.WriteAll(dump); err != nil {
			fmt.Printf("clipboard: %v\n", err)
		} else {
			fmt.Printf("copied %d log lines to clipboard\n", len(log.Entries()))
		}
	}
}

func firstAliveExplodable(s *game.Session) (int, bool) {
	for _, w := range s.Walls().Walls() {
		if w.Kind == terrain.KindExplode && s.Walls().AliveID(w.ID) {
			return w.ID, true
		}
	}
	return 0, false
}

func aliveCount(s *game.Session) int {
	n := 0
	for _, w := range s.Walls().Walls() {
		if s.Walls().AliveID(w.ID) {
			n++
		}
	}
	return n
}
