package main

import (
	"log"

	"github.com/Garsondee/Gravity-Well/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	ebiten.SetWindowTitle("Gravity Well")
	ebiten.SetWindowSize(1024, 684)
	app, err := game.NewApp()
	if err != nil {
		log.Fatal(err)
	}
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
