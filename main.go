package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	mapName := flag.String("map", "arena", "map name in maps/ (basename, .yaml optional)")
	seed := flag.Int64("seed", 0, "match seed override (0 keeps the map seed)")
	watch := flag.Bool("watch", false, "restart the match when maps/ specs change")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("zonefall")

	game, err := NewGame(*mapName, *seed, *watch)
	if err != nil {
		log.Fatal(err)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
