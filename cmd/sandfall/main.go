//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"sandfall/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	load := flag.Bool("load", false, "start from the -snapshot file")
	flag.Parse()

	world, err := app.NewWorld(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if *load {
		if err := world.Load(cfg.SnapshotPath); err != nil {
			log.Fatal(err)
		}
	}

	game := app.New(world, cfg)
	size := world.Size()

	ebiten.SetWindowTitle("sandfall")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
