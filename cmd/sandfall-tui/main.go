package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"sandfall/internal/app"
	"sandfall/internal/core"
	"sandfall/internal/material"
	"sandfall/internal/sims/sandfall"
)

type terminal struct {
	screen tcell.Screen
	world  *sandfall.World
	seed   int64

	material material.Material
	brush    sandfall.Brush
	cursor   image.Point

	paused   bool
	tickOnce bool
}

func main() {
	cfg := app.NewConfig()
	flag.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "YAML world config file")
	flag.Var(cfg.Set, "set", "world option as key=value (repeatable)")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for simulation reset")
	flag.IntVar(&cfg.TPS, "tps", 30, "ticks per second")
	flag.Parse()
	// Terminals are small; default to a world that fits a typical window.
	if _, ok := cfg.Set["size"]; !ok && cfg.ConfigPath == "" {
		cfg.Set["size"] = "96"
	}

	world, err := app.NewWorld(cfg)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	defer screen.Fini()

	t := &terminal{screen: screen, world: world, seed: cfg.Seed, material: material.Sand}
	t.run(cfg.TPS)
}

func (t *terminal) run(tps int) {
	timer := core.NewFixedStep(tps)
	ticker := time.NewTicker(timer.Step())
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !t.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			for n := timer.Pending(); n > 0; n-- {
				if !t.paused || t.tickOnce {
					t.world.Step()
					t.tickOnce = false
				}
			}
			t.draw()
		}
	}
}

func (t *terminal) draw() {
	t.screen.Clear()
	rows := drawWorld(t.screen, t.world)
	drawStatus(t.screen, rows, statusLine(t))
	t.screen.Show()
}

func (t *terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			t.paused = !t.paused
		case 'n':
			t.tickOnce = true
		case 'c':
			t.world.Clear()
		case 'r':
			t.world.Reset(t.seed)
		case 'b':
			if t.brush == sandfall.BrushSpray {
				t.brush = sandfall.BrushSquare
			} else {
				t.brush = sandfall.BrushSpray
			}
		case ']':
			t.material = nextMaterial(t.material, 1)
		case '[':
			t.material = nextMaterial(t.material, -1)
		case 'e':
			t.world.Explode(t.cursor, t.world.ExplosionDescriptor())
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		t.cursor = screenToCell(x, y)
		switch {
		case ev.Buttons()&tcell.Button1 != 0:
			t.world.Paint(t.cursor, -1, t.material, t.brush)
		case ev.Buttons()&tcell.Button2 != 0:
			t.world.Explode(t.cursor, t.world.ExplosionDescriptor())
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

// nextMaterial cycles through the non-empty materials.
func nextMaterial(m material.Material, dir int) material.Material {
	all := material.All()[1:]
	for i, candidate := range all {
		if candidate == m {
			n := len(all)
			return all[((i+dir)%n+n)%n]
		}
	}
	return all[0]
}
