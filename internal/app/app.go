//go:build ebiten

package app

import (
	"log"
	"time"

	"sandfall/internal/material"
	"sandfall/internal/render"
	"sandfall/internal/sims/sandfall"
	"sandfall/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a sandfall world to the ebiten.Game interface.
type Game struct {
	world   *sandfall.World
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	scale        int
	hudWidth     int
	snapshotPath string

	material material.Material
	brush    sandfall.Brush

	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided world.
func New(world *sandfall.World, cfg *Config) *Game {
	size := world.Size()
	return &Game{
		world:        world,
		painter:      render.NewGridPainter(size.W, size.H),
		overlay:      ui.NewOverlay(world.Grid(), cfg.Scale),
		hud:          ui.NewHUD(world, cfg.HUDWidth),
		scale:        max(cfg.Scale, 1),
		hudWidth:     max(cfg.HUDWidth, 0),
		snapshotPath: cfg.SnapshotPath,
		material:     material.Sand,
		brush:        sandfall.BrushSpray,
		seed:         cfg.Seed,
	}
}

// Reset reinitializes the world with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.world.Reset(seed)
	g.overlay.SetOutline(nil)
	g.tickOnce = false
}

// Update handles per-frame input and advances the world.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handleKeys()
	g.overlay.Update()

	size := g.world.Size()
	g.hud.Update(size.W * g.scale)
	g.handleMouse()

	if !g.paused || g.tickOnce {
		g.world.Step()
		g.tickOnce = false
	}
	g.hud.SetStatus(statusLines(g.world, g.material, g.brush, g.paused)...)
	return nil
}

func (g *Game) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.tickOnce = true
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.Reset(g.seed)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.Reset(time.Now().UnixNano())
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.world.Clear()
		g.overlay.SetOutline(nil)
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		if g.brush == sandfall.BrushSpray {
			g.brush = sandfall.BrushSquare
		} else {
			g.brush = sandfall.BrushSpray
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight), inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.material = cycleMaterial(g.material, 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		g.material = cycleMaterial(g.material, -1)
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		if err := g.world.Save(g.snapshotPath); err != nil {
			log.Printf("save: %v", err)
		} else {
			log.Printf("saved frame %d to %s", g.world.Frame(), g.snapshotPath)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyF9):
		if err := g.world.Load(g.snapshotPath); err != nil {
			log.Printf("load: %v", err)
		} else {
			g.overlay.SetOutline(nil)
			log.Printf("loaded frame %d from %s", g.world.Frame(), g.snapshotPath)
		}
	}

	if _, dy := ebiten.Wheel(); dy > 0 {
		g.material = cycleMaterial(g.material, -1)
	} else if dy < 0 {
		g.material = cycleMaterial(g.material, 1)
	}
}

func (g *Game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	cell, ok := cellAt(mx, my, g.scale, g.world.Size().W)
	if !ok || g.hud.Contains(mx, my) {
		g.overlay.SetBrush(cell, -1)
		return
	}
	g.overlay.SetBrush(cell, g.world.Config().Params.BrushRadius)

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.world.Paint(cell, -1, g.material, g.brush)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.world.Explode(cell, g.world.ExplosionDescriptor())
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) || inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.overlay.SetOutline(g.world.TraceBoundary(cell))
	}
}

// Draw renders the current world state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.world, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.world.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.world.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
