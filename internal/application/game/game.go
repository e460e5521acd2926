// Package game provides the main game loop manager that handles Scene
// transitions and measures the wall-clock frame delta.
package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/veilgate/duskrealm/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	last    time.Time
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
	}
	g.current.OnEnter()
	return g
}

// Update measures the raw frame delta, updates the current scene and
// handles scene transitions. Implements ebiten.Game interface.
func (g *Game) Update() error {
	now := time.Now()
	raw := 1.0 / 60.0
	if !g.last.IsZero() {
		raw = now.Sub(g.last).Seconds()
	}
	g.last = now

	next, err := g.current.Update(raw)
	if err != nil {
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}
