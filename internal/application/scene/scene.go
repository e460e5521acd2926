// Package scene defines the Scene interface for game screens.
//
// The playing screen (and any future title or menu screens) implements
// the Scene interface to handle its own update logic and rendering.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene represents a game screen.
//
// The game loop delegates Update and Draw calls to the current scene.
// Scene transitions are handled by returning a new Scene from Update.
type Scene interface {
	// Update updates the scene state.
	// rawDelta is the wall-clock time since the previous frame in
	// seconds; scenes that simulate gameplay smooth and clamp it
	// themselves.
	// Returns the next scene if a transition is needed, nil to stay
	// on the current scene. Returns an error to terminate the game.
	Update(rawDelta float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	OnEnter()

	// OnExit is called when leaving this scene.
	// Use this for cleanup, saving state, or resource release.
	OnExit()
}
