package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState is the opaque per-frame input snapshot the core consumes:
// held 8-directional movement flags plus edge-triggered actions.
// It is sampled once per frame before the update pass.
type InputState struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool

	Attack      bool // edge-triggered: pressed this frame
	ToggleRealm bool // edge-triggered: pressed this frame
}

// MoveAxes collapses the held flags into raw axis signs (-1, 0 or 1).
// Opposite held keys cancel out.
func (in InputState) MoveAxes() (dx, dy float64) {
	if in.Left {
		dx--
	}
	if in.Right {
		dx++
	}
	if in.Up {
		dy--
	}
	if in.Down {
		dy++
	}
	return dx, dy
}

// Input samples device state into InputState snapshots
type Input struct{}

// NewInput creates the input sampler
func NewInput() *Input {
	return &Input{}
}

// Sample reads the current device state. Arrow keys and WASD both
// steer; Space/J swing; E flips the realm.
func (s *Input) Sample() InputState {
	return InputState{
		Up:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Attack: inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
			inpututil.IsKeyJustPressed(ebiten.KeyJ),
		ToggleRealm: inpututil.IsKeyJustPressed(ebiten.KeyE),
	}
}
