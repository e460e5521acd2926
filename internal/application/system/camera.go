package system

// Camera follows a target point with exponential smoothing, clamped to
// the world bounds. Pure follower: no collision, no other state.
type Camera struct {
	X, Y      float64
	viewportW int
	viewportH int
	smoothing float64
}

// NewCamera creates a camera for the given viewport, starting centered
// on the target
func NewCamera(viewportW, viewportH int, smoothing float64, targetX, targetY float64, worldW, worldH int) *Camera {
	c := &Camera{
		viewportW: viewportW,
		viewportH: viewportH,
		smoothing: smoothing,
	}
	c.X = targetX - float64(viewportW)/2
	c.Y = targetY - float64(viewportH)/2
	c.clamp(worldW, worldH)
	return c
}

// Update lerps the camera toward the target (the player's box center)
// and clamps to [0, world-viewport] on both axes.
func (c *Camera) Update(targetX, targetY float64, worldW, worldH int) {
	wantX := targetX - float64(c.viewportW)/2
	wantY := targetY - float64(c.viewportH)/2

	c.X += (wantX - c.X) * c.smoothing
	c.Y += (wantY - c.Y) * c.smoothing
	c.clamp(worldW, worldH)
}

// Snap recenters on the target immediately, skipping the lerp. Used
// after restoring a save so the first frame does not sweep across the
// map.
func (c *Camera) Snap(targetX, targetY float64, worldW, worldH int) {
	c.X = targetX - float64(c.viewportW)/2
	c.Y = targetY - float64(c.viewportH)/2
	c.clamp(worldW, worldH)
}

func (c *Camera) clamp(worldW, worldH int) {
	maxX := float64(worldW - c.viewportW)
	maxY := float64(worldH - c.viewportH)
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	if c.X < 0 {
		c.X = 0
	}
	if c.Y < 0 {
		c.Y = 0
	}
	if c.X > maxX {
		c.X = maxX
	}
	if c.Y > maxY {
		c.Y = maxY
	}
}
