package system

import (
	"math"

	"github.com/veilgate/duskrealm/internal/domain/entity"
)

// cornerInset keeps the far corners of a box just inside its extent so
// a box flush against a tile boundary does not sample the next tile.
const cornerInset = 1e-6

// Resolver resolves entity movement against the active tile layout.
// Each axis is tested and committed independently, which is what makes
// a diagonal push against an L-shaped wall slide along the free axis.
type Resolver struct {
	grid *entity.TileGrid
}

// NewResolver creates a collision resolver bound to a grid
func NewResolver(grid *entity.TileGrid) *Resolver {
	return &Resolver{grid: grid}
}

// Move attempts to translate a bounding box by (dx, dy) and returns the
// resulting top-left position. X is resolved first, then Y against the
// already-updated X. A box that already overlaps an impassable tile is
// not corrected; only new overlaps are prevented.
func (r *Resolver) Move(x, y, w, h, dx, dy float64) (float64, float64) {
	if r.BoxClear(x+dx, y, w, h) {
		x += dx
	}
	if r.BoxClear(x, y+dy, w, h) {
		y += dy
	}
	return x, y
}

// BoxClear reports whether all four corners of the box land on
// passable tiles of the active layout
func (r *Resolver) BoxClear(x, y, w, h float64) bool {
	x2 := x + w - cornerInset
	y2 := y + h - cornerInset
	return r.grid.IsPassable(x, y) &&
		r.grid.IsPassable(x2, y) &&
		r.grid.IsPassable(x, y2) &&
		r.grid.IsPassable(x2, y2)
}

// NormalizeDiagonal scales a delta by 1/sqrt(2) when both axes are
// active, so diagonal movement covers the same distance per frame as
// axis-aligned movement.
func NormalizeDiagonal(dx, dy float64) (float64, float64) {
	if dx != 0 && dy != 0 {
		dx *= math.Sqrt2 / 2
		dy *= math.Sqrt2 / 2
	}
	return dx, dy
}
