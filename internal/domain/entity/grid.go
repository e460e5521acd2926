package entity

import (
	"fmt"
	"math"
)

// Realm selects which of the two parallel world layouts is active
type Realm int

const (
	RealmDay Realm = iota
	RealmEclipse
)

// String returns the realm name
func (r Realm) String() string {
	if r == RealmEclipse {
		return "eclipse"
	}
	return "dayrealm"
}

// TileGrid owns the two parallel tile layouts plus the fog-of-war mask.
// Both layouts and the mask always share the same dimensions; switching
// realms only flips which layout answers queries, nothing is recomputed.
type TileGrid struct {
	width    int
	height   int
	tileSize int

	dayrealm [][]TileType
	eclipse  [][]TileType
	revealed [][]bool

	current Realm
}

// NewTileGrid builds a grid from the two precomputed layouts.
// The layouts must be rectangular and share the same shape.
func NewTileGrid(dayrealm, eclipse [][]TileType, tileSize int) (*TileGrid, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("grid: tile size must be positive, got %d", tileSize)
	}
	h := len(dayrealm)
	if h == 0 || len(dayrealm[0]) == 0 {
		return nil, fmt.Errorf("grid: dayrealm layout is empty")
	}
	w := len(dayrealm[0])
	if len(eclipse) != h {
		return nil, fmt.Errorf("grid: layout height mismatch: dayrealm %d, eclipse %d", h, len(eclipse))
	}
	for y := 0; y < h; y++ {
		if len(dayrealm[y]) != w || len(eclipse[y]) != w {
			return nil, fmt.Errorf("grid: ragged row %d", y)
		}
	}

	revealed := make([][]bool, h)
	for y := range revealed {
		revealed[y] = make([]bool, w)
	}

	return &TileGrid{
		width:    w,
		height:   h,
		tileSize: tileSize,
		dayrealm: dayrealm,
		eclipse:  eclipse,
		revealed: revealed,
		current:  RealmDay,
	}, nil
}

// Width returns the grid width in tiles
func (g *TileGrid) Width() int { return g.width }

// Height returns the grid height in tiles
func (g *TileGrid) Height() int { return g.height }

// TileSize returns the tile edge length in pixels
func (g *TileGrid) TileSize() int { return g.tileSize }

// PixelWidth returns the world width in pixels
func (g *TileGrid) PixelWidth() int { return g.width * g.tileSize }

// PixelHeight returns the world height in pixels
func (g *TileGrid) PixelHeight() int { return g.height * g.tileSize }

// Realm returns the currently active realm
func (g *TileGrid) Realm() Realm { return g.current }

// ToggleRealm flips which layout is active. Both layouts are
// precomputed, so toggling twice restores every query result.
func (g *TileGrid) ToggleRealm() Realm {
	if g.current == RealmDay {
		g.current = RealmEclipse
	} else {
		g.current = RealmDay
	}
	return g.current
}

// InBounds reports whether the tile coordinate lies inside the grid
func (g *TileGrid) InBounds(tx, ty int) bool {
	return tx >= 0 && tx < g.width && ty >= 0 && ty < g.height
}

// At returns the active layout's tile at the given tile coordinate.
// Out-of-bounds coordinates read as wall, never panic.
func (g *TileGrid) At(tx, ty int) TileType {
	if !g.InBounds(tx, ty) {
		return TileWall
	}
	if g.current == RealmEclipse {
		return g.eclipse[ty][tx]
	}
	return g.dayrealm[ty][tx]
}

// TileIndex maps a continuous world coordinate to its tile index
func (g *TileGrid) TileIndex(coord float64) int {
	return int(math.Floor(coord / float64(g.tileSize)))
}

// IsPassable answers the passability of the active layout under a
// continuous world coordinate. Out-of-bounds fails closed.
func (g *TileGrid) IsPassable(worldX, worldY float64) bool {
	tx := g.TileIndex(worldX)
	ty := g.TileIndex(worldY)
	if !g.InBounds(tx, ty) {
		return false
	}
	return g.At(tx, ty).Passable()
}

// IsRevealed reports whether a tile has ever been inside the reveal
// radius. Out-of-bounds reads as not revealed.
func (g *TileGrid) IsRevealed(tx, ty int) bool {
	if !g.InBounds(tx, ty) {
		return false
	}
	return g.revealed[ty][tx]
}

// RevealAround permanently marks every cell within radiusTiles
// (Euclidean, in tile units) of the world position as revealed.
// Monotonic and idempotent: cells are never un-revealed.
func (g *TileGrid) RevealAround(worldX, worldY, radiusTiles float64) {
	cx := worldX / float64(g.tileSize)
	cy := worldY / float64(g.tileSize)

	minX := int(math.Floor(cx - radiusTiles))
	maxX := int(math.Ceil(cx + radiusTiles))
	minY := int(math.Floor(cy - radiusTiles))
	maxY := int(math.Ceil(cy + radiusTiles))

	for ty := minY; ty <= maxY; ty++ {
		for tx := minX; tx <= maxX; tx++ {
			if !g.InBounds(tx, ty) {
				continue
			}
			dx := float64(tx) + 0.5 - cx
			dy := float64(ty) + 0.5 - cy
			if dx*dx+dy*dy <= radiusTiles*radiusTiles {
				g.revealed[ty][tx] = true
			}
		}
	}
}

// RevealedCount returns the number of revealed cells, for tests and HUD
func (g *TileGrid) RevealedCount() int {
	n := 0
	for _, row := range g.revealed {
		for _, r := range row {
			if r {
				n++
			}
		}
	}
	return n
}
