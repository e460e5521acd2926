package worldgen

import (
	"math/rand"

	"github.com/veilgate/duskrealm/internal/domain/entity"
)

// Substitution probabilities for the eclipse transform. Each
// probabilistic rule uses an independent per-cell draw.
const (
	marshChance    = 0.12 // grass -> marsh
	clearingChance = 0.08 // forest -> path (tree clearing)
	shrineChance   = 0.30 // house -> shrine
	snowChance     = 0.50 // snow bleed near the top edge
	snowBleedRows  = 3
)

// TransformEclipse derives the eclipse layout from the dayrealm layout
// through a fixed substitution table. It runs once at world creation;
// the result never diverges from its source afterwards (toggling
// realms only flips which layout is active).
func TransformEclipse(day [][]entity.TileType, rng *rand.Rand) [][]entity.TileType {
	h := len(day)
	eclipse := make([][]entity.TileType, h)

	for y := 0; y < h; y++ {
		w := len(day[y])
		eclipse[y] = make([]entity.TileType, w)
		for x := 0; x < w; x++ {
			eclipse[y][x] = substitute(day, x, y, rng)
		}
	}
	return eclipse
}

func substitute(day [][]entity.TileType, x, y int, rng *rand.Rand) entity.TileType {
	out := day[y][x]

	switch day[y][x] {
	case entity.TileGrass:
		if rng.Float64() < marshChance {
			out = entity.TileMarsh
		}
	case entity.TileForest:
		if rng.Float64() < clearingChance {
			out = entity.TilePath
		}
	case entity.TileMountain:
		out = entity.TileWall
	case entity.TileWater:
		if adjacentToLand(day, x, y) {
			out = entity.TileBridge
		}
	case entity.TileHouse:
		if rng.Float64() < shrineChance {
			out = entity.TileShrine
		}
	case entity.TileDesert:
		out = entity.TileVolcanic
	case entity.TileFlower:
		out = entity.TileGrass
	}

	// Snow bleeds down from the eclipse sky near the top edge
	if y < snowBleedRows && out != entity.TileWater && rng.Float64() < snowChance {
		out = entity.TileSnow
	}
	return out
}

// adjacentToLand reports whether any 4-neighbour of the cell is a
// non-water tile, using the dayrealm layout as the reference
func adjacentToLand(day [][]entity.TileType, x, y int) bool {
	neighbours := [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}}
	for _, n := range neighbours {
		nx, ny := n[0], n[1]
		if ny < 0 || ny >= len(day) || nx < 0 || nx >= len(day[ny]) {
			continue
		}
		if day[ny][nx] != entity.TileWater {
			return true
		}
	}
	return false
}
