// Package worldgen builds the dayrealm tile layout from the world
// config (region fills, path carving, settlement stamping) and derives
// the eclipse layout from it. Generation runs exactly once per world.
package worldgen

import (
	"fmt"
	"math/rand"

	"github.com/veilgate/duskrealm/internal/domain/entity"
	"github.com/veilgate/duskrealm/internal/infrastructure/config"
)

// Generator produces a TileGrid from a world config. The RNG drives
// both region scatter and the probabilistic eclipse rules; seeding it
// makes the whole world, eclipse layout included, reproducible.
type Generator struct {
	cfg *config.WorldConfig
	rng *rand.Rand
}

// NewGenerator creates a generator with a seeded RNG
func NewGenerator(cfg *config.WorldConfig, seed int64) *Generator {
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Generate builds the dayrealm layout, derives eclipse from it, and
// returns the assembled grid
func (g *Generator) Generate() (*entity.TileGrid, error) {
	w := g.cfg.Size.Width
	h := g.cfg.Size.Height

	day := make([][]entity.TileType, h)
	base := entity.TileTypeByName(g.cfg.DefaultTile)
	for y := range day {
		day[y] = make([]entity.TileType, w)
		for x := range day[y] {
			day[y][x] = base
		}
	}

	for _, region := range g.cfg.Regions {
		g.fillRegion(day, region)
	}
	g.carvePaths(day)
	for _, s := range g.cfg.Settlements {
		g.stampSettlement(day, s)
	}
	g.clearSpawn(day)

	eclipse := TransformEclipse(day, g.rng)

	grid, err := entity.NewTileGrid(day, eclipse, g.cfg.Size.TileSize)
	if err != nil {
		return nil, fmt.Errorf("worldgen: %w", err)
	}
	return grid, nil
}

// fillRegion floods the region rect with its primary tile, then
// applies each scatter rule with an independent per-cell draw
func (g *Generator) fillRegion(day [][]entity.TileType, region config.RegionConfig) {
	tile := entity.TileTypeByName(region.Tile)
	for y := region.Rect.Y; y < region.Rect.Y+region.Rect.H; y++ {
		for x := region.Rect.X; x < region.Rect.X+region.Rect.W; x++ {
			if !inBounds(day, x, y) {
				continue
			}
			day[y][x] = tile
			for _, sc := range region.Scatter {
				if g.rng.Float64() < sc.Chance {
					day[y][x] = entity.TileTypeByName(sc.Tile)
					break
				}
			}
		}
	}
}

// carvePaths lays an L-shaped path between each consecutive pair of
// settlement anchors, bridging any water it crosses
func (g *Generator) carvePaths(day [][]entity.TileType) {
	for i := 1; i < len(g.cfg.Settlements); i++ {
		a := g.cfg.Settlements[i-1]
		b := g.cfg.Settlements[i]
		g.carveSegment(day, a.X, b.X, a.Y, true)
		g.carveSegment(day, a.Y, b.Y, b.X, false)
	}
}

func (g *Generator) carveSegment(day [][]entity.TileType, from, to, fixed int, horizontal bool) {
	step := 1
	if to < from {
		step = -1
	}
	for v := from; v != to+step; v += step {
		x, y := v, fixed
		if !horizontal {
			x, y = fixed, v
		}
		if !inBounds(day, x, y) {
			continue
		}
		if day[y][x] == entity.TileWater {
			day[y][x] = entity.TileBridge
		} else {
			day[y][x] = entity.TilePath
		}
	}
}

// stampSettlement places a 5x5 settlement: floor interior, house ring,
// a door at the bottom center
func (g *Generator) stampSettlement(day [][]entity.TileType, s config.SettlementConfig) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			x, y := s.X+dx, s.Y+dy
			if !inBounds(day, x, y) {
				continue
			}
			onRing := dx == -2 || dx == 2 || dy == -2 || dy == 2
			switch {
			case dx == 0 && dy == 2:
				day[y][x] = entity.TileDoor
			case onRing:
				day[y][x] = entity.TileHouse
			default:
				day[y][x] = entity.TileFloor
			}
		}
	}
}

// clearSpawn guarantees the player's spawn cell and its neighbours are
// walkable regardless of what the region fills produced
func (g *Generator) clearSpawn(day [][]entity.TileType) {
	ts := g.cfg.Size.TileSize
	sx := int(g.cfg.Spawn.X) / ts
	sy := int(g.cfg.Spawn.Y) / ts
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			x, y := sx+dx, sy+dy
			if inBounds(day, x, y) && !day[y][x].Passable() {
				day[y][x] = entity.TileGrass
			}
		}
	}
}

func inBounds(day [][]entity.TileType, x, y int) bool {
	return y >= 0 && y < len(day) && x >= 0 && x < len(day[y])
}
