package worldgen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilgate/duskrealm/internal/domain/entity"
	"github.com/veilgate/duskrealm/internal/infrastructure/config"
)

func createTestWorldConfig() *config.WorldConfig {
	return &config.WorldConfig{
		Name:        "testworld",
		Size:        config.WorldSizeConfig{Width: 40, Height: 30, TileSize: 16},
		DefaultTile: "grass",
		Spawn:       config.PositionConfig{X: 100, Y: 100},
		Regions: []config.RegionConfig{
			{
				Name: "peaks",
				Rect: config.TileRectConfig{X: 30, Y: 0, W: 10, H: 30},
				Tile: "mountain",
			},
			{
				Name: "pond",
				Rect: config.TileRectConfig{X: 5, Y: 18, W: 10, H: 8},
				Tile: "water",
			},
			{
				Name: "brush",
				Rect: config.TileRectConfig{X: 0, Y: 0, W: 20, H: 10},
				Tile: "grass",
				Scatter: []config.ScatterConfig{
					{Tile: "flower", Chance: 0.5},
				},
			},
		},
		Settlements: []config.SettlementConfig{
			{Name: "north", X: 10, Y: 14},
			{Name: "south", X: 10, Y: 27},
		},
	}
}

func TestGenerator_Generate(t *testing.T) {
	grid, err := NewGenerator(createTestWorldConfig(), 42).Generate()
	require.NoError(t, err)

	assert.Equal(t, 40, grid.Width())
	assert.Equal(t, 30, grid.Height())
	assert.Equal(t, 16, grid.TileSize())

	t.Run("region fill applies", func(t *testing.T) {
		assert.Equal(t, entity.TileMountain, grid.At(35, 5))
	})

	t.Run("scatter produces some detail tiles", func(t *testing.T) {
		flowers := 0
		for y := 0; y < 10; y++ {
			for x := 0; x < 20; x++ {
				if grid.At(x, y) == entity.TileFlower {
					flowers++
				}
			}
		}
		assert.Greater(t, flowers, 0)
		assert.Less(t, flowers, 200, "scatter must not flood the region")
	})

	t.Run("settlement stamp", func(t *testing.T) {
		// Center (10,14): floor interior, house ring, door at bottom center
		assert.Equal(t, entity.TileFloor, grid.At(10, 14))
		assert.Equal(t, entity.TileHouse, grid.At(8, 14))
		assert.Equal(t, entity.TileHouse, grid.At(12, 16))
		assert.Equal(t, entity.TileDoor, grid.At(10, 16))
	})

	t.Run("path connects consecutive settlements over water", func(t *testing.T) {
		// The vertical leg at x=10 crosses the pond rows; water cells
		// become bridges, everything else path or settlement stamp.
		sawBridge := false
		for y := 18; y < 26; y++ {
			tile := grid.At(10, y)
			assert.Contains(t, []entity.TileType{entity.TileBridge, entity.TilePath, entity.TileFloor, entity.TileDoor, entity.TileHouse}, tile)
			if tile == entity.TileBridge {
				sawBridge = true
			}
		}
		assert.True(t, sawBridge)
	})

	t.Run("spawn cell is passable", func(t *testing.T) {
		assert.True(t, grid.IsPassable(100, 100))
	})
}

func TestGenerator_SpawnClearedInHostileRegion(t *testing.T) {
	cfg := createTestWorldConfig()
	cfg.Spawn = config.PositionConfig{X: 560, Y: 100} // inside the mountain region

	grid, err := NewGenerator(cfg, 1).Generate()
	require.NoError(t, err)

	// Tile (35,6) and its neighbours were mountain; the spawn clearing
	// turns them walkable
	assert.True(t, grid.IsPassable(560, 100))
	assert.Equal(t, entity.TileGrass, grid.At(35, 6))
	assert.Equal(t, entity.TileGrass, grid.At(34, 5))
}

func TestGenerator_DeterministicBySeed(t *testing.T) {
	cfg := createTestWorldConfig()

	a, err := NewGenerator(cfg, 7).Generate()
	require.NoError(t, err)
	b, err := NewGenerator(cfg, 7).Generate()
	require.NoError(t, err)

	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			require.Equal(t, a.At(x, y), b.At(x, y), "day tile (%d,%d)", x, y)
		}
	}

	// Eclipse layouts must match too: same seed, same probabilistic draws
	a.ToggleRealm()
	b.ToggleRealm()
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			require.Equal(t, a.At(x, y), b.At(x, y), "eclipse tile (%d,%d)", x, y)
		}
	}

	t.Run("different seeds diverge", func(t *testing.T) {
		c, err := NewGenerator(cfg, 8).Generate()
		require.NoError(t, err)
		diff := 0
		for y := 0; y < a.Height(); y++ {
			for x := 0; x < a.Width(); x++ {
				if a.At(x, y) != c.At(x, y) {
					diff++
				}
			}
		}
		assert.Greater(t, diff, 0)
	})
}

func TestTransformEclipse(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	t.Run("deterministic substitutions", func(t *testing.T) {
		day := [][]entity.TileType{
			{entity.TileGrass, entity.TileGrass, entity.TileGrass},
			{entity.TileGrass, entity.TileGrass, entity.TileGrass},
			{entity.TileGrass, entity.TileGrass, entity.TileGrass},
			{entity.TileWall, entity.TilePath, entity.TileChest},
			{entity.TileMountain, entity.TileDesert, entity.TileFlower},
		}
		eclipse := TransformEclipse(day, rng)

		// Rows past the snow bleed band are fully deterministic
		assert.Equal(t, entity.TileWall, eclipse[4][0], "mountain always hardens to wall")
		assert.Equal(t, entity.TileVolcanic, eclipse[4][1], "desert always turns volcanic")
		assert.Equal(t, entity.TileGrass, eclipse[4][2], "flowers wither to grass")
		assert.Equal(t, entity.TilePath, eclipse[3][1], "path unchanged")
		assert.Equal(t, entity.TileChest, eclipse[3][2], "chest unchanged")
	})

	t.Run("shoreline water becomes bridges", func(t *testing.T) {
		day := [][]entity.TileType{
			{entity.TileWater, entity.TileWater, entity.TileWater},
			{entity.TileWater, entity.TileWater, entity.TileWater},
			{entity.TileWater, entity.TileWater, entity.TileWater},
			{entity.TileWater, entity.TileWater, entity.TileWater},
			{entity.TileGrass, entity.TileWater, entity.TileWater},
		}
		eclipse := TransformEclipse(day, rng)

		assert.Equal(t, entity.TileBridge, eclipse[4][1], "water beside land crosses over")
		assert.Equal(t, entity.TileWater, eclipse[3][2], "open water stays water")
	})

	t.Run("same shape as input", func(t *testing.T) {
		day := [][]entity.TileType{
			{entity.TileGrass, entity.TileGrass},
			{entity.TileGrass},
		}
		eclipse := TransformEclipse(day, rng)
		require.Len(t, eclipse, 2)
		assert.Len(t, eclipse[0], 2)
		assert.Len(t, eclipse[1], 1)
	})
}

func TestTransformEclipse_GrassMarshRatio(t *testing.T) {
	day := make([][]entity.TileType, 100)
	for y := range day {
		day[y] = make([]entity.TileType, 100)
	}
	eclipse := TransformEclipse(day, rand.New(rand.NewSource(3)))

	marsh := 0
	total := 0
	for y := snowBleedRows; y < 100; y++ {
		for x := 0; x < 100; x++ {
			total++
			if eclipse[y][x] == entity.TileMarsh {
				marsh++
			}
		}
	}
	ratio := float64(marsh) / float64(total)
	assert.InDelta(t, marshChance, ratio, 0.03)
}
