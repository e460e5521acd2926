package config

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validGameYAML = `
display:
  screenWidth: 640
  screenHeight: 360
  scale: 2
  framerate: 60
clock:
  minDelta: 0.008
  maxDelta: 0.020
  alpha: 0.2
  medianWindow: 5
camera:
  smoothing: 0.12
combat:
  playerIframes: 0.8
  enemyIframes: 0.25
ai:
  waypointEpsilon: 2.0
  driftInterval: 1.6
  driftSpeed: 0.3
player:
  width: 12
  height: 12
  speed: 110
  maxHealth: 6
  revealRadius: 7
  swing:
    damage: 1
    reach: 18
    span: 20
    duration: 0.32
    windup: 0.08
    recovery: 0.10
    cooldown: 0.12
    knockback: 26
enemies:
  stalker:
    width: 12
    height: 12
    speed: 80
    maxHealth: 3
    damage: 1
    reward: 5
    detectRange: 90
    loseRange: 140
    attackRange: 22
    patrolSpeed: 0.6
    chaseSpeed: 1.0
    swing:
      reach: 16
      span: 16
      duration: 0.5
      connectFrom: 0.3
      connectUntil: 0.2
      cooldown: 0.4
      knockback: 30
`

const validWorldYAML = `
name: testworld
size:
  width: 40
  height: 30
  tileSize: 16
defaultTile: grass
spawn:
  x: 100
  y: 100
regions:
  - name: meadow
    rect: { x: 0, y: 0, w: 20, h: 10 }
    tile: grass
    scatter:
      - { tile: flower, chance: 0.1 }
    enemies:
      - type: stalker
        x: 200
        y: 120
        patrol:
          - { x: 200, y: 120 }
          - { x: 260, y: 120 }
settlements:
  - name: north
    x: 10
    y: 14
`

func testFS(game, world string) fstest.MapFS {
	return fstest.MapFS{
		"game.yaml":  {Data: []byte(game)},
		"world.yaml": {Data: []byte(world)},
	}
}

func TestLoader_LoadGame(t *testing.T) {
	loader := NewFSLoader(testFS(validGameYAML, validWorldYAML))
	cfg, err := loader.LoadGame()
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Display.ScreenWidth)
	assert.Equal(t, 0.008, cfg.Clock.MinDelta)
	assert.Equal(t, 0.32, cfg.Player.Swing.Duration)

	stalker, ok := cfg.Enemies["stalker"]
	require.True(t, ok)
	assert.Equal(t, 140.0, stalker.LoseRange)
	assert.Equal(t, 0.3, stalker.Swing.ConnectFrom)
}

func TestLoader_LoadWorld(t *testing.T) {
	loader := NewFSLoader(testFS(validGameYAML, validWorldYAML))
	cfg, err := loader.LoadWorld()
	require.NoError(t, err)

	assert.Equal(t, "testworld", cfg.Name)
	assert.Equal(t, 16, cfg.Size.TileSize)
	require.Len(t, cfg.Regions, 1)
	require.Len(t, cfg.Regions[0].Enemies, 1)
	assert.Len(t, cfg.Regions[0].Enemies[0].Patrol, 2)
}

func TestLoader_LoadAll(t *testing.T) {
	loader := NewFSLoader(testFS(validGameYAML, validWorldYAML))
	bundle, err := loader.LoadAll()
	require.NoError(t, err)
	assert.NotNil(t, bundle.Game)
	assert.NotNil(t, bundle.World)
}

func TestLoader_Validation(t *testing.T) {
	mutate := func(t *testing.T, game, world string, wantErr string) {
		t.Helper()
		loader := NewFSLoader(testFS(game, world))
		_, err := loader.LoadAll()
		require.Error(t, err)
		assert.Contains(t, err.Error(), wantErr)
	}

	t.Run("missing file", func(t *testing.T) {
		loader := NewFSLoader(fstest.MapFS{})
		_, err := loader.LoadGame()
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		loader := NewFSLoader(testFS("display: [", validWorldYAML))
		_, err := loader.LoadGame()
		assert.Error(t, err)
	})

	t.Run("inverted clock bounds", func(t *testing.T) {
		bad := validGameYAML
		bad = replaceLine(bad, "maxDelta: 0.020", "maxDelta: 0.004")
		mutate(t, bad, validWorldYAML, "clock delta bounds")
	})

	t.Run("swing without active window", func(t *testing.T) {
		bad := replaceLine(validGameYAML, "windup: 0.08", "windup: 0.30")
		mutate(t, bad, validWorldYAML, "no active window")
	})

	t.Run("loseRange below detectRange breaks hysteresis", func(t *testing.T) {
		bad := replaceLine(validGameYAML, "loseRange: 140", "loseRange: 50")
		mutate(t, bad, validWorldYAML, "hysteresis")
	})

	t.Run("connect window outside swing duration", func(t *testing.T) {
		bad := replaceLine(validGameYAML, "connectFrom: 0.3", "connectFrom: 0.9")
		mutate(t, bad, validWorldYAML, "connect window")
	})

	t.Run("unknown spawn enemy type", func(t *testing.T) {
		bad := replaceLine(validWorldYAML, "type: stalker", "type: ghoul")
		mutate(t, validGameYAML, bad, "ghoul")
	})

	t.Run("empty region rect", func(t *testing.T) {
		bad := replaceLine(validWorldYAML, "rect: { x: 0, y: 0, w: 20, h: 10 }", "rect: { x: 0, y: 0, w: 0, h: 10 }")
		mutate(t, validGameYAML, bad, "empty rect")
	})

	t.Run("zero tile size", func(t *testing.T) {
		bad := replaceLine(validWorldYAML, "tileSize: 16", "tileSize: 0")
		mutate(t, validGameYAML, bad, "tile size")
	})
}

func replaceLine(s, old, new string) string {
	return strings.Replace(s, old, new, 1)
}
