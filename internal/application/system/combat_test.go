package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilgate/duskrealm/internal/domain/entity"
	"github.com/veilgate/duskrealm/internal/event"
	"github.com/veilgate/duskrealm/internal/infrastructure/config"
)

func createTestGameConfig() *config.GameConfig {
	return &config.GameConfig{
		Combat: config.CombatConfig{
			PlayerIframes: 0.8,
			EnemyIframes:  0.25,
		},
		AI: config.AIConfig{
			WaypointEpsilon: 2.0,
			DriftInterval:   1.6,
			DriftSpeed:      0.3,
		},
		Player: config.PlayerConfig{
			Width:        12,
			Height:       12,
			Speed:        110,
			MaxHealth:    6,
			RevealRadius: 7,
			Swing: config.SwingConfig{
				Damage:    1,
				Reach:     18,
				Span:      20,
				Duration:  0.32,
				Windup:    0.08,
				Recovery:  0.10,
				Cooldown:  0.12,
				Knockback: 26,
			},
		},
	}
}

// eventCollector records everything published on a bus
type eventCollector struct {
	events []event.Event
}

func (ec *eventCollector) attach(bus *event.Bus) {
	bus.Subscribe(func(e event.Event) { ec.events = append(ec.events, e) })
}

func (ec *eventCollector) kinds() []event.Kind {
	out := make([]event.Kind, len(ec.events))
	for i, e := range ec.events {
		out[i] = e.Kind
	}
	return out
}

func createTestCombat(t *testing.T, walls ...[2]int) (*Combat, *eventCollector) {
	t.Helper()
	bus := event.NewBus()
	ec := &eventCollector{}
	ec.attach(bus)
	resolver := NewResolver(createTestGrid(t, walls...))
	return NewCombat(createTestGameConfig(), resolver, bus), ec
}

// swingingPlayer returns a player mid-swing with the countdown inside
// the active phase
func swingingPlayer(c *Combat) *entity.Player {
	p := entity.NewPlayer(100, 100, 12, 12, 110, 6)
	c.StartPlayerSwing(p)
	p.TickTimers(0.16) // countdown 0.16: past windup, before recovery
	return p
}

func TestCombat_StartPlayerSwing(t *testing.T) {
	c, ec := createTestCombat(t)
	p := entity.NewPlayer(100, 100, 12, 12, 110, 6)

	assert.True(t, c.StartPlayerSwing(p))
	assert.True(t, p.Attacking)
	require.Len(t, ec.events, 1)
	assert.Equal(t, event.AttackStarted, ec.events[0].Kind)

	assert.False(t, c.StartPlayerSwing(p), "mid-swing start rejected")
	assert.Len(t, ec.events, 1, "rejected start publishes nothing")
}

func TestCombat_PlayerSwingActive(t *testing.T) {
	c, _ := createTestCombat(t)
	p := entity.NewPlayer(100, 100, 12, 12, 110, 6)

	assert.False(t, c.PlayerSwingActive(p), "idle")

	require.True(t, c.StartPlayerSwing(p))
	assert.False(t, c.PlayerSwingActive(p), "windup")

	p.TickTimers(0.1) // countdown 0.22
	assert.True(t, c.PlayerSwingActive(p), "active")

	p.TickTimers(0.14) // countdown 0.08
	assert.False(t, c.PlayerSwingActive(p), "recovery")

	p.TickTimers(0.1)
	assert.False(t, c.PlayerSwingActive(p), "finished")
}

func TestCombat_PlayerHitbox(t *testing.T) {
	c, _ := createTestCombat(t)
	p := entity.NewPlayer(100, 100, 12, 12, 110, 6)

	t.Run("east", func(t *testing.T) {
		p.Facing = entity.DirEast
		x, y, w, h := c.PlayerHitbox(p)
		assert.Equal(t, 112.0, x)
		assert.Equal(t, 96.0, y)
		assert.Equal(t, 18.0, w)
		assert.Equal(t, 20.0, h)
	})

	t.Run("west mirrors east", func(t *testing.T) {
		p.Facing = entity.DirWest
		x, y, w, h := c.PlayerHitbox(p)
		assert.Equal(t, 82.0, x)
		assert.Equal(t, 96.0, y)
		assert.Equal(t, 18.0, w)
		assert.Equal(t, 20.0, h)
	})

	t.Run("south swaps the long axis", func(t *testing.T) {
		p.Facing = entity.DirSouth
		x, y, w, h := c.PlayerHitbox(p)
		assert.Equal(t, 96.0, x)
		assert.Equal(t, 112.0, y)
		assert.Equal(t, 20.0, w)
		assert.Equal(t, 18.0, h)
	})

	t.Run("southeast is a square offset on both axes", func(t *testing.T) {
		p.Facing = entity.DirSouthEast
		x, y, w, h := c.PlayerHitbox(p)
		assert.Equal(t, w, h)
		assert.Equal(t, 19.0, w) // (reach+span)/2

		d := 18 * math.Sqrt2 / 2
		wantCX := 106 + 6 + d
		assert.InDelta(t, wantCX, x+w/2, 1e-9)
		assert.InDelta(t, wantCX, y+h/2, 1e-9)
	})
}

func TestCombat_PlayerStrikes(t *testing.T) {
	t.Run("overlapping enemy takes damage once per swing", func(t *testing.T) {
		c, ec := createTestCombat(t)
		p := swingingPlayer(c)
		p.Facing = entity.DirEast
		e := createTestEnemyAt(1, 120, 100)

		c.PlayerStrikes(p, []*entity.Enemy{e})
		assert.Equal(t, 2, e.Health)
		assert.Equal(t, []event.Kind{event.AttackStarted, event.HitLanded}, ec.kinds())

		// Same swing, later frame, iframes expired: still no second hit
		e.IframeTimer = 0
		c.PlayerStrikes(p, []*entity.Enemy{e})
		assert.Equal(t, 2, e.Health)
	})

	t.Run("enemy out of the hitbox untouched", func(t *testing.T) {
		c, _ := createTestCombat(t)
		p := swingingPlayer(c)
		p.Facing = entity.DirEast
		e := createTestEnemyAt(1, 200, 200)

		c.PlayerStrikes(p, []*entity.Enemy{e})
		assert.Equal(t, 3, e.Health)
	})

	t.Run("invincible enemy skipped without consuming the swing", func(t *testing.T) {
		c, _ := createTestCombat(t)
		p := swingingPlayer(c)
		p.Facing = entity.DirEast
		e := createTestEnemyAt(1, 120, 100)
		e.IframeTimer = 0.2

		c.PlayerStrikes(p, []*entity.Enemy{e})
		assert.Equal(t, 3, e.Health)
		assert.False(t, p.AlreadyHit(e.ID))

		// Once the iframes lapse the same swing can land
		e.IframeTimer = 0
		c.PlayerStrikes(p, []*entity.Enemy{e})
		assert.Equal(t, 2, e.Health)
	})

	t.Run("kill awards gold and publishes death", func(t *testing.T) {
		c, ec := createTestCombat(t)
		p := swingingPlayer(c)
		p.Facing = entity.DirEast
		e := createTestEnemyAt(1, 120, 100)
		e.Health = 1
		e.Reward = 5

		c.PlayerStrikes(p, []*entity.Enemy{e})
		assert.False(t, e.Alive())
		assert.Equal(t, 5, p.Gold)
		assert.Equal(t, []event.Kind{event.AttackStarted, event.HitLanded, event.EnemyDied}, ec.kinds())
	})

	t.Run("knockback pushes away from the player", func(t *testing.T) {
		c, _ := createTestCombat(t)
		p := swingingPlayer(c)
		p.Facing = entity.DirEast
		e := createTestEnemyAt(1, 120, 100)

		c.PlayerStrikes(p, []*entity.Enemy{e})
		assert.Greater(t, e.X, 120.0)
		assert.Equal(t, 100.0, e.Y)
	})

	t.Run("knockback stops at walls", func(t *testing.T) {
		// Wall column just east of the enemy
		c, _ := createTestCombat(t, [2]int{9, 5}, [2]int{9, 6}, [2]int{9, 7})
		p := swingingPlayer(c)
		p.Facing = entity.DirEast
		e := createTestEnemyAt(1, 130, 100)

		c.PlayerStrikes(p, []*entity.Enemy{e})
		assert.Equal(t, 130.0, e.X, "knockback into the wall is cancelled")
		assert.Equal(t, 2, e.Health, "damage still applies")
	})

	t.Run("no strikes outside the active phase", func(t *testing.T) {
		c, _ := createTestCombat(t)
		p := entity.NewPlayer(100, 100, 12, 12, 110, 6)
		p.Facing = entity.DirEast
		require.True(t, c.StartPlayerSwing(p)) // still in windup
		e := createTestEnemyAt(1, 120, 100)

		c.PlayerStrikes(p, []*entity.Enemy{e})
		assert.Equal(t, 3, e.Health)
	})
}

func TestCombat_EnemyStrikes(t *testing.T) {
	connect := func(e *entity.Enemy) {
		e.Attacking = true
		e.AttackTimer = 0.25 // inside (0.2, 0.3]
	}

	t.Run("connects inside the meaty window", func(t *testing.T) {
		c, ec := createTestCombat(t)
		p := entity.NewPlayer(100, 100, 12, 12, 110, 6)
		e := createTestEnemyAt(1, 120, 100)
		e.Facing = entity.DirWest
		connect(e)

		c.EnemyStrikes(p, []*entity.Enemy{e})
		assert.Equal(t, 5, p.Health)
		assert.True(t, p.IsInvincible())
		assert.True(t, e.HitPlayer)
		assert.Equal(t, []event.Kind{event.HitLanded}, ec.kinds())

		// Same swing cannot land twice even after iframes lapse
		p.IframeTimer = 0
		c.EnemyStrikes(p, []*entity.Enemy{e})
		assert.Equal(t, 5, p.Health)
	})

	t.Run("no hit during windup", func(t *testing.T) {
		c, _ := createTestCombat(t)
		p := entity.NewPlayer(100, 100, 12, 12, 110, 6)
		e := createTestEnemyAt(1, 120, 100)
		e.Facing = entity.DirWest
		e.Attacking = true
		e.AttackTimer = 0.45

		c.EnemyStrikes(p, []*entity.Enemy{e})
		assert.Equal(t, 6, p.Health)
	})

	t.Run("invincible player takes nothing", func(t *testing.T) {
		c, _ := createTestCombat(t)
		p := entity.NewPlayer(100, 100, 12, 12, 110, 6)
		p.IframeTimer = 0.5
		e := createTestEnemyAt(1, 120, 100)
		e.Facing = entity.DirWest
		connect(e)

		c.EnemyStrikes(p, []*entity.Enemy{e})
		assert.Equal(t, 6, p.Health)
		assert.False(t, e.HitPlayer, "missed window stays armed")
	})

	t.Run("knockback moves the player away", func(t *testing.T) {
		c, _ := createTestCombat(t)
		p := entity.NewPlayer(100, 100, 12, 12, 110, 6)
		e := createTestEnemyAt(1, 120, 100)
		e.Facing = entity.DirWest
		e.Knockback = 30
		connect(e)

		c.EnemyStrikes(p, []*entity.Enemy{e})
		assert.Less(t, p.X, 100.0)
		assert.Equal(t, 100.0, p.Y)
	})

	t.Run("coincident centers skip knockback without NaN", func(t *testing.T) {
		// Large player box centered exactly on the enemy: the hit
		// lands but there is no direction to push along.
		c, _ := createTestCombat(t)
		p := entity.NewPlayer(90, 90, 32, 32, 110, 6)
		e := createTestEnemyAt(1, 100, 100)
		e.Facing = entity.DirWest
		e.Knockback = 30
		connect(e)

		c.EnemyStrikes(p, []*entity.Enemy{e})
		assert.Equal(t, 5, p.Health)
		assert.Equal(t, 90.0, p.X)
		assert.Equal(t, 90.0, p.Y)
		assert.False(t, math.IsNaN(p.X))
	})
}

func createTestEnemyAt(id entity.EntityID, x, y float64) *entity.Enemy {
	return &entity.Enemy{
		ID:            id,
		Kind:          "stalker",
		X:             x,
		Y:             y,
		W:             12,
		H:             12,
		Health:        3,
		MaxHealth:     3,
		Damage:        1,
		Speed:         80,
		DetectRange:   90,
		LoseRange:     140,
		AttackRange:   22,
		PatrolSpeed:   0.6,
		ChaseSpeed:    1.0,
		SwingDuration: 0.5,
		SwingCooldown: 0.4,
		SwingReach:    16,
		SwingSpan:     16,
		ConnectFrom:   0.3,
		ConnectUntil:  0.2,
	}
}
