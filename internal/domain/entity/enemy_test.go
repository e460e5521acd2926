package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestEnemy() *Enemy {
	return &Enemy{
		ID:            1,
		Kind:          "stalker",
		X:             200,
		Y:             200,
		W:             12,
		H:             12,
		Health:        3,
		MaxHealth:     3,
		Damage:        1,
		SwingDuration: 0.5,
		SwingCooldown: 0.4,
		ConnectFrom:   0.3,
		ConnectUntil:  0.2,
	}
}

func TestAIState_String(t *testing.T) {
	assert.Equal(t, "idle", AIIdle.String())
	assert.Equal(t, "patrol", AIPatrol.String())
	assert.Equal(t, "chase", AIChase.String())
	assert.Equal(t, "attack", AIAttack.String())
	assert.Equal(t, "unknown", AIState(99).String())
}

func TestEnemy_StartSwing(t *testing.T) {
	e := createTestEnemy()

	assert.True(t, e.StartSwing())
	assert.True(t, e.Attacking)
	assert.Equal(t, 0.5, e.AttackTimer)
	assert.Equal(t, 0.4, e.CooldownTimer)

	assert.False(t, e.StartSwing(), "rejected while swinging")

	t.Run("clears per-swing hit flag", func(t *testing.T) {
		e := createTestEnemy()
		e.HitPlayer = true
		require.True(t, e.StartSwing())
		assert.False(t, e.HitPlayer)
	})
}

func TestEnemy_InConnectWindow(t *testing.T) {
	e := createTestEnemy()
	assert.False(t, e.InConnectWindow(), "no swing, no window")

	require.True(t, e.StartSwing())
	assert.False(t, e.InConnectWindow(), "windup: countdown above connectFrom")

	e.TickTimers(0.25) // countdown at 0.25, inside (0.2, 0.3]
	assert.True(t, e.InConnectWindow())

	e.TickTimers(0.1) // countdown at 0.15, past connectUntil
	assert.False(t, e.InConnectWindow(), "recovery: window closed")

	e.TickTimers(0.2)
	assert.False(t, e.Attacking)
	assert.False(t, e.InConnectWindow())
}

func TestEnemy_InConnectWindowBoundary(t *testing.T) {
	e := createTestEnemy()
	require.True(t, e.StartSwing())

	e.AttackTimer = e.ConnectFrom
	assert.True(t, e.InConnectWindow(), "window includes connectFrom")

	e.AttackTimer = e.ConnectUntil
	assert.False(t, e.InConnectWindow(), "window excludes connectUntil")
}

func TestEnemy_TakeDamage(t *testing.T) {
	e := createTestEnemy()

	died := e.TakeDamage(1, 0.25)
	assert.False(t, died)
	assert.Equal(t, 2, e.Health)
	assert.True(t, e.IsInvincible())
	assert.True(t, e.Alive())

	e.TickTimers(0.3)
	assert.False(t, e.IsInvincible())

	died = e.TakeDamage(2, 0.25)
	assert.True(t, died)
	assert.False(t, e.Alive())
}
