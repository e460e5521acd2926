package entity

// AIState is the behavior state of an enemy
type AIState int

const (
	AIIdle AIState = iota
	AIPatrol
	AIChase
	AIAttack
)

// String returns the AI state name
func (s AIState) String() string {
	switch s {
	case AIIdle:
		return "idle"
	case AIPatrol:
		return "patrol"
	case AIChase:
		return "chase"
	case AIAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// Waypoint is a patrol path node in world pixel coordinates
type Waypoint struct {
	X, Y float64
}

// Enemy is a hostile combatant driven by the AI system
type Enemy struct {
	ID     EntityID
	Kind   string
	X, Y   float64
	W, H   float64
	Facing Direction
	Speed  float64

	Health    int
	MaxHealth int
	Damage    int
	Reward    int

	// AI tuning, copied from the enemy kind config at spawn.
	// PatrolSpeed and ChaseSpeed are multipliers on Speed.
	DetectRange float64
	LoseRange   float64
	AttackRange float64
	PatrolSpeed float64
	ChaseSpeed  float64

	State       AIState
	Patrol      []Waypoint
	WaypointIdx int

	// Idle drift
	DriftTimer float64
	Drifting   bool

	// Attack sub-state. The swing countdown runs from SwingDuration to
	// zero; hits only connect while the remaining time is inside
	// (ConnectUntil, ConnectFrom], the "meaty" middle of the swing.
	Attacking     bool
	AttackTimer   float64
	CooldownTimer float64
	SwingDuration float64
	SwingCooldown float64
	SwingReach    float64
	SwingSpan     float64
	Knockback     float64
	ConnectFrom   float64
	ConnectUntil  float64
	HitPlayer     bool

	IframeTimer float64
}

// Box returns the bounding box in world coordinates
func (e *Enemy) Box() (x, y, w, h float64) {
	return e.X, e.Y, e.W, e.H
}

// Center returns the bounding box center
func (e *Enemy) Center() (x, y float64) {
	return e.X + e.W/2, e.Y + e.H/2
}

// Alive reports whether the enemy should remain in the live list
func (e *Enemy) Alive() bool {
	return e.Health > 0
}

// StartSwing begins an attack if the cooldown gate allows it.
// The per-swing hit flag is cleared for the new swing.
func (e *Enemy) StartSwing() bool {
	if e.Attacking || e.CooldownTimer > 0 {
		return false
	}
	e.Attacking = true
	e.AttackTimer = e.SwingDuration
	e.CooldownTimer = e.SwingCooldown
	e.HitPlayer = false
	return true
}

// InConnectWindow reports whether the current swing can land this frame
func (e *Enemy) InConnectWindow() bool {
	if !e.Attacking {
		return false
	}
	return e.AttackTimer <= e.ConnectFrom && e.AttackTimer > e.ConnectUntil
}

// TickTimers advances countdown timers by the smoothed frame delta
func (e *Enemy) TickTimers(dt float64) {
	if e.AttackTimer > 0 {
		e.AttackTimer -= dt
		if e.AttackTimer <= 0 {
			e.AttackTimer = 0
			e.Attacking = false
		}
	}
	if e.CooldownTimer > 0 {
		e.CooldownTimer -= dt
	}
	if e.IframeTimer > 0 {
		e.IframeTimer -= dt
	}
	if e.DriftTimer > 0 {
		e.DriftTimer -= dt
	}
}

// IsInvincible reports whether the enemy currently ignores hits
func (e *Enemy) IsInvincible() bool {
	return e.IframeTimer > 0
}

// TakeDamage applies damage and arms the invulnerability countdown.
// Returns true when the enemy died from this hit.
func (e *Enemy) TakeDamage(damage int, iframes float64) bool {
	e.Health -= damage
	e.IframeTimer = iframes
	return e.Health <= 0
}
