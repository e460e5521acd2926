package entity

// Player is the player-controlled combatant. Position is the top-left
// corner of its bounding box, in continuous pixel coordinates.
type Player struct {
	X, Y   float64
	W, H   float64
	Facing Direction
	Speed  float64

	Health    int
	MaxHealth int
	Gold      int

	// Attack sub-state: one countdown covers windup/active/recovery,
	// CooldownTimer gates the next swing from the start of this one.
	Attacking     bool
	AttackTimer   float64
	CooldownTimer float64

	IframeTimer float64

	// Enemies already struck during the current swing
	SwingHits map[EntityID]struct{}
}

// NewPlayer creates a player at the given pixel position
func NewPlayer(x, y, w, h, speed float64, maxHealth int) *Player {
	return &Player{
		X:         x,
		Y:         y,
		W:         w,
		H:         h,
		Facing:    DirSouth,
		Speed:     speed,
		Health:    maxHealth,
		MaxHealth: maxHealth,
		SwingHits: make(map[EntityID]struct{}),
	}
}

// Box returns the bounding box in world coordinates
func (p *Player) Box() (x, y, w, h float64) {
	return p.X, p.Y, p.W, p.H
}

// Center returns the bounding box center
func (p *Player) Center() (x, y float64) {
	return p.X + p.W/2, p.Y + p.H/2
}

// StartSwing begins a new attack if the previous swing has finished and
// the cooldown has elapsed. Starting a swing clears the per-swing hit
// set and re-arms the cooldown.
func (p *Player) StartSwing(duration, cooldown float64) bool {
	if p.Attacking || p.CooldownTimer > 0 {
		return false
	}
	p.Attacking = true
	p.AttackTimer = duration
	p.CooldownTimer = cooldown
	p.SwingHits = make(map[EntityID]struct{})
	return true
}

// TickTimers advances countdown timers by the smoothed frame delta
func (p *Player) TickTimers(dt float64) {
	if p.AttackTimer > 0 {
		p.AttackTimer -= dt
		if p.AttackTimer <= 0 {
			p.AttackTimer = 0
			p.Attacking = false
		}
	}
	if p.CooldownTimer > 0 {
		p.CooldownTimer -= dt
	}
	if p.IframeTimer > 0 {
		p.IframeTimer -= dt
	}
}

// IsInvincible reports whether the player currently ignores hits
func (p *Player) IsInvincible() bool {
	return p.IframeTimer > 0
}

// TakeDamage applies damage and arms the invulnerability countdown
func (p *Player) TakeDamage(damage int, iframes float64) {
	p.Health -= damage
	p.IframeTimer = iframes
}

// AlreadyHit reports whether the enemy was struck during this swing
func (p *Player) AlreadyHit(id EntityID) bool {
	_, ok := p.SwingHits[id]
	return ok
}

// MarkHit records an enemy as struck for the rest of this swing
func (p *Player) MarkHit(id EntityID) {
	p.SwingHits[id] = struct{}{}
}
