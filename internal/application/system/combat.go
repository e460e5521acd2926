package system

import (
	"math"

	"github.com/veilgate/duskrealm/internal/domain/entity"
	"github.com/veilgate/duskrealm/internal/event"
	"github.com/veilgate/duskrealm/internal/infrastructure/config"
)

// Combat owns the melee attack lifecycle for both the player and
// enemies: swing timing, hitbox geometry per facing, hit-once-per-swing
// deduplication, knockback and invulnerability frames.
type Combat struct {
	cfg      *config.GameConfig
	resolver *Resolver
	bus      *event.Bus
}

// NewCombat creates the combat controller
func NewCombat(cfg *config.GameConfig, resolver *Resolver, bus *event.Bus) *Combat {
	return &Combat{cfg: cfg, resolver: resolver, bus: bus}
}

// StartPlayerSwing begins a player attack if allowed by the cooldown
// gate and the current swing state
func (c *Combat) StartPlayerSwing(p *entity.Player) bool {
	swing := c.cfg.Player.Swing
	if !p.StartSwing(swing.Duration, swing.Cooldown) {
		return false
	}
	cx, cy := p.Center()
	c.bus.Publish(event.Event{Kind: event.AttackStarted, X: cx, Y: cy})
	return true
}

// StartEnemySwing begins an enemy attack if its cooldown has elapsed
func (c *Combat) StartEnemySwing(e *entity.Enemy) bool {
	if !e.StartSwing() {
		return false
	}
	cx, cy := e.Center()
	c.bus.Publish(event.Event{Kind: event.AttackStarted, X: cx, Y: cy})
	return true
}

// PlayerSwingActive reports whether the player's swing is in its
// active phase. The countdown covers windup, active and recovery: the
// swing is active once windup has elapsed and before recovery begins.
func (c *Combat) PlayerSwingActive(p *entity.Player) bool {
	if !p.Attacking {
		return false
	}
	swing := c.cfg.Player.Swing
	return p.AttackTimer <= swing.Duration-swing.Windup && p.AttackTimer > swing.Recovery
}

// PlayerHitbox derives the player's attack hitbox from its facing
func (c *Combat) PlayerHitbox(p *entity.Player) (x, y, w, h float64) {
	swing := c.cfg.Player.Swing
	px, py, pw, ph := p.Box()
	return attackHitbox(px, py, pw, ph, p.Facing, swing.Reach, swing.Span)
}

// EnemyHitbox derives an enemy's attack hitbox from its facing
func (c *Combat) EnemyHitbox(e *entity.Enemy) (x, y, w, h float64) {
	ex, ey, ew, eh := e.Box()
	return attackHitbox(ex, ey, ew, eh, e.Facing, e.SwingReach, e.SwingSpan)
}

// attackHitbox places a swing rectangle against one side of the body
// box. Cardinal facings extend the rect by reach along the facing axis
// with the span centered across it; the long axis flips between
// horizontal and vertical facings. Diagonals offset by reach/sqrt(2)
// on each axis and use a square box sized to combine the two
// contributing cardinal rects.
func attackHitbox(bx, by, bw, bh float64, facing entity.Direction, reach, span float64) (x, y, w, h float64) {
	switch facing {
	case entity.DirEast:
		return bx + bw, by + (bh-span)/2, reach, span
	case entity.DirWest:
		return bx - reach, by + (bh-span)/2, reach, span
	case entity.DirSouth:
		return bx + (bw-span)/2, by + bh, span, reach
	case entity.DirNorth:
		return bx + (bw-span)/2, by - reach, span, reach
	}

	d := reach * math.Sqrt2 / 2
	side := (reach + span) / 2
	sx, sy := facing.Offsets()
	cx := bx + bw/2 + float64(sx)*(bw/2+d)
	cy := by + bh/2 + float64(sy)*(bh/2+d)
	return cx - side/2, cy - side/2, side, side
}

// PlayerStrikes runs player-attacks-enemies hit detection for this
// frame. Each enemy is damaged at most once per swing; knockback is
// resolved against the grid so it respects walls.
func (c *Combat) PlayerStrikes(p *entity.Player, enemies []*entity.Enemy) {
	if !c.PlayerSwingActive(p) {
		return
	}

	hx, hy, hw, hh := c.PlayerHitbox(p)
	swing := c.cfg.Player.Swing
	pcx, pcy := p.Center()

	for _, e := range enemies {
		if !e.Alive() || e.IsInvincible() || p.AlreadyHit(e.ID) {
			continue
		}
		ex, ey, ew, eh := e.Box()
		if !rectsOverlap(hx, hy, hw, hh, ex, ey, ew, eh) {
			continue
		}

		p.MarkHit(e.ID)
		died := e.TakeDamage(swing.Damage, c.cfg.Combat.EnemyIframes)
		c.knockbackEnemy(e, pcx, pcy, swing.Knockback)

		ecx, ecy := e.Center()
		c.bus.Publish(event.Event{Kind: event.HitLanded, X: ecx, Y: ecy, Value: swing.Damage})
		if died {
			p.Gold += e.Reward
			c.bus.Publish(event.Event{Kind: event.EnemyDied, X: ecx, Y: ecy, Value: e.Reward})
		}
	}
}

// EnemyStrikes runs enemies-attack-player hit detection for this
// frame. An enemy connects only inside its swing's meaty window, and
// at most once per swing.
func (c *Combat) EnemyStrikes(p *entity.Player, enemies []*entity.Enemy) {
	px, py, pw, ph := p.Box()

	for _, e := range enemies {
		if !e.Alive() || !e.InConnectWindow() || e.HitPlayer {
			continue
		}
		if p.IsInvincible() {
			continue
		}
		hx, hy, hw, hh := c.EnemyHitbox(e)
		if !rectsOverlap(hx, hy, hw, hh, px, py, pw, ph) {
			continue
		}

		e.HitPlayer = true
		p.TakeDamage(e.Damage, c.cfg.Combat.PlayerIframes)
		ecx, ecy := e.Center()
		c.knockbackPlayer(p, ecx, ecy, e.Knockback)

		pcx, pcy := p.Center()
		c.bus.Publish(event.Event{Kind: event.HitLanded, X: pcx, Y: pcy, Value: e.Damage})
	}
}

func (c *Combat) knockbackEnemy(e *entity.Enemy, fromX, fromY, force float64) {
	ecx, ecy := e.Center()
	dx, dy, ok := awayFrom(fromX, fromY, ecx, ecy, force)
	if !ok {
		return
	}
	e.X, e.Y = c.resolver.Move(e.X, e.Y, e.W, e.H, dx, dy)
}

func (c *Combat) knockbackPlayer(p *entity.Player, fromX, fromY, force float64) {
	pcx, pcy := p.Center()
	dx, dy, ok := awayFrom(fromX, fromY, pcx, pcy, force)
	if !ok {
		return
	}
	p.X, p.Y = c.resolver.Move(p.X, p.Y, p.W, p.H, dx, dy)
}

// awayFrom builds a knockback delta pointing from the attacker to the
// defender. Coincident positions short-circuit to no movement instead
// of propagating NaN.
func awayFrom(fromX, fromY, toX, toY, force float64) (dx, dy float64, ok bool) {
	vx := toX - fromX
	vy := toY - fromY
	dist := math.Hypot(vx, vy)
	if dist == 0 {
		return 0, 0, false
	}
	return vx / dist * force, vy / dist * force, true
}

func rectsOverlap(x1, y1, w1, h1, x2, y2, w2, h2 float64) bool {
	return x1 < x2+w2 && x1+w1 > x2 && y1 < y2+h2 && y1+h1 > y2
}
