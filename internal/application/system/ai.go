package system

import (
	"math"
	"math/rand"

	"github.com/veilgate/duskrealm/internal/domain/entity"
	"github.com/veilgate/duskrealm/internal/infrastructure/config"
)

// AI drives the per-enemy behavior state machine. Movement runs in the
// enemy movement phase of the frame; state transitions run after
// combat so they see the player's final position for the frame.
type AI struct {
	cfg      *config.GameConfig
	grid     *entity.TileGrid
	resolver *Resolver
	combat   *Combat
	rng      *rand.Rand
}

// NewAI creates the AI system
func NewAI(cfg *config.GameConfig, grid *entity.TileGrid, resolver *Resolver, combat *Combat, rng *rand.Rand) *AI {
	return &AI{cfg: cfg, grid: grid, resolver: resolver, combat: combat, rng: rng}
}

// Move advances the enemy's position according to its current state.
// An enemy mid-swing never moves.
func (a *AI) Move(e *entity.Enemy, p *entity.Player, dt float64) {
	if e.Attacking {
		return
	}

	switch e.State {
	case entity.AIIdle:
		a.drift(e, dt)
	case entity.AIPatrol:
		a.patrol(e, dt)
	case entity.AIChase:
		a.chase(e, p, dt)
	case entity.AIAttack:
		a.face(e, p)
	}
}

// Transition updates the enemy's behavior state from its distance to
// the player and the fog-of-war mask. Chase entry and exit use
// distinct thresholds (loseRange > detectRange) to avoid oscillation,
// and an enemy on an unrevealed tile never activates. An enemy with no
// patrol route never leaves idle: it drifts but does not escalate.
func (a *AI) Transition(e *entity.Enemy, p *entity.Player) {
	pcx, pcy := p.Center()
	ecx, ecy := e.Center()
	dist := math.Hypot(pcx-ecx, pcy-ecy)

	switch e.State {
	case entity.AIIdle:
		if len(e.Patrol) == 0 {
			return
		}
		if a.activated(e, dist) {
			e.State = entity.AIChase
		} else {
			e.State = entity.AIPatrol
		}
	case entity.AIPatrol:
		if a.activated(e, dist) {
			e.State = entity.AIChase
		}
	case entity.AIChase:
		if dist > e.LoseRange {
			e.State = a.restState(e)
		} else if dist <= e.AttackRange && a.combat.StartEnemySwing(e) {
			e.State = entity.AIAttack
		}
	case entity.AIAttack:
		if !e.Attacking {
			if dist > e.LoseRange {
				e.State = a.restState(e)
			} else {
				e.State = entity.AIChase
			}
		}
	}
}

// activated reports whether the enemy may notice the player: within
// detection range and standing on explored fog
func (a *AI) activated(e *entity.Enemy, dist float64) bool {
	if dist >= e.DetectRange {
		return false
	}
	ecx, ecy := e.Center()
	return a.grid.IsRevealed(a.grid.TileIndex(ecx), a.grid.TileIndex(ecy))
}

func (a *AI) restState(e *entity.Enemy) entity.AIState {
	if len(e.Patrol) > 0 {
		return entity.AIPatrol
	}
	return entity.AIIdle
}

// drift wanders the idle enemy in a random direction, pausing between
// bursts
func (a *AI) drift(e *entity.Enemy, dt float64) {
	if e.DriftTimer <= 0 {
		e.DriftTimer = a.cfg.AI.DriftInterval
		e.Drifting = a.rng.Intn(2) == 0
		if e.Drifting {
			e.Facing = entity.Direction(a.rng.Intn(8))
		}
	}
	if !e.Drifting {
		return
	}
	vx, vy := e.Facing.Vector()
	step := e.Speed * a.cfg.AI.DriftSpeed * dt
	e.X, e.Y = a.resolver.Move(e.X, e.Y, e.W, e.H, vx*step, vy*step)
}

// patrol walks the cyclic waypoint loop at reduced speed
func (a *AI) patrol(e *entity.Enemy, dt float64) {
	if len(e.Patrol) == 0 {
		return
	}

	wp := e.Patrol[e.WaypointIdx]
	ecx, ecy := e.Center()
	dx := wp.X - ecx
	dy := wp.Y - ecy
	dist := math.Hypot(dx, dy)

	if dist < a.cfg.AI.WaypointEpsilon {
		e.WaypointIdx = (e.WaypointIdx + 1) % len(e.Patrol)
		return
	}

	step := e.Speed * e.PatrolSpeed * dt
	if step > dist {
		step = dist
	}
	mx := dx / dist * step
	my := dy / dist * step
	e.X, e.Y = a.resolver.Move(e.X, e.Y, e.W, e.H, mx, my)
	if d, ok := entity.DirectionFromAxes(dx, dy); ok {
		e.Facing = d
	}
}

// chase moves straight toward the player at increased speed. A player
// exactly on top of the enemy makes this frame a no-op rather than
// dividing by zero.
func (a *AI) chase(e *entity.Enemy, p *entity.Player, dt float64) {
	pcx, pcy := p.Center()
	ecx, ecy := e.Center()
	dx := pcx - ecx
	dy := pcy - ecy
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}

	step := e.Speed * e.ChaseSpeed * dt
	mx := dx / dist * step
	my := dy / dist * step
	e.X, e.Y = a.resolver.Move(e.X, e.Y, e.W, e.H, mx, my)
	a.face(e, p)
}

func (a *AI) face(e *entity.Enemy, p *entity.Player) {
	pcx, pcy := p.Center()
	ecx, ecy := e.Center()
	if d, ok := entity.DirectionFromAxes(pcx-ecx, pcy-ecy); ok {
		e.Facing = d
	}
}
