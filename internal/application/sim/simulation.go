// Package sim owns the core update loop: the player, the live enemy
// list, and the fixed per-frame ordering of movement, combat, AI, fog
// and camera.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/veilgate/duskrealm/internal/application/system"
	"github.com/veilgate/duskrealm/internal/domain/entity"
	"github.com/veilgate/duskrealm/internal/event"
	"github.com/veilgate/duskrealm/internal/infrastructure/config"
	"github.com/veilgate/duskrealm/internal/worldgen"
)

// Simulation is the top-level controller. It exclusively owns the
// Player and the live enemy list; the grid is shared read-only with
// the collision, AI and camera systems.
type Simulation struct {
	cfg      *config.GameConfig
	worldCfg *config.WorldConfig

	grid    *entity.TileGrid
	player  *entity.Player
	enemies []*entity.Enemy

	resolver *system.Resolver
	combat   *system.Combat
	ai       *system.AI
	camera   *system.Camera
	clock    *system.Clock
	bus      *event.Bus

	seed int64
	over bool
}

// New generates the world from the seed and assembles the systems
func New(cfg *config.GameConfig, worldCfg *config.WorldConfig, seed int64, bus *event.Bus) (*Simulation, error) {
	grid, err := worldgen.NewGenerator(worldCfg, seed).Generate()
	if err != nil {
		return nil, err
	}

	pc := cfg.Player
	player := entity.NewPlayer(worldCfg.Spawn.X, worldCfg.Spawn.Y, pc.Width, pc.Height, pc.Speed, pc.MaxHealth)

	resolver := system.NewResolver(grid)
	combat := system.NewCombat(cfg, resolver, bus)
	ai := system.NewAI(cfg, grid, resolver, combat, rand.New(rand.NewSource(seed)))

	s := &Simulation{
		cfg:      cfg,
		worldCfg: worldCfg,
		grid:     grid,
		player:   player,
		resolver: resolver,
		combat:   combat,
		ai:       ai,
		clock:    system.NewClock(cfg.Clock),
		bus:      bus,
		seed:     seed,
	}

	if err := s.spawnEnemies(); err != nil {
		return nil, err
	}

	pcx, pcy := player.Center()
	grid.RevealAround(pcx, pcy, cfg.Player.RevealRadius)
	s.camera = system.NewCamera(cfg.Display.ScreenWidth, cfg.Display.ScreenHeight,
		cfg.Camera.Smoothing, pcx, pcy, grid.PixelWidth(), grid.PixelHeight())

	return s, nil
}

// spawnEnemies creates the live enemy list from the world config's
// fixed spawn coordinates. IDs follow declaration order, which keeps
// them stable for saves and replays.
func (s *Simulation) spawnEnemies() error {
	var id entity.EntityID
	for _, region := range s.worldCfg.Regions {
		for _, spawn := range region.Enemies {
			kind, ok := s.cfg.Enemies[spawn.Type]
			if !ok {
				return fmt.Errorf("sim: unknown enemy type %q", spawn.Type)
			}
			id++
			e := &entity.Enemy{
				ID:            id,
				Kind:          spawn.Type,
				X:             spawn.X,
				Y:             spawn.Y,
				W:             kind.Width,
				H:             kind.Height,
				Facing:        entity.DirSouth,
				Speed:         kind.Speed,
				Health:        kind.MaxHealth,
				MaxHealth:     kind.MaxHealth,
				Damage:        kind.Damage,
				Reward:        kind.Reward,
				DetectRange:   kind.DetectRange,
				LoseRange:     kind.LoseRange,
				AttackRange:   kind.AttackRange,
				PatrolSpeed:   kind.PatrolSpeed,
				ChaseSpeed:    kind.ChaseSpeed,
				SwingDuration: kind.Swing.Duration,
				SwingCooldown: kind.Swing.Cooldown,
				SwingReach:    kind.Swing.Reach,
				SwingSpan:     kind.Swing.Span,
				Knockback:     kind.Swing.Knockback,
				ConnectFrom:   kind.Swing.ConnectFrom,
				ConnectUntil:  kind.Swing.ConnectUntil,
				State:         entity.AIIdle,
			}
			for _, wp := range spawn.Patrol {
				e.Patrol = append(e.Patrol, entity.Waypoint{X: wp.X, Y: wp.Y})
			}
			s.enemies = append(s.enemies, e)
		}
	}
	return nil
}

// Step advances the simulation by one frame. The ordering is fixed:
// timers → realm toggle → player move → enemy moves → player strikes →
// enemy strikes → AI transitions → fog reveal → camera. Combat must
// see post-movement positions and AI must see the player's final
// position for the frame.
func (s *Simulation) Step(in system.InputState, rawDelta float64) {
	if s.over {
		return
	}

	dt := s.clock.Tick(rawDelta)

	s.player.TickTimers(dt)
	for _, e := range s.enemies {
		e.TickTimers(dt)
	}

	if in.ToggleRealm {
		realm := s.grid.ToggleRealm()
		s.bus.Publish(event.Event{Kind: event.RealmToggled, Value: int(realm)})
	}
	if in.Attack {
		s.combat.StartPlayerSwing(s.player)
	}

	s.movePlayer(in, dt)
	for _, e := range s.enemies {
		s.ai.Move(e, s.player, dt)
	}

	s.combat.PlayerStrikes(s.player, s.enemies)
	s.compactEnemies()
	s.combat.EnemyStrikes(s.player, s.enemies)

	for _, e := range s.enemies {
		s.ai.Transition(e, s.player)
	}

	pcx, pcy := s.player.Center()
	s.grid.RevealAround(pcx, pcy, s.cfg.Player.RevealRadius)
	s.camera.Update(pcx, pcy, s.grid.PixelWidth(), s.grid.PixelHeight())

	if s.player.Health <= 0 {
		s.over = true
		s.bus.Publish(event.Event{Kind: event.PlayerDied, X: pcx, Y: pcy})
	}
}

func (s *Simulation) movePlayer(in system.InputState, dt float64) {
	dx, dy := in.MoveAxes()
	if d, ok := entity.DirectionFromAxes(dx, dy); ok {
		s.player.Facing = d
	}
	if dx == 0 && dy == 0 {
		return
	}

	step := s.player.Speed * dt
	mx, my := system.NormalizeDiagonal(dx*step, dy*step)
	s.player.X, s.player.Y = s.resolver.Move(s.player.X, s.player.Y, s.player.W, s.player.H, mx, my)
}

// compactEnemies removes dead enemies from the live list so later
// phases of this frame, and every later frame, never see them
func (s *Simulation) compactEnemies() {
	alive := s.enemies[:0]
	for _, e := range s.enemies {
		if e.Alive() {
			alive = append(alive, e)
		}
	}
	s.enemies = alive
}

// Player returns the player for read-only rendering access
func (s *Simulation) Player() *entity.Player { return s.player }

// Enemies returns the live enemy list for read-only rendering access
func (s *Simulation) Enemies() []*entity.Enemy { return s.enemies }

// Grid returns the shared tile grid
func (s *Simulation) Grid() *entity.TileGrid { return s.grid }

// Camera returns the camera
func (s *Simulation) Camera() *system.Camera { return s.camera }

// Combat returns the combat controller (the renderer draws active
// swing hitboxes from it)
func (s *Simulation) Combat() *system.Combat { return s.combat }

// Seed returns the world seed
func (s *Simulation) Seed() int64 { return s.seed }

// Over reports whether the player has died
func (s *Simulation) Over() bool { return s.over }
