package sim

import "github.com/veilgate/duskrealm/internal/domain/entity"

// Snapshot is a storage-agnostic capture of the mutable progress
// state. The world itself is not stored: regenerating from Seed
// reproduces the same grid and enemy spawns, so only the player's
// progress and the set of dead enemies are needed.
type Snapshot struct {
	Seed        int64
	Realm       entity.Realm
	PlayerX     float64
	PlayerY     float64
	Health      int
	Gold        int
	DeadEnemies []entity.EntityID
}

// Snapshot captures the current progress state
func (s *Simulation) Snapshot() Snapshot {
	alive := make(map[entity.EntityID]struct{}, len(s.enemies))
	for _, e := range s.enemies {
		alive[e.ID] = struct{}{}
	}

	snap := Snapshot{
		Seed:    s.seed,
		Realm:   s.grid.Realm(),
		PlayerX: s.player.X,
		PlayerY: s.player.Y,
		Health:  s.player.Health,
		Gold:    s.player.Gold,
	}
	var id entity.EntityID
	for _, region := range s.worldCfg.Regions {
		for range region.Enemies {
			id++
			if _, ok := alive[id]; !ok {
				snap.DeadEnemies = append(snap.DeadEnemies, id)
			}
		}
	}
	return snap
}

// Restore applies a snapshot taken from a simulation built with the
// same seed and configs. The caller is responsible for constructing
// the simulation with snap.Seed before calling.
func (s *Simulation) Restore(snap Snapshot) {
	if s.grid.Realm() != snap.Realm {
		s.grid.ToggleRealm()
	}
	s.player.X = snap.PlayerX
	s.player.Y = snap.PlayerY
	s.player.Health = snap.Health
	s.player.Gold = snap.Gold

	dead := make(map[entity.EntityID]struct{}, len(snap.DeadEnemies))
	for _, id := range snap.DeadEnemies {
		dead[id] = struct{}{}
	}
	alive := s.enemies[:0]
	for _, e := range s.enemies {
		if _, ok := dead[e.ID]; !ok {
			alive = append(alive, e)
		}
	}
	s.enemies = alive

	pcx, pcy := s.player.Center()
	s.grid.RevealAround(pcx, pcy, s.cfg.Player.RevealRadius)
	s.camera.Snap(pcx, pcy, s.grid.PixelWidth(), s.grid.PixelHeight())
}
