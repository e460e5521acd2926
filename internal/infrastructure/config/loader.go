package config

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Bundle holds all loaded configurations
type Bundle struct {
	Game  *GameConfig
	World *WorldConfig
}

// Loader loads game configuration from YAML files using fs.FS
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a config loader rooted at a filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{fsys: os.DirFS(basePath)}
}

// NewFSLoader creates a config loader from an fs.FS (embedded configs)
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadGame loads and validates game.yaml
func (l *Loader) LoadGame() (*GameConfig, error) {
	data, err := fs.ReadFile(l.fsys, "game.yaml")
	if err != nil {
		return nil, fmt.Errorf("config: failed to read game.yaml: %w", err)
	}

	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse game.yaml: %w", err)
	}
	if err := validateGame(&cfg); err != nil {
		return nil, fmt.Errorf("config: game.yaml: %w", err)
	}

	return &cfg, nil
}

// LoadWorld loads and validates world.yaml
func (l *Loader) LoadWorld() (*WorldConfig, error) {
	data, err := fs.ReadFile(l.fsys, "world.yaml")
	if err != nil {
		return nil, fmt.Errorf("config: failed to read world.yaml: %w", err)
	}

	var cfg WorldConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse world.yaml: %w", err)
	}
	if err := validateWorld(&cfg); err != nil {
		return nil, fmt.Errorf("config: world.yaml: %w", err)
	}

	return &cfg, nil
}

// LoadAll loads game and world configs together
func (l *Loader) LoadAll() (*Bundle, error) {
	game, err := l.LoadGame()
	if err != nil {
		return nil, err
	}

	world, err := l.LoadWorld()
	if err != nil {
		return nil, err
	}

	for _, region := range world.Regions {
		for _, spawn := range region.Enemies {
			if _, ok := game.Enemies[spawn.Type]; !ok {
				return nil, fmt.Errorf("config: region %q spawns unknown enemy type %q", region.Name, spawn.Type)
			}
		}
	}

	return &Bundle{Game: game, World: world}, nil
}

func validateGame(cfg *GameConfig) error {
	if cfg.Clock.MinDelta <= 0 || cfg.Clock.MaxDelta <= cfg.Clock.MinDelta {
		return fmt.Errorf("clock delta bounds invalid: min=%v max=%v", cfg.Clock.MinDelta, cfg.Clock.MaxDelta)
	}
	if cfg.Player.Speed <= 0 {
		return fmt.Errorf("player speed must be positive")
	}
	if cfg.Player.Swing.Duration <= cfg.Player.Swing.Windup+cfg.Player.Swing.Recovery {
		return fmt.Errorf("player swing has no active window")
	}
	for kind, e := range cfg.Enemies {
		if e.LoseRange <= e.DetectRange {
			return fmt.Errorf("enemy %q: loseRange must exceed detectRange for chase hysteresis", kind)
		}
		s := e.Swing
		if s.ConnectFrom > s.Duration || s.ConnectUntil >= s.ConnectFrom {
			return fmt.Errorf("enemy %q: connect window (%v, %v] outside swing duration %v", kind, s.ConnectUntil, s.ConnectFrom, s.Duration)
		}
	}
	return nil
}

func validateWorld(cfg *WorldConfig) error {
	if cfg.Size.Width <= 0 || cfg.Size.Height <= 0 {
		return fmt.Errorf("world size invalid: %dx%d", cfg.Size.Width, cfg.Size.Height)
	}
	if cfg.Size.TileSize <= 0 {
		return fmt.Errorf("tile size must be positive, got %d", cfg.Size.TileSize)
	}
	for _, r := range cfg.Regions {
		if r.Rect.W <= 0 || r.Rect.H <= 0 {
			return fmt.Errorf("region %q has empty rect", r.Name)
		}
	}
	return nil
}
