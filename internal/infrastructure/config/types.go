package config

// GameConfig is the root config for game.yaml
type GameConfig struct {
	Display DisplayConfig          `yaml:"display"`
	Clock   ClockConfig            `yaml:"clock"`
	Camera  CameraConfig           `yaml:"camera"`
	Combat  CombatConfig           `yaml:"combat"`
	AI      AIConfig               `yaml:"ai"`
	Player  PlayerConfig           `yaml:"player"`
	Enemies map[string]EnemyConfig `yaml:"enemies"`
}

type DisplayConfig struct {
	ScreenWidth  int `yaml:"screenWidth"`
	ScreenHeight int `yaml:"screenHeight"`
	Scale        int `yaml:"scale"`
	Framerate    int `yaml:"framerate"`
}

// ClockConfig bounds the smoothed frame delta. Deltas are in seconds.
type ClockConfig struct {
	MinDelta     float64 `yaml:"minDelta"`
	MaxDelta     float64 `yaml:"maxDelta"`
	Alpha        float64 `yaml:"alpha"`
	MedianWindow int     `yaml:"medianWindow"`
}

type CameraConfig struct {
	Smoothing float64 `yaml:"smoothing"`
}

// CombatConfig holds combatant-independent combat tuning
type CombatConfig struct {
	PlayerIframes float64 `yaml:"playerIframes"`
	EnemyIframes  float64 `yaml:"enemyIframes"`
}

type AIConfig struct {
	WaypointEpsilon float64 `yaml:"waypointEpsilon"`
	DriftInterval   float64 `yaml:"driftInterval"`
	DriftSpeed      float64 `yaml:"driftSpeed"`
}

type PlayerConfig struct {
	Width        float64     `yaml:"width"`
	Height       float64     `yaml:"height"`
	Speed        float64     `yaml:"speed"`
	MaxHealth    int         `yaml:"maxHealth"`
	RevealRadius float64     `yaml:"revealRadius"`
	Swing        SwingConfig `yaml:"swing"`
}

// SwingConfig describes the player's melee swing. The single Duration
// countdown covers windup, active and recovery phases; Windup and
// Recovery mark the thresholds of the active window.
type SwingConfig struct {
	Damage    int     `yaml:"damage"`
	Reach     float64 `yaml:"reach"`
	Span      float64 `yaml:"span"`
	Duration  float64 `yaml:"duration"`
	Windup    float64 `yaml:"windup"`
	Recovery  float64 `yaml:"recovery"`
	Cooldown  float64 `yaml:"cooldown"`
	Knockback float64 `yaml:"knockback"`
}

type EnemyConfig struct {
	Width       float64          `yaml:"width"`
	Height      float64          `yaml:"height"`
	Speed       float64          `yaml:"speed"`
	MaxHealth   int              `yaml:"maxHealth"`
	Damage      int              `yaml:"damage"`
	Reward      int              `yaml:"reward"`
	DetectRange float64          `yaml:"detectRange"`
	LoseRange   float64          `yaml:"loseRange"`
	AttackRange float64          `yaml:"attackRange"`
	PatrolSpeed float64          `yaml:"patrolSpeed"`
	ChaseSpeed  float64          `yaml:"chaseSpeed"`
	Swing       EnemySwingConfig `yaml:"swing"`
}

// EnemySwingConfig describes an enemy swing. ConnectFrom/ConnectUntil
// bracket the sub-interval of the countdown during which a hit may
// land: the swing connects while remaining time is in
// (connectUntil, connectFrom].
type EnemySwingConfig struct {
	Reach        float64 `yaml:"reach"`
	Span         float64 `yaml:"span"`
	Duration     float64 `yaml:"duration"`
	ConnectFrom  float64 `yaml:"connectFrom"`
	ConnectUntil float64 `yaml:"connectUntil"`
	Cooldown     float64 `yaml:"cooldown"`
	Knockback    float64 `yaml:"knockback"`
}
