package config

// WorldConfig is the root config for world.yaml. It is the world
// generation input: region fills, settlement anchors and enemy spawns
// are consumed once at world creation.
type WorldConfig struct {
	Name        string             `yaml:"name"`
	Size        WorldSizeConfig    `yaml:"size"`
	DefaultTile string             `yaml:"defaultTile"`
	Spawn       PositionConfig     `yaml:"spawn"`
	Regions     []RegionConfig     `yaml:"regions"`
	Settlements []SettlementConfig `yaml:"settlements"`
}

type WorldSizeConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	TileSize int `yaml:"tileSize"`
}

type PositionConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// RegionConfig fills a rectangular area with a primary tile type,
// optionally scattering detail tiles and placing enemy spawns
type RegionConfig struct {
	Name    string             `yaml:"name"`
	Rect    TileRectConfig     `yaml:"rect"`
	Tile    string             `yaml:"tile"`
	Scatter []ScatterConfig    `yaml:"scatter"`
	Enemies []EnemySpawnConfig `yaml:"enemies"`
}

type TileRectConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// ScatterConfig sprinkles a detail tile over a region with an
// independent per-cell chance
type ScatterConfig struct {
	Tile   string  `yaml:"tile"`
	Chance float64 `yaml:"chance"`
}

// SettlementConfig anchors a stamped settlement. X, Y are the tile
// coordinates of the settlement center; paths are carved between
// consecutive settlements in declaration order.
type SettlementConfig struct {
	Name string `yaml:"name"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

type EnemySpawnConfig struct {
	Type   string           `yaml:"type"`
	X      float64          `yaml:"x"`
	Y      float64          `yaml:"y"`
	Patrol []PositionConfig `yaml:"patrol"`
}
