package entity

import "math"

// EntityID is a unique identifier for an entity
type EntityID uint32

// TileType represents the terrain type of a single grid cell
type TileType int

const (
	TileGrass TileType = iota
	TileWater
	TileForest
	TileMountain
	TileDesert
	TileSnow
	TileMarsh
	TileVolcanic
	TileWall
	TileDoor
	TileBridge
	TilePath
	TileHouse
	TileShrine
	TileChest
	TileFlower
	TileFloor
)

// Passable reports whether entities may occupy this tile.
// Everything else about a tile type (palette, decoration) is a
// rendering concern.
func (t TileType) Passable() bool {
	switch t {
	case TileWater, TileForest, TileMountain, TileWall, TileHouse, TileShrine, TileChest:
		return false
	}
	return true
}

// String returns the tile type name used in world config files
func (t TileType) String() string {
	switch t {
	case TileGrass:
		return "grass"
	case TileWater:
		return "water"
	case TileForest:
		return "forest"
	case TileMountain:
		return "mountain"
	case TileDesert:
		return "desert"
	case TileSnow:
		return "snow"
	case TileMarsh:
		return "marsh"
	case TileVolcanic:
		return "volcanic"
	case TileWall:
		return "wall"
	case TileDoor:
		return "door"
	case TileBridge:
		return "bridge"
	case TilePath:
		return "path"
	case TileHouse:
		return "house"
	case TileShrine:
		return "shrine"
	case TileChest:
		return "chest"
	case TileFlower:
		return "flower"
	case TileFloor:
		return "floor"
	default:
		return "unknown"
	}
}

// TileTypeByName resolves a world config tile name to its TileType.
// Unknown names map to grass so a typo in a region fill degrades to
// open terrain instead of an impassable hole.
func TileTypeByName(name string) TileType {
	for t := TileGrass; t <= TileFloor; t++ {
		if t.String() == name {
			return t
		}
	}
	return TileGrass
}

// Direction is one of the 8 compass facings
type Direction int

const (
	DirNorth Direction = iota
	DirNorthEast
	DirEast
	DirSouthEast
	DirSouth
	DirSouthWest
	DirWest
	DirNorthWest
)

// String returns the direction name
func (d Direction) String() string {
	switch d {
	case DirNorth:
		return "north"
	case DirNorthEast:
		return "northeast"
	case DirEast:
		return "east"
	case DirSouthEast:
		return "southeast"
	case DirSouth:
		return "south"
	case DirSouthWest:
		return "southwest"
	case DirWest:
		return "west"
	case DirNorthWest:
		return "northwest"
	default:
		return "unknown"
	}
}

// Offsets returns the sign of the direction's movement on each axis
// (-1, 0 or 1). Y grows downward.
func (d Direction) Offsets() (dx, dy int) {
	switch d {
	case DirNorth:
		return 0, -1
	case DirNorthEast:
		return 1, -1
	case DirEast:
		return 1, 0
	case DirSouthEast:
		return 1, 1
	case DirSouth:
		return 0, 1
	case DirSouthWest:
		return -1, 1
	case DirWest:
		return -1, 0
	case DirNorthWest:
		return -1, -1
	default:
		return 0, 0
	}
}

// Diagonal reports whether the direction moves on both axes
func (d Direction) Diagonal() bool {
	dx, dy := d.Offsets()
	return dx != 0 && dy != 0
}

// Vector returns the unit movement vector for the direction.
// Diagonals are scaled by 1/sqrt(2) so all eight vectors have length 1.
func (d Direction) Vector() (vx, vy float64) {
	dx, dy := d.Offsets()
	vx, vy = float64(dx), float64(dy)
	if dx != 0 && dy != 0 {
		vx *= math.Sqrt2 / 2
		vy *= math.Sqrt2 / 2
	}
	return vx, vy
}

// DirectionFromAxes maps raw axis signs to a facing direction.
// ok is false when both axes are zero (no movement, keep prior facing).
func DirectionFromAxes(dx, dy float64) (Direction, bool) {
	sx, sy := 0, 0
	if dx > 0 {
		sx = 1
	} else if dx < 0 {
		sx = -1
	}
	if dy > 0 {
		sy = 1
	} else if dy < 0 {
		sy = -1
	}
	if sx == 0 && sy == 0 {
		return DirSouth, false
	}
	for d := DirNorth; d <= DirNorthWest; d++ {
		ox, oy := d.Offsets()
		if ox == sx && oy == sy {
			return d, true
		}
	}
	return DirSouth, false
}
