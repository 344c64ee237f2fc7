// Package world provides tile maps for the delivery game: YAML map files,
// walkability queries, categorized spawn points, and a generated fallback map
// for when the file on disk is missing or invalid.
package world

import (
	"fmt"

	"github.com/tropigo/beachbites/internal/core"
)

// Tile is one terrain cell.
type Tile uint8

const (
	TileSand Tile = iota
	TileRoad
	TileWater
	TileBuilding
	TilePalm
)

var tileNames = map[string]Tile{
	"sand":     TileSand,
	"road":     TileRoad,
	"water":    TileWater,
	"building": TileBuilding,
	"palm":     TilePalm,
}

// Walkable reports whether the player and customers may stand on the tile.
func (t Tile) Walkable() bool {
	switch t {
	case TileSand, TileRoad:
		return true
	default:
		return false
	}
}

// Glyph returns the rune used to draw the tile.
func (t Tile) Glyph() rune {
	switch t {
	case TileRoad:
		return '='
	case TileWater:
		return '~'
	case TileBuilding:
		return '#'
	case TilePalm:
		return 'T'
	default:
		return '.'
	}
}

// Color returns the render color for the tile.
func (t Tile) Color() core.Color {
	switch t {
	case TileRoad:
		return core.ColorGray
	case TileWater:
		return core.ColorSea
	case TileBuilding:
		return core.ColorWhite
	case TilePalm:
		return core.ColorPalm
	default:
		return core.ColorSand
	}
}

// Spawn categories used by the simulation.
const (
	SpawnPlayer    = "player"
	SpawnCustomers = "customers"
)

// Map is a loaded or generated tile map.
type Map struct {
	Name   string
	Width  int
	Height int

	tiles  [][]Tile
	spawns map[string][]core.Point
}

// Tile returns the terrain at (x, y). Out-of-bounds coordinates read as water
// so movement code treats the border as solid.
func (m *Map) Tile(x, y int) Tile {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return TileWater
	}
	return m.tiles[y][x]
}

// Walkable reports whether (x, y) can be occupied.
func (m *Map) Walkable(x, y int) bool {
	return m.Tile(x, y).Walkable()
}

// SpawnPoints returns the spawn points registered for a category. The slice
// is shared; callers must not mutate it.
func (m *Map) SpawnPoints(category string) []core.Point {
	return m.spawns[category]
}

// PlayerSpawn returns the player start position, falling back to the map
// center when the map declares none.
func (m *Map) PlayerSpawn() core.Point {
	if pts := m.spawns[SpawnPlayer]; len(pts) > 0 {
		return pts[0]
	}
	return core.Point{X: m.Width / 2, Y: m.Height / 2}
}

func (m *Map) validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("world: map %q has empty dimensions", m.Name)
	}
	if len(m.tiles) != m.Height {
		return fmt.Errorf("world: map %q has %d rows, want %d", m.Name, len(m.tiles), m.Height)
	}
	for y, row := range m.tiles {
		if len(row) != m.Width {
			return fmt.Errorf("world: map %q row %d has %d tiles, want %d", m.Name, y, len(row), m.Width)
		}
	}
	for cat, pts := range m.spawns {
		for _, p := range pts {
			if !m.Walkable(p.X, p.Y) {
				return fmt.Errorf("world: map %q spawn %s at (%d,%d) is not walkable", m.Name, cat, p.X, p.Y)
			}
		}
	}
	if len(m.spawns[SpawnCustomers]) == 0 {
		return fmt.Errorf("world: map %q declares no customer spawn points", m.Name)
	}
	return nil
}
