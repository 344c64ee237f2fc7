package world

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/tropigo/beachbites/internal/core"
)

// mapFile is the on-disk YAML shape of a tile map.
type mapFile struct {
	Name   string            `yaml:"name"`
	Legend map[string]string `yaml:"legend"`
	Rows   []string          `yaml:"rows"`
	Spawns map[string][]pt   `yaml:"spawns"`
}

type pt struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Provider loads tile maps. A failed load never propagates: it yields the
// generated fallback map flagged as such, and the caller decides what to tell
// the player.
type Provider struct {
	logger *log.Logger

	fallbackW int
	fallbackH int
}

// NewProvider creates a Provider whose fallback maps use the given
// dimensions.
func NewProvider(logger *log.Logger, fallbackW, fallbackH int) *Provider {
	if fallbackW <= 0 {
		fallbackW = 40
	}
	if fallbackH <= 0 {
		fallbackH = 16
	}
	return &Provider{logger: logger, fallbackW: fallbackW, fallbackH: fallbackH}
}

// Load returns the map at path. When the file is missing, unparsable, or
// fails validation, it logs the cause and returns a generated fallback map
// with fallback=true.
func (p *Provider) Load(path string) (*Map, bool) {
	m, err := p.loadFile(path)
	if err != nil {
		p.logger.Warn("map load failed, using generated fallback", "path", path, "error", err)
		return Generate(p.fallbackW, p.fallbackH), true
	}
	return m, false
}

func (p *Provider) loadFile(path string) (*Map, error) {
	if path == "" {
		return nil, fmt.Errorf("world: no map path configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML tile map.
func Parse(data []byte) (*Map, error) {
	var f mapFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("world: parse map: %w", err)
	}
	if len(f.Rows) == 0 {
		return nil, fmt.Errorf("world: map %q has no rows", f.Name)
	}

	m := &Map{
		Name:   f.Name,
		Height: len(f.Rows),
		Width:  len([]rune(f.Rows[0])),
		spawns: make(map[string][]core.Point),
	}
	m.tiles = make([][]Tile, m.Height)
	for y, row := range f.Rows {
		runes := []rune(row)
		m.tiles[y] = make([]Tile, len(runes))
		for x, r := range runes {
			name, ok := f.Legend[string(r)]
			if !ok {
				return nil, fmt.Errorf("world: map %q row %d: glyph %q not in legend", f.Name, y, string(r))
			}
			tile, ok := tileNames[name]
			if !ok {
				return nil, fmt.Errorf("world: map %q legend maps %q to unknown tile %q", f.Name, string(r), name)
			}
			m.tiles[y][x] = tile
		}
	}
	for cat, pts := range f.Spawns {
		for _, sp := range pts {
			m.spawns[cat] = append(m.spawns[cat], core.Point{X: sp.X, Y: sp.Y})
		}
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Generate builds the fallback map: water border, sand interior, one
// horizontal road through the middle with customer spawns along it.
func Generate(width, height int) *Map {
	m := &Map{
		Name:   "fallback-beach",
		Width:  width,
		Height: height,
		spawns: make(map[string][]core.Point),
	}
	roadY := height / 2
	m.tiles = make([][]Tile, height)
	for y := 0; y < height; y++ {
		m.tiles[y] = make([]Tile, width)
		for x := 0; x < width; x++ {
			switch {
			case x == 0 || y == 0 || x == width-1 || y == height-1:
				m.tiles[y][x] = TileWater
			case y == roadY:
				m.tiles[y][x] = TileRoad
			default:
				m.tiles[y][x] = TileSand
			}
		}
	}
	m.spawns[SpawnPlayer] = []core.Point{{X: width / 2, Y: roadY}}
	for x := 2; x < width-2; x += 6 {
		m.spawns[SpawnCustomers] = append(m.spawns[SpawnCustomers], core.Point{X: x, Y: roadY})
	}
	return m
}
