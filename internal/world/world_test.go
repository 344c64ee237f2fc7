package world

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

const testMapYAML = `name: testbeach
legend:
  ".": sand
  "=": road
  "~": water
  "#": building
rows:
  - "~~~~~~~~"
  - "~......~"
  - "~======~"
  - "~..##..~"
  - "~~~~~~~~"
spawns:
  player:
    - {x: 2, y: 2}
  customers:
    - {x: 3, y: 1}
    - {x: 5, y: 2}
`

func testProvider() *Provider {
	return NewProvider(log.New(io.Discard), 40, 16)
}

func TestParseMap(t *testing.T) {
	m, err := Parse([]byte(testMapYAML))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if m.Width != 8 || m.Height != 5 {
		t.Errorf("dimensions = %dx%d, want 8x5", m.Width, m.Height)
	}
	if m.Tile(3, 2) != TileRoad {
		t.Errorf("Tile(3,2) = %v, want road", m.Tile(3, 2))
	}
	if m.Walkable(3, 3) {
		t.Error("building tile should not be walkable")
	}
	if m.Walkable(0, 0) {
		t.Error("water tile should not be walkable")
	}
	if got := m.PlayerSpawn(); got.X != 2 || got.Y != 2 {
		t.Errorf("PlayerSpawn() = %v", got)
	}
	if got := len(m.SpawnPoints(SpawnCustomers)); got != 2 {
		t.Errorf("customer spawn count = %d, want 2", got)
	}
}

func TestParseRejectsUnknownGlyph(t *testing.T) {
	bad := `name: bad
legend:
  ".": sand
rows:
  - ".?."
spawns:
  customers:
    - {x: 0, y: 0}
`
	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatal("expected error for glyph missing from legend")
	}
}

func TestParseRejectsSpawnOnWater(t *testing.T) {
	bad := `name: bad
legend:
  "~": water
  ".": sand
rows:
  - "~.."
spawns:
  customers:
    - {x: 0, y: 0}
`
	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatal("expected error for spawn on unwalkable tile")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "beach.yaml")
	if err := os.WriteFile(path, []byte(testMapYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	m, fallback := testProvider().Load(path)
	if fallback {
		t.Fatal("valid file should not trigger fallback")
	}
	if m.Name != "testbeach" {
		t.Errorf("Name = %q", m.Name)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	m, fallback := testProvider().Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !fallback {
		t.Fatal("missing file should trigger fallback")
	}
	if m == nil {
		t.Fatal("fallback map must be usable")
	}
	if len(m.SpawnPoints(SpawnCustomers)) == 0 {
		t.Error("fallback map must have customer spawns")
	}
}

func TestLoadInvalidYAMLFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("rows: {not a list"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, fallback := testProvider().Load(path)
	if !fallback {
		t.Error("invalid YAML should trigger fallback")
	}
}

func TestGeneratedMapIsPlayable(t *testing.T) {
	m := Generate(40, 16)

	if m.Width != 40 || m.Height != 16 {
		t.Fatalf("dimensions = %dx%d", m.Width, m.Height)
	}
	spawn := m.PlayerSpawn()
	if !m.Walkable(spawn.X, spawn.Y) {
		t.Error("player spawn must be walkable")
	}
	for _, p := range m.SpawnPoints(SpawnCustomers) {
		if !m.Walkable(p.X, p.Y) {
			t.Errorf("customer spawn (%d,%d) not walkable", p.X, p.Y)
		}
	}
	// Border is solid.
	if m.Walkable(0, 0) || m.Walkable(39, 15) {
		t.Error("border must be water")
	}
	// Out of bounds reads as solid.
	if m.Walkable(-1, 5) || m.Walkable(5, 99) {
		t.Error("out-of-bounds must not be walkable")
	}
	if err := m.validate(); err != nil {
		t.Errorf("generated map failed validation: %v", err)
	}
}
