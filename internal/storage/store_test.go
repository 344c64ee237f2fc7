package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath, testLogger())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if !store.Live() {
		t.Error("File-backed store should be live")
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreOpenCreatesNestedDirs(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "deep", "nested", "test.db")

	store, err := Open(dbPath, testLogger())
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreDegradedFallback(t *testing.T) {
	// A path whose parent cannot be created forces the in-memory fallback.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	store, err := Open(filepath.Join(blocker, "sub", "test.db"), testLogger())
	if err != nil {
		t.Fatalf("Open() should degrade, not fail: %v", err)
	}
	defer store.Close()

	if store.Live() {
		t.Error("Store should report degraded persistence")
	}

	// The degraded store still has the full schema.
	version, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion() failed: %v", err)
	}
	if version != 3 {
		t.Errorf("Expected schema version 3 in degraded store, got %d", version)
	}
}

func TestMigrationsRecorded(t *testing.T) {
	store, err := OpenMemory(testLogger())
	if err != nil {
		t.Fatalf("OpenMemory() failed: %v", err)
	}
	defer store.Close()

	var names []string
	if err := store.DB().Select(&names,
		`SELECT name FROM schema_migrations ORDER BY version`); err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	want := []string{"initial_schema", "add_tutorial_complete", "save_games"}
	if len(names) != len(want) {
		t.Fatalf("Expected %d migrations, got %d", len(want), len(names))
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("Migration %d = %q, want %q", i, names[i], n)
		}
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	store, err := OpenMemory(testLogger())
	if err != nil {
		t.Fatalf("OpenMemory() failed: %v", err)
	}
	defer store.Close()

	// Re-running must be a no-op, not a duplicate-table failure.
	if err := store.ApplyPendingMigrations(); err != nil {
		t.Fatalf("Second ApplyPendingMigrations() failed: %v", err)
	}

	version, err := store.SchemaVersion()
	if err != nil {
		t.Fatal(err)
	}
	if version != 3 {
		t.Errorf("Expected schema version 3, got %d", version)
	}
}

func TestMigrationsSeedDefaults(t *testing.T) {
	store, err := OpenMemory(testLogger())
	if err != nil {
		t.Fatalf("OpenMemory() failed: %v", err)
	}
	defer store.Close()

	var profiles int
	if err := store.DB().Get(&profiles, `SELECT COUNT(*) FROM player_profile`); err != nil {
		t.Fatal(err)
	}
	if profiles != 1 {
		t.Errorf("Expected 1 seeded profile, got %d", profiles)
	}

	var stock int
	if err := store.DB().Get(&stock, `SELECT COUNT(*) FROM starting_stock`); err != nil {
		t.Fatal(err)
	}
	if stock != 4 {
		t.Errorf("Expected 4 seeded stock rows, got %d", stock)
	}

	// Migration 2 added tutorial_complete with default false.
	var complete int
	if err := store.DB().Get(&complete,
		`SELECT tutorial_complete FROM player_profile WHERE player_id = 1`); err != nil {
		t.Fatalf("tutorial_complete column missing: %v", err)
	}
	if complete != 0 {
		t.Errorf("Seeded profile should start ungraduated, got %d", complete)
	}
}

func TestMigrationsSurviveReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath, testLogger())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.Close()

	// Second open must see the recorded versions and apply nothing.
	store, err = Open(dbPath, testLogger())
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer store.Close()

	version, err := store.SchemaVersion()
	if err != nil {
		t.Fatal(err)
	}
	if version != 3 {
		t.Errorf("Expected schema version 3 after reopen, got %d", version)
	}
}

func TestRevertLastMigration(t *testing.T) {
	store, err := OpenMemory(testLogger())
	if err != nil {
		t.Fatalf("OpenMemory() failed: %v", err)
	}
	defer store.Close()

	if err := store.RevertLastMigration(); err != nil {
		t.Fatalf("RevertLastMigration() failed: %v", err)
	}

	version, err := store.SchemaVersion()
	if err != nil {
		t.Fatal(err)
	}
	if version != 2 {
		t.Errorf("Expected schema version 2 after revert, got %d", version)
	}

	// save_games should be gone.
	var n int
	if err := store.DB().Get(&n, `SELECT COUNT(*) FROM save_games`); err == nil {
		t.Error("save_games table should be dropped after revert")
	}

	// Reapplying brings it back.
	if err := store.ApplyPendingMigrations(); err != nil {
		t.Fatalf("Reapply failed: %v", err)
	}
	version, _ = store.SchemaVersion()
	if version != 3 {
		t.Errorf("Expected schema version 3 after reapply, got %d", version)
	}
}

func TestRevertThenReapplyMatchesFreshSchema(t *testing.T) {
	// Applying 1..3, reverting to 1, and reapplying must produce the same
	// column set as a fresh store.
	store, err := OpenMemory(testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := store.RevertLastMigration(); err != nil {
		t.Fatal(err)
	}
	if err := store.RevertLastMigration(); err != nil {
		t.Fatal(err)
	}
	if err := store.ApplyPendingMigrations(); err != nil {
		t.Fatal(err)
	}

	fresh, err := OpenMemory(testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer fresh.Close()

	columns := func(s *Store) []string {
		var cols []string
		rows, err := s.DB().Query(`SELECT name FROM pragma_table_info('player_profile') ORDER BY name`)
		if err != nil {
			t.Fatal(err)
		}
		defer rows.Close()
		for rows.Next() {
			var c string
			if err := rows.Scan(&c); err != nil {
				t.Fatal(err)
			}
			cols = append(cols, c)
		}
		return cols
	}

	a, b := columns(store), columns(fresh)
	if len(a) != len(b) {
		t.Fatalf("Column count mismatch: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("Column %d differs: %q vs %q", i, a[i], b[i])
		}
	}
}
