package database

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestOpen_RunsMigrations(t *testing.T) {
	db, err := Open(Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'trips'").Scan(&name)
	if err != nil {
		t.Fatalf("trips table missing: %v", err)
	}

	// running again is a no-op
	if err := NewMigrationManager(db, Migrations).RunMigrations(); err != nil {
		t.Fatalf("second RunMigrations failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("failed to count migrations: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 applied migration, got %d", count)
	}
}

func TestConfig_InMemory(t *testing.T) {
	if !(Config{Path: ":memory:"}).InMemory() {
		t.Error(":memory: should be in-memory")
	}
	if !(Config{Path: "file:trips?mode=memory&cache=shared"}).InMemory() {
		t.Error("mode=memory URI should be in-memory")
	}
	if (Config{Path: "./data/trips.db"}).InMemory() {
		t.Error("file path should not be in-memory")
	}
}

func TestMigrationManager_Order(t *testing.T) {
	db, err := Open(Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	fsys := fstest.MapFS{
		"migrations/010_add_notes.sql":    {Data: []byte("ALTER TABLE extra ADD COLUMN notes TEXT;")},
		"migrations/002_add_extra.sql":    {Data: []byte("CREATE TABLE extra (id INTEGER PRIMARY KEY);")},
		"migrations/001_create_trips.sql": {Data: []byte("SELECT 1;")},
	}
	m := NewMigrationManager(db, fsys)

	pending, err := m.Pending()
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}
	if len(pending) != 2 || pending[0].Version != 2 || pending[1].Version != 10 {
		t.Fatalf("unexpected pending migrations: %+v", pending)
	}
	if err := m.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}
	if _, err := db.Exec("INSERT INTO extra (id, notes) VALUES (1, 'ok')"); err != nil {
		t.Errorf("schema not applied in order: %v", err)
	}
}

func TestMigrationManager_InvalidName(t *testing.T) {
	db, err := Open(Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	fsys := fstest.MapFS{"migrations/create.sql": {Data: []byte("SELECT 1;")}}
	err = NewMigrationManager(db, fsys).RunMigrations()
	if err == nil || !strings.Contains(err.Error(), "version number") {
		t.Errorf("expected invalid name error, got %v", err)
	}
}
