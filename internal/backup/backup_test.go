package backup

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pulsecheck/pulse/internal/constants"
	"github.com/pulsecheck/pulse/internal/models"
	"github.com/pulsecheck/pulse/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (string, *Manager) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "pulse.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	for _, day := range []string{"2024-06-18", "2024-06-19"} {
		if _, err := store.SaveHealthEntry(models.HealthEntry{UserID: "me", Day: day, Mood: 3}); err != nil {
			t.Fatalf("failed to insert test data: %v", err)
		}
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}

	mgr := NewManager(dbPath)
	clock := time.Date(2024, 6, 20, 9, 30, 0, 0, time.Local)
	mgr.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return dbPath, mgr
}

func countEntries(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM health_entries").Scan(&count); err != nil {
		t.Fatalf("failed to query database: %v", err)
	}
	return count
}

func TestCreate(t *testing.T) {
	_, mgr := setupTestDB(t)

	info, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Base(info.Path) != "pulse-20240620-0931.db" {
		t.Errorf("backup name = %s", filepath.Base(info.Path))
	}
	if info.Size == 0 {
		t.Error("backup size is 0")
	}
	if got := countEntries(t, info.Path); got != 2 {
		t.Errorf("expected 2 entries in backup, got %d", got)
	}
}

func TestCreate_NoDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("expected ErrNoDatabase, got %v", err)
	}
}

func TestCreate_SameMinute(t *testing.T) {
	_, mgr := setupTestDB(t)
	fixed := time.Date(2024, 6, 20, 9, 30, 15, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	var names []string
	for i := 0; i < 3; i++ {
		info, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		names = append(names, filepath.Base(info.Path))
	}

	want := []string{"pulse-20240620-0930.db", "pulse-20240620-093015.db", "pulse-20240620-093015-1.db"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("backup %d = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestRotation(t *testing.T) {
	_, mgr := setupTestDB(t)

	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups are not sorted newest first at %d", i)
		}
	}
	// the five oldest are gone
	if filepath.Base(backups[len(backups)-1].Path) != "pulse-20240620-0936.db" {
		t.Errorf("oldest kept = %s", filepath.Base(backups[len(backups)-1].Path))
	}
}

func TestList_IgnoresForeignFiles(t *testing.T) {
	_, mgr := setupTestDB(t)
	if err := os.MkdirAll(mgr.Dir(), 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "pulse-latest.db", "other-20240620-0930.db"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %v", backups)
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name   string
		want   time.Time
		wantOK bool
	}{
		{"pulse-20240620-0930.db", time.Date(2024, 6, 20, 9, 30, 0, 0, time.Local), true},
		{"pulse-20240620-093015.db", time.Date(2024, 6, 20, 9, 30, 15, 0, time.Local), true},
		{"pulse-20240620-093015-12.db", time.Date(2024, 6, 20, 9, 30, 15, 0, time.Local), true},
		{"pulse-20240620-093015-x.db", time.Time{}, false},
		{"pulse-20240620.db", time.Time{}, false},
		{"backup-20240620-0930.db", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseName(tt.name)
			if ok != tt.wantOK || !got.Equal(tt.want) {
				t.Errorf("parseName() = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRestore(t *testing.T) {
	dbPath, mgr := setupTestDB(t)

	info, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	if _, err := store.SaveHealthEntry(models.HealthEntry{UserID: "me", Day: "2024-06-20", Mood: 4}); err != nil {
		t.Fatal(err)
	}
	store.Close()
	if got := countEntries(t, dbPath); got != 3 {
		t.Fatalf("expected 3 entries before restore, got %d", got)
	}

	safety, err := mgr.Restore(info.Path)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got := countEntries(t, dbPath); got != 2 {
		t.Errorf("expected 2 entries after restore, got %d", got)
	}
	if safety.Path == "" || countEntries(t, safety.Path) != 3 {
		t.Errorf("safety backup missing or stale: %+v", safety)
	}
}

func TestRestore_Invalid(t *testing.T) {
	_, mgr := setupTestDB(t)

	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("expected error for missing backup")
	}

	junk := filepath.Join(t.TempDir(), "junk.db")
	if err := os.WriteFile(junk, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(junk); err == nil {
		t.Error("expected error for corrupted backup")
	}

	foreign := filepath.Join(t.TempDir(), "foreign.db")
	db, err := sql.Open("sqlite", foreign)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("CREATE TABLE tasks (id TEXT)"); err != nil {
		t.Fatal(err)
	}
	db.Close()
	if _, err := mgr.Restore(foreign); err == nil {
		t.Error("expected error for a database from another application")
	}
}

func TestRestore_NewerSchema(t *testing.T) {
	_, mgr := setupTestDB(t)
	info, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", info.Path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 999"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if _, err := mgr.Restore(info.Path); err == nil {
		t.Error("expected error for a backup from a newer version")
	}
}
