package backups

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pulsecheck/pulse/internal/cli"
	"github.com/pulsecheck/pulse/internal/models"
	"github.com/pulsecheck/pulse/internal/storage/postgres"
	"github.com/pulsecheck/pulse/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return cli.NewContext(store, nil), store
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("list on empty dir failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, store := setupTestDB(t)
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	mgr, _ := manager(ctx)
	backups, err := mgr.List()
	if err != nil || len(backups) != 1 {
		t.Fatalf("backups = %v, %v", backups, err)
	}
	name := filepath.Base(backups[0].Path)

	if _, err := store.SaveHealthEntry(models.HealthEntry{UserID: "me", Day: "2024-06-20", Mood: 3}); err != nil {
		t.Fatal(err)
	}

	// declined
	declined := &BackupRestoreCmd{BackupFile: name, in: strings.NewReader("n\n")}
	if err := declined.Run(ctx); err != nil {
		t.Fatalf("declined restore failed: %v", err)
	}
	if _, err := store.GetHealthEntry("me", "2024-06-20"); err != nil {
		t.Fatalf("declined restore changed the database: %v", err)
	}

	if err := (&BackupRestoreCmd{BackupFile: name, in: strings.NewReader("yes\n")}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetHealthEntry("me", "2024-06-20"); err == nil {
		t.Error("entry written after the backup survived the restore")
	}
}

func TestBackupRestore_NotFound(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := (&BackupRestoreCmd{BackupFile: "pulse-19990101-0000.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected an error for a missing backup")
	}
}

func TestBackup_PostgresUnsupported(t *testing.T) {
	ctx := cli.NewContext(postgres.New("postgres://localhost/pulse"), nil)
	if err := (&BackupCreateCmd{}).Run(ctx); err != errNotSQLite {
		t.Errorf("expected errNotSQLite, got %v", err)
	}
}
