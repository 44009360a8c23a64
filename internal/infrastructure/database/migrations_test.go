package database

import (
	"context"
	"testing"
)

func TestMigrate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	// The real migration files live in the migrations package; here the
	// embedded filesystem is unset, so Migrate must still create the
	// bookkeeping table and succeed as a no-op.
	t.Run("no embedded migrations is a no-op", func(t *testing.T) {
		if err := db.Migrate(ctx); err != nil {
			t.Errorf("Migrate() error = %v", err)
		}
	})

	t.Run("migrations table is created", func(t *testing.T) {
		if err := db.Migrate(ctx); err != nil {
			t.Fatalf("Migrate() error = %v", err)
		}
		var name string
		err := db.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type='table' AND name='schema_migrations'",
		).Scan(&name)
		if err != nil {
			t.Fatalf("schema_migrations table missing: %v", err)
		}
	})
}

func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		wantVersion string
		wantOK      bool
	}{
		{
			name:        "valid up migration",
			filename:    "20260118_120000_initial_schema.up.sql",
			wantVersion: "20260118_120000",
			wantOK:      true,
		},
		{
			name:     "down migration ignored",
			filename: "20260118_120000_initial_schema.down.sql",
			wantOK:   false,
		},
		{
			name:     "not sql",
			filename: "README.md",
			wantOK:   false,
		},
		{
			name:     "missing version parts",
			filename: "schema.up.sql",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, ok := parseMigrationFilename(tt.filename)
			if ok != tt.wantOK {
				t.Fatalf("parseMigrationFilename(%q) ok = %v, want %v", tt.filename, ok, tt.wantOK)
			}
			if ok && version != tt.wantVersion {
				t.Errorf("version = %q, want %q", version, tt.wantVersion)
			}
		})
	}
}

func TestExtractMigrationName(t *testing.T) {
	got := extractMigrationName("20260118_120000_event_journal.up.sql")
	if got != "event_journal" {
		t.Errorf("extractMigrationName() = %q, want %q", got, "event_journal")
	}
}
