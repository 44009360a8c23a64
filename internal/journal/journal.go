package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/renholt/sidecodec-core/internal/hda"
)

const (
	defaultRecentLimit = 50
	maxRecentLimit     = 200
)

// Entry is one persisted amplifier event.
type Entry struct {
	ID        int64
	Slot      int
	Device    string
	Kind      string
	Detail    map[string]any
	CreatedAt time.Time
}

// SQLiteRepository stores amplifier events in the amp_events table.
// It satisfies the controller's event sink interface.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite amp event repository.
//
// Parameters:
//   - db: Open SQLite connection used for queries
//
// Returns:
//   - *SQLiteRepository: Repository instance ready for use
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// RecordAmpEvent inserts one controller event.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - ev: Controller event to persist
//
// Returns:
//   - error: nil on success, otherwise the underlying database error
func (r *SQLiteRepository) RecordAmpEvent(ctx context.Context, ev hda.Event) error {
	if ev.Kind == "" {
		return fmt.Errorf("event kind is required")
	}

	detail := map[string]any{}
	switch ev.Kind {
	case hda.EventPCMAction:
		detail["action"] = ev.Action.String()
	case hda.EventPlatformNotify:
		detail["value"] = ev.NotifyValue
	}

	detailJSON, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("marshalling event detail: %w", err)
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO amp_events (slot, device, kind, detail, created_at) VALUES (?, ?, ?, ?, ?)",
		ev.Slot,
		ev.Device,
		ev.Kind,
		string(detailJSON),
		at.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting amp event: %w", err)
	}

	return nil
}

// Recent returns the newest events, newest first.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - limit: Maximum entries to return (default 50, max 200)
//
// Returns:
//   - []Entry: Events ordered by created_at DESC
//   - error: nil on success, otherwise the underlying query error
func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, slot, device, kind, detail, created_at
		 FROM amp_events
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying amp events: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var entry Entry
		var detailJSON string
		var createdAt string

		if err := rows.Scan(&entry.ID, &entry.Slot, &entry.Device, &entry.Kind, &detailJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning amp event: %w", err)
		}

		if err := json.Unmarshal([]byte(detailJSON), &entry.Detail); err != nil {
			return nil, fmt.Errorf("unmarshalling event detail: %w", err)
		}

		timestamp, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		entry.CreatedAt = timestamp

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating amp events: %w", err)
	}

	return entries, nil
}

// Prune deletes events older than the given duration.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - olderThan: Duration to retain (events older than now-olderThan are deleted)
//
// Returns:
//   - int64: Number of rows deleted
//   - error: nil on success, otherwise the underlying database error
func (r *SQLiteRepository) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, fmt.Errorf("olderThan must be positive")
	}

	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339)
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM amp_events WHERE created_at < ?",
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting amp events: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}

	return rowsAffected, nil
}
