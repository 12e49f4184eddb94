package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/zirar/internal/core/domain"
	"github.com/custodia-labs/zirar/internal/core/ports/driven"
)

// Ensure runHistoryStore implements the interface.
var _ driven.RunHistoryStore = (*runHistoryStore)(nil)

// timeLayout keeps sub-second precision so runs ending in the same second
// still sort correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// runHistoryStore implements driven.RunHistoryStore.
type runHistoryStore struct {
	store *Store
}

// Save stores or replaces a run record.
func (s *runHistoryStore) Save(ctx context.Context, record domain.RunRecord) error {
	if record.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO run_history (
			id, archive_path, password_list_path, format, enhanced,
			outcome, message, attempts, total, started_at, ended_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			archive_path = excluded.archive_path,
			password_list_path = excluded.password_list_path,
			format = excluded.format,
			enhanced = excluded.enhanced,
			outcome = excluded.outcome,
			message = excluded.message,
			attempts = excluded.attempts,
			total = excluded.total,
			started_at = excluded.started_at,
			ended_at = excluded.ended_at
	`, record.ID,
		record.ArchivePath,
		record.PasswordListPath,
		record.Format.String(),
		boolToInt(record.Enhanced),
		string(record.Outcome),
		nullString(record.Message),
		record.Attempts,
		record.Total,
		formatTime(record.StartedAt),
		formatTime(record.EndedAt))

	if err != nil {
		return fmt.Errorf("saving run record: %w", err)
	}
	return nil
}

// Get retrieves a run record by ID.
func (s *runHistoryStore) Get(ctx context.Context, id string) (*domain.RunRecord, error) {
	row := s.store.db.QueryRowContext(ctx, selectRunRecord+` WHERE id = ?`, id)

	record, err := scanRunRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// List returns records ordered by end time, most recent first.
func (s *runHistoryStore) List(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	// SQLite treats a negative LIMIT as no limit.
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.store.db.QueryContext(ctx,
		selectRunRecord+` ORDER BY ended_at DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying run history: %w", err)
	}
	defer rows.Close()

	var records []domain.RunRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		record, err := scanRunRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run history: %w", err)
	}

	return records, nil
}

// Clear removes all records.
func (s *runHistoryStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM run_history"); err != nil {
		return fmt.Errorf("clearing run history: %w", err)
	}
	return nil
}

const selectRunRecord = `
	SELECT id, archive_path, password_list_path, format, enhanced,
		outcome, message, attempts, total, started_at, ended_at
	FROM run_history`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRunRecord scans a run record row. sql.ErrNoRows is returned unwrapped.
func scanRunRecord(row rowScanner) (*domain.RunRecord, error) {
	var record domain.RunRecord
	var format, outcome, startedAt, endedAt string
	var message sql.NullString
	var enhanced int

	err := row.Scan(&record.ID, &record.ArchivePath, &record.PasswordListPath,
		&format, &enhanced, &outcome, &message,
		&record.Attempts, &record.Total, &startedAt, &endedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning run record: %w", err)
	}

	record.Format = domain.ArchiveFormat(format)
	record.Enhanced = enhanced == 1
	record.Outcome = domain.RunOutcome(outcome)
	if message.Valid {
		record.Message = message.String
	}
	record.StartedAt = parseTime(startedAt)
	record.EndedAt = parseTime(endedAt)

	return &record, nil
}

// formatTime stores times in UTC so text order matches time order.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
