package lifelog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/db"
)

// ErrNotFound is returned when a lifelog with the requested ID does not exist.
var ErrNotFound = errors.New("lifelog not found")

// Store persists lifelogs in SQLite.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Put inserts or replaces a lifelog.
func (s *Store) Put(ctx context.Context, l *Lifelog) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lifelogs (id, title, markdown, start_time, end_time, updated_at)
		VALUES (?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			markdown = excluded.markdown,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			updated_at = datetime('now')`,
		l.ID, l.Title, l.Markdown, l.StartTime.UTC().Format(time.RFC3339), l.EndTime.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting lifelog %s: %w", l.ID, err)
	}
	return nil
}

// GetByID returns the lifelog with the given ID, or ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id string) (*Lifelog, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, markdown, start_time, end_time
		FROM lifelogs WHERE id = ?`, id)

	l, err := scanLifelog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning lifelog %s: %w", id, err)
	}
	return l, nil
}

// ListAll returns every lifelog ordered by start time ascending.
func (s *Store) ListAll(ctx context.Context) ([]*Lifelog, error) {
	return s.list(ctx, `
		SELECT id, title, markdown, start_time, end_time
		FROM lifelogs ORDER BY start_time ASC`)
}

// ListRange returns lifelogs whose start time falls within [from, to),
// ordered by start time ascending.
func (s *Store) ListRange(ctx context.Context, from, to time.Time) ([]*Lifelog, error) {
	return s.list(ctx, `
		SELECT id, title, markdown, start_time, end_time
		FROM lifelogs
		WHERE start_time >= ? AND start_time < ?
		ORDER BY start_time ASC`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
}

// Count returns the number of stored lifelogs.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lifelogs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting lifelogs: %w", err)
	}
	return n, nil
}

// Delete removes a lifelog. Deleting a missing ID is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM lifelogs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting lifelog %s: %w", id, err)
	}
	return nil
}

// Cursor returns the saved sync cursor for a source, or "" if none exists.
func (s *Store) Cursor(ctx context.Context, source string) (string, error) {
	var cursor string
	err := s.db.QueryRowContext(ctx, `SELECT cursor FROM sync_state WHERE source = ?`, source).Scan(&cursor)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading sync cursor for %s: %w", source, err)
	}
	return cursor, nil
}

// SetCursor saves the sync cursor for a source.
func (s *Store) SetCursor(ctx context.Context, source, cursor string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_state (source, cursor, last_synced_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(source) DO UPDATE SET
			cursor = excluded.cursor,
			last_synced_at = datetime('now')`,
		source, cursor)
	if err != nil {
		return fmt.Errorf("saving sync cursor for %s: %w", source, err)
	}
	return nil
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*Lifelog, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing lifelogs: %w", err)
	}
	defer rows.Close()

	var logs []*Lifelog
	for rows.Next() {
		l, err := scanLifelog(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning lifelog row: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLifelog(row scanner) (*Lifelog, error) {
	var l Lifelog
	var start, end string
	if err := row.Scan(&l.ID, &l.Title, &l.Markdown, &start, &end); err != nil {
		return nil, err
	}

	var err error
	if l.StartTime, err = time.Parse(time.RFC3339, start); err != nil {
		return nil, fmt.Errorf("parsing start_time %q: %w", start, err)
	}
	if l.EndTime, err = time.Parse(time.RFC3339, end); err != nil {
		return nil, fmt.Errorf("parsing end_time %q: %w", end, err)
	}
	return &l, nil
}
