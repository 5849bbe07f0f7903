package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"seratail/internal/sessionlog"
	"seratail/internal/watch"
)

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Play is one recorded track.
type Play struct {
	ID        int64
	Session   string
	Position  int
	Track     sessionlog.Track
	RunID     string
	FirstSeen time.Time
}

// Store manages play history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string

	mu       sync.Mutex
	recorded map[string]int
}

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("history path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, recorded: make(map[string]int)}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Name implements watch.Sink.
func (s *Store) Name() string { return "history" }

// Publish implements watch.Sink by recording the snapshot's tracks.
func (s *Store) Publish(ctx context.Context, snap watch.Snapshot) error {
	_, err := s.Record(ctx, snap.Session, snap.Tracks, snap.RunID, snap.UpdatedAt)
	return err
}

// Record stores tracks for session. Positions already written by this store
// are skipped, and rows from earlier runs are ignored by the unique key. It
// returns the number of rows inserted.
func (s *Store) Record(ctx context.Context, session string, tracks []sessionlog.Track, runID string, seen time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := s.recorded[session]
	if start > len(tracks) {
		// The log shrank; start over so new positions are not missed.
		start = 0
	}
	if start == len(tracks) {
		return 0, nil
	}

	timestamp := seen.UTC().Format(time.RFC3339Nano)
	inserted := 0
	err := retryOnBusy(ctx, func() error {
		inserted = 0
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin record tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		stmt, err := tx.PrepareContext(ctx,
			`INSERT OR IGNORE INTO plays (
                session_path, position, title, artist, style, run_id, first_seen
            ) VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for pos := start; pos < len(tracks); pos++ {
			t := tracks[pos]
			res, err := stmt.ExecContext(ctx, session, pos, t.Title, t.Artist, t.Style, runID, timestamp)
			if err != nil {
				return fmt.Errorf("insert play %d: %w", pos, err)
			}
			if n, err := res.RowsAffected(); err == nil {
				inserted += int(n)
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return 0, err
	}

	s.recorded[session] = len(tracks)
	return inserted, nil
}

// List returns up to limit plays, most recent first. A non-positive limit
// returns every play.
func (s *Store) List(ctx context.Context, limit int) ([]Play, error) {
	query := `SELECT id, session_path, position, title, artist, style, run_id, first_seen
        FROM plays ORDER BY first_seen DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list plays: %w", err)
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var (
			p         Play
			firstSeen string
		)
		if err := rows.Scan(&p.ID, &p.Session, &p.Position, &p.Track.Title, &p.Track.Artist, &p.Track.Style, &p.RunID, &firstSeen); err != nil {
			return nil, fmt.Errorf("scan play: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, firstSeen); err == nil {
			p.FirstSeen = ts
		}
		plays = append(plays, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plays: %w", err)
	}
	return plays, nil
}

// Count returns the number of plays recorded for session, or for all sessions
// when session is empty.
func (s *Store) Count(ctx context.Context, session string) (int, error) {
	var (
		count int
		err   error
	)
	if session == "" {
		err = s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM plays").Scan(&count)
	} else {
		err = s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM plays WHERE session_path = ?", session).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count plays: %w", err)
	}
	return count, nil
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
