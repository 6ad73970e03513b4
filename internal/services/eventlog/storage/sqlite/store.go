// Package sqlite stores the event log in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/louisbranch/confplan/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/confplan/internal/services/eventlog/storage"
	"github.com/louisbranch/confplan/internal/services/eventlog/storage/sqlite/migrations"
	"github.com/louisbranch/confplan/internal/services/planner/domain/conference"
	"github.com/louisbranch/confplan/internal/services/planner/domain/event"
)

var _ storage.Store = (*Store)(nil)

// Store is a SQLite-backed event log.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.EventsFS, "events"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying database. It is nil-safe.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendEvents implements storage.EventStore.
func (s *Store) AppendEvents(ctx context.Context, stream conference.ID, events []event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}
	envelopes, err := event.EncodeAll(events)
	if err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var last int64
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), 0) FROM events WHERE stream_id = ?", stream.String(),
	).Scan(&last); err != nil {
		return fmt.Errorf("read stream seq: %w", err)
	}

	now := time.Now().UTC().UnixMilli()
	for i, env := range envelopes {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO events (stream_id, seq, type, payload, recorded_at) VALUES (?, ?, ?, ?, ?)",
			stream.String(), last+int64(i)+1, string(env.Type), []byte(env.Payload), now,
		); err != nil {
			if isConstraintError(err) {
				return fmt.Errorf("append %s: %w", stream, storage.ErrConflict)
			}
			return fmt.Errorf("insert event: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListEvents implements storage.EventStore.
func (s *Store) ListEvents(ctx context.Context, stream conference.ID) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT type, payload FROM events WHERE stream_id = ? ORDER BY seq", stream.String())
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		var (
			name    string
			payload []byte
		)
		if err := rows.Scan(&name, &payload); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		evt, err := event.Decode(event.Envelope{Type: event.Name(name), Payload: payload})
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return events, nil
}

// ListStreams implements storage.EventStore.
func (s *Store) ListStreams(ctx context.Context) ([]conference.ID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT stream_id FROM events GROUP BY stream_id ORDER BY MIN(rowid)")
	if err != nil {
		return nil, fmt.Errorf("list streams: %w", err)
	}
	defer rows.Close()

	var ids []conference.ID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan stream: %w", err)
		}
		id, err := conference.ParseID(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read streams: %w", err)
	}
	return ids, nil
}

// PutOrganizer implements storage.OrganizerStore.
func (s *Store) PutOrganizer(ctx context.Context, organizer conference.Organizer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx, `INSERT INTO organizers (id, firstname, lastname, registered_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET firstname = excluded.firstname, lastname = excluded.lastname`,
		organizer.ID.String(), organizer.Firstname, organizer.Lastname, time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("put organizer: %w", err)
	}
	return nil
}

// ListOrganizers implements storage.OrganizerStore.
func (s *Store) ListOrganizers(ctx context.Context) ([]conference.Organizer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT id, firstname, lastname FROM organizers ORDER BY registered_at, rowid")
	if err != nil {
		return nil, fmt.Errorf("list organizers: %w", err)
	}
	defer rows.Close()

	var organizers []conference.Organizer
	for rows.Next() {
		var (
			raw string
			o   conference.Organizer
		)
		if err := rows.Scan(&raw, &o.Firstname, &o.Lastname); err != nil {
			return nil, fmt.Errorf("scan organizer: %w", err)
		}
		if o.ID, err = uuid.Parse(raw); err != nil {
			return nil, fmt.Errorf("parse organizer id: %w", err)
		}
		organizers = append(organizers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read organizers: %w", err)
	}
	return organizers, nil
}

func isConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
