// Package historydb is an optional append-only log of completed matches,
// used by the admin introspection endpoint and for answering "how has
// this player done historically" without replaying match transcripts.
package historydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"
)

// ErrNotFound means no history record exists for the requested match id.
var ErrNotFound = errors.New("historydb: no record for that match id")

// Entry is one completed match's summary record.
type Entry struct {
	ID       uuid.UUID
	MatchID  string
	Role     string
	Goal     int
	PlyCount int
	Finished time.Time
}

// DB is an append-only SQLite-backed log of completed matches.
type DB struct {
	db *sql.DB
}

// Open opens (creating if necessary) the history database at path.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrapDBError(err)
	}
	repo := &DB{db: conn}
	if err := repo.init(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (d *DB) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS match_history (
		id TEXT NOT NULL PRIMARY KEY,
		match_id TEXT NOT NULL,
		role TEXT NOT NULL,
		goal INTEGER NOT NULL,
		ply_count INTEGER NOT NULL,
		finished INTEGER NOT NULL
	);`
	if _, err := d.db.Exec(stmt); err != nil {
		return wrapDBError(err)
	}
	return nil
}

// Close closes the underlying database handle.
func (d *DB) Close() error {
	return d.db.Close()
}

// Record appends a completed match's summary to the log.
func (d *DB) Record(ctx context.Context, matchID, role string, goal, plyCount int) (Entry, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return Entry{}, fmt.Errorf("generate history record id: %w", err)
	}
	finished := time.Now()

	stmt, err := d.db.Prepare(`INSERT INTO match_history (id, match_id, role, goal, ply_count, finished) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Entry{}, wrapDBError(err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, id.String(), matchID, role, goal, plyCount, finished.Unix())
	if err != nil {
		return Entry{}, wrapDBError(err)
	}

	return Entry{ID: id, MatchID: matchID, Role: role, Goal: goal, PlyCount: plyCount, Finished: finished}, nil
}

// ByMatchID returns the history record for a specific match id.
func (d *DB) ByMatchID(ctx context.Context, matchID string) (Entry, error) {
	row := d.db.QueryRowContext(ctx, `SELECT id, match_id, role, goal, ply_count, finished FROM match_history WHERE match_id = ?;`, matchID)

	var e Entry
	var idStr string
	var finishedUnix int64
	if err := row.Scan(&idStr, &e.MatchID, &e.Role, &e.Goal, &e.PlyCount, &finishedUnix); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, wrapDBError(err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return Entry{}, fmt.Errorf("parse stored history record id: %w", err)
	}
	e.ID = id
	e.Finished = time.Unix(finishedUnix, 0)
	return e, nil
}

// Recent returns the limit most recently finished matches, newest first.
func (d *DB) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT id, match_id, role, goal, ply_count, finished FROM match_history ORDER BY finished DESC, rowid DESC LIMIT ?;`, limit)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var idStr string
		var finishedUnix int64
		if err := rows.Scan(&idStr, &e.MatchID, &e.Role, &e.Goal, &e.PlyCount, &finishedUnix); err != nil {
			return nil, wrapDBError(err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("parse stored history record id: %w", err)
		}
		e.ID = id
		e.Finished = time.Unix(finishedUnix, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
