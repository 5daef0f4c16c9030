// Package sqlite implements the repository interfaces on SQLite.
//
// DRIVER:
// modernc.org/sqlite is a pure Go translation of SQLite, so no C toolchain is
// needed. Importing it registers the driver with database/sql as "sqlite".
//
// TRANSACTIONS:
// Every service operation calls DB.WithTx. The repositories handed to the
// callback all run their statements on the same *sql.Tx, which is committed
// when the callback succeeds and rolled back on every other exit path.
//
// SINGLE CONNECTION:
// The pool is capped at one connection. SQLite allows one writer at a time
// anyway, and ":memory:" databases exist per connection, so a single
// connection keeps tests and production on the same code path.
//
// STORED FORMATS:
// Dates are TEXT "YYYY-MM-DD", event times TEXT "YYYY-MM-DDTHH:MM:SS" and
// question timestamps fixed-width UTC RFC 3339. All three sort
// lexicographically in chronological order, so range queries and ORDER BY
// work on the raw column.
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

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/study-organizer/internal/repository"
)

const (
	dateLayout      = "2006-01-02"
	dateTimeLayout  = "2006-01-02T15:04:05"
	timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

var _ repository.Store = (*DB)(nil)

// DB wraps the connection pool and implements repository.Store.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath and creates the schema if absent.
//
// dbPath examples:
//   - "data/organizer.db"  → file-based database; the directory is created
//   - ":memory:"           → in-memory database (tests)
func New(dbPath string) (*DB, error) {
	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite. grades.subject_id relies on them.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// WithTx implements repository.Store.
func (db *DB) WithTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(txRepos{q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("sqlite: rolling back: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing transaction: %w", err)
	}
	return nil
}

// querier is the subset of *sql.Tx the repositories use.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// txRepos implements repository.Tx over one transaction.
type txRepos struct {
	q querier
}

func (t txRepos) Profiles() repository.ProfileRepository   { return profileRepo{q: t.q} }
func (t txRepos) Events() repository.EventRepository       { return eventRepo{q: t.q} }
func (t txRepos) Checkins() repository.CheckinRepository   { return checkinRepo{q: t.q} }
func (t txRepos) Questions() repository.QuestionRepository { return questionRepo{q: t.q} }
func (t txRepos) Notebook() repository.NotebookRepository  { return notebookRepo{q: t.q} }
func (t txRepos) Subjects() repository.SubjectRepository   { return subjectRepo{q: t.q} }
func (t txRepos) Grades() repository.GradeRepository       { return gradeRepo{q: t.q} }

// migrate creates every table. CREATE ... IF NOT EXISTS makes it safe to run
// on each startup.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS user_profile (
			id         INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			avatar_url TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS events (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			title     TEXT NOT NULL,
			start_dt  TEXT NOT NULL,
			end_dt    TEXT NOT NULL,
			reminder1 TEXT,
			reminder2 TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_events_start_dt ON events(start_dt);

		CREATE TABLE IF NOT EXISTS checkins (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			day     TEXT NOT NULL UNIQUE,
			checked INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS questions (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			text       TEXT NOT NULL,
			answer     TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_questions_created_at ON questions(created_at);

		CREATE TABLE IF NOT EXISTS notebook_entries (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			the_date TEXT NOT NULL UNIQUE,
			content  TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS subjects (
			id   INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS grades (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			the_date   TEXT NOT NULL,
			subject_id INTEGER NOT NULL REFERENCES subjects(id),
			score      REAL NOT NULL,
			rank       INTEGER
		);
		CREATE INDEX IF NOT EXISTS idx_grades_the_date ON grades(the_date);
	`)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// ensureDir creates the parent directory of a file-backed database.
func ensureDir(dbPath string) error {
	if strings.Contains(dbPath, ":memory:") || strings.Contains(dbPath, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dbPath, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("sqlite: creating database directory %q: %w", dir, err)
	}
	return nil
}

// isConstraint reports whether err is the SQLite constraint failure with the
// given extended result code. The primary code plus message text is accepted
// too, for connections that report only primary codes.
func isConstraint(err error, code int, text string) bool {
	var se *moderncsqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	if se.Code() == code {
		return true
	}
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), text)
}

func isUniqueViolation(err error) bool {
	return isConstraint(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE, "UNIQUE")
}

func isForeignKeyViolation(err error) bool {
	return isConstraint(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, "FOREIGN KEY")
}

func formatDate(t time.Time) string     { return t.Format(dateLayout) }
func formatDateTime(t time.Time) string { return t.Format(dateTimeLayout) }

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parsing stored date %q: %w", s, err)
	}
	return t, nil
}

func parseDateTime(s string) (time.Time, error) {
	t, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parsing stored datetime %q: %w", s, err)
	}
	return t, nil
}

// checkAffected turns a zero-row UPDATE/DELETE into NotFound.
func checkAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
