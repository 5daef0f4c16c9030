package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sakif/study-organizer/internal/apperror"
	"github.com/sakif/study-organizer/internal/model"
)

type eventRepo struct {
	q querier
}

const eventColumns = `id, title, start_dt, end_dt, reminder1, reminder2`

func (r eventRepo) Create(ctx context.Context, e *model.Event) error {
	result, err := r.q.ExecContext(ctx,
		`INSERT INTO events (title, start_dt, end_dt, reminder1, reminder2)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Title,
		formatDateTime(e.Start),
		formatDateTime(e.End),
		nullReminder(e.Reminder1),
		nullReminder(e.Reminder2),
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating event: %w", err)
	}
	if e.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading event id: %w", err)
	}
	return nil
}

func (r eventRepo) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	e, err := scanEvent(r.q.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("event", id)
		}
		return nil, fmt.Errorf("sqlite: getting event %d: %w", id, err)
	}
	return e, nil
}

func (r eventRepo) ListStartingBetween(ctx context.Context, from, to time.Time) ([]model.Event, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+eventColumns+`
		 FROM events
		 WHERE start_dt >= ? AND start_dt < ?
		 ORDER BY start_dt, id`,
		formatDateTime(from), formatDateTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning event row: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating events: %w", err)
	}
	return events, nil
}

func (r eventRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting event %d: %w", id, err)
	}
	return checkAffected(result, apperror.NotFound("event", id))
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (*model.Event, error) {
	var (
		e          model.Event
		start, end string
		r1, r2     sql.NullString
	)
	if err := s.Scan(&e.ID, &e.Title, &start, &end, &r1, &r2); err != nil {
		return nil, err
	}

	var err error
	if e.Start, err = parseDateTime(start); err != nil {
		return nil, err
	}
	if e.End, err = parseDateTime(end); err != nil {
		return nil, err
	}
	e.Reminder1 = model.Reminder(r1.String)
	e.Reminder2 = model.Reminder(r2.String)
	return &e, nil
}

// nullReminder stores ReminderNone as NULL.
func nullReminder(r model.Reminder) sql.NullString {
	return sql.NullString{String: string(r), Valid: r != model.ReminderNone}
}
