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

type checkinRepo struct {
	q querier
}

// Set upserts the row for day. The UNIQUE(day) constraint plus ON CONFLICT
// makes concurrent toggles for the same day collapse onto one row.
func (r checkinRepo) Set(ctx context.Context, day time.Time, checked bool) (*model.Checkin, error) {
	key := formatDate(day)

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO checkins (day, checked) VALUES (?, ?)
		 ON CONFLICT(day) DO UPDATE SET checked = excluded.checked`,
		key, checked,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict("checkin", key)
		}
		return nil, fmt.Errorf("sqlite: setting checkin %s: %w", key, err)
	}
	return r.GetByDay(ctx, day)
}

func (r checkinRepo) GetByDay(ctx context.Context, day time.Time) (*model.Checkin, error) {
	key := formatDate(day)
	c, err := scanCheckin(r.q.QueryRowContext(ctx,
		`SELECT id, day, checked FROM checkins WHERE day = ?`, key,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("checkin", key)
		}
		return nil, fmt.Errorf("sqlite: getting checkin %s: %w", key, err)
	}
	return c, nil
}

func (r checkinRepo) ListBetween(ctx context.Context, from, to time.Time) ([]model.Checkin, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, day, checked FROM checkins
		 WHERE day >= ? AND day < ?
		 ORDER BY day`,
		formatDate(from), formatDate(to),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing checkins: %w", err)
	}
	defer rows.Close()

	var checkins []model.Checkin
	for rows.Next() {
		c, err := scanCheckin(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning checkin row: %w", err)
		}
		checkins = append(checkins, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating checkins: %w", err)
	}
	return checkins, nil
}

func scanCheckin(s scanner) (*model.Checkin, error) {
	var (
		c   model.Checkin
		day string
	)
	if err := s.Scan(&c.ID, &day, &c.Checked); err != nil {
		return nil, err
	}
	var err error
	if c.Day, err = parseDate(day); err != nil {
		return nil, err
	}
	return &c, nil
}
