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

type notebookRepo struct {
	q querier
}

func (r notebookRepo) GetByDate(ctx context.Context, date time.Time) (*model.NotebookEntry, error) {
	key := formatDate(date)

	var (
		e       model.NotebookEntry
		theDate string
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT id, the_date, content FROM notebook_entries WHERE the_date = ?`, key,
	).Scan(&e.ID, &theDate, &e.Content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("notebook entry", key)
		}
		return nil, fmt.Errorf("sqlite: getting notebook entry %s: %w", key, err)
	}
	if e.Date, err = parseDate(theDate); err != nil {
		return nil, err
	}
	return &e, nil
}

// Save writes content for date, replacing any previous content wholesale.
func (r notebookRepo) Save(ctx context.Context, date time.Time, content string) (*model.NotebookEntry, error) {
	key := formatDate(date)

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO notebook_entries (the_date, content) VALUES (?, ?)
		 ON CONFLICT(the_date) DO UPDATE SET content = excluded.content`,
		key, content,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: saving notebook entry %s: %w", key, err)
	}
	return r.GetByDate(ctx, date)
}
