package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakif/study-organizer/internal/apperror"
	"github.com/sakif/study-organizer/internal/calendar"
	"github.com/sakif/study-organizer/internal/model"
	"github.com/sakif/study-organizer/internal/repository"
)

// NotebookService manages the daily notebook.
type NotebookService struct {
	store  repository.Store
	logger *slog.Logger
	today  clock
}

func NewNotebookService(store repository.Store, logger *slog.Logger) *NotebookService {
	return &NotebookService{store: store, logger: logger, today: calendar.Today}
}

// NotebookPage is what the edit form shows for one date.
type NotebookPage struct {
	Date time.Time
	// Bullets always holds at least one line, so the form has an input.
	Bullets []string
}

// Page loads the bullets for date. A zero date means today.
func (s *NotebookService) Page(ctx context.Context, date time.Time) (*NotebookPage, error) {
	if date.IsZero() {
		date = s.today()
	}
	date = calendar.Day(date)

	var entry *model.NotebookEntry
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		entry, err = tx.Notebook().GetByDate(ctx, date)
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("loading notebook %s: %w", date.Format("2006-01-02"), err)
	}

	page := &NotebookPage{Date: date}
	if entry != nil {
		page.Bullets = entry.Bullets()
	}
	if len(page.Bullets) == 0 {
		page.Bullets = []string{""}
	}
	return page, nil
}

// Save replaces the notebook content for date with the non-blank bullets,
// in order. The previous content is discarded.
func (s *NotebookService) Save(ctx context.Context, date time.Time, bullets []string) (*model.NotebookEntry, error) {
	if date.IsZero() {
		return nil, apperror.ValidationFailed("the_date", "the_date is required")
	}
	date = calendar.Day(date)
	content := model.JoinBullets(bullets)

	var entry *model.NotebookEntry
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		entry, err = tx.Notebook().Save(ctx, date, content)
		return err
	})
	if err != nil {
		s.logger.Error("failed to save notebook",
			slog.String("date", date.Format("2006-01-02")),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("saving notebook: %w", err)
	}

	s.logger.Info("notebook saved",
		slog.String("date", date.Format("2006-01-02")),
		slog.Int("bullets", len(entry.Bullets())),
	)
	return entry, nil
}
