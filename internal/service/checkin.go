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

type CheckinService struct {
	store  repository.Store
	logger *slog.Logger
	today  clock
}

func NewCheckinService(store repository.Store, logger *slog.Logger) *CheckinService {
	return &CheckinService{store: store, logger: logger, today: calendar.Today}
}

// MonthCheckins is the check-in calendar for one month.
type MonthCheckins struct {
	MonthNav
	Weeks []calendar.Week
	Today time.Time
	// ByDay holds the month's check-in rows keyed by day.
	ByDay map[time.Time]model.Checkin
}

// Month returns the grid and existing check-ins for (year, month). Zero
// values default to the current year and month.
func (s *CheckinService) Month(ctx context.Context, year, month int) (*MonthCheckins, error) {
	y, m, err := resolveMonth(s.today, year, month)
	if err != nil {
		return nil, err
	}

	from, to := calendar.MonthRange(y, m)
	var checkins []model.Checkin
	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		checkins, err = tx.Checkins().ListBetween(ctx, from, to)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing checkins for %d-%02d: %w", y, m, err)
	}

	view := &MonthCheckins{
		MonthNav: newMonthNav(y, m),
		Weeks:    calendar.MonthGrid(y, m),
		Today:    s.today(),
		ByDay:    make(map[time.Time]model.Checkin, len(checkins)),
	}
	for _, c := range checkins {
		view.ByDay[c.Day] = c
	}
	return view, nil
}

// Toggle sets the checked flag for day, creating the row on first use.
// Repeating a toggle with the same value changes nothing.
func (s *CheckinService) Toggle(ctx context.Context, day time.Time, checked bool) (*model.Checkin, error) {
	if day.IsZero() {
		return nil, apperror.ValidationFailed("day", "day is required")
	}
	day = calendar.Day(day)

	var checkin *model.Checkin
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		checkin, err = tx.Checkins().Set(ctx, day, checked)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("toggling checkin: %w", err)
	}

	s.logger.Debug("checkin toggled",
		slog.String("day", day.Format("2006-01-02")),
		slog.Bool("checked", checked),
	)
	return checkin, nil
}
