package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sakif/study-organizer/internal/apperror"
	"github.com/sakif/study-organizer/internal/calendar"
	"github.com/sakif/study-organizer/internal/model"
	"github.com/sakif/study-organizer/internal/repository"
)

// MaxEventTitleLength is the longest title accepted, in characters.
const MaxEventTitleLength = 120

// CalendarService manages events and builds the event month view.
type CalendarService struct {
	store  repository.Store
	logger *slog.Logger
	today  clock
}

func NewCalendarService(store repository.Store, logger *slog.Logger) *CalendarService {
	return &CalendarService{store: store, logger: logger, today: calendar.Today}
}

// MonthEvents is the event calendar for one month.
type MonthEvents struct {
	MonthNav
	Weeks []calendar.Week
	// EventsByDay groups the month's events by the calendar day they start on.
	EventsByDay map[time.Time][]model.Event
}

// Month returns the grid and events for (year, month). Zero values default
// to the current year and month.
func (s *CalendarService) Month(ctx context.Context, year, month int) (*MonthEvents, error) {
	y, m, err := resolveMonth(s.today, year, month)
	if err != nil {
		return nil, err
	}

	from, to := calendar.MonthRange(y, m)
	var events []model.Event
	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		events, err = tx.Events().ListStartingBetween(ctx, from, to)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing events for %d-%02d: %w", y, m, err)
	}

	view := &MonthEvents{
		MonthNav:    newMonthNav(y, m),
		Weeks:       calendar.MonthGrid(y, m),
		EventsByDay: make(map[time.Time][]model.Event),
	}
	for _, e := range events {
		day := calendar.Day(e.Start)
		view.EventsByDay[day] = append(view.EventsByDay[day], e)
	}
	return view, nil
}

// NewEvent is the input to AddEvent.
type NewEvent struct {
	Title     string
	Start     time.Time
	End       time.Time
	Reminder1 model.Reminder
	Reminder2 model.Reminder
}

// AddEvent validates and stores an event. End is not compared to Start.
func (s *CalendarService) AddEvent(ctx context.Context, in NewEvent) (*model.Event, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "event title is required")
	}
	if utf8.RuneCountInString(title) > MaxEventTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("event title must be %d characters or less", MaxEventTitleLength))
	}
	if in.Start.IsZero() || in.End.IsZero() {
		return nil, apperror.ValidationFailed("start_dt", "event start and end are required")
	}
	for _, r := range []model.Reminder{in.Reminder1, in.Reminder2} {
		if _, err := model.ParseReminder(string(r)); err != nil {
			return nil, apperror.ValidationFailed("reminder", fmt.Sprintf("unknown reminder %q", r))
		}
	}

	event := &model.Event{
		Title:     title,
		Start:     in.Start,
		End:       in.End,
		Reminder1: in.Reminder1,
		Reminder2: in.Reminder2,
	}
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		return tx.Events().Create(ctx, event)
	})
	if err != nil {
		s.logger.Error("failed to create event",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating event: %w", err)
	}

	s.logger.Info("event created",
		slog.Int64("id", event.ID),
		slog.String("start", event.Start.Format("2006-01-02T15:04")),
	)
	return event, nil
}

// DeleteEvent removes the event and returns it as it was, so the caller can
// go back to the month it belonged to.
func (s *CalendarService) DeleteEvent(ctx context.Context, id int64) (*model.Event, error) {
	var event *model.Event
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		if event, err = tx.Events().GetByID(ctx, id); err != nil {
			return err
		}
		return tx.Events().Delete(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("deleting event: %w", err)
	}

	s.logger.Info("event deleted", slog.Int64("id", id))
	return event, nil
}
