// Package service contains the organizer's business rules.
//
// THE THREE LAYERS:
//
//	Handler (HTTP layer)     → parses forms and query strings, renders pages
//	Service (business layer) → validates, applies defaults, orchestrates
//	Repository (data layer)  → reads and writes SQLite
//
// Each exported service method is one unit of work: it opens exactly one
// transaction through repository.Store.WithTx, so everything a request reads
// and writes commits or rolls back together.
//
// Services accept typed values (time.Time, int64, model.Reminder), never
// *http.Request. Parsing raw form strings is the handler's job; the rules
// here hold no matter who calls them.
package service

import (
	"fmt"
	"time"

	"github.com/sakif/study-organizer/internal/apperror"
	"github.com/sakif/study-organizer/internal/calendar"
)

const (
	MinYear = 1
	MaxYear = 9999
)

// clock returns today's calendar date. Tests replace it.
type clock func() time.Time

// resolveMonth applies the current-month default to a zero year or month and
// checks the result is a real month.
func resolveMonth(today clock, year, month int) (int, time.Month, error) {
	now := today()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if year < MinYear || year > MaxYear {
		return 0, 0, apperror.ValidationFailed("y", fmt.Sprintf("year must be between %d and %d", MinYear, MaxYear))
	}
	if month < 1 || month > 12 {
		return 0, 0, apperror.ValidationFailed("m", "month must be between 1 and 12")
	}
	return year, time.Month(month), nil
}

// MonthNav carries the month being shown and its neighbours.
type MonthNav struct {
	Year      int
	Month     time.Month
	PrevYear  int
	PrevMonth time.Month
	NextYear  int
	NextMonth time.Month
}

func newMonthNav(year int, month time.Month) MonthNav {
	py, pm, ny, nm := calendar.Adjacent(year, month)
	return MonthNav{
		Year: year, Month: month,
		PrevYear: py, PrevMonth: pm,
		NextYear: ny, NextMonth: nm,
	}
}
