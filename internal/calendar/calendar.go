// Package calendar builds the padded month grids shown by the event calendar
// and the check-in calendar.
//
// All dates are calendar days at midnight UTC. The organizer has no timezone
// handling; UTC is only the carrier for naive dates so that values compare
// with == and can key maps.
package calendar

import "time"

// DaysPerWeek is the width of every grid row.
const DaysPerWeek = 7

// Week is one grid row, Monday first.
type Week [DaysPerWeek]time.Time

// Date returns midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Day truncates t to its calendar day, keeping t's wall clock date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// Today is the local calendar date.
func Today() time.Time {
	return Day(time.Now())
}

// MonthRange returns [first of month, first of next month).
func MonthRange(year int, month time.Month) (start, end time.Time) {
	start = Date(year, month, 1)
	return start, start.AddDate(0, 1, 0)
}

// Adjacent returns the months before and after (year, month), wrapping
// across year boundaries.
func Adjacent(year int, month time.Month) (prevYear int, prevMonth time.Month, nextYear int, nextMonth time.Month) {
	first := Date(year, month, 1)
	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)
	return prev.Year(), prev.Month(), next.Year(), next.Month()
}

// MonthGrid returns the weeks covering the month, padded with days from the
// neighbouring months so that every week is complete. Weeks start on Monday.
func MonthGrid(year int, month time.Month) []Week {
	first, next := MonthRange(year, month)
	last := next.AddDate(0, 0, -1)

	start := first.AddDate(0, 0, -mondayOffset(first))
	end := last.AddDate(0, 0, DaysPerWeek-1-mondayOffset(last))

	var weeks []Week
	for d := start; !d.After(end); {
		var w Week
		for i := range w {
			w[i] = d
			d = d.AddDate(0, 0, 1)
		}
		weeks = append(weeks, w)
	}
	return weeks
}

// mondayOffset is the number of days since the Monday starting t's week.
func mondayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % DaysPerWeek
}
