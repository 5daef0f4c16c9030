package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sakif/study-organizer/internal/apperror"
	"github.com/sakif/study-organizer/internal/calendar"
	"github.com/sakif/study-organizer/internal/model"
	"github.com/sakif/study-organizer/internal/service"
)

// CalendarHandler serves the event calendar and the check-in calendar. Both
// render the same Monday-first month grid.
type CalendarHandler struct {
	*Renderer
	events   *service.CalendarService
	checkins *service.CheckinService
}

func NewCalendarHandler(events *service.CalendarService, checkins *service.CheckinService, rd *Renderer) *CalendarHandler {
	return &CalendarHandler{Renderer: rd, events: events, checkins: checkins}
}

// dayCell is one square of a rendered month grid.
type dayCell struct {
	Date    time.Time
	InMonth bool
	IsToday bool
	Checked bool
	Events  []model.Event
}

type monthView struct {
	service.MonthNav
	Weeks [][]dayCell
}

func buildMonth(nav service.MonthNav, weeks []calendar.Week, today time.Time, fill func(*dayCell)) monthView {
	view := monthView{MonthNav: nav, Weeks: make([][]dayCell, len(weeks))}
	for i, week := range weeks {
		row := make([]dayCell, 0, calendar.DaysPerWeek)
		for _, d := range week {
			cell := dayCell{
				Date:    d,
				InMonth: d.Month() == nav.Month,
				IsToday: d.Equal(today),
			}
			fill(&cell)
			row = append(row, cell)
		}
		view.Weeks[i] = row
	}
	return view
}

// HandleCalendar renders a month of events.
//
// HTTP: GET /calendar?y=2024&m=5
func (h *CalendarHandler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonthQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	m, err := h.events.Month(r.Context(), year, month)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	view := buildMonth(m.MonthNav, m.Weeks, calendar.Today(), func(c *dayCell) {
		c.Events = m.EventsByDay[c.Date]
	})
	h.render(w, r, http.StatusOK, pageCalendar, pageData{Title: "行事曆", Active: "calendar", Data: view})
}

// HandleAddEvent creates an event and shows the month it starts in.
//
// HTTP: POST /calendar/add
// FORM: title, start_dt, end_dt, reminder1, reminder2
func (h *CalendarHandler) HandleAddEvent(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err)
		return
	}
	form := eventForm{
		Title:     strings.TrimSpace(r.PostFormValue("title")),
		Start:     r.PostFormValue("start_dt"),
		End:       r.PostFormValue("end_dt"),
		Reminder1: r.PostFormValue("reminder1"),
		Reminder2: r.PostFormValue("reminder2"),
	}
	if err := checkForm(form); err != nil {
		h.fail(w, r, err)
		return
	}

	// Both parse: isodatetime has checked them.
	start, _ := parseDateTime(form.Start)
	end, _ := parseDateTime(form.End)

	event, err := h.events.AddEvent(r.Context(), service.NewEvent{
		Title:     form.Title,
		Start:     start,
		End:       end,
		Reminder1: model.Reminder(form.Reminder1),
		Reminder2: model.Reminder(form.Reminder2),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.redirect(w, r, monthLink("/calendar", event.Start.Year(), event.Start.Month()), FlashSuccess, "已新增行程")
}

// HandleDeleteEvent removes an event and returns to its month.
//
// HTTP: POST /calendar/delete/{id}
func (h *CalendarHandler) HandleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	event, err := h.events.DeleteEvent(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.redirect(w, r, monthLink("/calendar", event.Start.Year(), event.Start.Month()), FlashInfo, "已刪除行程")
}

// HandleCheckin renders a month of check-ins with today marked.
//
// HTTP: GET /checkin?y=2024&m=5
func (h *CalendarHandler) HandleCheckin(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonthQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	m, err := h.checkins.Month(r.Context(), year, month)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	view := buildMonth(m.MonthNav, m.Weeks, m.Today, func(c *dayCell) {
		c.Checked = m.ByDay[c.Date].Checked
	})
	h.render(w, r, http.StatusOK, pageCheckin, pageData{Title: "打卡", Active: "checkin", Data: view})
}

// HandleToggleCheckin sets the check-in flag for one day. It is called by
// the page script, so it answers with JSON instead of a redirect.
//
// HTTP: POST /checkin/toggle
// FORM: day=2024-05-10, checked=true|false
// RESPONSE: {"ok": true}
func (h *CalendarHandler) HandleToggleCheckin(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		writeError(w, err)
		return
	}
	form := checkinForm{
		Day:     strings.TrimSpace(r.PostFormValue("day")),
		Checked: r.PostFormValue("checked"),
	}
	if err := checkForm(form); err != nil {
		writeError(w, err)
		return
	}
	day, err := parseDate(form.Day)
	if err != nil {
		writeError(w, apperror.ValidationFailed("day", "day must be a date (YYYY-MM-DD)"))
		return
	}

	if _, err := h.checkins.Toggle(r.Context(), day, form.Checked == "true"); err != nil {
		if status, _ := errorStatus(err); status == http.StatusInternalServerError {
			h.logger.Error("failed to toggle checkin", slog.String("error", err.Error()))
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}
