// Package handler contains the organizer's HTTP request handlers.
//
// HANDLER RESPONSIBILITIES:
// 1. Parse the incoming request (query string, form body, URL params)
// 2. Call the service layer with typed values
// 3. Write the response: a rendered page, a redirect with a flash message,
//    or JSON for the two asynchronous endpoints
//
// Handlers hold no business rules; they translate between HTTP and the
// services.
package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/study-organizer/internal/apperror"
)

// Page names. Each is a template file that defines "content" for base.html.
const (
	pageIndex     = "index.html"
	pageProfile   = "profile.html"
	pageCalendar  = "calendar.html"
	pageCheckin   = "checkin.html"
	pageQuestions = "questions.html"
	pageNotebook  = "notebook.html"
	pageGrades    = "grades.html"
	pageError     = "error.html"
)

var pageNames = []string{
	pageIndex, pageProfile, pageCalendar, pageCheckin,
	pageQuestions, pageNotebook, pageGrades, pageError,
}

// weekdayLabels heads the Monday-first month grids.
var weekdayLabels = []string{"一", "二", "三", "四", "五", "六", "日"}

var templateFuncs = template.FuncMap{
	"date":  func(t time.Time) string { return t.Format("2006-01-02") },
	"clock": func(t time.Time) string { return t.Format("15:04") },
	"dateTime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
	"monthTitle": func(year int, month time.Month) string {
		return fmt.Sprintf("%d 年 %d 月", year, int(month))
	},
	"monthURL": monthLink,
	"weekdays": func() []string { return weekdayLabels },
}

// monthLink is the URL of a month view.
func monthLink(path string, year int, month time.Month) string {
	return fmt.Sprintf("%s?y=%d&m=%d", path, year, int(month))
}

// Views holds one parsed template set per page.
//
// Every set is base.html plus a single page file. Parsing them separately
// lets each page define its own "content" block without the definitions
// overwriting one another.
type Views struct {
	pages map[string]*template.Template
}

// NewViews parses base.html and every page template from fsys. It is called
// once at startup; a parse error is fatal there.
func NewViews(fsys fs.FS) (*Views, error) {
	v := &Views{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(fsys, "base.html", name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		v.pages[name] = tmpl
	}
	return v, nil
}

// pageData is what every page template receives.
type pageData struct {
	Title   string
	Active  string // nav entry to highlight
	Flashes []Flash
	Data    any
}

type errorView struct {
	Status     int
	StatusText string
	Message    string
}

// Renderer writes pages, error pages and flash-carrying redirects. Every
// page handler embeds one.
type Renderer struct {
	views  *Views
	flash  *Flasher
	logger *slog.Logger
}

func NewRenderer(views *Views, flash *Flasher, logger *slog.Logger) *Renderer {
	return &Renderer{views: views, flash: flash, logger: logger}
}

// render executes page into a buffer first, so a template error becomes a
// clean 500 instead of a half-written page. Pending flash messages are
// consumed here.
func (rd *Renderer) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	tmpl, ok := rd.views.pages[page]
	if !ok {
		rd.logger.Error("unknown page template", slog.String("page", page))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data.Flashes = rd.flash.Pop(w, r)

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		rd.logger.Error("failed to render template",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// fail renders the error page for err with the matching status code.
func (rd *Renderer) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, _ := errorStatus(err)
	if status == http.StatusInternalServerError {
		rd.logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	rd.render(w, r, status, pageError, pageData{
		Title: http.StatusText(status),
		Data: errorView{
			Status:     status,
			StatusText: http.StatusText(status),
			Message:    apperror.Message(err, internalErrorMessage),
		},
	})
}

// redirect queues a flash message and sends the browser to url with 302
// Found. An empty message skips the flash.
func (rd *Renderer) redirect(w http.ResponseWriter, r *http.Request, url, category, message string) {
	if message != "" {
		rd.flash.Add(w, r, category, message)
	}
	http.Redirect(w, r, url, http.StatusFound)
}
