package handler

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sakif/study-organizer/internal/apperror"
	"github.com/sakif/study-organizer/internal/service"
)

type NotebookHandler struct {
	*Renderer
	notebook *service.NotebookService
}

func NewNotebookHandler(notebook *service.NotebookService, rd *Renderer) *NotebookHandler {
	return &NotebookHandler{Renderer: rd, notebook: notebook}
}

// HandlePage renders the bullet editor for ?d=, or for today without it.
//
// HTTP: GET /notebook?d=2024-05-10
func (h *NotebookHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	var date time.Time
	if d := strings.TrimSpace(r.URL.Query().Get("d")); d != "" {
		var err error
		if date, err = parseDate(d); err != nil {
			h.fail(w, r, apperror.ValidationFailed("d", "d must be a date (YYYY-MM-DD)"))
			return
		}
	}

	page, err := h.notebook.Page(r.Context(), date)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, pageNotebook, pageData{Title: "聯絡簿", Active: "notebook", Data: page})
}

// HandleSave replaces the day's bullets and shows that day again.
//
// HTTP: POST /notebook
// FORM: the_date, bullet (repeated, in order)
func (h *NotebookHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err)
		return
	}
	form := notebookForm{Date: strings.TrimSpace(r.PostFormValue("the_date"))}
	if err := checkForm(form); err != nil {
		h.fail(w, r, err)
		return
	}
	date, err := parseDate(form.Date)
	if err != nil {
		h.fail(w, r, apperror.ValidationFailed("the_date", "the_date must be a date (YYYY-MM-DD)"))
		return
	}

	entry, err := h.notebook.Save(r.Context(), date, r.PostForm["bullet"])
	if err != nil {
		h.fail(w, r, err)
		return
	}

	target := "/notebook?" + url.Values{"d": {entry.Date.Format(dateLayout)}}.Encode()
	h.redirect(w, r, target, FlashSuccess, "已儲存聯絡簿內容")
}
