package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sakif/study-organizer/internal/apperror"
	"github.com/sakif/study-organizer/internal/service"
)

type GradeHandler struct {
	*Renderer
	grades *service.GradeService
}

func NewGradeHandler(grades *service.GradeService, rd *Renderer) *GradeHandler {
	return &GradeHandler{Renderer: rd, grades: grades}
}

// HTTP: GET /grades
func (h *GradeHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	view, err := h.grades.Overview(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, pageGrades, pageData{Title: "成績", Active: "grades", Data: view})
}

// HandleCreate adds a subject when new_subject is filled in, and a grade
// otherwise. The grade fields are ignored on a subject submission.
//
// HTTP: POST /grades
// FORM: new_subject | subject_id, the_date, score, rank (optional)
func (h *GradeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err)
		return
	}

	if name := strings.TrimSpace(r.PostFormValue("new_subject")); name != "" {
		if _, err := h.grades.AddSubject(r.Context(), name); err != nil {
			h.fail(w, r, err)
			return
		}
		h.redirect(w, r, "/grades", FlashSuccess, "已新增科目")
		return
	}

	in, err := parseGradeForm(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := h.grades.AddGrade(r.Context(), in); err != nil {
		h.fail(w, r, err)
		return
	}
	h.redirect(w, r, "/grades", FlashSuccess, "已新增成績")
}

func parseGradeForm(r *http.Request) (service.NewGrade, error) {
	form := gradeForm{
		SubjectID: strings.TrimSpace(r.PostFormValue("subject_id")),
		Date:      strings.TrimSpace(r.PostFormValue("the_date")),
		Score:     strings.TrimSpace(r.PostFormValue("score")),
		Rank:      strings.TrimSpace(r.PostFormValue("rank")),
	}
	if err := checkForm(form); err != nil {
		return service.NewGrade{}, err
	}

	var in service.NewGrade
	var err error
	if in.SubjectID, err = strconv.ParseInt(form.SubjectID, 10, 64); err != nil {
		return in, apperror.ValidationFailed("subject_id", "subject_id must be a number")
	}
	if in.Date, err = parseDate(form.Date); err != nil {
		return in, apperror.ValidationFailed("the_date", "the_date must be a date (YYYY-MM-DD)")
	}
	if in.Score, err = strconv.ParseFloat(form.Score, 64); err != nil {
		return in, apperror.ValidationFailed("score", "score must be a number")
	}
	if form.Rank != "" {
		rank, err := strconv.Atoi(form.Rank)
		if err != nil {
			return in, apperror.ValidationFailed("rank", "rank must be a whole number")
		}
		in.Rank = &rank
	}
	return in, nil
}

// HTTP: POST /grades/delete/{id}
func (h *GradeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.grades.DeleteGrade(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.redirect(w, r, "/grades", FlashInfo, "已刪除成績")
}
