package handler

import (
	"net/http"

	"github.com/sakif/study-organizer/internal/service"
)

type QuestionHandler struct {
	*Renderer
	questions *service.QuestionService
}

func NewQuestionHandler(questions *service.QuestionService, rd *Renderer) *QuestionHandler {
	return &QuestionHandler{Renderer: rd, questions: questions}
}

// HTTP: GET /questions
func (h *QuestionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questions.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, pageQuestions, pageData{Title: "問題", Active: "questions", Data: questions})
}

// HandleAsk records a question. Blank text redirects back without a message.
//
// HTTP: POST /questions
// FORM: text
func (h *QuestionHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err)
		return
	}
	q, err := h.questions.Ask(r.Context(), r.PostFormValue("text"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	message := ""
	if q != nil {
		message = "已新增問題"
	}
	h.redirect(w, r, "/questions", FlashSuccess, message)
}

// HTTP: POST /questions/answer/{id}
// FORM: answer (blank clears it)
func (h *QuestionHandler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := parseForm(r); err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := h.questions.Answer(r.Context(), id, r.PostFormValue("answer")); err != nil {
		h.fail(w, r, err)
		return
	}
	h.redirect(w, r, "/questions", FlashSuccess, "已更新答案")
}
