package handler

import (
	"net/http"
	"strings"

	"github.com/sakif/study-organizer/internal/search"
	"github.com/sakif/study-organizer/internal/service"
)

// HomeHandler serves the home page, the profile form and keyword search.
type HomeHandler struct {
	*Renderer
	profiles *service.ProfileService
}

func NewHomeHandler(profiles *service.ProfileService, rd *Renderer) *HomeHandler {
	return &HomeHandler{Renderer: rd, profiles: profiles}
}

// HandleIndex renders the profile summary and the search box.
//
// HTTP: GET /
func (h *HomeHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.Get(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, pageIndex, pageData{Title: "首頁", Active: "home", Data: profile})
}

// HandleProfile renders the profile form.
//
// HTTP: GET /profile
func (h *HomeHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.Get(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, pageProfile, pageData{Title: "個人資料", Active: "profile", Data: profile})
}

// HandleProfileUpdate saves the profile and returns to the home page.
//
// HTTP: POST /profile
// FORM: name, avatar_url
func (h *HomeHandler) HandleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := h.profiles.Update(r.Context(), r.PostFormValue("name"), r.PostFormValue("avatar_url")); err != nil {
		h.fail(w, r, err)
		return
	}
	h.redirect(w, r, "/", FlashSuccess, "已更新個人資料")
}

// HandleSearch maps a keyword to the pages it names.
//
// HTTP: GET /search?q=成績
// RESPONSE: [{"title":"成績","url":"/grades"}, ...]; never null.
func (h *HomeHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, search.Search(q))
}
