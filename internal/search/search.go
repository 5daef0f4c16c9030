// Package search implements the home page's jump-to-page lookup: a fixed
// table of keywords, each pointing at a page route.
package search

import "strings"

// Result is one matching entry. The JSON shape is what the search box in
// static/main.js consumes.
type Result struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type entry struct {
	keyword string
	url     string
}

// Page routes the keywords point at.
const (
	CalendarURL  = "/calendar"
	CheckinURL   = "/checkin"
	QuestionsURL = "/questions"
	NotebookURL  = "/notebook"
	GradesURL    = "/grades"
	ProfileURL   = "/profile"
)

// entries is matched in declaration order.
var entries = []entry{
	{"行事曆", CalendarURL},
	{"打卡", CheckinURL},
	{"問題", QuestionsURL},
	{"聯絡簿", NotebookURL},
	{"成績", GradesURL},
	{"成績紀錄", GradesURL},
	{"profile", ProfileURL},
	{"個人", ProfileURL},
	{"頭像", ProfileURL},
	{"姓名", ProfileURL},
}

// Search returns every entry whose keyword contains the query or is
// contained in it, compared case-insensitively. A blank query matches
// nothing. The result is never nil.
func Search(query string) []Result {
	q := strings.ToLower(strings.TrimSpace(query))
	results := []Result{}
	if q == "" {
		return results
	}

	for _, e := range entries {
		k := strings.ToLower(e.keyword)
		if strings.Contains(k, q) || strings.Contains(q, k) {
			results = append(results, Result{Title: e.keyword, URL: e.url})
		}
	}
	return results
}
