package model

import (
	"strconv"
	"time"
)

// Subject is a school subject grades are recorded against.
type Subject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Grade is one score for a Subject on a date. Rank is optional.
//
// SubjectID always references an existing Subject; Subject is filled in when
// grades are listed.
type Grade struct {
	ID        int64     `json:"id"`
	Date      time.Time `json:"theDate"`
	SubjectID int64     `json:"subjectId"`
	Subject   Subject   `json:"subject"`
	Score     float64   `json:"score"`
	Rank      *int      `json:"rank"`
}

// ScoreText formats the score without trailing zeros (88.5, 90).
func (g Grade) ScoreText() string {
	return strconv.FormatFloat(g.Score, 'f', -1, 64)
}

// RankText returns the rank or "" when none was recorded.
func (g Grade) RankText() string {
	if g.Rank == nil {
		return ""
	}
	return strconv.Itoa(*g.Rank)
}
