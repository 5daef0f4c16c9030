package model

import "time"

// Question is one entry of the running question log.
// Answer is nil until an answer is attached.
type Question struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Text      string    `json:"text"`
	Answer    *string   `json:"answer"`
}

// AnswerText returns the answer or "" when none is set.
func (q Question) AnswerText() string {
	if q.Answer == nil {
		return ""
	}
	return *q.Answer
}
