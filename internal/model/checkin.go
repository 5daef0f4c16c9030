package model

import "time"

// Checkin is the boolean daily marker. At most one row exists per Day.
type Checkin struct {
	ID      int64     `json:"id"`
	Day     time.Time `json:"day"`
	Checked bool      `json:"checked"`
}
