package model

import (
	"errors"
	"time"
)

// Reminder is the lead-time tag attached to an Event.
//
// Only three values exist. Tags are stored and displayed but no notification
// is ever dispatched for them.
type Reminder string

const (
	ReminderNone     Reminder = ""
	ReminderTwoHours Reminder = "2h"
	ReminderOneDay   Reminder = "1d"
)

// ErrUnknownReminder is returned by ParseReminder for any other tag.
var ErrUnknownReminder = errors.New("unknown reminder tag")

// ParseReminder maps a form value to a Reminder. The empty string is
// ReminderNone.
func ParseReminder(s string) (Reminder, error) {
	switch r := Reminder(s); r {
	case ReminderNone, ReminderTwoHours, ReminderOneDay:
		return r, nil
	default:
		return ReminderNone, ErrUnknownReminder
	}
}

// Label is the display text for the tag.
func (r Reminder) Label() string {
	switch r {
	case ReminderTwoHours:
		return "2 小時前"
	case ReminderOneDay:
		return "1 天前"
	default:
		return ""
	}
}

// Event is a calendar entry. Start and End are naive wall-clock times carried
// in UTC; End is not checked against Start.
type Event struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Start     time.Time `json:"startDt"`
	End       time.Time `json:"endDt"`
	Reminder1 Reminder  `json:"reminder1,omitempty"`
	Reminder2 Reminder  `json:"reminder2,omitempty"`
}
