// Package repository defines the storage contracts the services depend on.
//
// Every repository is obtained from a Tx, so all reads and writes of one
// service operation share a single transaction. Services never see *sql.DB
// or *sql.Tx; internal/repository/sqlite provides the implementation.
package repository

import (
	"context"
	"time"

	"github.com/sakif/study-organizer/internal/model"
)

// Store opens transactions.
//
// WithTx runs fn inside one transaction. It commits when fn returns nil and
// rolls back when fn returns an error or panics. The error from fn is
// returned unchanged so callers can still test it with errors.Is.
type Store interface {
	WithTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx hands out repositories bound to one transaction.
type Tx interface {
	Profiles() ProfileRepository
	Events() EventRepository
	Checkins() CheckinRepository
	Questions() QuestionRepository
	Notebook() NotebookRepository
	Subjects() SubjectRepository
	Grades() GradeRepository
}

type ProfileRepository interface {
	// Ensure creates the singleton profile with default values if absent.
	Ensure(ctx context.Context) error
	Get(ctx context.Context) (*model.UserProfile, error)
	Update(ctx context.Context, profile *model.UserProfile) error
}

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id int64) (*model.Event, error)
	// ListStartingBetween returns events with from <= Start < to, by Start.
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]model.Event, error)
	Delete(ctx context.Context, id int64) error
}

type CheckinRepository interface {
	// Set creates the row for day or updates its Checked flag.
	Set(ctx context.Context, day time.Time, checked bool) (*model.Checkin, error)
	GetByDay(ctx context.Context, day time.Time) (*model.Checkin, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]model.Checkin, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	GetByID(ctx context.Context, id int64) (*model.Question, error)
	// List returns all questions, newest first.
	List(ctx context.Context) ([]model.Question, error)
	// SetAnswer replaces the answer; nil clears it.
	SetAnswer(ctx context.Context, id int64, answer *string) error
}

type NotebookRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*model.NotebookEntry, error)
	// Save creates the entry for date or overwrites its content in full.
	Save(ctx context.Context, date time.Time, content string) (*model.NotebookEntry, error)
}

type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	GetByID(ctx context.Context, id int64) (*model.Subject, error)
	// List returns all subjects ordered by name.
	List(ctx context.Context) ([]model.Subject, error)
	Count(ctx context.Context) (int, error)
}

type GradeRepository interface {
	Create(ctx context.Context, grade *model.Grade) error
	// List returns all grades, latest date first, with Subject resolved.
	List(ctx context.Context) ([]model.Grade, error)
	Delete(ctx context.Context, id int64) error
}
