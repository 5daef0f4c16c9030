package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sakif/study-organizer/internal/apperror"
	"github.com/sakif/study-organizer/internal/calendar"
	"github.com/sakif/study-organizer/internal/model"
	"github.com/sakif/study-organizer/internal/repository"
)

// MaxSubjectNameLength is the longest subject name accepted, in characters.
const MaxSubjectNameLength = 64

// GradeService manages subjects and grades.
type GradeService struct {
	store  repository.Store
	logger *slog.Logger
	today  clock
}

func NewGradeService(store repository.Store, logger *slog.Logger) *GradeService {
	return &GradeService{store: store, logger: logger, today: calendar.Today}
}

// GradeOverview is the grades page: subjects by name, grades latest first.
type GradeOverview struct {
	Subjects []model.Subject
	Grades   []model.Grade
	Today    time.Time
}

func (s *GradeService) Overview(ctx context.Context) (*GradeOverview, error) {
	view := &GradeOverview{Today: s.today()}
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		if view.Subjects, err = tx.Subjects().List(ctx); err != nil {
			return err
		}
		view.Grades, err = tx.Grades().List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("loading grades: %w", err)
	}
	return view, nil
}

// AddSubject creates a subject with the trimmed name.
func (s *GradeService) AddSubject(ctx context.Context, name string) (*model.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("new_subject", "subject name is required")
	}
	if utf8.RuneCountInString(name) > MaxSubjectNameLength {
		return nil, apperror.ValidationFailed("new_subject",
			fmt.Sprintf("subject name must be %d characters or less", MaxSubjectNameLength))
	}

	subject := &model.Subject{Name: name}
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		return tx.Subjects().Create(ctx, subject)
	})
	if err != nil {
		return nil, fmt.Errorf("creating subject: %w", err)
	}

	s.logger.Info("subject created", slog.Int64("id", subject.ID), slog.String("name", name))
	return subject, nil
}

// NewGrade is the input to AddGrade.
type NewGrade struct {
	Date      time.Time
	SubjectID int64
	Score     float64
	Rank      *int
}

// AddGrade records a grade for an existing subject. An unknown subject is
// apperror.ErrNotFound.
func (s *GradeService) AddGrade(ctx context.Context, in NewGrade) (*model.Grade, error) {
	if in.Date.IsZero() {
		return nil, apperror.ValidationFailed("the_date", "the_date is required")
	}
	if math.IsNaN(in.Score) || math.IsInf(in.Score, 0) {
		return nil, apperror.ValidationFailed("score", "score must be a finite number")
	}

	grade := &model.Grade{
		Date:      calendar.Day(in.Date),
		SubjectID: in.SubjectID,
		Score:     in.Score,
		Rank:      in.Rank,
	}
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		subject, err := tx.Subjects().GetByID(ctx, in.SubjectID)
		if err != nil {
			return err
		}
		grade.Subject = *subject
		return tx.Grades().Create(ctx, grade)
	})
	if err != nil {
		return nil, fmt.Errorf("creating grade: %w", err)
	}

	s.logger.Info("grade created",
		slog.Int64("id", grade.ID),
		slog.String("subject", grade.Subject.Name),
	)
	return grade, nil
}

// DeleteGrade removes a grade. An unknown id is apperror.ErrNotFound.
func (s *GradeService) DeleteGrade(ctx context.Context, id int64) error {
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		return tx.Grades().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("deleting grade: %w", err)
	}

	s.logger.Info("grade deleted", slog.Int64("id", id))
	return nil
}
