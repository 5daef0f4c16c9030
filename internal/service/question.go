package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/study-organizer/internal/model"
	"github.com/sakif/study-organizer/internal/repository"
)

// QuestionService manages the question log.
type QuestionService struct {
	store  repository.Store
	logger *slog.Logger
}

func NewQuestionService(store repository.Store, logger *slog.Logger) *QuestionService {
	return &QuestionService{store: store, logger: logger}
}

// List returns every question, newest first.
func (s *QuestionService) List(ctx context.Context) ([]model.Question, error) {
	var questions []model.Question
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		questions, err = tx.Questions().List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}
	return questions, nil
}

// Ask records a new question. Blank text is ignored: no row is created, and
// (nil, nil) is returned.
func (s *QuestionService) Ask(ctx context.Context, text string) (*model.Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	question := &model.Question{Text: text}
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		return tx.Questions().Create(ctx, question)
	})
	if err != nil {
		s.logger.Error("failed to create question", slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating question: %w", err)
	}

	s.logger.Info("question created", slog.Int64("id", question.ID))
	return question, nil
}

// Answer sets the answer of question id. Blank input clears it.
// Returns apperror.ErrNotFound for an unknown id.
func (s *QuestionService) Answer(ctx context.Context, id int64, answer string) (*model.Question, error) {
	var value *string
	if trimmed := strings.TrimSpace(answer); trimmed != "" {
		value = &trimmed
	}

	var question *model.Question
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := tx.Questions().SetAnswer(ctx, id, value); err != nil {
			return err
		}
		var err error
		question, err = tx.Questions().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("answering question: %w", err)
	}

	s.logger.Info("question answered", slog.Int64("id", id), slog.Bool("cleared", value == nil))
	return question, nil
}
