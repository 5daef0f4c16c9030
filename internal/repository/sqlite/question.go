package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sakif/study-organizer/internal/apperror"
	"github.com/sakif/study-organizer/internal/model"
)

type questionRepo struct {
	q querier
}

// Create inserts the question and stamps CreatedAt when unset.
func (r questionRepo) Create(ctx context.Context, q *model.Question) error {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}
	q.CreatedAt = q.CreatedAt.UTC()

	result, err := r.q.ExecContext(ctx,
		`INSERT INTO questions (created_at, text, answer) VALUES (?, ?, ?)`,
		q.CreatedAt.Format(timestampLayout), q.Text, nullString(q.Answer),
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating question: %w", err)
	}
	if q.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading question id: %w", err)
	}
	return nil
}

func (r questionRepo) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	q, err := scanQuestion(r.q.QueryRowContext(ctx,
		`SELECT id, created_at, text, answer FROM questions WHERE id = ?`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("question", id)
		}
		return nil, fmt.Errorf("sqlite: getting question %d: %w", id, err)
	}
	return q, nil
}

func (r questionRepo) List(ctx context.Context) ([]model.Question, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, created_at, text, answer FROM questions
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing questions: %w", err)
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning question row: %w", err)
		}
		questions = append(questions, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating questions: %w", err)
	}
	return questions, nil
}

func (r questionRepo) SetAnswer(ctx context.Context, id int64, answer *string) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE questions SET answer = ? WHERE id = ?`,
		nullString(answer), id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: answering question %d: %w", id, err)
	}
	return checkAffected(result, apperror.NotFound("question", id))
}

func scanQuestion(s scanner) (*model.Question, error) {
	var (
		q         model.Question
		createdAt string
		answer    sql.NullString
	)
	if err := s.Scan(&q.ID, &createdAt, &q.Text, &answer); err != nil {
		return nil, err
	}
	t, err := time.Parse(timestampLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("sqlite: parsing stored timestamp %q: %w", createdAt, err)
	}
	q.CreatedAt = t
	if answer.Valid {
		q.Answer = &answer.String
	}
	return &q, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
