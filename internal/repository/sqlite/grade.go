package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/study-organizer/internal/apperror"
	"github.com/sakif/study-organizer/internal/model"
)

type subjectRepo struct {
	q querier
}

func (r subjectRepo) Create(ctx context.Context, s *model.Subject) error {
	result, err := r.q.ExecContext(ctx, `INSERT INTO subjects (name) VALUES (?)`, s.Name)
	if err != nil {
		return fmt.Errorf("sqlite: creating subject: %w", err)
	}
	if s.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading subject id: %w", err)
	}
	return nil
}

func (r subjectRepo) GetByID(ctx context.Context, id int64) (*model.Subject, error) {
	var s model.Subject
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name FROM subjects WHERE id = ?`, id,
	).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("subject", id)
		}
		return nil, fmt.Errorf("sqlite: getting subject %d: %w", id, err)
	}
	return &s, nil
}

func (r subjectRepo) List(ctx context.Context) ([]model.Subject, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name FROM subjects ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing subjects: %w", err)
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("sqlite: scanning subject row: %w", err)
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating subjects: %w", err)
	}
	return subjects, nil
}

func (r subjectRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM subjects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: counting subjects: %w", err)
	}
	return n, nil
}

type gradeRepo struct {
	q querier
}

// Create inserts the grade. A subject_id with no matching subject fails the
// foreign key and is reported as the subject being NotFound.
func (r gradeRepo) Create(ctx context.Context, g *model.Grade) error {
	var rank sql.NullInt64
	if g.Rank != nil {
		rank = sql.NullInt64{Int64: int64(*g.Rank), Valid: true}
	}

	result, err := r.q.ExecContext(ctx,
		`INSERT INTO grades (the_date, subject_id, score, rank) VALUES (?, ?, ?, ?)`,
		formatDate(g.Date), g.SubjectID, g.Score, rank,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NotFound("subject", g.SubjectID)
		}
		return fmt.Errorf("sqlite: creating grade: %w", err)
	}
	if g.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading grade id: %w", err)
	}
	return nil
}

func (r gradeRepo) List(ctx context.Context) ([]model.Grade, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT g.id, g.the_date, g.subject_id, g.score, g.rank, s.id, s.name
		 FROM grades g
		 JOIN subjects s ON s.id = g.subject_id
		 ORDER BY g.the_date DESC, g.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing grades: %w", err)
	}
	defer rows.Close()

	var grades []model.Grade
	for rows.Next() {
		var (
			g       model.Grade
			theDate string
			rank    sql.NullInt64
		)
		if err := rows.Scan(&g.ID, &theDate, &g.SubjectID, &g.Score, &rank, &g.Subject.ID, &g.Subject.Name); err != nil {
			return nil, fmt.Errorf("sqlite: scanning grade row: %w", err)
		}
		if g.Date, err = parseDate(theDate); err != nil {
			return nil, err
		}
		if rank.Valid {
			v := int(rank.Int64)
			g.Rank = &v
		}
		grades = append(grades, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating grades: %w", err)
	}
	return grades, nil
}

func (r gradeRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM grades WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting grade %d: %w", id, err)
	}
	return checkAffected(result, apperror.NotFound("grade", id))
}
