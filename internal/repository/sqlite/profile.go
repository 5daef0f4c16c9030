package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/study-organizer/internal/apperror"
	"github.com/sakif/study-organizer/internal/model"
)

// profileRepo stores the singleton profile row (id = model.ProfileID).
type profileRepo struct {
	q querier
}

// Ensure inserts the default profile. INSERT OR IGNORE keeps an existing row
// untouched, so this never duplicates and never resets user edits.
func (r profileRepo) Ensure(ctx context.Context) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_profile (id, name, avatar_url) VALUES (?, ?, '')`,
		model.ProfileID, model.DefaultProfileName,
	)
	if err != nil {
		return fmt.Errorf("sqlite: ensuring profile: %w", err)
	}
	return nil
}

func (r profileRepo) Get(ctx context.Context) (*model.UserProfile, error) {
	var p model.UserProfile
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, avatar_url FROM user_profile WHERE id = ?`,
		model.ProfileID,
	).Scan(&p.ID, &p.Name, &p.AvatarURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("profile", model.ProfileID)
		}
		return nil, fmt.Errorf("sqlite: getting profile: %w", err)
	}
	return &p, nil
}

func (r profileRepo) Update(ctx context.Context, p *model.UserProfile) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE user_profile SET name = ?, avatar_url = ? WHERE id = ?`,
		p.Name, p.AvatarURL, model.ProfileID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating profile: %w", err)
	}
	p.ID = model.ProfileID
	return checkAffected(result, apperror.NotFound("profile", model.ProfileID))
}
