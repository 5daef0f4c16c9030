package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/study-organizer/internal/model"
	"github.com/sakif/study-organizer/internal/repository"
)

// ProfileService reads and edits the single user profile.
type ProfileService struct {
	store  repository.Store
	logger *slog.Logger
}

func NewProfileService(store repository.Store, logger *slog.Logger) *ProfileService {
	return &ProfileService{store: store, logger: logger}
}

// Get returns the profile, creating the default row first if it is missing.
func (s *ProfileService) Get(ctx context.Context) (*model.UserProfile, error) {
	var profile *model.UserProfile
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := tx.Profiles().Ensure(ctx); err != nil {
			return err
		}
		var err error
		profile, err = tx.Profiles().Get(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	return profile, nil
}

// Update sets the display name and avatar. A blank name keeps the current
// one; a blank avatar URL clears it.
func (s *ProfileService) Update(ctx context.Context, name, avatarURL string) (*model.UserProfile, error) {
	var profile *model.UserProfile
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := tx.Profiles().Ensure(ctx); err != nil {
			return err
		}
		current, err := tx.Profiles().Get(ctx)
		if err != nil {
			return err
		}

		if name = strings.TrimSpace(name); name != "" {
			current.Name = name
		}
		current.AvatarURL = strings.TrimSpace(avatarURL)

		if err := tx.Profiles().Update(ctx, current); err != nil {
			return err
		}
		profile = current
		return nil
	})
	if err != nil {
		s.logger.Error("failed to update profile", slog.String("error", err.Error()))
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	s.logger.Info("profile updated", slog.String("name", profile.Name))
	return profile, nil
}
