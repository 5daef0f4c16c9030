package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/study-organizer/internal/model"
	"github.com/sakif/study-organizer/internal/repository"
)

// Initialize seeds the store: the singleton profile, and the given subjects
// when no subject exists yet. It is idempotent and runs on every startup as
// well as from the initdb command.
func Initialize(ctx context.Context, store repository.Store, subjects []string, logger *slog.Logger) error {
	err := store.WithTx(ctx, func(tx repository.Tx) error {
		if err := tx.Profiles().Ensure(ctx); err != nil {
			return err
		}

		n, err := tx.Subjects().Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		for _, name := range subjects {
			if err := tx.Subjects().Create(ctx, &model.Subject{Name: name}); err != nil {
				return err
			}
		}
		logger.Info("seeded default subjects", slog.Int("count", len(subjects)))
		return nil
	})
	if err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}
	return nil
}
