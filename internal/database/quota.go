package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"reward-wallet-go/internal/models"
	"reward-wallet-go/internal/store"

	"go.uber.org/zap"
)

// GetQuotaState loads the persisted quota state for an account. A missing
// row is a fresh state, not an error.
func (s *Service) GetQuotaState(ctx context.Context, email string) (models.TaskQuotaState, error) {
	email = store.NormalizeEmail(email)

	var state models.TaskQuotaState
	var cooldownStart sql.NullTime

	err := s.db.QueryRowContext(ctx, queryGetQuotaState, email).Scan(&state.CompletedCount, &cooldownStart)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TaskQuotaState{}, nil
		}
		return models.TaskQuotaState{}, fmt.Errorf("unable to query quota state: %w", err)
	}

	if cooldownStart.Valid {
		start := cooldownStart.Time
		state.CooldownStart = &start
	}
	return state, nil
}

func (s *Service) SaveQuotaState(ctx context.Context, email string, state models.TaskQuotaState) error {
	email = store.NormalizeEmail(email)

	var cooldownStart interface{}
	if state.CooldownStart != nil {
		cooldownStart = state.CooldownStart.UTC().Format(time.RFC3339Nano)
	}

	_, err := s.db.ExecContext(ctx, queryUpsertQuotaState, email, state.CompletedCount, cooldownStart)
	if err != nil {
		return fmt.Errorf("unable to save quota state: %w", err)
	}

	zap.L().Debug("Quota state saved",
		zap.String("email", email),
		zap.Int("completed_count", state.CompletedCount),
		zap.Bool("in_cooldown", state.CooldownStart != nil))
	return nil
}
