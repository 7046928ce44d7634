package api

import (
	"context"
	"errors"
	"fmt"

	"reward-wallet-go/internal/models"
	"reward-wallet-go/internal/session"
	"reward-wallet-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ClaimSignupBonus credits the one-time sign-up bonus. The directory's
// bonus_claimed flag guards against a second grant.
func (ws *WalletService) ClaimSignupBonus(ctx context.Context, sess *session.Session) (*models.BonusResult, error) {
	amount := ws.cfg.Bonus.SignupAmount

	entry, err := ws.directory.ClaimSignupBonus(ctx, sess.Email(), amount)
	if err != nil {
		if errors.Is(err, store.ErrBonusAlreadyClaimed) {
			return &models.BonusResult{
				Success: false,
				Reason:  "sign-up bonus already claimed",
				Email:   sess.Email(),
			}, nil
		}
		return nil, err
	}

	return &models.BonusResult{
		Success:    true,
		Email:      sess.Email(),
		Amount:     amount,
		NewBalance: entry.BalanceAfter,
	}, nil
}

// CompleteTask runs one reward-earning task through the quota gate. For
// the game kind the reward is the caller-computed payout; fixed kinds take
// their amount from the schedule. Order is gate check, credit, count —
// a denied attempt touches neither the wallet nor the counter.
func (ws *WalletService) CompleteTask(ctx context.Context, sess *session.Session, kind models.TaskKind, gamePayout decimal.Decimal) (*models.TaskResult, error) {
	now := ws.clock.Now()

	gate, err := ws.gateFor(ctx, sess.Email())
	if err != nil {
		return nil, err
	}

	decision := gate.AttemptReward(now)
	if !decision.Allowed {
		zap.L().Info("Task reward denied, quota cooldown active",
			zap.String("email", sess.Email()),
			zap.Duration("remaining", decision.Remaining))
		return &models.TaskResult{
			Success:   false,
			Reason:    "task quota exceeded, cooldown active",
			Email:     sess.Email(),
			Kind:      kind,
			Remaining: decision.Remaining,
		}, nil
	}

	var reward decimal.Decimal
	entryType := models.EntryTaskReward
	reference := fmt.Sprintf("%s task reward", kind)
	if ws.rewards.IsVariable(kind) {
		if gamePayout.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("game payout must be positive, got %s", gamePayout.String())
		}
		reward = gamePayout
		entryType = models.EntryGamePayout
		reference = "game winnings"
	} else {
		reward, err = ws.rewards.RewardFor(kind)
		if err != nil {
			return nil, err
		}
	}

	entry, err := ws.directory.Credit(ctx, sess.Email(), reward, store.EntryParams{
		EntryType: entryType,
		Reference: reference,
	})
	if err != nil {
		return nil, err
	}

	gate.RecordCompletion(now)
	if err := ws.persistQuota(ctx, sess.Email(), gate); err != nil {
		return nil, fmt.Errorf("reward credited but quota state not persisted: %w", err)
	}

	zap.L().Info("Task completed",
		zap.String("email", sess.Email()),
		zap.String("kind", string(kind)),
		zap.String("reward", reward.String()),
		zap.String("balance", entry.BalanceAfter.String()))

	return &models.TaskResult{
		Success:    true,
		Email:      sess.Email(),
		Kind:       kind,
		Reward:     reward,
		NewBalance: entry.BalanceAfter,
	}, nil
}

// RecordGameStake debits the stake when a game round begins. Losing the
// stake is not a quota event; only winnings pass through the gate.
func (ws *WalletService) RecordGameStake(ctx context.Context, sess *session.Session, stake decimal.Decimal) (*models.LedgerEntry, error) {
	if stake.LessThanOrEqual(decimal.Zero) || !stake.IsInteger() {
		return nil, fmt.Errorf("stake must be a positive whole number of points, got %s", stake.String())
	}
	return ws.directory.Debit(ctx, sess.Email(), stake, store.EntryParams{
		EntryType: models.EntryGameStake,
		Reference: "game stake",
	})
}

// QueryCooldown reports the effective quota state for the account at now.
func (ws *WalletService) QueryCooldown(ctx context.Context, sess *session.Session) (*models.CooldownStatus, error) {
	gate, err := ws.gateFor(ctx, sess.Email())
	if err != nil {
		return nil, err
	}

	status := gate.Status(ws.clock.Now())

	// The lazy check may have just reset the window; persist that.
	if err := ws.persistQuota(ctx, sess.Email(), gate); err != nil {
		return nil, err
	}
	return &status, nil
}
