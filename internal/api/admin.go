package api

import (
	"context"
	"errors"
	"fmt"

	"reward-wallet-go/internal/models"
	"reward-wallet-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AuthenticateAdmin checks the configured admin credential pair. This is
// a placeholder gate for the command-line tools, not a security model.
func (ws *WalletService) AuthenticateAdmin(email, password string) error {
	if email != ws.cfg.Admin.Email || password != ws.cfg.Admin.Password {
		return fmt.Errorf("%w: admin", store.ErrInvalidCredentials)
	}
	return nil
}

// ApproveWithdrawal moves a Pending request to Approved. Approving a
// request that already left Pending is a no-op, so repeated approvals of
// the same id are safe.
func (ws *WalletService) ApproveWithdrawal(ctx context.Context, id string) (*models.WithdrawalRequest, error) {
	return ws.transition(ctx, id, models.WithdrawalApproved)
}

// RejectWithdrawal moves a Pending request to Failed. The original debit
// stands; a rejected payout does not restore the points.
func (ws *WalletService) RejectWithdrawal(ctx context.Context, id string) (*models.WithdrawalRequest, error) {
	return ws.transition(ctx, id, models.WithdrawalFailed)
}

func (ws *WalletService) transition(ctx context.Context, id, to string) (*models.WithdrawalRequest, error) {
	changed, err := ws.directory.TransitionWithdrawal(ctx, id, models.WithdrawalPending, to)
	if err != nil {
		return nil, err
	}

	request, err := ws.directory.GetWithdrawal(ctx, id)
	if err != nil {
		return nil, err
	}
	if !changed {
		zap.L().Info("Withdrawal transition was a no-op",
			zap.String("request_id", id),
			zap.String("status", request.Status))
	}
	return request, nil
}

// PendingWithdrawals lists every request awaiting a decision.
func (ws *WalletService) PendingWithdrawals(ctx context.Context) ([]models.WithdrawalRequest, error) {
	return ws.directory.GetWithdrawals(ctx, "", models.WithdrawalPending)
}

// GrantBonus credits an arbitrary account through the same write path as
// every other mutation, leaving an audit entry. An unknown email is a
// no-op result rather than an error, so a mistyped address cannot mint
// points anywhere.
func (ws *WalletService) GrantBonus(ctx context.Context, email string, amount decimal.Decimal) (*models.BonusResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) || !amount.IsInteger() {
		return nil, fmt.Errorf("bonus must be a positive whole number of points, got %s", amount.String())
	}

	entry, err := ws.directory.Credit(ctx, email, amount, store.EntryParams{
		EntryType: models.EntryAdminBonus,
		Reference: "admin bonus grant",
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			zap.L().Warn("Bonus grant skipped, no such account", zap.String("email", email))
			return &models.BonusResult{
				Success: false,
				Reason:  "no such account",
				Email:   email,
			}, nil
		}
		return nil, err
	}

	zap.L().Info("Bonus granted",
		zap.String("email", email),
		zap.String("amount", amount.String()),
		zap.String("balance", entry.BalanceAfter.String()))

	return &models.BonusResult{
		Success:    true,
		Email:      email,
		Amount:     amount,
		NewBalance: entry.BalanceAfter,
	}, nil
}
