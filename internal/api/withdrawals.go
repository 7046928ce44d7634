package api

import (
	"context"
	"errors"
	"strings"

	"reward-wallet-go/internal/models"
	"reward-wallet-go/internal/session"
	"reward-wallet-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RequestWithdrawal validates and files a withdrawal request. The checks
// run in a fixed order and each failure reports its own reason, so the
// account always learns the first gate it failed:
//
//  1. the wallet balance meets the eligibility floor
//  2. the amount is a positive whole number of points
//  3. the destination looks like a payout address
//  4. the amount meets the per-request minimum
//  5. the amount does not exceed the per-request maximum
//  6. the amount does not exceed the balance
//
// On success the debit and the Pending request are recorded in one
// transaction.
func (ws *WalletService) RequestWithdrawal(ctx context.Context, sess *session.Session, amount decimal.Decimal, destination string) (*models.WithdrawalResult, error) {
	policy := ws.cfg.Withdrawal

	balance, err := sess.Balance(ctx)
	if err != nil {
		return nil, err
	}

	reject := func(reason string) *models.WithdrawalResult {
		zap.L().Info("Withdrawal rejected",
			zap.String("email", sess.Email()),
			zap.String("amount", amount.String()),
			zap.String("reason", reason))
		return &models.WithdrawalResult{
			Success:    false,
			Reason:     reason,
			NewBalance: balance,
		}
	}

	if balance.LessThan(policy.MinEligibleBalance) {
		return reject("below minimum eligible balance"), nil
	}
	if amount.LessThanOrEqual(decimal.Zero) || !amount.IsInteger() {
		return reject("invalid amount"), nil
	}
	if !strings.Contains(destination, "@") {
		return reject("invalid destination"), nil
	}
	if amount.LessThan(policy.MinAmount) {
		return reject("below minimum withdrawal"), nil
	}
	if amount.GreaterThan(policy.MaxAmount) {
		return reject("exceeds maximum withdrawal"), nil
	}
	if amount.GreaterThan(balance) {
		return reject("insufficient funds"), nil
	}

	request, err := ws.directory.CreateWithdrawal(ctx, store.CreateWithdrawalParams{
		Email:       sess.Email(),
		Amount:      amount,
		Destination: destination,
		Now:         ws.clock.Now(),
	})
	if err != nil {
		// A concurrent debit can still drain the balance between the
		// check and the transaction; surface it as the same reason.
		if errors.Is(err, store.ErrInsufficientFunds) {
			return reject("insufficient funds"), nil
		}
		return nil, err
	}

	newBalance, err := sess.Balance(ctx)
	if err != nil {
		return nil, err
	}

	return &models.WithdrawalResult{
		Success:    true,
		Request:    request,
		NewBalance: newBalance,
	}, nil
}
