// Package session carries the identity of a logged-in account. A session
// never caches a balance: every read goes through the directory, so the
// session view and the admin view cannot drift apart.
package session

import (
	"context"

	"reward-wallet-go/internal/models"
	"reward-wallet-go/internal/store"

	"github.com/shopspring/decimal"
)

type Session struct {
	email     string
	name      string
	directory store.Directory
}

func New(account *models.Account, directory store.Directory) *Session {
	return &Session{
		email:     account.Email,
		name:      account.Name,
		directory: directory,
	}
}

func (s *Session) Email() string {
	return s.email
}

func (s *Session) Name() string {
	return s.name
}

// Balance reads the current wallet balance through the directory.
func (s *Session) Balance(ctx context.Context) (decimal.Decimal, error) {
	return s.directory.Balance(ctx, s.email)
}

// Account reloads the full account record.
func (s *Session) Account(ctx context.Context) (*models.Account, error) {
	return s.directory.GetAccount(ctx, s.email)
}

// History returns the account's ledger entries, newest first.
func (s *Session) History(ctx context.Context, limit, offset int) ([]models.LedgerEntry, error) {
	return s.directory.GetLedgerHistory(ctx, s.email, limit, offset)
}

// Withdrawals returns the account's withdrawal requests, optionally
// filtered by status.
func (s *Session) Withdrawals(ctx context.Context, status string) ([]models.WithdrawalRequest, error) {
	return s.directory.GetWithdrawals(ctx, s.email, status)
}
