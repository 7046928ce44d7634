package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"reward-wallet-go/internal/models"

	"github.com/shopspring/decimal"
)

// NormalizeEmail canonicalizes the case-insensitive account key. Every
// backend stores and looks up accounts under this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Sentinel errors shared across all backend implementations.
var (
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrConcurrentModification = errors.New("concurrent modification detected")
	ErrNotFound               = errors.New("not found")
	ErrDuplicateEmail         = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrBonusAlreadyClaimed    = errors.New("sign-up bonus already claimed")
	ErrNotPending             = errors.New("withdrawal request is not pending")
)

// CreateAccountParams contains the parameters for registering an account.
type CreateAccountParams struct {
	Id       string
	Name     string
	Email    string
	Password string
}

// ProfileParams contains the mutable profile fields of an account.
type ProfileParams struct {
	Name    string
	Address string
	Upi     string
}

// EntryParams describes the ledger entry recorded alongside a credit or
// debit so every balance mutation leaves an audit row.
type EntryParams struct {
	EntryType string
	Reference string
}

// CreateWithdrawalParams contains the parameters for a withdrawal request.
// The wallet debit and the request append happen in one transaction.
type CreateWithdrawalParams struct {
	Email       string
	Amount      decimal.Decimal
	Destination string
	Now         time.Time
}

// Directory defines the contract that every backend (SQLite, in-memory)
// must satisfy. It is the single source of truth for accounts, wallets,
// withdrawal requests, and persisted quota state; every mutation funnels
// through it so the session view and the admin view can never diverge.
type Directory interface {
	// --- Accounts ---
	CreateAccount(ctx context.Context, params CreateAccountParams) (*models.Account, error)
	GetAccount(ctx context.Context, email string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	UpdateProfile(ctx context.Context, email string, params ProfileParams) (*models.Account, error)

	// --- Wallet ---
	Balance(ctx context.Context, email string) (decimal.Decimal, error)
	Credit(ctx context.Context, email string, amount decimal.Decimal, params EntryParams) (*models.LedgerEntry, error)
	Debit(ctx context.Context, email string, amount decimal.Decimal, params EntryParams) (*models.LedgerEntry, error)
	ClaimSignupBonus(ctx context.Context, email string, amount decimal.Decimal) (*models.LedgerEntry, error)

	// --- Withdrawals ---
	CreateWithdrawal(ctx context.Context, params CreateWithdrawalParams) (*models.WithdrawalRequest, error)
	GetWithdrawal(ctx context.Context, id string) (*models.WithdrawalRequest, error)
	GetWithdrawals(ctx context.Context, email, status string) ([]models.WithdrawalRequest, error)
	TransitionWithdrawal(ctx context.Context, id, from, to string) (bool, error)

	// --- Quota ---
	GetQuotaState(ctx context.Context, email string) (models.TaskQuotaState, error)
	SaveQuotaState(ctx context.Context, email string, state models.TaskQuotaState) error

	// --- Ledger ---
	GetLedgerHistory(ctx context.Context, email string, limit, offset int) ([]models.LedgerEntry, error)

	// --- Lifecycle ---
	Close()
}
