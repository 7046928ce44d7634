package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a registered reward-wallet account
type Account struct {
	Id           string          `db:"id"`
	Name         string          `db:"name"`
	Email        string          `db:"email"`
	Password     string          `db:"password"`
	Address      string          `db:"address"`
	Upi          string          `db:"upi"`
	Balance      decimal.Decimal `db:"balance"`
	BonusClaimed bool            `db:"bonus_claimed"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

// Entry types recorded in the wallet ledger.
const (
	EntryTaskReward  = "task-reward"
	EntrySignupBonus = "signup-bonus"
	EntryAdminBonus  = "admin-bonus"
	EntryWithdrawal  = "withdrawal"
	EntryGameStake   = "game-stake"
	EntryGamePayout  = "game-payout"
)

// LedgerEntry represents immutable credit/debit history (cold data).
// Amount is signed: credits positive, debits negative.
type LedgerEntry struct {
	Id            string          `db:"id"`
	Email         string          `db:"email"`
	EntryType     string          `db:"entry_type"`
	Amount        decimal.Decimal `db:"amount"`
	BalanceBefore decimal.Decimal `db:"balance_before"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	Reference     string          `db:"reference"`
	CreatedAt     time.Time       `db:"created_at"`
}

// Withdrawal request lifecycle statuses. Pending is the only non-terminal
// status; Approved and Failed never transition again.
const (
	WithdrawalPending  = "Pending"
	WithdrawalApproved = "Approved"
	WithdrawalFailed   = "Failed"
)

// WithdrawalRequest represents an account's intent to convert wallet
// balance into an external payout, subject to admin approval.
type WithdrawalRequest struct {
	Id          string          `db:"id"`
	Email       string          `db:"email"`
	Amount      decimal.Decimal `db:"amount"`
	Destination string          `db:"destination"`
	Status      string          `db:"status"`
	CreatedAt   time.Time       `db:"created_at"`
}
