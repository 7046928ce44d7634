package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaskResult is returned by task completion operations
type TaskResult struct {
	Success    bool
	Reason     string
	Email      string
	Kind       TaskKind
	Reward     decimal.Decimal
	NewBalance decimal.Decimal
	Remaining  time.Duration // cooldown remaining when denied
}

// WithdrawalResult is returned by withdrawal request operations
type WithdrawalResult struct {
	Success    bool
	Reason     string
	Request    *WithdrawalRequest
	NewBalance decimal.Decimal
}

// BonusResult is returned by sign-up and admin bonus operations
type BonusResult struct {
	Success    bool
	Reason     string
	Email      string
	Amount     decimal.Decimal
	NewBalance decimal.Decimal
}

// CooldownStatus reports the effective quota state for display
type CooldownStatus struct {
	Available      bool
	CompletedCount int
	Remaining      time.Duration
}
