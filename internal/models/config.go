package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config represents the application configuration
type Config struct {
	Database   DatabaseConfig
	Quota      QuotaConfig
	Withdrawal WithdrawalPolicy
	Bonus      BonusConfig
	Poll       PollConfig
	Admin      AdminConfig
}

// DatabaseConfig holds directory backend settings
type DatabaseConfig struct {
	Backend         string // "memory" or "sqlite"
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// QuotaConfig holds task quota gate settings
type QuotaConfig struct {
	TaskLimit int
	Cooldown  time.Duration
	TasksFile string
}

// WithdrawalPolicy holds the withdrawal eligibility bounds
type WithdrawalPolicy struct {
	MinEligibleBalance decimal.Decimal
	MinAmount          decimal.Decimal
	MaxAmount          decimal.Decimal
}

// BonusConfig holds the one-time sign-up bonus amount
type BonusConfig struct {
	SignupAmount decimal.Decimal
}

// PollConfig holds cooldown refresh poll settings
type PollConfig struct {
	Interval time.Duration
}

// AdminConfig is a hardcoded credential placeholder, not a security model.
// Any real deployment replaces this wholesale.
type AdminConfig struct {
	Email    string
	Password string
}
