/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"reward-wallet-go/internal/models"

	"github.com/shopspring/decimal"
)

func Load() (*models.Config, error) {
	cooldown, err := getEnvDuration("QUOTA_COOLDOWN", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	pollInterval, err := getEnvDuration("POLL_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}

	connMaxLifetime, err := getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	connMaxIdleTime, err := getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second)
	if err != nil {
		return nil, err
	}

	pingTimeout, err := getEnvDuration("DB_PING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	minEligible, err := getEnvDecimal("WITHDRAW_MIN_ELIGIBLE_BALANCE", "1000")
	if err != nil {
		return nil, err
	}

	minAmount, err := getEnvDecimal("WITHDRAW_MIN_AMOUNT", "50")
	if err != nil {
		return nil, err
	}

	maxAmount, err := getEnvDecimal("WITHDRAW_MAX_AMOUNT", "1000")
	if err != nil {
		return nil, err
	}

	signupBonus, err := getEnvDecimal("SIGNUP_BONUS_AMOUNT", "50")
	if err != nil {
		return nil, err
	}

	return &models.Config{
		Database: models.DatabaseConfig{
			Backend:         getEnvString("STORE_BACKEND", "sqlite"),
			Path:            getEnvString("DATABASE_PATH", "wallet.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: connMaxLifetime,
			ConnMaxIdleTime: connMaxIdleTime,
			PingTimeout:     pingTimeout,
		},
		Quota: models.QuotaConfig{
			TaskLimit: getEnvInt("QUOTA_TASK_LIMIT", 5),
			Cooldown:  cooldown,
			TasksFile: getEnvString("TASKS_FILE", "tasks.yaml"),
		},
		Withdrawal: models.WithdrawalPolicy{
			MinEligibleBalance: minEligible,
			MinAmount:          minAmount,
			MaxAmount:          maxAmount,
		},
		Bonus: models.BonusConfig{
			SignupAmount: signupBonus,
		},
		Poll: models.PollConfig{
			Interval: pollInterval,
		},
		Admin: models.AdminConfig{
			Email:    getEnvString("ADMIN_EMAIL", "admin@example.com"),
			Password: getEnvString("ADMIN_PASSWORD", "admin"),
		},
	}, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDecimal(key, defaultValue string) (decimal.Decimal, error) {
	raw := os.Getenv(key)
	if raw == "" {
		raw = defaultValue
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount for %s: %q (%w)", key, raw, err)
	}
	return value, nil
}
