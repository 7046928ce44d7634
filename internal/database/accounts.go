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

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"reward-wallet-go/internal/models"
	"reward-wallet-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (s *Service) CreateAccount(ctx context.Context, params store.CreateAccountParams) (*models.Account, error) {
	email := store.NormalizeEmail(params.Email)
	zap.L().Info("Creating account", zap.String("id", params.Id), zap.String("email", email))

	result, err := s.db.ExecContext(ctx, queryInsertAccount, params.Id, params.Name, email, params.Password)
	if err != nil {
		zap.L().Error("Failed to insert account", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("unable to insert account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("unable to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("%w: %s", store.ErrDuplicateEmail, email)
	}

	zap.L().Info("Account created successfully", zap.String("id", params.Id), zap.String("email", email))
	return s.GetAccount(ctx, email)
}

func (s *Service) GetAccount(ctx context.Context, email string) (*models.Account, error) {
	email = store.NormalizeEmail(email)
	zap.L().Debug("Querying account by email", zap.String("email", email))

	row := s.db.QueryRowContext(ctx, queryGetAccount, email)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", store.ErrNotFound, email)
		}
		zap.L().Error("Failed to query account", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("unable to query account: %w", err)
	}

	return account, nil
}

func (s *Service) ListAccounts(ctx context.Context) ([]models.Account, error) {
	rows, err := s.db.QueryContext(ctx, queryListAccounts)
	if err != nil {
		zap.L().Error("Failed to query accounts", zap.Error(err))
		return nil, fmt.Errorf("unable to query accounts: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var accounts []models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("unable to scan account row: %w", err)
		}
		accounts = append(accounts, *account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	zap.L().Info("Retrieved accounts", zap.Int("count", len(accounts)))
	return accounts, nil
}

func (s *Service) UpdateProfile(ctx context.Context, email string, params store.ProfileParams) (*models.Account, error) {
	email = store.NormalizeEmail(email)

	result, err := s.db.ExecContext(ctx, queryUpdateProfile, params.Name, params.Address, params.Upi, email)
	if err != nil {
		return nil, fmt.Errorf("unable to update profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("unable to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("%w: account %s", store.ErrNotFound, email)
	}

	zap.L().Info("Profile updated", zap.String("email", email))
	return s.GetAccount(ctx, email)
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var account models.Account
	var balanceStr string
	var bonusClaimed int

	err := row.Scan(
		&account.Id, &account.Name, &account.Email, &account.Password,
		&account.Address, &account.Upi, &balanceStr, &bonusClaimed,
		&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, err
	}

	account.Balance, err = decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance %q: %w", balanceStr, err)
	}
	account.BonusClaimed = bonusClaimed != 0

	return &account, nil
}
