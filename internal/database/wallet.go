package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"reward-wallet-go/internal/models"
	"reward-wallet-go/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// applyEntryTx atomically records a ledger entry and moves the account
// balance inside an open transaction. amount is signed: credits positive,
// debits negative. A debit that would take the balance negative fails with
// store.ErrInsufficientFunds and leaves nothing written.
func applyEntryTx(ctx context.Context, tx *sql.Tx, email string, amount decimal.Decimal, entryType, reference string, now time.Time, setBonusFlag bool) (*models.LedgerEntry, error) {
	var balanceStr string
	var bonusClaimed int
	var version int64

	err := tx.QueryRowContext(ctx, queryGetBalanceForUpdate, email).Scan(&balanceStr, &bonusClaimed, &version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", store.ErrNotFound, email)
		}
		return nil, fmt.Errorf("failed to get current balance: %w", err)
	}

	balanceBefore, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse current balance %q: %w", balanceStr, err)
	}

	balanceAfter := balanceBefore.Add(amount)
	if balanceAfter.IsNegative() {
		return nil, fmt.Errorf("%w: balance=%s, debit=%s", store.ErrInsufficientFunds, balanceBefore.String(), amount.Neg().String())
	}

	entry := &models.LedgerEntry{
		Id:            uuid.New().String(),
		Email:         email,
		EntryType:     entryType,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Reference:     reference,
		CreatedAt:     now,
	}

	_, err = tx.ExecContext(ctx, queryInsertLedgerEntry,
		entry.Id, entry.Email, entry.EntryType,
		entry.Amount.String(), entry.BalanceBefore.String(), entry.BalanceAfter.String(),
		entry.Reference, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert ledger entry: %w", err)
	}

	updateQuery := queryUpdateBalance
	if setBonusFlag {
		updateQuery = queryUpdateBalanceAndBonusFlag
	}
	result, err := tx.ExecContext(ctx, updateQuery, balanceAfter.String(), email, version)
	if err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("balance update failed - %w", store.ErrConcurrentModification)
	}

	return entry, nil
}

// processEntry runs applyEntryTx within its own transaction.
func (s *Service) processEntry(ctx context.Context, email string, amount decimal.Decimal, params store.EntryParams, setBonusFlag bool) (*models.LedgerEntry, error) {
	email = store.NormalizeEmail(email)

	zap.L().Info("Processing ledger entry",
		zap.String("email", email),
		zap.String("entry_type", params.EntryType),
		zap.String("amount", amount.String()))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	entry, err := applyEntryTx(ctx, tx, email, amount, params.EntryType, params.Reference, time.Now(), setBonusFlag)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.L().Info("Ledger entry processed successfully",
		zap.String("entry_id", entry.Id),
		zap.String("email", email),
		zap.String("old_balance", entry.BalanceBefore.String()),
		zap.String("new_balance", entry.BalanceAfter.String()))

	return entry, nil
}

func (s *Service) Balance(ctx context.Context, email string) (decimal.Decimal, error) {
	account, err := s.GetAccount(ctx, email)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

// Credit adds amount to the account wallet and records the audit entry.
func (s *Service) Credit(ctx context.Context, email string, amount decimal.Decimal, params store.EntryParams) (*models.LedgerEntry, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("credit amount must be positive, got %s", amount.String())
	}
	return s.processEntry(ctx, email, amount, params, false)
}

// Debit removes amount from the account wallet, failing with
// store.ErrInsufficientFunds when amount exceeds the balance.
func (s *Service) Debit(ctx context.Context, email string, amount decimal.Decimal, params store.EntryParams) (*models.LedgerEntry, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("debit amount must be positive, got %s", amount.String())
	}
	return s.processEntry(ctx, email, amount.Neg(), params, false)
}

// ClaimSignupBonus credits the one-time sign-up bonus. The bonus-claimed
// flag flips in the same transaction as the credit so a second claim can
// never double-count.
func (s *Service) ClaimSignupBonus(ctx context.Context, email string, amount decimal.Decimal) (*models.LedgerEntry, error) {
	email = store.NormalizeEmail(email)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var balanceStr string
	var bonusClaimed int
	var version int64
	err = tx.QueryRowContext(ctx, queryGetBalanceForUpdate, email).Scan(&balanceStr, &bonusClaimed, &version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", store.ErrNotFound, email)
		}
		return nil, fmt.Errorf("failed to get account for bonus claim: %w", err)
	}
	if bonusClaimed != 0 {
		return nil, fmt.Errorf("%w: %s", store.ErrBonusAlreadyClaimed, email)
	}

	entry, err := applyEntryTx(ctx, tx, email, amount, models.EntrySignupBonus, "one-time sign-up bonus", time.Now(), true)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.L().Info("Sign-up bonus claimed",
		zap.String("email", email),
		zap.String("amount", amount.String()),
		zap.String("new_balance", entry.BalanceAfter.String()))

	return entry, nil
}

// GetLedgerHistory returns paginated ledger history for an account
func (s *Service) GetLedgerHistory(ctx context.Context, email string, limit, offset int) ([]models.LedgerEntry, error) {
	email = store.NormalizeEmail(email)
	zap.L().Debug("Getting ledger history",
		zap.String("email", email),
		zap.Int("limit", limit),
		zap.Int("offset", offset))

	rows, err := s.db.QueryContext(ctx, queryGetLedgerHistory, email, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger history: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var entries []models.LedgerEntry
	for rows.Next() {
		var entry models.LedgerEntry
		var amountStr, beforeStr, afterStr string
		err := rows.Scan(&entry.Id, &entry.Email, &entry.EntryType,
			&amountStr, &beforeStr, &afterStr,
			&entry.Reference, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}

		entry.Amount, err = decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount %q: %w", amountStr, err)
		}
		entry.BalanceBefore, err = decimal.NewFromString(beforeStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse balance_before %q: %w", beforeStr, err)
		}
		entry.BalanceAfter, err = decimal.NewFromString(afterStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse balance_after %q: %w", afterStr, err)
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during ledger row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}

	return entries, nil
}
