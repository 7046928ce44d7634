package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"reward-wallet-go/internal/models"
	"reward-wallet-go/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateWithdrawal debits the wallet and appends a Pending request in one
// transaction. If the debit fails, no request is logged.
func (s *Service) CreateWithdrawal(ctx context.Context, params store.CreateWithdrawalParams) (*models.WithdrawalRequest, error) {
	email := store.NormalizeEmail(params.Email)

	zap.L().Info("Creating withdrawal request",
		zap.String("email", email),
		zap.String("amount", params.Amount.String()),
		zap.String("destination", params.Destination))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	request := &models.WithdrawalRequest{
		Id:          uuid.New().String(),
		Email:       email,
		Amount:      params.Amount,
		Destination: params.Destination,
		Status:      models.WithdrawalPending,
		CreatedAt:   params.Now,
	}

	reference := fmt.Sprintf("withdrawal request %s to %s", request.Id, params.Destination)
	if _, err := applyEntryTx(ctx, tx, email, params.Amount.Neg(), models.EntryWithdrawal, reference, params.Now, false); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, queryInsertWithdrawal,
		request.Id, request.Email, request.Amount.String(),
		request.Destination, request.Status, params.Now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert withdrawal request: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.L().Info("Withdrawal request created",
		zap.String("request_id", request.Id),
		zap.String("email", email),
		zap.String("amount", params.Amount.String()))

	return request, nil
}

func (s *Service) GetWithdrawal(ctx context.Context, id string) (*models.WithdrawalRequest, error) {
	row := s.db.QueryRowContext(ctx, queryGetWithdrawal, id)
	request, err := scanWithdrawal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: withdrawal request %s", store.ErrNotFound, id)
		}
		return nil, fmt.Errorf("unable to query withdrawal request: %w", err)
	}
	return request, nil
}

// GetWithdrawals lists withdrawal requests, newest first. Empty email or
// status means no filter on that field.
func (s *Service) GetWithdrawals(ctx context.Context, email, status string) ([]models.WithdrawalRequest, error) {
	query := queryGetWithdrawalsAll
	var args []interface{}

	switch {
	case email != "" && status != "":
		query = `
		SELECT id, email, amount, destination, status, created_at
		FROM withdrawal_requests
		WHERE email = ? AND status = ?
		ORDER BY created_at DESC`
		args = []interface{}{store.NormalizeEmail(email), status}
	case email != "":
		query = `
		SELECT id, email, amount, destination, status, created_at
		FROM withdrawal_requests
		WHERE email = ?
		ORDER BY created_at DESC`
		args = []interface{}{store.NormalizeEmail(email)}
	case status != "":
		query = `
		SELECT id, email, amount, destination, status, created_at
		FROM withdrawal_requests
		WHERE status = ?
		ORDER BY created_at DESC`
		args = []interface{}{status}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unable to query withdrawal requests: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var requests []models.WithdrawalRequest
	for rows.Next() {
		request, err := scanWithdrawal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan withdrawal request: %w", err)
		}
		requests = append(requests, *request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating withdrawal rows: %w", err)
	}

	return requests, nil
}

// TransitionWithdrawal conditionally moves a request from one status to
// another. Returns false with a nil error when the request exists but is
// not in the from status — repeated approvals are no-ops, and Approved and
// Failed stay terminal.
func (s *Service) TransitionWithdrawal(ctx context.Context, id, from, to string) (bool, error) {
	result, err := s.db.ExecContext(ctx, queryTransitionWithdrawal, to, id, from)
	if err != nil {
		return false, fmt.Errorf("unable to transition withdrawal request: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unable to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		zap.L().Info("Withdrawal request transitioned",
			zap.String("request_id", id),
			zap.String("from", from),
			zap.String("to", to))
		return true, nil
	}

	// Distinguish a missing id from one that already left the from status.
	if _, err := s.GetWithdrawal(ctx, id); err != nil {
		return false, err
	}

	zap.L().Warn("Withdrawal transition skipped, request not in expected status",
		zap.String("request_id", id),
		zap.String("expected", from))
	return false, nil
}

func scanWithdrawal(row rowScanner) (*models.WithdrawalRequest, error) {
	var request models.WithdrawalRequest
	var amountStr string

	err := row.Scan(&request.Id, &request.Email, &amountStr,
		&request.Destination, &request.Status, &request.CreatedAt)
	if err != nil {
		return nil, err
	}

	request.Amount, err = decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount %q: %w", amountStr, err)
	}

	return &request, nil
}
