package api

import (
	"context"
	"fmt"

	"reward-wallet-go/internal/models"
	"reward-wallet-go/internal/session"
	"reward-wallet-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Register creates a new account keyed by normalized email. The sign-up
// bonus is not granted here; the account claims it explicitly once.
func (ws *WalletService) Register(ctx context.Context, name, email, password string) (*session.Session, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("name, email, and password are all required")
	}

	account, err := ws.directory.CreateAccount(ctx, store.CreateAccountParams{
		Id:       uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("Account registered",
		zap.String("id", account.Id),
		zap.String("email", account.Email))
	return session.New(account, ws.directory), nil
}

// Login verifies credentials and opens a session. The account's persisted
// quota state is loaded so the gate picks up where any prior process left
// off.
func (ws *WalletService) Login(ctx context.Context, email, password string) (*session.Session, error) {
	account, err := ws.directory.GetAccount(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", store.ErrInvalidCredentials, email)
	}
	if account.Password != password {
		return nil, fmt.Errorf("%w: %s", store.ErrInvalidCredentials, email)
	}

	// Warm the gate from the directory before the session does anything.
	if _, err := ws.gateFor(ctx, account.Email); err != nil {
		return nil, err
	}

	zap.L().Info("Login", zap.String("email", account.Email))
	return session.New(account, ws.directory), nil
}

// UpdateProfile edits the account's mutable profile fields. The payout
// destination stored here is the default for withdrawal requests.
func (ws *WalletService) UpdateProfile(ctx context.Context, sess *session.Session, params store.ProfileParams) (*models.Account, error) {
	if params.Name == "" {
		params.Name = sess.Name()
	}

	account, err := ws.directory.UpdateProfile(ctx, sess.Email(), params)
	if err != nil {
		return nil, err
	}

	zap.L().Info("Profile updated",
		zap.String("email", account.Email),
		zap.String("upi", account.Upi))
	return account, nil
}
