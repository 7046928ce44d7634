package database

import (
	"context"
	"testing"
	"time"

	"reward-wallet-go/internal/models"
	"reward-wallet-go/internal/store"
)

// newTestService opens an in-memory database. A single connection keeps
// every query on the same in-memory instance.
func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(context.Background(), models.DatabaseConfig{
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		PingTimeout:  5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	t.Cleanup(svc.Close)
	return svc
}

func createTestAccount(t *testing.T, svc *Service, email string) *models.Account {
	t.Helper()
	account, err := svc.CreateAccount(context.Background(), store.CreateAccountParams{
		Id:       "test-" + email,
		Name:     "Test User",
		Email:    email,
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	return account
}

func TestNewServiceValidation(t *testing.T) {
	ctx := context.Background()

	if _, err := NewService(ctx, models.DatabaseConfig{MaxOpenConns: 1, PingTimeout: time.Second}); err == nil {
		t.Error("expected error for empty path")
	}
	if _, err := NewService(ctx, models.DatabaseConfig{Path: ":memory:", PingTimeout: time.Second}); err == nil {
		t.Error("expected error for zero max open connections")
	}
	if _, err := NewService(ctx, models.DatabaseConfig{Path: ":memory:", MaxOpenConns: 1}); err == nil {
		t.Error("expected error for zero ping timeout")
	}
}
