package database

import (
	"context"
	"errors"
	"testing"

	"reward-wallet-go/internal/store"
)

func TestCreateAndGetAccount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created := createTestAccount(t, svc, "Alice@Example.com")
	if created.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %s", created.Email)
	}
	if !created.Balance.IsZero() {
		t.Errorf("expected zero opening balance, got %s", created.Balance.String())
	}

	fetched, err := svc.GetAccount(ctx, "ALICE@example.com")
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if fetched.Id != created.Id {
		t.Errorf("expected account id %s, got %s", created.Id, fetched.Id)
	}
	if fetched.BonusClaimed {
		t.Error("expected bonus_claimed false for new account")
	}
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	createTestAccount(t, svc, "dup@example.com")

	_, err := svc.CreateAccount(context.Background(), store.CreateAccountParams{
		Id:    "other",
		Email: "DUP@example.com",
	})
	if !errors.Is(err, store.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestGetAccountNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetAccount(context.Background(), "ghost@example.com")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	createTestAccount(t, svc, "profile@example.com")

	updated, err := svc.UpdateProfile(ctx, "profile@example.com", store.ProfileParams{
		Name:    "New Name",
		Address: "42 Main St",
		Upi:     "profile@upi",
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Name != "New Name" || updated.Upi != "profile@upi" {
		t.Errorf("profile fields not updated: %+v", updated)
	}

	_, err = svc.UpdateProfile(ctx, "ghost@example.com", store.ProfileParams{Name: "x"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAccounts(t *testing.T) {
	svc := newTestService(t)
	createTestAccount(t, svc, "one@example.com")
	createTestAccount(t, svc, "two@example.com")

	accounts, err := svc.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
}
