package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"reward-wallet-go/internal/models"
	"reward-wallet-go/internal/store"

	"github.com/shopspring/decimal"
)

func newTestAccount(t *testing.T, svc *Service, email string) *models.Account {
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

func TestCreateAccountDuplicateEmail(t *testing.T) {
	svc := NewService()
	newTestAccount(t, svc, "dup@example.com")

	_, err := svc.CreateAccount(context.Background(), store.CreateAccountParams{
		Id:    "other",
		Email: "DUP@Example.com",
	})
	if !errors.Is(err, store.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestCreditDebitAndHistory(t *testing.T) {
	svc := NewService()
	ctx := context.Background()
	newTestAccount(t, svc, "ledger@example.com")

	if _, err := svc.Credit(ctx, "ledger@example.com", decimal.NewFromInt(100), store.EntryParams{
		EntryType: models.EntryTaskReward,
		Reference: "captcha",
	}); err != nil {
		t.Fatalf("Credit failed: %v", err)
	}
	if _, err := svc.Debit(ctx, "ledger@example.com", decimal.NewFromInt(30), store.EntryParams{
		EntryType: models.EntryGameStake,
		Reference: "game stake",
	}); err != nil {
		t.Fatalf("Debit failed: %v", err)
	}

	balance, err := svc.Balance(ctx, "ledger@example.com")
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(70)) {
		t.Errorf("expected balance 70, got %s", balance.String())
	}

	entries, err := svc.GetLedgerHistory(ctx, "ledger@example.com", 10, 0)
	if err != nil {
		t.Fatalf("GetLedgerHistory failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", len(entries))
	}
	// Newest first.
	if entries[0].EntryType != models.EntryGameStake {
		t.Errorf("expected newest entry first, got %s", entries[0].EntryType)
	}
	if !entries[0].BalanceAfter.Equal(decimal.NewFromInt(70)) {
		t.Errorf("expected balance_after 70, got %s", entries[0].BalanceAfter.String())
	}
}

func TestDebitInsufficientFunds(t *testing.T) {
	svc := NewService()
	ctx := context.Background()
	newTestAccount(t, svc, "poor@example.com")

	_, err := svc.Debit(ctx, "poor@example.com", decimal.NewFromInt(1), store.EntryParams{
		EntryType: models.EntryWithdrawal,
	})
	if !errors.Is(err, store.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// The failed debit must leave no trace in the ledger.
	entries, err := svc.GetLedgerHistory(ctx, "poor@example.com", 10, 0)
	if err != nil {
		t.Fatalf("GetLedgerHistory failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty ledger after failed debit, got %d entries", len(entries))
	}
}

func TestSignupBonusClaimedOnce(t *testing.T) {
	svc := NewService()
	ctx := context.Background()
	newTestAccount(t, svc, "bonus@example.com")

	bonus := decimal.NewFromInt(50)
	if _, err := svc.ClaimSignupBonus(ctx, "bonus@example.com", bonus); err != nil {
		t.Fatalf("first ClaimSignupBonus failed: %v", err)
	}
	_, err := svc.ClaimSignupBonus(ctx, "bonus@example.com", bonus)
	if !errors.Is(err, store.ErrBonusAlreadyClaimed) {
		t.Fatalf("expected ErrBonusAlreadyClaimed, got %v", err)
	}

	balance, _ := svc.Balance(ctx, "bonus@example.com")
	if !balance.Equal(bonus) {
		t.Errorf("expected balance %s after single claim, got %s", bonus.String(), balance.String())
	}
}

func TestCreateWithdrawalDebitsBalance(t *testing.T) {
	svc := NewService()
	ctx := context.Background()
	newTestAccount(t, svc, "payout@example.com")
	if _, err := svc.Credit(ctx, "payout@example.com", decimal.NewFromInt(1200), store.EntryParams{
		EntryType: models.EntryAdminBonus,
		Reference: "seed",
	}); err != nil {
		t.Fatalf("Credit failed: %v", err)
	}

	request, err := svc.CreateWithdrawal(ctx, store.CreateWithdrawalParams{
		Email:       "payout@example.com",
		Amount:      decimal.NewFromInt(500),
		Destination: "payout@upi",
		Now:         time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateWithdrawal failed: %v", err)
	}
	if request.Status != models.WithdrawalPending {
		t.Errorf("expected Pending status, got %s", request.Status)
	}

	balance, _ := svc.Balance(ctx, "payout@example.com")
	if !balance.Equal(decimal.NewFromInt(700)) {
		t.Errorf("expected balance 700 after withdrawal, got %s", balance.String())
	}
}

func TestCreateWithdrawalInsufficientFundsLeavesNoRequest(t *testing.T) {
	svc := NewService()
	ctx := context.Background()
	newTestAccount(t, svc, "broke@example.com")

	_, err := svc.CreateWithdrawal(ctx, store.CreateWithdrawalParams{
		Email:       "broke@example.com",
		Amount:      decimal.NewFromInt(100),
		Destination: "broke@upi",
		Now:         time.Now(),
	})
	if !errors.Is(err, store.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	requests, err := svc.GetWithdrawals(ctx, "broke@example.com", "")
	if err != nil {
		t.Fatalf("GetWithdrawals failed: %v", err)
	}
	if len(requests) != 0 {
		t.Errorf("expected no withdrawal requests after failed debit, got %d", len(requests))
	}
}

func TestTransitionWithdrawal(t *testing.T) {
	svc := NewService()
	ctx := context.Background()
	newTestAccount(t, svc, "flow@example.com")
	svc.Credit(ctx, "flow@example.com", decimal.NewFromInt(1000), store.EntryParams{EntryType: models.EntryAdminBonus})

	request, err := svc.CreateWithdrawal(ctx, store.CreateWithdrawalParams{
		Email:       "flow@example.com",
		Amount:      decimal.NewFromInt(200),
		Destination: "flow@upi",
		Now:         time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateWithdrawal failed: %v", err)
	}

	changed, err := svc.TransitionWithdrawal(ctx, request.Id, models.WithdrawalPending, models.WithdrawalApproved)
	if err != nil || !changed {
		t.Fatalf("expected transition to apply, got changed=%v err=%v", changed, err)
	}

	// Repeating the same transition is a no-op, not an error.
	changed, err = svc.TransitionWithdrawal(ctx, request.Id, models.WithdrawalPending, models.WithdrawalApproved)
	if err != nil {
		t.Fatalf("repeat transition errored: %v", err)
	}
	if changed {
		t.Error("expected repeat transition to be a no-op")
	}

	_, err = svc.TransitionWithdrawal(ctx, "missing-id", models.WithdrawalPending, models.WithdrawalApproved)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown request, got %v", err)
	}
}

func TestQuotaStateRoundTrip(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	state, err := svc.GetQuotaState(ctx, "fresh@example.com")
	if err != nil {
		t.Fatalf("GetQuotaState failed: %v", err)
	}
	if state.CompletedCount != 0 || state.CooldownStart != nil {
		t.Fatalf("expected zero state for unknown account, got %+v", state)
	}

	start := time.Now().UTC()
	saved := models.TaskQuotaState{CompletedCount: 5, CooldownStart: &start}
	if err := svc.SaveQuotaState(ctx, "fresh@example.com", saved); err != nil {
		t.Fatalf("SaveQuotaState failed: %v", err)
	}

	state, err = svc.GetQuotaState(ctx, "Fresh@Example.com")
	if err != nil {
		t.Fatalf("GetQuotaState failed: %v", err)
	}
	if state.CompletedCount != 5 {
		t.Errorf("expected completed count 5, got %d", state.CompletedCount)
	}
	if state.CooldownStart == nil || !state.CooldownStart.Equal(start) {
		t.Errorf("expected cooldown start %v, got %v", start, state.CooldownStart)
	}
}
