package poller

import (
	"context"
	"testing"
	"time"

	"reward-wallet-go/internal/memstore"
	"reward-wallet-go/internal/models"
	"reward-wallet-go/internal/quota"
	"reward-wallet-go/internal/store"
)

func testPollerConfig() *models.Config {
	return &models.Config{
		Quota: models.QuotaConfig{TaskLimit: 5, Cooldown: 24 * time.Hour},
		Poll:  models.PollConfig{Interval: 10 * time.Millisecond},
	}
}

func saveCooldownState(t *testing.T, directory store.Directory, email string, start time.Time) {
	t.Helper()
	ctx := context.Background()
	if _, err := directory.CreateAccount(ctx, store.CreateAccountParams{
		Id:    "test-" + email,
		Email: email,
	}); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if err := directory.SaveQuotaState(ctx, email, models.TaskQuotaState{
		CompletedCount: 5,
		CooldownStart:  &start,
	}); err != nil {
		t.Fatalf("SaveQuotaState failed: %v", err)
	}
}

func TestSweepResetsElapsedCooldown(t *testing.T) {
	directory := memstore.NewService()
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	// One cooldown has elapsed, the other is mid-window.
	saveCooldownState(t, directory, "done@example.com", now.Add(-25*time.Hour))
	saveCooldownState(t, directory, "waiting@example.com", now.Add(-1*time.Hour))

	p := NewCooldownPoller(directory, testPollerConfig(), quota.FixedClock{Instant: now})
	p.Sweep(ctx)

	state, err := directory.GetQuotaState(ctx, "done@example.com")
	if err != nil {
		t.Fatalf("GetQuotaState failed: %v", err)
	}
	if state.InCooldown() || state.CompletedCount != 0 {
		t.Errorf("expected elapsed cooldown to be reset, got %+v", state)
	}

	state, err = directory.GetQuotaState(ctx, "waiting@example.com")
	if err != nil {
		t.Fatalf("GetQuotaState failed: %v", err)
	}
	if !state.InCooldown() || state.CompletedCount != 5 {
		t.Errorf("expected mid-window cooldown untouched, got %+v", state)
	}
}

func TestStartStop(t *testing.T) {
	directory := memstore.NewService()
	p := NewCooldownPoller(directory, testPollerConfig(), nil)

	p.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	p.Stop()
}
