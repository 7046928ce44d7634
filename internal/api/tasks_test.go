package api

import (
	"context"
	"testing"
	"time"

	"reward-wallet-go/internal/models"

	"github.com/shopspring/decimal"
)

func TestClaimSignupBonusOnce(t *testing.T) {
	ws, _ := newTestWallet(t)
	ctx := context.Background()
	sess := registerTestSession(t, ws, "bonus@example.com")

	result, err := ws.ClaimSignupBonus(ctx, sess)
	if err != nil {
		t.Fatalf("ClaimSignupBonus failed: %v", err)
	}
	if !result.Success || !result.NewBalance.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected 50-point bonus, got %+v", result)
	}

	result, err = ws.ClaimSignupBonus(ctx, sess)
	if err != nil {
		t.Fatalf("second ClaimSignupBonus errored: %v", err)
	}
	if result.Success {
		t.Error("expected second claim to be refused")
	}

	balance, _ := sess.Balance(ctx)
	if !balance.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected single 50 credit, got balance %s", balance.String())
	}
}

func TestCompleteTaskCreditsReward(t *testing.T) {
	ws, _ := newTestWallet(t)
	ctx := context.Background()
	sess := registerTestSession(t, ws, "tasks@example.com")

	result, err := ws.CompleteTask(ctx, sess, models.TaskCaptcha, decimal.Zero)
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	if !result.Success || !result.Reward.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected captcha reward 10, got %+v", result)
	}

	result, err = ws.CompleteTask(ctx, sess, models.TaskSurvey, decimal.Zero)
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	if !result.Reward.Equal(decimal.NewFromInt(5)) {
		t.Errorf("expected survey reward 5, got %s", result.Reward.String())
	}

	balance, _ := sess.Balance(ctx)
	if !balance.Equal(decimal.NewFromInt(15)) {
		t.Errorf("expected balance 15, got %s", balance.String())
	}
}

func TestQuotaDeniesSixthTask(t *testing.T) {
	ws, clock := newTestWallet(t)
	ctx := context.Background()
	sess := registerTestSession(t, ws, "quota@example.com")

	for i := 0; i < 5; i++ {
		result, err := ws.CompleteTask(ctx, sess, models.TaskCaptcha, decimal.Zero)
		if err != nil || !result.Success {
			t.Fatalf("task %d should succeed: result=%+v err=%v", i+1, result, err)
		}
	}

	result, err := ws.CompleteTask(ctx, sess, models.TaskCaptcha, decimal.Zero)
	if err != nil {
		t.Fatalf("CompleteTask errored: %v", err)
	}
	if result.Success {
		t.Fatal("expected sixth task to be denied")
	}
	if result.Remaining != 24*time.Hour {
		t.Errorf("expected full 24h remaining, got %v", result.Remaining)
	}

	// Denied attempt must not touch the wallet.
	balance, _ := sess.Balance(ctx)
	if !balance.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected balance 50 after 5 captchas, got %s", balance.String())
	}

	// Still denied one second before the window closes.
	clock.Instant = clock.Instant.Add(24*time.Hour - time.Second)
	result, _ = ws.CompleteTask(ctx, sess, models.TaskCaptcha, decimal.Zero)
	if result.Success {
		t.Error("expected denial just before cooldown elapses")
	}

	// Allowed again exactly at the boundary, with an implicit reset.
	clock.Instant = clock.Instant.Add(time.Second)
	result, err = ws.CompleteTask(ctx, sess, models.TaskCaptcha, decimal.Zero)
	if err != nil || !result.Success {
		t.Fatalf("expected task to succeed after cooldown: result=%+v err=%v", result, err)
	}

	status, err := ws.QueryCooldown(ctx, sess)
	if err != nil {
		t.Fatalf("QueryCooldown failed: %v", err)
	}
	if !status.Available || status.CompletedCount != 1 {
		t.Errorf("expected fresh window with 1 completion, got %+v", status)
	}
}

func TestQuotaStateSharedAcrossServices(t *testing.T) {
	ws, clock := newTestWallet(t)
	ctx := context.Background()
	sess := registerTestSession(t, ws, "shared@example.com")

	for i := 0; i < 5; i++ {
		if result, err := ws.CompleteTask(ctx, sess, models.TaskSurvey, decimal.Zero); err != nil || !result.Success {
			t.Fatalf("task %d should succeed: result=%+v err=%v", i+1, result, err)
		}
	}

	// A second service over the same directory, as a fresh process would
	// build, must see the persisted cooldown.
	ws2 := NewWalletService(ws.Directory(), testRewards(), testConfig(), clock)
	sess2, err := ws2.Login(ctx, "shared@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	result, err := ws2.CompleteTask(ctx, sess2, models.TaskSurvey, decimal.Zero)
	if err != nil {
		t.Fatalf("CompleteTask errored: %v", err)
	}
	if result.Success {
		t.Error("expected cooldown to survive into a new service instance")
	}
}

func TestGamePayoutThroughQuota(t *testing.T) {
	ws, _ := newTestWallet(t)
	ctx := context.Background()
	sess := registerTestSession(t, ws, "game@example.com")
	seedTestBalance(t, ws, "game@example.com", 100)

	stake := decimal.NewFromInt(30)
	if _, err := ws.RecordGameStake(ctx, sess, stake); err != nil {
		t.Fatalf("RecordGameStake failed: %v", err)
	}
	balance, _ := sess.Balance(ctx)
	if !balance.Equal(decimal.NewFromInt(70)) {
		t.Errorf("expected balance 70 after stake, got %s", balance.String())
	}

	// A win pays out double the stake and counts toward the quota.
	result, err := ws.CompleteTask(ctx, sess, models.TaskGame, stake.Mul(decimal.NewFromInt(2)))
	if err != nil || !result.Success {
		t.Fatalf("game payout should succeed: result=%+v err=%v", result, err)
	}
	balance, _ = sess.Balance(ctx)
	if !balance.Equal(decimal.NewFromInt(130)) {
		t.Errorf("expected balance 130 after win, got %s", balance.String())
	}

	status, _ := ws.QueryCooldown(ctx, sess)
	if status.CompletedCount != 1 {
		t.Errorf("expected game win to count toward quota, got %+v", status)
	}

	// Zero or negative payout for the variable kind is a caller bug.
	if _, err := ws.CompleteTask(ctx, sess, models.TaskGame, decimal.Zero); err == nil {
		t.Error("expected error for non-positive game payout")
	}
}

func TestRecordGameStakeValidation(t *testing.T) {
	ws, _ := newTestWallet(t)
	ctx := context.Background()
	sess := registerTestSession(t, ws, "stakes@example.com")
	seedTestBalance(t, ws, "stakes@example.com", 10)

	if _, err := ws.RecordGameStake(ctx, sess, decimal.NewFromInt(-5)); err == nil {
		t.Error("expected error for negative stake")
	}
	if _, err := ws.RecordGameStake(ctx, sess, decimal.NewFromFloat(2.5)); err == nil {
		t.Error("expected error for fractional stake")
	}
	if _, err := ws.RecordGameStake(ctx, sess, decimal.NewFromInt(100)); err == nil {
		t.Error("expected error staking more than the balance")
	}
}

// Full account lifecycle: register, claim the bonus, earn to the quota,
// get denied, and fail the eligibility floor on withdrawal.
func TestAccountLifecycle(t *testing.T) {
	ws, _ := newTestWallet(t)
	ctx := context.Background()
	sess := registerTestSession(t, ws, "lifecycle@example.com")

	bonus, err := ws.ClaimSignupBonus(ctx, sess)
	if err != nil || !bonus.Success {
		t.Fatalf("bonus claim failed: result=%+v err=%v", bonus, err)
	}

	for i := 0; i < 5; i++ {
		result, err := ws.CompleteTask(ctx, sess, models.TaskCaptcha, decimal.Zero)
		if err != nil || !result.Success {
			t.Fatalf("captcha %d failed: result=%+v err=%v", i+1, result, err)
		}
	}

	balance, _ := sess.Balance(ctx)
	if !balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected balance 100 (50 bonus + 5x10), got %s", balance.String())
	}

	denied, err := ws.CompleteTask(ctx, sess, models.TaskCaptcha, decimal.Zero)
	if err != nil {
		t.Fatalf("CompleteTask errored: %v", err)
	}
	if denied.Success {
		t.Fatal("expected sixth captcha to be denied")
	}

	withdrawal, err := ws.RequestWithdrawal(ctx, sess, decimal.NewFromInt(80), "me@upi")
	if err != nil {
		t.Fatalf("RequestWithdrawal errored: %v", err)
	}
	if withdrawal.Success {
		t.Fatal("expected withdrawal to be rejected")
	}
	if withdrawal.Reason != "below minimum eligible balance" {
		t.Errorf("expected eligibility-floor rejection, got %q", withdrawal.Reason)
	}
	balance, _ = sess.Balance(ctx)
	if !balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected untouched balance 100, got %s", balance.String())
	}
}
