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

package poller

import (
	"context"
	"fmt"
	"time"

	"reward-wallet-go/internal/models"
	"reward-wallet-go/internal/quota"
	"reward-wallet-go/internal/store"

	"go.uber.org/zap"
)

// ANSI color helpers for console output.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// CooldownPoller periodically sweeps every account's quota state and
// applies the lazy cooldown reset. The sweep is advisory: direct queries
// perform the same check, so nothing breaks if the poller never runs.
type CooldownPoller struct {
	directory store.Directory
	limit     int
	cooldown  time.Duration
	interval  time.Duration
	clock     quota.Clock

	stopChan chan struct{}
	doneChan chan struct{}
}

func NewCooldownPoller(directory store.Directory, cfg *models.Config, clock quota.Clock) *CooldownPoller {
	if clock == nil {
		clock = quota.SystemClock{}
	}
	return &CooldownPoller{
		directory: directory,
		limit:     cfg.Quota.TaskLimit,
		cooldown:  cfg.Quota.Cooldown,
		interval:  cfg.Poll.Interval,
		clock:     clock,
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
	}
}

// Start begins the cooldown sweep loop.
func (p *CooldownPoller) Start(ctx context.Context) {
	zap.L().Info("Starting cooldown poller", zap.Duration("interval", p.interval))
	go p.pollLoop(ctx)
}

// Stop gracefully stops the poller.
func (p *CooldownPoller) Stop() {
	zap.L().Info("Stopping cooldown poller")
	close(p.stopChan)
	<-p.doneChan
	zap.L().Info("Cooldown poller stopped")
}

func (p *CooldownPoller) pollLoop(ctx context.Context) {
	defer close(p.doneChan)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Sweep(ctx)

	for {
		select {
		case <-ticker.C:
			p.Sweep(ctx)
		case <-p.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Sweep runs one pass over all accounts, resetting any elapsed cooldown
// and reporting the remaining window for the rest. Exported so a one-shot
// invocation can run a single pass without the loop.
func (p *CooldownPoller) Sweep(ctx context.Context) {
	now := p.clock.Now()

	accounts, err := p.directory.ListAccounts(ctx)
	if err != nil {
		zap.L().Error("Cooldown sweep failed to list accounts", zap.Error(err))
		return
	}

	fmt.Printf("\n%s[%s] Sweeping %d accounts%s\n",
		colorCyan, now.Format("15:04:05"), len(accounts), colorReset)

	for _, account := range accounts {
		if err := p.sweepAccount(ctx, account.Email, now); err != nil {
			zap.L().Error("Failed to sweep account",
				zap.String("email", account.Email),
				zap.Error(err))
		}
	}
}

func (p *CooldownPoller) sweepAccount(ctx context.Context, email string, now time.Time) error {
	state, err := p.directory.GetQuotaState(ctx, email)
	if err != nil {
		return err
	}
	if !state.InCooldown() {
		return nil
	}

	gate := quota.NewGate(p.limit, p.cooldown)
	gate.Restore(state)
	if gate.Refresh(now) {
		fmt.Printf("  %s✓ %s: cooldown elapsed, quota reset%s\n", colorGreen, email, colorReset)
		return p.directory.SaveQuotaState(ctx, email, gate.Snapshot())
	}

	fmt.Printf("  %s… %s: %s remaining%s\n",
		colorYellow, email, gate.Remaining(now).Round(time.Second), colorReset)
	return nil
}
