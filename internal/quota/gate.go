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

package quota

import (
	"sync"
	"time"

	"reward-wallet-go/internal/models"

	"go.uber.org/zap"
)

// Decision is the outcome of asking the gate for permission to grant a
// reward. Remaining is only meaningful when Allowed is false.
type Decision struct {
	Allowed   bool
	Remaining time.Duration
}

// Gate enforces the rolling task quota: after limit completed tasks the
// cooldown window opens and no further reward-granting action succeeds
// until it elapses. Expiry is lazy — effective state is derived from the
// stored timestamp plus the caller's now on every query, so correctness
// never depends on any background poll running.
type Gate struct {
	mu       sync.Mutex
	limit    int
	cooldown time.Duration
	state    models.TaskQuotaState
}

func NewGate(limit int, cooldown time.Duration) *Gate {
	return &Gate{limit: limit, cooldown: cooldown}
}

// AttemptReward reports whether a reward-earning action is permitted at
// now. It performs its own fresh expiry check, so a stale cooldown can
// never deny a reward.
func (g *Gate) AttemptReward(now time.Time) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.refreshLocked(now)
	if g.state.CooldownStart != nil {
		return Decision{Allowed: false, Remaining: g.remainingLocked(now)}
	}
	return Decision{Allowed: true}
}

// RecordCompletion registers one more rewarded task. When the new count
// reaches the limit the cooldown window opens at now. Returns the state
// after the update so callers can persist it.
func (g *Gate) RecordCompletion(now time.Time) models.TaskQuotaState {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.refreshLocked(now)
	if g.state.CooldownStart != nil {
		// Caller skipped AttemptReward; do not count past the limit.
		return g.state
	}

	g.state.CompletedCount++
	if g.state.CompletedCount >= g.limit {
		start := now
		g.state.CooldownStart = &start
		zap.L().Info("Task quota reached, cooldown started",
			zap.Int("completed", g.state.CompletedCount),
			zap.Time("cooldown_start", start),
			zap.Duration("cooldown", g.cooldown))
	}
	return g.state
}

// Refresh applies the lazy expiry check at now and reports whether a reset
// occurred. Idempotent: safe to call from a recurring poll and from direct
// queries without producing inconsistent intermediate states.
func (g *Gate) Refresh(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.refreshLocked(now)
}

// Remaining returns the cooldown time left at now, or zero when available.
func (g *Gate) Remaining(now time.Time) time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.refreshLocked(now)
	return g.remainingLocked(now)
}

// Status reports the effective quota state at now for display purposes.
func (g *Gate) Status(now time.Time) models.CooldownStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.refreshLocked(now)
	return models.CooldownStatus{
		Available:      g.state.CooldownStart == nil,
		CompletedCount: g.state.CompletedCount,
		Remaining:      g.remainingLocked(now),
	}
}

// Snapshot returns a copy of the current state for persistence.
func (g *Gate) Snapshot() models.TaskQuotaState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Restore replaces the gate state with a persisted snapshot, e.g. when an
// account logs in and its quota state is loaded from the directory.
func (g *Gate) Restore(state models.TaskQuotaState) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = state
}

func (g *Gate) refreshLocked(now time.Time) bool {
	if g.state.CooldownStart == nil {
		return false
	}
	if now.Sub(*g.state.CooldownStart) < g.cooldown {
		return false
	}
	g.state = models.TaskQuotaState{}
	zap.L().Info("Cooldown elapsed, task quota reset")
	return true
}

func (g *Gate) remainingLocked(now time.Time) time.Duration {
	if g.state.CooldownStart == nil {
		return 0
	}
	return g.state.CooldownStart.Add(g.cooldown).Sub(now)
}
