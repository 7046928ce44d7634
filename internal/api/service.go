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

package api

import (
	"context"
	"sync"

	"reward-wallet-go/internal/common"
	"reward-wallet-go/internal/models"
	"reward-wallet-go/internal/quota"
	"reward-wallet-go/internal/store"
)

// WalletService is the operation façade over the account directory. It
// owns one quota gate per account, restored from persisted state on
// first use so one-shot command invocations share the quota window.
type WalletService struct {
	directory store.Directory
	rewards   *common.RewardSchedule
	cfg       *models.Config
	clock     quota.Clock

	mu    sync.Mutex
	gates map[string]*quota.Gate
}

func NewWalletService(directory store.Directory, rewards *common.RewardSchedule, cfg *models.Config, clock quota.Clock) *WalletService {
	if clock == nil {
		clock = quota.SystemClock{}
	}
	return &WalletService{
		directory: directory,
		rewards:   rewards,
		cfg:       cfg,
		clock:     clock,
		gates:     make(map[string]*quota.Gate),
	}
}

func (ws *WalletService) Directory() store.Directory {
	return ws.directory
}

// gateFor returns the account's quota gate, loading persisted state from
// the directory the first time the account is seen in this process.
func (ws *WalletService) gateFor(ctx context.Context, email string) (*quota.Gate, error) {
	email = store.NormalizeEmail(email)

	ws.mu.Lock()
	gate, ok := ws.gates[email]
	ws.mu.Unlock()
	if ok {
		return gate, nil
	}

	state, err := ws.directory.GetQuotaState(ctx, email)
	if err != nil {
		return nil, err
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	// Re-check under the lock: a concurrent caller may have won the race.
	if gate, ok = ws.gates[email]; ok {
		return gate, nil
	}
	gate = quota.NewGate(ws.cfg.Quota.TaskLimit, ws.cfg.Quota.Cooldown)
	gate.Restore(state)
	ws.gates[email] = gate
	return gate, nil
}

// persistQuota writes the gate's current state back to the directory.
func (ws *WalletService) persistQuota(ctx context.Context, email string, gate *quota.Gate) error {
	return ws.directory.SaveQuotaState(ctx, store.NormalizeEmail(email), gate.Snapshot())
}
