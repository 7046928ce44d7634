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

package database

const (
	// Account queries
	queryInsertAccount = `
		INSERT OR IGNORE INTO accounts (id, name, email, password, address, upi, balance, bonus_claimed)
		VALUES (?, ?, ?, ?, '', '', '0', 0)`

	queryGetAccount = `
		SELECT id, name, email, password, address, upi, balance, bonus_claimed, created_at, updated_at
		FROM accounts
		WHERE email = ?`

	queryListAccounts = `
		SELECT id, name, email, password, address, upi, balance, bonus_claimed, created_at, updated_at
		FROM accounts
		ORDER BY created_at`

	queryUpdateProfile = `
		UPDATE accounts
		SET name = ?, address = ?, upi = ?, updated_at = CURRENT_TIMESTAMP
		WHERE email = ?`

	// Wallet queries
	queryGetBalanceForUpdate = `
		SELECT balance, bonus_claimed, version
		FROM accounts
		WHERE email = ?`

	queryUpdateBalance = `
		UPDATE accounts
		SET balance = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE email = ? AND version = ?`

	queryUpdateBalanceAndBonusFlag = `
		UPDATE accounts
		SET balance = ?, bonus_claimed = 1, version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE email = ? AND version = ?`

	queryInsertLedgerEntry = `
		INSERT INTO ledger_entries (
			id, email, entry_type, amount, balance_before, balance_after, reference, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	queryGetLedgerHistory = `
		SELECT id, email, entry_type, amount, balance_before, balance_after, reference, created_at
		FROM ledger_entries
		WHERE email = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`

	// Withdrawal queries
	queryInsertWithdrawal = `
		INSERT INTO withdrawal_requests (id, email, amount, destination, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	queryGetWithdrawal = `
		SELECT id, email, amount, destination, status, created_at
		FROM withdrawal_requests
		WHERE id = ?`

	queryGetWithdrawalsAll = `
		SELECT id, email, amount, destination, status, created_at
		FROM withdrawal_requests
		ORDER BY created_at DESC`

	queryTransitionWithdrawal = `
		UPDATE withdrawal_requests
		SET status = ?
		WHERE id = ? AND status = ?`

	// Quota queries
	queryGetQuotaState = `
		SELECT completed_count, cooldown_start
		FROM task_quota
		WHERE email = ?`

	queryUpsertQuotaState = `
		INSERT INTO task_quota (email, completed_count, cooldown_start)
		VALUES (?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			completed_count = excluded.completed_count,
			cooldown_start = excluded.cooldown_start`
)
