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

package main

import (
	"context"
	"flag"
	"fmt"

	"reward-wallet-go/internal/common"
	"reward-wallet-go/internal/config"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	emailFlag := flag.String("email", "", "Only show this account (optional)")
	historyFlag := flag.Int("history", 0, "Show the last N ledger entries per account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	directory, err := common.InitializeDirectory(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize directory", zap.Error(err))
	}
	defer directory.Close()

	accounts, err := common.ResolveAccounts(ctx, directory, *emailFlag, logger)
	if err != nil {
		zap.L().Fatal("Failed to resolve accounts", zap.Error(err))
	}

	common.PrintHeader("Wallet balances", common.DefaultWidth)
	if len(accounts) == 0 {
		fmt.Println("No accounts registered")
	}

	for _, account := range accounts {
		balance, err := directory.Balance(ctx, account.Email)
		if err != nil {
			zap.L().Error("Failed to read balance",
				zap.String("email", account.Email),
				zap.Error(err))
			continue
		}
		fmt.Printf("%s (%s): %s points\n", account.Name, account.Email, balance.String())

		if *historyFlag <= 0 {
			continue
		}
		entries, err := directory.GetLedgerHistory(ctx, account.Email, *historyFlag, 0)
		if err != nil {
			zap.L().Error("Failed to read ledger history",
				zap.String("email", account.Email),
				zap.Error(err))
			continue
		}
		for i, entry := range entries {
			isLast := i == len(entries)-1
			fmt.Printf("%s%s  %s  (balance %s)\n",
				common.BoxPrefix(isLast),
				entry.CreatedAt.Format("2006-01-02 15:04:05"),
				entry.Amount.String(),
				entry.BalanceAfter.String())
			fmt.Printf("%s   %s: %s\n", common.BoxDetailPrefix(isLast), entry.EntryType, entry.Reference)
		}
	}

	common.PrintFooter("Done", common.DefaultWidth)
}
