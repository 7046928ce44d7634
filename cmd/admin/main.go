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

	"reward-wallet-go/internal/api"
	"reward-wallet-go/internal/common"
	"reward-wallet-go/internal/config"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type adminRequest struct {
	email    string
	password string
	action   string
	id       string
	target   string
	amount   decimal.Decimal
}

func parseAndValidateFlags() (*adminRequest, error) {
	emailFlag := flag.String("email", "", "Admin email (required)")
	passwordFlag := flag.String("password", "", "Admin password (required)")
	actionFlag := flag.String("action", "", "One of: pending, approve, reject, bonus (required)")
	idFlag := flag.String("id", "", "Withdrawal request id (approve/reject)")
	targetFlag := flag.String("target", "", "Account email (bonus)")
	amountFlag := flag.String("amount", "", "Points to grant (bonus)")
	flag.Parse()

	if *emailFlag == "" || *passwordFlag == "" || *actionFlag == "" {
		return nil, fmt.Errorf("flags are required: --email, --password, --action")
	}

	req := &adminRequest{
		email:    *emailFlag,
		password: *passwordFlag,
		action:   *actionFlag,
		id:       *idFlag,
		target:   *targetFlag,
	}

	switch req.action {
	case "pending":
	case "approve", "reject":
		if req.id == "" {
			return nil, fmt.Errorf("--id is required for %s", req.action)
		}
	case "bonus":
		if req.target == "" || *amountFlag == "" {
			return nil, fmt.Errorf("--target and --amount are required for bonus")
		}
		amount, err := decimal.NewFromString(*amountFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid amount format: %w", err)
		}
		req.amount = amount
	default:
		return nil, fmt.Errorf("unknown action %q, expected pending, approve, reject, or bonus", req.action)
	}

	return req, nil
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	req, err := parseAndValidateFlags()
	if err != nil {
		zap.L().Fatal("Invalid arguments", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	wallet := api.NewWalletService(services.Directory, services.Rewards, cfg, nil)

	if err := wallet.AuthenticateAdmin(req.email, req.password); err != nil {
		zap.L().Fatal("Admin authentication failed", zap.Error(err))
	}

	switch req.action {
	case "pending":
		requests, err := wallet.PendingWithdrawals(ctx)
		if err != nil {
			zap.L().Fatal("Failed to list pending withdrawals", zap.Error(err))
		}
		common.PrintHeader("Pending withdrawal requests", common.DefaultWidth)
		if len(requests) == 0 {
			fmt.Println("Nothing awaiting approval")
		}
		for i, r := range requests {
			isLast := i == len(requests)-1
			fmt.Printf("%s%s  %s points\n", common.BoxPrefix(isLast), r.Id, r.Amount.String())
			fmt.Printf("%s   %s to %s at %s\n", common.BoxDetailPrefix(isLast),
				r.Email, r.Destination, r.CreatedAt.Format("2006-01-02 15:04:05"))
		}

	case "approve":
		request, err := wallet.ApproveWithdrawal(ctx, req.id)
		if err != nil {
			zap.L().Fatal("Failed to approve withdrawal", zap.Error(err))
		}
		common.PrintHeader("Approve withdrawal", common.DefaultWidth)
		fmt.Printf("Request %s is now %s\n", request.Id, request.Status)

	case "reject":
		request, err := wallet.RejectWithdrawal(ctx, req.id)
		if err != nil {
			zap.L().Fatal("Failed to reject withdrawal", zap.Error(err))
		}
		common.PrintHeader("Reject withdrawal", common.DefaultWidth)
		fmt.Printf("Request %s is now %s\n", request.Id, request.Status)

	case "bonus":
		result, err := wallet.GrantBonus(ctx, req.target, req.amount)
		if err != nil {
			zap.L().Fatal("Failed to grant bonus", zap.Error(err))
		}
		common.PrintHeader("Bonus grant", common.DefaultWidth)
		if !result.Success {
			fmt.Printf("Skipped: %s (%s)\n", result.Reason, req.target)
		} else {
			fmt.Printf("Granted %s points to %s (balance %s)\n",
				result.Amount.String(), result.Email, result.NewBalance.String())
		}
	}

	common.PrintFooter("Done", common.DefaultWidth)
}
