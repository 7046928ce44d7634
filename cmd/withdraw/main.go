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

type withdrawRequest struct {
	email       string
	password    string
	amount      decimal.Decimal
	destination string
	list        bool
}

func parseAndValidateFlags() (*withdrawRequest, error) {
	emailFlag := flag.String("email", "", "Account email (required)")
	passwordFlag := flag.String("password", "", "Account password (required)")
	amountFlag := flag.String("amount", "", "Points to withdraw")
	destinationFlag := flag.String("destination", "", "Payout destination (defaults to the profile's UPI handle)")
	listFlag := flag.Bool("list", false, "List this account's withdrawal requests instead")
	flag.Parse()

	if *emailFlag == "" || *passwordFlag == "" {
		return nil, fmt.Errorf("flags are required: --email and --password")
	}

	req := &withdrawRequest{
		email:       *emailFlag,
		password:    *passwordFlag,
		destination: *destinationFlag,
		list:        *listFlag,
	}
	if req.list {
		return req, nil
	}

	if *amountFlag == "" {
		return nil, fmt.Errorf("flags are required: --amount (or --list)")
	}
	amount, err := decimal.NewFromString(*amountFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid amount format: %w", err)
	}
	req.amount = amount
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

	sess, err := wallet.Login(ctx, req.email, req.password)
	if err != nil {
		zap.L().Fatal("Login failed", zap.Error(err))
	}

	if req.list {
		requests, err := sess.Withdrawals(ctx, "")
		if err != nil {
			zap.L().Fatal("Failed to list withdrawal requests", zap.Error(err))
		}
		common.PrintHeader(fmt.Sprintf("Withdrawal requests for %s", sess.Email()), common.DefaultWidth)
		if len(requests) == 0 {
			fmt.Println("No withdrawal requests")
		}
		for i, r := range requests {
			isLast := i == len(requests)-1
			fmt.Printf("%s%s  %s points  %s\n", common.BoxPrefix(isLast), r.Id, r.Amount.String(), r.Status)
			fmt.Printf("%s   to %s at %s\n", common.BoxDetailPrefix(isLast), r.Destination, r.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		common.PrintFooter("Done", common.DefaultWidth)
		return
	}

	destination := req.destination
	if destination == "" {
		account, err := sess.Account(ctx)
		if err != nil {
			zap.L().Fatal("Failed to load account profile", zap.Error(err))
		}
		if account.Upi == "" {
			zap.L().Fatal("No --destination given and no UPI handle on the profile")
		}
		destination = account.Upi
	}

	result, err := wallet.RequestWithdrawal(ctx, sess, req.amount, destination)
	if err != nil {
		zap.L().Fatal("Withdrawal request failed", zap.Error(err))
	}

	common.PrintHeader("Withdrawal request", common.DefaultWidth)
	if !result.Success {
		fmt.Printf("Rejected: %s\n", result.Reason)
		fmt.Printf("Balance:  %s points\n", result.NewBalance.String())
	} else {
		fmt.Println("Request filed and awaiting approval")
		fmt.Printf("Request ID:  %s\n", result.Request.Id)
		fmt.Printf("Amount:      %s points\n", result.Request.Amount.String())
		fmt.Printf("Destination: %s\n", result.Request.Destination)
		fmt.Printf("Balance:     %s points\n", result.NewBalance.String())
	}
	common.PrintFooter("Done", common.DefaultWidth)
}
