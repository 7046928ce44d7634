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
	"math/rand"
	"time"

	"reward-wallet-go/internal/api"
	"reward-wallet-go/internal/common"
	"reward-wallet-go/internal/config"
	"reward-wallet-go/internal/models"
	"reward-wallet-go/internal/session"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type earnRequest struct {
	email    string
	password string
	kind     models.TaskKind
	stake    decimal.Decimal
}

func parseAndValidateFlags() (*earnRequest, error) {
	emailFlag := flag.String("email", "", "Account email (required)")
	passwordFlag := flag.String("password", "", "Account password (required)")
	taskFlag := flag.String("task", "", "Task kind: captcha, survey, or game (required)")
	stakeFlag := flag.String("stake", "", "Points to stake (game only)")
	flag.Parse()

	if *emailFlag == "" || *passwordFlag == "" || *taskFlag == "" {
		return nil, fmt.Errorf("flags are required: --email, --password, --task")
	}

	kind := models.TaskKind(*taskFlag)
	switch kind {
	case models.TaskCaptcha, models.TaskSurvey, models.TaskGame:
	default:
		return nil, fmt.Errorf("unknown task kind %q, expected captcha, survey, or game", *taskFlag)
	}

	req := &earnRequest{
		email:    *emailFlag,
		password: *passwordFlag,
		kind:     kind,
	}

	if kind == models.TaskGame {
		if *stakeFlag == "" {
			return nil, fmt.Errorf("--stake is required for the game")
		}
		stake, err := decimal.NewFromString(*stakeFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid stake format: %w", err)
		}
		if stake.LessThanOrEqual(decimal.Zero) || !stake.IsInteger() {
			return nil, fmt.Errorf("stake must be a positive whole number of points")
		}
		req.stake = stake
	}

	return req, nil
}

func playGame(ctx context.Context, wallet *api.WalletService, sess *session.Session, stake decimal.Decimal) error {
	if _, err := wallet.RecordGameStake(ctx, sess, stake); err != nil {
		return fmt.Errorf("failed to place stake: %w", err)
	}
	fmt.Printf("Staked %s points\n", stake.String())

	// Even-money round: win pays double the stake.
	if rand.Intn(2) == 0 {
		fmt.Println("You lost this round")
		return nil
	}

	payout := stake.Mul(decimal.NewFromInt(2))
	result, err := wallet.CompleteTask(ctx, sess, models.TaskGame, payout)
	if err != nil {
		return err
	}
	if !result.Success {
		// The win landed inside a quota cooldown; the stake stands.
		fmt.Printf("You won, but the payout was denied: %s (retry in %s)\n",
			result.Reason, result.Remaining.Round(time.Second))
		return nil
	}
	fmt.Printf("You won! %s points credited\n", result.Reward.String())
	return nil
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

	common.PrintHeader(fmt.Sprintf("Earning: %s", req.kind), common.DefaultWidth)

	switch req.kind {
	case models.TaskGame:
		if err := playGame(ctx, wallet, sess, req.stake); err != nil {
			zap.L().Fatal("Game round failed", zap.Error(err))
		}
	default:
		result, err := wallet.CompleteTask(ctx, sess, req.kind, decimal.Zero)
		if err != nil {
			zap.L().Fatal("Task failed", zap.Error(err))
		}
		if !result.Success {
			fmt.Printf("Denied: %s (retry in %s)\n", result.Reason, result.Remaining.Round(time.Second))
		} else {
			fmt.Printf("Completed %s: %s points credited\n", req.kind, result.Reward.String())
		}
	}

	balance, err := sess.Balance(ctx)
	if err != nil {
		zap.L().Fatal("Failed to read balance", zap.Error(err))
	}
	fmt.Printf("Balance: %s points\n", balance.String())

	status, err := wallet.QueryCooldown(ctx, sess)
	if err != nil {
		zap.L().Fatal("Failed to query quota", zap.Error(err))
	}
	if status.Available {
		fmt.Printf("Tasks this window: %d\n", status.CompletedCount)
	} else {
		fmt.Printf("Quota exhausted, cooldown ends in %s\n", status.Remaining.Round(time.Second))
	}

	common.PrintFooter("Done", common.DefaultWidth)
}
