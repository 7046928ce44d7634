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
	"errors"
	"flag"
	"fmt"
	"regexp"

	"reward-wallet-go/internal/api"
	"reward-wallet-go/internal/common"
	"reward-wallet-go/internal/config"
	"reward-wallet-go/internal/store"

	"go.uber.org/zap"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len(name) < 2 {
		return fmt.Errorf("name must be at least 2 characters")
	}
	return nil
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	// Parse command line flags
	nameFlag := flag.String("name", "", "Account holder's full name (required)")
	emailFlag := flag.String("email", "", "Account email address (required)")
	passwordFlag := flag.String("password", "", "Account password (required)")
	addressFlag := flag.String("address", "", "Postal address (optional)")
	upiFlag := flag.String("upi", "", "Default payout destination, e.g. a UPI handle (optional)")
	skipBonusFlag := flag.Bool("skip-bonus", false, "Do not claim the sign-up bonus")
	flag.Parse()

	if *nameFlag == "" || *emailFlag == "" || *passwordFlag == "" {
		zap.L().Fatal("All flags are required: --name, --email, and --password")
	}

	if err := validateName(*nameFlag); err != nil {
		zap.L().Fatal("Invalid name", zap.Error(err))
	}
	if err := validateEmail(*emailFlag); err != nil {
		zap.L().Fatal("Invalid email", zap.Error(err))
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

	sess, err := wallet.Register(ctx, *nameFlag, *emailFlag, *passwordFlag)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			zap.L().Fatal("An account already exists with this email", zap.String("email", *emailFlag))
		}
		zap.L().Fatal("Failed to register account", zap.Error(err))
	}

	common.PrintHeader("Account registered", common.DefaultWidth)
	fmt.Printf("Name:  %s\n", sess.Name())
	fmt.Printf("Email: %s\n", sess.Email())

	if *addressFlag != "" || *upiFlag != "" {
		account, err := wallet.UpdateProfile(ctx, sess, store.ProfileParams{
			Address: *addressFlag,
			Upi:     *upiFlag,
		})
		if err != nil {
			zap.L().Fatal("Failed to save profile", zap.Error(err))
		}
		if account.Upi != "" {
			fmt.Printf("Payout destination: %s\n", account.Upi)
		}
	}

	if !*skipBonusFlag {
		bonus, err := wallet.ClaimSignupBonus(ctx, sess)
		if err != nil {
			zap.L().Fatal("Failed to claim sign-up bonus", zap.Error(err))
		}
		if bonus.Success {
			fmt.Printf("Sign-up bonus: %s points credited\n", bonus.Amount.String())
			fmt.Printf("Balance:       %s points\n", bonus.NewBalance.String())
		} else {
			fmt.Printf("Sign-up bonus: %s\n", bonus.Reason)
		}
	}

	common.PrintFooter("Done", common.DefaultWidth)
}
