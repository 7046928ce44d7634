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

package common

import (
	"context"
	"fmt"
	"log"
	"strings"

	"reward-wallet-go/internal/database"
	"reward-wallet-go/internal/memstore"
	"reward-wallet-go/internal/models"
	"reward-wallet-go/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Try to load .env file - if it doesn't exist, that's okay
	// Environment variables can be set via other means (shell export, docker, etc.)
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
		log.Println("Make sure to set environment variables via export or other means")
	}
}

type Services struct {
	Directory store.Directory
	Rewards   *RewardSchedule
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	directory, err := InitializeDirectory(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rewards, err := LoadRewardSchedule(cfg.Quota.TasksFile)
	if err != nil {
		directory.Close()
		return nil, err
	}

	return &Services{
		Directory: directory,
		Rewards:   rewards,
	}, nil
}

// InitializeDirectory opens the configured backend without loading the
// reward schedule. Useful for read-only operations like listing balances.
func InitializeDirectory(ctx context.Context, cfg *models.Config) (store.Directory, error) {
	switch cfg.Database.Backend {
	case "sqlite":
		zap.L().Info("Using SQLite directory backend", zap.String("file", cfg.Database.Path))
		return database.NewService(ctx, cfg.Database)
	case "memory":
		zap.L().Info("Using in-memory directory backend")
		return memstore.NewService(), nil
	default:
		return nil, fmt.Errorf("unknown directory backend %q (expected \"memory\" or \"sqlite\")", cfg.Database.Backend)
	}
}

func (cs *Services) Close() {
	if cs.Directory != nil {
		cs.Directory.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
