package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reward-wallet-go/internal/common"
	"reward-wallet-go/internal/config"
	"reward-wallet-go/internal/poller"

	"go.uber.org/zap"
)

func main() {
	onceFlag := flag.Bool("once", false, "Run a single sweep and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		_, _ = zap.NewProduction()
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	zap.L().Info("Starting quota cooldown watcher")

	directory, err := common.InitializeDirectory(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize directory", zap.Error(err))
	}
	defer directory.Close()

	p := poller.NewCooldownPoller(directory, cfg, nil)

	if *onceFlag {
		p.Sweep(ctx)
		return
	}

	p.Start(ctx)
	zap.L().Info("Watcher running", zap.Duration("interval", cfg.Poll.Interval))
	zap.L().Info("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zap.L().Info("Shutdown signal received, stopping watcher...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()

	select {
	case <-done:
		zap.L().Info("Watcher stopped gracefully")
	case <-shutdownCtx.Done():
		zap.L().Warn("Forced shutdown after timeout")
	}
}
