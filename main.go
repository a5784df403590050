package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"unscramble/config"
	"unscramble/logger"
	"unscramble/pipeline"

	"go.uber.org/zap"
)

func main() {
	logger.Init("info")
	defer logger.Sync()

	// load environment variables and configurations
	if err := config.Load(); err != nil {
		zap.S().Fatalf("failed to load config: %v", err)
	}

	logger.SetLevel(config.Env.LogLevel)
	if err := logger.SetLogFile(config.Env.LogFile); err != nil {
		zap.S().Fatalf("failed to open log file: %v", err)
	}

	jobs, err := config.GetJobs()
	if err != nil {
		zap.S().Fatalf("failed to load jobs: %v", err)
	}
	zap.S().Debugf("loaded %d jobs", len(jobs))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	processConfig := config.ProcessConfig()
	failed := 0
	for _, job := range jobs {
		if _, err := pipeline.Run(ctx, job, processConfig); err != nil {
			zap.S().Errorf("[%s] failed: %v", job.Name, err)
			failed++
			if ctx.Err() != nil {
				break
			}
		}
	}
	if failed > 0 {
		logger.Sync()
		os.Exit(1)
	}
}
