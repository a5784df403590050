package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"unscramble/models"

	"go.uber.org/zap"
)

var Env = GetDefaultConfig()

func LoadEnv() error {
	if value := os.Getenv("INPUT_DIR"); value != "" {
		Env.InputDirectory = value
	} else {
		zap.S().Warnf("INPUT_DIR is not set, using default %s", Env.InputDirectory)
	}
	if value := os.Getenv("OUTPUT_DIR"); value != "" {
		Env.OutputDirectory = value
	} else {
		zap.S().Warnf("OUTPUT_DIR is not set, using default %s", Env.OutputDirectory)
	}
	if value := os.Getenv("JOBS_FILE"); value != "" {
		Env.JobsFile = value
	}
	if value := os.Getenv("CONCURRENCY"); value != "" {
		if concurrency, err := strconv.Atoi(value); err == nil && concurrency > 0 {
			Env.Concurrency = concurrency
		} else {
			return fmt.Errorf("CONCURRENCY env is not a valid positive integer: %s", value)
		}
	} else {
		zap.S().Debugf("CONCURRENCY is not set, using default %d", Env.Concurrency)
	}
	if value := os.Getenv("OVERWRITE"); value != "" {
		if overwrite, err := strconv.ParseBool(value); err == nil {
			Env.Overwrite = overwrite
		} else {
			return fmt.Errorf("OVERWRITE env is not a valid boolean: %s", value)
		}
	}
	if value := os.Getenv("MAX_FILE_SIZE"); value != "" {
		if size, err := strconv.Atoi(value); err == nil {
			Env.MaxFileSize = int64(size)
		} else {
			return fmt.Errorf("MAX_FILE_SIZE env is not a valid integer: %s", value)
		}
	}
	if value := os.Getenv("MAX_AGE"); value != "" {
		if age, err := time.ParseDuration(value); err == nil {
			Env.MaxAge = age
		} else {
			return fmt.Errorf("MAX_AGE env is not a valid duration: %w", err)
		}
	}
	if value := os.Getenv("LOG_LEVEL"); value != "" {
		Env.LogLevel = value
	}
	if value := os.Getenv("LOG_FILE"); value != "" {
		Env.LogFile = value
	}
	return nil
}

func GetDefaultConfig() *models.EnvConfig {
	return &models.EnvConfig{
		InputDirectory:  "pages",
		OutputDirectory: "descrambled",
		JobsFile:        "jobs.yaml",

		Concurrency: 4,
		MaxFileSize: 50,
		MaxAge:      time.Hour,

		LogLevel: "info",
	}
}

// ProcessConfig converts the env settings for the page runner.
func ProcessConfig() *models.ProcessConfig {
	return models.GetProcessConfig(&models.ProcessConfig{
		Concurrency: Env.Concurrency,
		Overwrite:   Env.Overwrite,
		MaxFileSize: Env.MaxFileSize * 1024 * 1024,
		MaxAge:      Env.MaxAge,
	})
}
