package models

import "time"

type ProcessConfig struct {
	Concurrency int           // maximum number of pages descrambled at once
	Overwrite   bool          // replace outputs that already exist
	MaxFileSize int64         // largest accepted input file in bytes
	MaxAge      time.Duration // temp files older than this are removed from the output dir
}

func DefaultProcessConfig() *ProcessConfig {
	return &ProcessConfig{
		Concurrency: 4,
		MaxFileSize: 50 * 1024 * 1024, // 50MB
		MaxAge:      time.Hour,
	}
}

// GetProcessConfig returns config with zero fields replaced by defaults.
// if config is nil, it returns the defaults.
func GetProcessConfig(config *ProcessConfig) *ProcessConfig {
	if config == nil {
		return DefaultProcessConfig()
	}
	config.Ensure()
	return config
}

func (cfg *ProcessConfig) Ensure() {
	defaultConfig := DefaultProcessConfig()

	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConfig.Concurrency
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = defaultConfig.MaxFileSize
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = defaultConfig.MaxAge
	}
}

// Report sums up one processed job.
type Report struct {
	Job       string
	Processed int
	Skipped   int
	BytesIn   int64
	BytesOut  int64
	Elapsed   time.Duration
}
