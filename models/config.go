package models

import "time"

type EnvConfig struct {
	InputDirectory  string
	OutputDirectory string
	JobsFile        string

	Concurrency int
	Overwrite   bool
	MaxFileSize int64 // in MB
	MaxAge      time.Duration

	LogLevel string
	LogFile  string
}

// Job is one input directory of scrambled pages and where to put the result.
type Job struct {
	Name       string `yaml:"name"`
	InputDir   string `yaml:"input_dir"`
	OutputDir  string `yaml:"output_dir"`
	Overwrite  bool   `yaml:"overwrite"`
	IsDisabled bool   `yaml:"disabled"`
}
