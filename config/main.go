package config

import (
	"fmt"
	"os"

	"unscramble/models"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Load reads .env (when present) and the environment.
func Load() error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
		zap.S().Debug("loaded .env file")
	}
	return LoadEnv()
}

// LoadJobs reads the job list from path. A missing file is not an error.
func LoadJobs(path string) ([]*models.Job, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed reading jobs file: %w", err)
	}

	var rawConfig struct {
		Jobs []*models.Job `yaml:"jobs"`
	}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed parsing jobs file: %w", err)
	}

	jobs := make([]*models.Job, 0, len(rawConfig.Jobs))
	for i, job := range rawConfig.Jobs {
		if job == nil {
			continue
		}
		if job.InputDir == "" || job.OutputDir == "" {
			return nil, fmt.Errorf("job %d: input_dir and output_dir are required", i)
		}
		if job.Name == "" {
			job.Name = job.InputDir
		}
		if job.IsDisabled {
			zap.S().Debugf("skipping disabled job: %s", job.Name)
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// GetJobs returns the jobs from the jobs file, or a single job built
// from the env directories when the file has none.
func GetJobs() ([]*models.Job, error) {
	jobs, err := LoadJobs(Env.JobsFile)
	if err != nil {
		return nil, err
	}
	if len(jobs) > 0 {
		return jobs, nil
	}
	return []*models.Job{{
		Name:      Env.InputDirectory,
		InputDir:  Env.InputDirectory,
		OutputDir: Env.OutputDirectory,
		Overwrite: Env.Overwrite,
	}}, nil
}
