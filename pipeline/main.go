// Package pipeline descrambles every page of a directory with a bounded
// number of concurrent workers.
package pipeline

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"unscramble/imaging"
	"unscramble/models"
	"unscramble/util"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type pageResult struct {
	skipped  bool
	bytesIn  int64
	bytesOut int64
}

// Run descrambles every image in job.InputDir into job.OutputDir.
// The first failing page cancels the pages that have not started yet.
func Run(
	ctx context.Context,
	job *models.Job,
	config *models.ProcessConfig,
) (*models.Report, error) {
	config = models.GetProcessConfig(config)
	start := time.Now()

	if err := util.EnsureDir(job.OutputDir); err != nil {
		return nil, err
	}
	util.CleanupOldFiles(job.OutputDir, config.MaxAge)

	files, err := util.ListImageFiles(job.InputDir)
	if err != nil {
		return nil, err
	}
	if err := checkOutputPaths(job.OutputDir, files); err != nil {
		return nil, err
	}
	zap.S().Infof("[%s] descrambling %d pages", job.Name, len(files))

	overwrite := config.Overwrite || job.Overwrite
	semaphore := make(chan struct{}, config.Concurrency)
	var wg sync.WaitGroup

	var (
		errOnce  sync.Once
		firstErr error
	)
	var processed, skipped, bytesIn, bytesOut atomic.Int64

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	for i, file := range files {
		wg.Add(1)
		go func(idx int, path string) {
			defer wg.Done()

			// acquire semaphore slot
			select {
			case <-runCtx.Done():
				return
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
			}
			if runCtx.Err() != nil {
				return
			}

			outputPath := util.OutputPath(job.OutputDir, path)
			result, err := processPage(path, outputPath, overwrite, config)
			if err != nil {
				errOnce.Do(func() {
					firstErr = errors.Wrapf(err, "page %d (%s)", idx+1, path)
					cancelRun()
				})
				return
			}
			if result.skipped {
				zap.S().Debugf("[%s] %s exists, skipping", job.Name, outputPath)
				skipped.Add(1)
				return
			}
			processed.Add(1)
			bytesIn.Add(result.bytesIn)
			bytesOut.Add(result.bytesOut)
		}(i, file)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &models.Report{
		Job:       job.Name,
		Processed: int(processed.Load()),
		Skipped:   int(skipped.Load()),
		BytesIn:   bytesIn.Load(),
		BytesOut:  bytesOut.Load(),
		Elapsed:   time.Since(start),
	}
	zap.S().Infof(
		"[%s] %d pages descrambled, %d skipped (%s -> %s) in %s",
		job.Name, report.Processed, report.Skipped,
		humanize.Bytes(uint64(report.BytesIn)),
		humanize.Bytes(uint64(report.BytesOut)),
		report.Elapsed.Round(time.Millisecond),
	)
	return report, nil
}

func processPage(
	inputPath string,
	outputPath string,
	overwrite bool,
	config *models.ProcessConfig,
) (*pageResult, error) {
	if !overwrite {
		if _, err := os.Stat(outputPath); err == nil {
			return &pageResult{skipped: true}, nil
		}
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat page")
	}
	if !info.Mode().IsRegular() {
		return nil, util.ErrNotAFile
	}
	if info.Size() > config.MaxFileSize {
		return nil, errors.Wrapf(
			util.ErrFileTooLarge, "%s > %s",
			humanize.Bytes(uint64(info.Size())),
			humanize.Bytes(uint64(config.MaxFileSize)),
		)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read page")
	}
	out, err := imaging.Descramble(data)
	if err != nil {
		return nil, err
	}
	if err := util.WriteFileAtomic(outputPath, out); err != nil {
		return nil, err
	}
	zap.S().Debugf("saved descrambled page to %s", outputPath)

	return &pageResult{
		bytesIn:  int64(len(data)),
		bytesOut: int64(len(out)),
	}, nil
}

// checkOutputPaths rejects inputs like 001.jpg and 001.png that would
// both be written to 001.png.
func checkOutputPaths(outputDir string, files []string) error {
	seen := make(map[string]string, len(files))
	for _, path := range files {
		outputPath := util.OutputPath(outputDir, path)
		if other, ok := seen[outputPath]; ok {
			return errors.Wrapf(
				util.ErrDuplicateOutput, "%s and %s -> %s",
				other, path, outputPath,
			)
		}
		seen[outputPath] = path
	}
	return nil
}
