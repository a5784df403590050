package util

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const tempPrefix = ".unscramble-"

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".tif", ".tiff", ".gif", ".bmp"}

func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			zap.S().Debugf("creating directory: %s", dir)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrap(err, "failed to create directory")
			}
		} else {
			return errors.Wrap(err, "error accessing directory")
		}
	}
	return nil
}

// WriteFileAtomic writes data next to path under a temporary name
// and renames it into place, so readers never see a partial page.
func WriteFileAtomic(path string, data []byte) error {
	tempPath := filepath.Join(filepath.Dir(path), tempPrefix+uuid.NewString())
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		os.Remove(tempPath)
		return errors.Wrapf(err, "failed to write %s", tempPath)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Wrapf(err, "failed to move %s into place", path)
	}
	return nil
}

// ListImageFiles returns the image files directly inside dir, sorted by name.
func ListImageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read directory %s", dir)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !slices.Contains(imageExtensions, ext) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	slices.Sort(files)
	return files, nil
}

// OutputPath maps an input page to its PNG name inside outputDir.
func OutputPath(outputDir string, inputPath string) string {
	name := filepath.Base(inputPath)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(outputDir, stem+".png")
}

// CleanupOldFiles removes temp files left behind in dir by interrupted runs.
func CleanupOldFiles(dir string, maxAge time.Duration) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), tempPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) > maxAge {
			path := filepath.Join(dir, entry.Name())
			zap.S().Debugf("removing old file: %s", path)
			os.Remove(path)
		}
	}
}
