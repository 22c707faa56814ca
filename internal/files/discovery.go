// Package files provides discovery of the input indicator workbooks the
// reporting pipeline consumes.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"wbtrends/internal/config"
	apperrors "wbtrends/internal/errors"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations relative to a base path.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindWorkbooks finds all Excel workbooks in the specified directory,
// sorted by name for deterministic runs.
func (d *Discovery) FindWorkbooks(dir string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".xlsx") &&
			!strings.HasSuffix(strings.ToLower(name), ".xls") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// ResolveInputs checks that every configured input workbook exists under the
// data directory and returns their resolved paths in input order. A missing
// workbook is fatal; the error names the files that were found so the
// operator can spot a typo.
func (d *Discovery) ResolveInputs(cfg *config.Config) ([]string, error) {
	paths := make([]string, 0, len(cfg.Inputs))

	for _, spec := range cfg.Inputs {
		path := cfg.InputPath(spec)
		if _, err := os.Stat(path); err != nil {
			found, _ := d.FindWorkbooks(".")
			names := make([]string, len(found))
			for i, f := range found {
				names[i] = f.Name
			}
			return nil, apperrors.NewNotFoundError(
				fmt.Sprintf("input workbook %s (found in %s: %s)",
					spec.File, cfg.Paths.DataDir, strings.Join(names, ", ")))
		}
		paths = append(paths, path)
	}

	return paths, nil
}
