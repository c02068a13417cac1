// File: pkg/aggregate/collect.go
package aggregate

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// File is one collected candidate.
type File struct {
	Path    string // Absolute path as walked.
	RelPath string // Path relative to the start directory, OS separators.
	Depth   int    // Depth of the containing directory; the start directory is 0.
}

// Collect walks the start directory down to the configured depth and returns every
// file entry whose name ends with the suffix. Symlinks are not followed; a symlink
// to a directory is skipped. Directories deeper than the limit are neither listed
// nor descended into. The result is in walk order; use Order before emitting.
func (a *Aggregator) Collect() ([]File, error) {
	files := []File{}
	a.logger.Debug("Starting file collection", zap.String("root", a.root), zap.Int("maxDepth", a.cfg.MaxDepth))

	err := filepath.WalkDir(a.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &Error{Kind: Traversal, Path: path, Err: err}
		}

		relPath, err := filepath.Rel(a.root, path)
		if err != nil {
			return &Error{Kind: Traversal, Path: path, Err: err}
		}

		if d.IsDir() {
			if relPath == "." {
				return nil
			}
			if depth := dirDepth(relPath); depth > a.cfg.MaxDepth {
				a.logger.Debug("Skipping directory beyond depth limit", zap.String("directory", relPath), zap.Int("depth", depth))
				return filepath.SkipDir
			}
			if a.ignore.MatchDir(relPath) {
				a.logger.Debug("Skipping ignored directory", zap.String("directory", relPath))
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), a.cfg.Suffix) {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			// Links to directories are directories for collection purposes. Dangling
			// links stay in the set and fail when read.
			if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
				a.logger.Debug("Skipping symlink to directory", zap.String("filePath", relPath))
				return nil
			}
		}
		if a.ignore.MatchFile(relPath) {
			a.logger.Debug("Skipping ignored file", zap.String("filePath", relPath))
			return nil
		}

		files = append(files, File{
			Path:    path,
			RelPath: relPath,
			Depth:   dirDepth(filepath.Dir(relPath)),
		})
		a.logger.Debug("Collected file", zap.String("filePath", relPath))
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.logger.Debug("Completed file collection", zap.Int("fileCount", len(files)))
	return files, nil
}

// dirDepth returns how many directory levels relDir lies below the start directory.
func dirDepth(relDir string) int {
	if relDir == "." || relDir == "" {
		return 0
	}
	return strings.Count(relDir, string(filepath.Separator)) + 1
}
