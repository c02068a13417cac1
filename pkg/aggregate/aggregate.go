// Package aggregate concatenates the source files of a shallow directory tree into a
// single labeled output file.
//
// A run is a linear pipeline: Collect walks the start directory and its immediate
// subdirectories for files ending in the configured suffix, Order sorts them by relative
// path, and Emit writes one record per file to the output:
//
//	######## <relative path>
//	<file contents>
//	<blank line>
package aggregate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"srccat/pkg/ignore"

	"go.uber.org/zap"
)

// Aggregator runs the collect, order and emit stages over one start directory.
type Aggregator struct {
	root   string
	cfg    Config
	ignore *ignore.Matcher
	logger *zap.Logger
}

// Result summarizes a completed run.
type Result struct {
	Root    string        // Absolute start directory.
	Output  string        // Absolute path of the written output file.
	Files   []File        // Records written, in output order.
	Bytes   int64         // Total bytes written to the output.
	Elapsed time.Duration // Wall time of the run.
}

// New validates cfg, resolves root and loads the exclusion patterns.
// A nil logger disables logging.
func New(root string, cfg Config, logger *zap.Logger) (*Aggregator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, &Error{Kind: Traversal, Path: absRoot, Err: err}
	}
	if !info.IsDir() {
		return nil, &Error{Kind: Traversal, Path: absRoot, Err: errors.New("not a directory")}
	}

	matcher := ignore.New(logger.Named("ignore"))
	if cfg.IgnoreFile != "" {
		ignorePath := cfg.IgnoreFile
		if !filepath.IsAbs(ignorePath) {
			ignorePath = filepath.Join(absRoot, ignorePath)
		}
		if err := matcher.AddFile(ignorePath); err != nil {
			return nil, fmt.Errorf("failed to load ignore patterns: %w", err)
		}
	}
	matcher.AddLines(cfg.Ignore...)

	return &Aggregator{
		root:   absRoot,
		cfg:    cfg,
		ignore: matcher,
		logger: logger,
	}, nil
}

// Root returns the absolute start directory.
func (a *Aggregator) Root() string {
	return a.root
}

// OutputPath returns the absolute path of the output file.
func (a *Aggregator) OutputPath() string {
	return filepath.Join(a.root, a.cfg.OutputName)
}

// Run collects, orders and emits. Any error aborts the run; an output file that was
// already created is left as written so far.
func (a *Aggregator) Run() (Result, error) {
	startTime := time.Now()
	result := Result{Root: a.root, Output: a.OutputPath()}
	a.logger.Info("Starting aggregation",
		zap.String("directory", a.root),
		zap.String("suffix", a.cfg.Suffix),
		zap.Int("maxDepth", a.cfg.MaxDepth),
		zap.Int("ignorePatterns", a.ignore.Len()))

	files, err := a.Collect()
	if err != nil {
		a.logger.Error("Failed to collect files", zap.Error(err))
		return result, fmt.Errorf("failed to collect files: %w", err)
	}

	Order(files)
	a.logger.Debug("Sorted collected files", zap.Int("fileCount", len(files)))

	written, err := a.Emit(files)
	result.Bytes = written
	if err != nil {
		a.logger.Error("Failed to write output", zap.String("output", result.Output), zap.Error(err))
		return result, fmt.Errorf("failed to write output: %w", err)
	}

	result.Files = files
	result.Elapsed = time.Since(startTime)
	a.logger.Info("Aggregation completed",
		zap.String("output", result.Output),
		zap.Int("totalFiles", len(files)),
		zap.Int64("bytesWritten", written),
		zap.Duration("elapsed", result.Elapsed))
	return result, nil
}

// Run is shorthand for New followed by Aggregator.Run.
func Run(root string, cfg Config, logger *zap.Logger) (Result, error) {
	a, err := New(root, cfg, logger)
	if err != nil {
		return Result{}, err
	}
	return a.Run()
}
