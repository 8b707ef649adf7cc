package combine

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"glue/pkg/config"

	"go.uber.org/zap"
)

// Run selects, assembles and writes the bundle described by cfg.
// Fatal errors are returned before anything is written.
func Run(cfg *config.Config, stdout io.Writer, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()
	logger.Debug("Starting glue process", zap.String("root", cfg.Root), zap.String("output", cfg.Output))

	files, err := Select(cfg, logger)
	if err != nil {
		return err
	}

	result := NewAssembler(logger).Build(files, cfg.IncludeBinary)

	if err := WriteBundle(cfg.Output, result.Bundle, stdout, logger); err != nil {
		logger.Error("Failed to write bundle", zap.String("output", cfg.Output), zap.Error(err))
		return err
	}

	logger.Debug("Glue process completed",
		zap.Int("totalFiles", len(result.Included)),
		zap.Int("skippedFiles", len(result.Diagnostics)),
		zap.Duration("elapsed", time.Since(startTime)))
	return nil
}

// Select runs the Selector for cfg.
func Select(cfg *config.Config, logger *zap.Logger) ([]CandidateFile, error) {
	files, err := Collect(TraversalFromConfig(cfg), cfg.Patterns, cfg.Exclude, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to collect files: %w", err)
	}
	return files, nil
}

// TraversalFromConfig derives the traversal settings from cfg. A file destination is
// excluded from selection, so that repeated runs do not bundle their own output.
func TraversalFromConfig(cfg *config.Config) TraversalConfig {
	tc := TraversalConfig{
		Root:             cfg.Root,
		HonorIgnoreFiles: !cfg.NoIgnore,
		ShowHidden:       !cfg.SkipHidden,
		GlobalIgnore:     !cfg.NoGlobalIgnore,
		IgnoreFiles:      cfg.IgnoreFiles,
	}
	if !cfg.WritesToStdout() && cfg.Output != "" {
		if abs, err := filepath.Abs(cfg.Output); err == nil {
			tc.Skip = append(tc.Skip, abs)
		}
	}
	return tc
}
