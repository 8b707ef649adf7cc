// File: pkg/combine/helpers.go
package combine

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"glue/pkg/config"

	"go.uber.org/zap"
)

// StdoutDestination selects standard output instead of a file.
const StdoutDestination = config.StdoutOutput

// WriteBundle writes the bundle to dest, or to stdout when dest is StdoutDestination.
// An existing file is overwritten.
func WriteBundle(dest, bundle string, stdout io.Writer, logger *zap.Logger) error {
	if dest == StdoutDestination {
		if _, err := io.WriteString(stdout, bundle); err != nil {
			return fmt.Errorf("%w to stdout: %w", ErrOutputWrite, err)
		}
		return nil
	}

	if err := writeToFile(dest, bundle, logger); err != nil {
		return fmt.Errorf("%w %s: %w", ErrOutputWrite, dest, err)
	}

	logger.Info("Generated .glue file", zap.String("outputFile", dest))
	return nil
}

// writeToFile creates or truncates path and writes content through a buffered writer.
func writeToFile(path, content string, logger *zap.Logger) (err error) {
	if err := ensureDirectory(filepath.Dir(path), logger); err != nil {
		return err
	}

	outFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	writer := bufio.NewWriter(outFile)
	if _, err := writer.WriteString(content); err != nil {
		return err
	}
	return writer.Flush()
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}
