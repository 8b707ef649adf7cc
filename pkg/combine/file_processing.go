package combine

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// ProcessSingleFile reads, classifies and decodes one candidate and returns its outcome.
// Problems never escape as errors: they are carried in the Outcome.
func ProcessSingleFile(file CandidateFile, includeBinary bool, logger *zap.Logger) Outcome {
	logger.Debug("Processing file", zap.String("path", file.Path))

	readPath := file.Abs
	if readPath == "" {
		readPath = file.Path
	}

	raw, err := os.ReadFile(readPath)
	if err != nil {
		return Outcome{Kind: Failed, Path: file.Path, Err: fmt.Errorf("%w: %w", ErrFileRead, err)}
	}

	logger.Debug("Successfully read file content",
		zap.String("path", file.Path),
		zap.Int("contentSizeBytes", len(raw)))

	content := Classify(file.Path, raw)
	if content.IsBinary && !includeBinary {
		return Outcome{Kind: Skipped, Path: file.Path, Err: ErrBinarySkip}
	}

	if content.Text == nil {
		return Outcome{Kind: Failed, Path: file.Path, Err: ErrDecode}
	}

	return Outcome{Kind: Included, Path: file.Path, Text: *content.Text}
}
