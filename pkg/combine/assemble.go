// File: pkg/combine/assemble.go
package combine

import (
	"errors"
	"strings"

	"go.uber.org/zap"
)

// Assembler folds per-file outcomes into a bundle and a list of diagnostics.
type Assembler struct {
	logger *zap.Logger
}

// NewAssembler returns an Assembler that reports diagnostics through logger.
func NewAssembler(logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{logger: logger}
}

// Build processes files in order. It never fails as a whole: unreadable, binary and
// undecodable files are reported and left out.
func (a *Assembler) Build(files []CandidateFile, includeBinary bool) Result {
	var bundle strings.Builder
	bundle.WriteString(Header)

	result := Result{}
	if len(files) == 0 {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{Err: ErrNoMatches})
	}
	for _, file := range files {
		outcome := ProcessSingleFile(file, includeBinary, a.logger)

		switch outcome.Kind {
		case Included:
			bundle.WriteString(Separator)
			bundle.WriteString(outcome.Path)
			bundle.WriteString(Separator)
			bundle.WriteString(outcome.Text)
			result.Included = append(result.Included, outcome.Path)
		default:
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Path: outcome.Path, Err: outcome.Err})
			a.report(outcome)
		}
	}

	result.Bundle = bundle.String()
	a.logger.Debug("Assembled bundle",
		zap.Int("includedFiles", len(result.Included)),
		zap.Int("diagnostics", len(result.Diagnostics)),
		zap.Int("bundleSizeBytes", len(result.Bundle)))
	return result
}

func (a *Assembler) report(outcome Outcome) {
	switch {
	case errors.Is(outcome.Err, ErrBinarySkip):
		a.logger.Info("Skipping binary file", zap.String("path", outcome.Path))
	case errors.Is(outcome.Err, ErrDecode):
		a.logger.Warn("File contains invalid UTF-8, skipping", zap.String("path", outcome.Path))
	default:
		a.logger.Warn("Failed to read file", zap.String("path", outcome.Path), zap.Error(outcome.Err))
	}
}
