package combine

import (
	"errors"
	"fmt"
)

// Fatal errors abort the run before any output is written.
var (
	ErrInvalidPattern = errors.New("invalid pattern")
	ErrTraversal      = errors.New("traversal failed")
	ErrOutputWrite    = errors.New("failed to write output")
)

// Recoverable errors are reported as diagnostics and never fail the run.
var (
	ErrFileRead   = errors.New("failed to read file")
	ErrBinarySkip = errors.New("binary file skipped")
	ErrDecode     = errors.New("invalid UTF-8")
	ErrNoMatches  = errors.New("no files matched the provided patterns")
)

// PatternKind says which pattern set a pattern belongs to.
type PatternKind string

const (
	IncludePattern PatternKind = "include"
	ExcludePattern PatternKind = "exclude"
)

// PatternError reports a glob that failed to compile.
type PatternError struct {
	Kind    PatternKind
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid %s pattern %q: %v", e.Kind, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// Is makes every PatternError match ErrInvalidPattern.
func (e *PatternError) Is(target error) bool {
	return target == ErrInvalidPattern
}
