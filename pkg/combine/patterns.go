// File: pkg/combine/patterns.go
package combine

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
)

// Pattern is one compiled include or exclude glob. It matches a candidate when either of
// two independent strategies does:
//   - the segment-aware glob over the root-relative path, where "*" stops at "/" and "**"
//     spans directories ("**/*.go", "cmd/*/main.go");
//   - the plain string glob over the display path, where "*" also crosses "/"
//     ("*.go" matches "pkg/x.go").
type Pattern struct {
	Raw        string
	normalized string
	str        glob.Glob
}

// CompilePattern validates raw for both strategies.
func CompilePattern(kind PatternKind, raw string) (*Pattern, error) {
	normalized := normalizePattern(raw)

	if !doublestar.ValidatePattern(normalized) {
		return nil, &PatternError{Kind: kind, Pattern: raw, Err: doublestar.ErrBadPattern}
	}

	str, err := glob.Compile(normalized)
	if err != nil {
		return nil, &PatternError{Kind: kind, Pattern: raw, Err: err}
	}

	return &Pattern{Raw: raw, normalized: normalized, str: str}, nil
}

// Match reports whether either strategy matches the candidate.
func (p *Pattern) Match(c CandidateFile) bool {
	return p.matchSegments(c.Rel) || p.matchString(c.Path)
}

func (p *Pattern) matchSegments(rel string) bool {
	ok, err := doublestar.Match(p.normalized, rel)
	return err == nil && ok
}

func (p *Pattern) matchString(path string) bool {
	return p.str.Match(path)
}

// PatternSet is an ordered list of compiled patterns of one kind.
type PatternSet struct {
	Kind     PatternKind
	patterns []*Pattern
}

// CompilePatterns compiles every raw string, failing on the first one that does not compile.
func CompilePatterns(kind PatternKind, raws []string) (*PatternSet, error) {
	set := &PatternSet{Kind: kind, patterns: make([]*Pattern, 0, len(raws))}
	for _, raw := range raws {
		p, err := CompilePattern(kind, raw)
		if err != nil {
			return nil, err
		}
		set.patterns = append(set.patterns, p)
	}
	return set, nil
}

// Match reports whether any pattern in the set matches the candidate.
func (s *PatternSet) Match(c CandidateFile) bool {
	_, ok := s.MatchWithPattern(c)
	return ok
}

// MatchWithPattern returns the first pattern that matches the candidate.
func (s *PatternSet) MatchWithPattern(c CandidateFile) (*Pattern, bool) {
	if s == nil {
		return nil, false
	}
	for _, p := range s.patterns {
		if p.Match(c) {
			return p, true
		}
	}
	return nil, false
}

// Len returns the number of patterns.
func (s *PatternSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// Strings returns the raw pattern strings in order.
func (s *PatternSet) Strings() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.patterns))
	for i, p := range s.patterns {
		out[i] = p.Raw
	}
	return out
}

// normalizePattern drops a leading "./": candidate paths are reported root-relative.
func normalizePattern(raw string) string {
	for strings.HasPrefix(raw, "./") {
		raw = strings.TrimPrefix(raw, "./")
	}
	return raw
}
