// Package ignore decides which paths below a walk root are excluded by ignore files.
//
// Matching follows gitignore semantics (nested files, negation, directory-only and
// anchored rules) using go-git's gitignore implementation. Patterns are expressed relative
// to a base directory: the enclosing repository root when the walk root lives inside one,
// otherwise the walk root itself.
package ignore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"go.uber.org/zap"
)

// VCSDir is the version-control metadata directory. Paths containing it as a segment are
// never selected, whatever the ignore settings.
const VCSDir = ".git"

// infoExclude is the repository-local exclude file, relative to the repository root.
var infoExclude = []string{VCSDir, "info", "exclude"}

// DefaultFiles are the per-directory ignore files consulted when none are configured.
var DefaultFiles = []string{".gitignore", ".ignore", ".glueignore"}

// Options controls which ignore sources a Stack consults.
type Options struct {
	Files  []string // Per-directory ignore file names; DefaultFiles when empty.
	Global bool     // Also load core.excludesFile from the user and system git config.
}

// Stack accumulates gitignore patterns while a directory tree is walked.
// Patterns from a directory only apply below that directory, so a single flat list is
// enough; later (deeper) patterns take precedence.
type Stack struct {
	base     string   // Absolute directory all patterns are relative to.
	prefix   []string // Segments of the walk root relative to base.
	files    []string
	patterns []gitignore.Pattern
	matcher  gitignore.Matcher
	logger   *zap.Logger
}

// New builds a Stack for the walk root. It loads global and system excludes when asked to,
// the repository's info/exclude file, and the ignore files of every directory between the
// repository root and the walk root. The walk root's own ignore files are loaded by the
// walker through LoadDir, like any other directory.
func New(root string, opts Options, logger *zap.Logger) (*Stack, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ignore root: %w", err)
	}

	files := opts.Files
	if len(files) == 0 {
		files = DefaultFiles
	}

	s := &Stack{
		base:   absRoot,
		files:  files,
		logger: logger,
	}

	if opts.Global {
		s.loadGlobal()
	}

	if repo, ok := findRepoRoot(absRoot); ok {
		s.base = repo
		rel, err := filepath.Rel(repo, absRoot)
		if err != nil {
			return nil, fmt.Errorf("failed to relate %s to repository %s: %w", absRoot, repo, err)
		}
		s.prefix = Segments(rel)

		if err := s.loadFile(filepath.Join(append([]string{repo}, infoExclude...)...), nil); err != nil {
			logger.Warn("Failed to load repository exclude file", zap.String("repository", repo), zap.Error(err))
		}

		// Ancestors of the walk root, from the repository root downwards.
		dir := repo
		for i := 0; i < len(s.prefix); i++ {
			if err := s.LoadDir(dir); err != nil {
				logger.Warn("Failed to load ignore files", zap.String("directory", dir), zap.Error(err))
			}
			dir = filepath.Join(dir, s.prefix[i])
		}
	}

	s.matcher = gitignore.NewMatcher(s.patterns)
	return s, nil
}

// LoadDir reads the configured ignore files found directly in dir.
// Missing files are not an error.
func (s *Stack) LoadDir(dir string) error {
	rel, err := filepath.Rel(s.base, dir)
	if err != nil {
		return fmt.Errorf("failed to relate %s to %s: %w", dir, s.base, err)
	}
	domain := Segments(rel)

	var errs []error
	for _, name := range s.files {
		if err := s.loadFile(filepath.Join(dir, name), domain); err != nil {
			errs = append(errs, err)
		}
	}
	s.matcher = gitignore.NewMatcher(s.patterns)
	return errors.Join(errs...)
}

// Match reports whether the slash-separated path, relative to the walk root, is ignored.
func (s *Stack) Match(rel string, isDir bool) bool {
	if s.matcher == nil {
		return false
	}
	segments := Segments(rel)
	if len(segments) == 0 {
		return false
	}
	path := make([]string, 0, len(s.prefix)+len(segments))
	path = append(path, s.prefix...)
	path = append(path, segments...)
	return s.matcher.Match(path, isDir)
}

// Len returns the number of loaded patterns.
func (s *Stack) Len() int {
	return len(s.patterns)
}

// loadFile compiles every pattern line of an ignore file under the given domain.
func (s *Stack) loadFile(path string, domain []string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read ignore file %s: %w", path, err)
	}

	count := 0
	for _, line := range strings.Split(string(content), "\n") {
		pattern, ok := parsePatternLine(line)
		if !ok {
			continue
		}
		s.patterns = append(s.patterns, gitignore.ParsePattern(pattern, domain))
		count++
	}

	s.logger.Debug("Loaded ignore file", zap.String("file", path), zap.Int("patterns", count))
	return nil
}

// loadGlobal prepends the user's and the system's core.excludesFile patterns.
func (s *Stack) loadGlobal() {
	fs := osfs.New("/")

	system, err := gitignore.LoadSystemPatterns(fs)
	if err != nil {
		s.logger.Warn("Failed to load system git excludes", zap.Error(err))
	}
	global, err := gitignore.LoadGlobalPatterns(fs)
	if err != nil {
		s.logger.Warn("Failed to load global git excludes", zap.Error(err))
	}

	s.patterns = append(s.patterns, system...)
	s.patterns = append(s.patterns, global...)
	s.logger.Debug("Loaded global git excludes", zap.Int("patterns", len(system)+len(global)))
}

// parsePatternLine trims a raw ignore file line. It returns false for blank lines and
// comments.
func parsePatternLine(line string) (string, bool) {
	line = strings.TrimSuffix(line, "\r")

	// Trailing spaces are dropped unless escaped with a backslash.
	if strings.HasSuffix(line, `\ `) {
		line = strings.TrimRight(line[:len(line)-2], " \t") + `\ `
	} else {
		line = strings.TrimRight(line, " \t")
	}

	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
		return "", false
	}
	return line, true
}

// findRepoRoot walks up from dir to the nearest directory holding a .git entry.
func findRepoRoot(dir string) (string, bool) {
	current := dir
	for {
		if _, err := os.Lstat(filepath.Join(current, VCSDir)); err == nil {
			return current, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// Segments splits a relative path into its components, accepting either separator.
// "." and "" yield no segments.
func Segments(rel string) []string {
	rel = filepath.ToSlash(rel)
	rel = strings.ReplaceAll(rel, `\`, "/")
	var out []string
	for _, part := range strings.Split(rel, "/") {
		if part == "" || part == "." {
			continue
		}
		out = append(out, part)
	}
	return out
}

// HasVCSSegment reports whether any component of the relative path is the version-control
// metadata directory. The check is an exact segment comparison, so ".github" or "x.git" do
// not count.
func HasVCSSegment(rel string) bool {
	for _, part := range Segments(rel) {
		if part == VCSDir {
			return true
		}
	}
	return false
}
