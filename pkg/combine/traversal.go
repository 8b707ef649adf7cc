// File: pkg/combine/traversal.go
package combine

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"glue/pkg/ignore"

	"go.uber.org/zap"
)

// Collect compiles the include and exclude patterns and walks the tree described by cfg.
// Pattern errors are returned before the filesystem is touched.
func Collect(cfg TraversalConfig, includes, excludes []string, logger *zap.Logger) ([]CandidateFile, error) {
	if len(includes) == 0 {
		return nil, fmt.Errorf("%w: at least one include pattern is required", ErrInvalidPattern)
	}

	inc, err := CompilePatterns(IncludePattern, includes)
	if err != nil {
		return nil, err
	}
	exc, err := CompilePatterns(ExcludePattern, excludes)
	if err != nil {
		return nil, err
	}

	return CollectFiles(cfg, inc, exc, logger)
}

// CollectFiles walks cfg.Root and returns the regular files matched by inc and not by exc,
// sorted by display path. An empty result is logged as a warning, not returned as an error.
func CollectFiles(cfg TraversalConfig, inc, exc *PatternSet, logger *zap.Logger) ([]CandidateFile, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	root := cfg.Root
	if root == "" {
		root = "."
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve %s: %v", ErrTraversal, root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTraversal, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: root path is not a directory: %s", ErrTraversal, root)
	}

	// WalkDir does not descend into a root that is itself a link; walk its target instead.
	// Display paths keep the root as given.
	absRoot, err = filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve %s: %v", ErrTraversal, root, err)
	}

	skip := make(map[string]bool, len(cfg.Skip))
	for _, p := range cfg.Skip {
		skip[resolvePath(p)] = true
	}

	var gi *ignore.Stack
	if cfg.HonorIgnoreFiles {
		gi, err = ignore.New(absRoot, ignore.Options{Files: cfg.IgnoreFiles, Global: cfg.GlobalIgnore}, logger)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTraversal, err)
		}
	}

	logger.Debug("Starting file traversal and collection",
		zap.String("root", absRoot),
		zap.Strings("include", inc.Strings()),
		zap.Strings("exclude", exc.Strings()),
		zap.Bool("honorIgnoreFiles", cfg.HonorIgnoreFiles))

	files := []CandidateFile{}
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return err
			}
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if relPath == "." {
			loadIgnoreDir(gi, path, logger)
			return nil
		}

		if ignore.HasVCSSegment(relPath) {
			return skipEntry(d)
		}

		if !cfg.ShowHidden && strings.HasPrefix(d.Name(), ".") {
			logger.Debug("Skipping hidden entry", zap.String("path", relPath))
			return skipEntry(d)
		}

		if d.IsDir() {
			if gi != nil && gi.Match(relPath, true) {
				logger.Debug("Skipping ignored directory during traversal", zap.String("directory", relPath))
				return filepath.SkipDir
			}
			loadIgnoreDir(gi, path, logger)
			return nil
		}

		if !isRegularFile(path, d) {
			logger.Debug("Skipping non-regular file", zap.String("path", relPath))
			return nil
		}

		if gi != nil && gi.Match(relPath, false) {
			logger.Debug("Skipping ignored file", zap.String("path", relPath))
			return nil
		}

		if skip[path] {
			logger.Debug("Skipping output destination", zap.String("path", relPath))
			return nil
		}

		candidate := newCandidate(root, relPath, path)
		if !inc.Match(candidate) {
			return nil
		}
		if p, excluded := exc.MatchWithPattern(candidate); excluded {
			logger.Debug("File matches exclude pattern",
				zap.String("path", candidate.Path),
				zap.String("pattern", p.Raw))
			return nil
		}

		files = append(files, candidate)
		logger.Debug("Added file to processing list", zap.String("path", candidate.Path))
		return nil
	})
	if walkErr != nil {
		logger.Error("Error during file traversal", zap.Error(walkErr))
		return nil, fmt.Errorf("%w: %v", ErrTraversal, walkErr)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	if len(files) == 0 {
		logger.Warn("No files matched the provided patterns",
			zap.Strings("include", inc.Strings()),
			zap.Strings("exclude", exc.Strings()))
	}

	logger.Debug("Completed file traversal and collection", zap.Int("files", len(files)))
	return files, nil
}

// newCandidate builds the three path forms of a selected file.
func newCandidate(root, relPath, absPath string) CandidateFile {
	return CandidateFile{
		Path: filepath.ToSlash(filepath.Join(root, filepath.FromSlash(relPath))),
		Rel:  relPath,
		Abs:  absPath,
	}
}

// isRegularFile reports whether the entry is, or links to, a regular file.
// Links to directories are never followed.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// resolvePath returns the absolute, link-free form of path. A path that does not exist yet
// only has its parent directory resolved.
func resolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		return filepath.Join(dir, filepath.Base(abs))
	}
	return abs
}

func skipEntry(d fs.DirEntry) error {
	if d.IsDir() {
		return filepath.SkipDir
	}
	return nil
}

func loadIgnoreDir(gi *ignore.Stack, dir string, logger *zap.Logger) {
	if gi == nil {
		return
	}
	if err := gi.LoadDir(dir); err != nil {
		logger.Warn("Failed to load ignore files", zap.String("directory", dir), zap.Error(err))
	}
}
