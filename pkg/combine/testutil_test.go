package combine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// writeTree creates the files under root. Keys are slash-separated relative paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func observedLogger(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

func rels(files []CandidateFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Rel
	}
	return out
}

func candidate(root, rel string) CandidateFile {
	return newCandidate(root, rel, filepath.Join(root, filepath.FromSlash(rel)))
}

// testTraversal is the traversal used by most tests: ignore files on, hidden entries shown,
// the user's git excludes file left alone.
func testTraversal(root string) TraversalConfig {
	return TraversalConfig{Root: root, HonorIgnoreFiles: true, ShowHidden: true}
}
