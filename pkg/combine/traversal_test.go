package combine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestCollectSkipsVCSDirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.txt":         "hello",
		"b.bin":         "\x00\x01\x02",
		".git/config":   "[core]",
		".git/HEAD":     "ref: refs/heads/main",
		"docs/.git":     "gitdir: ../.git/modules/docs",
		"docs/guide.md": "# guide",
	})

	files, err := Collect(testTraversal(root), []string{"*"}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.bin", "docs/guide.md"}, rels(files))

	// Turning ignore files off does not bring .git back.
	cfg := testTraversal(root)
	cfg.HonorIgnoreFiles = false
	files, err = Collect(cfg, []string{"**"}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.bin", "docs/guide.md"}, rels(files))
}

func TestCollectExcludeWins(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/main.rs":            "fn main() {}",
		"src/generated/proto.rs": "// generated",
		"generated/top.rs":       "// generated",
		"README.md":              "# readme",
	})

	files, err := Collect(testTraversal(root), []string{"*.rs"}, []string{"**/generated/*.rs"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"src/main.rs"}, rels(files))
}

func TestCollectSortedDisplayPaths(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"z.txt":   "z",
		"a/b.txt": "b",
		"A.txt":   "A",
		"a.txt":   "a",
	})

	files, err := Collect(testTraversal(root), []string{"**/*.txt"}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"A.txt", "a.txt", "a/b.txt", "z.txt"}, rels(files))

	for _, f := range files {
		assert.Equal(t, filepath.ToSlash(filepath.Join(root, filepath.FromSlash(f.Rel))), f.Path)
		assert.True(t, filepath.IsAbs(f.Abs))
	}
}

func TestCollectDisplayPathKeepsRelativeRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"pkg/a.go": "package pkg"})

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	files, err := Collect(testTraversal("pkg"), []string{"*.go"}, nil, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "pkg/a.go", files[0].Path)
	assert.Equal(t, "a.go", files[0].Rel)
}

func TestCollectHiddenEntries(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".env":            "SECRET=1",
		".config/app.txt": "x",
		"visible.txt":     "y",
	})

	cfg := testTraversal(root)
	files, err := Collect(cfg, []string{"*"}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{".config/app.txt", ".env", "visible.txt"}, rels(files))

	cfg.ShowHidden = false
	files, err = Collect(cfg, []string{"*"}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"visible.txt"}, rels(files))
}

func TestCollectIgnoreFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":      "*.log\nbuild/\n",
		"app.log":         "log",
		"main.go":         "package main",
		"build/out.txt":   "artifact",
		"sub/.ignore":     "local.txt\n",
		"sub/local.txt":   "local",
		"sub/keep.txt":    "keep",
		"sub/.glueignore": "*.tmp\n",
		"sub/scratch.tmp": "scratch",
	})

	cfg := testTraversal(root)
	files, err := Collect(cfg, []string{"**/*.{go,log,txt,tmp}"}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go", "sub/keep.txt"}, rels(files))

	cfg.HonorIgnoreFiles = false
	files, err = Collect(cfg, []string{"**/*.{go,log,txt,tmp}"}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"app.log",
		"build/out.txt",
		"main.go",
		"sub/keep.txt",
		"sub/local.txt",
		"sub/scratch.tmp",
	}, rels(files))
}

func TestCollectGitignoreNegation(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":      "*.txt\n!keep.txt\n",
		"drop.txt":        "drop",
		"keep.txt":        "keep",
		"nested/.ignore":  "keep.txt\n",
		"nested/keep.txt": "nested keep",
	})

	files, err := Collect(testTraversal(root), []string{"**/*.txt"}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.txt"}, rels(files))
}

func TestCollectSymlinks(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"target.txt":    "target",
		"dir/inner.txt": "inner",
	})
	if err := os.Symlink(filepath.Join(root, "target.txt"), filepath.Join(root, "link.txt")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "dir"), filepath.Join(root, "dirlink")))
	require.NoError(t, os.Symlink(filepath.Join(root, "missing.txt"), filepath.Join(root, "dangling.txt")))

	files, err := Collect(testTraversal(root), []string{"**/*.txt"}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"dir/inner.txt", "link.txt", "target.txt"}, rels(files))
}

func TestCollectSymlinkRoot(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "project")
	writeTree(t, target, map[string]string{
		".gitignore":  "*.log\n",
		"a.txt":       "a",
		"src/b.txt":   "b",
		"debug.log":   "noise",
		"output.glue": "previous bundle",
	})
	link := filepath.Join(base, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	cfg := testTraversal(link)
	cfg.Skip = []string{filepath.Join(link, "output.glue")}

	files, err := Collect(cfg, []string{"**/*.txt", "*.log", "*.glue"}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "src/b.txt"}, rels(files))

	require.Len(t, files, 2)
	assert.Equal(t, filepath.ToSlash(filepath.Join(link, "a.txt")), files[0].Path)
	content, err := os.ReadFile(files[1].Abs)
	require.NoError(t, err)
	assert.Equal(t, "b", string(content))
}

func TestCollectSkipsOutputDestination(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.txt":       "a",
		"output.glue": "previous bundle",
	})

	cfg := testTraversal(root)
	cfg.Skip = []string{filepath.Join(root, "output.glue")}

	files, err := Collect(cfg, []string{"*"}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, rels(files))
}

func TestCollectRootErrors(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"file.txt": "x"})

	_, err := Collect(testTraversal(filepath.Join(root, "missing")), []string{"*"}, nil, zap.NewNop())
	assert.ErrorIs(t, err, ErrTraversal)

	_, err = Collect(testTraversal(filepath.Join(root, "file.txt")), []string{"*"}, nil, zap.NewNop())
	assert.ErrorIs(t, err, ErrTraversal)
}

func TestCollectPatternErrorsBeforeWalking(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	_, err := Collect(testTraversal(missing), []string{"[abc"}, nil, zap.NewNop())
	assert.ErrorIs(t, err, ErrInvalidPattern)
	assert.NotErrorIs(t, err, ErrTraversal)

	_, err = Collect(testTraversal(missing), []string{"*"}, []string{"{a,b"}, zap.NewNop())
	assert.ErrorIs(t, err, ErrInvalidPattern)

	_, err = Collect(testTraversal(missing), nil, nil, zap.NewNop())
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestCollectNoMatches(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "a"})

	logger, logs := observedLogger(zapcore.WarnLevel)
	files, err := Collect(testTraversal(root), []string{"*.go"}, nil, logger)
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)
	assert.Equal(t, 1, logs.FilterMessage("No files matched the provided patterns").Len())
}

func TestCollectUnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"ok.txt":         "ok",
		"locked/sec.txt": "secret",
	})
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	logger, logs := observedLogger(zapcore.WarnLevel)
	files, err := Collect(testTraversal(root), []string{"**/*.txt"}, nil, logger)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok.txt"}, rels(files))
	assert.Equal(t, 1, logs.FilterMessage("Error accessing path during traversal").Len())
}
