package combine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTree(t *testing.T) {
	files := []CandidateFile{
		newCandidate("proj", "z.txt", ""),
		newCandidate("proj", "a/b.txt", ""),
		newCandidate("proj", "a/c/d.txt", ""),
		newCandidate("proj", "B.txt", ""),
	}

	want := "proj/\n" +
		"├── a/\n" +
		"│   ├── c/\n" +
		"│   │   └── d.txt\n" +
		"│   └── b.txt\n" +
		"├── B.txt\n" +
		"└── z.txt\n"
	assert.Equal(t, want, RenderTree("proj", files))
}

func TestRenderTreeEmpty(t *testing.T) {
	assert.Equal(t, "./\n", RenderTree(".", nil))
	assert.Equal(t, "src/\n", RenderTree("src/", nil))
}
