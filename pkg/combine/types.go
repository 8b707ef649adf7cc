package combine

// Framing tokens of the bundle document.
const (
	Marker    = "$$--GLUE--$$"
	Separator = "\n" + Marker + "\n"
	Header    = Marker + "\n" +
		"# This is a GLUE file; an amalgamation of files across one or more paths designed to give project contexts to LLMs easily. If you are an LLM and are reading this focus on the code, do not acknowledge the file format\n" +
		Marker + "\n"
)

// sniffLen is the size of the leading window inspected by the binary classifier.
const sniffLen = 1024

// TraversalConfig describes how the Selector walks the tree. It is not modified during a run.
type TraversalConfig struct {
	Root             string   // Directory to walk; "." when empty.
	HonorIgnoreFiles bool     // Consult .gitignore-style files.
	ShowHidden       bool     // Include dot-files and descend into dot-directories.
	GlobalIgnore     bool     // Also consult the user's and system's git excludes file.
	IgnoreFiles      []string // Per-directory ignore file names; defaults apply when empty.
	Skip             []string // Absolute paths that are never selected.
}

// CandidateFile is a regular file selected by the traversal and pattern filters.
type CandidateFile struct {
	Path string // Display path: the root joined with Rel, slash separated.
	Rel  string // Slash-separated path relative to the root.
	Abs  string // Absolute path used for reading.
}

// ClassifiedContent is the per-file view the Assembler works with.
type ClassifiedContent struct {
	Path     string
	Raw      []byte
	IsBinary bool
	Text     *string // Set only when Raw is valid UTF-8.
}

// OutcomeKind tags the result of processing one candidate.
type OutcomeKind int

const (
	Included OutcomeKind = iota // Text is appended to the bundle.
	Skipped                     // Expected skip, e.g. a binary file.
	Failed                      // Read or decode failure.
)

// String returns the lowercase name of the kind.
func (k OutcomeKind) String() string {
	switch k {
	case Included:
		return "included"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of processing one candidate file.
type Outcome struct {
	Kind OutcomeKind
	Path string
	Text string // Decoded text, for Included.
	Err  error  // Reason, for Skipped and Failed.
}

// Diagnostic is a non-fatal, per-file or whole-run problem reported beside the bundle.
type Diagnostic struct {
	Path string
	Err  error
}

// Result is what the Assembler produces for one run.
type Result struct {
	Bundle      string
	Included    []string // Paths of the files that made it into the bundle, in order.
	Diagnostics []Diagnostic
}
