// File: pkg/combine/binary.go
package combine

import (
	"bytes"
	"unicode/utf8"

	"github.com/h2non/filetype"
)

// Byte order marks of text encodings. Content starting with one is text, even if it is not
// UTF-8 (it then fails decoding instead).
var textBOMs = [][]byte{
	{0xEF, 0xBB, 0xBF},       // UTF-8
	{0x00, 0x00, 0xFE, 0xFF}, // UTF-32BE
	{0xFF, 0xFE},             // UTF-16LE and UTF-32LE
	{0xFE, 0xFF},             // UTF-16BE
}

// Classify sniffs raw for binary content and decodes it as UTF-8 when it is valid.
func Classify(path string, raw []byte) ClassifiedContent {
	c := ClassifiedContent{
		Path:     path,
		Raw:      raw,
		IsBinary: isBinaryContent(raw),
	}
	if utf8.Valid(raw) {
		text := string(raw)
		c.Text = &text
	}
	return c
}

// isBinaryContent inspects the leading window of the content:
// a null byte, a PDF or PNG signature, or a recognised binary container that is not
// valid UTF-8 marks the content as binary. Empty content is text.
func isBinaryContent(raw []byte) bool {
	head := raw
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if len(head) == 0 {
		return false
	}

	for _, bom := range textBOMs {
		if bytes.HasPrefix(head, bom) {
			return false
		}
	}

	if bytes.IndexByte(head, 0) >= 0 {
		return true
	}

	if filetype.Is(head, "pdf") || filetype.Is(head, "png") {
		return true
	}

	return !validUTF8Prefix(head, len(raw) > len(head)) && isBinaryContainer(head)
}

// isBinaryContainer reports whether the signature belongs to a non-text format family.
func isBinaryContainer(head []byte) bool {
	return filetype.IsImage(head) ||
		filetype.IsVideo(head) ||
		filetype.IsAudio(head) ||
		filetype.IsArchive(head) ||
		filetype.IsFont(head) ||
		filetype.IsApplication(head)
}

// validUTF8Prefix validates a window cut from a longer buffer; a rune split by the cut is
// accepted when truncated is set.
func validUTF8Prefix(b []byte, truncated bool) bool {
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			return truncated && !utf8.FullRune(b)
		}
		b = b[size:]
	}
	return true
}
