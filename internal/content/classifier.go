// Package content distinguishes binary from text file content.
package content

import (
	"bytes"
	"os"
)

// SampleSize is the number of leading bytes examined by LooksBinary.
const SampleSize = 1024

// LooksBinary reports whether the file at path appears to hold binary
// content: true iff a NUL byte occurs in the first SampleSize bytes.
// An empty file classifies as text. Any I/O failure also classifies as
// text; the caller's real operation surfaces the authoritative error.
// This is a best-effort heuristic, not a format-correct detector.
func LooksBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, SampleSize)
	n, err := f.Read(buf)
	if n <= 0 || (err != nil && n == 0) {
		return false
	}
	return Sniff(buf[:n])
}

// Sniff reports whether the given sample contains a NUL byte. Only the
// first SampleSize bytes are considered.
func Sniff(sample []byte) bool {
	if len(sample) > SampleSize {
		sample = sample[:SampleSize]
	}
	return bytes.IndexByte(sample, 0) >= 0
}
