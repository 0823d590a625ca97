package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/agentfoundry/toolbench/internal/content"
	"github.com/agentfoundry/toolbench/internal/fspath"
	"github.com/agentfoundry/toolbench/internal/schema"
	"github.com/agentfoundry/toolbench/internal/tools"
)

// NewEditFileTool returns the edit_file descriptor: a surgical
// search-and-replace that requires the search text to match exactly once.
// Matching is done on LF-normalized content so the caller need not know
// the file's line-ending style; the file's dominant original style is
// restored on write. Zero or multiple matches fail without touching the
// file.
func NewEditFileTool(root string) tools.Descriptor {
	return tools.Descriptor{
		Name:        "edit_file",
		Description: "Replace one exact occurrence of a text fragment in a file. The search text must match exactly once; widen it with surrounding lines if it is ambiguous.",
		InputSchema: schema.Object(map[string]*schema.Node{
			"path":    schema.String("Path to the file, relative to the workspace root."),
			"search":  schema.String("Exact text to find. Must occur exactly once."),
			"replace": schema.String("Replacement text."),
		}, "path", "search", "replace"),
		Handler: func(_ context.Context, args map[string]any) (string, error) {
			path, err := stringArg(args, "path")
			if err != nil {
				return "", err
			}
			search, err := stringArg(args, "search")
			if err != nil {
				return "", err
			}
			if search == "" {
				return "", tools.NewValidationErrorf("search must not be empty")
			}
			replace, err := stringArg(args, "replace")
			if err != nil {
				return "", err
			}

			abs, err := fspath.Resolve(root, path)
			if err != nil {
				return "", err
			}
			info, err := os.Stat(abs)
			if err != nil {
				return "", &tools.NotFoundError{Path: path}
			}
			if content.LooksBinary(abs) {
				return "", &tools.BinaryContentError{Path: path}
			}

			data, err := os.ReadFile(abs)
			if err != nil {
				return "", fmt.Errorf("reading %s: %w", path, err)
			}

			original := string(data)
			normalized := normalizeEOL(original)
			needle := normalizeEOL(search)

			count := strings.Count(normalized, needle)
			if count != 1 {
				return "", &tools.EditMatchError{Path: path, Matches: count}
			}

			edited := strings.Replace(normalized, needle, normalizeEOL(replace), 1)
			if dominantEOLIsCRLF(original) {
				edited = strings.ReplaceAll(edited, "\n", "\r\n")
			}

			if err := os.WriteFile(abs, []byte(edited), info.Mode().Perm()); err != nil {
				return "", fmt.Errorf("writing %s: %w", path, err)
			}
			return fmt.Sprintf("Edited %s", path), nil
		},
	}
}

// normalizeEOL converts CRLF line endings to LF.
func normalizeEOL(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// dominantEOLIsCRLF reports whether CRLF is the file's dominant line
// ending: at least one newline, and half or more of them carried a CR.
func dominantEOLIsCRLF(s string) bool {
	lf := strings.Count(s, "\n")
	if lf == 0 {
		return false
	}
	crlf := strings.Count(s, "\r\n")
	return crlf*2 >= lf
}
