package handlers

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/agentfoundry/toolbench/internal/fspath"
	"github.com/agentfoundry/toolbench/internal/schema"
	"github.com/agentfoundry/toolbench/internal/tools"
)

const searchMaxResults = 100

// skipDirs are directory names never descended into during a search.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"target":       true,
	"dist":         true,
	"build":        true,
	"__pycache__":  true,
}

// NewSearchFilesTool returns the search_files descriptor: a
// case-insensitive substring match over workspace-relative paths.
func NewSearchFilesTool(root string) tools.Descriptor {
	return tools.Descriptor{
		Name:        "search_files",
		Description: "Find files under the workspace whose relative path contains the given text (case-insensitive). Returns up to 100 matches.",
		InputSchema: schema.Object(map[string]*schema.Node{
			"pattern":     schema.String("Substring to look for in file paths."),
			"path":        schema.String("Directory to search under, relative to the workspace root. Defaults to the root."),
			"max_results": schema.Integer("Cap on returned matches, 1-100. Defaults to 100."),
		}, "pattern"),
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			pattern, err := stringArg(args, "pattern")
			if err != nil {
				return "", err
			}
			startPath, err := optionalStringArg(args, "path", ".")
			if err != nil {
				return "", err
			}
			maxResults, err := optionalIntArg(args, "max_results", searchMaxResults)
			if err != nil {
				return "", err
			}
			if maxResults < 1 || maxResults > searchMaxResults {
				return "", tools.NewValidationErrorf("max_results must be between 1 and %d", searchMaxResults)
			}

			absStart, err := fspath.Resolve(root, startPath)
			if err != nil {
				return "", err
			}

			needle := strings.ToLower(pattern)
			var matches []string
			truncated := false

			walkErr := filepath.WalkDir(absStart, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return nil
				}
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if d.IsDir() {
					if skipDirs[d.Name()] {
						return filepath.SkipDir
					}
					return nil
				}
				rel, err := filepath.Rel(root, p)
				if err != nil {
					return nil
				}
				if strings.Contains(strings.ToLower(rel), needle) {
					if len(matches) >= maxResults {
						truncated = true
						return filepath.SkipAll
					}
					matches = append(matches, rel)
				}
				return nil
			})
			if walkErr != nil {
				if ctx.Err() != nil {
					return "", walkErr
				}
				return "", &tools.NotFoundError{Path: startPath}
			}

			if len(matches) == 0 {
				return fmt.Sprintf("No files matching %q", pattern), nil
			}
			var b strings.Builder
			fmt.Fprintf(&b, "Found %d file(s) matching %q:\n", len(matches), pattern)
			for _, m := range matches {
				b.WriteString(m)
				b.WriteByte('\n')
			}
			if truncated {
				fmt.Fprintf(&b, "(results truncated at %d)\n", maxResults)
			}
			return b.String(), nil
		},
	}
}
