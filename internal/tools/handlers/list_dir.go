package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agentfoundry/toolbench/internal/fspath"
	"github.com/agentfoundry/toolbench/internal/schema"
	"github.com/agentfoundry/toolbench/internal/tools"
)

const listMaxDepth = 10

// NewListDirTool returns the list_dir descriptor. Entries are sorted by
// name within each directory; directories carry a trailing slash.
// Depths greater than one descend and print workspace-relative paths.
func NewListDirTool(root string) tools.Descriptor {
	return tools.Descriptor{
		Name:        "list_dir",
		Description: "List the entries of a directory inside the workspace. Directories are suffixed with '/'. Set depth to descend into subdirectories.",
		InputSchema: schema.Object(map[string]*schema.Node{
			"path":  schema.String("Path to the directory, relative to the workspace root. Defaults to the root itself."),
			"depth": schema.Integer("How many levels to descend, 1-10. Defaults to 1."),
		}),
		Handler: func(_ context.Context, args map[string]any) (string, error) {
			path, err := optionalStringArg(args, "path", ".")
			if err != nil {
				return "", err
			}
			depth, err := optionalIntArg(args, "depth", 1)
			if err != nil {
				return "", err
			}
			if depth < 1 || depth > listMaxDepth {
				return "", tools.NewValidationErrorf("depth must be between 1 and %d", listMaxDepth)
			}

			abs, err := fspath.Resolve(root, path)
			if err != nil {
				return "", err
			}
			info, err := os.Stat(abs)
			if err != nil {
				return "", &tools.NotFoundError{Path: path}
			}
			if !info.IsDir() {
				return "", tools.NewValidationErrorf("%s is not a directory", path)
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Directory: %s\n", path)
			count, err := listEntries(&b, abs, "", depth)
			if err != nil {
				return "", fmt.Errorf("listing %s: %w", path, err)
			}
			if count == 0 {
				return fmt.Sprintf("Directory %s is empty", path), nil
			}
			return b.String(), nil
		},
	}
}

// listEntries writes one line per entry under dir, prefixed with the
// path relative to the listing origin, descending depth levels.
func listEntries(b *strings.Builder, dir, prefix string, depth int) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	count := 0
	for _, entry := range entries {
		name := prefix + entry.Name()
		if entry.IsDir() {
			b.WriteString(name + "/\n")
			count++
			if depth > 1 {
				sub, err := listEntries(b, filepath.Join(dir, entry.Name()), name+"/", depth-1)
				if err != nil {
					return count, err
				}
				count += sub
			}
			continue
		}
		b.WriteString(name + "\n")
		count++
	}
	return count, nil
}
