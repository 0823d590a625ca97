package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/agentfoundry/toolbench/internal/content"
	"github.com/agentfoundry/toolbench/internal/fspath"
	"github.com/agentfoundry/toolbench/internal/schema"
	"github.com/agentfoundry/toolbench/internal/tools"
)

// NewWriteFileTool returns the write_file descriptor. Writing creates
// missing parent directories; append mode refuses binary targets so a
// text append cannot silently corrupt them.
func NewWriteFileTool(root string) tools.Descriptor {
	return tools.Descriptor{
		Name:        "write_file",
		Description: "Write content to a file inside the workspace, creating parent directories as needed. Set append to add to the end instead of overwriting.",
		InputSchema: schema.Object(map[string]*schema.Node{
			"path":    schema.String("Path to the file, relative to the workspace root."),
			"content": schema.String("Content to write."),
			"append":  schema.Boolean("Append instead of overwrite. Defaults to false."),
		}, "path", "content"),
		Handler: func(_ context.Context, args map[string]any) (string, error) {
			path, err := stringArg(args, "path")
			if err != nil {
				return "", err
			}
			text, err := stringArg(args, "content")
			if err != nil {
				return "", err
			}
			appendMode, err := optionalBoolArg(args, "append", false)
			if err != nil {
				return "", err
			}

			abs, err := fspath.Resolve(root, path)
			if err != nil {
				return "", err
			}
			if err := fspath.EnsureParentDir(abs); err != nil {
				return "", fmt.Errorf("creating parent directories for %s: %w", path, err)
			}

			if appendMode {
				if content.LooksBinary(abs) {
					return "", &tools.BinaryContentError{Path: path}
				}
				f, err := os.OpenFile(abs, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return "", fmt.Errorf("opening %s for append: %w", path, err)
				}
				defer f.Close()
				if _, err := f.WriteString(text); err != nil {
					return "", fmt.Errorf("appending to %s: %w", path, err)
				}
				return fmt.Sprintf("Appended %d bytes to %s", len(text), path), nil
			}

			if err := os.WriteFile(abs, []byte(text), 0o644); err != nil {
				return "", fmt.Errorf("writing %s: %w", path, err)
			}
			return fmt.Sprintf("Wrote %d bytes to %s", len(text), path), nil
		},
	}
}
