package handlers

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/agentfoundry/toolbench/internal/content"
	"github.com/agentfoundry/toolbench/internal/fspath"
	"github.com/agentfoundry/toolbench/internal/schema"
	"github.com/agentfoundry/toolbench/internal/tools"
)

const maxLineLength = 2000

// NewReadFileTool returns the read_file descriptor. The handler closes
// over the workspace root and resolves every path through containment.
func NewReadFileTool(root string) tools.Descriptor {
	return tools.Descriptor{
		Name:        "read_file",
		Description: "Read the contents of a text file inside the workspace. Returns the content with line numbers.",
		InputSchema: schema.Object(map[string]*schema.Node{
			"path":   schema.String("Path to the file, relative to the workspace root."),
			"offset": schema.Integer("Starting line number (0-indexed, optional)."),
			"limit":  schema.Integer("Maximum number of lines to read (optional)."),
		}, "path"),
		Handler: func(_ context.Context, args map[string]any) (string, error) {
			path, err := stringArg(args, "path")
			if err != nil {
				return "", err
			}
			offset, err := optionalIntArg(args, "offset", 0)
			if err != nil {
				return "", err
			}
			limit, err := optionalIntArg(args, "limit", -1)
			if err != nil {
				return "", err
			}

			abs, err := fspath.Resolve(root, path)
			if err != nil {
				return "", err
			}
			if _, err := os.Stat(abs); err != nil {
				return "", &tools.NotFoundError{Path: path}
			}
			if content.LooksBinary(abs) {
				return "", &tools.BinaryContentError{Path: path}
			}

			f, err := os.Open(abs)
			if err != nil {
				return "", &tools.NotFoundError{Path: path}
			}
			defer f.Close()

			var b strings.Builder
			scanner := bufio.NewScanner(f)
			scanner.Buffer(make([]byte, 64*1024), 1024*1024)
			lineNum := 0
			linesRead := 0

			for lineNum < offset && scanner.Scan() {
				lineNum++
			}
			for scanner.Scan() {
				if limit > 0 && linesRead >= limit {
					break
				}
				line := scanner.Text()
				if len(line) > maxLineLength {
					line = line[:maxLineLength] + "... (truncated)"
				}
				fmt.Fprintf(&b, "%6d\t%s\n", lineNum+1, line)
				lineNum++
				linesRead++
			}
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("reading %s: %w", path, err)
			}

			out := b.String()
			if out == "" {
				if offset > 0 {
					out = fmt.Sprintf("(file has fewer than %d lines)", offset)
				} else {
					out = "(empty file)"
				}
			}
			return fmt.Sprintf("File: %s\n%s", path, out), nil
		},
	}
}
