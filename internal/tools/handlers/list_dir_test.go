package handlers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentfoundry/toolbench/internal/fspath"
	"github.com/agentfoundry/toolbench/internal/tools"
)

func TestListDirTool_SortedWithDirSuffix(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))
	writeTestFile(t, root, "b.txt", "")
	writeTestFile(t, root, "a.txt", "")
	tool := NewListDirTool(root)

	out, err := tool.Handler(context.Background(), map[string]any{"path": "."})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	// header plus three entries, sorted
	require.Len(t, lines, 4)
	assert.Equal(t, "a.txt", lines[1])
	assert.Equal(t, "b.txt", lines[2])
	assert.Equal(t, "sub/", lines[3])
}

func TestListDirTool_DefaultsToRoot(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "only.txt", "")
	tool := NewListDirTool(root)

	out, err := tool.Handler(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Contains(t, out, "only.txt")
}

func TestListDirTool_Empty(t *testing.T) {
	tool := NewListDirTool(t.TempDir())

	out, err := tool.Handler(context.Background(), map[string]any{"path": "."})
	require.NoError(t, err)
	assert.Contains(t, out, "empty")
}

func TestListDirTool_NotADirectory(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "file.txt", "x")
	tool := NewListDirTool(root)

	_, err := tool.Handler(context.Background(), map[string]any{"path": "file.txt"})
	require.Error(t, err)
	assert.True(t, tools.IsValidation(err))
}

func TestListDirTool_NotFound(t *testing.T) {
	tool := NewListDirTool(t.TempDir())

	_, err := tool.Handler(context.Background(), map[string]any{"path": "missing"})
	require.Error(t, err)
	assert.True(t, tools.IsNotFound(err))
}

func TestListDirTool_Depth(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "top.txt", "")
	writeTestFile(t, root, "sub/inner.txt", "")
	writeTestFile(t, root, "sub/deep/leaf.txt", "")
	tool := NewListDirTool(root)

	out, err := tool.Handler(context.Background(), map[string]any{
		"path":  ".",
		"depth": float64(2),
	})
	require.NoError(t, err)
	assert.Contains(t, out, "sub/inner.txt")
	assert.Contains(t, out, "sub/deep/")
	assert.NotContains(t, out, "leaf.txt")
}

func TestListDirTool_DepthBounds(t *testing.T) {
	tool := NewListDirTool(t.TempDir())

	_, err := tool.Handler(context.Background(), map[string]any{
		"depth": float64(0),
	})
	require.Error(t, err)
	assert.True(t, tools.IsValidation(err))
}

func TestListDirTool_EscapeRejected(t *testing.T) {
	tool := NewListDirTool(t.TempDir())

	_, err := tool.Handler(context.Background(), map[string]any{"path": ".."})
	require.Error(t, err)
	assert.True(t, fspath.IsContainmentError(err))
}
