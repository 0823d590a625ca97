package handlers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentfoundry/toolbench/internal/environ"
	"github.com/agentfoundry/toolbench/internal/execpolicy"
	"github.com/agentfoundry/toolbench/internal/tools"
)

func testShell(t *testing.T, policy *execpolicy.Policy) (tools.Descriptor, *environ.Map, string) {
	t.Helper()
	root := t.TempDir()
	env := environ.NewFrom(map[string]string{"PATH": "/usr/bin:/bin"}, environ.SeedPolicy{})
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewShellTool(root, env, 10*time.Second, policy, log), env, root
}

func runShell(t *testing.T, tool tools.Descriptor, command string) shellResult {
	t.Helper()
	out, err := tool.Handler(context.Background(), map[string]any{"command": command})
	require.NoError(t, err)
	var result shellResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	return result
}

func TestShellTool_Basic(t *testing.T) {
	tool, _, _ := testShell(t, nil)

	result := runShell(t, tool, "echo hello")
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "hello\n", result.Stdout)
	assert.Empty(t, result.Error)
}

func TestShellTool_NonZeroExitIsData(t *testing.T) {
	tool, _, _ := testShell(t, nil)

	result := runShell(t, tool, "exit 3")
	assert.Equal(t, 3, result.ExitCode)
	assert.Empty(t, result.Error)
}

func TestShellTool_CapturesStderr(t *testing.T) {
	tool, _, _ := testShell(t, nil)

	result := runShell(t, tool, "echo oops >&2")
	assert.Equal(t, "oops\n", result.Stderr)
	assert.Empty(t, result.Stdout)
}

func TestShellTool_RunsInWorkspaceRoot(t *testing.T) {
	tool, _, root := testShell(t, nil)

	result := runShell(t, tool, "pwd")
	assert.Contains(t, result.Stdout, root)
}

func TestShellTool_SeesSessionEnvironment(t *testing.T) {
	tool, env, _ := testShell(t, nil)
	env.Set("BUILD_TAG", "v42")

	result := runShell(t, tool, "echo $BUILD_TAG")
	assert.Equal(t, "v42\n", result.Stdout)
}

func TestShellTool_Timeout(t *testing.T) {
	root := t.TempDir()
	env := environ.NewFrom(map[string]string{"PATH": "/usr/bin:/bin"}, environ.SeedPolicy{})
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	tool := NewShellTool(root, env, 100*time.Millisecond, nil, log)

	out, err := tool.Handler(context.Background(), map[string]any{"command": "sleep 5"})
	require.NoError(t, err)
	var result shellResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.NotEmpty(t, result.Error)
}

func TestShellTool_PolicyForbidden(t *testing.T) {
	policy := execpolicy.NewPolicy()
	policy.AddRule(&execpolicy.Rule{
		Pattern:       []execpolicy.Token{{Literal: "rm"}, {Literal: "-rf"}},
		Decision:      execpolicy.DecisionForbidden,
		Justification: "recursive delete",
	})
	tool, _, _ := testShell(t, policy)

	_, err := tool.Handler(context.Background(), map[string]any{"command": "rm -rf /"})
	require.Error(t, err)
	assert.True(t, tools.IsExecPolicy(err))
	assert.Contains(t, err.Error(), "recursive delete")
}

func TestShellTool_PolicyForbiddenInCompound(t *testing.T) {
	policy := execpolicy.NewPolicy()
	policy.AddRule(&execpolicy.Rule{
		Pattern:  []execpolicy.Token{{Literal: "shutdown"}},
		Decision: execpolicy.DecisionForbidden,
	})
	tool, _, _ := testShell(t, policy)

	_, err := tool.Handler(context.Background(), map[string]any{"command": "echo hi && shutdown -h now"})
	require.Error(t, err)
	assert.True(t, tools.IsExecPolicy(err))
}

func TestShellTool_PolicyPromptProceeds(t *testing.T) {
	policy := execpolicy.NewPolicy()
	policy.AddRule(&execpolicy.Rule{
		Pattern:  []execpolicy.Token{{Literal: "echo"}},
		Decision: execpolicy.DecisionPrompt,
	})
	tool, _, _ := testShell(t, policy)

	result := runShell(t, tool, "echo still runs")
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "still runs\n", result.Stdout)
}

func TestShellTool_TimeoutOverride(t *testing.T) {
	tool, _, _ := testShell(t, nil)

	out, err := tool.Handler(context.Background(), map[string]any{
		"command":    "sleep 5",
		"timeout_ms": float64(100),
	})
	require.NoError(t, err)
	var result shellResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.NotEmpty(t, result.Error)
}
