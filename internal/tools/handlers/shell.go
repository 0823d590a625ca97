package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/agentfoundry/toolbench/internal/environ"
	"github.com/agentfoundry/toolbench/internal/execpolicy"
	"github.com/agentfoundry/toolbench/internal/schema"
	"github.com/agentfoundry/toolbench/internal/tools"
)

// shellResult is the JSON payload returned for every shell invocation,
// successful or not. A non-zero exit code is data, not an error: the
// model needs to see it alongside the streams to react. Error is set
// only when the process could not run at all (spawn failure, timeout).
type shellResult struct {
	ExitCode   int    `json:"exitCode"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	DurationMs int64  `json:"durationMs"`
	Error      string `json:"error,omitempty"`
}

// NewShellTool returns the shell descriptor. Commands run through
// `bash -c` in the workspace root with the session's persistent
// environment, so variables set by set_env or a prior `export` via
// set_env are visible to later calls. Commands are screened against the
// exec policy before running.
func NewShellTool(root string, env *environ.Map, timeout time.Duration, policy *execpolicy.Policy, log *logrus.Logger) tools.Descriptor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return tools.Descriptor{
		Name:        "shell",
		Description: "Run a shell command in the workspace root. Returns exit code, stdout and stderr as JSON; a non-zero exit code is reported in the result, not as a failure.",
		InputSchema: schema.Object(map[string]*schema.Node{
			"command":    schema.String("Command line to run via bash -c."),
			"timeout_ms": schema.Integer("Optional timeout override in milliseconds."),
		}, "command"),
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			command, err := stringArg(args, "command")
			if err != nil {
				return "", err
			}
			timeoutMs, err := optionalIntArg(args, "timeout_ms", 0)
			if err != nil {
				return "", err
			}
			effective := timeout
			if timeoutMs > 0 {
				effective = time.Duration(timeoutMs) * time.Millisecond
			}

			if policy != nil {
				eval := policy.CheckCommandLine(command)
				switch eval.Decision {
				case execpolicy.DecisionForbidden:
					return "", &tools.ExecPolicyError{Command: command, Justification: eval.Justification}
				case execpolicy.DecisionPrompt:
					if log != nil {
						log.WithFields(logrus.Fields{
							"command":       command,
							"justification": eval.Justification,
						}).Warn("command flagged by exec policy, proceeding")
					}
				}
			}

			runCtx, cancel := context.WithTimeout(ctx, effective)
			defer cancel()

			cmd := exec.CommandContext(runCtx, "bash", "-c", command)
			cmd.Dir = root
			cmd.Env = env.Environ()
			var stdout, stderr bytes.Buffer
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr

			start := time.Now()
			runErr := cmd.Run()
			elapsed := time.Since(start)

			outBytes, errBytes := splitOutputBudget(stdout.Bytes(), stderr.Bytes())
			result := shellResult{
				Stdout:     string(outBytes),
				Stderr:     string(errBytes),
				DurationMs: elapsed.Milliseconds(),
			}

			switch {
			case runErr == nil:
				result.ExitCode = 0
			default:
				if exitErr, ok := runErr.(*exec.ExitError); ok {
					result.ExitCode = exitErr.ExitCode()
					if runCtx.Err() == context.DeadlineExceeded {
						result.Error = fmt.Sprintf("command timed out after %s", effective)
					}
				} else {
					result.ExitCode = -1
					result.Error = runErr.Error()
				}
			}

			payload, err := json.Marshal(result)
			if err != nil {
				return "", fmt.Errorf("encoding shell result: %w", err)
			}
			return string(payload), nil
		},
	}
}
