package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/agentfoundry/toolbench/internal/schema"
	"github.com/agentfoundry/toolbench/internal/tools"
)

// pingResult mirrors shellResult: reachability is data, not an error.
type pingResult struct {
	Host       string `json:"host"`
	Reachable  bool   `json:"reachable"`
	Output     string `json:"output"`
	DurationMs int64  `json:"durationMs"`
}

// NewPingTool returns the ping descriptor. The host is checked against
// the allow-list before any packet is sent.
func NewPingTool(allowed HostAllowList) tools.Descriptor {
	return tools.Descriptor{
		Name:        "ping",
		Description: "Check whether a host responds to ICMP ping. The host must be on the configured allow-list.",
		InputSchema: schema.Object(map[string]*schema.Node{
			"host":  schema.String("Hostname or IP address to ping."),
			"count": schema.Integer("Number of probes to send, 1-5. Defaults to 3."),
		}, "host"),
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			host, err := stringArg(args, "host")
			if err != nil {
				return "", err
			}
			if host == "" {
				return "", tools.NewValidationErrorf("host must not be empty")
			}
			count, err := optionalIntArg(args, "count", 3)
			if err != nil {
				return "", err
			}
			if count < 1 || count > 5 {
				return "", tools.NewValidationErrorf("count must be between 1 and 5")
			}
			if !allowed.Allows(host) {
				return "", &tools.NetworkPolicyError{Host: host}
			}

			runCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			defer cancel()

			cmd := exec.CommandContext(runCtx, "ping", "-c", fmt.Sprint(count), host)
			var out bytes.Buffer
			cmd.Stdout = &out
			cmd.Stderr = &out

			start := time.Now()
			runErr := cmd.Run()
			elapsed := time.Since(start)

			if runErr != nil {
				var exitErr *exec.ExitError
				if !errors.As(runErr, &exitErr) {
					return "", &tools.SpawnError{Cause: runErr}
				}
			}

			capped, _ := limitOutput(out.Bytes())
			payload, err := json.Marshal(pingResult{
				Host:       host,
				Reachable:  runErr == nil,
				Output:     string(capped),
				DurationMs: elapsed.Milliseconds(),
			})
			if err != nil {
				return "", fmt.Errorf("encoding ping result: %w", err)
			}
			return string(payload), nil
		},
	}
}
