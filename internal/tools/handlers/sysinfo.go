package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/agentfoundry/toolbench/internal/schema"
	"github.com/agentfoundry/toolbench/internal/tools"
)

// NewSystemInfoTool returns the system_info descriptor.
func NewSystemInfoTool() tools.Descriptor {
	return tools.Descriptor{
		Name:        "system_info",
		Description: "Report the host operating system, architecture, CPU count and hostname.",
		InputSchema: schema.Object(map[string]*schema.Node{}),
		Handler: func(_ context.Context, _ map[string]any) (string, error) {
			hostname, err := os.Hostname()
			if err != nil {
				hostname = "unknown"
			}
			payload, err := json.Marshal(map[string]any{
				"os":       runtime.GOOS,
				"arch":     runtime.GOARCH,
				"cpus":     runtime.NumCPU(),
				"hostname": hostname,
			})
			if err != nil {
				return "", fmt.Errorf("encoding system info: %w", err)
			}
			return string(payload), nil
		},
	}
}
