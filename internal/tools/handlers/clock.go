package handlers

import (
	"context"
	"time"

	"github.com/agentfoundry/toolbench/internal/schema"
	"github.com/agentfoundry/toolbench/internal/tools"
)

// NewCurrentTimeTool returns the current_time descriptor.
func NewCurrentTimeTool() tools.Descriptor {
	return tools.Descriptor{
		Name:        "current_time",
		Description: "Get the current date and time, optionally in a specific IANA timezone.",
		InputSchema: schema.Object(map[string]*schema.Node{
			"timezone": schema.String("IANA timezone name such as America/New_York. Defaults to the host timezone."),
		}),
		Handler: func(_ context.Context, args map[string]any) (string, error) {
			tz, err := optionalStringArg(args, "timezone", "")
			if err != nil {
				return "", err
			}
			now := time.Now()
			if tz != "" {
				loc, err := time.LoadLocation(tz)
				if err != nil {
					return "", tools.NewValidationErrorf("unknown timezone %q", tz)
				}
				now = now.In(loc)
			}
			return now.Format("2006-01-02 15:04:05 MST"), nil
		},
	}
}
