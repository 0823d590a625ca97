package handlers

import (
	"context"
	"fmt"

	"github.com/agentfoundry/toolbench/internal/environ"
	"github.com/agentfoundry/toolbench/internal/schema"
	"github.com/agentfoundry/toolbench/internal/tools"
)

// NewSetEnvTool returns the set_env descriptor. Values persist in the
// session environment and are visible to every later shell call.
func NewSetEnvTool(env *environ.Map) tools.Descriptor {
	return tools.Descriptor{
		Name:        "set_env",
		Description: "Set an environment variable for subsequent shell commands in this session.",
		InputSchema: schema.Object(map[string]*schema.Node{
			"name":  schema.String("Variable name."),
			"value": schema.String("Variable value."),
		}, "name", "value"),
		Handler: func(_ context.Context, args map[string]any) (string, error) {
			name, err := stringArg(args, "name")
			if err != nil {
				return "", err
			}
			if name == "" {
				return "", tools.NewValidationErrorf("name must not be empty")
			}
			value, err := stringArg(args, "value")
			if err != nil {
				return "", err
			}
			env.Set(name, value)
			return fmt.Sprintf("Set %s", name), nil
		},
	}
}

// NewGetEnvTool returns the get_env descriptor.
func NewGetEnvTool(env *environ.Map) tools.Descriptor {
	return tools.Descriptor{
		Name:        "get_env",
		Description: "Read an environment variable from the session environment.",
		InputSchema: schema.Object(map[string]*schema.Node{
			"name": schema.String("Variable name."),
		}, "name"),
		Handler: func(_ context.Context, args map[string]any) (string, error) {
			name, err := stringArg(args, "name")
			if err != nil {
				return "", err
			}
			value, ok := env.Lookup(name)
			if !ok {
				return fmt.Sprintf("%s is not set", name), nil
			}
			return value, nil
		},
	}
}
