// Package handlers contains the bundled tool implementations. Each
// constructor returns a tools.Descriptor whose handler closes over
// exactly one capability: the workspace root (file tools), the
// persistent environment (shell tools), or the host allow-list (network
// tools).
package handlers

import (
	"github.com/agentfoundry/toolbench/internal/tools"
)

// Argument extraction helpers. Dispatch has already validated shape
// against the declared schema; these guard against the residual dynamic
// typing of decoded JSON (numbers arrive as float64).

func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", tools.NewValidationErrorf("missing required argument: %s", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", tools.NewValidationErrorf("%s must be a string", name)
	}
	return s, nil
}

func optionalStringArg(args map[string]any, name, fallback string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return fallback, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", tools.NewValidationErrorf("%s must be a string", name)
	}
	return s, nil
}

func optionalIntArg(args map[string]any, name string, fallback int) (int, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return fallback, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, tools.NewValidationErrorf("%s must be a number", name)
	}
}

func optionalBoolArg(args map[string]any, name string, fallback bool) (bool, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return fallback, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, tools.NewValidationErrorf("%s must be a boolean", name)
	}
	return b, nil
}
