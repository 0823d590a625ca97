package tools

import (
	"context"

	"github.com/agentfoundry/toolbench/internal/schema"
)

// Handler executes one tool call. The args map has already been
// validated against the descriptor's input schema by the dispatch layer;
// handlers may trust its shape. The returned string is the model-facing
// payload; a returned error must be one of the typed failures in this
// package (or fspath.ContainmentError).
type Handler func(ctx context.Context, args map[string]any) (string, error)

// Descriptor is the unit of capability exposed to the calling model:
// a unique name, a human/model-readable description, the declared input
// schema, and the handler. Descriptors are created once at workspace
// construction and are immutable afterwards.
type Descriptor struct {
	Name        string
	Description string
	InputSchema *schema.Node
	Handler     Handler
}
