// Package provider renders tool descriptors into the wire shapes the
// supported model APIs expect. Each adapter is a pure transformation of
// descriptors; dispatching results back through a workspace is the
// caller's business.
package provider

import (
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"

	"github.com/agentfoundry/toolbench/internal/schema"
	"github.com/agentfoundry/toolbench/internal/tools"
)

// OpenAITools converts descriptors to Chat Completions function tools.
// With strict set, each schema goes through the strict transformation
// and the function is flagged strict so the API enforces it.
func OpenAITools(descs []tools.Descriptor, strict bool) []openai.ChatCompletionToolUnionParam {
	out := make([]openai.ChatCompletionToolUnionParam, 0, len(descs))
	for _, d := range descs {
		var params map[string]any
		if strict {
			params = schema.Strict(d.InputSchema).JSON()
		} else {
			params = schema.Loose(d.InputSchema).JSON()
		}
		fn := shared.FunctionDefinitionParam{
			Name:       d.Name,
			Parameters: params,
			Strict:     openai.Bool(strict),
		}
		if d.Description != "" {
			fn.Description = openai.String(d.Description)
		}
		out = append(out, openai.ChatCompletionToolUnionParam{
			OfFunction: &openai.ChatCompletionFunctionToolParam{
				Function: fn,
			},
		})
	}
	return out
}
