package provider

import (
	"github.com/anthropics/anthropic-sdk-go"

	"github.com/agentfoundry/toolbench/internal/schema"
	"github.com/agentfoundry/toolbench/internal/tools"
)

// AnthropicTools converts descriptors to Messages API tool definitions.
// The input_schema wire shape carries properties and required at the
// top level; strict mode additionally closes the object with
// additionalProperties false.
func AnthropicTools(descs []tools.Descriptor, strict bool) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(descs))
	for _, d := range descs {
		var rendered map[string]any
		if strict {
			rendered = schema.Strict(d.InputSchema).JSON()
		} else {
			rendered = schema.Loose(d.InputSchema).JSON()
		}

		inputSchema := anthropic.ToolInputSchemaParam{}
		if props, ok := rendered["properties"].(map[string]any); ok {
			inputSchema.Properties = props
		}
		if req, ok := rendered["required"].([]string); ok && len(req) > 0 {
			inputSchema.Required = req
		}
		if strict {
			inputSchema.SetExtraFields(map[string]any{
				"additionalProperties": false,
			})
		}

		out = append(out, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        d.Name,
				Description: anthropic.String(d.Description),
				InputSchema: inputSchema,
			},
		})
	}
	return out
}
