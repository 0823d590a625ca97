package provider

import (
	"sort"
	"strings"

	"github.com/agentfoundry/toolbench/internal/schema"
	"github.com/agentfoundry/toolbench/internal/tools"
)

// GeminiSchema is the OpenAPI-flavored schema subset the Gemini
// function-calling API accepts. Type names are upper-case and nullable
// is a flag rather than a type union.
type GeminiSchema struct {
	Type        string                   `json:"type"`
	Description string                   `json:"description,omitempty"`
	Format      string                   `json:"format,omitempty"`
	Nullable    bool                     `json:"nullable,omitempty"`
	Enum        []string                 `json:"enum,omitempty"`
	Properties  map[string]*GeminiSchema `json:"properties,omitempty"`
	Required    []string                 `json:"required,omitempty"`
	Items       *GeminiSchema            `json:"items,omitempty"`
}

// GeminiFunctionDeclaration is one entry in a Gemini tools block.
type GeminiFunctionDeclaration struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Parameters  *GeminiSchema `json:"parameters,omitempty"`
}

// GeminiTools converts descriptors to function declarations. Gemini has
// no strict mode, so schemas always go through the loose transformation
// regardless of what other providers were asked for.
func GeminiTools(descs []tools.Descriptor) []GeminiFunctionDeclaration {
	out := make([]GeminiFunctionDeclaration, 0, len(descs))
	for _, d := range descs {
		out = append(out, GeminiFunctionDeclaration{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  geminiSchema(schema.Loose(d.InputSchema)),
		})
	}
	return out
}

func geminiSchema(n *schema.Node) *GeminiSchema {
	if n == nil {
		return nil
	}
	g := &GeminiSchema{Description: n.Description}

	switch n.Kind {
	case schema.KindObject:
		g.Type = "OBJECT"
		g.Nullable = n.Nullable
		if len(n.Properties) > 0 {
			g.Properties = make(map[string]*GeminiSchema, len(n.Properties))
			for name, p := range n.Properties {
				g.Properties[name] = geminiSchema(p)
			}
		}
		if len(n.Required) > 0 {
			g.Required = append([]string(nil), n.Required...)
			sort.Strings(g.Required)
		}
	case schema.KindArray:
		g.Type = "ARRAY"
		g.Nullable = n.Nullable
		g.Items = geminiSchema(n.Items)
	case schema.KindUnion:
		// No union support; flatten to the first non-null variant and
		// record nullability from any null variant.
		for _, v := range n.Variants {
			if v.Kind == schema.KindPrimitive && v.Type == "null" {
				g.Nullable = true
			}
		}
		for _, v := range n.Variants {
			if v.Kind == schema.KindPrimitive && v.Type == "null" {
				continue
			}
			flat := geminiSchema(v)
			flat.Nullable = flat.Nullable || g.Nullable
			flat.Description = firstNonEmpty(g.Description, flat.Description)
			return flat
		}
		g.Type = "STRING"
	case schema.KindPrimitive:
		g.Type, g.Nullable = geminiPrimitiveType(n)
		g.Format = n.Format
		for _, e := range n.Enum {
			if s, ok := e.(string); ok {
				g.Enum = append(g.Enum, s)
			}
		}
	}
	return g
}

func geminiPrimitiveType(n *schema.Node) (string, bool) {
	t := n.Type
	nullable := false
	for _, candidate := range n.Types {
		if candidate == "null" {
			nullable = true
		} else {
			t = candidate
		}
	}
	switch t {
	case "integer":
		return "INTEGER", nullable
	case "number":
		return "NUMBER", nullable
	case "boolean":
		return "BOOLEAN", nullable
	case "null":
		return "STRING", true
	default:
		return strings.ToUpper(t), nullable
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
