// Package schema models tool input schemas as a closed tree of typed
// nodes and rewrites them into the strict JSON-Schema dialect that
// provider structured tool calling requires.
//
// A Node is one of four kinds: object, array, union, or primitive. The
// closed representation lets the strict transform switch exhaustively on
// Kind instead of probing map shapes at runtime.
package schema

import "sort"

// Kind selects which variant of Node is in use.
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindUnion
	KindPrimitive
)

// Node is a single node of a structural input schema. Only the fields
// belonging to its Kind are meaningful; the shared annotation fields
// (Description, Enum, Default and the soft validation keywords) may
// appear on any kind.
type Node struct {
	Kind Kind

	// Primitive. Type holds a single base type ("string", "integer",
	// "number", "boolean", "null"); Types holds a multi-type list and
	// takes precedence over Type when non-empty.
	Type  string
	Types []string

	// Object.
	Properties map[string]*Node
	Required   []string
	// AdditionalProperties, when set, is emitted verbatim. The strict
	// transform forces it to false; the loose transform removes it.
	AdditionalProperties *bool

	// Array.
	Items *Node

	// Union.
	Variants []*Node

	// Nullable widens an object or array node to also accept null.
	// Primitives are widened through Types instead.
	Nullable bool

	// Shared annotations.
	Description string
	Enum        []any
	Default     any

	// Soft validation keywords. Honored by permissive dialects only;
	// the strict transform strips all of them.
	Format      string
	Pattern     string
	MinLength   *int
	MaxLength   *int
	MinItems    *int
	MaxItems    *int
	UniqueItems bool

	// Top-level-only artifacts carried by declared schemas. Both
	// transforms strip them before walking.
	MetaSchema  string
	Definitions map[string]*Node
}

// Object returns an object node with the given properties. Names listed
// in required must exist in properties.
func Object(properties map[string]*Node, required ...string) *Node {
	return &Node{Kind: KindObject, Properties: properties, Required: required}
}

// Array returns an array node whose elements match items.
func Array(items *Node) *Node {
	return &Node{Kind: KindArray, Items: items}
}

// Union returns a node matching any of the given variants.
func Union(variants ...*Node) *Node {
	return &Node{Kind: KindUnion, Variants: variants}
}

// String returns a string primitive with a description.
func String(description string) *Node {
	return &Node{Kind: KindPrimitive, Type: "string", Description: description}
}

// Integer returns an integer primitive with a description.
func Integer(description string) *Node {
	return &Node{Kind: KindPrimitive, Type: "integer", Description: description}
}

// Number returns a number primitive with a description.
func Number(description string) *Node {
	return &Node{Kind: KindPrimitive, Type: "number", Description: description}
}

// Boolean returns a boolean primitive with a description.
func Boolean(description string) *Node {
	return &Node{Kind: KindPrimitive, Type: "boolean", Description: description}
}

// Null returns the null primitive.
func Null() *Node {
	return &Node{Kind: KindPrimitive, Type: "null"}
}

// WithDescription returns n with its description set. The receiver is
// modified and returned for construction chaining.
func (n *Node) WithDescription(d string) *Node {
	n.Description = d
	return n
}

// WithEnum constrains a primitive to the given values.
func (n *Node) WithEnum(values ...any) *Node {
	n.Enum = values
	return n
}

// Clone returns a deep copy of the node tree. The transforms operate on
// clones so declared schemas stay usable for non-strict callers.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Types != nil {
		c.Types = append([]string(nil), n.Types...)
	}
	if n.Required != nil {
		c.Required = append([]string(nil), n.Required...)
	}
	if n.Enum != nil {
		c.Enum = append([]any(nil), n.Enum...)
	}
	if n.AdditionalProperties != nil {
		v := *n.AdditionalProperties
		c.AdditionalProperties = &v
	}
	c.MinLength = cloneIntPtr(n.MinLength)
	c.MaxLength = cloneIntPtr(n.MaxLength)
	c.MinItems = cloneIntPtr(n.MinItems)
	c.MaxItems = cloneIntPtr(n.MaxItems)
	if n.Properties != nil {
		c.Properties = make(map[string]*Node, len(n.Properties))
		for name, p := range n.Properties {
			c.Properties[name] = p.Clone()
		}
	}
	c.Items = n.Items.Clone()
	if n.Variants != nil {
		c.Variants = make([]*Node, len(n.Variants))
		for i, v := range n.Variants {
			c.Variants[i] = v.Clone()
		}
	}
	if n.Definitions != nil {
		c.Definitions = make(map[string]*Node, len(n.Definitions))
		for name, d := range n.Definitions {
			c.Definitions[name] = d.Clone()
		}
	}
	return &c
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// JSON renders the node as a JSON-Schema fragment suitable for provider
// wire formats (a map ready for json.Marshal).
func (n *Node) JSON() map[string]any {
	if n == nil {
		return nil
	}
	out := map[string]any{}

	switch n.Kind {
	case KindObject:
		out["type"] = typeValue("object", n.Nullable)
		props := map[string]any{}
		for name, p := range n.Properties {
			props[name] = p.JSON()
		}
		out["properties"] = props
		if n.Required != nil {
			req := append([]string(nil), n.Required...)
			sort.Strings(req)
			out["required"] = req
		}
		if n.AdditionalProperties != nil {
			out["additionalProperties"] = *n.AdditionalProperties
		}
	case KindArray:
		out["type"] = typeValue("array", n.Nullable)
		if n.Items != nil {
			out["items"] = n.Items.JSON()
		}
		if n.MinItems != nil {
			out["minItems"] = *n.MinItems
		}
		if n.MaxItems != nil {
			out["maxItems"] = *n.MaxItems
		}
		if n.UniqueItems {
			out["uniqueItems"] = true
		}
	case KindUnion:
		variants := make([]any, len(n.Variants))
		for i, v := range n.Variants {
			variants[i] = v.JSON()
		}
		out["anyOf"] = variants
	case KindPrimitive:
		switch {
		case len(n.Types) > 0:
			out["type"] = anySlice(n.Types)
		case n.Type != "":
			out["type"] = n.Type
		}
		if n.Format != "" {
			out["format"] = n.Format
		}
		if n.Pattern != "" {
			out["pattern"] = n.Pattern
		}
		if n.MinLength != nil {
			out["minLength"] = *n.MinLength
		}
		if n.MaxLength != nil {
			out["maxLength"] = *n.MaxLength
		}
	}

	if n.Description != "" {
		out["description"] = n.Description
	}
	if n.Enum != nil {
		out["enum"] = append([]any(nil), n.Enum...)
	}
	if n.Default != nil {
		out["default"] = n.Default
	}
	if n.MetaSchema != "" {
		out["$schema"] = n.MetaSchema
	}
	if n.Definitions != nil {
		defs := map[string]any{}
		for name, d := range n.Definitions {
			defs[name] = d.JSON()
		}
		out["definitions"] = defs
	}
	return out
}

func typeValue(base string, nullable bool) any {
	if nullable {
		return []any{base, "null"}
	}
	return base
}

func anySlice(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
