package tools

import (
	"fmt"

	"github.com/agentfoundry/toolbench/internal/schema"
)

// ValidateArgs checks args against a declared input schema before
// dispatch. Dispatch validates so handlers can trust argument shape; the
// check covers required keys, unknown keys, and primitive type mismatch.
// It validates against the declared (loose) schema, so optional keys may
// simply be absent; an explicit null for an optional key also passes,
// matching the strict dialect's null sentinel.
func ValidateArgs(node *schema.Node, args map[string]any) error {
	if node == nil {
		return nil
	}
	return validateNode("", node, args)
}

func validateNode(path string, node *schema.Node, value any) error {
	if node == nil || value == nil {
		return nil
	}
	switch node.Kind {
	case schema.KindObject:
		obj, ok := value.(map[string]any)
		if !ok {
			return NewValidationErrorf("%s: expected object", label(path))
		}
		for _, name := range node.Required {
			if _, present := obj[name]; !present {
				return NewValidationErrorf("missing required argument: %s", join(path, name))
			}
		}
		if node.Properties == nil {
			// Free-form object: the schema constrains the shape, not the
			// keys. Used by tools that take caller-chosen maps.
			return nil
		}
		for name, v := range obj {
			prop, declared := node.Properties[name]
			if !declared {
				return NewValidationErrorf("unknown argument: %s", join(path, name))
			}
			if err := validateNode(join(path, name), prop, v); err != nil {
				return err
			}
		}
	case schema.KindArray:
		list, ok := value.([]any)
		if !ok {
			return NewValidationErrorf("%s: expected array", label(path))
		}
		for i, v := range list {
			if err := validateNode(fmt.Sprintf("%s[%d]", label(path), i), node.Items, v); err != nil {
				return err
			}
		}
	case schema.KindUnion:
		for _, variant := range node.Variants {
			if validateNode(path, variant, value) == nil {
				return nil
			}
		}
		return NewValidationErrorf("%s: no union variant matched", label(path))
	case schema.KindPrimitive:
		return validatePrimitive(path, node, value)
	}
	return nil
}

func validatePrimitive(path string, node *schema.Node, value any) error {
	types := node.Types
	if len(types) == 0 && node.Type != "" {
		types = []string{node.Type}
	}
	if len(types) == 0 {
		return nil
	}
	for _, t := range types {
		if primitiveMatches(t, value) {
			return nil
		}
	}
	return NewValidationErrorf("%s: expected %v", label(path), types)
}

func primitiveMatches(t string, value any) bool {
	switch t {
	case "string":
		_, ok := value.(string)
		return ok
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "number":
		switch value.(type) {
		case float64, int, int64:
			return true
		}
		return false
	case "integer":
		switch v := value.(type) {
		case int, int64:
			return true
		case float64:
			return v == float64(int64(v))
		}
		return false
	case "null":
		return value == nil
	}
	return false
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func label(path string) string {
	if path == "" {
		return "arguments"
	}
	return path
}
