package schema

import "sort"

// Strict rewrites a declared schema into the dialect required by
// provider strict tool calling: every object node lists all of its
// properties in required, forbids extra keys, and drops soft validation
// keywords the strict dialect rejects. Properties that were optional in
// the declaration are widened to also accept null so callers can still
// express "absent".
//
// The transform is copy-on-write: the input tree is never modified.
// Strict is idempotent: a second application is a no-op.
func Strict(n *Node) *Node {
	if n == nil {
		return nil
	}
	c := n.Clone()
	stripTopLevel(c)

	// Pass 1: drop soft keywords everywhere, remembering each object
	// node's declared required set before pass 2 overwrites it.
	declared := map[*Node]map[string]bool{}
	stripSoft(c, declared)

	// Pass 2: widen optionals and require everything.
	widen(c, declared)
	return c
}

// Loose rewrites a declared schema for dialects that do their own
// validation: only the top-level meta-schema artifacts and
// additionalProperties markers are removed. Native optionality and soft
// keywords survive.
func Loose(n *Node) *Node {
	if n == nil {
		return nil
	}
	c := n.Clone()
	c.MetaSchema = ""
	stripAdditional(c)
	return c
}

// stripTopLevel removes artifacts that only ever appear on a declared
// schema's root and mean nothing inside a tool-call parameter schema.
func stripTopLevel(n *Node) {
	n.MetaSchema = ""
	n.Definitions = nil
	n.Default = nil
}

// stripSoft removes keywords strict dialects reject, depth-first, and
// records each object node's declared required set.
func stripSoft(n *Node, declared map[*Node]map[string]bool) {
	if n == nil {
		return
	}
	n.Format = ""
	n.Pattern = ""
	n.MinLength = nil
	n.MaxLength = nil
	n.MinItems = nil
	n.MaxItems = nil
	n.UniqueItems = false
	n.Default = nil

	switch n.Kind {
	case KindObject:
		set := make(map[string]bool, len(n.Required))
		for _, name := range n.Required {
			set[name] = true
		}
		declared[n] = set
		for _, p := range n.Properties {
			stripSoft(p, declared)
		}
	case KindArray:
		stripSoft(n.Items, declared)
	case KindUnion:
		for _, v := range n.Variants {
			stripSoft(v, declared)
		}
	}
}

// widen makes every object property required, widening the type of each
// previously-optional property to admit null, and closes the object with
// additionalProperties:false. Recursion covers nested optionality at any
// depth, including inside just-widened properties.
func widen(n *Node, declared map[*Node]map[string]bool) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindObject:
		wasRequired := declared[n]
		names := make([]string, 0, len(n.Properties))
		for name := range n.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		n.Required = names

		f := false
		n.AdditionalProperties = &f

		for _, name := range names {
			p := n.Properties[name]
			if !wasRequired[name] {
				admitNull(p)
			}
			widen(p, declared)
		}
	case KindArray:
		widen(n.Items, declared)
	case KindUnion:
		for _, v := range n.Variants {
			widen(v, declared)
		}
	}
}

// admitNull widens a node's accepted types to include null: a
// single-type primitive becomes a two-type list, a type list gains null
// if absent, a union gains a null variant, and object/array nodes are
// marked nullable.
func admitNull(n *Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindPrimitive:
		switch {
		case len(n.Types) > 0:
			for _, t := range n.Types {
				if t == "null" {
					return
				}
			}
			n.Types = append(n.Types, "null")
		case n.Type == "null":
			// already null-typed
		case n.Type != "":
			n.Types = []string{n.Type, "null"}
			n.Type = ""
		}
	case KindUnion:
		for _, v := range n.Variants {
			if v.Kind == KindPrimitive && (v.Type == "null" || containsNull(v.Types)) {
				return
			}
		}
		n.Variants = append(n.Variants, Null())
	case KindObject, KindArray:
		n.Nullable = true
	}
}

func containsNull(types []string) bool {
	for _, t := range types {
		if t == "null" {
			return true
		}
	}
	return false
}

// stripAdditional clears additionalProperties on every object node.
func stripAdditional(n *Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindObject:
		n.AdditionalProperties = nil
		for _, p := range n.Properties {
			stripAdditional(p)
		}
	case KindArray:
		stripAdditional(n.Items)
	case KindUnion:
		for _, v := range n.Variants {
			stripAdditional(v)
		}
	}
}
