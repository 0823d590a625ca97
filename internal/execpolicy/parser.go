package execpolicy

import (
	"fmt"
	"os"

	"go.starlark.net/starlark"
)

// ParsePolicy executes a Starlark policy source and collects the rules
// declared through the prefix_rule() builtin.
func ParsePolicy(filename, source string) (*Policy, error) {
	policy := NewPolicy()

	prefixRule := starlark.NewBuiltin("prefix_rule", func(
		thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple,
	) (starlark.Value, error) {
		var (
			patternVal    *starlark.List
			decisionStr   string
			justification string
		)
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs,
			"pattern", &patternVal,
			"decision?", &decisionStr,
			"justification?", &justification,
		); err != nil {
			return nil, err
		}

		if decisionStr == "" {
			decisionStr = "allow"
		}
		decision, err := ParseDecision(decisionStr)
		if err != nil {
			return nil, err
		}

		pattern, err := patternFromStarlark(patternVal)
		if err != nil {
			return nil, err
		}
		if len(pattern) == 0 {
			return nil, fmt.Errorf("prefix_rule pattern must not be empty")
		}

		policy.AddRule(&Rule{
			Pattern:       pattern,
			Decision:      decision,
			Justification: justification,
		})
		return starlark.None, nil
	})

	predeclared := starlark.StringDict{"prefix_rule": prefixRule}
	thread := &starlark.Thread{Name: filename}

	if _, err := starlark.ExecFile(thread, filename, source, predeclared); err != nil {
		return nil, fmt.Errorf("parse policy %s: %w", filename, err)
	}
	return policy, nil
}

// LoadPolicyFile reads and parses a Starlark policy file.
func LoadPolicyFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	return ParsePolicy(path, string(data))
}

// patternFromStarlark converts a Starlark list into pattern tokens: a
// string element is a literal, a list of strings is an alternative set.
func patternFromStarlark(list *starlark.List) ([]Token, error) {
	pattern := make([]Token, 0, list.Len())

	iter := list.Iterate()
	defer iter.Done()
	var val starlark.Value
	for iter.Next(&val) {
		switch v := val.(type) {
		case starlark.String:
			s := string(v)
			if s == "" {
				return nil, fmt.Errorf("pattern token must not be empty string")
			}
			pattern = append(pattern, Token{Literal: s})
		case *starlark.List:
			alts, err := stringsFromStarlark(v)
			if err != nil {
				return nil, fmt.Errorf("alternative list: %w", err)
			}
			if len(alts) == 0 {
				return nil, fmt.Errorf("alternative list must not be empty")
			}
			pattern = append(pattern, Token{Alts: alts})
		default:
			return nil, fmt.Errorf("pattern element must be string or list of strings, got %s", val.Type())
		}
	}
	return pattern, nil
}

func stringsFromStarlark(list *starlark.List) ([]string, error) {
	out := make([]string, 0, list.Len())
	iter := list.Iterate()
	defer iter.Done()
	var val starlark.Value
	for iter.Next(&val) {
		s, ok := val.(starlark.String)
		if !ok {
			return nil, fmt.Errorf("expected string, got %s", val.Type())
		}
		if string(s) == "" {
			return nil, fmt.Errorf("alternative must not be empty string")
		}
		out = append(out, string(s))
	}
	return out, nil
}
