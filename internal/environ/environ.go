// Package environ holds the mutable environment map shared across shell
// invocations for one workspace's lifetime.
//
// The map is session state owned by a single workspace and passed by
// reference to its shell-invoking handlers: a variable set by one call is
// visible to every later call. The workspace model assumes at most one
// in-flight tool call, so the map carries no locking; callers needing
// concurrent access must serialize externally.
package environ

import (
	"os"
	"sort"
	"strings"
)

// SeedPolicy controls how the host process environment is copied into a
// new Map. The zero value inherits everything with no filtering.
type SeedPolicy struct {
	// Inherit selects the starting set: "all" (default), "none", or
	// "core" (HOME/PATH/SHELL and friends only).
	Inherit string

	// Exclude removes variables whose names match any of these wildcard
	// patterns (* and ?, case-insensitive) after inheritance.
	Exclude []string

	// Set inserts explicit overrides after filtering.
	Set map[string]string
}

// coreVars are the platform-essential variables kept by Inherit "core".
var coreVars = map[string]bool{
	"HOME":     true,
	"LOGNAME":  true,
	"PATH":     true,
	"SHELL":    true,
	"USER":     true,
	"USERNAME": true,
	"TMPDIR":   true,
	"TEMP":     true,
	"TMP":      true,
}

// Map is the persistent environment for one workspace.
type Map struct {
	vars map[string]string
}

// New seeds a Map by copying the host process environment through the
// given policy. The copy is a snapshot, not a live view: later changes to
// the host environment are not reflected.
func New(policy SeedPolicy) *Map {
	host := make(map[string]string)
	for _, entry := range os.Environ() {
		if k, v, ok := strings.Cut(entry, "="); ok {
			host[k] = v
		}
	}
	return NewFrom(host, policy)
}

// NewFrom seeds a Map from an explicit variable set instead of the host
// environment. Used by tests and embedding callers.
func NewFrom(host map[string]string, policy SeedPolicy) *Map {
	vars := make(map[string]string)

	switch policy.Inherit {
	case "none":
		// start empty
	case "core":
		for k, v := range host {
			if coreVars[k] {
				vars[k] = v
			}
		}
	default: // "all"
		for k, v := range host {
			vars[k] = v
		}
	}

	if len(policy.Exclude) > 0 {
		for k := range vars {
			if matchesAny(k, policy.Exclude) {
				delete(vars, k)
			}
		}
	}

	for k, v := range policy.Set {
		vars[k] = v
	}

	return &Map{vars: vars}
}

// Set stores a variable. It becomes visible to every subsequent shell
// invocation in the owning workspace.
func (m *Map) Set(name, value string) {
	m.vars[name] = value
}

// Lookup returns the value for name and whether it is present.
func (m *Map) Lookup(name string) (string, bool) {
	v, ok := m.vars[name]
	return v, ok
}

// Len returns the number of variables.
func (m *Map) Len() int {
	return len(m.vars)
}

// Environ renders the current map as sorted "KEY=VALUE" strings for
// exec.Cmd.Env.
func (m *Map) Environ() []string {
	out := make([]string, 0, len(m.vars))
	for k, v := range m.vars {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// matchesAny reports whether name matches any wildcard pattern,
// case-insensitively.
func matchesAny(name string, patterns []string) bool {
	lower := strings.ToLower(name)
	for _, p := range patterns {
		if wildcardMatch(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// wildcardMatch matches s against pattern where * matches any run of
// characters and ? matches exactly one.
func wildcardMatch(s, pattern string) bool {
	return wildcardMatchAt(s, pattern, 0, 0)
}

func wildcardMatchAt(s, pattern string, si, pi int) bool {
	for pi < len(pattern) {
		if si >= len(s) {
			for pi < len(pattern) {
				if pattern[pi] != '*' {
					return false
				}
				pi++
			}
			return true
		}
		switch pattern[pi] {
		case '*':
			for pi < len(pattern) && pattern[pi] == '*' {
				pi++
			}
			if pi == len(pattern) {
				return true
			}
			for si <= len(s) {
				if wildcardMatchAt(s, pattern, si, pi) {
					return true
				}
				si++
			}
			return false
		case '?':
			si++
			pi++
		default:
			if s[si] != pattern[pi] {
				return false
			}
			si++
			pi++
		}
	}
	return si == len(s)
}
