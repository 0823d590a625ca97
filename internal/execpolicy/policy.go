// Package execpolicy evaluates shell commands against a Starlark-defined
// policy before the shell tool spawns them.
//
// A policy file is a Starlark script calling the prefix_rule() builtin:
//
//	prefix_rule(pattern=["git", ["push", "fetch"]], decision="forbidden",
//	            justification="no remote operations")
//
// Each pattern token is either a literal string or a list of
// alternatives; a rule matches when its pattern is a prefix of the
// command's argv. When several rules match, the most restrictive
// decision wins.
package execpolicy

import (
	"fmt"
	"strings"
)

// Decision is the outcome of evaluating a command. Decisions are
// ordered: Allow < Prompt < Forbidden; aggregation takes the maximum.
type Decision int

const (
	// DecisionAllow permits the command.
	DecisionAllow Decision = iota
	// DecisionPrompt flags the command as needing caller attention.
	DecisionPrompt
	// DecisionForbidden blocks the command from executing.
	DecisionForbidden
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionPrompt:
		return "prompt"
	case DecisionForbidden:
		return "forbidden"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// ParseDecision parses "allow", "prompt", or "forbidden",
// case-insensitively.
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(s) {
	case "allow":
		return DecisionAllow, nil
	case "prompt":
		return DecisionPrompt, nil
	case "forbidden":
		return DecisionForbidden, nil
	default:
		return DecisionAllow, fmt.Errorf("invalid decision %q: must be allow, prompt, or forbidden", s)
	}
}

// Token is one element of a prefix pattern: a literal or a set of
// alternatives.
type Token struct {
	Literal string
	Alts    []string
}

func (t Token) matches(word string) bool {
	if len(t.Alts) == 0 {
		return t.Literal == word
	}
	for _, alt := range t.Alts {
		if alt == word {
			return true
		}
	}
	return false
}

// Rule assigns a decision to commands matching a prefix pattern.
type Rule struct {
	Pattern       []Token
	Decision      Decision
	Justification string
}

// Matches reports whether the rule's pattern is a prefix of argv.
func (r *Rule) Matches(argv []string) bool {
	if len(argv) < len(r.Pattern) {
		return false
	}
	for i, tok := range r.Pattern {
		if !tok.matches(argv[i]) {
			return false
		}
	}
	return true
}

// programName returns the pattern's leading literal, or "" when the
// first token is an alternative set.
func (r *Rule) programName() string {
	if len(r.Pattern) == 0 || len(r.Pattern[0].Alts) > 0 {
		return ""
	}
	return r.Pattern[0].Literal
}

// Evaluation is the aggregate result of checking a command.
type Evaluation struct {
	Decision      Decision
	Justification string
	// Matched is false when no rule applied and the default decision
	// (allow) was used.
	Matched bool
}

// Policy holds rules indexed by leading program name. Rules whose first
// token is an alternative set are indexed under the empty key.
type Policy struct {
	rulesByProgram map[string][]*Rule
}

// NewPolicy creates an empty policy. An empty policy allows everything.
func NewPolicy() *Policy {
	return &Policy{rulesByProgram: make(map[string][]*Rule)}
}

// AddRule adds a rule to the policy.
func (p *Policy) AddRule(r *Rule) {
	name := r.programName()
	p.rulesByProgram[name] = append(p.rulesByProgram[name], r)
}

// Check evaluates a single argv against the policy. Unmatched commands
// are allowed: the policy is a deny-list layered over an open default.
func (p *Policy) Check(argv []string) Evaluation {
	if p == nil || len(argv) == 0 {
		return Evaluation{Decision: DecisionAllow}
	}

	result := Evaluation{Decision: DecisionAllow}
	consider := func(rules []*Rule) {
		for _, r := range rules {
			if !r.Matches(argv) {
				continue
			}
			result.Matched = true
			if r.Decision > result.Decision {
				result.Decision = r.Decision
				result.Justification = r.Justification
			}
		}
	}
	consider(p.rulesByProgram[argv[0]])
	consider(p.rulesByProgram[""])
	return result
}

// CheckCommandLine splits a shell command line on command separators and
// evaluates each simple command, returning the most restrictive result.
func (p *Policy) CheckCommandLine(command string) Evaluation {
	if p == nil {
		return Evaluation{Decision: DecisionAllow}
	}
	aggregate := Evaluation{Decision: DecisionAllow}
	for _, argv := range SplitCommands(command) {
		eval := p.Check(argv)
		if eval.Matched {
			aggregate.Matched = true
		}
		if eval.Decision > aggregate.Decision {
			aggregate.Decision = eval.Decision
			aggregate.Justification = eval.Justification
		}
	}
	return aggregate
}

// SplitCommands breaks a command line into simple commands on the
// &&, ||, ;, and | separators, then splits each on whitespace. This is a
// deliberate approximation: it does not parse quoting or substitution,
// so the policy sees the same word boundaries a prefix rule is written
// against. Commands the splitter misreads err toward extra checks, not
// fewer.
func SplitCommands(command string) [][]string {
	replaced := command
	for _, sep := range []string{"&&", "||", ";", "|", "\n"} {
		replaced = strings.ReplaceAll(replaced, sep, "\x00")
	}
	var out [][]string
	for _, segment := range strings.Split(replaced, "\x00") {
		fields := strings.Fields(segment)
		if len(fields) > 0 {
			out = append(out, fields)
		}
	}
	return out
}
