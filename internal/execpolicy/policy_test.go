package execpolicy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() *Policy {
	p := NewPolicy()
	p.AddRule(&Rule{
		Pattern:       []Token{{Literal: "rm"}, {Literal: "-rf"}},
		Decision:      DecisionForbidden,
		Justification: "recursive delete",
	})
	p.AddRule(&Rule{
		Pattern:  []Token{{Literal: "git"}, {Alts: []string{"push", "fetch", "pull"}}},
		Decision: DecisionPrompt,
	})
	p.AddRule(&Rule{
		Pattern:  []Token{{Literal: "git"}, {Literal: "status"}},
		Decision: DecisionAllow,
	})
	return p
}

func TestPolicy_UnmatchedAllows(t *testing.T) {
	eval := testPolicy().Check([]string{"ls", "-la"})

	assert.Equal(t, DecisionAllow, eval.Decision)
	assert.False(t, eval.Matched)
}

func TestPolicy_ForbiddenPrefix(t *testing.T) {
	eval := testPolicy().Check([]string{"rm", "-rf", "/tmp/x"})

	assert.Equal(t, DecisionForbidden, eval.Decision)
	assert.True(t, eval.Matched)
	assert.Equal(t, "recursive delete", eval.Justification)
}

func TestPolicy_PrefixMustMatchFully(t *testing.T) {
	// "rm" alone does not match the two-token pattern.
	eval := testPolicy().Check([]string{"rm", "file.txt"})

	assert.Equal(t, DecisionAllow, eval.Decision)
	assert.False(t, eval.Matched)
}

func TestPolicy_Alternatives(t *testing.T) {
	p := testPolicy()

	assert.Equal(t, DecisionPrompt, p.Check([]string{"git", "push", "origin"}).Decision)
	assert.Equal(t, DecisionPrompt, p.Check([]string{"git", "fetch"}).Decision)
	assert.Equal(t, DecisionAllow, p.Check([]string{"git", "log"}).Decision)
}

func TestPolicy_MostRestrictiveWins(t *testing.T) {
	p := NewPolicy()
	p.AddRule(&Rule{Pattern: []Token{{Literal: "git"}}, Decision: DecisionPrompt})
	p.AddRule(&Rule{
		Pattern:  []Token{{Literal: "git"}, {Literal: "push"}},
		Decision: DecisionForbidden,
	})

	assert.Equal(t, DecisionForbidden, p.Check([]string{"git", "push"}).Decision)
	assert.Equal(t, DecisionPrompt, p.Check([]string{"git", "status"}).Decision)
}

func TestPolicy_NilAndEmpty(t *testing.T) {
	var p *Policy
	assert.Equal(t, DecisionAllow, p.Check([]string{"ls"}).Decision)
	assert.Equal(t, DecisionAllow, NewPolicy().Check([]string{"ls"}).Decision)
	assert.Equal(t, DecisionAllow, NewPolicy().Check(nil).Decision)
}

func TestCheckCommandLine_AggregatesSegments(t *testing.T) {
	eval := testPolicy().CheckCommandLine("ls && rm -rf /data")

	assert.Equal(t, DecisionForbidden, eval.Decision)
	assert.True(t, eval.Matched)
}

func TestCheckCommandLine_PipeSegments(t *testing.T) {
	eval := testPolicy().CheckCommandLine("cat log | git push")

	assert.Equal(t, DecisionPrompt, eval.Decision)
}

func TestSplitCommands(t *testing.T) {
	argvs := SplitCommands("ls -la && git status; echo hi | wc -l")

	require.Len(t, argvs, 4)
	assert.Equal(t, []string{"ls", "-la"}, argvs[0])
	assert.Equal(t, []string{"git", "status"}, argvs[1])
	assert.Equal(t, []string{"echo", "hi"}, argvs[2])
	assert.Equal(t, []string{"wc", "-l"}, argvs[3])
}

func TestSplitCommands_EmptySegments(t *testing.T) {
	assert.Empty(t, SplitCommands("   "))
	assert.Len(t, SplitCommands("ls &&"), 1)
}

func TestParseDecision(t *testing.T) {
	d, err := ParseDecision("FORBIDDEN")
	require.NoError(t, err)
	assert.Equal(t, DecisionForbidden, d)

	_, err = ParseDecision("maybe")
	assert.Error(t, err)
}
