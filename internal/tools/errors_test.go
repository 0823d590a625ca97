package tools

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorPredicates(t *testing.T) {
	cases := []struct {
		err  error
		is   func(error) bool
		isnt []func(error) bool
	}{
		{
			err:  &NotFoundError{Path: "a.txt"},
			is:   IsNotFound,
			isnt: []func(error) bool{IsBinaryContent, IsValidation},
		},
		{
			err:  &BinaryContentError{Path: "blob.bin"},
			is:   IsBinaryContent,
			isnt: []func(error) bool{IsNotFound},
		},
		{
			err:  &EditMatchError{Path: "a.txt", Matches: 3},
			is:   IsEditMatch,
			isnt: []func(error) bool{IsValidation},
		},
		{
			err:  &SpawnError{Cause: errors.New("exec format error")},
			is:   IsSpawn,
			isnt: []func(error) bool{IsExecPolicy},
		},
		{
			err:  &NetworkPolicyError{Host: "evil.example"},
			is:   IsNetworkPolicy,
			isnt: []func(error) bool{IsSpawn},
		},
		{
			err:  &ExecPolicyError{Command: "rm -rf /"},
			is:   IsExecPolicy,
			isnt: []func(error) bool{IsNetworkPolicy},
		},
		{
			err:  NewValidationErrorf("bad %s", "arg"),
			is:   IsValidation,
			isnt: []func(error) bool{IsNotFound},
		},
	}

	for _, c := range cases {
		assert.True(t, c.is(c.err), "predicate should match %T", c.err)
		for _, not := range c.isnt {
			assert.False(t, not(c.err), "predicate should not match %T", c.err)
		}
	}
}

func TestErrorPredicates_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("dispatch: %w", &NotFoundError{Path: "x"})
	assert.True(t, IsNotFound(wrapped))
}

func TestEditMatchError_Messages(t *testing.T) {
	zero := &EditMatchError{Path: "a.txt", Matches: 0}
	many := &EditMatchError{Path: "a.txt", Matches: 4}

	assert.Contains(t, zero.Error(), "not found")
	assert.Contains(t, many.Error(), "4")
}

func TestSpawnError_Unwrap(t *testing.T) {
	cause := errors.New("no such file")
	err := &SpawnError{Cause: cause}

	assert.ErrorIs(t, err, cause)
}
