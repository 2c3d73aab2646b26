package validator

import (
	"testing"

	"github.com/aretw0/tracentm/internal/testutils"
	"github.com/aretw0/tracentm/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestLint_CleanMachine(t *testing.T) {
	assert.Empty(t, Lint(testutils.APlusMachine()))
}

func TestLint(t *testing.T) {
	m := domain.NewMachine(domain.Definition{
		Name:          "odd",
		States:        []string{"q0", "q1", "orphan", "qacc", "qrej"},
		InputAlphabet: []string{"a"},
		TapeAlphabet:  []string{"a", "_"},
		Start:         "q0",
		Accept:        "qacc",
		Reject:        "qrej",
		Transitions: []domain.Transition{
			{From: "q0", Read: "a", Next: "q1", Write: "a", Move: domain.MoveRight},
			{From: "orphan", Read: "a", Next: "qacc", Write: "a", Move: domain.MoveRight},
		},
	})

	warnings := Lint(m)
	assert.Equal(t, []Warning{
		{State: "qacc", Reason: "accept state is unreachable, no input can be accepted"},
		{State: "orphan", Reason: "unreachable from the start state"},
		{State: "q1", Reason: "has no rules, every branch entering it dies"},
	}, warnings)
	assert.Equal(t, `state "orphan": unreachable from the start state`, warnings[1].String())
}
