package testutils

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/aretw0/tracentm/pkg/domain"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo creates a temporary directory and initializes a Loam repository in it.
// It returns the absolute path to the temp dir and the initialized repository.
// It fails the test immediately on error.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	tmpDir := t.TempDir()

	absPath, err := filepath.Abs(tmpDir)
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// APlusDefinition describes a machine accepting one or more 'a' symbols by consuming
// them left to right and accepting on the first blank.
func APlusDefinition() domain.Definition {
	return domain.Definition{
		Name:          "a-plus",
		States:        []string{"q0", "q1", "qacc", "qrej"},
		InputAlphabet: []string{"a"},
		TapeAlphabet:  []string{"a", "_"},
		Start:         "q0",
		Accept:        "qacc",
		Reject:        "qrej",
		Transitions: []domain.Transition{
			{From: "q0", Read: "a", Next: "q1", Write: "a", Move: domain.MoveRight},
			{From: "q1", Read: "a", Next: "q1", Write: "a", Move: domain.MoveRight},
			{From: "q1", Read: "_", Next: "qacc", Write: "_", Move: domain.MoveRight},
		},
	}
}

// APlusMachine returns the machine described by APlusDefinition.
func APlusMachine() *domain.Machine {
	return domain.NewMachine(APlusDefinition())
}

// ForkDefinition has two competing rules on (q0, a): one that continues towards the
// accept state and one that goes straight to the reject state.
func ForkDefinition() domain.Definition {
	return domain.Definition{
		Name:          "fork",
		States:        []string{"q0", "q1", "qacc", "qrej"},
		InputAlphabet: []string{"a"},
		TapeAlphabet:  []string{"a", "_"},
		Start:         "q0",
		Accept:        "qacc",
		Reject:        "qrej",
		Transitions: []domain.Transition{
			{From: "q0", Read: "a", Next: "q1", Write: "a", Move: domain.MoveRight},
			{From: "q0", Read: "a", Next: "qrej", Write: "a", Move: domain.MoveRight},
			{From: "q1", Read: "_", Next: "qacc", Write: "_", Move: domain.MoveRight},
		},
	}
}

// APlusCSV is the a-plus machine in the row-oriented CSV description format.
const APlusCSV = `a-plus
q0,q1,qacc,qrej
a
a,_
q0
qacc
qrej
q0,a,q1,a,R
q1,a,q1,a,R

q1,_,qacc,_,R
`

// APlusYAML is the a-plus machine in the structured YAML description format.
const APlusYAML = `name: a-plus
states: [q0, q1, qacc, qrej]
input_alphabet: [a]
tape_alphabet: [a, _]
start: q0
accept: qacc
reject: qrej
transitions:
  - q0,a,q1,a,R
  - [q1, a, q1, a, R]
  - {from: q1, read: _, next: qacc, write: _, move: R}
`
