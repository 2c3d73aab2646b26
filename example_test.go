package tracentm_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/tracentm"
	"github.com/aretw0/tracentm/pkg/adapters/memory"
	"github.com/aretw0/tracentm/pkg/domain"
)

// ExampleNew_memory runs a machine defined in code, without touching the filesystem.
func ExampleNew_memory() {
	loader, err := memory.NewFromDefinitions(domain.Definition{
		Name:          "ends-in-b",
		States:        []string{"scan", "check", "yes", "no"},
		InputAlphabet: []string{"a", "b"},
		TapeAlphabet:  []string{"a", "b", "_"},
		Start:         "scan",
		Accept:        "yes",
		Reject:        "no",
		Transitions: []domain.Transition{
			// guess: either keep scanning or bet this b is the last symbol
			{From: "scan", Read: "a", Next: "scan", Write: "a", Move: domain.MoveRight},
			{From: "scan", Read: "b", Next: "scan", Write: "b", Move: domain.MoveRight},
			{From: "scan", Read: "b", Next: "check", Write: "b", Move: domain.MoveRight},
			{From: "check", Read: "_", Next: "yes", Write: "_", Move: domain.MoveRight},
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	eng, err := tracentm.New("", tracentm.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	run := eng.Simulate(context.Background(), "abab", 10)
	fmt.Println(run.Verdict, run.Steps)
	for _, step := range run.AcceptingPath() {
		fmt.Printf("%s %q %s %q\n", step.View.Left, step.View.Head, step.State, step.View.Right)
	}

	// Output:
	// accept 5
	//  "a" scan "bab"
	// a "b" scan "ab"
	// ab "a" scan "b"
	// aba "b" scan ""
	// abab "_" check ""
	// abab_ "_" yes ""
}

// ExampleRunner prints the summary produced by the command line tool.
func ExampleRunner() {
	loader, err := memory.NewFromDefinitions(domain.Definition{
		Name:          "loop",
		States:        []string{"q", "acc", "rej"},
		InputAlphabet: []string{"a"},
		TapeAlphabet:  []string{"a", "_"},
		Start:         "q",
		Accept:        "acc",
		Reject:        "rej",
		Transitions: []domain.Transition{
			{From: "q", Read: "a", Next: "q", Write: "a", Move: domain.MoveRight},
			{From: "q", Read: "_", Next: "q", Write: "a", Move: domain.MoveLeft},
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	eng, err := tracentm.New("", tracentm.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	r := tracentm.NewRunner(os.Stdout)
	if _, err := r.Run(context.Background(), eng, "a", 3); err != nil {
		log.Fatal(err)
	}

	// Output:
	// Machine Name: loop
	// Initial String: a
	// ----------------------------------------
	// Execution stopped after 3 steps.
	// ----------------------------------------
	// Result: stopped
	// Depth of Tree: 4
	// Total Configurations Explored: 4
	// Average Nondeterminism: 1.00
}
