package validator

import (
	"fmt"
	"slices"

	"github.com/aretw0/tracentm/pkg/domain"
)

// Warning describes a structural oddity that does not prevent simulation.
type Warning struct {
	State  string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("state %q: %s", w.State, w.Reason)
}

// Lint crawls the transition graph from the start state and reports states no rule
// can reach, an unreachable accept state, and non-halting states without rules.
func Lint(m *domain.Machine) []Warning {
	edges := make(map[string][]string)
	hasRules := make(map[string]bool)
	for _, t := range m.Transitions() {
		edges[t.From] = append(edges[t.From], t.Next)
		hasRules[t.From] = true
	}

	visited := map[string]bool{m.Start(): true}
	queue := []string{m.Start()}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range edges[current] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	var warnings []Warning
	if !visited[m.Accept()] {
		warnings = append(warnings, Warning{State: m.Accept(), Reason: "accept state is unreachable, no input can be accepted"})
	}

	states := m.States()
	slices.Sort(states)
	for _, s := range states {
		halting := s == m.Accept() || s == m.Reject()
		switch {
		case !visited[s] && !halting:
			warnings = append(warnings, Warning{State: s, Reason: "unreachable from the start state"})
		case visited[s] && !halting && !hasRules[s]:
			warnings = append(warnings, Warning{State: s, Reason: "has no rules, every branch entering it dies"})
		}
	}
	return warnings
}
