package runtime

import (
	"strings"

	"github.com/aretw0/tracentm/pkg/domain"
)

// exploration is the call-scoped state of one simulation.
type exploration struct {
	machine *domain.Machine
	run     *domain.Run
	visited map[domain.ConfigKey]struct{}
}

func newExploration(machine *domain.Machine, input string, maxDepth int) *exploration {
	root := domain.Configuration{
		ID:     0,
		Parent: domain.NoParent,
		Level:  0,
		Tape:   input,
		State:  machine.Start(),
		Head:   0,
	}
	return &exploration{
		machine: machine,
		run: &domain.Run{
			Input:          input,
			MaxDepth:       maxDepth,
			Configurations: []domain.Configuration{root},
			Levels:         [][]domain.ConfigID{{root.ID}},
			AcceptID:       domain.NoParent,
		},
		visited: make(map[domain.ConfigKey]struct{}),
	}
}

// expand processes one level in order and returns the successors queued for the next
// level together with the number of rule applications. It stops at the first
// configuration in the accept state.
func (x *exploration) expand(level int, current []domain.ConfigID) (next []domain.ConfigID, branches int, accepted bool) {
	for _, id := range current {
		x.run.TotalConfigurations++
		cfg := x.run.Configurations[id]

		key := cfg.Key()
		if _, seen := x.visited[key]; seen {
			continue
		}
		x.visited[key] = struct{}{}

		switch {
		case cfg.State == x.machine.Accept():
			x.run.AcceptID = id
			return nil, branches, true
		case cfg.State == x.machine.Reject():
			continue
		case cfg.Head < 0:
			continue
		}

		// Heads index characters, not bytes.
		tape := []rune(cfg.Tape)
		if cfg.Head >= len(tape) {
			tape = append(tape, []rune(strings.Repeat(domain.Blank, cfg.Head-len(tape)+1))...)
		}

		left, right := string(tape[:cfg.Head]), string(tape[cfg.Head+1:])
		symbol := string(tape[cfg.Head])
		for _, rule := range x.machine.TransitionsFor(cfg.State, symbol) {
			branches++
			next = append(next, x.add(domain.Configuration{
				Parent: id,
				Level:  level + 1,
				Tape:   left + rule.Write + right,
				State:  rule.Next,
				Head:   cfg.Head + rule.Move.Offset(),
			}))
		}
	}
	return next, branches, false
}

func (x *exploration) add(cfg domain.Configuration) domain.ConfigID {
	cfg.ID = domain.ConfigID(len(x.run.Configurations))
	x.run.Configurations = append(x.run.Configurations, cfg)
	return cfg.ID
}
