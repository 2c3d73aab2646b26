package dsl

import "github.com/aretw0/tracentm/pkg/domain"

// StateBuilder adds rules for one source state.
type StateBuilder struct {
	builder *Builder
	state   string
}

// On selects the symbol read by the following rules.
func (s *StateBuilder) On(symbol string) *RuleBuilder {
	return &RuleBuilder{builder: s.builder, from: s.state, read: symbol}
}

// RuleBuilder appends rules for one (state, symbol) pair. Every call adds a new
// non-deterministic choice; declaration order is kept.
type RuleBuilder struct {
	builder *Builder
	from    string
	read    string
	write   string
}

// Write sets the symbol written by the next rule. Without it the read symbol is kept.
func (r *RuleBuilder) Write(symbol string) *RuleBuilder {
	r.write = symbol
	return r
}

// Right adds a rule moving the head right into next.
func (r *RuleBuilder) Right(next string) *RuleBuilder {
	return r.add(next, domain.MoveRight)
}

// Left adds a rule moving the head left into next.
func (r *RuleBuilder) Left(next string) *RuleBuilder {
	return r.add(next, domain.MoveLeft)
}

// Or reads better between two choices for the same pair.
func (r *RuleBuilder) Or() *RuleBuilder {
	return r
}

func (r *RuleBuilder) add(next string, move domain.Direction) *RuleBuilder {
	write := r.write
	if write == "" {
		write = r.read
	}
	r.builder.def.Transitions = append(r.builder.def.Transitions, domain.Transition{
		From:  r.from,
		Read:  r.read,
		Next:  next,
		Write: write,
		Move:  move,
	})
	r.write = ""
	return r
}
