package dsl

import (
	"fmt"

	"github.com/aretw0/tracentm/pkg/adapters/memory"
	"github.com/aretw0/tracentm/pkg/domain"
)

// Builder accumulates a machine definition.
type Builder struct {
	def domain.Definition
}

// New creates a new machine builder.
func New(name string) *Builder {
	return &Builder{def: domain.Definition{Name: name}}
}

// States declares the machine states, in order.
func (b *Builder) States(states ...string) *Builder {
	b.def.States = append(b.def.States, states...)
	return b
}

// Alphabet declares input symbols. They are added to the tape alphabet too, followed
// by the blank symbol.
func (b *Builder) Alphabet(symbols ...string) *Builder {
	b.def.InputAlphabet = append(b.def.InputAlphabet, symbols...)
	for _, s := range symbols {
		b.addTape(s)
	}
	b.addTape(domain.Blank)
	return b
}

// Tape declares extra tape-only symbols.
func (b *Builder) Tape(symbols ...string) *Builder {
	for _, s := range symbols {
		b.addTape(s)
	}
	return b
}

func (b *Builder) addTape(sym string) {
	for _, s := range b.def.TapeAlphabet {
		if s == sym {
			return
		}
	}
	b.def.TapeAlphabet = append(b.def.TapeAlphabet, sym)
}

func (b *Builder) Start(state string) *Builder  { b.def.Start = state; return b }
func (b *Builder) Accept(state string) *Builder { b.def.Accept = state; return b }
func (b *Builder) Reject(state string) *Builder { b.def.Reject = state; return b }

// From starts describing the rules leaving state.
func (b *Builder) From(state string) *StateBuilder {
	return &StateBuilder{builder: b, state: state}
}

// Definition returns a copy of the definition built so far, without validation.
func (b *Builder) Definition() domain.Definition {
	return domain.NewMachine(b.def).Definition()
}

// Build validates the definition and returns the machine.
func (b *Builder) Build() (*domain.Machine, error) {
	loader, err := b.Loader()
	if err != nil {
		return nil, err
	}
	return loader.GetMachine(b.def.Name)
}

// Loader validates the definition and wraps it in a memory loader.
func (b *Builder) Loader() (*memory.Loader, error) {
	loader, err := memory.NewFromDefinitions(b.Definition())
	if err != nil {
		return nil, fmt.Errorf("failed to build machine %q: %w", b.def.Name, err)
	}
	return loader, nil
}
