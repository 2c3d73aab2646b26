package domain

// Definition is the plain description of a machine as produced by loaders.
// It carries no behaviour; NewMachine turns it into an immutable Machine.
type Definition struct {
	Name          string       `json:"name" yaml:"name" mapstructure:"name"`
	States        []string     `json:"states" yaml:"states" mapstructure:"states"`
	InputAlphabet []string     `json:"input_alphabet" yaml:"input_alphabet" mapstructure:"input_alphabet"`
	TapeAlphabet  []string     `json:"tape_alphabet" yaml:"tape_alphabet" mapstructure:"tape_alphabet"`
	Start         string       `json:"start" yaml:"start" mapstructure:"start"`
	Accept        string       `json:"accept" yaml:"accept" mapstructure:"accept"`
	Reject        string       `json:"reject" yaml:"reject" mapstructure:"reject"`
	Transitions   []Transition `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

type ruleKey struct {
	state  string
	symbol string
}

// Machine is a read-only non-deterministic Turing machine.
// All accessors return copies, so a Machine can be shared between concurrent simulations.
type Machine struct {
	def   Definition
	rules map[ruleKey][]Rule
}

// NewMachine builds a Machine from a definition. Rules sharing a (state, symbol) key
// keep their declaration order, which is the branch enumeration order.
func NewMachine(def Definition) *Machine {
	m := &Machine{
		def:   cloneDefinition(def),
		rules: make(map[ruleKey][]Rule),
	}
	for _, t := range m.def.Transitions {
		k := ruleKey{state: t.From, symbol: t.Read}
		m.rules[k] = append(m.rules[k], t.Rule())
	}
	return m
}

func (m *Machine) Name() string   { return m.def.Name }
func (m *Machine) Start() string  { return m.def.Start }
func (m *Machine) Accept() string { return m.def.Accept }
func (m *Machine) Reject() string { return m.def.Reject }

func (m *Machine) States() []string        { return append([]string(nil), m.def.States...) }
func (m *Machine) InputAlphabet() []string { return append([]string(nil), m.def.InputAlphabet...) }
func (m *Machine) TapeAlphabet() []string  { return append([]string(nil), m.def.TapeAlphabet...) }

// Transitions returns every rule line in declaration order.
func (m *Machine) Transitions() []Transition {
	return append([]Transition(nil), m.def.Transitions...)
}

// TransitionsFor returns the ordered choices for the pair, or an empty slice when no
// rule matches (the branch dies).
func (m *Machine) TransitionsFor(state, symbol string) []Rule {
	rules := m.rules[ruleKey{state: state, symbol: symbol}]
	if len(rules) == 0 {
		return []Rule{}
	}
	return append([]Rule(nil), rules...)
}

// Definition returns a copy of the underlying description.
func (m *Machine) Definition() Definition {
	return cloneDefinition(m.def)
}

func cloneDefinition(def Definition) Definition {
	out := def
	out.States = append([]string(nil), def.States...)
	out.InputAlphabet = append([]string(nil), def.InputAlphabet...)
	out.TapeAlphabet = append([]string(nil), def.TapeAlphabet...)
	out.Transitions = append([]Transition(nil), def.Transitions...)
	return out
}
