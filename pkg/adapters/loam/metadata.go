package loam

// MachineMetadata is the frontmatter of a machine document.
// Alphabets and rules are left untyped so numeric symbols survive strict decoding;
// compiler.Decode normalizes them.
type MachineMetadata struct {
	ID            string `json:"id" mapstructure:"id"`
	Name          string `json:"name" mapstructure:"name"`
	States        []any  `json:"states" mapstructure:"states"`
	InputAlphabet []any  `json:"input_alphabet" mapstructure:"input_alphabet"`
	TapeAlphabet  []any  `json:"tape_alphabet" mapstructure:"tape_alphabet"`
	Start         string `json:"start" mapstructure:"start"`
	Accept        string `json:"accept" mapstructure:"accept"`
	Reject        string `json:"reject" mapstructure:"reject"`
	Transitions   []any  `json:"transitions" mapstructure:"transitions"`
}

func (m MachineMetadata) raw(fallbackName string) map[string]any {
	name := m.Name
	if name == "" {
		name = fallbackName
	}
	return map[string]any{
		"name":           name,
		"states":         m.States,
		"input_alphabet": m.InputAlphabet,
		"tape_alphabet":  m.TapeAlphabet,
		"start":          m.Start,
		"accept":         m.Accept,
		"reject":         m.Reject,
		"transitions":    m.Transitions,
	}
}
