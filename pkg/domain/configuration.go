package domain

// ConfigID identifies a Configuration inside the arena of a single Run.
type ConfigID int

// NoParent marks the root configuration.
const NoParent ConfigID = -1

// Configuration is one node of the exploration tree. It is never modified after
// creation: applying a rule always yields a new Configuration.
type Configuration struct {
	ID     ConfigID `json:"id"`
	Parent ConfigID `json:"parent"`
	Level  int      `json:"level"`
	Tape   string   `json:"tape"`
	State  string   `json:"state"`
	Head   int      `json:"head"`
}

// ConfigKey is the identity used for duplicate detection.
type ConfigKey struct {
	Tape  string
	State string
	Head  int
}

// Key returns the (tape, state, head) triple of the configuration.
func (c Configuration) Key() ConfigKey {
	return ConfigKey{Tape: c.Tape, State: c.State, Head: c.Head}
}

// TapeView splits the tape around the head for display.
type TapeView struct {
	Left  string `json:"left"`
	Head  string `json:"head"`
	Right string `json:"right"`
}

// View returns the tape relative to the head. A head outside the tape on either
// side shows the blank symbol. Positions count characters.
func (c Configuration) View() TapeView {
	tape := []rune(c.Tape)
	switch {
	case c.Head < 0:
		return TapeView{Left: "", Head: Blank, Right: c.Tape}
	case c.Head >= len(tape):
		return TapeView{Left: c.Tape, Head: Blank, Right: ""}
	default:
		return TapeView{
			Left:  string(tape[:c.Head]),
			Head:  string(tape[c.Head]),
			Right: string(tape[c.Head+1:]),
		}
	}
}
