package domain

import (
	"fmt"
	"strings"
)

// Direction is the head move applied after a symbol is written.
type Direction string

const (
	MoveRight Direction = "R"
	MoveLeft  Direction = "L"
)

// Offset returns the head displacement for the direction.
func (d Direction) Offset() int {
	if d == MoveRight {
		return 1
	}
	return -1
}

// ParseDirection accepts the move tokens used in machine descriptions (R/L, any case).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "R":
		return MoveRight, nil
	case "L":
		return MoveLeft, nil
	}
	return "", fmt.Errorf("unknown direction %q (expected R or L)", s)
}

// Rule is one non-deterministic choice for a (state, symbol) pair.
type Rule struct {
	Next  string    `json:"next" yaml:"next"`
	Write string    `json:"write" yaml:"write"`
	Move  Direction `json:"move" yaml:"move"`
}

// Transition is a full rule line of the machine description:
// (current state, read symbol, next state, write symbol, direction).
type Transition struct {
	From  string    `json:"from" yaml:"from" mapstructure:"from"`
	Read  string    `json:"read" yaml:"read" mapstructure:"read"`
	Next  string    `json:"next" yaml:"next" mapstructure:"next"`
	Write string    `json:"write" yaml:"write" mapstructure:"write"`
	Move  Direction `json:"move" yaml:"move" mapstructure:"move"`
}

// Rule drops the lookup key from the transition.
func (t Transition) Rule() Rule {
	return Rule{Next: t.Next, Write: t.Write, Move: t.Move}
}
