package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventLevelDone EventType = "level_done"
	EventVerdict   EventType = "verdict"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// LevelEvent is emitted after every fully processed level that produced successors.
type LevelEvent struct {
	EventBase
	Machine    string `json:"machine"`
	Level      int    `json:"level"`
	Width      int    `json:"width"`
	Successors int    `json:"successors"`
	Explored   int    `json:"explored"`
}

// VerdictEvent is emitted once per simulation, when it terminates.
type VerdictEvent struct {
	EventBase
	Machine               string  `json:"machine"`
	Verdict               Verdict `json:"verdict"`
	Steps                 int     `json:"steps"`
	Explored              int     `json:"explored"`
	Depth                 int     `json:"depth"`
	AverageNondeterminism float64 `json:"average_nondeterminism"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnLevel   func(context.Context, *LevelEvent)
	OnVerdict func(context.Context, *VerdictEvent)
}
