package domain

import "time"

// PathRow is the display form of one accepting-path configuration.
type PathRow struct {
	Left  string `json:"left"`
	State string `json:"state"`
	Head  string `json:"head"`
	Right string `json:"right"`
}

// Report is the serializable summary of a Run.
type Report struct {
	ID                    string    `json:"id"`
	Machine               string    `json:"machine"`
	Input                 string    `json:"input"`
	MaxDepth              int       `json:"max_depth"`
	Verdict               Verdict   `json:"verdict"`
	Steps                 int       `json:"steps"`
	Path                  []PathRow `json:"path,omitempty"`
	TotalConfigurations   int       `json:"total_configurations"`
	Depth                 int       `json:"depth"`
	AverageNondeterminism float64   `json:"average_nondeterminism"`
	CreatedAt             time.Time `json:"created_at"`
}
