// Package report turns a simulation Run into a serializable Report and prints it.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aretw0/tracentm/pkg/domain"
	"github.com/google/uuid"
)

// Separator is the line printed between report sections.
var Separator = strings.Repeat("-", 40)

// New summarises run, produced by machine, into a Report with a fresh ID.
func New(machine *domain.Machine, run *domain.Run) *domain.Report {
	rep := &domain.Report{
		ID:                    uuid.NewString(),
		Input:                 run.Input,
		MaxDepth:              run.MaxDepth,
		Verdict:               run.Verdict,
		Steps:                 run.Steps,
		TotalConfigurations:   run.TotalConfigurations,
		Depth:                 run.Depth(),
		AverageNondeterminism: run.AverageNondeterminism(),
		CreatedAt:             time.Now().UTC(),
	}
	if machine != nil {
		rep.Machine = machine.Name()
	}
	if rep.Depth < 0 {
		rep.Depth = 0
	}

	for _, step := range run.AcceptingPath() {
		rep.Path = append(rep.Path, domain.PathRow{
			Left:  step.View.Left,
			State: step.State,
			Head:  step.View.Head,
			Right: step.View.Right,
		})
	}
	return rep
}

// VerdictLine returns the one-line outcome, e.g. "String accepted in 6 steps.".
func VerdictLine(rep *domain.Report) string {
	switch rep.Verdict {
	case domain.VerdictAccept:
		return fmt.Sprintf("String accepted in %d steps.", rep.Steps)
	case domain.VerdictReject:
		return fmt.Sprintf("String rejected in %d steps.", rep.Steps)
	default:
		return fmt.Sprintf("Execution stopped after %d steps.", rep.Steps)
	}
}

// PathHeader is the header line of the accepting-path table.
func PathHeader() string {
	return fmt.Sprintf("%-10s | %-4s | %-5s | %s", "Left of Head", "State", "Head Char", "Right of Head")
}

// PathLine formats one accepting-path row.
func PathLine(row domain.PathRow) string {
	return fmt.Sprintf("%-10s | %-4s | %-5s | %s", row.Left, row.State, row.Head, row.Right)
}

// WriteText prints the report in the plain layout used by the CLI.
func WriteText(w io.Writer, rep *domain.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Machine Name: %s\n", rep.Machine)
	fmt.Fprintf(&b, "Initial String: %s\n", rep.Input)
	b.WriteString(Separator + "\n")

	b.WriteString(VerdictLine(rep) + "\n")
	if rep.Verdict == domain.VerdictAccept {
		b.WriteString(Separator + "\n")
		b.WriteString(PathHeader() + "\n")
		b.WriteString(Separator + "\n")
		for _, row := range rep.Path {
			b.WriteString(PathLine(row) + "\n")
		}
	}

	b.WriteString(Separator + "\n")
	fmt.Fprintf(&b, "Result: %s\n", rep.Verdict)
	fmt.Fprintf(&b, "Depth of Tree: %d\n", rep.Depth)
	fmt.Fprintf(&b, "Total Configurations Explored: %d\n", rep.TotalConfigurations)
	fmt.Fprintf(&b, "Average Nondeterminism: %.2f\n", rep.AverageNondeterminism)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON prints the report as indented JSON.
func WriteJSON(w io.Writer, rep *domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
