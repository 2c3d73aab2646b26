package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/tracentm/pkg/domain"
)

// PathOverlay marks the states an accepting path went through.
type PathOverlay struct {
	VisitedStates []string
	FinalState    string
}

// OverlayFromReport builds an overlay from the accepting path of a report.
// It returns nil when the report has no path.
func OverlayFromReport(rep *domain.Report) *PathOverlay {
	if rep == nil || len(rep.Path) == 0 {
		return nil
	}
	o := &PathOverlay{}
	for _, row := range rep.Path {
		o.VisitedStates = append(o.VisitedStates, row.State)
	}
	o.FinalState = rep.Path[len(rep.Path)-1].State
	return o
}

// GenerateMermaid produces a Mermaid stateDiagram-v2 of the transition relation.
// Rules sharing a source and target are merged into one edge labelled
// "read/write,move" per rule. The start state is entered from [*]; accept and reject
// exit to [*]. Overlay styles are applied when overlay is non-nil.
func GenerateMermaid(m *domain.Machine, overlay *PathOverlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	for _, state := range m.States() {
		safeID := sanitizeMermaidID(state)
		if safeID != state {
			sb.WriteString(fmt.Sprintf("    state \"%s\" as %s\n", state, safeID))
		}
	}

	sb.WriteString(fmt.Sprintf("    [*] --> %s\n", sanitizeMermaidID(m.Start())))

	type edge struct{ from, to string }
	var order []edge
	labels := make(map[edge][]string)
	for _, t := range m.Transitions() {
		e := edge{t.From, t.Next}
		if _, seen := labels[e]; !seen {
			order = append(order, e)
		}
		labels[e] = append(labels[e], fmt.Sprintf("%s/%s,%s", escapeLabel(t.Read), escapeLabel(t.Write), t.Move))
	}
	for _, e := range order {
		sb.WriteString(fmt.Sprintf("    %s --> %s : %s\n",
			sanitizeMermaidID(e.from), sanitizeMermaidID(e.to), strings.Join(labels[e], "<br/>")))
	}

	sb.WriteString(fmt.Sprintf("    %s --> [*]\n", sanitizeMermaidID(m.Accept())))
	sb.WriteString(fmt.Sprintf("    %s --> [*]\n", sanitizeMermaidID(m.Reject())))

	sb.WriteString("\n    classDef accept fill:#c8e6c9,stroke:#2e7d32,color:#000\n")
	sb.WriteString("    classDef reject fill:#ffcdd2,stroke:#c62828,color:#000\n")
	sb.WriteString(fmt.Sprintf("    class %s accept\n", sanitizeMermaidID(m.Accept())))
	sb.WriteString(fmt.Sprintf("    class %s reject\n", sanitizeMermaidID(m.Reject())))

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(id)
			if safeID == "" || visitedSet[safeID] || id == overlay.FinalState {
				continue
			}
			visitedSet[safeID] = true
			sb.WriteString(fmt.Sprintf("    class %s visited\n", safeID))
		}

		if overlay.FinalState != "" {
			sb.WriteString(fmt.Sprintf("    class %s current\n", sanitizeMermaidID(overlay.FinalState)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_", ":", "_")
	return r.Replace(id)
}

// escapeLabel keeps symbols that Mermaid treats as syntax out of edge labels.
func escapeLabel(s string) string {
	switch s {
	case ":":
		return "#58;"
	case ";":
		return "#59;"
	case "#":
		return "#35;"
	}
	return s
}
