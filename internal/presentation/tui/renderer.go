package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/tracentm/pkg/domain"
	"github.com/aretw0/tracentm/pkg/report"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRenderer returns a report renderer that formats the report as markdown and
// renders it with glamour.
func NewRenderer() func(*domain.Report) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(0),
	)

	return func(rep *domain.Report) (string, error) {
		if err != nil {
			return "", err
		}
		out, err := r.Render(Markdown(rep))
		if err != nil {
			return "", err
		}
		return out + "\n" + ColorVerdict(rep), nil
	}
}

// Markdown formats a report as a markdown document with the accepting path as a table.
func Markdown(rep *domain.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", escape(rep.Machine))
	fmt.Fprintf(&b, "**Initial String:** `%s`\n\n", rep.Input)
	fmt.Fprintf(&b, "%s\n\n", report.VerdictLine(rep))

	if len(rep.Path) > 0 {
		b.WriteString("| Left of Head | State | Head Char | Right of Head |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, row := range rep.Path {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				escape(row.Left), escape(row.State), escape(row.Head), escape(row.Right))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "- Total Configurations Explored: %d\n", rep.TotalConfigurations)
	fmt.Fprintf(&b, "- Depth of Tree: %d\n", rep.Depth)
	fmt.Fprintf(&b, "- Average Nondeterminism: %.2f\n", rep.AverageNondeterminism)
	return b.String()
}

// ColorVerdict returns "Result: <verdict>" coloured for the terminal profile:
// green for accept, red for reject, yellow for stopped.
func ColorVerdict(rep *domain.Report) string {
	p := termenv.ColorProfile()

	color := "#facc15"
	switch rep.Verdict {
	case domain.VerdictAccept:
		color = "#4ade80"
	case domain.VerdictReject:
		color = "#f87171"
	}
	return termenv.String(fmt.Sprintf("Result: %s", rep.Verdict)).Foreground(p.Color(color)).Bold().String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"|", `\|`,
	"#", `\#`,
	"<", `\<`,
	"[", `\[`,
	"]", `\]`,
)

func escape(s string) string {
	return markdownEscaper.Replace(s)
}
