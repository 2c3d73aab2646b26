package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the tracentm banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct{ text, color string }{
		{"  _                            _", "#818cf8"},
		{" | |_ _ __ __ _  ___ ___ _ __ | |_ _ __ ___", "#a78bfa"},
		{" | __| '__/ _` |/ __/ _ \\ '_ \\| __| '_ ` _ \\", "#c084fc"},
		{" | |_| | | (_| | (_|  __/ | | | |_| | | | | |", "#e879f9"},
		{"  \\__|_|  \\__,_|\\___\\___|_| |_|\\__|_| |_| |_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
