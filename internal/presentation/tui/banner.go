package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Tendril ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _                 _      _ _ ", "#34d399"},
		{"| |_ ___ _ __   __| |_ __(_) |", "#2dd4bf"},
		{"| __/ _ \\ '_ \\ / _` | '__| | |", "#22d3ee"},
		{"| ||  __/ | | | (_| | |  | | |", "#38bdf8"},
		{" \\__\\___|_| |_|\\__,_|_|  |_|_|", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
