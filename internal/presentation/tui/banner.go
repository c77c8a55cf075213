package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"                 _ _   _                         _   ", "#818cf8"},
	{"  _ __ ___  _  _| | |_(_)__ _ __ _ ___ _ _  ___| |_ ", "#a78bfa"},
	{" | '  \\ || || | |  _| / _` / _` / -_) ' \\|  _|  _|", "#c084fc"},
	{" |_|_|_\\_,_||_|_|\\__|_\\__,_\\__, \\___|_||_|\\__|\\__|", "#e879f9"},
	{"                           |___/                  ", "#f472b6"},
}

// PrintBanner writes the ASCII banner to w, colored when the terminal allows it.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Status colors a short status label: green for finished, red for failed.
func Status(status string, ok bool) string {
	p := termenv.ColorProfile()
	color := "#22c55e"
	if !ok {
		color = "#ef4444"
	}
	return termenv.String(status).Foreground(p.Color(color)).Bold().String()
}
