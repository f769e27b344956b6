package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Lectern banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _              _", "#38bdf8"},
		{"| |    ___  ___| |_ ___ _ __ _ __", "#60a5fa"},
		{"| |   / _ \\/ __| __/ _ \\ '__| '_ \\", "#818cf8"},
		{"| |__|  __/ (__| ||  __/ |  | | | |", "#a78bfa"},
		{"|_____\\___|\\___|\\__\\___|_|  |_| |_|", "#c084fc"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  JSON to PowerPoint, v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}
