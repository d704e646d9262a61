package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the espalier ASCII banner.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Leaf-green gradient, light to dark.
	lines := []struct {
		text  string
		color string
	}{
		{"                       _ _           ", "#86efac"},
		{"  ___  ___ _ __   __ _| (_) ___ _ __ ", "#4ade80"},
		{" / _ \\/ __| '_ \\ / _` | | |/ _ \\ '__|", "#34d399"},
		{"|  __/\\__ \\ |_) | (_| | | |  __/ |   ", "#22c55e"},
		{" \\___||___/ .__/ \\__,_|_|_|\\___|_|   ", "#16a34a"},
		{"          |_|                        ", "#15803d"},
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Println()
}
