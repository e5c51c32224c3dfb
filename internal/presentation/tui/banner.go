package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	`  _ __ ___   __ _ _ __ __ _ _   _  ___  ___ `,
	` | '_ ' _ \ / _' | '__/ _' | | | |/ _ \/ _ \`,
	` | | | | | | (_| | | | (_| | |_| |  __/  __/`,
	` |_| |_| |_|\__,_|_|  \__, |\__,_|\___|\___|`,
	`                         |_|                `,
}

// Warm stage-light gradient, amber to red.
var bannerColors = []string{"#fde68a", "#fcd34d", "#fbbf24", "#f59e0b", "#ef4444"}

// PrintBanner writes the marquee banner and version to w using profile p.
func PrintBanner(w io.Writer, p termenv.Profile, version string) {
	out := termenv.NewOutput(w, termenv.WithProfile(p))
	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, out.String(line).Foreground(out.Color(bannerColors[i])))
	}
	fmt.Fprintln(w, out.String("  v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}
