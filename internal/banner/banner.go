// Package banner renders the CLI start-up banner.
package banner

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

var lines = []string{
	` _     _ __  __ __  __`,
	`| |__ | '  \|  '  \ '  \`,
	`|_||_||_|_|_|_|_|_|_|_|_|`,
}

var colors = []string{"#60a5fa", "#818cf8", "#a78bfa"}

// Banner returns the banner with the version line, colored for the
// terminal's profile.
func Banner(version string) string {
	p := termenv.EnvColorProfile()
	var b strings.Builder
	b.WriteString("\n")
	for i, l := range lines {
		b.WriteString(termenv.String(l).Foreground(p.Color(colors[i%len(colors)])).String())
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "  hidden Markov model inference  %s\n\n", version)
	return b.String()
}
