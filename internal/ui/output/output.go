// Package output creates termenv outputs with a consistent color profile.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Profile returns the color profile for a stream.
// NO_COLOR always yields Ascii. Interactive streams follow the terminal's
// capabilities; everything else gets ANSI so CI logs keep their colors.
func Profile(interactive bool) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if interactive {
		return termenv.EnvColorProfile()
	}
	return termenv.ANSI
}

// New creates a termenv.Output for w. A nil writer means stderr.
func New(w io.Writer, interactive bool, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(Profile(interactive)),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

// Paint renders s in color c on out.
func Paint(out *termenv.Output, s string, c string) string {
	return out.String(s).Foreground(out.Color(c)).String()
}
