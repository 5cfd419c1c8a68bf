package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	forceColor   bool
	disableColor bool

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetColorForcing overrides terminal detection.
func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

// SetOutput redirects OK/Fail/Panel output; tests pass buffers.
func SetOutput(out, errOut io.Writer) {
	stdout, stderr = out, errOut
}

func isTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// Colorless reports whether styled output is currently suppressed.
func Colorless() bool {
	if disableColor {
		return true
	}
	return !forceColor && !isTTY()
}

// C renders s with style unless color is off.
func C(style lipgloss.Style, s string) string {
	if Colorless() {
		return s
	}
	return style.Render(s)
}

func OK(msg string) { fmt.Fprintln(stdout, C(current.Success, current.SymOK+" "+msg)) }

func Fail(msg string) { fmt.Fprintln(stderr, C(current.Error, current.SymFail+" "+msg)) }

// Hint prints a muted line to stderr.
func Hint(msg string) { fmt.Fprintln(stderr, C(current.Muted, msg)) }

// Stdout is the writer OK and Panel print to.
func Stdout() io.Writer { return stdout }
