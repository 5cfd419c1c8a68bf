package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/idilsaglam/sheetdb/internal/app"
)

// Notifier prints notifications as OK/Fail lines.
type Notifier struct{}

func (Notifier) Notify(sev app.Severity, msg string) {
	if sev == app.SeverityError {
		Fail(msg)
		return
	}
	OK(msg)
}

// PromptConfirmer asks on out and reads a y/N answer from in.
type PromptConfirmer struct {
	In  io.Reader
	Out io.Writer
}

func (p PromptConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(p.Out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.Out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
