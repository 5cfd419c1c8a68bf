// Package ui holds the terminal presentation helpers shared by the CLI and
// the interactive UI: themes, status lines, panels and record tables.
package ui
