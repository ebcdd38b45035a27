package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Clock-out: bold cyan so it is the first thing read
	colorClockOut = color.New(color.FgCyan, color.Bold)

	// Compliant break, positive results
	colorOk = color.New(color.FgGreen)

	// Out-of-order clock points
	colorWarn = color.New(color.FgYellow)

	// Non-compliant break, failures
	colorError = color.New(color.FgRed, color.Bold)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatClockOut formats a clock-out time for emphasis.
func formatClockOut(s string) string {
	return colorClockOut.Sprint(s)
}

// formatOk formats text as a success.
func formatOk(s string) string {
	return colorOk.Sprint(s)
}

// formatWarn formats text as a warning.
func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

// formatError formats text as an error.
func formatError(s string) string {
	return colorError.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
