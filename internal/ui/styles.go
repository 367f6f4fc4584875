// Package ui renders terminal styling for the jobly CLI.
package ui

import "fmt"

// ANSI256 color codes matching the Ayu palette.
const (
	colorAccent  = 74  // blue
	colorCmd     = 250 // light gray
	colorMuted   = 245 // medium gray
	colorCreated = 114 // green
	colorUpdated = 179 // amber
	colorDeleted = 167 // red
)

var noColor bool

func render(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string { return render(colorAccent, s) }

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string { return render(colorMuted, s) }

// RenderCommand returns s styled as a command name (light gray).
func RenderCommand(s string) string { return render(colorCmd, s) }

// RenderChange colors a change-event action: created, updated or deleted.
// Unknown actions are returned unstyled.
func RenderChange(action string) string {
	switch action {
	case "created":
		return render(colorCreated, action)
	case "updated":
		return render(colorUpdated, action)
	case "deleted":
		return render(colorDeleted, action)
	}
	return action
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
