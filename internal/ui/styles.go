package ui

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/shilendra-dev/dodesk/internal/model"
)

// ANSI256 color codes matching the Ayu palette.
const (
	colorAccent  = 74  // blue
	colorMuted   = 245 // medium gray
	colorDone    = 114 // green
	colorActive  = 215 // orange
	colorUrgent  = 203 // red
	colorWarning = 179 // yellow
)

var noColor bool

func render(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string {
	return render(colorAccent, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	return render(colorMuted, s)
}

// RenderState returns the state token colored by workflow stage.
func RenderState(s model.IssueState) string {
	switch s {
	case model.StateDone:
		return render(colorDone, s.String())
	case model.StateInProgress:
		return render(colorActive, s.String())
	case model.StateCanceled:
		return render(colorMuted, s.String())
	default:
		return s.String()
	}
}

// priorityLabels maps priority levels to their display names.
var priorityLabels = map[int]string{
	model.PriorityNone:   "none",
	model.PriorityLow:    "low",
	model.PriorityMedium: "medium",
	model.PriorityHigh:   "high",
	model.PriorityUrgent: "urgent",
}

// RenderPriority returns the priority label, colored for high and urgent.
func RenderPriority(p int) string {
	label, ok := priorityLabels[p]
	if !ok {
		label = fmt.Sprintf("p%d", p)
	}
	switch {
	case p >= model.PriorityUrgent:
		return render(colorUrgent, label)
	case p == model.PriorityHigh:
		return render(colorWarning, label)
	case p == model.PriorityNone:
		return render(colorMuted, label)
	default:
		return label
	}
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}

// Detect configures color output for this process. JSON output is always
// plain; otherwise DODESK_COLOR=always|never wins over the NO_COLOR and
// CLICOLOR conventions, which in turn win over TTY detection.
func Detect(jsonOutput bool) {
	noColor = !useColor(jsonOutput)
}

func useColor(jsonOutput bool) bool {
	if jsonOutput {
		return false
	}
	switch strings.TrimSpace(os.Getenv("DODESK_COLOR")) {
	case "always":
		return true
	case "never":
		return false
	}
	// https://no-color.org: any non-empty value disables color.
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")) == "1" {
		return true
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR")) == "0" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
