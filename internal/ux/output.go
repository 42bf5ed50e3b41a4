// Package ux renders status banners and explanation text for the terminal.
// Output through this package is cosmetic: every function degrades to
// plain text when styling or markdown rendering fails.
package ux

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const ruleWidth = 70

var (
	ruleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// ErrorBanner returns the "fault detected" banner printed before analysis.
func ErrorBanner() string {
	rule := ruleStyle.Render(strings.Repeat("=", ruleWidth))
	return "\n" + rule + "\n" +
		bannerStyle.Render("ERROR DETECTED - Analyzing with AI...") + "\n" +
		rule + "\n"
}

// Success returns the styled line reported when code runs cleanly.
func Success(msg string) string {
	return successStyle.Render(msg)
}

// Notice returns a styled informational line (file not found, watch
// events, and similar).
func Notice(msg string) string {
	return noticeStyle.Render(msg)
}

// RenderMarkdown renders an explanation for the terminal. Explanations
// come back from the service as markdown; if rendering fails the raw text
// is returned unchanged.
func RenderMarkdown(text string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return out
}
