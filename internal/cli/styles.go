// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/voltfield/ohmwork/internal/model"
)

var (
	// PrimaryColor is the main theme color (copper).
	PrimaryColor = lipgloss.Color("#E8833A")
	// SuccessColor indicates auto-accepted matches and successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates low-confidence matches needing review.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates unmatched lines and failures.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)
)

// FormatConfidence renders a confidence score colored by its band.
func FormatConfidence(score int) string {
	text := fmt.Sprintf("%d%%", score)
	switch model.StatusFor(score) {
	case model.MatchAutoAccepted:
		return SuccessStyle.Render(text)
	case model.MatchNeedsReview:
		return WarningStyle.Render(text)
	default:
		return ErrorStyle.Render(text)
	}
}

// FormatStatus renders a match status label.
func FormatStatus(status model.MatchStatus) string {
	switch status {
	case model.MatchAutoAccepted:
		return SuccessStyle.Render("matched")
	case model.MatchNeedsReview:
		return WarningStyle.Render("review")
	default:
		return ErrorStyle.Render("no match")
	}
}
