// Package styles provides Lip Gloss styles for the districtboard TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette for the TUI.
var (
	// Primary colors
	Primary     = lipgloss.Color("#7C3AED") // Purple
	Secondary   = lipgloss.Color("#06B6D4") // Cyan
	Success     = lipgloss.Color("#10B981") // Green
	Warning     = lipgloss.Color("#F59E0B") // Amber
	Error       = lipgloss.Color("#EF4444") // Red
	Muted       = lipgloss.Color("#6B7280") // Gray
	MutedLight  = lipgloss.Color("#9CA3AF") // Light Gray
	Background  = lipgloss.Color("#1F2937") // Dark Gray
	Foreground  = lipgloss.Color("#F9FAFB") // White
	BorderColor = lipgloss.Color("#374151") // Border Gray
)

// Bloc colors match the web charts.
var (
	Progressive  = lipgloss.Color("#1F5FBF")
	Conservative = lipgloss.Color("#D62728")
	OtherBloc    = lipgloss.Color("#7F7F7F")
)

// IndicatorColors color the demographic bar segments, in indicator order.
var IndicatorColors = []lipgloss.Color{
	lipgloss.Color("#4C78A8"),
	lipgloss.Color("#F58518"),
	lipgloss.Color("#54A24B"),
	lipgloss.Color("#E45756"),
}

// Header styles.
var (
	// HeaderLabelStyle is for header labels.
	HeaderLabelStyle = lipgloss.NewStyle().
				Foreground(MutedLight)

	// HeaderValueStyle is for header values.
	HeaderValueStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Bold(true)

	// TitleStyle is for the application title.
	TitleStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Background(Primary).
			Bold(true).
			Padding(0, 1)
)

// KPI card styles.
var (
	// CardStyle frames one KPI card.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	// CardLabelStyle is the card caption.
	CardLabelStyle = lipgloss.NewStyle().
			Foreground(MutedLight)

	// CardValueStyle is the card's big number.
	CardValueStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Bold(true)
)

// Section styles.
var (
	// SectionTitleStyle heads the 선거환경 and 정치지형 panes.
	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(Secondary).
				Bold(true)

	// CaptionStyle is for chart captions.
	CaptionStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)
)

// Box styles.
var (
	// BoxStyle is a standard box with border.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	// FocusedBoxStyle is a box that's currently focused.
	FocusedBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)
)

// Text styles.
var (
	// MutedTextStyle is for de-emphasized text.
	MutedTextStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// ErrorTextStyle is for error messages.
	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(Error)

	// SuccessTextStyle is for success messages.
	SuccessTextStyle = lipgloss.NewStyle().
				Foreground(Success)

	// WarningTextStyle is for warning messages.
	WarningTextStyle = lipgloss.NewStyle().
				Foreground(Warning)
)

// Status bar styles.
var (
	// StatusBarStyle is the main status bar container.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(MutedLight).
			Background(Background).
			Padding(0, 1)

	// KeyStyle is for keyboard shortcut keys.
	KeyStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// HelpStyle is for help text.
	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted)
)

// Selection list styles.
var (
	// CheckboxCheckedStyle is for checked options.
	CheckboxCheckedStyle = lipgloss.NewStyle().
				Foreground(Success)

	// CheckboxUncheckedStyle is for unchecked options.
	CheckboxUncheckedStyle = lipgloss.NewStyle().
				Foreground(Muted)

	// CursorStyle marks the highlighted option.
	CursorStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// OverlayTitleStyle heads pickers and dialogs.
	OverlayTitleStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Secondary).
				Bold(true).
				Padding(0, 1)
)

// BlocColor returns the color for a bloc or winner label.
func BlocColor(label string) lipgloss.Color {
	switch label {
	case "진보":
		return Progressive
	case "보수":
		return Conservative
	case "기타":
		return OtherBloc
	}
	return MutedLight
}
