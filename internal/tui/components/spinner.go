package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dbmrq/districtboard/internal/tui/styles"
)

// Spinner shows an animated indicator while a dataset loads.
type Spinner struct {
	spinner   spinner.Model
	source    string
	startTime time.Time
	width     int
	showTime  bool
}

// NewSpinner creates a new Spinner component with default styling.
func NewSpinner() *Spinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Secondary)
	return &Spinner{
		spinner:  s,
		showTime: true,
	}
}

// SetShowTime controls whether elapsed time is shown.
func (s *Spinner) SetShowTime(show bool) {
	s.showTime = show
}

// SetWidth sets the width of the spinner component.
func (s *Spinner) SetWidth(width int) {
	s.width = width
}

// Start marks the beginning of a load of source.
func (s *Spinner) Start(source string) {
	s.source = source
	s.startTime = time.Now()
}

// Source returns the dataset being loaded.
func (s *Spinner) Source() string {
	return s.source
}

// Elapsed returns the elapsed time since Start was called.
func (s *Spinner) Elapsed() time.Duration {
	if s.startTime.IsZero() {
		return 0
	}
	return time.Since(s.startTime)
}

// Init returns the initial command for the spinner animation.
func (s *Spinner) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update handles spinner tick messages.
func (s *Spinner) Update(msg tea.Msg) (*Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner with the source and elapsed time.
func (s *Spinner) View() string {
	status := "Loading"
	if s.source != "" {
		status = fmt.Sprintf("Loading %s", s.source)
	}
	line := fmt.Sprintf("%s %s", s.spinner.View(),
		lipgloss.NewStyle().Foreground(styles.Foreground).Render(status))

	if s.showTime && !s.startTime.IsZero() {
		timeStyle := lipgloss.NewStyle().Foreground(styles.MutedLight)
		line += " " + timeStyle.Render(fmt.Sprintf("(%s)", formatElapsed(s.Elapsed())))
	}

	if s.width > 0 {
		return lipgloss.NewStyle().
			Width(s.width).
			Padding(0, 1).
			Render(line)
	}
	return line
}

// formatElapsed formats a duration for display.
func formatElapsed(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
