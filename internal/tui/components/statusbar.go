package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dbmrq/districtboard/internal/tui/styles"
)

// Dataset states shown in the status bar.
const (
	DataReady   = "ready"
	DataLoading = "loading"
	DataStale   = "stale"
	DataError   = "error"
)

// StatusBarData contains the data to display in the status bar.
type StatusBarData struct {
	DataState     string // one of the Data* constants
	Watching      bool
	LoadedAt      time.Time
	SortMetric    string
	Message       string
	ShowShortcuts bool
	Shortcuts     []ShortcutDef // overrides DashboardShortcuts
}

// StatusBar is a component that displays dataset status and shortcuts.
type StatusBar struct {
	data  StatusBarData
	width int
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar() *StatusBar {
	return &StatusBar{
		data: StatusBarData{
			DataState:     DataLoading,
			ShowShortcuts: true,
		},
	}
}

// SetData updates the status bar data.
func (s *StatusBar) SetData(data StatusBarData) {
	s.data = data
}

// SetDataState sets the dataset state.
func (s *StatusBar) SetDataState(state string) {
	s.data.DataState = state
}

// SetLoadedAt records when the current table was loaded.
func (s *StatusBar) SetLoadedAt(t time.Time) {
	s.data.LoadedAt = t
}

// SetWatching sets whether the file watcher is active.
func (s *StatusBar) SetWatching(watching bool) {
	s.data.Watching = watching
}

// SetSortMetric sets the sort metric shown on the left.
func (s *StatusBar) SetSortMetric(metric string) {
	s.data.SortMetric = metric
}

// SetMessage sets an optional status message.
func (s *StatusBar) SetMessage(message string) {
	s.data.Message = message
}

// SetShowShortcuts sets whether to show keyboard shortcuts.
func (s *StatusBar) SetShowShortcuts(show bool) {
	s.data.ShowShortcuts = show
}

// SetShortcuts overrides the default shortcut set.
func (s *StatusBar) SetShortcuts(shortcuts []ShortcutDef) {
	s.data.Shortcuts = shortcuts
}

// SetWidth sets the width of the status bar.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// View renders the status bar.
func (s *StatusBar) View() string {
	sep := lipgloss.NewStyle().
		Foreground(styles.Muted).
		Render(" │ ")
	label := lipgloss.NewStyle().Foreground(styles.MutedLight)
	value := lipgloss.NewStyle().Foreground(styles.Foreground)

	left := s.renderDataState()
	if !s.data.LoadedAt.IsZero() {
		left += sep + label.Render("Loaded: ") + value.Render(s.data.LoadedAt.Format("15:04:05"))
	}
	if s.data.SortMetric != "" {
		left += sep + label.Render("Sort: ") + value.Render(s.data.SortMetric)
	}
	if s.data.Watching {
		left += sep + lipgloss.NewStyle().Foreground(styles.Secondary).Render("◉ watching")
	}
	if s.data.Message != "" {
		msgStyle := lipgloss.NewStyle().
			Foreground(styles.MutedLight).
			Italic(true)
		left += sep + msgStyle.Render(s.data.Message)
	}

	right := ""
	if s.data.ShowShortcuts {
		shortcuts := s.data.Shortcuts
		if len(shortcuts) == 0 {
			shortcuts = DashboardShortcuts
		}
		right = NewShortcutBar(shortcuts...).View()
	}

	containerStyle := styles.StatusBarStyle
	if s.width > 0 {
		containerStyle = containerStyle.Width(s.width)

		padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
		if padding > 0 {
			return containerStyle.Render(left + strings.Repeat(" ", padding) + right)
		}
	}

	return containerStyle.Render(left + "  " + right)
}

// renderDataState renders the dataset state indicator.
func (s *StatusBar) renderDataState() string {
	switch s.data.DataState {
	case DataReady:
		return lipgloss.NewStyle().Foreground(styles.Success).Render("● Ready")
	case DataLoading:
		return lipgloss.NewStyle().Foreground(styles.Secondary).Render("◐ Loading")
	case DataStale:
		return lipgloss.NewStyle().Foreground(styles.Warning).Render("⟳ Changed")
	case DataError:
		return lipgloss.NewStyle().Foreground(styles.Error).Render("✗ Error")
	default:
		return lipgloss.NewStyle().Foreground(styles.Muted).Render("○ Idle")
	}
}
