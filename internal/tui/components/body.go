package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dbmrq/districtboard/internal/tui/styles"
)

// Body is the scrollable dashboard area below the header. Replacing the
// content keeps the scroll offset so a reload does not jump to the top.
type Body struct {
	viewport viewport.Model
	content  string
	title    string
	width    int
	height   int
}

// NewBody creates a new Body component.
func NewBody() *Body {
	return &Body{
		viewport: viewport.New(80, 20),
		title:    "Dashboard",
		width:    80,
		height:   20,
	}
}

// SetTitle sets the title bar text.
func (b *Body) SetTitle(title string) {
	b.title = title
}

// SetSize sets the body dimensions, including the title line.
func (b *Body) SetSize(width, height int) {
	b.width = width
	b.height = height
	b.viewport.Width = width
	b.viewport.Height = max(height-1, 1)
}

// SetContent replaces the rendered dashboard.
func (b *Body) SetContent(content string) {
	offset := b.viewport.YOffset
	b.content = content
	b.viewport.SetContent(content)
	b.viewport.SetYOffset(offset)
}

// Content returns the rendered dashboard.
func (b *Body) Content() string {
	return b.content
}

// LineCount returns the number of content lines.
func (b *Body) LineCount() int {
	if b.content == "" {
		return 0
	}
	return strings.Count(b.content, "\n") + 1
}

// Offset returns the index of the first visible line.
func (b *Body) Offset() int {
	return b.viewport.YOffset
}

// ScrollPercent returns the scroll position as a fraction.
func (b *Body) ScrollPercent() float64 {
	return b.viewport.ScrollPercent()
}

// GotoTop scrolls to the top.
func (b *Body) GotoTop() {
	b.viewport.GotoTop()
}

// GotoBottom scrolls to the bottom.
func (b *Body) GotoBottom() {
	b.viewport.GotoBottom()
}

// Update handles keyboard events for scrolling.
func (b *Body) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			b.viewport.LineUp(1)
		case "down", "j":
			b.viewport.LineDown(1)
		case "pgup", "ctrl+u":
			b.viewport.HalfViewUp()
		case "pgdown", "ctrl+d":
			b.viewport.HalfViewDown()
		case "home", "g":
			b.GotoTop()
		case "end", "G":
			b.GotoBottom()
		default:
			b.viewport, cmd = b.viewport.Update(msg)
		}
	default:
		b.viewport, cmd = b.viewport.Update(msg)
	}

	return cmd
}

// View renders the title line and the visible part of the dashboard.
func (b *Body) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Foreground).
		Bold(true).
		Padding(0, 1)

	scrollInfo := lipgloss.NewStyle().
		Foreground(styles.MutedLight).
		Render(fmt.Sprintf(" %.0f%%", b.viewport.ScrollPercent()*100))

	return titleStyle.Render(b.title) + scrollInfo + "\n" + b.viewport.View()
}
