package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dbmrq/districtboard/internal/board"
	"github.com/dbmrq/districtboard/internal/tui/styles"
)

// Cards renders the KPI row. Cards wrap onto further lines when the row
// is wider than the terminal.
type Cards struct {
	cards []board.Card
	width int
}

// NewCards creates a new Cards component.
func NewCards() *Cards {
	return &Cards{}
}

// SetCards sets the KPI cards to render.
func (c *Cards) SetCards(cards []board.Card) {
	c.cards = cards
}

// SetWidth sets the available width.
func (c *Cards) SetWidth(width int) {
	c.width = width
}

// View renders the cards.
func (c *Cards) View() string {
	if len(c.cards) == 0 {
		return ""
	}

	var lines, row []string
	rowWidth := 0
	for _, card := range c.cards {
		box := styles.CardStyle.Render(
			styles.CardLabelStyle.Render(card.Label) + "\n" +
				styles.CardValueStyle.Render(card.Value),
		)
		w := lipgloss.Width(box)
		if c.width > 0 && len(row) > 0 && rowWidth+w > c.width {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, box)
		rowWidth += w
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
