package components

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dbmrq/districtboard/internal/tui/styles"
)

// PickerOption is one entry of a Picker.
type PickerOption struct {
	Value string
	// Description is shown dimmed after the value.
	Description string
}

// PickerSelectedMsg is sent when an option is chosen.
type PickerSelectedMsg struct {
	ID    string
	Value string
}

// PickerClosedMsg is sent when the picker is closed without selection.
type PickerClosedMsg struct {
	ID string
}

// Picker is a single-choice overlay. The sort metric control uses it.
type Picker struct {
	id          string
	title       string
	options     []PickerOption
	selected    int
	current     string
	visible     bool
	width       int
	height      int
	scrollStart int
}

// NewPicker creates a new Picker component.
func NewPicker(id, title string) *Picker {
	return &Picker{
		id:     id,
		title:  title,
		width:  50,
		height: 12,
	}
}

// SetOptions sets the available options and highlights the current one.
func (p *Picker) SetOptions(options []PickerOption) {
	p.options = slices.Clone(options)
	p.selected = 0
	p.SetCurrent(p.current)
}

// SetCurrent sets the active value.
func (p *Picker) SetCurrent(value string) {
	p.current = value
	for i, o := range p.options {
		if o.Value == value {
			p.selected = i
			p.ensureVisible()
			break
		}
	}
}

// SetSize sets the picker dimensions.
func (p *Picker) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Current returns the active value.
func (p *Picker) Current() string {
	return p.current
}

// Highlighted returns the option under the cursor.
func (p *Picker) Highlighted() *PickerOption {
	if len(p.options) == 0 || p.selected >= len(p.options) {
		return nil
	}
	return &p.options[p.selected]
}

// Show makes the picker visible.
func (p *Picker) Show() {
	p.visible = true
}

// Hide hides the picker.
func (p *Picker) Hide() {
	p.visible = false
}

// IsVisible returns whether the picker is visible.
func (p *Picker) IsVisible() bool {
	return p.visible
}

// MoveUp moves the selection up.
func (p *Picker) MoveUp() {
	if p.selected > 0 {
		p.selected--
		p.ensureVisible()
	}
}

// MoveDown moves the selection down.
func (p *Picker) MoveDown() {
	if p.selected < len(p.options)-1 {
		p.selected++
		p.ensureVisible()
	}
}

func (p *Picker) visibleRows() int {
	rows := p.height - 4
	if rows < 1 {
		rows = 5
	}
	return rows
}

// ensureVisible ensures the selected item is visible in the scroll area.
func (p *Picker) ensureVisible() {
	rows := p.visibleRows()
	if p.selected < p.scrollStart {
		p.scrollStart = p.selected
	} else if p.selected >= p.scrollStart+rows {
		p.scrollStart = p.selected - rows + 1
	}
}

// Update handles input messages.
func (p *Picker) Update(msg tea.Msg) tea.Cmd {
	if !p.visible {
		return nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			p.MoveUp()
		case "down", "j":
			p.MoveDown()
		case "enter":
			if opt := p.Highlighted(); opt != nil {
				id, value := p.id, opt.Value
				p.current = value
				p.Hide()
				return func() tea.Msg {
					return PickerSelectedMsg{ID: id, Value: value}
				}
			}
		case "esc", "q":
			p.Hide()
			id := p.id
			return func() tea.Msg {
				return PickerClosedMsg{ID: id}
			}
		}
	}
	return nil
}

// View renders the picker.
func (p *Picker) View() string {
	if !p.visible {
		return ""
	}

	var b strings.Builder

	b.WriteString(styles.OverlayTitleStyle.Render(p.title))
	b.WriteString("\n\n")

	if len(p.options) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.Muted).
			Italic(true)
		b.WriteString(emptyStyle.Render("  No options"))
		b.WriteString("\n")
	} else {
		end := min(p.scrollStart+p.visibleRows(), len(p.options))

		if p.scrollStart > 0 {
			b.WriteString(styles.MutedTextStyle.Render("  ↑ more above"))
			b.WriteString("\n")
		}
		for i := p.scrollStart; i < end; i++ {
			b.WriteString(p.renderOption(p.options[i], i == p.selected))
			b.WriteString("\n")
		}
		if end < len(p.options) {
			b.WriteString(styles.MutedTextStyle.Render("  ↓ more below"))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(NewShortcutBar(PickerShortcuts...).View())

	return styles.FocusedBoxStyle.Width(p.width - 2).Render(b.String())
}

// renderOption renders a single option.
func (p *Picker) renderOption(opt PickerOption, selected bool) string {
	indicator := "  "
	if selected {
		indicator = styles.CursorStyle.Render("▶ ")
	}

	currentIndicator := ""
	if opt.Value == p.current {
		currentIndicator = lipgloss.NewStyle().
			Foreground(styles.Success).
			Render(" ✓ current")
	}

	nameStyle := lipgloss.NewStyle().Foreground(styles.Foreground)
	if selected {
		nameStyle = nameStyle.Bold(true)
	}

	desc := ""
	if opt.Description != "" {
		desc = " - " + lipgloss.NewStyle().Foreground(styles.MutedLight).Render(opt.Description)
	}

	return indicator + nameStyle.Render(opt.Value) + currentIndicator + desc
}
