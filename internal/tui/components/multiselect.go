package components

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dbmrq/districtboard/internal/tui/styles"
)

// MultiSelectDoneMsg is sent when the user applies a selection. Selected
// keeps option order.
type MultiSelectDoneMsg struct {
	ID       string
	Selected []string
}

// MultiSelectCanceledMsg is sent when the user leaves without applying.
type MultiSelectCanceledMsg struct {
	ID string
}

// MultiSelect is an overlay list of checkboxes. The region, winner and
// trend-district controls are all MultiSelects.
type MultiSelect struct {
	id          string
	title       string
	options     []string
	checked     map[string]bool
	cursor      int
	visible     bool
	width       int
	height      int
	scrollStart int
	// hint is shown under the title, e.g. "최대 6개 권장".
	hint string
}

// NewMultiSelect creates a hidden MultiSelect.
func NewMultiSelect(id, title string) *MultiSelect {
	return &MultiSelect{
		id:      id,
		title:   title,
		checked: make(map[string]bool),
		width:   50,
		height:  16,
	}
}

// ID returns the component's unique identifier.
func (s *MultiSelect) ID() string {
	return s.id
}

// SetHint sets the text shown under the title.
func (s *MultiSelect) SetHint(hint string) {
	s.hint = hint
}

// SetSize sets the overlay dimensions.
func (s *MultiSelect) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Open shows the overlay with options, pre-checking selected.
func (s *MultiSelect) Open(options, selected []string) {
	s.options = slices.Clone(options)
	s.checked = make(map[string]bool, len(selected))
	for _, v := range selected {
		s.checked[v] = true
	}
	s.cursor = 0
	s.scrollStart = 0
	s.visible = true
}

// Hide hides the overlay without emitting a message.
func (s *MultiSelect) Hide() {
	s.visible = false
}

// IsVisible returns whether the overlay is visible.
func (s *MultiSelect) IsVisible() bool {
	return s.visible
}

// Toggle flips the option under the cursor.
func (s *MultiSelect) Toggle() {
	if len(s.options) == 0 {
		return
	}
	opt := s.options[s.cursor]
	s.checked[opt] = !s.checked[opt]
}

// ToggleAll checks every option, or clears them all if all are checked.
func (s *MultiSelect) ToggleAll() {
	all := len(s.Selected()) == len(s.options)
	for _, opt := range s.options {
		s.checked[opt] = !all
	}
}

// Selected returns the checked options in option order.
func (s *MultiSelect) Selected() []string {
	out := []string{}
	for _, opt := range s.options {
		if s.checked[opt] {
			out = append(out, opt)
		}
	}
	return out
}

// Cursor returns the highlighted index.
func (s *MultiSelect) Cursor() int {
	return s.cursor
}

// MoveUp moves the cursor up.
func (s *MultiSelect) MoveUp() {
	if s.cursor > 0 {
		s.cursor--
		s.ensureVisible()
	}
}

// MoveDown moves the cursor down.
func (s *MultiSelect) MoveDown() {
	if s.cursor < len(s.options)-1 {
		s.cursor++
		s.ensureVisible()
	}
}

func (s *MultiSelect) visibleRows() int {
	rows := s.height - 6
	if rows < 1 {
		rows = 5
	}
	return rows
}

// ensureVisible ensures the cursor is inside the scroll window.
func (s *MultiSelect) ensureVisible() {
	rows := s.visibleRows()
	if s.cursor < s.scrollStart {
		s.scrollStart = s.cursor
	} else if s.cursor >= s.scrollStart+rows {
		s.scrollStart = s.cursor - rows + 1
	}
}

// Update handles input messages.
func (s *MultiSelect) Update(msg tea.Msg) tea.Cmd {
	if !s.visible {
		return nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			s.MoveUp()
		case "down", "j":
			s.MoveDown()
		case " ", "space", "x":
			s.Toggle()
		case "a":
			s.ToggleAll()
		case "enter":
			s.Hide()
			id, selected := s.id, s.Selected()
			return func() tea.Msg {
				return MultiSelectDoneMsg{ID: id, Selected: selected}
			}
		case "esc", "q":
			s.Hide()
			id := s.id
			return func() tea.Msg {
				return MultiSelectCanceledMsg{ID: id}
			}
		}
	}
	return nil
}

// View renders the overlay.
func (s *MultiSelect) View() string {
	if !s.visible {
		return ""
	}

	var b strings.Builder

	b.WriteString(styles.OverlayTitleStyle.Render(s.title))
	b.WriteString("\n")
	if s.hint != "" {
		b.WriteString(styles.CaptionStyle.Render(s.hint))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(s.options) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.Muted).
			Italic(true)
		b.WriteString(emptyStyle.Render("  No options"))
		b.WriteString("\n")
	} else {
		end := min(s.scrollStart+s.visibleRows(), len(s.options))

		if s.scrollStart > 0 {
			b.WriteString(styles.MutedTextStyle.Render("  ↑ more above"))
			b.WriteString("\n")
		}
		for i := s.scrollStart; i < end; i++ {
			b.WriteString(s.renderOption(s.options[i], i == s.cursor))
			b.WriteString("\n")
		}
		if end < len(s.options) {
			b.WriteString(styles.MutedTextStyle.Render("  ↓ more below"))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedTextStyle.Render(fmt.Sprintf("  %d selected (none = all)", len(s.Selected()))))
	b.WriteString("\n")
	b.WriteString(NewShortcutBar(SelectShortcuts...).View())

	return styles.FocusedBoxStyle.Width(s.width - 2).Render(b.String())
}

func (s *MultiSelect) renderOption(opt string, focused bool) string {
	indicator := "  "
	if focused {
		indicator = styles.CursorStyle.Render("▶ ")
	}

	box := styles.CheckboxUncheckedStyle.Render("[ ]")
	if s.checked[opt] {
		box = styles.CheckboxCheckedStyle.Render("[✓]")
	}

	nameStyle := lipgloss.NewStyle().Foreground(styles.Foreground)
	if focused {
		nameStyle = nameStyle.Bold(true)
	}
	return indicator + box + " " + nameStyle.Render(opt)
}
