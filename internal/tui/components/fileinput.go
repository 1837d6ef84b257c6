package components

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dbmrq/districtboard/internal/tui/styles"
)

// DatasetExtensions are the file extensions the dashboard can open.
var DatasetExtensions = []string{".csv", ".xlsx", ".xlsm"}

// FileInputSubmittedMsg is sent when user submits the file path.
type FileInputSubmittedMsg struct {
	// Path is resolved against the base directory.
	Path string
}

// FileInputCanceledMsg is sent when user cancels file input.
type FileInputCanceledMsg struct{}

// FileInput is a component for entering the path of a dataset to open.
type FileInput struct {
	input      textinput.Model
	width      int
	focused    bool
	baseDir    string
	recent     []string
	fileExists bool
	pathError  string
}

// NewFileInput creates a new FileInput. Relative paths resolve against
// baseDir.
func NewFileInput(baseDir string) *FileInput {
	ti := textinput.New()
	ti.Placeholder = "Enter path to a CSV or XLSX file"
	ti.CharLimit = 512
	ti.Width = 50

	return &FileInput{
		input:   ti,
		baseDir: baseDir,
	}
}

// SetWidth sets the component width.
func (f *FileInput) SetWidth(width int) {
	f.width = width
	f.input.Width = width - 4
}

// SetRecent sets the recently opened paths offered as hints.
func (f *FileInput) SetRecent(paths []string) {
	f.recent = slices.Clone(paths)
}

// Focus focuses the input.
func (f *FileInput) Focus() tea.Cmd {
	f.focused = true
	return f.input.Focus()
}

// Blur removes focus from the input.
func (f *FileInput) Blur() {
	f.focused = false
	f.input.Blur()
}

// Reset clears the input.
func (f *FileInput) Reset() {
	f.input.SetValue("")
	f.validate()
}

// Value returns the current file path.
func (f *FileInput) Value() string {
	return f.input.Value()
}

// SetValue sets the file path.
func (f *FileInput) SetValue(value string) {
	f.input.SetValue(value)
	f.input.CursorEnd()
	f.validate()
}

// FileExists returns whether the current path points to an openable file.
func (f *FileInput) FileExists() bool {
	return f.fileExists
}

// PathError returns why the current path cannot be opened.
func (f *FileInput) PathError() string {
	return f.pathError
}

func (f *FileInput) resolve(path string) string {
	if filepath.IsAbs(path) || f.baseDir == "" {
		return path
	}
	return filepath.Join(f.baseDir, path)
}

// validate checks that the path exists and has a dataset extension.
func (f *FileInput) validate() {
	f.fileExists = false
	f.pathError = ""

	path := strings.TrimSpace(f.input.Value())
	if path == "" {
		return
	}

	info, err := os.Stat(f.resolve(path))
	if err != nil {
		f.pathError = "File not found"
		return
	}
	if info.IsDir() {
		f.pathError = "Path is a directory, not a file"
		return
	}
	if !slices.Contains(DatasetExtensions, strings.ToLower(filepath.Ext(path))) {
		f.pathError = "Unsupported file type (use .csv or .xlsx)"
		return
	}
	f.fileExists = true
}

// complete replaces the input with the first recent path it prefixes.
func (f *FileInput) complete() {
	prefix := strings.TrimSpace(f.input.Value())
	for _, p := range f.recent {
		if strings.HasPrefix(p, prefix) || strings.HasPrefix(filepath.Base(p), prefix) {
			f.SetValue(p)
			return
		}
	}
}

// Update handles messages for the component.
func (f *FileInput) Update(msg tea.Msg) (*FileInput, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			path := strings.TrimSpace(f.input.Value())
			if path == "" || !f.fileExists {
				return f, nil
			}
			resolved := f.resolve(path)
			return f, func() tea.Msg {
				return FileInputSubmittedMsg{Path: resolved}
			}
		case "esc":
			return f, func() tea.Msg {
				return FileInputCanceledMsg{}
			}
		case "tab":
			f.complete()
			return f, nil
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	f.validate()

	return f, cmd
}

// View renders the component.
func (f *FileInput) View() string {
	var b strings.Builder

	b.WriteString(styles.OverlayTitleStyle.Render("📂 Open Dataset"))
	b.WriteString("\n\n")

	subtitleStyle := lipgloss.NewStyle().
		Foreground(styles.MutedLight).
		PaddingLeft(1)
	b.WriteString(subtitleStyle.Render("Enter the path to a district CSV or XLSX file:"))
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(f.input.View())
	b.WriteString("\n\n")

	switch {
	case f.pathError != "":
		b.WriteString(styles.ErrorTextStyle.Render("  ⚠ " + f.pathError))
		b.WriteString("\n")
	case f.fileExists:
		b.WriteString(styles.SuccessTextStyle.Render("  ✓ Ready to open"))
		b.WriteString("\n")
	}

	if len(f.recent) > 0 {
		b.WriteString("\n")
		hintTitleStyle := lipgloss.NewStyle().
			Foreground(styles.Secondary).
			Bold(true)
		b.WriteString(hintTitleStyle.Render("  Recent datasets:"))
		b.WriteString("\n")

		hintStyle := lipgloss.NewStyle().Foreground(styles.Muted)
		for i, p := range f.recent {
			if i >= 5 {
				break
			}
			b.WriteString(hintStyle.Render("    " + p))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(NewShortcutBar(FileInputShortcuts...).View())

	box := styles.FocusedBoxStyle
	if f.width > 0 {
		box = box.Width(f.width - 2)
	}
	return box.Render(b.String())
}
