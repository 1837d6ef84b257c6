// Package tui provides the terminal dashboard.
package tui

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dbmrq/districtboard/internal/board"
	"github.com/dbmrq/districtboard/internal/dataset"
	"github.com/dbmrq/districtboard/internal/district"
	"github.com/dbmrq/districtboard/internal/logging"
	"github.com/dbmrq/districtboard/internal/report"
	"github.com/dbmrq/districtboard/internal/tui/components"
	"github.com/dbmrq/districtboard/internal/tui/styles"
)

// Overlay IDs, also used to route selection messages.
const (
	selectRegion = "region"
	selectWinner = "winner"
	selectPicks  = "picks"
	pickSort     = "sort"
)

// Loader reads the dataset at path.
type Loader func(path string) (*dataset.Table, error)

// Options configure a new Model.
type Options struct {
	// Table is shown immediately. When nil and Path is set, Init loads Path.
	Table *dataset.Table
	// Path is the file behind Table. Empty means the bundled sample, which
	// cannot be reloaded.
	Path      string
	Selection board.Selection
	Load      Loader
	// BaseDir resolves relative paths typed into the open dialog.
	BaseDir   string
	Recent    []string
	SessionID string
	Watching  bool
	// OnLoaded is called after every successful file load.
	OnLoaded func(path string, rows int)
	// Follow is called when a different file was opened and reports
	// whether that file is now watched for changes.
	Follow func(path string) bool
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	// Components
	header    *components.Header
	statusBar *components.StatusBar
	body      *components.Body
	cards     *components.Cards
	bars      *components.DemographicBars
	scatter   *components.Scatter
	trend     *components.Trend
	table     *components.DistrictTable
	spinner   *components.Spinner

	// Overlays
	helpOverlay  *components.HelpOverlay
	fileInput    *components.FileInput
	regionSelect *components.MultiSelect
	winnerSelect *components.MultiSelect
	pickSelect   *components.MultiSelect
	sortPicker   *components.Picker

	// State
	data      *dataset.Table
	path      string
	sel       board.Selection
	view      *board.View
	loading   bool
	showOpen  bool
	lastError string

	load      Loader
	onLoaded  func(path string, rows int)
	follow    func(path string) bool
	sessionID string

	// Window dimensions
	width  int
	height int

	quitting bool
}

// New creates a new dashboard model.
func New(opts Options) *Model {
	m := &Model{
		header:       components.NewHeader(),
		statusBar:    components.NewStatusBar(),
		body:         components.NewBody(),
		cards:        components.NewCards(),
		bars:         components.NewDemographicBars(),
		scatter:      components.NewScatter(),
		trend:        components.NewTrend(),
		table:        components.NewDistrictTable(),
		spinner:      components.NewSpinner(),
		helpOverlay:  components.NewHelpOverlay(),
		fileInput:    components.NewFileInput(opts.BaseDir),
		regionSelect: components.NewMultiSelect(selectRegion, "권역 선택"),
		winnerSelect: components.NewMultiSelect(selectWinner, "2024 승자(진영)"),
		pickSelect:   components.NewMultiSelect(selectPicks, "선택 선거구"),
		sortPicker:   components.NewPicker(pickSort, "정렬 기준"),
		path:         opts.Path,
		sel:          opts.Selection,
		load:         opts.Load,
		onLoaded:     opts.OnLoaded,
		follow:       opts.Follow,
		sessionID:    opts.SessionID,
	}
	if m.load == nil {
		m.load = func(path string) (*dataset.Table, error) {
			return dataset.LoadFile(path, dataset.Options{})
		}
	}

	m.pickSelect.SetHint("추이 차트에 표시할 선거구")
	m.fileInput.SetRecent(opts.Recent)
	m.header.SetSessionID(opts.SessionID)
	m.statusBar.SetWatching(opts.Watching)

	options := make([]components.PickerOption, len(district.SortMetrics))
	for i, metric := range district.SortMetrics {
		desc := "높은 순"
		if district.Ascending(metric) {
			desc = "낮은 순"
		}
		options[i] = components.PickerOption{Value: metric, Description: desc}
	}
	m.sortPicker.SetOptions(options)

	if opts.Table != nil {
		m.setTable(opts.Table, time.Now())
	}
	return m
}

// Init is the Bubble Tea initialization function.
func (m *Model) Init() tea.Cmd {
	if m.data == nil && m.path != "" {
		return m.loadCmd(m.path)
	}
	return nil
}

// loadCmd reads path in the background.
func (m *Model) loadCmd(path string) tea.Cmd {
	m.loading = true
	m.spinner.Start(filepath.Base(path))
	m.statusBar.SetDataState(components.DataLoading)

	load := m.load
	read := func() tea.Msg {
		t, err := load(path)
		if err != nil {
			return DatasetErrorMsg{Path: path, Err: err}
		}
		return DatasetLoadedMsg{Table: t, Path: path, LoadedAt: time.Now()}
	}
	return tea.Batch(read, m.spinner.Init())
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Overlays capture input while visible.
	if _, ok := msg.(tea.KeyMsg); ok {
		if cmd, handled := m.updateOverlays(msg); handled {
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case DatasetLoadedMsg:
		m.loading = false
		opened := msg.Path != m.path
		m.path = msg.Path
		m.lastError = ""
		if opened {
			m.resetSelection(msg.Table)
			if m.follow != nil {
				m.statusBar.SetWatching(m.follow(msg.Path))
			}
		}
		m.setTable(msg.Table, msg.LoadedAt)
		logging.Info("dataset loaded", "path", msg.Path, "rows", msg.Table.Len())
		if m.onLoaded != nil && msg.Path != "" {
			m.onLoaded(msg.Path, msg.Table.Len())
		}
		return m, nil

	case DatasetErrorMsg:
		m.loading = false
		m.lastError = msg.Err.Error()
		m.statusBar.SetDataState(components.DataError)
		m.statusBar.SetMessage(filepath.Base(msg.Path))
		logging.Warn("dataset load failed", "path", msg.Path, "error", msg.Err)
		return m, nil

	case DatasetChangedMsg:
		if m.path == "" || m.loading || msg.Path != m.path {
			return m, nil
		}
		m.statusBar.SetDataState(components.DataStale)
		logging.Debug("reloading changed dataset", "path", msg.Path, "at", msg.At)
		return m, m.loadCmd(m.path)

	case ReloadMsg:
		if m.path == "" || m.loading {
			return m, nil
		}
		return m, m.loadCmd(m.path)

	case components.MultiSelectDoneMsg:
		switch msg.ID {
		case selectRegion:
			m.sel.Regions = msg.Selected
			m.sel.Picks = nil
		case selectWinner:
			m.sel.Winners = msg.Selected
			m.sel.Picks = nil
		case selectPicks:
			m.sel.Picks = msg.Selected
		}
		m.rebuild()
		return m, nil

	case components.PickerSelectedMsg:
		if msg.ID == pickSort {
			m.sel.SortMetric = msg.Value
			m.rebuild()
		}
		return m, nil

	case components.FileInputSubmittedMsg:
		m.closeOpen()
		return m, m.loadCmd(msg.Path)

	case components.FileInputCanceledMsg:
		m.closeOpen()
		return m, nil

	case ErrorMsg:
		m.lastError = msg.Error
		return m, nil

	case QuitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// updateOverlays forwards a key to the visible overlay, if any.
func (m *Model) updateOverlays(msg tea.Msg) (tea.Cmd, bool) {
	switch {
	case m.helpOverlay.IsVisible():
		return m.helpOverlay.Update(msg), true
	case m.showOpen:
		var cmd tea.Cmd
		m.fileInput, cmd = m.fileInput.Update(msg)
		return cmd, true
	case m.regionSelect.IsVisible():
		return m.regionSelect.Update(msg), true
	case m.winnerSelect.IsVisible():
		return m.winnerSelect.Update(msg), true
	case m.pickSelect.IsVisible():
		return m.pickSelect.Update(msg), true
	case m.sortPicker.IsVisible():
		return m.sortPicker.Update(msg), true
	}
	return nil, false
}

// handleKeyPress handles keyboard input on the dashboard.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.helpOverlay.Toggle()
		return m, nil

	case "o":
		m.showOpen = true
		m.fileInput.Reset()
		return m, m.fileInput.Focus()

	case "ctrl+r":
		return m.Update(ReloadMsg{})

	case "r":
		if m.data != nil {
			m.regionSelect.Open(board.RegionOptions(m.data), m.sel.Regions)
		}
		return m, nil

	case "w":
		m.winnerSelect.Open(district.WinnerCategories, m.sel.Winners)
		return m, nil

	case "t":
		if m.view != nil {
			m.pickSelect.Open(m.view.PickOptions, m.view.Picks)
		}
		return m, nil

	case "s":
		if m.view != nil {
			m.sortPicker.SetCurrent(m.view.Selection.SortMetric)
			m.sortPicker.Show()
		}
		return m, nil
	}

	return m, m.body.Update(msg)
}

func (m *Model) closeOpen() {
	m.showOpen = false
	m.fileInput.Blur()
}

// setTable replaces the dataset and rebuilds the view.
func (m *Model) setTable(t *dataset.Table, at time.Time) {
	m.data = t
	m.header.SetSource(t.Source())
	m.statusBar.SetLoadedAt(at)
	m.statusBar.SetDataState(components.DataReady)
	m.statusBar.SetMessage("")
	m.rebuild()
}

// resetSelection prepares the selection for a newly opened file: picks go
// back to the default and regions the file does not have are dropped.
func (m *Model) resetSelection(t *dataset.Table) {
	m.sel.Picks = nil
	if len(m.sel.Regions) == 0 {
		return
	}
	available := board.RegionOptions(t)
	var kept []string
	for _, r := range m.sel.Regions {
		if slices.Contains(available, r) {
			kept = append(kept, r)
		}
	}
	m.sel.Regions = kept
}

// rebuild runs the board pipeline for the current selection. On error the
// previous view stays on screen.
func (m *Model) rebuild() {
	if m.data == nil {
		return
	}
	v, err := board.Build(m.data, m.sel)
	if err != nil {
		m.lastError = err.Error()
		return
	}
	m.view = v
	m.sel = v.Selection

	m.header.SetCounts(v.Total, v.KPIs.Count)
	m.statusBar.SetSortMetric(v.Selection.SortMetric)
	m.cards.SetCards(v.Cards)
	m.bars.SetPoints(v.Demographics)
	m.scatter.SetPoints(v.Scatter)
	m.table.SetRows(v.Rows)
	m.table.SetSortMetric(v.Selection.SortMetric)
	m.trend.SetPoints(v.Trend)
	m.body.SetTitle(filterSummary(v.Selection))
	m.body.SetContent(m.renderBody())
}

// filterSummary describes the active filters in one line.
func filterSummary(sel board.Selection) string {
	join := func(v []string) string {
		if len(v) == 0 {
			return "전체"
		}
		return strings.Join(v, ", ")
	}
	return fmt.Sprintf("권역: %s │ 승자: %s │ 정렬: %s", join(sel.Regions), join(sel.Winners), sel.SortMetric)
}

// renderBody lays out the dashboard sections.
func (m *Model) renderBody() string {
	var b strings.Builder

	b.WriteString(m.cards.View())
	b.WriteString("\n\n")

	if m.view.Empty() {
		b.WriteString(styles.WarningTextStyle.Render("선택한 조건에 맞는 선거구가 없습니다. 필터를 조정해 보세요."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(styles.SectionTitleStyle.Render("[" + report.SectionEnvironment + "]"))
	b.WriteString("\n")
	b.WriteString(m.bars.View())
	b.WriteString("\n\n")
	b.WriteString(styles.CaptionStyle.Render(report.CaptionScatter))
	b.WriteString("\n")
	b.WriteString(m.scatter.View())
	b.WriteString("\n\n")

	b.WriteString(styles.SectionTitleStyle.Render("[" + report.SectionPolitics + "]"))
	b.WriteString(" ")
	b.WriteString(styles.CaptionStyle.Render(report.CaptionTable))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	b.WriteString(styles.CaptionStyle.Render(report.CaptionTrend))
	b.WriteString("\n")
	b.WriteString(m.trend.View())
	b.WriteString("\n\n")
	b.WriteString(styles.CaptionStyle.Render(report.CaptionTip))

	return b.String()
}

// resize lays components out for a width x height terminal.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.header.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.cards.SetWidth(width)
	m.bars.SetWidth(width)
	m.scatter.SetSize(min(width-10, 80), 12)
	m.body.SetSize(width, max(height-3, 3))
	m.fileInput.SetWidth(min(width, 80))
	overlayHeight := max(min(height-4, 20), 8)
	m.regionSelect.SetSize(50, overlayHeight)
	m.winnerSelect.SetSize(50, overlayHeight)
	m.pickSelect.SetSize(50, overlayHeight)
	m.sortPicker.SetSize(50, overlayHeight)
	m.helpOverlay.SetSize(60, overlayHeight)
	if m.view != nil {
		m.body.SetContent(m.renderBody())
	}
}

// Selection returns the current control state.
func (m *Model) Selection() board.Selection {
	return m.sel
}

// CurrentView returns the last successfully built view.
func (m *Model) CurrentView() *board.View {
	return m.view
}

// LastError returns the message of the last failure, if any.
func (m *Model) LastError() string {
	return m.lastError
}

// Path returns the file behind the current table.
func (m *Model) Path() string {
	return m.path
}

// View renders the TUI.
func (m *Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var view strings.Builder
	view.WriteString(m.header.View())
	view.WriteString("\n")

	switch {
	case m.data == nil && m.loading:
		view.WriteString(m.spinner.View())
		view.WriteString("\n")
	case m.data == nil:
		view.WriteString(styles.MutedTextStyle.Render("No dataset loaded. Press o to open a file."))
		view.WriteString("\n")
	default:
		view.WriteString(m.body.View())
		view.WriteString("\n")
	}

	if m.data != nil && m.loading {
		view.WriteString(m.spinner.View())
		view.WriteString("\n")
	}
	if m.lastError != "" {
		view.WriteString(styles.ErrorTextStyle.Render("Error: " + m.lastError))
		view.WriteString("\n")
	}

	view.WriteString(m.statusBar.View())

	if overlay := m.overlayView(); overlay != "" {
		return m.renderOverlay(overlay)
	}
	return view.String()
}

func (m *Model) overlayView() string {
	switch {
	case m.helpOverlay.IsVisible():
		return m.helpOverlay.View()
	case m.showOpen:
		return m.fileInput.View()
	case m.regionSelect.IsVisible():
		return m.regionSelect.View()
	case m.winnerSelect.IsVisible():
		return m.winnerSelect.View()
	case m.pickSelect.IsVisible():
		return m.pickSelect.View()
	case m.sortPicker.IsVisible():
		return m.sortPicker.View()
	}
	return ""
}

// renderOverlay centers an overlay on the screen.
func (m *Model) renderOverlay(overlay string) string {
	if m.width == 0 || m.height == 0 {
		return overlay
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
}
