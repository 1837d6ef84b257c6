// Package report renders a dashboard view without the interactive UI.
// It provides the same content as the TUI (KPI row, demographic table,
// sortable district table and trend summary) as plain text or as JSON
// for scripts and CI jobs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dbmrq/districtboard/internal/board"
	"github.com/dbmrq/districtboard/internal/district"
)

// Title is the dashboard heading shared by every shell.
const Title = "전략지역구 대시보드 (예시 데이터)"

// Section and caption texts.
const (
	SectionEnvironment = "선거환경"
	SectionPolitics    = "정치지형"
	CaptionScatter     = "상관 관계(예시): 고령층 비율 ↔ 진보정당 득표력 평균"
	CaptionTable       = "경합도 낮음 → 우세 / 높음 → 박빙"
	CaptionTrend       = "정당성향별 득표 추이 (2018→2024)"
	CaptionTip         = "Tip) 필터로 권역/승자/정렬 기준을 바꿔 보세요. 파일을 열면 실제 데이터를 바로 적용할 수 있습니다."
)

// OutputFormat defines the report encoding.
type OutputFormat string

const (
	// OutputFormatText is the default human-readable text output.
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON produces structured JSON output.
	OutputFormatJSON OutputFormat = "json"
)

// Config configures the reporter.
type Config struct {
	// OutputFormat is the format for output (text or json).
	OutputFormat OutputFormat
	// Writer receives the report.
	Writer io.Writer
	// SessionID tags the JSON output; it matches the session_id in the logs.
	SessionID string
	// Verbose adds the demographic table to text output.
	Verbose bool
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{OutputFormat: OutputFormatText}
}

// Reporter writes views in the configured format.
type Reporter struct {
	config *Config
	now    func() time.Time
}

// New creates a reporter. A nil config uses the defaults.
func New(config *Config) *Reporter {
	if config == nil {
		config = DefaultConfig()
	}
	return &Reporter{config: config, now: time.Now}
}

// JSONOutput is the complete JSON report.
type JSONOutput struct {
	SessionID   string `json:"session_id,omitempty"`
	GeneratedAt string `json:"generated_at"`
	Shown       int    `json:"shown"`
	*board.View
}

// Write renders v.
func (r *Reporter) Write(v *board.View) error {
	w := r.config.Writer
	if w == nil {
		return nil
	}
	if r.config.OutputFormat == OutputFormatJSON {
		return r.writeJSON(w, v)
	}
	return r.writeText(w, v)
}

func (r *Reporter) writeJSON(w io.Writer, v *board.View) error {
	out := JSONOutput{
		SessionID:   r.config.SessionID,
		GeneratedAt: r.now().Format(time.RFC3339),
		Shown:       v.KPIs.Count,
		View:        v,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func (r *Reporter) writeText(w io.Writer, v *board.View) error {
	var sb strings.Builder

	sb.WriteString(Title + "\n")
	fmt.Fprintf(&sb, "Source: %s (%d rows, %d shown)\n", v.Source, v.Total, v.KPIs.Count)
	fmt.Fprintf(&sb, "Filters: region=%s winner=%s sort=%s\n",
		listOrAll(v.Selection.Regions), listOrAll(v.Selection.Winners), v.Selection.SortMetric)
	sb.WriteString(rule())

	for _, c := range v.Cards {
		fmt.Fprintf(&sb, "%s: %s\n", c.Label, c.Value)
	}
	sb.WriteString(rule())

	if r.config.Verbose {
		fmt.Fprintf(&sb, "[%s]\n", SectionEnvironment)
		sb.WriteString(DemographicTable(v.Demographics))
		sb.WriteString("\n\n")
	}

	fmt.Fprintf(&sb, "[%s] %s\n", SectionPolitics, CaptionTable)
	sb.WriteString(DistrictTable(v.Rows))
	sb.WriteString("\n\n")

	sb.WriteString(CaptionTrend + "\n")
	if v.Empty() {
		sb.WriteString("  " + board.Placeholder + "\n")
	}
	for _, line := range TrendLines(v.Trend) {
		sb.WriteString("  " + line + "\n")
	}
	sb.WriteString(rule())

	_, err := io.WriteString(w, sb.String())
	return err
}

func rule() string {
	return strings.Repeat("─", 60) + "\n"
}

func listOrAll(items []string) string {
	if len(items) == 0 {
		return "*"
	}
	return strings.Join(items, ",")
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

// DistrictTable renders the sortable table rows as a bordered text table.
func DistrictTable(rows []board.TableRow) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = r.Cells()
	}
	return newTable(district.TableColumns, cells)
}

// DemographicTable pivots the demographic long form back to one row per
// district, districts ordered by name.
func DemographicTable(points []board.DemographicPoint) string {
	headers := []string{district.ColDistrict}
	for _, ind := range district.Indicators {
		headers = append(headers, ind.Label)
	}

	values := make(map[string]map[string]float64)
	var names []string
	for _, p := range points {
		if _, ok := values[p.District]; !ok {
			values[p.District] = make(map[string]float64)
			names = append(names, p.District)
		}
		values[p.District][p.Indicator] = p.Value
	}
	slices.Sort(names)

	rows := make([][]string, len(names))
	for i, name := range names {
		row := []string{name}
		for _, ind := range district.Indicators {
			v, ok := values[name][ind.Label]
			if !ok {
				row = append(row, board.Placeholder)
				continue
			}
			row = append(row, board.FormatFloat(v, 1))
		}
		rows[i] = row
	}
	return newTable(headers, rows)
}

// TrendLines summarizes the trend long form as one line per district and
// bloc, e.g. "중구: 진보 41.0 → 43.5 → 40.2 → 45.1".
func TrendLines(points []board.TrendPoint) []string {
	var lines []string
	for _, name := range board.TrendDistricts(points) {
		for _, b := range district.Blocs {
			var votes []string
			for _, p := range points {
				if p.District == name && p.Bloc == b.Label {
					votes = append(votes, board.FormatFloat(p.Vote, 1))
				}
			}
			lines = append(lines, fmt.Sprintf("%s: %s %s", name, b.Label, strings.Join(votes, " → ")))
		}
	}
	return lines
}
