package components

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dbmrq/districtboard/internal/board"
	"github.com/dbmrq/districtboard/internal/district"
	"github.com/dbmrq/districtboard/internal/tui/styles"
)

// DistrictTable renders the sorted district rows. The sort column header
// is marked with an arrow showing the direction.
type DistrictTable struct {
	rows       []board.TableRow
	sortMetric string
}

// NewDistrictTable creates a new DistrictTable component.
func NewDistrictTable() *DistrictTable {
	return &DistrictTable{sortMetric: district.DefaultSortMetric}
}

// SetRows sets the rows in display order.
func (d *DistrictTable) SetRows(rows []board.TableRow) {
	d.rows = rows
}

// SetSortMetric sets the column the rows are ordered by.
func (d *DistrictTable) SetSortMetric(metric string) {
	d.sortMetric = metric
}

func (d *DistrictTable) headers() []string {
	headers := slices.Clone(district.TableColumns)
	if i := slices.Index(headers, d.sortMetric); i >= 0 {
		arrow := " ↓"
		if district.Ascending(d.sortMetric) {
			arrow = " ↑"
		}
		headers[i] += arrow
	}
	return headers
}

// View renders the table.
func (d *DistrictTable) View() string {
	if len(d.rows) == 0 {
		return styles.MutedTextStyle.Render("No districts match the current filters")
	}

	cells := make([][]string, len(d.rows))
	for i, r := range d.rows {
		cells[i] = r.Cells()
	}

	winnerCol := slices.Index(district.TableColumns, district.ColWinner)
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Secondary).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.BorderColor)).
		Headers(d.headers()...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == winnerCol && row >= 0 && row < len(d.rows) {
				return cellStyle.Foreground(styles.BlocColor(d.rows[row].Winner))
			}
			return cellStyle
		})

	return t.Render()
}
