package board

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/series"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dbmrq/districtboard/internal/dataset"
	"github.com/dbmrq/districtboard/internal/district"
)

// Placeholder stands in for a value that cannot be computed.
const Placeholder = "-"

var printer = message.NewPrinter(language.Korean)

// KPIs are the five summary values of a view. A mean is NaN when the view
// is empty or the column has no values in it.
type KPIs struct {
	Count               int     `json:"count"`
	MeanVoters          float64 `json:"mean_voters"`
	MeanOld65           float64 `json:"mean_pct_old65"`
	MeanFem2030         float64 `json:"mean_pct_fem_2030"`
	MeanCompetitiveness float64 `json:"mean_competitiveness"`
}

// Card is one labelled KPI display string.
type Card struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Summarize computes the KPIs of t. Missing cells are skipped.
func Summarize(t *dataset.Table) KPIs {
	k := KPIs{
		Count:               t.Len(),
		MeanVoters:          math.NaN(),
		MeanOld65:           math.NaN(),
		MeanFem2030:         math.NaN(),
		MeanCompetitiveness: math.NaN(),
	}
	if k.Count == 0 {
		return k
	}

	df := t.Frame()
	k.MeanVoters = meanSkipNA(df.Col(district.ColVotersTotal))
	k.MeanOld65 = meanSkipNA(df.Col(district.ColPctOld65))
	k.MeanFem2030 = meanSkipNA(df.Col(district.ColPctFem2030))
	k.MeanCompetitiveness = meanSkipNA(df.Col(district.ColCompetitiveness))
	return k
}

func meanSkipNA(s series.Series) float64 {
	var keep []int
	for i, na := range s.IsNaN() {
		if !na {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return math.NaN()
	}
	return s.Subset(keep).Mean()
}

// CountText renders the row count with thousands separators.
func (k KPIs) CountText() string {
	return printer.Sprintf("%d", k.Count)
}

// VotersText renders mean voters truncated to an integer, e.g. "176,012".
func (k KPIs) VotersText() string {
	if math.IsNaN(k.MeanVoters) {
		return Placeholder
	}
	return printer.Sprintf("%d", int64(k.MeanVoters))
}

// Old65Text renders the mean elderly share, e.g. "19.3%".
func (k KPIs) Old65Text() string {
	return percent(k.MeanOld65)
}

// Fem2030Text renders the mean young-female share.
func (k KPIs) Fem2030Text() string {
	return percent(k.MeanFem2030)
}

// CompetitivenessText renders the mean margin in points, e.g. "21.0p".
func (k KPIs) CompetitivenessText() string {
	if math.IsNaN(k.MeanCompetitiveness) {
		return Placeholder
	}
	return fmt.Sprintf("%.1fp", k.MeanCompetitiveness)
}

func percent(v float64) string {
	if math.IsNaN(v) {
		return Placeholder
	}
	return fmt.Sprintf("%.1f%%", v)
}

// Cards returns the KPI row in display order.
func (k KPIs) Cards() []Card {
	return []Card{
		{Label: "선거구 수", Value: k.CountText()},
		{Label: "평균 유권자 수", Value: k.VotersText()},
		{Label: "평균 고령층 비율(65+)", Value: k.Old65Text()},
		{Label: "평균 2030 여성 비율", Value: k.Fem2030Text()},
		{Label: "평균 경합도(격차%)", Value: k.CompetitivenessText()},
	}
}
