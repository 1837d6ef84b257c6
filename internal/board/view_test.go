package board

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dbmrq/districtboard/internal/dataset"
	"github.com/dbmrq/districtboard/internal/district"
	"github.com/dbmrq/districtboard/internal/errors"
)

func threeRowTable() []district.Record {
	a := rec("A", "수도권", district.Progressive, 10, 100000, 20)
	b := rec("B", "영남", district.Conservative, 30, 200001, 25)
	c := rec("C", "호남", district.Progressive, 5, 150000, 30.5)
	a.PctFem2030, b.PctFem2030, c.PctFem2030 = 15, 12, 13.5
	return []district.Record{a, b, c}
}

func TestBuild_EndToEnd(t *testing.T) {
	v, err := Build(table(threeRowTable()...), Selection{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if v.Total != 3 || v.KPIs.Count != 3 {
		t.Errorf("Total/Count = %d/%d, want 3/3", v.Total, v.KPIs.Count)
	}

	wantCards := []Card{
		{Label: "선거구 수", Value: "3"},
		{Label: "평균 유권자 수", Value: "150,000"},
		{Label: "평균 고령층 비율(65+)", Value: "25.2%"},
		{Label: "평균 2030 여성 비율", Value: "13.5%"},
		{Label: "평균 경합도(격차%)", Value: "15.0p"},
	}
	if diff := cmp.Diff(wantCards, v.Cards); diff != "" {
		t.Errorf("Cards mismatch (-want +got):\n%s", diff)
	}

	// Default sort is competitiveness ascending.
	var order []string
	for _, r := range v.Rows {
		order = append(order, r.District)
	}
	if diff := cmp.Diff([]string{"C", "A", "B"}, order); diff != "" {
		t.Errorf("table order mismatch (-want +got):\n%s", diff)
	}

	if len(v.Demographics) != 12 {
		t.Errorf("got %d demographic points, want 12", len(v.Demographics))
	}
	if len(v.Scatter) != 3 {
		t.Errorf("got %d scatter points, want 3", len(v.Scatter))
	}

	// Picks default to the first three of the filtered (not sorted) view.
	if diff := cmp.Diff([]string{"A", "B", "C"}, v.Picks); diff != "" {
		t.Errorf("Picks mismatch (-want +got):\n%s", diff)
	}
	if len(v.Trend) != 36 {
		t.Errorf("got %d trend points, want 36", len(v.Trend))
	}
	if v.Selection.SortMetric != district.ColCompetitiveness {
		t.Errorf("SortMetric = %q, want default", v.Selection.SortMetric)
	}
}

const threeRowCSV = `district_name,region,winner_2024,pct_young39,pct_40_50,pct_old65,pct_fem_2030,competitiveness,volatility,prog_left_avg,voters_total,prog_2018,cons_2018,oth_2018,prog_2020,cons_2020,oth_2020,prog_2022,cons_2022,oth_2022,prog_2024,cons_2024,oth_2024
A,수도권,진보,30,35,20,15,10,5,50,100000,40,55,5,41,54,5,42,53,5,43,52,5
B,영남,보수,30,35,25,12,30,15,50,200001,40,55,5,41,54,5,42,53,5,43,52,5
C,호남,진보,30,35,30.5,13.5,5,2.5,50,150000,40,55,5,41,54,5,42,53,5,43,52,5
`

func TestBuild_FromCSV(t *testing.T) {
	tbl, err := dataset.Load(strings.NewReader(threeRowCSV), dataset.Options{Source: "three.csv"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	v, err := Build(tbl, Selection{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	wantCards := []Card{
		{Label: "선거구 수", Value: "3"},
		{Label: "평균 유권자 수", Value: "150,000"},
		{Label: "평균 고령층 비율(65+)", Value: "25.2%"},
		{Label: "평균 2030 여성 비율", Value: "13.5%"},
		{Label: "평균 경합도(격차%)", Value: "15.0p"},
	}
	if diff := cmp.Diff(wantCards, v.Cards); diff != "" {
		t.Errorf("Cards mismatch (-want +got):\n%s", diff)
	}
	if v.Source != "three.csv" {
		t.Errorf("Source = %q, want three.csv", v.Source)
	}

	var order []string
	for _, r := range v.Rows {
		order = append(order, r.District)
	}
	if diff := cmp.Diff([]string{"C", "A", "B"}, order); diff != "" {
		t.Errorf("table order mismatch (-want +got):\n%s", diff)
	}
	if len(v.Trend) != 36 {
		t.Errorf("got %d trend points, want 36", len(v.Trend))
	}
}

func TestBuild_Filtered(t *testing.T) {
	v, err := Build(table(threeRowTable()...), Selection{
		Winners:    []string{district.Progressive},
		SortMetric: district.ColVotersTotal,
		Picks:      []string{"C"},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if v.KPIs.Count != 2 {
		t.Errorf("Count = %d, want 2", v.KPIs.Count)
	}
	if v.Rows[0].District != "C" {
		t.Errorf("largest district should be first, got %q", v.Rows[0].District)
	}
	if diff := cmp.Diff([]string{"A", "C"}, v.PickOptions); diff != "" {
		t.Errorf("PickOptions mismatch (-want +got):\n%s", diff)
	}
	if len(v.Trend) != 12 || v.Trend[0].District != "C" {
		t.Errorf("trend should cover only C, got %d points", len(v.Trend))
	}
}

func TestBuild_ExplicitEmptyPicks(t *testing.T) {
	v, err := Build(table(threeRowTable()...), Selection{Picks: []string{}})
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Trend) != 0 {
		t.Errorf("empty picks should draw no trend, got %d points", len(v.Trend))
	}
}

func TestBuild_PickCount(t *testing.T) {
	v, err := Build(table(threeRowTable()...), Selection{PickCount: 1})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"A"}, v.Picks); diff != "" {
		t.Errorf("Picks mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_EmptyView(t *testing.T) {
	v, err := Build(table(threeRowTable()...), Selection{Regions: []string{"강원"}})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if !v.Empty() {
		t.Error("Empty() should be true")
	}
	for _, c := range v.Cards[1:] {
		if c.Value != Placeholder {
			t.Errorf("card %q = %q, want placeholder", c.Label, c.Value)
		}
	}
	if v.Cards[0].Value != "0" {
		t.Errorf("count card = %q, want 0", v.Cards[0].Value)
	}
	if v.Trend != nil || v.Picks != nil {
		t.Error("trend should be skipped for an empty view")
	}
	if len(v.Rows) != 0 || len(v.Demographics) != 0 {
		t.Error("empty view should have no rows")
	}
}

func TestBuild_UnknownSort(t *testing.T) {
	_, err := Build(table(threeRowTable()...), Selection{SortMetric: "turnout"})
	if !stderrors.Is(err, errors.ErrFilter) {
		t.Fatalf("expected ErrFilter, got %v", err)
	}
}

func TestBuild_Sample(t *testing.T) {
	tbl := sampleTable(t)
	v, err := Build(tbl, Selection{Regions: []string{"수도권"}})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range v.Rows {
		if r.Region != "수도권" {
			t.Errorf("row %q has region %q", r.District, r.Region)
		}
	}
	if v.Source != "sample" {
		t.Errorf("Source = %q, want sample", v.Source)
	}
}
