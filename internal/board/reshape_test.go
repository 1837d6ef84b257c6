package board

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dbmrq/districtboard/internal/district"
)

func TestDemographicLong(t *testing.T) {
	tbl := table(
		rec("A", "r", "", 1, 1, 20),
		rec("B", "r", "", 1, 1, 25),
	)

	points := DemographicLong(tbl)

	if len(points) != 4*tbl.Len() {
		t.Fatalf("got %d points, want %d", len(points), 4*tbl.Len())
	}

	want := []DemographicPoint{
		{District: "A", Indicator: "청년층(≤39)", Value: 30},
		{District: "B", Indicator: "청년층(≤39)", Value: 30},
		{District: "A", Indicator: "40–50대", Value: 35},
		{District: "B", Indicator: "40–50대", Value: 35},
		{District: "A", Indicator: "65+", Value: 20},
		{District: "B", Indicator: "65+", Value: 25},
		{District: "A", Indicator: "2030 여성", Value: 15},
		{District: "B", Indicator: "2030 여성", Value: 15},
	}
	if diff := cmp.Diff(want, points); diff != "" {
		t.Errorf("DemographicLong() mismatch (-want +got):\n%s", diff)
	}
}

func TestDemographicLong_PreservesIdentityAndSum(t *testing.T) {
	tbl := sampleTable(t)
	points := DemographicLong(tbl)

	if len(points) != 4*tbl.Len() {
		t.Fatalf("got %d points, want %d", len(points), 4*tbl.Len())
	}

	perDistrict := make(map[string]int)
	var got float64
	for _, p := range points {
		perDistrict[p.District]++
		got += p.Value
	}

	var want float64
	for _, r := range tbl.Records() {
		if perDistrict[r.Name] != 4 {
			t.Errorf("district %q has %d points, want 4", r.Name, perDistrict[r.Name])
		}
		for _, ind := range district.Indicators {
			want += r.Metric(ind.Column)
		}
	}
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("value sum = %v, want %v", got, want)
	}
}

func TestDemographicLong_Empty(t *testing.T) {
	if points := DemographicLong(table()); len(points) != 0 {
		t.Errorf("expected no points, got %d", len(points))
	}
}

func TestTrendLong(t *testing.T) {
	tbl := table(
		rec("A", "r", "", 1, 1, 1),
		rec("B", "r", "", 1, 1, 1),
		rec("C", "r", "", 1, 1, 1),
	)

	// Picks order does not matter; table order does.
	points := TrendLong(tbl, []string{"C", "A", "Z"})

	if len(points) != 12*2 {
		t.Fatalf("got %d points, want 24", len(points))
	}
	if diff := cmp.Diff([]string{"A", "C"}, TrendDistricts(points)); diff != "" {
		t.Errorf("district order mismatch (-want +got):\n%s", diff)
	}

	wantFirst := []TrendPoint{
		{District: "A", Year: 2018, Bloc: district.Progressive, Vote: 40},
		{District: "A", Year: 2018, Bloc: district.Conservative, Vote: 55},
		{District: "A", Year: 2018, Bloc: district.Other, Vote: 5},
		{District: "A", Year: 2020, Bloc: district.Progressive, Vote: 41},
	}
	if diff := cmp.Diff(wantFirst, points[:4]); diff != "" {
		t.Errorf("TrendLong() head mismatch (-want +got):\n%s", diff)
	}

	last := points[len(points)-1]
	if last.District != "C" || last.Year != 2024 || last.Bloc != district.Other {
		t.Errorf("unexpected last point %+v", last)
	}
}

func TestTrendLong_TwelvePerPick(t *testing.T) {
	tbl := sampleTable(t)
	for n := 0; n <= tbl.Len(); n++ {
		picks := DefaultPicks(tbl, n)
		if got := len(TrendLong(tbl, picks)); got != 12*len(picks) {
			t.Errorf("TrendLong(%d picks) = %d points, want %d", n, got, 12*len(picks))
		}
	}
}

func TestTrendLong_NoPicks(t *testing.T) {
	if points := TrendLong(table(rec("A", "r", "", 1, 1, 1)), nil); points != nil {
		t.Errorf("expected nil, got %v", points)
	}
}

func TestScatterPoints(t *testing.T) {
	tbl := table(
		rec("A", "r", district.Progressive, 1, 1, 20),
		rec("B", "r", district.Conservative, 1, 1, math.NaN()),
	)

	want := []ScatterPoint{{District: "A", PctOld65: 20, ProgLeftAvg: 50, Winner: district.Progressive}}
	if diff := cmp.Diff(want, ScatterPoints(tbl)); diff != "" {
		t.Errorf("ScatterPoints() mismatch (-want +got):\n%s", diff)
	}
}

func TestTableRow_Cells(t *testing.T) {
	row := TableRow{
		District:        "종로구",
		Region:          "",
		Winner:          district.Progressive,
		Competitiveness: 7.25,
		Volatility:      math.NaN(),
		ProgLeftAvg:     51.46,
		VotersTotal:     128412,
	}

	want := []string{"종로구", Placeholder, district.Progressive, "7.2", Placeholder, "51.5", "128,412"}
	if diff := cmp.Diff(want, row.Cells()); diff != "" {
		t.Errorf("Cells() mismatch (-want +got):\n%s", diff)
	}
}
