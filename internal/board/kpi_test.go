package board

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSummarize(t *testing.T) {
	tbl := table(
		rec("A", "r", "", 10, 100000, 20),
		rec("B", "r", "", 20, 200000, 30),
	)

	k := Summarize(tbl)

	if k.Count != 2 {
		t.Errorf("Count = %d, want 2", k.Count)
	}
	if k.MeanVoters != 150000 {
		t.Errorf("MeanVoters = %v, want 150000", k.MeanVoters)
	}
	if k.MeanOld65 != 25 {
		t.Errorf("MeanOld65 = %v, want 25", k.MeanOld65)
	}
	if k.MeanCompetitiveness != 15 {
		t.Errorf("MeanCompetitiveness = %v, want 15", k.MeanCompetitiveness)
	}
	if k.MeanFem2030 != 15 {
		t.Errorf("MeanFem2030 = %v, want 15", k.MeanFem2030)
	}
}

func TestSummarize_SkipsMissing(t *testing.T) {
	tbl := table(
		rec("A", "r", "", math.NaN(), 100, 20),
		rec("B", "r", "", 12, 300, math.NaN()),
		rec("C", "r", "", 18, math.NaN(), math.NaN()),
	)

	k := Summarize(tbl)

	if k.MeanCompetitiveness != 15 {
		t.Errorf("MeanCompetitiveness = %v, want 15", k.MeanCompetitiveness)
	}
	if k.MeanVoters != 200 {
		t.Errorf("MeanVoters = %v, want 200", k.MeanVoters)
	}
	if k.MeanOld65 != 20 {
		t.Errorf("MeanOld65 = %v, want 20", k.MeanOld65)
	}
}

func TestSummarize_AllMissingColumn(t *testing.T) {
	k := Summarize(table(rec("A", "r", "", 1, 1, math.NaN())))

	if k.Old65Text() != Placeholder {
		t.Errorf("Old65Text() = %q, want placeholder", k.Old65Text())
	}
	if k.CountText() != "1" {
		t.Errorf("CountText() = %q, want 1", k.CountText())
	}
}

func TestSummarize_Empty(t *testing.T) {
	k := Summarize(table())

	want := []Card{
		{Label: "선거구 수", Value: "0"},
		{Label: "평균 유권자 수", Value: Placeholder},
		{Label: "평균 고령층 비율(65+)", Value: Placeholder},
		{Label: "평균 2030 여성 비율", Value: Placeholder},
		{Label: "평균 경합도(격차%)", Value: Placeholder},
	}
	if diff := cmp.Diff(want, k.Cards()); diff != "" {
		t.Errorf("Cards() mismatch (-want +got):\n%s", diff)
	}
}

func TestKPIs_Formatting(t *testing.T) {
	k := KPIs{
		Count:               1234,
		MeanVoters:          176012.9,
		MeanOld65:           19.25,
		MeanFem2030:         14.04,
		MeanCompetitiveness: 21,
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"count", k.CountText(), "1,234"},
		{"voters truncates", k.VotersText(), "176,012"},
		{"old65", k.Old65Text(), "19.2%"},
		{"fem2030", k.Fem2030Text(), "14.0%"},
		{"competitiveness", k.CompetitivenessText(), "21.0p"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := FormatFloat(3.14159, 2); got != "3.14" {
		t.Errorf("FormatFloat = %q", got)
	}
	if got := FormatFloat(math.NaN(), 1); got != Placeholder {
		t.Errorf("FormatFloat(NaN) = %q", got)
	}
	if got := FormatInt(1234567.8); got != "1,234,567" {
		t.Errorf("FormatInt = %q", got)
	}
	if got := FormatInt(math.NaN()); got != Placeholder {
		t.Errorf("FormatInt(NaN) = %q", got)
	}
}
