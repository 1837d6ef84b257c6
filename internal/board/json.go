package board

import (
	"encoding/json"
	"math"
)

// encoding/json rejects NaN, so missing values marshal as null.

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// MarshalJSON implements json.Marshaler.
func (k KPIs) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Count               int      `json:"count"`
		MeanVoters          *float64 `json:"mean_voters"`
		MeanOld65           *float64 `json:"mean_pct_old65"`
		MeanFem2030         *float64 `json:"mean_pct_fem_2030"`
		MeanCompetitiveness *float64 `json:"mean_competitiveness"`
	}{
		Count:               k.Count,
		MeanVoters:          nullable(k.MeanVoters),
		MeanOld65:           nullable(k.MeanOld65),
		MeanFem2030:         nullable(k.MeanFem2030),
		MeanCompetitiveness: nullable(k.MeanCompetitiveness),
	})
}

// MarshalJSON implements json.Marshaler.
func (p DemographicPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		District  string   `json:"district_name"`
		Indicator string   `json:"indicator"`
		Value     *float64 `json:"value"`
	}{p.District, p.Indicator, nullable(p.Value)})
}

// MarshalJSON implements json.Marshaler.
func (p TrendPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		District string   `json:"district_name"`
		Year     int      `json:"year"`
		Bloc     string   `json:"bloc"`
		Vote     *float64 `json:"vote"`
	}{p.District, p.Year, p.Bloc, nullable(p.Vote)})
}

// MarshalJSON implements json.Marshaler.
func (r TableRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		District        string   `json:"district_name"`
		Region          string   `json:"region"`
		Winner          string   `json:"winner_2024"`
		Competitiveness *float64 `json:"competitiveness"`
		Volatility      *float64 `json:"volatility"`
		ProgLeftAvg     *float64 `json:"prog_left_avg"`
		VotersTotal     *float64 `json:"voters_total"`
	}{
		District:        r.District,
		Region:          r.Region,
		Winner:          r.Winner,
		Competitiveness: nullable(r.Competitiveness),
		Volatility:      nullable(r.Volatility),
		ProgLeftAvg:     nullable(r.ProgLeftAvg),
		VotersTotal:     nullable(r.VotersTotal),
	})
}
