package report

import (
	"encoding/json"

	"github.com/sanspareilsmyn/turbinelens/internal/analysis"
)

// Document is the JSON shape of a Report. Per-sample rows are left out; sinks get the aggregates.
type Document struct {
	Source      string                `json:"source"`
	Constants   ConstantsDoc          `json:"turbine"`
	Summary     SummaryDoc            `json:"summary"`
	WindSpeed   []WindSpeedDoc        `json:"power_by_wind_speed"`
	PowerFactor []PowerFactorDoc      `json:"power_factor_by_wind_speed"`
	Minutes     []MinuteDoc           `json:"per_minute"`
	Timeline    []StatusRunsDoc       `json:"status_timeline"`
	StatusCodes []analysis.StatusCode `json:"status_codes"`
}

type ConstantsDoc struct {
	AirDensity    float64 `json:"air_density"`
	RotorDiameter float64 `json:"rotor_diameter"`
	RotorHeight   float64 `json:"rotor_height"`
}

type SummaryDoc struct {
	Records           int     `json:"records"`
	MaxPowerDC        float64 `json:"max_power_dc_kw"`
	MaxPowerAC        float64 `json:"max_power_ac_kw"`
	AverageEfficiency float64 `json:"average_efficiency_pct"`
	EfficiencySamples int     `json:"efficiency_samples"`
	OverUnitySamples  int     `json:"over_unity_samples"`
	MinWindSpeed      float64 `json:"min_wind_speed"`
	MaxWindSpeed      float64 `json:"max_wind_speed"`
	FirstTime         string  `json:"first_time"`
	LastTime          string  `json:"last_time"`
}

type WindSpeedDoc struct {
	WindSpeed            float64 `json:"wind_speed"`
	Count                int     `json:"count"`
	MeanPowerDC          float64 `json:"mean_power_dc_kw"`
	MeanPowerAC          float64 `json:"mean_power_ac_kw"`
	MeanPowerCoefficient float64 `json:"mean_cp"`
}

type PowerFactorDoc struct {
	WindSpeed int     `json:"wind_speed"`
	Count     int     `json:"count"`
	MeanRatio float64 `json:"mean_ratio"`
}

type MinuteDoc struct {
	Minute               string  `json:"minute"`
	Count                int     `json:"count"`
	MeanPowerDC          float64 `json:"mean_power_dc_kw"`
	MeanPowerAC          float64 `json:"mean_power_ac_kw"`
	MeanWindSpeed        float64 `json:"mean_wind_speed"`
	MeanPowerCoefficient float64 `json:"mean_cp"`
}

type StatusRunsDoc struct {
	Code        int      `json:"code"`
	Description string   `json:"description"`
	Ranges      []string `json:"ranges"`
}

// Document converts the report to its JSON shape.
func (r *Report) Document() Document {
	s := r.Summary
	doc := Document{
		Source: r.Source,
		Constants: ConstantsDoc{
			AirDensity:    r.Constants.AirDensity,
			RotorDiameter: r.Constants.RotorDiameter,
			RotorHeight:   r.Constants.RotorHeight,
		},
		Summary: SummaryDoc{
			Records:           s.Records,
			MaxPowerDC:        s.MaxPowerDC,
			MaxPowerAC:        s.MaxPowerAC,
			AverageEfficiency: s.AverageEfficiency,
			EfficiencySamples: s.EfficiencySamples,
			OverUnitySamples:  s.OverUnitySamples,
			MinWindSpeed:      s.MinWindSpeed,
			MaxWindSpeed:      s.MaxWindSpeed,
			FirstTime:         s.FirstTime.String(),
			LastTime:          s.LastTime.String(),
		},
		WindSpeed:   make([]WindSpeedDoc, 0, len(r.WindSpeed)),
		PowerFactor: make([]PowerFactorDoc, 0, len(r.PowerFactor)),
		Minutes:     make([]MinuteDoc, 0, len(r.Minutes)),
		Timeline:    make([]StatusRunsDoc, 0, len(r.Timeline)),
		StatusCodes: r.StatusCodes,
	}

	for _, b := range r.WindSpeed {
		doc.WindSpeed = append(doc.WindSpeed, WindSpeedDoc(b))
	}
	for _, b := range r.PowerFactor {
		doc.PowerFactor = append(doc.PowerFactor, PowerFactorDoc(b))
	}
	for _, b := range r.Minutes {
		doc.Minutes = append(doc.Minutes, MinuteDoc{
			Minute:               b.Clock().String(),
			Count:                b.Count,
			MeanPowerDC:          b.MeanPowerDC,
			MeanPowerAC:          b.MeanPowerAC,
			MeanWindSpeed:        b.MeanWindSpeed,
			MeanPowerCoefficient: b.MeanPowerCoefficient,
		})
	}
	for _, runs := range r.Timeline {
		ranges := make([]string, len(runs.Intervals))
		for i, iv := range runs.Intervals {
			ranges[i] = iv.String()
		}
		doc.Timeline = append(doc.Timeline, StatusRunsDoc{
			Code:        runs.Code,
			Description: runs.Description,
			Ranges:      ranges,
		})
	}
	return doc
}

// MarshalJSON encodes the report's Document.
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Document())
}
