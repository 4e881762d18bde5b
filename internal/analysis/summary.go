package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sanspareilsmyn/turbinelens/internal/record"
)

// MaxValidEfficiency is the exclusive upper bound for efficiencies included in the average.
// Readings at or above it are treated as over-unity artifacts.
const MaxValidEfficiency = 100.0

// ValidEfficiencies returns the efficiencies that pass the summary filter:
// efficiency below MaxValidEfficiency and AC power above zero.
func ValidEfficiencies(samples []EnrichedSample) []float64 {
	var out []float64
	for _, s := range samples {
		if s.PowerAC > 0 && s.HasEfficiency() && s.Efficiency < MaxValidEfficiency {
			out = append(out, s.Efficiency)
		}
	}
	return out
}

// OverUnityCount counts samples with positive AC power whose efficiency reaches
// MaxValidEfficiency. They are left out of the average but reported on their own.
func OverUnityCount(samples []EnrichedSample) int {
	n := 0
	for _, s := range samples {
		if s.PowerAC > 0 && s.HasEfficiency() && s.Efficiency >= MaxValidEfficiency {
			n++
		}
	}
	return n
}

// AverageEfficiency returns the mean of ValidEfficiencies, or 0 when none pass.
func AverageEfficiency(samples []EnrichedSample) float64 {
	valid := ValidEfficiencies(samples)
	if len(valid) == 0 {
		return 0
	}
	return stat.Mean(valid, nil)
}

// DatasetSummary holds the headline statistics of a log.
type DatasetSummary struct {
	Records           int
	MaxPowerDC        float64
	MaxPowerAC        float64
	AverageEfficiency float64
	// EfficiencySamples is how many samples fed AverageEfficiency.
	EfficiencySamples int
	OverUnitySamples  int
	MinWindSpeed      float64
	MaxWindSpeed      float64
	FirstTime         record.TimeOfDay
	LastTime          record.TimeOfDay
}

// Summarize computes the DatasetSummary. An empty input yields the zero value.
func Summarize(samples []EnrichedSample) DatasetSummary {
	if len(samples) == 0 {
		return DatasetSummary{}
	}

	dc := make([]float64, len(samples))
	ac := make([]float64, len(samples))
	wind := make([]float64, len(samples))
	first, last := samples[0].Time, samples[0].Time
	for i, s := range samples {
		dc[i] = s.PowerDC
		ac[i] = s.PowerAC
		wind[i] = s.WindSpeed
		if s.Time < first {
			first = s.Time
		}
		if s.Time > last {
			last = s.Time
		}
	}

	valid := ValidEfficiencies(samples)
	avg := 0.0
	if len(valid) > 0 {
		avg = stat.Mean(valid, nil)
	}

	return DatasetSummary{
		Records:           len(samples),
		MaxPowerDC:        floats.Max(dc),
		MaxPowerAC:        floats.Max(ac),
		AverageEfficiency: avg,
		EfficiencySamples: len(valid),
		OverUnitySamples:  OverUnityCount(samples),
		MinWindSpeed:      floats.Min(wind),
		MaxWindSpeed:      floats.Max(wind),
		FirstTime:         first,
		LastTime:          last,
	}
}
