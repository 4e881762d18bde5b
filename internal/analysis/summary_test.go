package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sanspareilsmyn/turbinelens/internal/record"
)

func TestAverageEfficiency(t *testing.T) {
	samples := []EnrichedSample{
		enriched(5, 8, 10, 0),  // 80%
		enriched(5, 9, 10, 0),  // 90%
		enriched(5, 10, 10, 0), // 100% excluded
		enriched(5, 15, 10, 0), // 150% excluded
		enriched(5, 3, 0, 0),   // undefined excluded
		enriched(5, 3, -2, 0),  // negative AC excluded
	}
	assert.InDelta(t, 85, AverageEfficiency(samples), tolerance)
	assert.Len(t, ValidEfficiencies(samples), 2)
	assert.Equal(t, 2, OverUnityCount(samples))
}

func TestAverageEfficiencyAllExcluded(t *testing.T) {
	samples := []EnrichedSample{
		enriched(5, 3, 0, 0),
		enriched(5, 20, 10, 0),
	}
	got := AverageEfficiency(samples)
	assert.Equal(t, 0.0, got)
	assert.False(t, math.IsNaN(got))
	assert.Equal(t, 0.0, AverageEfficiency(nil))
}

func TestSummarize(t *testing.T) {
	samples := []EnrichedSample{
		at(record.NewTimeOfDay(10, 0, 5, 0), 3.5, 2, 4, 0),
		at(record.NewTimeOfDay(9, 59, 0, 0), 0.5, 7, 8, 0),
		at(record.NewTimeOfDay(10, 3, 0, 0), 12.25, 1, 0, 0),
	}

	got := Summarize(samples)
	assert.Equal(t, 3, got.Records)
	assert.Equal(t, 7.0, got.MaxPowerDC)
	assert.Equal(t, 8.0, got.MaxPowerAC)
	assert.InDelta(t, (50.0+87.5)/2, got.AverageEfficiency, tolerance)
	assert.Equal(t, 2, got.EfficiencySamples)
	assert.Zero(t, got.OverUnitySamples)
	assert.Equal(t, 0.5, got.MinWindSpeed)
	assert.Equal(t, 12.25, got.MaxWindSpeed)
	assert.Equal(t, record.NewTimeOfDay(9, 59, 0, 0), got.FirstTime)
	assert.Equal(t, record.NewTimeOfDay(10, 3, 0, 0), got.LastTime)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, DatasetSummary{}, Summarize(nil))
}
