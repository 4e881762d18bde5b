package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/sanspareilsmyn/turbinelens/internal/record"
)

// ReferenceDate anchors every time of day so samples compare as instants.
var ReferenceDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// TimeBucket holds per-minute means.
type TimeBucket struct {
	Minute               time.Time
	Count                int
	MeanPowerDC          float64
	MeanPowerAC          float64
	MeanWindSpeed        float64
	MeanPowerCoefficient float64
}

// Clock returns the bucket's minute as a time of day.
func (b TimeBucket) Clock() record.TimeOfDay {
	return record.FromTime(b.Minute)
}

// RoundToMinute places t on ReferenceDate and rounds it to the nearest minute, halves up.
func RoundToMinute(t record.TimeOfDay) time.Time {
	return t.On(ReferenceDate).Round(time.Minute)
}

// AggregateByMinute averages power, wind speed and Cp over the samples that round into each
// minute. Buckets come back in ascending time. A sample whose time of day is out of range fails
// the whole aggregation with a DataFormatError naming the time column.
func AggregateByMinute(samples []EnrichedSample) ([]TimeBucket, error) {
	buckets := make(map[time.Time]*meanAccumulator)
	for i, s := range samples {
		if _, err := record.ParseTimeOfDay(s.Time); err != nil {
			return nil, &DataFormatError{Field: ColumnTime, Index: i, Err: err}
		}
		minute := RoundToMinute(s.Time)
		acc, ok := buckets[minute]
		if !ok {
			acc = newMeanAccumulator(4)
			buckets[minute] = acc
		}
		acc.add(s.PowerDC, s.PowerAC, s.WindSpeed, s.PowerCoefficient)
	}

	minutes := make([]time.Time, 0, len(buckets))
	for m := range buckets {
		minutes = append(minutes, m)
	}
	sort.Slice(minutes, func(i, j int) bool { return minutes[i].Before(minutes[j]) })

	out := make([]TimeBucket, 0, len(minutes))
	for _, m := range minutes {
		acc := buckets[m]
		out = append(out, TimeBucket{
			Minute:               m,
			Count:                acc.count,
			MeanPowerDC:          acc.mean(0),
			MeanPowerAC:          acc.mean(1),
			MeanWindSpeed:        acc.mean(2),
			MeanPowerCoefficient: acc.mean(3),
		})
	}
	return out, nil
}

// FormatMinute renders a bucket key the way the dashboard axis does.
func FormatMinute(m time.Time) string {
	return fmt.Sprintf("%02d:%02d", m.Hour(), m.Minute())
}
