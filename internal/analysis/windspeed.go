package analysis

import (
	"math"
	"sort"
)

// WindSpeedBucket holds mean power figures for samples whose wind speed rounds to WindSpeed
// (nearest 0.1 m/s).
type WindSpeedBucket struct {
	WindSpeed            float64
	Count                int
	MeanPowerDC          float64
	MeanPowerAC          float64
	MeanPowerCoefficient float64
}

// PowerFactorBucket holds the mean DC/AC ratio for samples whose wind speed floors to WindSpeed.
type PowerFactorBucket struct {
	WindSpeed int
	Count     int
	MeanRatio float64
}

// tenthBucket is the round-to-0.1 m/s key, stored as an integer count of tenths.
// Ties go to even, matching how the logger's analysis scripts rounded.
func tenthBucket(windSpeed float64) int64 {
	return int64(math.RoundToEven(windSpeed * 10))
}

// integerBucket is the floor-to-1 m/s key.
func integerBucket(windSpeed float64) int {
	return int(math.Floor(windSpeed))
}

// RoundWindSpeed returns the power/Cp bucket key for a wind speed.
func RoundWindSpeed(windSpeed float64) float64 {
	return float64(tenthBucket(windSpeed)) / 10
}

// PowerByWindSpeed averages DC power, AC power and Cp per 0.1 m/s bucket, for wind speeds at or
// above cut-in. Buckets come back in ascending wind speed; empty buckets are absent.
func PowerByWindSpeed(samples []EnrichedSample) []WindSpeedBucket {
	buckets := make(map[int64]*meanAccumulator)
	for _, s := range samples {
		if !(s.WindSpeed >= CutInSpeed) {
			continue
		}
		key := tenthBucket(s.WindSpeed)
		acc, ok := buckets[key]
		if !ok {
			acc = newMeanAccumulator(3)
			buckets[key] = acc
		}
		acc.add(s.PowerDC, s.PowerAC, s.PowerCoefficient)
	}

	keys := make([]int64, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]WindSpeedBucket, 0, len(keys))
	for _, k := range keys {
		acc := buckets[k]
		out = append(out, WindSpeedBucket{
			WindSpeed:            float64(k) / 10,
			Count:                acc.count,
			MeanPowerDC:          acc.mean(0),
			MeanPowerAC:          acc.mean(1),
			MeanPowerCoefficient: acc.mean(2),
		})
	}
	return out
}

// PowerFactorByWindSpeed averages the DC/AC power ratio per whole m/s. Only samples at or above
// cut-in with positive DC and AC power count, and ratios of 1 or more are dropped as noise.
func PowerFactorByWindSpeed(samples []EnrichedSample) []PowerFactorBucket {
	buckets := make(map[int]*meanAccumulator)
	for _, s := range samples {
		if !(s.WindSpeed >= CutInSpeed) || !(s.PowerDC > 0) || !(s.PowerAC > 0) {
			continue
		}
		ratio := s.PowerDC / s.PowerAC
		if !(ratio < 1) {
			continue
		}
		key := integerBucket(s.WindSpeed)
		acc, ok := buckets[key]
		if !ok {
			acc = newMeanAccumulator(1)
			buckets[key] = acc
		}
		acc.add(ratio)
	}

	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]PowerFactorBucket, 0, len(keys))
	for _, k := range keys {
		acc := buckets[k]
		out = append(out, PowerFactorBucket{
			WindSpeed: k,
			Count:     acc.count,
			MeanRatio: acc.mean(0),
		})
	}
	return out
}
