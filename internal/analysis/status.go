package analysis

import (
	"sort"

	"github.com/sanspareilsmyn/turbinelens/internal/record"
	"github.com/sanspareilsmyn/turbinelens/internal/statuscode"
)

// Interval is a closed time range [Start, End].
type Interval struct {
	Start record.TimeOfDay
	End   record.TimeOfDay
}

func (i Interval) String() string {
	return i.Start.String() + " to " + i.End.String()
}

// StatusRuns lists every maximal run of one non-nominal status code.
type StatusRuns struct {
	Code        int
	Description string
	Intervals   []Interval
}

// StatusTimeline holds one entry per non-nominal code, in order of first occurrence.
type StatusTimeline []StatusRuns

// Lookup returns the intervals recorded for code.
func (tl StatusTimeline) Lookup(code int) ([]Interval, bool) {
	for _, r := range tl {
		if r.Code == code {
			return r.Intervals, true
		}
	}
	return nil, false
}

// Codes returns the codes in timeline order.
func (tl StatusTimeline) Codes() []int {
	codes := make([]int, len(tl))
	for i, r := range tl {
		codes[i] = r.Code
	}
	return codes
}

// SortedByCode returns a copy ordered by ascending code.
func (tl StatusTimeline) SortedByCode() StatusTimeline {
	out := make(StatusTimeline, len(tl))
	copy(out, tl)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// ExtractStatusTimeline scans samples in input order and records, for every code other than
// statuscode.Nominal, the contiguous runs during which it was active. A run is bounded by the
// times of its first and last sample. The input must already be in chronological order.
func ExtractStatusTimeline(samples []Sample) StatusTimeline {
	var (
		timeline   StatusTimeline
		index      = make(map[int]int)
		active     bool
		current    int
		rangeStart record.TimeOfDay
	)

	closeRun := func(end record.TimeOfDay) {
		pos, ok := index[current]
		if !ok {
			pos = len(timeline)
			index[current] = pos
			timeline = append(timeline, StatusRuns{
				Code:        current,
				Description: statuscode.Describe(current),
			})
		}
		timeline[pos].Intervals = append(timeline[pos].Intervals, Interval{Start: rangeStart, End: end})
	}

	for i, s := range samples {
		if active && s.StatusCode == current {
			continue
		}
		if active && current != statuscode.Nominal {
			closeRun(samples[i-1].Time)
		}
		if s.StatusCode != statuscode.Nominal {
			rangeStart = s.Time
		}
		current = s.StatusCode
		active = true
	}

	if active && current != statuscode.Nominal {
		closeRun(samples[len(samples)-1].Time)
	}
	return timeline
}

// StatusCode pairs a code with its catalog description.
type StatusCode struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// DistinctStatusCodes lists each code seen in samples once, in order of first occurrence.
func DistinctStatusCodes(samples []Sample) []StatusCode {
	seen := make(map[int]struct{})
	var out []StatusCode
	for _, s := range samples {
		if _, ok := seen[s.StatusCode]; ok {
			continue
		}
		seen[s.StatusCode] = struct{}{}
		out = append(out, StatusCode{Code: s.StatusCode, Description: statuscode.Describe(s.StatusCode)})
	}
	return out
}
