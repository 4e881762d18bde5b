// Package report renders analysis results for people (text) and for downstream sinks (JSON).
package report

import (
	"github.com/sanspareilsmyn/turbinelens/internal/analysis"
)

// Report collects every output of one pipeline run over one dataset.
type Report struct {
	Source      string
	Constants   analysis.TurbineConstants
	Samples     []analysis.EnrichedSample
	WindSpeed   []analysis.WindSpeedBucket
	PowerFactor []analysis.PowerFactorBucket
	Minutes     []analysis.TimeBucket
	Timeline    analysis.StatusTimeline
	StatusCodes []analysis.StatusCode
	Summary     analysis.DatasetSummary
}
