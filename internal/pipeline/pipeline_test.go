package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sanspareilsmyn/turbinelens/internal/analysis"
	"github.com/sanspareilsmyn/turbinelens/internal/config"
	"github.com/sanspareilsmyn/turbinelens/internal/ingest"
	"github.com/sanspareilsmyn/turbinelens/internal/record"
	"github.com/sanspareilsmyn/turbinelens/internal/report"
)

const logCSV = `Vdc,Idc,Euv,Evw,Ewu,Iu,Iv,Iw,WSD,TM,CODE 1
400,10,400,400,400,10,10,10,6.04,10:00:00,16
400,9,400,400,400,10,10,10,5.96,10:00:01,16
0,0,0,0,0,0,0,0,1.2,10:00:02,5
0,0,0,0,0,0,0,0,1.1,10:00:03,5
400,8,400,400,400,10,10,10,4.5,10:00:45,16
420,8,400,400,400,10,10,10,4.2,10:01:10,3
420,8,400,400,400,10,10,10,3.3,10:01:11,3
420,8,400,400,400,10,10,10,3.8,10:01:12,3
400,8,400,400,400,10,10,10,7.1,10:01:40,16
`

type fakePublisher struct {
	mu      sync.Mutex
	reports []*report.Report
	err     error
	closed  bool
}

func (f *fakePublisher) Publish(_ context.Context, r *report.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.reports = append(f.reports, r)
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

func writeInput(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newTestPipeline(t *testing.T) (*Pipeline, *fakePublisher) {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)

	p, err := New(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	pub := &fakePublisher{}
	p.WithPublisher(pub)
	return p, pub
}

func TestRun(t *testing.T) {
	p, pub := newTestPipeline(t)
	path := writeInput(t, "day1.csv", logCSV)

	rep, err := p.Run(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "day1.csv", rep.Source)
	assert.Len(t, rep.Samples, 9)
	assert.Equal(t, 9, rep.Summary.Records)

	var keys []float64
	for _, b := range rep.WindSpeed {
		keys = append(keys, b.WindSpeed)
		assert.GreaterOrEqual(t, b.WindSpeed, analysis.CutInSpeed)
	}
	assert.Equal(t, []float64{3.3, 3.8, 4.2, 4.5, 6.0, 7.1}, keys)

	require.Len(t, rep.Minutes, 3)
	assert.Equal(t, "10:00", analysis.FormatMinute(rep.Minutes[0].Minute))
	assert.Equal(t, 4, rep.Minutes[0].Count)
	assert.Equal(t, "10:01", analysis.FormatMinute(rep.Minutes[1].Minute))
	assert.Equal(t, 4, rep.Minutes[1].Count)
	assert.Equal(t, "10:02", analysis.FormatMinute(rep.Minutes[2].Minute))

	assert.Equal(t, []int{5, 3}, rep.Timeline.Codes())
	five, _ := rep.Timeline.Lookup(5)
	assert.Equal(t, []analysis.Interval{{Start: record.NewTimeOfDay(10, 0, 2, 0), End: record.NewTimeOfDay(10, 0, 3, 0)}}, five)
	three, _ := rep.Timeline.Lookup(3)
	assert.Equal(t, []analysis.Interval{{Start: record.NewTimeOfDay(10, 1, 10, 0), End: record.NewTimeOfDay(10, 1, 12, 0)}}, three)

	require.Len(t, pub.reports, 1)
	assert.Same(t, rep, pub.reports[0])

	assert.Equal(t, 9.0, testutil.ToFloat64(p.Metrics().records))

	require.NoError(t, p.Close())
	assert.True(t, pub.closed)
}

func TestRunIsIdempotent(t *testing.T) {
	p, _ := newTestPipeline(t)
	path := writeInput(t, "day1.csv", logCSV)

	first, err := p.Run(context.Background(), path)
	require.NoError(t, err)
	second, err := p.Run(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunRejectsBadInput(t *testing.T) {
	p, pub := newTestPipeline(t)

	_, err := p.Run(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoInput)

	missing := writeInput(t, "bad.csv", "Vdc,Idc\n1,2\n")
	rep, err := p.Run(context.Background(), missing)
	assert.Nil(t, rep)
	assert.ErrorIs(t, err, ErrIngestFailed)
	assert.ErrorIs(t, err, ingest.ErrMissingColumn)

	badTime := writeInput(t, "badtime.csv", "Vdc,Idc,Euv,Evw,Ewu,Iu,Iv,Iw,WSD,TM,CODE 1\n1,1,1,1,1,1,1,1,4,soon,16\n")
	rep, err = p.Run(context.Background(), badTime)
	assert.Nil(t, rep)
	assert.ErrorIs(t, err, ingest.ErrInputFormat)

	var dfe *ingest.DataFormatError
	require.True(t, errors.As(err, &dfe))
	assert.Equal(t, analysis.ColumnTime, dfe.Field)

	nanWind := writeInput(t, "nan.csv", "Vdc,Idc,Euv,Evw,Ewu,Iu,Iv,Iw,WSD,TM,CODE 1\n1,1,1,1,1,1,1,1,NaN,10:00:00,16\n")
	rep, err = p.Run(context.Background(), nanWind)
	assert.Nil(t, rep)
	assert.ErrorIs(t, err, ingest.ErrInputFormat)
	require.True(t, errors.As(err, &dfe))
	assert.Equal(t, analysis.ColumnWindSpeed, dfe.Field)

	assert.Empty(t, pub.reports, "nothing published for rejected datasets")
}

func TestRunPublishFailure(t *testing.T) {
	p, pub := newTestPipeline(t)
	pub.err = errors.New("broker down")

	rep, err := p.Run(context.Background(), writeInput(t, "day1.csv", logCSV))
	assert.Error(t, err)
	assert.NotNil(t, rep)
}

func TestAnalyzeEmpty(t *testing.T) {
	rep, err := Analyze(context.Background(), "empty", nil, analysis.DefaultTurbineConstants())
	require.NoError(t, err)
	assert.Empty(t, rep.WindSpeed)
	assert.Empty(t, rep.PowerFactor)
	assert.Empty(t, rep.Minutes)
	assert.Empty(t, rep.Timeline)
	assert.Equal(t, 0.0, rep.Summary.AverageEfficiency)
}

func TestAnalyzeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Analyze(ctx, "x", []analysis.Sample{{WindSpeed: 4, StatusCode: 16}}, analysis.DefaultTurbineConstants())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRejectsBadKafkaConfig(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Kafka.Enabled = true

	_, err = New(cfg, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, ErrPublisherCreationFailed)
	assert.ErrorIs(t, err, ErrInvalidKafkaConfig)
}
