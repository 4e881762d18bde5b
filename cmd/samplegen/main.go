package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sanspareilsmyn/turbinelens/internal/analysis"
	"github.com/sanspareilsmyn/turbinelens/internal/config"
	"github.com/sanspareilsmyn/turbinelens/internal/ingest"
	"github.com/sanspareilsmyn/turbinelens/internal/logging"
	"github.com/sanspareilsmyn/turbinelens/internal/record"
	"github.com/sanspareilsmyn/turbinelens/internal/statuscode"
)

var (
	output   = flag.String("output", "sample.xlsx", "Output file (.xlsx or .csv)")
	rows     = flag.Int("rows", 600, "Number of one-second samples to generate")
	seed     = flag.Int64("seed", 0, "Random seed; 0 uses the current time")
	start    = flag.String("start", "10:00:00", "Time of day of the first sample")
	logLevel = flag.String("log-level", "info", "Log level")
)

// faultCodes are the non-nominal codes injected as short runs.
var faultCodes = []int{3, 5, 7, 29, 46}

func main() {
	flag.Parse()

	logger, err := logging.NewLogger(config.LogConfig{Level: *logLevel, Format: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()

	first, err := record.ParseTimeOfDay(*start)
	if err != nil {
		sugar.Fatalw("Invalid start time", "start", *start, "error", err)
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(s))

	xlsx := strings.EqualFold(filepath.Ext(*output), ".xlsx")
	data := generateRows(rng, first, *rows, xlsx)

	f, err := os.Create(*output)
	if err != nil {
		sugar.Fatalw("Failed to create output file", "path", *output, "error", err)
	}
	defer f.Close()

	if xlsx {
		err = ingest.WriteXLSX(f, "Sheet1", analysis.RequiredColumns, data, analysis.ColumnTime)
	} else {
		err = ingest.WriteCSV(f, analysis.RequiredColumns, data)
	}
	if err != nil {
		sugar.Fatalw("Failed to write samples", "path", *output, "error", err)
	}

	logger.Info("Sample log written",
		zap.String("path", *output),
		zap.Int("rows", len(data)),
		zap.Int64("seed", s),
	)
}

// generateRows produces n one-second samples in RequiredColumns order. Wind follows a slow random
// walk; DC power tracks the cube of the wind with noise, and the AC side sits a few percent above
// it. Roughly every few minutes a fault code holds for a short run.
func generateRows(rng *rand.Rand, first record.TimeOfDay, n int, serialTime bool) [][]interface{} {
	out := make([][]interface{}, 0, n)

	wind := 5.0
	code := statuscode.Nominal
	remaining := 0

	for i := 0; i < n; i++ {
		wind = math.Max(0, wind+rng.NormFloat64()*0.3)
		if wind > 14 {
			wind = 14
		}

		// ~1% chance of starting a fault run of 3-20 seconds
		if remaining == 0 {
			code = statuscode.Nominal
			if rng.Float64() < 0.01 {
				code = faultCodes[rng.Intn(len(faultCodes))]
				remaining = 3 + rng.Intn(18)
			}
		} else {
			remaining--
		}

		vdc := 0.0
		idc := 0.0
		if code == statuscode.Nominal && wind >= analysis.CutInSpeed {
			vdc = 300 + rng.NormFloat64()*5
			idc = math.Max(0, 0.002*wind*wind*wind+rng.NormFloat64()*0.2)
		}

		// AC side of the inverter, a few percent above DC
		gain := 1.02 + rng.Float64()*0.05
		lineV := vdc * 0.75 * gain
		lineI := idc * 0.77
		jitter := func(v float64) float64 { return round(v*(1+rng.NormFloat64()*0.01), 3) }

		ts := record.TimeOfDay(time.Duration(first) + time.Duration(i)*time.Second)
		var tm interface{} = ts.String()
		if serialTime {
			tm = time.Duration(ts).Seconds() / (24 * time.Hour).Seconds()
		}

		out = append(out, []interface{}{
			round(vdc, 2), round(idc, 3),
			jitter(lineV), jitter(lineV), jitter(lineV),
			jitter(lineI), jitter(lineI), jitter(lineI),
			round(wind, 2), tm, code,
		})
	}
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
