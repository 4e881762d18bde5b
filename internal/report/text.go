package report

import (
	"bufio"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sanspareilsmyn/turbinelens/internal/analysis"
)

// WriteText renders the report as the plain-text analysis shown next to the charts.
func (r *Report) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	s := r.Summary

	fmt.Fprintf(bw, "Wind Power Analysis: %s\n\n", r.Source)
	fmt.Fprintf(bw, "Maximum Power: %.2f kW\n", s.MaxPowerDC)
	fmt.Fprintf(bw, "Maximum Power AC: %.2f kW\n", s.MaxPowerAC)

	fmt.Fprint(bw, "\nSystem Analysis:\n")
	fmt.Fprintf(bw, "Average Efficiency (excluding values ≥100%% and zero power): %.2f%%\n", s.AverageEfficiency)
	fmt.Fprintf(bw, "Samples at or above 100%% efficiency: %d\n\n", s.OverUnitySamples)
	r.writeTimeline(bw)

	fmt.Fprint(bw, "\nError Code and Name:\n")
	tw := newTable(bw)
	fmt.Fprintln(tw, "  CODE\tNAME")
	for _, c := range r.StatusCodes {
		fmt.Fprintf(tw, "  %d\t%s\n", c.Code, c.Description)
	}
	tw.Flush()

	fmt.Fprint(bw, "\nPower vs Wind Speed (Averaged):\n")
	tw = newTable(bw)
	fmt.Fprintln(tw, "  WSD (m/s)\tDC (kW)\tAC (kW)\tCp\tN")
	for _, b := range r.WindSpeed {
		fmt.Fprintf(tw, "  %.1f\t%.3f\t%.3f\t%.3f\t%d\n", b.WindSpeed, b.MeanPowerDC, b.MeanPowerAC, b.MeanPowerCoefficient, b.Count)
	}
	tw.Flush()

	fmt.Fprint(bw, "\nMean Power Factor by Wind Speed:\n")
	tw = newTable(bw)
	fmt.Fprintln(tw, "  WSD (m/s)\tDC/AC\tN")
	for _, b := range r.PowerFactor {
		fmt.Fprintf(tw, "  %d\t%.4f\t%d\n", b.WindSpeed, b.MeanRatio, b.Count)
	}
	tw.Flush()

	fmt.Fprint(bw, "\nPower and Wind Speed vs Time (Minute Intervals):\n")
	tw = newTable(bw)
	fmt.Fprintln(tw, "  TIME\tDC (kW)\tAC (kW)\tWSD (m/s)\tCp\tN")
	for _, b := range r.Minutes {
		fmt.Fprintf(tw, "  %s\t%.3f\t%.3f\t%.2f\t%.3f\t%d\n",
			analysis.FormatMinute(b.Minute), b.MeanPowerDC, b.MeanPowerAC, b.MeanWindSpeed, b.MeanPowerCoefficient, b.Count)
	}
	tw.Flush()

	fmt.Fprint(bw, "\nData Statistics:\n")
	fmt.Fprintf(bw, "Total number of records: %d\n", s.Records)
	fmt.Fprintf(bw, "Wind speed range: %.1f - %.1f m/s\n", s.MinWindSpeed, s.MaxWindSpeed)
	fmt.Fprintf(bw, "Time range: %s - %s\n", s.FirstTime, s.LastTime)

	return bw.Flush()
}

// writeTimeline lists the status runs with codes in ascending order.
func (r *Report) writeTimeline(w io.Writer) {
	fmt.Fprint(w, "Error Code Timeline:\n")
	if len(r.Timeline) == 0 {
		fmt.Fprint(w, "  none\n")
		return
	}
	for _, runs := range r.Timeline.SortedByCode() {
		fmt.Fprintf(w, "\nCode %d - %s:\n", runs.Code, runs.Description)
		for _, iv := range runs.Intervals {
			fmt.Fprintf(w, "  %s\n", iv)
		}
	}
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}
