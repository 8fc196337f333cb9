package numerics

import (
	"encoding/csv"
	"io"
	"strconv"

	"bicycle/internal/fixedpoint"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
)

// OutputRow is one operation-group's running resource-estimation totals,
// emitted as a single CSV row by the numerics CLI.
type OutputRow struct {
	TInjections       uint64
	Automorphisms     uint64
	Measurements      uint64
	JointMeasurements uint64
	Idles             uint64
	MaxDepth          uint64
	MaxTime           uint64
	TotalError        fixedpoint.Error
}

// WriteCSV writes one header row followed by one row per entry in rows.
func WriteCSV(w io.Writer, rows []OutputRow) error {
	cw := csv.NewWriter(w)
	header := []string{
		"t_injections", "automorphisms", "measurements", "joint_measurements",
		"idles", "max_depth", "max_time", "total_error",
	}
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "numerics: writing csv header")
	}
	for _, r := range rows {
		rec := []string{
			strconv.FormatUint(r.TInjections, 10),
			strconv.FormatUint(r.Automorphisms, 10),
			strconv.FormatUint(r.Measurements, 10),
			strconv.FormatUint(r.JointMeasurements, 10),
			strconv.FormatUint(r.Idles, 10),
			strconv.FormatUint(r.MaxDepth, 10),
			strconv.FormatUint(r.MaxTime, 10),
			r.TotalError.String(),
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrap(err, "numerics: writing csv row")
		}
	}
	cw.Flush()
	return cw.Error()
}

// RenderBarChart renders each row's MaxTime (one bar per PBC operation
// processed) as an HTML bar chart; depth and error are not plotted. This is
// a DOMAIN-stack convenience for presenting a resource-estimation sweep;
// it has no bearing on compiled-program correctness.
func RenderBarChart(w io.Writer, rows []OutputRow) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Bicycle resource estimation",
			Subtitle: "max time per PBC operation processed",
		}),
	)

	names := make([]string, len(rows))
	times := make([]opts.BarData, len(rows))
	for i, r := range rows {
		names[i] = strconv.Itoa(i)
		times[i] = opts.BarData{Value: r.MaxTime}
	}

	bar.SetXAxis(names).
		AddSeries("max time", times)

	return bar.Render(w)
}
