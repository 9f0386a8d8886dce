// Package report renders range reports of a fleet.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/autorange/core/vehiclestatus"
)

// RangeChartHTML renders a grouped bar chart of the maximum, current and
// loaded range of each vehicle as a standalone HTML page.
func RangeChartHTML(statuses []vehiclestatus.Status) ([]byte, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Fleet range", Subtitle: fmt.Sprintf("%d vehicles", len(statuses))}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Vehicle"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "km"}),
	)

	ids := make([]string, 0, len(statuses))
	maximum := make([]opts.BarData, 0, len(statuses))
	current := make([]opts.BarData, 0, len(statuses))
	loaded := make([]opts.BarData, 0, len(statuses))
	for _, st := range statuses {
		ids = append(ids, st.VehicleID)
		maximum = append(maximum, opts.BarData{Value: st.Range.Maximum})
		current = append(current, opts.BarData{Value: st.Range.Current})
		loaded = append(loaded, opts.BarData{Value: st.Range.Loaded})
	}
	bar.SetXAxis(ids).
		AddSeries("max", maximum).
		AddSeries("current", current).
		AddSeries("loaded", loaded)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}

var csvHeader = []string{"vehicle_id", "variant", "liquid", "max_liquid", "speed", "max_km", "current_km", "loaded_km"}

// WriteCSV writes one row per vehicle with its liquid and range.
func WriteCSV(w io.Writer, statuses []vehiclestatus.Status) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, st := range statuses {
		row := []string{
			st.VehicleID,
			st.Variant,
			formatFloat(st.LiquidAmount),
			formatFloat(st.MaxLiquidAmount),
			formatFloat(st.Speed),
			formatFloat(st.Range.Maximum),
			formatFloat(st.Range.Current),
			formatFloat(st.Range.Loaded),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
