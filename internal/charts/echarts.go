package charts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/veronicaguo/electricitymap-contrib/internal/mixgraph"
)

// EChartsRenderer renders the mix as an interactive stacked area chart
// (go-echarts HTML fragment).
type EChartsRenderer struct {
	Width  string
	Height string
}

// NewEChartsRenderer creates a renderer with the default chart size.
func NewEChartsRenderer() *EChartsRenderer {
	return &EChartsRenderer{Width: "900px", Height: "400px"}
}

// Render writes the chart HTML for a layer set. An empty set renders a
// placeholder paragraph instead of an empty chart shell.
func (r *EChartsRenderer) Render(ls *mixgraph.LayerSet, title string, w io.Writer) error {
	if ls == nil || ls.Empty() {
		_, err := io.WriteString(w, "<p>No data available</p>\n")
		return err
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  r.Width,
			Height: r.Height,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("Values in %s", ls.AxisLabel()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    true,
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: ls.AxisLabel(),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: true,
		}),
	)

	xAxis := make([]string, len(ls.Data))
	for i, rec := range ls.Data {
		xAxis[i] = rec.Datetime.Format("Jan 02 15:04")
	}
	line.SetXAxis(xAxis)

	for _, key := range ls.LayerKeys {
		fill := ls.FillFor(key)
		series := make([]opts.LineData, len(ls.Data))
		for i := range ls.Data {
			series[i] = opts.LineData{Value: ls.Data[i].Values[key]}
		}
		// go-echarts colors whole series, not single points; dynamic
		// (exchange) layers take the color of their latest datapoint.
		color := fill.Color(&ls.Data[len(ls.Data)-1])
		line.AddSeries(key, series,
			charts.WithLineChartOpts(opts.LineChart{Stack: "mix"}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.85}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: color, Width: 1}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
		)
	}

	return line.Render(w)
}
