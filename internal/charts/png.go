package charts

import (
	"fmt"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/veronicaguo/electricitymap-contrib/internal/mixgraph"
)

// PNGRenderer renders the mix as a static stacked area chart image. Used for
// snapshots and for clients that cannot run the interactive chart.
type PNGRenderer struct {
	Width  int
	Height int
}

// NewPNGRenderer creates a renderer with the default image size.
func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{Width: 900, Height: 400}
}

// Render writes a PNG for a layer set. Layers are stacked by drawing
// cumulative sums back to front: the topmost layer is painted first and each
// lower layer overpaints it, leaving only its own band visible.
func (r *PNGRenderer) Render(ls *mixgraph.LayerSet, title string, w io.Writer) error {
	if ls == nil || ls.Empty() {
		return fmt.Errorf("no data to render")
	}

	times := make([]time.Time, len(ls.Data))
	for i, rec := range ls.Data {
		times[i] = rec.Datetime
	}

	// cumulative[k][i] = sum of layer values up to and including key k at i
	cumulative := make([][]float64, len(ls.LayerKeys))
	running := make([]float64, len(ls.Data))
	for k, key := range ls.LayerKeys {
		row := make([]float64, len(ls.Data))
		for i := range ls.Data {
			running[i] += ls.Data[i].Values[key]
			row[i] = running[i]
		}
		cumulative[k] = row
	}

	var series []chart.Series
	for k := len(ls.LayerKeys) - 1; k >= 0; k-- {
		key := ls.LayerKeys[k]
		color := hexToDrawing(ls.FillFor(key).Color(&ls.Data[len(ls.Data)-1]))
		series = append(series, chart.TimeSeries{
			Name: key,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 1,
				FillColor:   color,
			},
			XValues: times,
			YValues: cumulative[k],
		})
	}

	graph := chart.Chart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   70,
				Right:  20,
				Bottom: 40,
			},
		},
		Width:  r.Width,
		Height: r.Height,
		XAxis: chart.XAxis{
			Name: "Time",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 9,
			},
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(time.Time); ok {
					return t.Format("15:04")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: ls.AxisLabel(),
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 10,
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: ls.Scale.Peak,
			},
		},
		Series: series,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render mix chart: %w", err)
	}
	return nil
}

// hexToDrawing parses "#RRGGBB" into a drawing color, falling back to gray.
func hexToDrawing(hex string) drawing.Color {
	var red, green, blue int
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &red, &green, &blue); err != nil {
		return drawing.Color{R: 128, G: 128, B: 128, A: 255}
	}
	return drawing.Color{R: uint8(red), G: uint8(green), B: uint8(blue), A: 255}
}
