// Preview renders the mix graph from generated fixture data without touching
// the upstream API. Useful for checking chart output after layout changes:
//
//	go run ./cmd/preview -out ./preview -emissions
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/veronicaguo/electricitymap-contrib/internal/charts"
	"github.com/veronicaguo/electricitymap-contrib/internal/logger"
	"github.com/veronicaguo/electricitymap-contrib/internal/mixgraph"
	"github.com/veronicaguo/electricitymap-contrib/internal/models"
	"github.com/veronicaguo/electricitymap-contrib/internal/sources"
)

func main() {
	var (
		outDir     = flag.String("out", "./preview", "output directory")
		zone       = flag.String("zone", "DE", "zone label used in titles")
		mixMode    = flag.String("mixmode", "consumption", "production or consumption")
		emissions  = flag.Bool("emissions", false, "display emission rates instead of power")
		colorBlind = flag.Bool("colorblind", false, "use the colorblind palette")
		hours      = flag.Int("hours", 24, "hours of fixture history to generate")
	)
	flag.Parse()

	details := fixtureZone(*zone, *hours)
	sources.NormalizeZoneDetails(details)

	opts := mixgraph.BuildOptions{
		ColorBlind:         *colorBlind,
		DisplayByEmissions: *emissions,
		MixMode:            models.ElectricityMixMode(*mixMode),
		ExchangeKeys:       details.ExchangeKeys,
	}
	ls := mixgraph.Build(details.History, opts)

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		logger.Fatal("Failed to create output directory", err)
	}

	title := fmt.Sprintf("Electricity mix — %s", details.ZoneID)

	htmlPath := filepath.Join(*outDir, "mix.html")
	if err := renderTo(charts.NewEChartsRenderer(), ls, title, htmlPath); err != nil {
		logger.Fatal("Failed to render HTML preview", err)
	}
	pngPath := filepath.Join(*outDir, "mix.png")
	if err := renderTo(charts.NewPNGRenderer(), ls, title, pngPath); err != nil {
		logger.Fatal("Failed to render PNG preview", err)
	}

	logger.Infof("Rendered %d datapoints across %d layers (axis: %s)",
		len(ls.Data), len(ls.LayerKeys), ls.AxisLabel())
	logger.Infof("Preview written to %s and %s", htmlPath, pngPath)
}

func renderTo(r charts.Renderer, ls *mixgraph.LayerSet, title, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.Render(ls, title, f)
}

// fixtureZone generates a plausible daily mix: steady nuclear baseload, a
// solar bell curve peaking at noon, wind that varies through the day, a
// battery that charges around noon and discharges in the evening, and an
// import link that picks up when solar fades.
func fixtureZone(zoneID string, hours int) *models.ZoneDetails {
	start := time.Now().UTC().Truncate(time.Hour).Add(-time.Duration(hours) * time.Hour)

	history := make([]models.HistoryRecord, 0, hours)
	for h := 0; h < hours; h++ {
		ts := start.Add(time.Duration(h) * time.Hour)
		hour := float64(ts.Hour())

		solar := 0.0
		if hour > 6 && hour < 20 {
			solar = 3200 * math.Sin((hour-6)/14*math.Pi)
		}
		wind := 1500 + 800*math.Sin(hour/24*2*math.Pi)
		battery := -300.0 // charging by default
		if hour >= 17 || hour < 2 {
			battery = 450 // evening discharge
		}
		imports := 200.0
		if hour >= 18 || hour < 6 {
			imports = 900
		}

		history = append(history, models.HistoryRecord{
			Datetime: ts,
			Production: map[string]*float64{
				"nuclear": ptr(4000),
				"solar":   ptr(solar),
				"wind":    ptr(wind),
				"gas":     ptr(1200 - solar/8),
				"hydro":   ptr(600),
			},
			Storage: map[string]*float64{
				"battery": ptr(battery),
			},
			Exchange: map[string]float64{
				"FR": imports,
				"PL": -150, // exporting
			},
			ProductionCO2Intensities: map[string]float64{
				"nuclear": 5, "solar": 30, "wind": 13, "gas": 490, "hydro": 11,
			},
			DischargeCO2Intensities: map[string]float64{"battery": 120},
			ExchangeCO2Intensities:  map[string]float64{"FR": 56, "PL": 650},
		})
	}

	return &models.ZoneDetails{ZoneID: zoneID, History: history}
}

func ptr(v float64) *float64 { return &v }
