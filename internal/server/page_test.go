package server

import (
	"strings"
	"testing"
	"time"

	"github.com/veronicaguo/electricitymap-contrib/internal/charts"
	"github.com/veronicaguo/electricitymap-contrib/internal/mixgraph"
	"github.com/veronicaguo/electricitymap-contrib/internal/models"
)

func pageFixture(t *testing.T) (*models.ZoneDetails, *mixgraph.LayerSet) {
	t.Helper()
	gas := 100.0
	details := &models.ZoneDetails{
		ZoneID: "DE",
		History: []models.HistoryRecord{{
			Datetime:               time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
			Production:             map[string]*float64{"gas": &gas},
			Exchange:               map[string]float64{"FR": 30},
			ExchangeCO2Intensities: map[string]float64{"FR": 56},
			TotalProduction:        100,
			TotalImport:            30,
		}},
		ExchangeKeys: []string{"FR"},
	}
	ls := mixgraph.Build(details.History, mixgraph.BuildOptions{
		MixMode:      models.MixModeConsumption,
		ExchangeKeys: details.ExchangeKeys,
	})
	return details, ls
}

func TestBuildZonePage(t *testing.T) {
	details, ls := pageFixture(t)

	snippet, err := charts.BuildSnippet(charts.NewEChartsRenderer(), ls, "mix-graph", "Mix")
	if err != nil {
		t.Fatalf("BuildSnippet failed: %v", err)
	}

	page, err := NewPageBuilder().BuildZonePage(details, ls, snippet)
	if err != nil {
		t.Fatalf("BuildZonePage failed: %v", err)
	}

	checks := []string{
		"Electricity Mix — DE",
		`id="mix-graph"`,
		"About this graph",     // notes heading rendered from markdown
		"net discharge only",   // markdown body made it through
		"FR (import)",          // exchange legend entry flagged
		"values in MW",         // footer carries the axis label
		"#BB2F51",              // gas swatch color
	}
	for _, want := range checks {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}

	// Markdown should be rendered, not escaped
	if strings.Contains(page, "## About this graph") {
		t.Error("notes markdown was not converted to HTML")
	}
	if !strings.Contains(page, "<h2") {
		t.Error("notes heading not rendered as HTML")
	}
}

func TestBuildZonePageLegendOrder(t *testing.T) {
	details, ls := pageFixture(t)

	snippet, err := charts.BuildSnippet(charts.NewEChartsRenderer(), ls, "mix-graph", "Mix")
	if err != nil {
		t.Fatalf("BuildSnippet failed: %v", err)
	}
	page, err := NewPageBuilder().BuildZonePage(details, ls, snippet)
	if err != nil {
		t.Fatalf("BuildZonePage failed: %v", err)
	}

	// Exchange entries come after all fixed modes in the legend
	lastMode := strings.LastIndex(page, ">unknown<")
	exchange := strings.Index(page, ">FR (import)<")
	if lastMode == -1 || exchange == -1 {
		t.Fatalf("legend entries missing (unknown at %d, FR at %d)", lastMode, exchange)
	}
	if exchange < lastMode {
		t.Error("exchange legend entry should follow the fixed modes")
	}
}
