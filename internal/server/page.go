package server

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/veronicaguo/electricitymap-contrib/internal/charts"
	"github.com/veronicaguo/electricitymap-contrib/internal/config"
	"github.com/veronicaguo/electricitymap-contrib/internal/mixgraph"
	"github.com/veronicaguo/electricitymap-contrib/internal/models"
)

// PageBuilder assembles the zone page: chart snippet, legend, and the notes
// block written in markdown and rendered with goldmark.
type PageBuilder struct {
	goldmark goldmark.Markdown
	tmpl     *template.Template
}

// NewPageBuilder creates a page builder.
func NewPageBuilder() *PageBuilder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	return &PageBuilder{
		goldmark: md,
		tmpl:     template.Must(template.New("zone_page").Parse(zonePageTemplate)),
	}
}

// pageData is the data structure for the zone page template
type pageData struct {
	ZoneID      string
	GeneratedAt string
	Version     string
	AxisLabel   string
	Chart       template.HTML
	Legend      []legendEntry
	Notes       template.HTML
}

type legendEntry struct {
	Key      string
	Color    string
	Exchange bool
}

// zoneNotesMarkdown explains how to read the graph; rendered below the chart.
const zoneNotesMarkdown = `## About this graph

Each band is one layer of the zone's electricity mix, stacked in a fixed
order. Storage layers show **net discharge only** — periods where the storage
is charging appear as zero. Exchange layers show **net imports only** and are
drawn on top of the local mix; their color reflects the carbon intensity of
the exporting zone.

When emission display is enabled, values are converted to tCO₂eq / min using
the carbon intensity of each mode. Modes without a known intensity keep their
power value, so the occasional band can be off-scale there.
`

// BuildZonePage renders the complete HTML page for a zone.
func (p *PageBuilder) BuildZonePage(details *models.ZoneDetails, ls *mixgraph.LayerSet, snippet charts.Snippet) (string, error) {
	var notes bytes.Buffer
	if err := p.goldmark.Convert([]byte(zoneNotesMarkdown), &notes); err != nil {
		return "", fmt.Errorf("failed to convert zone notes: %w", err)
	}

	legend := make([]legendEntry, 0, len(ls.LayerKeys))
	for _, key := range ls.LayerKeys {
		var color string
		if len(ls.Data) > 0 {
			color = ls.FillFor(key).Color(&ls.Data[len(ls.Data)-1])
		}
		legend = append(legend, legendEntry{
			Key:      key,
			Color:    color,
			Exchange: ls.IsExchangeKey(key),
		})
	}

	data := pageData{
		ZoneID:      details.ZoneID,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Version:     config.GetVersion(),
		AxisLabel:   ls.AxisLabel(),
		Chart:       template.HTML(snippet.HTML),
		Legend:      legend,
		Notes:       template.HTML(notes.String()),
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute zone page template: %w", err)
	}
	return buf.String(), nil
}

const zonePageTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>Electricity Mix — {{.ZoneID}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; background: #f5f5f5; }
        .container { max-width: 1000px; margin: 0 auto; background: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        h1 { color: #333; }
        .legend { display: flex; flex-wrap: wrap; gap: 10px; margin: 20px 0; }
        .legend-entry { display: flex; align-items: center; gap: 6px; font-size: 13px; }
        .legend-swatch { width: 14px; height: 14px; border-radius: 3px; display: inline-block; }
        .notes { background: #f8f9fa; padding: 20px; border-radius: 5px; margin-top: 30px; }
        .footer { color: #666; font-size: 12px; margin-top: 30px; text-align: center; }
    </style>
</head>
<body>
    <div class="container">
        <h1>⚡ Electricity Mix — {{.ZoneID}}</h1>
        {{.Chart}}
        <div class="legend">
        {{range .Legend}}
            <span class="legend-entry"><span class="legend-swatch" style="background: {{.Color}};"></span>{{.Key}}{{if .Exchange}} (import){{end}}</span>
        {{end}}
        </div>
        <div class="notes">{{.Notes}}</div>
        <div class="footer">Generated at {{.GeneratedAt}} · v{{.Version}} · values in {{.AxisLabel}}</div>
    </div>
</body>
</html>`
