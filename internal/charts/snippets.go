package charts

import (
	"bytes"
	"fmt"

	"github.com/veronicaguo/electricitymap-contrib/internal/mixgraph"
)

// Snippet is an embeddable chart fragment for the zone page: a root div plus
// the script block that initializes the chart inside it.
type Snippet struct {
	ID    string
	Title string
	HTML  string
}

// BuildSnippet renders a layer set through a renderer and wraps it for
// template substitution into the zone page.
func BuildSnippet(r Renderer, ls *mixgraph.LayerSet, id, title string) (Snippet, error) {
	var buf bytes.Buffer
	if err := r.Render(ls, title, &buf); err != nil {
		return Snippet{}, fmt.Errorf("failed to build chart snippet %q: %w", id, err)
	}
	return Snippet{
		ID:    id,
		Title: title,
		HTML:  fmt.Sprintf("<div class=\"chart-container\" id=%q>\n%s\n</div>\n", id, buf.String()),
	}, nil
}
