package interaction

import "github.com/veronicaguo/electricitymap-contrib/internal/models"

// Point is a position in chart pixel coordinates.
type Point struct {
	X float64
	Y float64
}

// Tooltip is the local tooltip state while shown: the hovered layer key, the
// anchored display position, and the source record the tooltip renders from.
type Tooltip struct {
	Mode     string
	Position Point
	Source   *models.HistoryRecord
}

// Desktop tooltips sit slightly up and to the right of the pointer so the
// marker stays visible under it.
const (
	tooltipOffsetX = 16
	tooltipOffsetY = -48
)

// TooltipPosition anchors a tooltip relative to the raw pointer position. On
// mobile the tooltip is pinned to the top-left corner (it renders as a full
// width panel there); on desktop it floats next to the pointer, clamped so it
// never leaves the chart area.
func TooltipPosition(isMobile bool, pointer Point) Point {
	if isMobile {
		return Point{}
	}
	p := Point{X: pointer.X + tooltipOffsetX, Y: pointer.Y + tooltipOffsetY}
	if p.Y < 0 {
		p.Y = 0
	}
	return p
}
