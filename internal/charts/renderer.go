package charts

import (
	"io"

	"github.com/veronicaguo/electricitymap-contrib/internal/interaction"
	"github.com/veronicaguo/electricitymap-contrib/internal/mixgraph"
	"github.com/veronicaguo/electricitymap-contrib/internal/models"
)

// Callbacks are the interaction hooks a chart invokes on user activity.
// All of them are optional.
type Callbacks struct {
	BackgroundHover func(timeIndex int)
	BackgroundOut   func()
	LayerHover      func(layerIndex, timeIndex int)
	LayerOut        func()
	MarkerUpdate    func(pointer interaction.Point, layerKey string, source *models.HistoryRecord)
	MarkerHide      func()
}

// Renderer renders a prepared layer set.
type Renderer interface {
	Render(ls *mixgraph.LayerSet, title string, w io.Writer) error
}

// Dispatcher drives the interaction callbacks for a layer set. It is the
// server-side stand-in for pointer events: handlers and tests feed it indexes
// and it validates them against the dataset before fanning out.
type Dispatcher struct {
	set *mixgraph.LayerSet
	cb  Callbacks
}

// NewDispatcher binds callbacks to a layer set.
func NewDispatcher(set *mixgraph.LayerSet, cb Callbacks) *Dispatcher {
	return &Dispatcher{set: set, cb: cb}
}

// PointerOverBackground reports pointer movement over the chart background at
// a time index.
func (d *Dispatcher) PointerOverBackground(timeIndex int) {
	if !d.validTimeIndex(timeIndex) {
		return
	}
	if d.cb.BackgroundHover != nil {
		d.cb.BackgroundHover(timeIndex)
	}
}

// PointerOutBackground reports the pointer leaving the chart background.
func (d *Dispatcher) PointerOutBackground() {
	if d.cb.BackgroundOut != nil {
		d.cb.BackgroundOut()
	}
	if d.cb.MarkerHide != nil {
		d.cb.MarkerHide()
	}
}

// PointerOverLayer reports pointer movement over one layer at a time index.
// It also moves the marker to that datapoint, anchoring the tooltip.
func (d *Dispatcher) PointerOverLayer(layerIndex, timeIndex int, pointer interaction.Point) {
	if !d.validTimeIndex(timeIndex) || layerIndex < 0 || layerIndex >= len(d.set.LayerKeys) {
		return
	}
	if d.cb.LayerHover != nil {
		d.cb.LayerHover(layerIndex, timeIndex)
	}
	if d.cb.MarkerUpdate != nil {
		key := d.set.LayerKeys[layerIndex]
		d.cb.MarkerUpdate(pointer, key, d.set.Data[timeIndex].Source)
	}
}

// PointerOutLayer reports the pointer leaving a layer.
func (d *Dispatcher) PointerOutLayer() {
	if d.cb.LayerOut != nil {
		d.cb.LayerOut()
	}
	if d.cb.MarkerHide != nil {
		d.cb.MarkerHide()
	}
}

func (d *Dispatcher) validTimeIndex(i int) bool {
	return i >= 0 && i < len(d.set.Data)
}
