package interaction

import (
	"sync"

	"github.com/veronicaguo/electricitymap-contrib/internal/models"
)

// Controller holds the mix graph's local interaction state and forwards
// selection changes to the shared store. All handlers are pure
// dispatch-and-set-state: no I/O, no retries.
//
// The tooltip has exactly two states: hidden (initial, and after any hide or
// out event) and shown (after a marker update), carrying the last-set payload.
type Controller struct {
	mu    sync.Mutex
	store *Store

	mobile       bool
	hoveredLayer int
	tooltip      *Tooltip
}

// NewController wires a controller to the shared selection store.
func NewController(store *Store, mobile bool) *Controller {
	return &Controller{store: store, hoveredLayer: -1, mobile: mobile}
}

// BackgroundHover publishes the hovered time index while the pointer moves
// over the chart background.
func (c *Controller) BackgroundHover(timeIndex int) {
	c.store.Set(KeySelectedTimeIndex, timeIndex)
}

// BackgroundOut clears the global time selection.
func (c *Controller) BackgroundOut() {
	c.store.Set(KeySelectedTimeIndex, nil)
	c.hideTooltip()
}

// LayerHover publishes the hovered time index and records which layer the
// pointer is over.
func (c *Controller) LayerHover(layerIndex, timeIndex int) {
	c.store.Set(KeySelectedTimeIndex, timeIndex)
	c.mu.Lock()
	c.hoveredLayer = layerIndex
	c.mu.Unlock()
}

// LayerOut clears both the global time selection and the hovered layer.
func (c *Controller) LayerOut() {
	c.store.Set(KeySelectedTimeIndex, nil)
	c.mu.Lock()
	c.hoveredLayer = -1
	c.tooltip = nil
	c.mu.Unlock()
}

// SetMobile switches the tooltip anchoring between the desktop and mobile
// layouts. Callers may flip it per event when the pointer type is only known
// at dispatch time.
func (c *Controller) SetMobile(mobile bool) {
	c.mu.Lock()
	c.mobile = mobile
	c.mu.Unlock()
}

// MarkerUpdate anchors and shows the tooltip for a marker position.
func (c *Controller) MarkerUpdate(pointer Point, layerKey string, source *models.HistoryRecord) {
	c.mu.Lock()
	pos := TooltipPosition(c.mobile, pointer)
	c.tooltip = &Tooltip{Mode: layerKey, Position: pos, Source: source}
	c.mu.Unlock()
}

// MarkerHide hides the tooltip.
func (c *Controller) MarkerHide() {
	c.hideTooltip()
}

func (c *Controller) hideTooltip() {
	c.mu.Lock()
	c.tooltip = nil
	c.mu.Unlock()
}

// Tooltip returns the current tooltip state, nil while hidden.
func (c *Controller) Tooltip() *Tooltip {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tooltip
}

// HoveredLayer returns the hovered layer index, or false when none.
func (c *Controller) HoveredLayer() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hoveredLayer < 0 {
		return 0, false
	}
	return c.hoveredLayer, true
}
