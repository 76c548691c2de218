package mixgraph

import (
	"math"
	"time"

	"github.com/veronicaguo/electricitymap-contrib/internal/formatting"
	"github.com/veronicaguo/electricitymap-contrib/internal/models"
)

// BuildOptions are the inputs the layer derivation depends on. Recomputation
// happens whenever any of them (or the history batch) changes.
type BuildOptions struct {
	ColorBlind         bool
	DisplayByEmissions bool
	MixMode            models.ElectricityMixMode
	ExchangeKeys       []string
}

// LayerRecord is one chart datapoint: a value per layer key in display units,
// plus a back-reference to the originating history record for tooltip lookup.
// Source lives outside the Values map so it can never collide with a mode or
// exchange partner key.
type LayerRecord struct {
	Datetime time.Time
	Values   map[string]float64
	Source   *models.HistoryRecord
}

// LayerFill describes how one layer is filled. Static fills return the same
// color for every datapoint; exchange layers are dynamic, colored per
// datapoint by the partner's carbon intensity on the source record.
type LayerFill struct {
	Dynamic bool
	Color   func(rec *LayerRecord) string
}

// LayerSet is the prepared chart dataset: one LayerRecord per history record,
// the layer stacking order, and the value axis scale.
type LayerSet struct {
	Data      []LayerRecord
	LayerKeys []string
	Scale     AxisScale

	opts         BuildOptions
	exchangeKeys map[string]bool
}

// AxisLabel returns the value axis label ("" when there is nothing to render).
func (ls *LayerSet) AxisLabel() string { return ls.Scale.Label }

// Empty reports whether the set carries no renderable data.
func (ls *LayerSet) Empty() bool { return len(ls.Data) == 0 }

// IsExchangeKey reports whether a layer key refers to an exchange partner.
func (ls *LayerSet) IsExchangeKey(key string) bool { return ls.exchangeKeys[key] }

// FillFor returns the fill for a layer key. Exchange partners get a
// per-datapoint color from the CO₂ scale; every other layer gets its static
// mode color.
func (ls *LayerSet) FillFor(key string) LayerFill {
	if ls.exchangeKeys[key] {
		scale := formatting.CO2Scale{ColorBlind: ls.opts.ColorBlind}
		return LayerFill{
			Dynamic: true,
			Color: func(rec *LayerRecord) string {
				if rec == nil || rec.Source == nil {
					return formatting.ModeColor("unknown", ls.opts.ColorBlind)
				}
				intensity, _ := rec.Source.ExchangeIntensity(key)
				return scale.ColorFor(intensity)
			},
		}
	}
	color := formatting.ModeColor(key, ls.opts.ColorBlind)
	return LayerFill{Color: func(*LayerRecord) string { return color }}
}

// Build derives the layered chart dataset from a history batch.
//
// Per record, for every mode in the fixed mode order: storage modes contribute
// only net discharge (charging clamps to zero), generation modes read the
// production breakdown directly. Values are normalized by the axis scale
// factor, then converted to an emission rate when emissions display is active,
// the raw value is finite and the mode's carbon intensity is known; otherwise
// the value is left in power units (a known display edge case, not an error).
//
// In consumption mix mode one extra field per exchange partner is emitted,
// floored at zero so only net imports show, with the same emissions
// conversion via the exchange intensity table. Exchange keys stack strictly
// after the fixed modes so they draw on top.
func Build(history []models.HistoryRecord, opts BuildOptions) *LayerSet {
	scale := ComputeAxisScale(history, opts.DisplayByEmissions)
	if scale.IsZero() {
		return &LayerSet{opts: opts, exchangeKeys: map[string]bool{}}
	}

	withExchanges := opts.MixMode == models.MixModeConsumption

	data := make([]LayerRecord, 0, len(history))
	for i := range history {
		src := &history[i]
		values := make(map[string]float64, len(models.ModeOrder)+len(opts.ExchangeKeys))

		for _, mode := range models.ModeOrder {
			var raw float64
			var present bool
			if models.IsStorageMode(mode) {
				raw, present = src.StorageValue(mode)
				if raw < 0 {
					raw = 0 // charging
				}
			} else {
				raw, present = src.ProductionValue(mode)
			}

			value := raw / scale.Factor
			if opts.DisplayByEmissions && present && isFinite(raw) {
				var intensity float64
				var known bool
				if models.IsStorageMode(mode) {
					intensity, known = src.DischargeIntensity(mode)
				} else {
					intensity, known = src.ProductionIntensity(mode)
				}
				if known {
					value *= intensity / 1e3 / 60 // gCO₂eq/kWh at MW → tCO₂eq/min
				}
			}
			values[mode] = value
		}

		if withExchanges {
			for _, partner := range opts.ExchangeKeys {
				raw, present := src.ExchangeValue(partner)
				if raw < 0 {
					raw = 0 // exports are not shown
				}
				value := raw / scale.Factor
				if opts.DisplayByEmissions && present && isFinite(raw) {
					if intensity, known := src.ExchangeIntensity(partner); known {
						value *= intensity / 1e3 / 60
					}
				}
				values[partner] = value
			}
		}

		data = append(data, LayerRecord{Datetime: src.Datetime, Values: values, Source: src})
	}

	keys := make([]string, 0, len(models.ModeOrder)+len(opts.ExchangeKeys))
	keys = append(keys, models.ModeOrder...)
	exchangeKeys := make(map[string]bool, len(opts.ExchangeKeys))
	if withExchanges {
		keys = append(keys, opts.ExchangeKeys...)
		for _, k := range opts.ExchangeKeys {
			exchangeKeys[k] = true
		}
	}

	return &LayerSet{
		Data:         data,
		LayerKeys:    keys,
		Scale:        scale,
		opts:         opts,
		exchangeKeys: exchangeKeys,
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
