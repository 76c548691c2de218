package mixgraph

import (
	"github.com/veronicaguo/electricitymap-contrib/internal/formatting"
	"github.com/veronicaguo/electricitymap-contrib/internal/models"
)

// AxisScale is the display scale derived once per history batch: the value
// axis label, the divisor applied to every raw value, and the peak combined
// magnitude already expressed in display units (used to size the axis).
type AxisScale struct {
	Label  string
	Factor float64
	Peak   float64
}

// IsZero reports whether the scale carries nothing to render (empty batch).
func (s AxisScale) IsZero() bool {
	return s.Label == "" && s.Factor == 0
}

// ComputeAxisScale derives the display unit and scale factor for a history
// batch.
//
// The peak is the maximum over the batch of total production + total import +
// total storage discharge. When displaying emissions the CO₂ aggregates
// (gCO₂eq/h) are used instead and converted to tCO₂eq/min, the axis label is
// fixed, and values need no further normalization because the per-layer
// intensity conversion already lands in tCO₂eq/min. Otherwise the peak power
// is handed to the power-unit formatter, which picks the unit and divisor.
//
// An empty batch yields the zero AxisScale, signaling nothing to render.
func ComputeAxisScale(history []models.HistoryRecord, displayByEmissions bool) AxisScale {
	if len(history) == 0 {
		return AxisScale{}
	}

	var peak float64
	for i := range history {
		r := &history[i]
		var total float64
		if displayByEmissions {
			total = r.TotalCO2Production + r.TotalCO2Import + r.TotalCO2Discharge
		} else {
			total = r.TotalProduction + r.TotalImport + r.TotalDischarge
		}
		if total > peak {
			peak = total
		}
	}

	if displayByEmissions {
		return AxisScale{
			Label:  "tCO₂eq / min",
			Factor: 1,
			Peak:   peak / 1e6 / 60,
		}
	}

	ps := formatting.ScalePower(peak)
	return AxisScale{
		Label:  ps.Unit,
		Factor: ps.Factor,
		Peak:   peak / ps.Factor,
	}
}
