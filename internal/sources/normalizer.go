package sources

import (
	"sort"

	"github.com/veronicaguo/electricitymap-contrib/internal/models"
)

// NormalizeZoneDetails puts an API payload into the shape the mix graph
// expects: history ordered by timestamp, unknown mode keys dropped, aggregate
// fields backfilled when the upstream omitted them, exchange partner keys
// derived from the data when absent, and time bounds set.
func NormalizeZoneDetails(d *models.ZoneDetails) {
	sort.Slice(d.History, func(i, j int) bool {
		return d.History[i].Datetime.Before(d.History[j].Datetime)
	})

	for i := range d.History {
		normalizeRecord(&d.History[i])
	}

	if len(d.ExchangeKeys) == 0 {
		d.ExchangeKeys = collectExchangeKeys(d.History)
	}

	if len(d.History) > 0 {
		if d.StartTime.IsZero() {
			d.StartTime = d.History[0].Datetime
		}
		if d.EndTime.IsZero() {
			d.EndTime = d.History[len(d.History)-1].Datetime
		}
	}
}

func normalizeRecord(r *models.HistoryRecord) {
	for mode := range r.Production {
		if !models.KnownMode(mode) || models.IsStorageMode(mode) {
			delete(r.Production, mode)
		}
	}
	for key := range r.Storage {
		if key != "hydro" && key != "battery" {
			delete(r.Storage, key)
		}
	}

	if r.TotalProduction == 0 && r.TotalImport == 0 && r.TotalDischarge == 0 {
		backfillAggregates(r)
	}
}

// backfillAggregates recomputes the power and CO₂ totals from the breakdowns.
// CO₂ rates are gCO₂eq/h: MW × 1000 gives kWh per hour, times gCO₂eq/kWh.
func backfillAggregates(r *models.HistoryRecord) {
	for mode, v := range r.Production {
		if v == nil {
			continue
		}
		r.TotalProduction += *v
		if intensity, ok := r.ProductionCO2Intensities[mode]; ok {
			r.TotalCO2Production += *v * 1e3 * intensity
		}
	}
	for key, v := range r.Storage {
		if v == nil || *v <= 0 {
			continue // charging does not count as discharge
		}
		r.TotalDischarge += *v
		if intensity, ok := r.DischargeCO2Intensities[key]; ok {
			r.TotalCO2Discharge += *v * 1e3 * intensity
		}
	}
	for partner, v := range r.Exchange {
		if v <= 0 {
			continue // exports do not count as import
		}
		r.TotalImport += v
		if intensity, ok := r.ExchangeCO2Intensities[partner]; ok {
			r.TotalCO2Import += v * 1e3 * intensity
		}
	}
}

func collectExchangeKeys(history []models.HistoryRecord) []string {
	seen := map[string]bool{}
	for i := range history {
		for partner := range history[i].Exchange {
			seen[partner] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
