package models

import "time"

// HistoryRecord is one time-stamped observation of a zone's electricity mix.
// Power values are in MW. Carbon intensities are in gCO₂eq/kWh. CO₂ aggregate
// fields are in gCO₂eq/h.
//
// Production values use pointers because the upstream API reports null for
// modes it could not estimate; a missing or null entry means "no data", not
// zero. Storage is net power with positive meaning discharging and negative
// meaning charging. Exchange is net power with positive meaning import.
type HistoryRecord struct {
	Datetime time.Time `json:"datetime"`

	Production map[string]*float64 `json:"production"`
	Storage    map[string]*float64 `json:"storage"`
	Exchange   map[string]float64  `json:"exchange"`

	ProductionCO2Intensities map[string]float64 `json:"productionCo2Intensities"`
	DischargeCO2Intensities  map[string]float64 `json:"dischargeCo2Intensities"`
	ExchangeCO2Intensities   map[string]float64 `json:"exchangeCo2Intensities"`

	TotalProduction float64 `json:"totalProduction"`
	TotalImport     float64 `json:"totalImport"`
	TotalDischarge  float64 `json:"totalDischarge"`

	TotalCO2Production float64 `json:"totalCo2Production"`
	TotalCO2Import     float64 `json:"totalCo2Import"`
	TotalCO2Discharge  float64 `json:"totalCo2Discharge"`
}

// ProductionValue returns the production power for a generation mode.
// The second return is false when the mode is absent or null.
func (r *HistoryRecord) ProductionValue(mode string) (float64, bool) {
	v, ok := r.Production[mode]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// StorageValue returns the net storage power for a storage display mode
// (e.g. "battery storage" reads the "battery" entry of the storage breakdown).
// The second return is false when the entry is absent or null.
func (r *HistoryRecord) StorageValue(mode string) (float64, bool) {
	key := StorageKey(mode)
	if key == "" {
		return 0, false
	}
	v, ok := r.Storage[key]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// ExchangeValue returns the net exchange power with a partner zone.
func (r *HistoryRecord) ExchangeValue(partner string) (float64, bool) {
	v, ok := r.Exchange[partner]
	return v, ok
}

// ProductionIntensity returns the carbon intensity of a generation mode.
func (r *HistoryRecord) ProductionIntensity(mode string) (float64, bool) {
	v, ok := r.ProductionCO2Intensities[mode]
	return v, ok
}

// DischargeIntensity returns the carbon intensity of discharging a storage
// display mode.
func (r *HistoryRecord) DischargeIntensity(mode string) (float64, bool) {
	v, ok := r.DischargeCO2Intensities[StorageKey(mode)]
	return v, ok
}

// ExchangeIntensity returns the carbon intensity of imports from a partner.
func (r *HistoryRecord) ExchangeIntensity(partner string) (float64, bool) {
	v, ok := r.ExchangeCO2Intensities[partner]
	return v, ok
}

// ZoneDetails holds everything the mix graph needs for one zone.
type ZoneDetails struct {
	ZoneID       string          `json:"zoneKey"`
	History      []HistoryRecord `json:"history"`
	ExchangeKeys []string        `json:"exchangeKeys"`
	StartTime    time.Time       `json:"startTime"`
	EndTime      time.Time       `json:"endTime"`
}
