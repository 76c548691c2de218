package models

// ElectricityMixMode selects whether displayed totals reflect local production
// only, or production adjusted for net imports ("consumption").
type ElectricityMixMode string

const (
	MixModeProduction  ElectricityMixMode = "production"
	MixModeConsumption ElectricityMixMode = "consumption"
)

// Mode order used for stacking layers in the mix graph. Generation modes come
// first, storage modes last; exchange layers are appended after all of these so
// they always render on top.
var ModeOrder = []string{
	"nuclear",
	"geothermal",
	"biomass",
	"coal",
	"wind",
	"solar",
	"hydro",
	"hydro storage",
	"battery storage",
	"gas",
	"oil",
	"unknown",
}

// storageModes maps a display mode name to the key used in the storage
// breakdown of a history record.
var storageModes = map[string]string{
	"hydro storage":   "hydro",
	"battery storage": "battery",
}

// IsStorageMode reports whether a mode name refers to a storage layer.
func IsStorageMode(mode string) bool {
	_, ok := storageModes[mode]
	return ok
}

// StorageKey returns the storage breakdown key for a storage mode name.
// Returns "" for non-storage modes.
func StorageKey(mode string) string {
	return storageModes[mode]
}

// KnownMode reports whether a mode name appears in ModeOrder.
func KnownMode(mode string) bool {
	for _, m := range ModeOrder {
		if m == mode {
			return true
		}
	}
	return false
}
