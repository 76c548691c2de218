package formatting

// Static fill colors for generation and storage layers, keyed by display mode
// name. Exchange layers do not appear here; their fill is derived per
// datapoint from the partner's carbon intensity.
var modeColors = map[string]string{
	"nuclear":         "#AEB800",
	"geothermal":      "#FFB900",
	"biomass":         "#166A57",
	"coal":            "#AC8C35",
	"wind":            "#74CDB9",
	"solar":           "#F27406",
	"hydro":           "#2772B2",
	"hydro storage":   "#0052CC",
	"battery storage": "#B76BA3",
	"gas":             "#BB2F51",
	"oil":             "#867D66",
	"unknown":         "#ACACAC",
}

// Colorblind-safe variants for the handful of modes whose default colors are
// hard to tell apart under deuteranopia. Modes not listed fall back to the
// standard palette.
var modeColorsColorBlind = map[string]string{
	"nuclear":    "#885EAD",
	"geothermal": "#CF7D28",
	"biomass":    "#097F6D",
	"wind":       "#56B4E9",
	"solar":      "#E69F00",
	"hydro":      "#0072B2",
	"gas":        "#D55E00",
	"coal":       "#6B6B6B",
}

// ModeColor returns the static fill color for a generation or storage mode.
// Unlisted modes share the "unknown" gray.
func ModeColor(mode string, colorBlind bool) string {
	if colorBlind {
		if c, ok := modeColorsColorBlind[mode]; ok {
			return c
		}
	}
	if c, ok := modeColors[mode]; ok {
		return c
	}
	return modeColors["unknown"]
}
