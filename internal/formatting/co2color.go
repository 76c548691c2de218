package formatting

import (
	"fmt"
	"math"
)

// CO2Scale maps a carbon intensity (gCO₂eq/kWh) to a fill color. The
// colorblind variant swaps the green-to-brown ramp for a blue-to-orange ramp
// that stays readable with the most common color vision deficiencies.
type CO2Scale struct {
	ColorBlind bool
}

// Intensity stops shared by both palettes.
var co2Stops = []float64{0, 150, 600, 750, 800}

var co2Colors = []string{"#2AA364", "#F5EB4D", "#9E4229", "#381D02", "#381D02"}

var co2ColorsColorBlind = []string{"#0571B0", "#92C5DE", "#F4A582", "#CA0020", "#CA0020"}

// ColorFor returns the hex fill color for a carbon intensity, interpolating
// linearly between the palette stops. Values outside the stop range clamp to
// the palette ends.
func (s CO2Scale) ColorFor(intensity float64) string {
	colors := co2Colors
	if s.ColorBlind {
		colors = co2ColorsColorBlind
	}
	if intensity <= co2Stops[0] {
		return colors[0]
	}
	last := len(co2Stops) - 1
	if intensity >= co2Stops[last] {
		return colors[last]
	}
	for i := 1; i <= last; i++ {
		if intensity <= co2Stops[i] {
			t := (intensity - co2Stops[i-1]) / (co2Stops[i] - co2Stops[i-1])
			return lerpHex(colors[i-1], colors[i], t)
		}
	}
	return colors[last]
}

// lerpHex interpolates two "#RRGGBB" colors component-wise.
func lerpHex(a, b string, t float64) string {
	ar, ag, ab := parseHex(a)
	br, bg, bb := parseHex(b)
	lerp := func(x, y int) int {
		return x + int(math.Round(t*float64(y-x)))
	}
	return fmt.Sprintf("#%02X%02X%02X", lerp(ar, br), lerp(ag, bg), lerp(ab, bb))
}

func parseHex(c string) (r, g, b int) {
	fmt.Sscanf(c, "#%02x%02x%02x", &r, &g, &b)
	return r, g, b
}
