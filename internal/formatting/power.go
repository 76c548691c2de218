package formatting

// PowerScale describes the display unit chosen for a set of power values and
// the divisor that normalizes MW values into that unit.
type PowerScale struct {
	Unit   string
	Factor float64
}

// ScalePower picks the best display unit for a peak power value in MW.
// The returned Factor is what raw MW values should be divided by so they read
// naturally in the chosen unit.
func ScalePower(maxPowerMW float64) PowerScale {
	switch {
	case maxPowerMW < 1e-3:
		return PowerScale{Unit: "W", Factor: 1e-6}
	case maxPowerMW < 1:
		return PowerScale{Unit: "kW", Factor: 1e-3}
	case maxPowerMW < 1e3:
		return PowerScale{Unit: "MW", Factor: 1}
	case maxPowerMW < 1e6:
		return PowerScale{Unit: "GW", Factor: 1e3}
	default:
		return PowerScale{Unit: "TW", Factor: 1e6}
	}
}
