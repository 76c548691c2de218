package server

import (
	"fmt"
	"strings"

	"github.com/veronicaguo/electricitymap-contrib/internal/interaction"
	"github.com/veronicaguo/electricitymap-contrib/internal/mixgraph"
)

// RenderTooltip renders the tooltip HTML for the hovered layer. Exchange
// layers get the exchange flavor, everything else the production flavor.
func RenderTooltip(ls *mixgraph.LayerSet, tip *interaction.Tooltip) string {
	if tip == nil || tip.Source == nil {
		return ""
	}
	if ls.IsExchangeKey(tip.Mode) {
		return renderExchangeTooltip(tip)
	}
	return renderProductionTooltip(tip)
}

// renderProductionTooltip shows the mode's power and carbon intensity.
func renderProductionTooltip(tip *interaction.Tooltip) string {
	src := tip.Source
	var b strings.Builder

	fmt.Fprintf(&b, "<div class=\"tooltip tooltip-production\">\n")
	fmt.Fprintf(&b, "<strong>%s</strong><br>\n", tip.Mode)
	fmt.Fprintf(&b, "%s<br>\n", src.Datetime.Format("Jan 02 15:04"))

	var value float64
	var present bool
	var intensity float64
	var known bool
	if storage, ok := src.StorageValue(tip.Mode); ok {
		present = true
		if storage > 0 {
			value = storage
		}
		intensity, known = src.DischargeIntensity(tip.Mode)
	} else if prod, ok := src.ProductionValue(tip.Mode); ok {
		present = true
		value = prod
		intensity, known = src.ProductionIntensity(tip.Mode)
	}

	if present {
		fmt.Fprintf(&b, "%.1f MW<br>\n", value)
	} else {
		fmt.Fprintf(&b, "no data<br>\n")
	}
	if known {
		fmt.Fprintf(&b, "%.0f gCO₂eq/kWh\n", intensity)
	}
	b.WriteString("</div>\n")
	return b.String()
}

// renderExchangeTooltip shows the import power and the partner's intensity.
func renderExchangeTooltip(tip *interaction.Tooltip) string {
	src := tip.Source
	var b strings.Builder

	fmt.Fprintf(&b, "<div class=\"tooltip tooltip-exchange\">\n")
	fmt.Fprintf(&b, "<strong>import from %s</strong><br>\n", tip.Mode)
	fmt.Fprintf(&b, "%s<br>\n", src.Datetime.Format("Jan 02 15:04"))

	if value, ok := src.ExchangeValue(tip.Mode); ok {
		if value < 0 {
			value = 0 // exporting; nothing shown in the import layer
		}
		fmt.Fprintf(&b, "%.1f MW<br>\n", value)
	} else {
		fmt.Fprintf(&b, "no data<br>\n")
	}
	if intensity, ok := src.ExchangeIntensity(tip.Mode); ok {
		fmt.Fprintf(&b, "%.0f gCO₂eq/kWh\n", intensity)
	}
	b.WriteString("</div>\n")
	return b.String()
}
