package analytics

import (
	"math"
	"strings"

	"forex-journal/internal/models"
)

// jpyFallbackRate approximates USD/JPY when no usable exit price is
// available to convert a JPY-quoted profit into USD.
const jpyFallbackRate = 150

// CalculatePips returns the signed pip distance between entry and exit,
// rounded to one decimal place. A BUY profits when exit > entry, a SELL
// when entry > exit.
func CalculatePips(pair string, entry, exit float64, direction models.Direction) float64 {
	props := GetSymbolProperties(pair)
	diff := exit - entry
	if direction == models.Sell {
		diff = entry - exit
	}
	return round1(diff * props.PipMultiplier)
}

// CalculatePL converts a signed pip distance into profit or loss in the
// account currency (USD), rounded to two decimal places.
//
// The raw profit is denominated in the pair's quote currency. Conversion
// to USD reuses the pair's own exit price as the USD/quote rate, which is
// exact when the traded pair is the USD/quote pair itself (USD/JPY,
// USD/CHF, USD/CAD) and a known approximation for crosses such as EUR/JPY.
// JPY-quoted trades without a usable exit price fall back to a constant
// approximate rate. Anything still unconverted is returned as-is. The
// branch order below is deliberate and must not be rearranged.
func CalculatePL(pips, lotSize float64, pair string, entryPrice, exitPrice float64) float64 {
	props := GetSymbolProperties(pair)
	rawProfit := pips / props.PipMultiplier * props.ContractSize * lotSize

	quote := quoteCurrency(pair)

	if quote == "USD" {
		return round2(rawProfit)
	}
	if (quote == "JPY" || quote == "CHF" || quote == "CAD") && exitPrice > 0 {
		return round2(rawProfit / exitPrice)
	}
	if quote == "JPY" {
		return round2(rawProfit / jpyFallbackRate)
	}
	if strings.HasPrefix(pair, "USD/") && exitPrice > 0 {
		return round2(rawProfit / exitPrice)
	}
	return round2(rawProfit)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
