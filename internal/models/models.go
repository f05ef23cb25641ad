// Package models provides domain models for the trading journal.
package models

// Direction represents the side of a trade.
type Direction string

const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
)

// Session represents a coarse time-of-day trading session.
type Session string

const (
	SessionAsian   Session = "Asian"
	SessionLondon  Session = "London"
	SessionNewYork Session = "New York"
)

// Plan represents a subscription tier.
type Plan string

const (
	PlanFree     Plan = "free"
	PlanPro      Plan = "pro"
	PlanUltimate Plan = "ultimate"
)

// Valid reports whether p is a known plan tier.
func (p Plan) Valid() bool {
	switch p {
	case PlanFree, PlanPro, PlanUltimate:
		return true
	}
	return false
}

// FreeTradeLimit is the maximum number of stored trades on the free plan.
const FreeTradeLimit = 50

// Strategies is the default strategy vocabulary offered by the journal.
var Strategies = []string{
	"Breakout",
	"Trend Following",
	"Scalping",
	"Swing Trading",
	"News Trading",
}

// Pairs is the default instrument vocabulary offered by the journal.
var Pairs = []string{
	"EUR/USD", "GBP/USD", "USD/JPY", "USD/CHF", "AUD/USD", "USD/CAD", "NZD/USD",
	"EUR/GBP", "EUR/JPY", "GBP/JPY",
	"XAU/USD", "XAG/USD",
	"BTC/USD", "ETH/USD",
	"US30", "NAS100", "SPX500",
}

// Emotions is the fixed vocabulary for pre/post-trade emotional state.
var Emotions = []string{
	"Neutral", "Confidence", "Excitement", "Fear", "Greed", "Anxiety",
}
