package models

import "time"

// Trade represents a single journaled trade.
//
// Pips, ProfitLoss and Session are derived fields. They are cached on the
// record for display but are always recomputed from the raw prices when a
// trade is created or edited, so they stay consistent with the calculator.
type Trade struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Pair          string    `json:"pair"`
	Direction     Direction `json:"direction"`
	EntryPrice    float64   `json:"entryPrice"`
	ExitPrice     float64   `json:"exitPrice"`
	StopLoss      float64   `json:"stopLoss"`   // 0 means not set
	TakeProfit    float64   `json:"takeProfit"` // 0 means not set
	LotSize       float64   `json:"lotSize"`
	Pips          float64   `json:"pips"`
	ProfitLoss    float64   `json:"profitLoss"` // account currency (USD)
	Date          string    `json:"date"`       // ISO "2006-01-02"
	Time          string    `json:"time"`       // "15:04", 24-hour
	Session       Session   `json:"session"`
	Strategy      string    `json:"strategy"`
	RulesFollowed bool      `json:"rulesFollowed"`
	Notes         string    `json:"notes"`
	EmotionBefore string    `json:"emotionBefore"`
	EmotionAfter  string    `json:"emotionAfter"`
	Confidence    int       `json:"confidence"` // 1-5, 0 means unset
	Mistakes      []string  `json:"mistakes"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Win reports whether the trade closed with a positive P/L.
func (t Trade) Win() bool {
	return t.ProfitLoss > 0
}

// Timestamp parses the trade's date and time into a single instant.
// Trades with unparseable dates sort before everything else.
func (t Trade) Timestamp() time.Time {
	ts, err := time.Parse("2006-01-02T15:04", t.Date+"T"+t.Time)
	if err != nil {
		return time.Time{}
	}
	return ts
}
