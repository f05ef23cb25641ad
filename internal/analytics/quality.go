package analytics

import (
	"fmt"
	"math"
	"sort"

	"forex-journal/internal/models"
)

// TradeQuality grades how well a single trade was executed, independent
// of its outcome.
type TradeQuality struct {
	Score  int      `json:"score"` // 0-100
	Grade  string   `json:"grade"` // A-F
	Issues []string `json:"issues"`
}

// LosingPattern describes a recurring behavioral pattern detected across
// losing trades.
type LosingPattern struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Count       int     `json:"count"`
	Impact      float64 `json:"impact"` // total loss attributed, <= 0
}

// negativeEmotions are the pre-trade states that cost quality points.
var negativeEmotions = map[string]bool{
	"Fear":    true,
	"Greed":   true,
	"Anxiety": true,
}

// GetTradeQuality scores a trade's process on a 0-100 scale, deducting
// for broken rules, poor risk:reward planning, missing targets, negative
// emotional state, low confidence and recorded mistakes. Issues lists the
// triggered deductions in check order.
func GetTradeQuality(t models.Trade) TradeQuality {
	score := 100
	var issues []string

	if !t.RulesFollowed {
		score -= 30
		issues = append(issues, "Rules not followed")
	}

	if t.StopLoss > 0 && t.TakeProfit > 0 {
		risk := math.Abs(t.EntryPrice - t.StopLoss)
		reward := math.Abs(t.TakeProfit - t.EntryPrice)
		if risk > 0 {
			rr := reward / risk
			if rr < 1.0 {
				score -= 20
				issues = append(issues, "Poor Risk:Reward (< 1:1)")
			} else if rr < 2.0 {
				score -= 10
				issues = append(issues, "Mediocre Risk:Reward (< 1:2)")
			}
		}
	} else {
		score -= 10
		issues = append(issues, "Missing SL or TP targets")
	}

	if negativeEmotions[t.EmotionBefore] {
		score -= 20
		issues = append(issues, fmt.Sprintf("Negative emotion: %s", t.EmotionBefore))
	}

	// Unset confidence is treated as neutral here, not as low.
	confidence := t.Confidence
	if confidence == 0 {
		confidence = 3
	}
	if confidence < 3 {
		score -= 10
		issues = append(issues, "Low confidence entry")
	}

	if len(t.Mistakes) > 0 {
		score -= 15
		issues = append(issues, "Mistakes recorded")
	}

	grade := "A"
	switch {
	case score < 60:
		grade = "F"
	case score < 70:
		grade = "D"
	case score < 80:
		grade = "C"
	case score < 90:
		grade = "B"
	}

	if score < 0 {
		score = 0
	}
	return TradeQuality{Score: score, Grade: grade, Issues: issues}
}

// DetectLosingPatterns scans the journal for recurring loss behaviors and
// returns the triggered patterns in fixed check order: tilt (losing
// streaks) first, then hesitation (low-confidence losses).
func DetectLosingPatterns(trades []models.Trade) []LosingPattern {
	var patterns []LosingPattern

	sorted := make([]models.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	currentStreak, maxStreak := 0, 0
	for _, t := range sorted {
		if t.ProfitLoss < 0 {
			currentStreak++
			if currentStreak > maxStreak {
				maxStreak = currentStreak
			}
		} else {
			currentStreak = 0
		}
	}
	if maxStreak >= 3 {
		patterns = append(patterns, LosingPattern{
			Name:        "Tilt Warning",
			Description: fmt.Sprintf("You have had a streak of %d consecutive losses.", maxStreak),
			Count:       maxStreak,
			Impact:      0,
		})
	}

	// Unset confidence counts as low here: a loss the trader could not
	// even rate is part of the hesitation signal.
	lowConfCount := 0
	lowConfImpact := 0.0
	for _, t := range trades {
		if t.ProfitLoss < 0 && t.Confidence < 3 {
			lowConfCount++
			lowConfImpact += t.ProfitLoss
		}
	}
	if lowConfCount > 2 {
		patterns = append(patterns, LosingPattern{
			Name:        "Hesitation Tax",
			Description: "You tend to lose when your confidence is low.",
			Count:       lowConfCount,
			Impact:      lowConfImpact,
		})
	}

	return patterns
}
