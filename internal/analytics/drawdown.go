package analytics

import (
	"math"
	"sort"

	"forex-journal/internal/models"
)

// riskConsistencyPlaceholder stands in for a real dispersion measure of
// per-trade risk. The statistical definition is still undecided, so the
// value is fixed rather than computed.
const riskConsistencyPlaceholder = 85

// DrawdownPoint is one step of the chronological equity walk. Drawdown is
// emitted sign-flipped (zero or negative) so charts plot it below zero.
type DrawdownPoint struct {
	Date     string  `json:"date"`
	Equity   float64 `json:"equity"`
	Drawdown float64 `json:"drawdown"`
}

// DrawdownStats summarizes the decline from equity peaks.
type DrawdownStats struct {
	MaxDrawdown     float64         `json:"maxDrawdown"`
	CurrentDrawdown float64         `json:"currentDrawdown"`
	EquityCurve     []DrawdownPoint `json:"equityCurve"`
}

// RiskStats summarizes realized loss sizes and drawdown exposure.
type RiskStats struct {
	AvgRisk         float64 `json:"avgRisk"`
	MaxRisk         float64 `json:"maxRisk"`
	RiskConsistency int     `json:"riskConsistency"`
	CurrentDrawdown float64 `json:"currentDrawdown"`
	MaxDrawdown     float64 `json:"maxDrawdown"`
}

// sortChronological returns a copy ordered by true (date, time)
// timestamp. Unlike the equity curve's date-string ordering, drawdown and
// streak detection need genuine chronological order including
// time-of-day; the two disciplines must not be conflated.
func sortChronological(trades []models.Trade) []models.Trade {
	sorted := make([]models.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp().Before(sorted[j].Timestamp())
	})
	return sorted
}

// GetDrawdownStats walks the trades in chronological order, accumulating
// equity and tracking the decline from the running peak.
func GetDrawdownStats(trades []models.Trade) DrawdownStats {
	sorted := sortChronological(trades)

	var currentEquity, maxEquity, maxDrawdown, currentDrawdown float64
	curve := make([]DrawdownPoint, 0, len(sorted))
	for _, t := range sorted {
		currentEquity += t.ProfitLoss
		if currentEquity > maxEquity {
			maxEquity = currentEquity
		}
		drawdown := maxEquity - currentEquity
		if drawdown > maxDrawdown {
			maxDrawdown = drawdown
		}
		currentDrawdown = drawdown

		curve = append(curve, DrawdownPoint{
			Date:     t.Date,
			Equity:   currentEquity,
			Drawdown: -drawdown,
		})
	}

	return DrawdownStats{
		MaxDrawdown:     round2(maxDrawdown),
		CurrentDrawdown: round2(currentDrawdown),
		EquityCurve:     curve,
	}
}

// GetRiskStats approximates per-trade risk from realized losses: the
// average loss stands in for typical risk, the worst loss for maximum
// risk.
func GetRiskStats(trades []models.Trade) RiskStats {
	var lossSum, worstLoss float64
	lossCount := 0
	for _, t := range trades {
		if t.ProfitLoss < 0 {
			lossSum += t.ProfitLoss
			lossCount++
			if t.ProfitLoss < worstLoss {
				worstLoss = t.ProfitLoss
			}
		}
	}

	var avgLoss, maxLoss float64
	if lossCount > 0 {
		avgLoss = math.Abs(lossSum / float64(lossCount))
		maxLoss = math.Abs(worstLoss)
	}

	dd := GetDrawdownStats(trades)
	return RiskStats{
		AvgRisk:         round2(avgLoss),
		MaxRisk:         round2(maxLoss),
		RiskConsistency: riskConsistencyPlaceholder,
		CurrentDrawdown: dd.CurrentDrawdown,
		MaxDrawdown:     dd.MaxDrawdown,
	}
}
