package analytics

import (
	"math"
	"sort"

	"forex-journal/internal/models"
)

// EquityPoint is one step of the cumulative equity curve, one point per
// trade (several trades on the same day produce several points).
type EquityPoint struct {
	Date   string  `json:"date"`
	Equity float64 `json:"equity"`
}

// StrategyStats summarizes performance for one strategy.
type StrategyStats struct {
	Strategy string  `json:"strategy"`
	Profit   float64 `json:"profit"`
	Trades   int     `json:"trades"`
	WinRate  int     `json:"winRate"`
}

// WinRate returns the percentage of trades with positive P/L, rounded to
// the nearest whole number. Empty input yields 0.
func WinRate(trades []models.Trade) int {
	if len(trades) == 0 {
		return 0
	}
	wins := 0
	for _, t := range trades {
		if t.ProfitLoss > 0 {
			wins++
		}
	}
	return int(math.Round(float64(wins) / float64(len(trades)) * 100))
}

// NetProfit returns the sum of all P/L, rounded to two decimals.
func NetProfit(trades []models.Trade) float64 {
	sum := 0.0
	for _, t := range trades {
		sum += t.ProfitLoss
	}
	return round2(sum)
}

// EdgeScore normalizes per-trade expectancy onto a 0-100 scale.
// Fewer than 3 trades is not enough signal and scores 0.
func EdgeScore(trades []models.Trade) int {
	if len(trades) < 3 {
		return 0
	}
	var winSum, lossSum float64
	var winCount, lossCount int
	for _, t := range trades {
		if t.ProfitLoss > 0 {
			winSum += t.ProfitLoss
			winCount++
		} else {
			lossSum += t.ProfitLoss
			lossCount++
		}
	}
	winRate := float64(winCount) / float64(len(trades))
	lossRate := 1 - winRate
	var avgWin, avgLoss float64
	if winCount > 0 {
		avgWin = winSum / float64(winCount)
	}
	if lossCount > 0 {
		avgLoss = math.Abs(lossSum / float64(lossCount))
	}
	expectancy := winRate*avgWin - lossRate*avgLoss
	raw := math.Min(math.Max(expectancy/50+50, 0), 100)
	return int(math.Round(raw))
}

// DisciplineScore starts at 100 and penalizes rule violations and
// overtrading (more than 5 trades in a day), clamped to [0,100].
func DisciplineScore(trades []models.Trade) int {
	if len(trades) == 0 {
		return 0
	}
	score := 100.0

	violations := 0
	perDay := make(map[string]int)
	for _, t := range trades {
		if !t.RulesFollowed {
			violations++
		}
		perDay[t.Date]++
	}
	score -= float64(violations) / float64(len(trades)) * 50

	overtradeDays := 0
	for _, n := range perDay {
		if n > 5 {
			overtradeDays++
		}
	}
	if len(perDay) > 0 {
		score -= float64(overtradeDays) / float64(len(perDay)) * 50
	}

	return int(math.Round(math.Max(0, math.Min(100, score))))
}

// ProfitFactor returns gross profit divided by absolute gross loss,
// rounded to two decimals. With no losing trades it returns 100 for a
// profitable record and 0 otherwise.
func ProfitFactor(trades []models.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	var grossProfit, grossLoss float64
	for _, t := range trades {
		if t.ProfitLoss > 0 {
			grossProfit += t.ProfitLoss
		} else if t.ProfitLoss < 0 {
			grossLoss += t.ProfitLoss
		}
	}
	grossLoss = math.Abs(grossLoss)
	if grossLoss == 0 {
		if grossProfit > 0 {
			return 100
		}
		return 0
	}
	return round2(grossProfit / grossLoss)
}

// AverageRR returns the average winner divided by the average absolute
// loser, rounded to two decimals. 0 if there are no wins or no losses.
func AverageRR(trades []models.Trade) float64 {
	var winSum, lossSum float64
	var winCount, lossCount int
	for _, t := range trades {
		if t.ProfitLoss > 0 {
			winSum += t.ProfitLoss
			winCount++
		} else if t.ProfitLoss < 0 {
			lossSum += t.ProfitLoss
			lossCount++
		}
	}
	if winCount == 0 || lossCount == 0 {
		return 0
	}
	avgWin := winSum / float64(winCount)
	avgLoss := math.Abs(lossSum / float64(lossCount))
	if avgLoss == 0 {
		return 0
	}
	return round2(avgWin / avgLoss)
}

// groupSum is one grouped P/L total, in first-seen order.
type groupSum struct {
	key string
	sum float64
}

func sumByKey(trades []models.Trade, key func(models.Trade) string) []groupSum {
	index := make(map[string]int)
	var groups []groupSum
	for _, t := range trades {
		k := key(t)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, groupSum{key: k})
		}
		groups[i].sum += t.ProfitLoss
	}
	return groups
}

// BestPair returns the instrument with the highest total P/L, "N/A" for
// an empty journal. Ties keep the earliest-seen pair.
func BestPair(trades []models.Trade) string {
	return maxGroup(sumByKey(trades, func(t models.Trade) string { return t.Pair }))
}

// BestStrategy returns the strategy with the highest total P/L.
func BestStrategy(trades []models.Trade) string {
	return maxGroup(sumByKey(trades, func(t models.Trade) string { return t.Strategy }))
}

// WorstSession returns the session with the lowest total P/L.
func WorstSession(trades []models.Trade) string {
	groups := sumByKey(trades, func(t models.Trade) string { return string(t.Session) })
	if len(groups) == 0 {
		return "N/A"
	}
	worst := groups[0]
	for _, g := range groups[1:] {
		if g.sum < worst.sum {
			worst = g
		}
	}
	return worst.key
}

func maxGroup(groups []groupSum) string {
	if len(groups) == 0 {
		return "N/A"
	}
	best := groups[0]
	for _, g := range groups[1:] {
		if g.sum > best.sum {
			best = g
		}
	}
	return best.key
}

// EquityCurve returns the running cumulative P/L, one point per trade,
// ordered by date. ISO dates make plain string comparison chronological;
// trades on the same date keep their input order.
func EquityCurve(trades []models.Trade) []EquityPoint {
	sorted := make([]models.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	equity := 0.0
	curve := make([]EquityPoint, 0, len(sorted))
	for _, t := range sorted {
		equity += t.ProfitLoss
		curve = append(curve, EquityPoint{Date: t.Date, Equity: round2(equity)})
	}
	return curve
}

// StrategyPerformance groups trades by strategy and reports per-strategy
// profit, trade count and win rate, sorted by profit descending.
func StrategyPerformance(trades []models.Trade) []StrategyStats {
	type bucket struct {
		profit float64
		wins   int
		total  int
	}
	index := make(map[string]int)
	var order []string
	var buckets []bucket

	for _, t := range trades {
		strat := t.Strategy
		if strat == "" {
			strat = "Unknown"
		}
		i, ok := index[strat]
		if !ok {
			i = len(buckets)
			index[strat] = i
			order = append(order, strat)
			buckets = append(buckets, bucket{})
		}
		buckets[i].profit += t.ProfitLoss
		buckets[i].total++
		if t.ProfitLoss > 0 {
			buckets[i].wins++
		}
	}

	stats := make([]StrategyStats, 0, len(order))
	for i, strat := range order {
		b := buckets[i]
		stats = append(stats, StrategyStats{
			Strategy: strat,
			Profit:   round2(b.profit),
			Trades:   b.total,
			WinRate:  int(math.Round(float64(b.wins) / float64(b.total) * 100)),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Profit > stats[j].Profit
	})
	return stats
}
