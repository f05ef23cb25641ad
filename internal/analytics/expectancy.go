package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"forex-journal/internal/models"
)

// GroupKey selects the dimension ExpectancyBy buckets trades on. The set
// is closed: only the listed keys are legal.
type GroupKey string

const (
	GroupPair      GroupKey = "pair"
	GroupStrategy  GroupKey = "strategy"
	GroupSession   GroupKey = "session"
	GroupDirection GroupKey = "direction"
	GroupEmotion   GroupKey = "emotion"
	GroupHour      GroupKey = "hour"
	GroupDay       GroupKey = "day"
)

// GroupKeys lists every legal grouping dimension.
var GroupKeys = []GroupKey{
	GroupPair, GroupStrategy, GroupSession, GroupDirection,
	GroupEmotion, GroupHour, GroupDay,
}

// ParseGroupKey validates a user-supplied grouping dimension.
func ParseGroupKey(s string) (GroupKey, bool) {
	for _, k := range GroupKeys {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// ExpectancyResult is one bucket of a grouped expectancy breakdown.
type ExpectancyResult struct {
	Group      string  `json:"group"`
	WinRate    int     `json:"winRate"`
	Profit     float64 `json:"profit"`
	Count      int     `json:"count"`
	Expectancy float64 `json:"expectancy"`
}

// TradingWindow names the hour and weekday buckets with the highest
// expectancy.
type TradingWindow struct {
	BestHour string `json:"bestHour"`
	BestDay  string `json:"bestDay"`
}

// groupValue derives a trade's bucket label for the given key. Empty
// values bucket under "Unknown".
func groupValue(t models.Trade, key GroupKey) string {
	var v string
	switch key {
	case GroupHour:
		v = t.Time
		if i := strings.Index(v, ":"); i >= 0 {
			v = v[:i]
		}
		if v != "" {
			v += ":00"
		}
	case GroupDay:
		if d, err := time.Parse("2006-01-02", t.Date); err == nil {
			v = d.Weekday().String()
		}
	case GroupPair:
		v = t.Pair
	case GroupStrategy:
		v = t.Strategy
	case GroupSession:
		v = string(t.Session)
	case GroupDirection:
		v = string(t.Direction)
	case GroupEmotion:
		v = t.EmotionBefore
	}
	if v == "" {
		return "Unknown"
	}
	return v
}

// ExpectancyBy buckets trades on the given dimension and computes
// per-bucket win rate, profit and expectancy (winRate x avgWin - lossRate
// x avgLoss). The result is sorted by expectancy descending; that
// ordering is what makes index 0 the "best" bucket.
func ExpectancyBy(trades []models.Trade, key GroupKey) []ExpectancyResult {
	index := make(map[string]int)
	var order []string
	var buckets [][]models.Trade

	for _, t := range trades {
		g := groupValue(t, key)
		i, ok := index[g]
		if !ok {
			i = len(buckets)
			index[g] = i
			order = append(order, g)
			buckets = append(buckets, nil)
		}
		buckets[i] = append(buckets[i], t)
	}

	results := make([]ExpectancyResult, 0, len(order))
	for i, group := range order {
		bucket := buckets[i]

		var winSum, lossSum, profit float64
		var winCount, lossCount int
		for _, t := range bucket {
			profit += t.ProfitLoss
			if t.ProfitLoss > 0 {
				winSum += t.ProfitLoss
				winCount++
			} else {
				lossSum += t.ProfitLoss
				lossCount++
			}
		}

		winRate := float64(winCount) / float64(len(bucket)) * 100
		var avgWin, avgLoss float64
		if winCount > 0 {
			avgWin = winSum / float64(winCount)
		}
		if lossCount > 0 {
			avgLoss = math.Abs(lossSum / float64(lossCount))
		}
		expectancy := winRate/100*avgWin - (1-winRate/100)*avgLoss

		results = append(results, ExpectancyResult{
			Group:      group,
			WinRate:    int(math.Round(winRate)),
			Profit:     round2(profit),
			Count:      len(bucket),
			Expectancy: round2(expectancy),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Expectancy > results[j].Expectancy
	})
	return results
}

// BestTradingWindow returns the hour-of-day and weekday buckets with the
// highest expectancy, or "N/A" with no trades.
func BestTradingWindow(trades []models.Trade) TradingWindow {
	w := TradingWindow{BestHour: "N/A", BestDay: "N/A"}
	if byHour := ExpectancyBy(trades, GroupHour); len(byHour) > 0 {
		w.BestHour = byHour[0].Group
	}
	if byDay := ExpectancyBy(trades, GroupDay); len(byDay) > 0 {
		w.BestDay = byDay[0].Group
	}
	return w
}
