package analytics

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"forex-journal/internal/models"
)

// tradeGen generates journal trades with realistic field values.
func tradeGen() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf("EUR/USD", "GBP/USD", "USD/JPY", "USD/CHF", "AUD/USD", "XAU/USD"),
		gen.OneConstOf(models.Buy, models.Sell),
		gen.Float64Range(0.5, 2000.0),
		gen.Float64Range(0.5, 2000.0),
		gen.Float64Range(0.01, 5.0),
		gen.IntRange(0, 364),
		gen.IntRange(0, 23),
		gen.Float64Range(-500.0, 500.0),
		gen.IntRange(0, 5),
	).Map(func(vals []interface{}) models.Trade {
		day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, vals[5].(int))
		hour := vals[6].(int)
		return models.Trade{
			Pair:       vals[0].(string),
			Direction:  vals[1].(models.Direction),
			EntryPrice: vals[2].(float64),
			ExitPrice:  vals[3].(float64),
			LotSize:    vals[4].(float64),
			Date:       day.Format("2006-01-02"),
			Time:       fmt.Sprintf("%02d:00", hour),
			ProfitLoss: round2(vals[7].(float64)),
			Confidence: vals[8].(int),
		}
	})
}

func tradeSliceGen(maxLen int) gopter.Gen {
	return gen.SliceOfN(maxLen, tradeGen())
}

// TestProperty_PipsAntisymmetric tests that flipping the trade direction
// negates the pip result.
func TestProperty_PipsAntisymmetric(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	properties.Property("Opposite directions yield opposite pips", prop.ForAll(
		func(trade models.Trade) bool {
			flipped := trade
			if trade.Direction == models.Buy {
				flipped.Direction = models.Sell
			} else {
				flipped.Direction = models.Buy
			}
			a := CalculatePips(trade.Pair, trade.EntryPrice, trade.ExitPrice, trade.Direction)
			b := CalculatePips(flipped.Pair, flipped.EntryPrice, flipped.ExitPrice, flipped.Direction)
			return math.Abs(a+b) < 1e-9
		},
		tradeGen(),
	))

	properties.TestingRun(t)
}

// TestProperty_QualityScoreWithinBounds tests that quality scores stay in
// [0, 100] and carry a consistent letter grade.
func TestProperty_QualityScoreWithinBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	properties.Property("Quality score in [0, 100] with matching grade", prop.ForAll(
		func(trade models.Trade, rules bool, emotion string, mistakes bool) bool {
			trade.RulesFollowed = rules
			trade.EmotionBefore = emotion
			if mistakes {
				trade.Mistakes = []string{"late entry"}
			}
			q := GetTradeQuality(trade)
			if q.Score < 0 || q.Score > 100 {
				return false
			}
			switch {
			case q.Score >= 90:
				return q.Grade == "A"
			case q.Score >= 80:
				return q.Grade == "B"
			case q.Score >= 70:
				return q.Grade == "C"
			case q.Score >= 60:
				return q.Grade == "D"
			default:
				return q.Grade == "F"
			}
		},
		tradeGen(),
		gen.Bool(),
		gen.OneConstOf("Calm", "Confident", "Fear", "Greed", "Anxiety", ""),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// TestProperty_ExpectancySortedAndComplete tests that grouped expectancy
// results come back sorted by expectancy descending and account for every
// trade exactly once.
func TestProperty_ExpectancySortedAndComplete(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	properties.Property("Expectancy groups are sorted and exhaustive", prop.ForAll(
		func(trades []models.Trade, key GroupKey) bool {
			results := ExpectancyBy(trades, key)
			total := 0
			for i, r := range results {
				total += r.Count
				if i > 0 && results[i-1].Expectancy < r.Expectancy {
					return false
				}
			}
			return total == len(trades)
		},
		tradeSliceGen(40),
		gen.OneConstOf(GroupPair, GroupDirection, GroupHour, GroupDay, GroupSession),
	))

	properties.TestingRun(t)
}

// TestProperty_DrawdownInvariants tests that drawdown stats are
// non-negative, that the maximum dominates the current value, and that
// the input slice is left untouched.
func TestProperty_DrawdownInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	properties.Property("Drawdown is non-negative and input stays unmodified", prop.ForAll(
		func(trades []models.Trade) bool {
			before := make([]models.Trade, len(trades))
			copy(before, trades)

			stats := GetDrawdownStats(trades)

			for i := range trades {
				if trades[i].Date != before[i].Date || trades[i].ProfitLoss != before[i].ProfitLoss {
					return false
				}
			}
			if stats.MaxDrawdown < 0 || stats.CurrentDrawdown < 0 {
				return false
			}
			return stats.MaxDrawdown >= stats.CurrentDrawdown
		},
		tradeSliceGen(40),
	))

	properties.TestingRun(t)
}
