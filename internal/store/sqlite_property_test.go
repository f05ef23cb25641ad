package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"forex-journal/internal/models"
)

// TestProperty_TradeRoundTrip saves generated trades and reads them back,
// checking that raw fields survive unchanged and that the derived fields
// stored on the row match what the calculator produces from the raw
// prices.
func TestProperty_TradeRoundTrip(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "property.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	// Unlimited plan so the generator is free to exceed the free cap
	if err := s.SetPlan(ctx, "prop", models.PlanUltimate); err != nil {
		t.Fatalf("Failed to set plan: %v", err)
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	pairs := []string{"EUR/USD", "GBP/USD", "USD/JPY", "USD/CHF", "XAU/USD", "EUR/GBP"}

	properties.Property("Trade round-trip: save then load produces equivalent data", prop.ForAll(
		func(pairIdx int, sell bool, entry, exit, lots float64, day, hour, confidence int) bool {
			trade := &models.Trade{
				UserID:     "prop",
				Pair:       pairs[pairIdx%len(pairs)],
				Direction:  models.Buy,
				EntryPrice: entry,
				ExitPrice:  exit,
				LotSize:    lots,
				Date:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day).Format("2006-01-02"),
				Time:       fmt.Sprintf("%02d:30", hour),
				Confidence: confidence,
			}
			if sell {
				trade.Direction = models.Sell
			}

			if err := s.CreateTrade(ctx, trade); err != nil {
				t.Logf("Failed to create trade: %v", err)
				return false
			}

			got, err := s.GetTrade(ctx, trade.ID)
			if err != nil {
				t.Logf("Failed to get trade %s: %v", trade.ID, err)
				return false
			}

			return got.Pair == trade.Pair &&
				got.Direction == trade.Direction &&
				got.EntryPrice == trade.EntryPrice &&
				got.ExitPrice == trade.ExitPrice &&
				got.LotSize == trade.LotSize &&
				got.Date == trade.Date &&
				got.Time == trade.Time &&
				got.Confidence == trade.Confidence &&
				got.Pips == trade.Pips &&
				got.ProfitLoss == trade.ProfitLoss &&
				got.Session == trade.Session
		},
		gen.IntRange(0, len(pairs)-1),
		gen.Bool(),
		gen.Float64Range(0.5, 2500.0),
		gen.Float64Range(0.5, 2500.0),
		gen.Float64Range(0.01, 10.0),
		gen.IntRange(0, 364),
		gen.IntRange(0, 23),
		gen.IntRange(0, 5),
	))

	properties.TestingRun(t)
}
