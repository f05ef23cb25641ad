package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "forex-journal/internal/errors"
	"forex-journal/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleTrade(userID string) *models.Trade {
	return &models.Trade{
		UserID:        userID,
		Pair:          "EUR/USD",
		Direction:     models.Buy,
		EntryPrice:    1.1000,
		ExitPrice:     1.1050,
		StopLoss:      1.0950,
		TakeProfit:    1.1100,
		LotSize:       1.0,
		Date:          "2024-03-01",
		Time:          "10:00",
		Strategy:      "Breakout",
		RulesFollowed: true,
		EmotionBefore: "Calm",
		Confidence:    4,
		Mistakes:      []string{"late entry"},
	}
}

func TestCreateAndGetTrade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := sampleTrade("u1")
	require.NoError(t, s.CreateTrade(ctx, trade))
	assert.NotEmpty(t, trade.ID)

	// Derived fields are recomputed at save time
	assert.Equal(t, 50.0, trade.Pips)
	assert.Equal(t, 500.0, trade.ProfitLoss)
	assert.Equal(t, models.SessionLondon, trade.Session)

	got, err := s.GetTrade(ctx, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.Pair, got.Pair)
	assert.Equal(t, trade.Direction, got.Direction)
	assert.Equal(t, trade.Pips, got.Pips)
	assert.Equal(t, trade.ProfitLoss, got.ProfitLoss)
	assert.Equal(t, trade.Session, got.Session)
	assert.True(t, got.RulesFollowed)
	assert.Equal(t, []string{"late entry"}, got.Mistakes)
}

func TestGetTrade_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetTrade(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrTradeNotFound)
}

func TestGetTrades_FiltersAndOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	dates := []string{"2024-03-01", "2024-03-02", "2024-03-03"}
	pairs := []string{"EUR/USD", "GBP/USD", "EUR/USD"}
	for i := range dates {
		trade := sampleTrade("u1")
		trade.Date = dates[i]
		trade.Pair = pairs[i]
		require.NoError(t, s.CreateTrade(ctx, trade))
	}
	other := sampleTrade("u2")
	require.NoError(t, s.CreateTrade(ctx, other))

	all, err := s.GetTrades(ctx, TradeFilter{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first
	assert.Equal(t, "2024-03-03", all[0].Date)
	assert.Equal(t, "2024-03-01", all[2].Date)

	eur, err := s.GetTrades(ctx, TradeFilter{UserID: "u1", Pair: "EUR/USD"})
	require.NoError(t, err)
	assert.Len(t, eur, 2)

	ranged, err := s.GetTrades(ctx, TradeFilter{
		UserID:    "u1",
		StartDate: "2024-03-02",
		EndDate:   "2024-03-02",
	})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "GBP/USD", ranged[0].Pair)

	limited, err := s.GetTrades(ctx, TradeFilter{UserID: "u1", Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "2024-03-03", limited[0].Date)
}

func TestUpdateTrade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := sampleTrade("u1")
	require.NoError(t, s.CreateTrade(ctx, trade))

	trade.ExitPrice = 1.1100
	require.NoError(t, s.UpdateTrade(ctx, trade))

	got, err := s.GetTrade(ctx, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.Pips)
	assert.Equal(t, 1000.0, got.ProfitLoss)
}

func TestUpdateTrade_NotFound(t *testing.T) {
	s := newTestStore(t)
	trade := sampleTrade("u1")
	trade.ID = "missing"
	assert.ErrorIs(t, s.UpdateTrade(context.Background(), trade), apperrors.ErrTradeNotFound)
}

func TestDeleteTrade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := sampleTrade("u1")
	require.NoError(t, s.CreateTrade(ctx, trade))
	require.NoError(t, s.DeleteTrade(ctx, trade.ID))

	_, err := s.GetTrade(ctx, trade.ID)
	assert.ErrorIs(t, err, apperrors.ErrTradeNotFound)
	assert.ErrorIs(t, s.DeleteTrade(ctx, trade.ID), apperrors.ErrTradeNotFound)
}

func TestFreePlanTradeLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < models.FreeTradeLimit; i++ {
		trade := sampleTrade("u1")
		trade.Notes = fmt.Sprintf("trade %d", i)
		require.NoError(t, s.CreateTrade(ctx, trade))
	}

	over := sampleTrade("u1")
	assert.ErrorIs(t, s.CreateTrade(ctx, over), apperrors.ErrTradeLimit)

	// Upgrading lifts the cap
	require.NoError(t, s.SetPlan(ctx, "u1", models.PlanPro))
	assert.NoError(t, s.CreateTrade(ctx, over))

	count, err := s.CountTrades(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.FreeTradeLimit+1, count)
}

func TestPlanGetAndSet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	plan, err := s.GetPlan(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, plan)

	require.NoError(t, s.SetPlan(ctx, "u1", models.PlanUltimate))
	plan, err = s.GetPlan(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.PlanUltimate, plan)

	// Upsert overwrites
	require.NoError(t, s.SetPlan(ctx, "u1", models.PlanFree))
	plan, err = s.GetPlan(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, plan)

	assert.ErrorIs(t, s.SetPlan(ctx, "u1", models.Plan("platinum")), apperrors.ErrInvalidPlan)
}
