package store

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forex-journal/internal/models"
)

func TestExportImportCSV(t *testing.T) {
	trades := []models.Trade{
		{
			ID:            "t1",
			Pair:          "EUR/USD",
			Direction:     models.Buy,
			EntryPrice:    1.1000,
			ExitPrice:     1.1050,
			LotSize:       1.0,
			Pips:          50,
			ProfitLoss:    500,
			Date:          "2024-03-01",
			Time:          "10:00",
			Session:       models.SessionLondon,
			Strategy:      "Breakout",
			RulesFollowed: true,
			Notes:         "clean setup, held to target",
			Confidence:    4,
			Mistakes:      []string{"late entry", "moved stop"},
		},
		{
			ID:         "t2",
			Pair:       "USD/JPY",
			Direction:  models.Sell,
			EntryPrice: 150.50,
			ExitPrice:  150.00,
			LotSize:    0.5,
			Date:       "2024-03-02",
			Time:       "02:00",
			Session:    models.SessionAsian,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, trades))

	header := strings.SplitN(buf.String(), "\n", 2)[0]
	assert.Contains(t, header, "pair")
	assert.Contains(t, header, "profit_loss")

	imported, err := ImportCSV(&buf)
	require.NoError(t, err)
	require.Len(t, imported, 2)

	got := imported[0]
	assert.Equal(t, "EUR/USD", got.Pair)
	assert.Equal(t, models.Buy, got.Direction)
	assert.Equal(t, 1.1050, got.ExitPrice)
	assert.True(t, got.RulesFollowed)
	assert.Equal(t, []string{"late entry", "moved stop"}, got.Mistakes)
	// IDs and derived fields are reassigned on save, not carried over
	assert.Empty(t, got.ID)
	assert.Zero(t, got.Pips)
	assert.Empty(t, got.Session)

	assert.Equal(t, models.Sell, imported[1].Direction)
	assert.Nil(t, imported[1].Mistakes)
}

func TestImportCSV_Malformed(t *testing.T) {
	_, err := ImportCSV(strings.NewReader("pair,direction\n\"unterminated"))
	assert.Error(t, err)
}
