package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forex-journal/internal/models"
)

func TestGetDrawdownStats_Empty(t *testing.T) {
	stats := GetDrawdownStats(nil)
	assert.Equal(t, 0.0, stats.MaxDrawdown)
	assert.Equal(t, 0.0, stats.CurrentDrawdown)
	assert.Empty(t, stats.EquityCurve)
}

func TestGetDrawdownStats_AllWins(t *testing.T) {
	trades := []models.Trade{
		tr("2024-01-01", 100),
		tr("2024-01-02", 50),
		tr("2024-01-03", 75),
	}
	stats := GetDrawdownStats(trades)
	assert.Equal(t, 0.0, stats.MaxDrawdown)
	assert.Equal(t, 0.0, stats.CurrentDrawdown)
}

func TestGetDrawdownStats_PeakToTrough(t *testing.T) {
	trades := []models.Trade{
		tr("2024-01-01", 100),
		tr("2024-01-02", -50),
		tr("2024-01-03", -50),
	}
	stats := GetDrawdownStats(trades)
	// Peak 100, trough 0
	assert.Equal(t, 100.0, stats.MaxDrawdown)
	assert.Equal(t, 100.0, stats.CurrentDrawdown)

	require.Len(t, stats.EquityCurve, 3)
	assert.Equal(t, 100.0, stats.EquityCurve[0].Equity)
	assert.Equal(t, 0.0, stats.EquityCurve[0].Drawdown)
	assert.Equal(t, 0.0, stats.EquityCurve[2].Equity)
	// Drawdown points are sign-flipped for charting
	assert.Equal(t, -100.0, stats.EquityCurve[2].Drawdown)
}

func TestGetDrawdownStats_SortsByTimeOfDay(t *testing.T) {
	// Same date: time-of-day decides the walk order. A date-only sort
	// would see the loss first and report a 50 drawdown from a 0 peak.
	trades := []models.Trade{
		{Date: "2024-01-01", Time: "16:00", ProfitLoss: -50},
		{Date: "2024-01-01", Time: "09:00", ProfitLoss: 100},
	}
	stats := GetDrawdownStats(trades)
	assert.Equal(t, 50.0, stats.MaxDrawdown)
	require.Len(t, stats.EquityCurve, 2)
	assert.Equal(t, 100.0, stats.EquityCurve[0].Equity)
}

func TestGetDrawdownStats_RecoveryKeepsMax(t *testing.T) {
	trades := []models.Trade{
		tr("2024-01-01", 100),
		tr("2024-01-02", -80),
		tr("2024-01-03", 200),
	}
	stats := GetDrawdownStats(trades)
	assert.Equal(t, 80.0, stats.MaxDrawdown)
	// New peak: the current drawdown is gone
	assert.Equal(t, 0.0, stats.CurrentDrawdown)
}

func TestGetRiskStats(t *testing.T) {
	trades := []models.Trade{
		tr("2024-01-01", 100),
		tr("2024-01-02", -50),
		tr("2024-01-03", -150),
	}
	risk := GetRiskStats(trades)
	assert.Equal(t, 100.0, risk.AvgRisk) // mean of |−50|,|−150|
	assert.Equal(t, 150.0, risk.MaxRisk)
	assert.Equal(t, riskConsistencyPlaceholder, risk.RiskConsistency)
	assert.Equal(t, 200.0, risk.MaxDrawdown)
	assert.Equal(t, 200.0, risk.CurrentDrawdown)
}

func TestGetRiskStats_NoLosses(t *testing.T) {
	risk := GetRiskStats([]models.Trade{tr("2024-01-01", 100)})
	assert.Equal(t, 0.0, risk.AvgRisk)
	assert.Equal(t, 0.0, risk.MaxRisk)
}
