package store

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"forex-journal/internal/models"
)

// tradeRow is the CSV projection of a trade. Mistakes are joined with
// semicolons so the row stays a single record.
type tradeRow struct {
	ID            string  `csv:"id"`
	Pair          string  `csv:"pair"`
	Direction     string  `csv:"direction"`
	EntryPrice    float64 `csv:"entry_price"`
	ExitPrice     float64 `csv:"exit_price"`
	StopLoss      float64 `csv:"stop_loss"`
	TakeProfit    float64 `csv:"take_profit"`
	LotSize       float64 `csv:"lot_size"`
	Pips          float64 `csv:"pips"`
	ProfitLoss    float64 `csv:"profit_loss"`
	Date          string  `csv:"date"`
	Time          string  `csv:"time"`
	Session       string  `csv:"session"`
	Strategy      string  `csv:"strategy"`
	RulesFollowed bool    `csv:"rules_followed"`
	Notes         string  `csv:"notes"`
	EmotionBefore string  `csv:"emotion_before"`
	EmotionAfter  string  `csv:"emotion_after"`
	Confidence    int     `csv:"confidence"`
	Mistakes      string  `csv:"mistakes"`
}

// ExportCSV writes trades as CSV.
func ExportCSV(w io.Writer, trades []models.Trade) error {
	rows := make([]*tradeRow, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, &tradeRow{
			ID:            t.ID,
			Pair:          t.Pair,
			Direction:     string(t.Direction),
			EntryPrice:    t.EntryPrice,
			ExitPrice:     t.ExitPrice,
			StopLoss:      t.StopLoss,
			TakeProfit:    t.TakeProfit,
			LotSize:       t.LotSize,
			Pips:          t.Pips,
			ProfitLoss:    t.ProfitLoss,
			Date:          t.Date,
			Time:          t.Time,
			Session:       string(t.Session),
			Strategy:      t.Strategy,
			RulesFollowed: t.RulesFollowed,
			Notes:         t.Notes,
			EmotionBefore: t.EmotionBefore,
			EmotionAfter:  t.EmotionAfter,
			Confidence:    t.Confidence,
			Mistakes:      strings.Join(t.Mistakes, ";"),
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// ImportCSV parses trades from CSV. IDs and derived fields are left for
// CreateTrade to assign and recompute, so imported rows go through the
// same normalization as hand-entered trades.
func ImportCSV(r io.Reader) ([]models.Trade, error) {
	var rows []*tradeRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	trades := make([]models.Trade, 0, len(rows))
	for _, row := range rows {
		var mistakes []string
		if row.Mistakes != "" {
			mistakes = strings.Split(row.Mistakes, ";")
		}
		trades = append(trades, models.Trade{
			Pair:          row.Pair,
			Direction:     models.Direction(row.Direction),
			EntryPrice:    row.EntryPrice,
			ExitPrice:     row.ExitPrice,
			StopLoss:      row.StopLoss,
			TakeProfit:    row.TakeProfit,
			LotSize:       row.LotSize,
			Date:          row.Date,
			Time:          row.Time,
			Strategy:      row.Strategy,
			RulesFollowed: row.RulesFollowed,
			Notes:         row.Notes,
			EmotionBefore: row.EmotionBefore,
			EmotionAfter:  row.EmotionAfter,
			Confidence:    row.Confidence,
			Mistakes:      mistakes,
		})
	}
	return trades, nil
}
