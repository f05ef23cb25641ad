package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"forex-journal/internal/analytics"
	apperrors "forex-journal/internal/errors"
	"forex-journal/internal/models"
	"forex-journal/pkg/id"
)

// SQLiteStore implements TradeStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the journal database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		pair TEXT NOT NULL,
		direction TEXT NOT NULL,
		entry_price REAL NOT NULL,
		exit_price REAL NOT NULL,
		stop_loss REAL NOT NULL DEFAULT 0,
		take_profit REAL NOT NULL DEFAULT 0,
		lot_size REAL NOT NULL,
		pips REAL NOT NULL,
		profit_loss REAL NOT NULL,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		session TEXT NOT NULL,
		strategy TEXT,
		rules_followed INTEGER NOT NULL DEFAULT 0,
		notes TEXT,
		emotion_before TEXT,
		emotion_after TEXT,
		confidence INTEGER DEFAULT 0,
		mistakes TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_trades_user ON trades(user_id);
	CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date, time);
	CREATE INDEX IF NOT EXISTS idx_trades_pair ON trades(pair);

	CREATE TABLE IF NOT EXISTS accounts (
		user_id TEXT PRIMARY KEY,
		plan TEXT NOT NULL DEFAULT 'free',
		updated_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// normalize recomputes the derived fields so the cached pips, P/L and
// session always match the calculator's output at save time.
func normalize(t *models.Trade) {
	t.Pips = analytics.CalculatePips(t.Pair, t.EntryPrice, t.ExitPrice, t.Direction)
	t.ProfitLoss = analytics.CalculatePL(t.Pips, t.LotSize, t.Pair, t.EntryPrice, t.ExitPrice)
	t.Session = analytics.DetectSession(t.Time)
}

// CreateTrade stores a trade, assigning an ID and recomputing derived
// fields. On the free plan it refuses once the stored-trade limit is hit.
func (s *SQLiteStore) CreateTrade(ctx context.Context, t *models.Trade) error {
	plan, err := s.GetPlan(ctx, t.UserID)
	if err != nil {
		return err
	}
	if plan == models.PlanFree {
		count, err := s.CountTrades(ctx, t.UserID)
		if err != nil {
			return err
		}
		if count >= models.FreeTradeLimit {
			return apperrors.ErrTradeLimit
		}
	}

	if t.ID == "" {
		t.ID = id.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	normalize(t)

	mistakes, err := json.Marshal(t.Mistakes)
	if err != nil {
		return fmt.Errorf("failed to encode mistakes: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO trades (id, user_id, pair, direction, entry_price, exit_price,
			stop_loss, take_profit, lot_size, pips, profit_loss, date, time, session,
			strategy, rules_followed, notes, emotion_before, emotion_after, confidence,
			mistakes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Pair, string(t.Direction), t.EntryPrice, t.ExitPrice,
		t.StopLoss, t.TakeProfit, t.LotSize, t.Pips, t.ProfitLoss, t.Date, t.Time,
		string(t.Session), t.Strategy, boolToInt(t.RulesFollowed), t.Notes,
		t.EmotionBefore, t.EmotionAfter, t.Confidence, string(mistakes), t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}
	return nil
}

const tradeColumns = `id, user_id, pair, direction, entry_price, exit_price,
	stop_loss, take_profit, lot_size, pips, profit_loss, date, time, session,
	strategy, rules_followed, notes, emotion_before, emotion_after, confidence,
	mistakes, created_at`

// GetTrade returns a single trade by ID.
func (s *SQLiteStore) GetTrade(ctx context.Context, tradeID string) (*models.Trade, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+tradeColumns+" FROM trades WHERE id = ?", tradeID)
	t, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrTradeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan trade: %w", err)
	}
	return t, nil
}

// GetTrades returns trades matching the filter, newest first. The caller
// receives an independent snapshot; analytics functions that need
// chronological order re-sort internally.
func (s *SQLiteStore) GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	query := "SELECT " + tradeColumns + " FROM trades WHERE 1=1"
	args := []interface{}{}

	if filter.UserID != "" {
		query += " AND user_id = ?"
		args = append(args, filter.UserID)
	}
	if filter.Pair != "" {
		query += " AND pair = ?"
		args = append(args, filter.Pair)
	}
	if filter.Strategy != "" {
		query += " AND strategy = ?"
		args = append(args, filter.Strategy)
	}
	if filter.Session != "" {
		query += " AND session = ?"
		args = append(args, filter.Session)
	}
	if filter.Direction != "" {
		query += " AND direction = ?"
		args = append(args, filter.Direction)
	}
	if filter.StartDate != "" {
		query += " AND date >= ?"
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		query += " AND date <= ?"
		args = append(args, filter.EndDate)
	}

	query += " ORDER BY date DESC, time DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, *t)
	}
	return trades, rows.Err()
}

// UpdateTrade overwrites a stored trade, recomputing derived fields.
func (s *SQLiteStore) UpdateTrade(ctx context.Context, t *models.Trade) error {
	normalize(t)

	mistakes, err := json.Marshal(t.Mistakes)
	if err != nil {
		return fmt.Errorf("failed to encode mistakes: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE trades SET pair = ?, direction = ?, entry_price = ?, exit_price = ?,
			stop_loss = ?, take_profit = ?, lot_size = ?, pips = ?, profit_loss = ?,
			date = ?, time = ?, session = ?, strategy = ?, rules_followed = ?,
			notes = ?, emotion_before = ?, emotion_after = ?, confidence = ?,
			mistakes = ?
		WHERE id = ?`,
		t.Pair, string(t.Direction), t.EntryPrice, t.ExitPrice,
		t.StopLoss, t.TakeProfit, t.LotSize, t.Pips, t.ProfitLoss,
		t.Date, t.Time, string(t.Session), t.Strategy, boolToInt(t.RulesFollowed),
		t.Notes, t.EmotionBefore, t.EmotionAfter, t.Confidence,
		string(mistakes), t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trade: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrTradeNotFound
	}
	return nil
}

// DeleteTrade removes a trade by ID.
func (s *SQLiteStore) DeleteTrade(ctx context.Context, tradeID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trades WHERE id = ?", tradeID)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrTradeNotFound
	}
	return nil
}

// CountTrades returns the number of stored trades for a user.
func (s *SQLiteStore) CountTrades(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM trades WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count trades: %w", err)
	}
	return count, nil
}

// GetPlan returns the user's plan tier, defaulting to free.
func (s *SQLiteStore) GetPlan(ctx context.Context, userID string) (models.Plan, error) {
	var plan string
	err := s.db.QueryRowContext(ctx,
		"SELECT plan FROM accounts WHERE user_id = ?", userID).Scan(&plan)
	if err == sql.ErrNoRows {
		return models.PlanFree, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query plan: %w", err)
	}
	return models.Plan(plan), nil
}

// SetPlan records the user's plan tier.
func (s *SQLiteStore) SetPlan(ctx context.Context, userID string, plan models.Plan) error {
	if !plan.Valid() {
		return apperrors.ErrInvalidPlan
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (user_id, plan, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET plan = excluded.plan, updated_at = excluded.updated_at`,
		userID, string(plan), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to set plan: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(row rowScanner) (*models.Trade, error) {
	var t models.Trade
	var direction, session, mistakesJSON string
	var rulesFollowed int

	err := row.Scan(
		&t.ID, &t.UserID, &t.Pair, &direction, &t.EntryPrice, &t.ExitPrice,
		&t.StopLoss, &t.TakeProfit, &t.LotSize, &t.Pips, &t.ProfitLoss,
		&t.Date, &t.Time, &session, &t.Strategy, &rulesFollowed, &t.Notes,
		&t.EmotionBefore, &t.EmotionAfter, &t.Confidence, &mistakesJSON, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Direction = models.Direction(direction)
	t.Session = models.Session(session)
	t.RulesFollowed = rulesFollowed == 1
	if mistakesJSON != "" {
		json.Unmarshal([]byte(mistakesJSON), &t.Mistakes)
	}
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
