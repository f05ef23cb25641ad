// Package store provides data persistence for the trading journal.
package store

import (
	"context"

	"forex-journal/internal/models"
)

// TradeStore defines the persistence interface for trades and the
// account's plan tier. Analytics never touches the store: callers fetch a
// snapshot with GetTrades and hand the slice to the analytics package.
type TradeStore interface {
	CreateTrade(ctx context.Context, trade *models.Trade) error
	GetTrade(ctx context.Context, id string) (*models.Trade, error)
	GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error)
	UpdateTrade(ctx context.Context, trade *models.Trade) error
	DeleteTrade(ctx context.Context, id string) error
	CountTrades(ctx context.Context, userID string) (int, error)

	GetPlan(ctx context.Context, userID string) (models.Plan, error)
	SetPlan(ctx context.Context, userID string, plan models.Plan) error

	Close() error
}

// TradeFilter narrows a GetTrades query. Zero values mean "no filter".
type TradeFilter struct {
	UserID    string
	Pair      string
	Strategy  string
	Session   string
	Direction string
	StartDate string // ISO date, inclusive
	EndDate   string // ISO date, inclusive
	Limit     int
}
