package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmfit/farmfit/internal/domain"
)

// MarketRepository implements the market repository for PostgreSQL
type MarketRepository struct {
	db *pgxpool.Pool
}

// NewMarketRepository creates a new MarketRepository
func NewMarketRepository(db *pgxpool.Pool) *MarketRepository {
	return &MarketRepository{db: db}
}

// RecordPrice stores a price observation and fills in generated fields
func (r *MarketRepository) RecordPrice(ctx context.Context, p *domain.MarketPrice) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO market_prices (commodity, price, volume, market, demand)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, recorded_at
	`, p.Commodity, p.Price, p.Volume, p.Market, p.Demand).Scan(&p.ID, &p.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to record price: %w", err)
	}
	return nil
}

// GetLatestPrices returns the most recent observation per commodity
func (r *MarketRepository) GetLatestPrices(ctx context.Context) ([]domain.MarketPrice, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT ON (commodity)
		       id, commodity, price, volume, market, demand, recorded_at
		FROM market_prices
		ORDER BY commodity, recorded_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest prices: %w", err)
	}
	defer rows.Close()

	var prices []domain.MarketPrice
	for rows.Next() {
		var p domain.MarketPrice
		if err := rows.Scan(&p.ID, &p.Commodity, &p.Price, &p.Volume, &p.Market, &p.Demand, &p.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

// GetPriceHistory returns observations for a commodity within a time range
func (r *MarketRepository) GetPriceHistory(ctx context.Context, commodity string, from, to time.Time) ([]domain.MarketPrice, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, commodity, price, volume, market, demand, recorded_at
		FROM market_prices
		WHERE commodity = $1 AND recorded_at >= $2 AND recorded_at <= $3
		ORDER BY recorded_at
	`, commodity, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get price history: %w", err)
	}
	defer rows.Close()

	var prices []domain.MarketPrice
	for rows.Next() {
		var p domain.MarketPrice
		if err := rows.Scan(&p.ID, &p.Commodity, &p.Price, &p.Volume, &p.Market, &p.Demand, &p.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}
