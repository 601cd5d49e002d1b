package repository

import (
	"context"
	"time"

	"github.com/farmfit/farmfit/internal/domain"
)

// Market defines persistence operations for commodity price records
type Market interface {
	RecordPrice(ctx context.Context, p *domain.MarketPrice) error
	GetLatestPrices(ctx context.Context) ([]domain.MarketPrice, error)
	GetPriceHistory(ctx context.Context, commodity string, from, to time.Time) ([]domain.MarketPrice, error)
}
