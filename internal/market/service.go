package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/farmfit/farmfit/internal/domain"
	"github.com/farmfit/farmfit/internal/logger"
	"github.com/farmfit/farmfit/internal/repository"
)

// History query limits
const (
	MaxHistoryRange = 365 * 24 * time.Hour
)

// Log message constants
const (
	LogMsgPriceRecorded = "Market price recorded"
)

// PriceSummary aggregates a commodity's history range
type PriceSummary struct {
	Commodity     string  `json:"commodity"`
	Samples       int     `json:"samples"`
	Low           float64 `json:"low"`
	High          float64 `json:"high"`
	Average       float64 `json:"average"`
	ChangePercent float64 `json:"change_percent"`
}

type Service interface {
	RecordPrice(ctx context.Context, p *domain.MarketPrice) error
	LatestPrices(ctx context.Context) ([]domain.MarketPrice, error)
	PriceHistory(ctx context.Context, commodity string, from, to time.Time) ([]domain.MarketPrice, error)

	// Summarize condenses a history range into low/high/average and the
	// percent change between the first and last observation.
	Summarize(ctx context.Context, commodity string, from, to time.Time) (*PriceSummary, error)
}

type service struct {
	repo repository.Market
}

func NewService(repo repository.Market) Service {
	return &service{repo: repo}
}

func (s *service) RecordPrice(ctx context.Context, p *domain.MarketPrice) error {
	p.Commodity = strings.ToLower(strings.TrimSpace(p.Commodity))
	if p.Commodity == "" {
		return fmt.Errorf("%w: commodity is required", domain.ErrInvalidInput)
	}
	if p.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", domain.ErrInvalidInput)
	}
	if p.Volume < 0 {
		return fmt.Errorf("%w: volume cannot be negative", domain.ErrInvalidInput)
	}

	switch p.Demand {
	case "":
		p.Demand = domain.DemandMedium
	case domain.DemandLow, domain.DemandMedium, domain.DemandHigh:
	default:
		return fmt.Errorf("%w: unknown demand level %q", domain.ErrInvalidInput, p.Demand)
	}

	if err := s.repo.RecordPrice(ctx, p); err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgPriceRecorded,
		"commodity", p.Commodity, "price", p.Price, "market", p.Market)
	return nil
}

func (s *service) LatestPrices(ctx context.Context) ([]domain.MarketPrice, error) {
	return s.repo.GetLatestPrices(ctx)
}

func (s *service) PriceHistory(ctx context.Context, commodity string, from, to time.Time) ([]domain.MarketPrice, error) {
	commodity = strings.ToLower(strings.TrimSpace(commodity))
	if commodity == "" {
		return nil, fmt.Errorf("%w: commodity is required", domain.ErrInvalidInput)
	}
	if !to.After(from) {
		return nil, fmt.Errorf("%w: history range end must come after start", domain.ErrInvalidInput)
	}
	if to.Sub(from) > MaxHistoryRange {
		return nil, fmt.Errorf("%w: history range exceeds one year", domain.ErrInvalidInput)
	}
	return s.repo.GetPriceHistory(ctx, commodity, from, to)
}

func (s *service) Summarize(ctx context.Context, commodity string, from, to time.Time) (*PriceSummary, error) {
	history, err := s.PriceHistory(ctx, commodity, from, to)
	if err != nil {
		return nil, err
	}

	summary := &PriceSummary{
		Commodity: strings.ToLower(strings.TrimSpace(commodity)),
		Samples:   len(history),
	}
	if len(history) == 0 {
		return summary, nil
	}

	summary.Low = history[0].Price
	summary.High = history[0].Price
	var sum float64
	for _, p := range history {
		sum += p.Price
		if p.Price < summary.Low {
			summary.Low = p.Price
		}
		if p.Price > summary.High {
			summary.High = p.Price
		}
	}
	summary.Average = sum / float64(len(history))

	first, last := history[0].Price, history[len(history)-1].Price
	if first > 0 {
		summary.ChangePercent = (last - first) / first * 100
	}
	return summary, nil
}
