package domain

import "time"

// MarketPrice is a commodity price observation
type MarketPrice struct {
	ID        int64     `json:"id"`
	Commodity string    `json:"commodity"`
	Price     float64   `json:"price"`
	Volume    float64   `json:"volume"`
	Market    string    `json:"market"`
	Demand    string    `json:"demand"` // "low", "medium", "high"
	Timestamp time.Time `json:"timestamp"`
}

// Market demand constants
const (
	DemandLow    = "low"
	DemandMedium = "medium"
	DemandHigh   = "high"
)
