package handler

import (
	"net/http"
	"time"

	"github.com/farmfit/farmfit/internal/catalog"
	"github.com/farmfit/farmfit/internal/domain"
	"github.com/farmfit/farmfit/internal/market"
	"github.com/farmfit/farmfit/internal/user"
)

// RecordPriceRequest records one commodity price observation
type RecordPriceRequest struct {
	Commodity string  `json:"commodity" validate:"required,max=100"`
	Price     float64 `json:"price" validate:"required,gt=0"`
	Volume    float64 `json:"volume" validate:"min=0"`
	Market    string  `json:"market" validate:"max=100"`
	Demand    string  `json:"demand" validate:"omitempty,demand"`
}

// MarketHandler handles market data HTTP requests. Query endpoints are
// gated on the market_data feature.
type MarketHandler struct {
	svc        market.Service
	users      user.Service
	catalogSvc catalog.Service
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(svc market.Service, users user.Service, catalogSvc catalog.Service) *MarketHandler {
	return &MarketHandler{svc: svc, users: users, catalogSvc: catalogSvc}
}

// HandleRecordPrice records a price observation
// @Summary Record market price
// @Tags market
// @Accept json
// @Produce json
// @Param request body RecordPriceRequest true "Price observation"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /market/prices [post]
func (h *MarketHandler) HandleRecordPrice(w http.ResponseWriter, r *http.Request) {
	var req RecordPriceRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Record price"); err != nil {
		return
	}

	p := &domain.MarketPrice{
		Commodity: req.Commodity,
		Price:     req.Price,
		Volume:    req.Volume,
		Market:    req.Market,
		Demand:    req.Demand,
	}
	if err := h.svc.RecordPrice(r.Context(), p); err != nil {
		respondServiceError(w, r, "Record price", err)
		return
	}
	respondJSON(w, http.StatusCreated, SuccessResponse{Message: "price recorded"})
}

// HandleLatestPrices returns the latest price per commodity
// @Summary Get latest prices
// @Tags market
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} domain.MarketPrice
// @Failure 403 {object} ErrorResponse
// @Router /market/prices/latest [get]
func (h *MarketHandler) HandleLatestPrices(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	if CheckFeatureLocked(w, r, h.users, h.catalogSvc, userID, catalog.FeatureMarketData) {
		return
	}

	prices, err := h.svc.LatestPrices(r.Context())
	if err != nil {
		respondServiceError(w, r, "Get latest prices", err)
		return
	}
	respondJSON(w, http.StatusOK, prices)
}

// HandlePriceHistory returns price history for a commodity
// @Summary Get price history
// @Tags market
// @Produce json
// @Param user_id query string true "User ID"
// @Param commodity query string true "Commodity"
// @Param from query string true "Range start (RFC3339)"
// @Param to query string true "Range end (RFC3339)"
// @Success 200 {array} domain.MarketPrice
// @Failure 403 {object} ErrorResponse
// @Router /market/prices/history [get]
func (h *MarketHandler) HandlePriceHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	commodity, ok := GetQueryParam(r, w, "commodity")
	if !ok {
		return
	}
	from, to, ok := parseTimeRange(w, r)
	if !ok {
		return
	}
	if CheckFeatureLocked(w, r, h.users, h.catalogSvc, userID, catalog.FeatureMarketData) {
		return
	}

	history, err := h.svc.PriceHistory(r.Context(), commodity, from, to)
	if err != nil {
		respondServiceError(w, r, "Get price history", err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}

// HandleSummarize returns a price summary over a range
// @Summary Summarize commodity prices
// @Tags market
// @Produce json
// @Param user_id query string true "User ID"
// @Param commodity query string true "Commodity"
// @Param from query string true "Range start (RFC3339)"
// @Param to query string true "Range end (RFC3339)"
// @Success 200 {object} market.PriceSummary
// @Failure 403 {object} ErrorResponse
// @Router /market/prices/summary [get]
func (h *MarketHandler) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	commodity, ok := GetQueryParam(r, w, "commodity")
	if !ok {
		return
	}
	from, to, ok := parseTimeRange(w, r)
	if !ok {
		return
	}
	if CheckFeatureLocked(w, r, h.users, h.catalogSvc, userID, catalog.FeatureMarketData) {
		return
	}

	summary, err := h.svc.Summarize(r.Context(), commodity, from, to)
	if err != nil {
		respondServiceError(w, r, "Summarize prices", err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// parseTimeRange reads the from/to query params as RFC3339. On failure it
// writes the error response and returns ok=false.
func parseTimeRange(w http.ResponseWriter, r *http.Request) (from, to time.Time, ok bool) {
	rawFrom, ok := GetQueryParam(r, w, "from")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	rawTo, ok := GetQueryParam(r, w, "to")
	if !ok {
		return time.Time{}, time.Time{}, false
	}

	from, err := time.Parse(time.RFC3339, rawFrom)
	if err != nil {
		respondError(w, http.StatusBadRequest, "from must be RFC3339")
		return time.Time{}, time.Time{}, false
	}
	to, err = time.Parse(time.RFC3339, rawTo)
	if err != nil {
		respondError(w, http.StatusBadRequest, "to must be RFC3339")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
