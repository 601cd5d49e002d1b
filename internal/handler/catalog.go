package handler

import (
	"net/http"

	"github.com/farmfit/farmfit/internal/catalog"
)

// CatalogHandler serves the static product catalogs
type CatalogHandler struct {
	svc catalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(svc catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// HandleListTiers returns the subscription tiers
// @Summary List subscription tiers
// @Tags catalog
// @Produce json
// @Success 200 {array} domain.Tier
// @Router /catalog/tiers [get]
func (h *CatalogHandler) HandleListTiers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.ListTiers())
}

// HandleListModules returns farming modules, optionally filtered by method
// @Summary List farming modules
// @Tags catalog
// @Produce json
// @Param method query string false "Farming method filter"
// @Param tier query string false "Return only modules available to this tier"
// @Success 200 {array} domain.FarmingModule
// @Router /catalog/modules [get]
func (h *CatalogHandler) HandleListModules(w http.ResponseWriter, r *http.Request) {
	if tierKey := r.URL.Query().Get("tier"); tierKey != "" {
		modules, err := h.svc.ModulesForTier(tierKey)
		if err != nil {
			respondServiceError(w, r, "List modules", err)
			return
		}
		respondJSON(w, http.StatusOK, modules)
		return
	}

	method := r.URL.Query().Get("method")
	respondJSON(w, http.StatusOK, h.svc.ListFarmingModules(method))
}

// HandleListHempVarieties returns the hemp cultivar catalog
// @Summary List hemp varieties
// @Tags catalog
// @Produce json
// @Success 200 {array} domain.HempVariety
// @Router /catalog/hemp-varieties [get]
func (h *CatalogHandler) HandleListHempVarieties(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.ListHempVarieties())
}

// HandleGetHempVariety returns one hemp variety by key
// @Summary Get hemp variety
// @Tags catalog
// @Produce json
// @Param variety_key query string true "Variety key"
// @Success 200 {object} domain.HempVariety
// @Failure 404 {object} ErrorResponse
// @Router /catalog/hemp-varieties/detail [get]
func (h *CatalogHandler) HandleGetHempVariety(w http.ResponseWriter, r *http.Request) {
	varietyKey, ok := GetQueryParam(r, w, "variety_key")
	if !ok {
		return
	}

	variety, err := h.svc.GetHempVariety(varietyKey)
	if err != nil {
		respondServiceError(w, r, "Get hemp variety", err)
		return
	}
	respondJSON(w, http.StatusOK, variety)
}

// HandleListHeritageCrops returns the heritage crop catalog
// @Summary List heritage crops
// @Tags catalog
// @Produce json
// @Success 200 {array} domain.HeritageCrop
// @Router /catalog/heritage-crops [get]
func (h *CatalogHandler) HandleListHeritageCrops(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.ListHeritageCrops())
}

// HandleListResources returns resource links, optionally filtered by kind
// @Summary List resources
// @Tags catalog
// @Produce json
// @Param kind query string false "Resource kind (grant, video_channel, learning)"
// @Success 200 {array} domain.ResourceLink
// @Router /catalog/resources [get]
func (h *CatalogHandler) HandleListResources(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	respondJSON(w, http.StatusOK, h.svc.ListResources(kind))
}
