package handler

import (
	"net/http"

	"github.com/farmfit/farmfit/internal/catalog"
	"github.com/farmfit/farmfit/internal/logger"
	"github.com/farmfit/farmfit/internal/user"
)

// CheckFeatureLocked resolves the requesting user's tier and checks that it
// includes the feature. If locked (or the user cannot be resolved), it
// writes the error response and returns true.
func CheckFeatureLocked(w http.ResponseWriter, r *http.Request, users user.Service, catalogSvc catalog.Service, userID, featureKey string) bool {
	log := logger.FromContext(r.Context())

	u, err := users.GetByID(r.Context(), userID)
	if err != nil {
		log.Error("Failed to resolve user for feature check", "error", err, "feature", featureKey)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return true
	}

	if err := catalogSvc.RequireFeature(u.TierKey, featureKey); err != nil {
		log.Warn("Feature is locked", "feature", featureKey, "tier", u.TierKey, "user_id", userID)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return true
	}

	return false
}
