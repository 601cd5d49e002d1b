package postgres

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/farmfit/farmfit/internal/domain"
)

// parseUserID validates a user ID string, mapping parse failures to the
// domain error so handlers respond with a user-facing message.
func parseUserID(userID string) (uuid.UUID, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid user id %q", domain.ErrInvalidInput, userID)
	}
	return id, nil
}

// parseID validates a generic UUID string
func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s id %q", domain.ErrInvalidInput, what, raw)
	}
	return id, nil
}
