package repository

import (
	"context"
	"time"

	"github.com/farmfit/farmfit/internal/domain"
)

// Equipment defines persistence operations for the equipment registry
type Equipment interface {
	CreateEquipment(ctx context.Context, e *domain.Equipment) error
	GetEquipment(ctx context.Context, id string) (*domain.Equipment, error)
	ListEquipment(ctx context.Context, ownerID string) ([]domain.Equipment, error)
	UpdateStatus(ctx context.Context, id, status string, nextMaintenance *time.Time) error
	ListMaintenanceDue(ctx context.Context, before time.Time) ([]domain.Equipment, error)
}
