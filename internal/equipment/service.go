package equipment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/farmfit/farmfit/internal/domain"
	"github.com/farmfit/farmfit/internal/event"
	"github.com/farmfit/farmfit/internal/logger"
	"github.com/farmfit/farmfit/internal/repository"
)

// Maintenance scheduling defaults
const (
	// DefaultMaintenanceInterval is applied when maintenance completes and
	// no explicit next date is given.
	DefaultMaintenanceInterval = 90 * 24 * time.Hour
)

// Log message constants
const (
	LogMsgEquipmentRegistered = "Equipment registered"
	LogMsgStatusChanged       = "Equipment status changed"
	LogMsgMaintenanceDue      = "Equipment maintenance due"
)

type Service interface {
	Register(ctx context.Context, ownerID, name, equipmentType, location string, nextMaintenance *time.Time) (*domain.Equipment, error)
	Get(ctx context.Context, equipmentID string) (*domain.Equipment, error)
	ListForOwner(ctx context.Context, ownerID string) ([]domain.Equipment, error)

	// ChangeStatus enforces the status transition table. Completing
	// maintenance reschedules the next maintenance date.
	ChangeStatus(ctx context.Context, equipmentID, newStatus string) (*domain.Equipment, error)

	// ScanMaintenanceDue publishes a due event per item inside the lookahead
	// window (called by worker).
	ScanMaintenanceDue(ctx context.Context) (int, error)
}

type service struct {
	repo      repository.Equipment
	users     repository.User
	publisher *event.ResilientPublisher
}

func NewService(repo repository.Equipment, users repository.User, publisher *event.ResilientPublisher) Service {
	return &service{
		repo:      repo,
		users:     users,
		publisher: publisher,
	}
}

func (s *service) Register(ctx context.Context, ownerID, name, equipmentType, location string, nextMaintenance *time.Time) (*domain.Equipment, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(equipmentType) == "" {
		return nil, fmt.Errorf("%w: equipment requires a name and type", domain.ErrInvalidInput)
	}

	if _, err := s.users.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}

	e := &domain.Equipment{
		Name:            name,
		Type:            strings.TrimSpace(equipmentType),
		Status:          domain.EquipmentStatusOperational,
		Location:        strings.TrimSpace(location),
		OwnerID:         ownerID,
		NextMaintenance: nextMaintenance,
	}
	if err := s.repo.CreateEquipment(ctx, e); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgEquipmentRegistered,
		"equipment_id", e.ID, "owner_id", ownerID, "type", e.Type)
	return e, nil
}

func (s *service) Get(ctx context.Context, equipmentID string) (*domain.Equipment, error) {
	return s.repo.GetEquipment(ctx, equipmentID)
}

func (s *service) ListForOwner(ctx context.Context, ownerID string) ([]domain.Equipment, error) {
	return s.repo.ListEquipment(ctx, ownerID)
}

func (s *service) ChangeStatus(ctx context.Context, equipmentID, newStatus string) (*domain.Equipment, error) {
	log := logger.FromContext(ctx)

	e, err := s.repo.GetEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	if !domain.IsValidEquipmentTransition(e.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, e.Status, newStatus)
	}

	// Returning to service from maintenance starts the next interval
	var nextMaintenance *time.Time
	if e.Status == domain.EquipmentStatusMaintenance && newStatus == domain.EquipmentStatusOperational {
		next := time.Now().Add(DefaultMaintenanceInterval)
		nextMaintenance = &next
	}

	if err := s.repo.UpdateStatus(ctx, equipmentID, newStatus, nextMaintenance); err != nil {
		return nil, err
	}

	log.Info(LogMsgStatusChanged,
		"equipment_id", equipmentID, "from", e.Status, "to", newStatus)

	e.Status = newStatus
	if nextMaintenance != nil {
		e.NextMaintenance = nextMaintenance
	}
	return e, nil
}

func (s *service) ScanMaintenanceDue(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	cutoff := time.Now().Add(domain.MaintenanceDueWindow)
	due, err := s.repo.ListMaintenanceDue(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	for _, e := range due {
		log.Warn(LogMsgMaintenanceDue,
			"equipment_id", e.ID, "name", e.Name, "due_at", e.NextMaintenance)
		if s.publisher != nil && e.NextMaintenance != nil {
			evt := event.NewMaintenanceDueEvent(e.ID, e.Name, e.OwnerID, *e.NextMaintenance)
			s.publisher.Publish(ctx, evt) //nolint:errcheck
		}
	}
	return len(due), nil
}
