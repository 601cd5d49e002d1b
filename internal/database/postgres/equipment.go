package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmfit/farmfit/internal/domain"
)

// EquipmentRepository implements the equipment repository for PostgreSQL
type EquipmentRepository struct {
	db *pgxpool.Pool
}

// NewEquipmentRepository creates a new EquipmentRepository
func NewEquipmentRepository(db *pgxpool.Pool) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

// CreateEquipment registers a piece of equipment and fills in generated fields
func (r *EquipmentRepository) CreateEquipment(ctx context.Context, e *domain.Equipment) error {
	ownerID, err := parseUserID(e.OwnerID)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO equipment (name, type, status, location, owner_id, next_maintenance)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, e.Name, e.Type, e.Status, e.Location, ownerID, e.NextMaintenance).Scan(
		&e.ID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert equipment: %w", err)
	}
	return nil
}

// GetEquipment retrieves equipment by ID
func (r *EquipmentRepository) GetEquipment(ctx context.Context, id string) (*domain.Equipment, error) {
	eid, err := parseID(id, "equipment")
	if err != nil {
		return nil, err
	}

	var e domain.Equipment
	err = r.db.QueryRow(ctx, `
		SELECT id, name, type, status, location, owner_id, next_maintenance, created_at, updated_at
		FROM equipment
		WHERE id = $1
	`, eid).Scan(
		&e.ID, &e.Name, &e.Type, &e.Status, &e.Location, &e.OwnerID,
		&e.NextMaintenance, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEquipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}
	return &e, nil
}

// ListEquipment returns all equipment owned by a user
func (r *EquipmentRepository) ListEquipment(ctx context.Context, ownerID string) ([]domain.Equipment, error) {
	oid, err := parseUserID(ownerID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, type, status, location, owner_id, next_maintenance, created_at, updated_at
		FROM equipment
		WHERE owner_id = $1
		ORDER BY name
	`, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		var e domain.Equipment
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Type, &e.Status, &e.Location, &e.OwnerID,
			&e.NextMaintenance, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// UpdateStatus sets the equipment status and optionally its next maintenance time
func (r *EquipmentRepository) UpdateStatus(ctx context.Context, id, status string, nextMaintenance *time.Time) error {
	eid, err := parseID(id, "equipment")
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE equipment
		SET status = $2,
		    next_maintenance = COALESCE($3, next_maintenance),
		    updated_at = NOW()
		WHERE id = $1
	`, eid, status, nextMaintenance)
	if err != nil {
		return fmt.Errorf("failed to update equipment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEquipmentNotFound
	}
	return nil
}

// ListMaintenanceDue returns operational equipment whose next maintenance
// falls before the cutoff.
func (r *EquipmentRepository) ListMaintenanceDue(ctx context.Context, before time.Time) ([]domain.Equipment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, type, status, location, owner_id, next_maintenance, created_at, updated_at
		FROM equipment
		WHERE next_maintenance IS NOT NULL
		  AND next_maintenance <= $1
		  AND status = $2
		ORDER BY next_maintenance
	`, before, domain.EquipmentStatusOperational)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance due: %w", err)
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		var e domain.Equipment
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Type, &e.Status, &e.Location, &e.OwnerID,
			&e.NextMaintenance, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
