package domain

import "time"

// Equipment is a registered piece of farm machinery
type Equipment struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	Status          string     `json:"status"`
	Location        string     `json:"location,omitempty"`
	OwnerID         string     `json:"owner_id"`
	NextMaintenance *time.Time `json:"next_maintenance,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Equipment status constants
const (
	EquipmentStatusOperational = "operational"
	EquipmentStatusMaintenance = "maintenance"
	EquipmentStatusRepair      = "repair"
	EquipmentStatusOffline     = "offline"
)

// ValidEquipmentTransitions maps each status to the statuses it may move to.
// Repair must pass through maintenance before returning to service.
var ValidEquipmentTransitions = map[string][]string{
	EquipmentStatusOperational: {EquipmentStatusMaintenance, EquipmentStatusRepair, EquipmentStatusOffline},
	EquipmentStatusMaintenance: {EquipmentStatusOperational, EquipmentStatusRepair, EquipmentStatusOffline},
	EquipmentStatusRepair:      {EquipmentStatusMaintenance, EquipmentStatusOffline},
	EquipmentStatusOffline:     {EquipmentStatusMaintenance},
}

// IsValidEquipmentTransition reports whether moving from one status to another is allowed
func IsValidEquipmentTransition(from, to string) bool {
	for _, s := range ValidEquipmentTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// MaintenanceDueWindow is how far ahead the maintenance worker looks
const MaintenanceDueWindow = 48 * time.Hour
