package model

import "time"

// ActivityKind tags an audit entry. Point-of-sale deductions and manual
// decreases are distinct kinds that share the "Sale" display label.
type ActivityKind string

const (
	ActivityPointOfSale      ActivityKind = "pos_sale"
	ActivityManualAdjustment ActivityKind = "manual_adjustment"
	ActivityRestock          ActivityKind = "restock"
	ActivityNewItem          ActivityKind = "new_item"
	ActivityDelete           ActivityKind = "delete"
)

// Label is the name shown on the dashboard.
func (k ActivityKind) Label() string {
	switch k {
	case ActivityPointOfSale, ActivityManualAdjustment:
		return "Sale"
	case ActivityRestock:
		return "Restock"
	case ActivityNewItem:
		return "New Item"
	case ActivityDelete:
		return "Delete"
	default:
		return string(k)
	}
}

// ActivityLogEntry is append-only. ItemName is a snapshot, not a reference.
type ActivityLogEntry struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Kind           ActivityKind `gorm:"type:varchar(30);not null;index" json:"kind"`
	ItemName       string       `gorm:"type:varchar(255)" json:"item_name"`
	QuantityChange int          `gorm:"not null;default:0" json:"quantity_change"`
	Timestamp      time.Time    `gorm:"not null;index" json:"timestamp"`
}

func (ActivityLogEntry) TableName() string {
	return "activity_log"
}

// ActivityResponse is the presentation form of an entry.
type ActivityResponse struct {
	ID             uint         `json:"id"`
	Type           string       `json:"type"`
	Kind           ActivityKind `json:"kind"`
	ItemName       string       `json:"item_name"`
	QuantityChange int          `json:"quantity_change"`
	Timestamp      time.Time    `json:"timestamp"`
}

func (e *ActivityLogEntry) ToResponse() ActivityResponse {
	return ActivityResponse{
		ID:             e.ID,
		Type:           e.Kind.Label(),
		Kind:           e.Kind,
		ItemName:       e.ItemName,
		QuantityChange: e.QuantityChange,
		Timestamp:      e.Timestamp,
	}
}
