package repository

import (
	"context"
	"time"

	"storeminds/internal/model"

	"gorm.io/gorm"
)

type ActivityRepository interface {
	Append(tx *gorm.DB, kind model.ActivityKind, itemName string, delta int, at time.Time) error
	Recent(ctx context.Context, limit int) ([]model.ActivityLogEntry, error)
}

type activityRepo struct {
	db *gorm.DB
}

func NewActivityRepo(db *gorm.DB) ActivityRepository {
	return &activityRepo{db}
}

// Append writes through tx so the entry commits or rolls back with the
// surrounding unit of work.
func (r *activityRepo) Append(tx *gorm.DB, kind model.ActivityKind, itemName string, delta int, at time.Time) error {
	entry := model.ActivityLogEntry{
		Kind:           kind,
		ItemName:       itemName,
		QuantityChange: delta,
		Timestamp:      at,
	}
	return tx.Create(&entry).Error
}

func (r *activityRepo) Recent(ctx context.Context, limit int) ([]model.ActivityLogEntry, error) {
	var entries []model.ActivityLogEntry
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
