package repository

import (
	"context"

	"storeminds/internal/model"

	"gorm.io/gorm"
)

// Migrate creates or extends every table. Columns are added when missing;
// nothing is dropped.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Item{},
		&model.Category{},
		&model.Supplier{},
		&model.Transaction{},
		&model.TransactionLine{},
		&model.ActivityLogEntry{},
		&model.User{},
	)
}

// resetOrder lists tables children first so foreign keys never block a delete.
var resetOrder = []interface{}{
	&model.TransactionLine{},
	&model.Transaction{},
	&model.ActivityLogEntry{},
	&model.Item{},
	&model.Supplier{},
	&model.User{},
}

// Reset empties the operational tables inside tx. Categories are kept.
func Reset(tx *gorm.DB) error {
	for _, m := range resetOrder {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}

// TableCounts reports the number of rows per table.
func TableCounts(ctx context.Context, db *gorm.DB) (map[string]int64, error) {
	models := []interface{ TableName() string }{
		model.Item{},
		model.Category{},
		model.Supplier{},
		model.Transaction{},
		model.TransactionLine{},
		model.ActivityLogEntry{},
		model.User{},
	}

	counts := make(map[string]int64, len(models))
	for _, m := range models {
		var n int64
		if err := db.WithContext(ctx).Table(m.TableName()).Count(&n).Error; err != nil {
			return nil, err
		}
		counts[m.TableName()] = n
	}
	return counts, nil
}
