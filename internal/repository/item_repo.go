package repository

import (
	"context"
	"errors"
	"time"

	"storeminds/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ItemRepository interface {
	Create(tx *gorm.DB, item *model.Item) error
	FindAll(ctx context.Context) ([]model.Item, error)
	FindByID(tx *gorm.DB, id uint) (*model.Item, error)
	FindBySKU(tx *gorm.DB, sku string) (*model.Item, error)
	Update(tx *gorm.DB, item *model.Item) error
	Delete(tx *gorm.DB, id uint) error
	DecrementStock(tx *gorm.DB, id uint, qty int, at time.Time) (bool, error)
	Stats(ctx context.Context, lowStockThreshold int) (*InventoryStats, error)
	SeedDefaults(ctx context.Context, at time.Time) error
}

// InventoryStats untuk dashboard overview
type InventoryStats struct {
	TotalItems int64           `json:"totalItems"`
	TotalValue decimal.Decimal `json:"totalValue"`
	LowStock   int64           `json:"lowStock"`
}

// DefaultItems are seeded into an empty items table.
var DefaultItems = []model.Item{
	{Name: "Wireless Headphones", SKU: "AUDIO-001", Quantity: 45, Price: decimal.RequireFromString("129.99"), Category: "Electronics"},
	{Name: "Ergonomic Chair", SKU: "FUR-002", Quantity: 8, Price: decimal.RequireFromString("299.99"), Category: "Furniture"},
	{Name: "Mechanical Keyboard", SKU: "TECH-003", Quantity: 12, Price: decimal.RequireFromString("159.50"), Category: "Electronics"},
}

type itemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db}
}

func (r *itemRepo) Create(tx *gorm.DB, item *model.Item) error {
	return tx.Create(item).Error
}

func (r *itemRepo) FindAll(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *itemRepo) FindByID(tx *gorm.DB, id uint) (*model.Item, error) {
	var item model.Item
	if err := tx.First(&item, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *itemRepo) FindBySKU(tx *gorm.DB, sku string) (*model.Item, error) {
	var item model.Item
	if err := tx.First(&item, "sku = ?", sku).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// Update writes every column, including zero values.
func (r *itemRepo) Update(tx *gorm.DB, item *model.Item) error {
	return tx.Save(item).Error
}

func (r *itemRepo) Delete(tx *gorm.DB, id uint) error {
	res := tx.Delete(&model.Item{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock subtracts qty only while enough stock remains. It reports
// false when the guard rejected the update (missing row or quantity < qty);
// concurrent callers can never drive the quantity below zero.
func (r *itemRepo) DecrementStock(tx *gorm.DB, id uint, qty int, at time.Time) (bool, error) {
	res := tx.Model(&model.Item{}).
		Where("id = ? AND quantity >= ?", id, qty).
		Updates(map[string]interface{}{
			"quantity":     gorm.Expr("quantity - ?", qty),
			"last_updated": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *itemRepo) Stats(ctx context.Context, lowStockThreshold int) (*InventoryStats, error) {
	var row struct {
		TotalItems int64
		TotalValue float64
		LowStock   int64
	}

	err := r.db.WithContext(ctx).Model(&model.Item{}).
		Select(`
			COUNT(*) AS total_items,
			COALESCE(SUM(quantity * price), 0) AS total_value,
			COALESCE(SUM(CASE WHEN quantity < ? THEN 1 ELSE 0 END), 0) AS low_stock
		`, lowStockThreshold).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &InventoryStats{
		TotalItems: row.TotalItems,
		TotalValue: decimal.NewFromFloat(row.TotalValue).Round(2),
		LowStock:   row.LowStock,
	}, nil
}

func (r *itemRepo) SeedDefaults(ctx context.Context, at time.Time) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Item{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := make([]model.Item, len(DefaultItems))
	copy(items, DefaultItems)
	for i := range items {
		items[i].LastUpdated = at
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
