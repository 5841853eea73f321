package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices and totals go over the wire as JSON numbers, matching the browser client.
	decimal.MarshalJSONWithoutQuotes = true
}

// Item is a stock-keeping unit; Quantity is the on-hand ledger a sale consumes.
type Item struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	SKU         string          `gorm:"column:sku;type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Quantity    int             `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price" validate:"nonneg_decimal"`
	Category    string          `gorm:"type:varchar(100)" json:"category"`
	ImageURL    string          `gorm:"type:text" json:"image_url"`
	SupplierID  *uint           `gorm:"index" json:"supplier_id"`
	LastUpdated time.Time       `json:"last_updated"`
}

func (Item) TableName() string {
	return "items"
}

// StockValue is the stock valuation of the item (quantity x price).
func (i *Item) StockValue() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
