package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "Cash"
	PaymentCard PaymentMethod = "Card"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentCash || p == PaymentCard
}

// Transaction is an immutable sale record. It owns its lines.
type Transaction struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	Total         decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"total"`
	PaymentMethod PaymentMethod     `gorm:"type:varchar(20);not null" json:"payment_method"`
	Date          time.Time         `gorm:"not null;index" json:"date"`
	Lines         []TransactionLine `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// TransactionLine snapshots the item name and unit price at sale time. ItemID is
// a plain column, not a foreign key: deleting an item leaves history readable.
type TransactionLine struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	TransactionID uint            `gorm:"not null;index" json:"transaction_id"`
	ItemID        uint            `gorm:"not null;index" json:"item_id"`
	ItemName      string          `gorm:"type:varchar(255)" json:"item_name"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
}

func (TransactionLine) TableName() string {
	return "transaction_items"
}

func (l *TransactionLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// UnitsSold sums line quantities.
func (t *Transaction) UnitsSold() int {
	n := 0
	for _, l := range t.Lines {
		n += l.Quantity
	}
	return n
}
