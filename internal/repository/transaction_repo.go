package repository

import (
	"context"
	"time"

	"storeminds/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(tx *gorm.DB, txn *model.Transaction) error
	AddLine(tx *gorm.DB, line *model.TransactionLine) error
	FindAll(ctx context.Context) ([]model.Transaction, error)
	FindByID(ctx context.Context, id uint) (*model.Transaction, error)
	FindBetween(ctx context.Context, from, to time.Time) ([]model.Transaction, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
	PaymentBreakdown(ctx context.Context, from, to time.Time) ([]PaymentSummary, error)
}

// TopProduct untuk chart produk terlaris
type TopProduct struct {
	ItemID uint   `json:"item_id"`
	Name   string `json:"name"`
	Sold   int64  `json:"sold"`
}

// PaymentSummary aggregates a day's sales for one payment method.
type PaymentSummary struct {
	PaymentMethod string          `json:"payment_method"`
	Total         decimal.Decimal `json:"total"`
	Count         int64           `json:"count"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

// Create inserts the header row only; lines are added one by one with AddLine.
func (r *transactionRepo) Create(tx *gorm.DB, txn *model.Transaction) error {
	return tx.Omit("Lines").Create(txn).Error
}

func (r *transactionRepo) AddLine(tx *gorm.DB, line *model.TransactionLine) error {
	return tx.Create(line).Error
}

func (r *transactionRepo) FindAll(ctx context.Context) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("date DESC").
		Order("id DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(ctx context.Context, id uint) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&transaction, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &transaction, nil
}

// FindBetween returns headers in [from, to) ordered by date.
func (r *transactionRepo) FindBetween(ctx context.Context, from, to time.Time) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC").
		Find(&transactions).Error
	return transactions, err
}

// TopProducts groups by item id and reports the name captured at sale time,
// so deleted items still show up.
func (r *transactionRepo) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	var results []TopProduct
	err := r.db.WithContext(ctx).Model(&model.TransactionLine{}).
		Select("item_id, MAX(item_name) AS name, SUM(quantity) AS sold").
		Group("item_id").
		Order("sold DESC").
		Order("item_id ASC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *transactionRepo) PaymentBreakdown(ctx context.Context, from, to time.Time) ([]PaymentSummary, error) {
	var results []PaymentSummary
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("payment_method, SUM(total) AS total, COUNT(id) AS count").
		Where("date >= ? AND date < ?", from, to).
		Group("payment_method").
		Order("payment_method ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	// SQLite sums decimals as floats.
	for i := range results {
		results[i].Total = results[i].Total.Round(2)
	}
	return results, nil
}
