package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"storeminds/internal/model"
	"storeminds/pkg/database"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var at = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "repo.db"),
		LogLevel:   logger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, Migrate(db))
	return db
}

func TestDecrementStock_Guarded(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepo(db)
	item := &model.Item{Name: "Lamp", SKU: "L-1", Quantity: 2, Price: decimal.RequireFromString("5.00"), LastUpdated: at}
	require.NoError(t, repo.Create(db, item))

	ok, err := repo.DecrementStock(db, item.ID, 3, at)
	require.NoError(t, err)
	assert.False(t, ok)

	later := at.Add(time.Hour)
	ok, err = repo.DecrementStock(db, item.ID, 2, later)
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := repo.FindByID(db, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Quantity)
	assert.True(t, stored.LastUpdated.Equal(later))

	ok, err = repo.DecrementStock(db, 999, 1, at)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestItemLookupsAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepo(db)
	item := &model.Item{Name: "Lamp", SKU: "L-1", Quantity: 2, Price: decimal.RequireFromString("5.00"), LastUpdated: at}
	require.NoError(t, repo.Create(db, item))

	found, err := repo.FindBySKU(db, "L-1")
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)

	_, err = repo.FindBySKU(db, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Delete(db, item.ID))
	assert.ErrorIs(t, repo.Delete(db, item.ID), ErrNotFound)
	_, err = repo.FindByID(db, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepo(db)
	ctx := context.Background()

	empty, err := repo.Stats(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.TotalItems)
	assert.True(t, empty.TotalValue.IsZero())

	require.NoError(t, repo.SeedDefaults(ctx, at))
	stats, err := repo.Stats(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalItems)
	assert.Equal(t, int64(1), stats.LowStock)
	// 45*129.99 + 8*299.99 + 12*159.50
	assert.Equal(t, "10163.47", stats.TotalValue.StringFixed(2))
}

func TestTransactionsAndTopProducts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepo(db)
	ctx := context.Background()

	record := func(when time.Time, method model.PaymentMethod, lines ...model.TransactionLine) {
		require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
			total := decimal.Zero
			for i := range lines {
				total = total.Add(lines[i].Subtotal())
			}
			txn := &model.Transaction{Total: total, PaymentMethod: method, Date: when}
			if err := repo.Create(tx, txn); err != nil {
				return err
			}
			for i := range lines {
				lines[i].TransactionID = txn.ID
				if err := repo.AddLine(tx, &lines[i]); err != nil {
					return err
				}
			}
			return nil
		}))
	}

	price := decimal.RequireFromString("2.50")
	record(at, model.PaymentCash, model.TransactionLine{ItemID: 1, ItemName: "Pen", Quantity: 4, Price: price})
	record(at.Add(time.Hour), model.PaymentCard,
		model.TransactionLine{ItemID: 2, ItemName: "Pad", Quantity: 1, Price: price},
		model.TransactionLine{ItemID: 1, ItemName: "Pen", Quantity: 3, Price: price},
	)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, model.PaymentCard, all[0].PaymentMethod)
	require.Len(t, all[0].Lines, 2)
	assert.Equal(t, 4, all[0].UnitsSold())

	top, err := repo.TopProducts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, TopProduct{ItemID: 1, Name: "Pen", Sold: 7}, top[0])

	between, err := repo.FindBetween(ctx, at, at.Add(time.Minute))
	require.NoError(t, err)
	assert.Len(t, between, 1)

	breakdown, err := repo.PaymentBreakdown(ctx, at, at.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, breakdown, 2)
	assert.Equal(t, "Card", breakdown[0].PaymentMethod)
	assert.Equal(t, "10.00", breakdown[0].Total.StringFixed(2))
	assert.Equal(t, int64(1), breakdown[0].Count)
}

func TestResetKeepsCategories(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, NewItemRepo(db).SeedDefaults(ctx, at))
	require.NoError(t, NewCategoryRepo(db).SeedDefaults(ctx))
	_, err := NewUserRepo(db).SeedAdmin(db)
	require.NoError(t, err)
	require.NoError(t, NewActivityRepo(db).Append(db, model.ActivityRestock, "Pen", 3, at))

	require.NoError(t, db.Transaction(Reset))

	counts, err := TableCounts(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, counts["items"])
	assert.Zero(t, counts["users"])
	assert.Zero(t, counts["activity_log"])
	assert.Equal(t, int64(len(model.DefaultCategories)), counts["categories"])
}
