package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityKindLabel(t *testing.T) {
	tests := []struct {
		kind ActivityKind
		want string
	}{
		{ActivityPointOfSale, "Sale"},
		{ActivityManualAdjustment, "Sale"},
		{ActivityRestock, "Restock"},
		{ActivityNewItem, "New Item"},
		{ActivityDelete, "Delete"},
		{ActivityKind("custom"), "custom"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Label())
		})
	}
}

func TestActivityResponseKeepsKind(t *testing.T) {
	entry := ActivityLogEntry{Kind: ActivityManualAdjustment, ItemName: "Chair", QuantityChange: -2}
	resp := entry.ToResponse()
	assert.Equal(t, "Sale", resp.Type)
	assert.Equal(t, ActivityManualAdjustment, resp.Kind)
}

func TestPaymentMethodValid(t *testing.T) {
	assert.True(t, PaymentCash.Valid())
	assert.True(t, PaymentCard.Valid())
	assert.False(t, PaymentMethod("cash").Valid())
	assert.False(t, PaymentMethod("").Valid())
}

func TestPriceMarshalsAsNumber(t *testing.T) {
	item := Item{ID: 1, Name: "Pen", SKU: "P-1", Quantity: 3, Price: decimal.RequireFromString("5.25")}
	raw, err := json.Marshal(item)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"price":5.25`)
	assert.True(t, item.StockValue().Equal(decimal.RequireFromString("15.75")))
}

func TestUserPassword(t *testing.T) {
	var u User
	require.NoError(t, u.SetPassword("admin123"))
	assert.NotEqual(t, "admin123", u.Password)
	assert.True(t, u.CheckPassword("admin123"))
	assert.False(t, u.CheckPassword("nope"))

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
}

func TestTransactionUnitsSold(t *testing.T) {
	txn := Transaction{Lines: []TransactionLine{{Quantity: 2, Price: decimal.NewFromInt(3)}, {Quantity: 5}}}
	assert.Equal(t, 7, txn.UnitsSold())
	assert.True(t, txn.Lines[0].Subtotal().Equal(decimal.NewFromInt(6)))
}
