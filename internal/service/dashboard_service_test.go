package service

import (
	"context"
	"testing"
	"time"

	"storeminds/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDashboard(s *testStore) DashboardService {
	svc := NewDashboardService(s.items, s.txns, s.activity, s.cache, time.Minute, 5, zap.NewNop())
	svc.(*dashboardService).now = func() time.Time { return fixedNow }
	return svc
}

func sellAt(t *testing.T, s *testStore, at time.Time, payment model.PaymentMethod, total string, lines ...CartLine) {
	t.Helper()
	svc := NewCheckoutService(s.db, s.items, s.txns, s.activity, s.events, s.cache, PriceFromCatalog, zap.NewNop())
	svc.(*checkoutService).now = func() time.Time { return at }
	req := cartOf(total, lines...)
	req.PaymentMethod = payment
	_, err := svc.Checkout(context.Background(), req)
	require.NoError(t, err)
}

func TestGetDashboard(t *testing.T) {
	s := newTestStore(t)
	headphones := s.addItem(t, "Wireless Headphones", "AUDIO-001", 45, "129.99")
	chair := s.addItem(t, "Ergonomic Chair", "FUR-002", 8, "299.99")
	s.addItem(t, "Mechanical Keyboard", "TECH-003", 12, "159.50")

	for i := 0; i < 3; i++ {
		sellAt(t, s, fixedNow.Add(time.Duration(i)*time.Minute), model.PaymentCash, "299.99", CartLine{ItemID: chair.ID, Quantity: 1})
	}
	sellAt(t, s, fixedNow.Add(5*time.Minute), model.PaymentCard, "259.98", CartLine{ItemID: headphones.ID, Quantity: 2})

	d, err := newDashboard(s).GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), d.Stats.TotalItems)
	assert.Equal(t, int64(0), d.Stats.LowStock)
	// 43*129.99 + 5*299.99 + 12*159.50
	assert.Equal(t, "9003.52", d.Stats.TotalValue.StringFixed(2))

	require.Len(t, d.Activity, 4)
	assert.Equal(t, "Wireless Headphones", d.Activity[0].ItemName)
	assert.Equal(t, "Sale", d.Activity[0].Type)
	assert.Equal(t, -2, d.Activity[0].QuantityChange)

	sellAt(t, s, fixedNow.Add(6*time.Minute), model.PaymentCash, "599.98", CartLine{ItemID: chair.ID, Quantity: 2})
	sellAt(t, s, fixedNow.Add(7*time.Minute), model.PaymentCash, "159.50", CartLine{ItemID: 3, Quantity: 1})

	d, err = newDashboard(s).GetDashboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, d.Activity, RecentActivityLimit)
	assert.Equal(t, int64(1), d.Stats.LowStock)
}

func TestGetSalesTrend_GroupsByUTCDay(t *testing.T) {
	s := newTestStore(t)
	item := s.addItem(t, "Desk Lamp", "HOME-004", 100, "20.00")
	line := CartLine{ItemID: item.ID, Quantity: 1}

	sellAt(t, s, fixedNow, model.PaymentCash, "20.00", line)
	sellAt(t, s, fixedNow.Add(time.Hour), model.PaymentCard, "20.00", line)
	sellAt(t, s, fixedNow.AddDate(0, 0, -2), model.PaymentCash, "20.00", line)
	sellAt(t, s, fixedNow.AddDate(0, 0, -6), model.PaymentCash, "20.00", line)
	// Outside the seven-day window.
	sellAt(t, s, fixedNow.AddDate(0, 0, -7), model.PaymentCash, "20.00", line)

	points, err := newDashboard(s).GetSalesTrend(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, "2026-03-08", points[0].Date)
	assert.Equal(t, "2026-03-12", points[1].Date)
	assert.Equal(t, "2026-03-14", points[2].Date)
	assert.Equal(t, 2, points[2].Transactions)
	assert.Equal(t, "40.00", points[2].Revenue.StringFixed(2))
}

func TestGetTopProducts(t *testing.T) {
	s := newTestStore(t)
	lamp := s.addItem(t, "Desk Lamp", "HOME-004", 100, "20.00")
	chair := s.addItem(t, "Ergonomic Chair", "FUR-002", 100, "10.00")

	sellAt(t, s, fixedNow, model.PaymentCash, "40.00", CartLine{ItemID: lamp.ID, Quantity: 2})
	sellAt(t, s, fixedNow, model.PaymentCash, "50.00", CartLine{ItemID: chair.ID, Quantity: 5})

	top, err := newDashboard(s).GetTopProducts(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Ergonomic Chair", top[0].Name)
	assert.Equal(t, int64(5), top[0].Sold)
	assert.Equal(t, "Desk Lamp", top[1].Name)
}

func TestGetDailySales(t *testing.T) {
	s := newTestStore(t)
	item := s.addItem(t, "Desk Lamp", "HOME-004", 100, "20.00")
	line := CartLine{ItemID: item.ID, Quantity: 1}

	sellAt(t, s, fixedNow, model.PaymentCash, "20.00", line)
	sellAt(t, s, fixedNow.Add(time.Minute), model.PaymentCash, "20.00", line)
	sellAt(t, s, fixedNow.Add(2*time.Minute), model.PaymentCard, "20.00", line)
	sellAt(t, s, fixedNow.AddDate(0, 0, -1), model.PaymentCard, "20.00", line)

	summary, err := newDashboard(s).GetDailySales(context.Background())
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, "Card", summary[0].PaymentMethod)
	assert.Equal(t, int64(1), summary[0].Count)
	assert.Equal(t, "Cash", summary[1].PaymentMethod)
	assert.Equal(t, int64(2), summary[1].Count)
	assert.Equal(t, "40.00", summary[1].Total.StringFixed(2))
}

func TestAnalyticsCacheInvalidatedBySale(t *testing.T) {
	s := newTestStore(t)
	item := s.addItem(t, "Desk Lamp", "HOME-004", 100, "20.00")
	svc := newDashboard(s)
	ctx := context.Background()

	sellAt(t, s, fixedNow, model.PaymentCash, "20.00", CartLine{ItemID: item.ID, Quantity: 1})

	top, err := svc.GetTopProducts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, int64(1), top[0].Sold)

	// Cached result is served until the next sale invalidates it.
	require.NoError(t, s.db.Model(&model.TransactionLine{}).Where("1 = 1").Update("quantity", 9).Error)
	top, err = svc.GetTopProducts(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), top[0].Sold)

	sellAt(t, s, fixedNow, model.PaymentCash, "20.00", CartLine{ItemID: item.ID, Quantity: 1})
	top, err = svc.GetTopProducts(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(10), top[0].Sold)
}
