package service

import (
	"context"
	"testing"
	"time"

	"storeminds/internal/messaging"
	"storeminds/internal/model"
	"storeminds/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMaintenance(s *testStore) MaintenanceService {
	svc := NewMaintenanceService(s.db, s.items, s.categories, s.users, s.events, s.cache, zap.NewNop())
	svc.(*maintenanceService).now = func() time.Time { return fixedNow }
	return svc
}

func TestSeed_IsIdempotent(t *testing.T) {
	s := newTestStore(t)
	svc := newMaintenance(s)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx))
	require.NoError(t, svc.Seed(ctx))

	assert.Equal(t, int64(len(repository.DefaultItems)), s.count(t, &model.Item{}))
	assert.Equal(t, int64(len(model.DefaultCategories)), s.count(t, &model.Category{}))
	assert.Equal(t, int64(1), s.count(t, &model.User{}))

	item, err := s.items.FindBySKU(s.db, "AUDIO-001")
	require.NoError(t, err)
	assert.Equal(t, 45, item.Quantity)
	assert.Equal(t, "129.99", item.Price.StringFixed(2))
}

func TestReset(t *testing.T) {
	s := newTestStore(t)
	svc := newMaintenance(s)
	ctx := context.Background()
	require.NoError(t, svc.Seed(ctx))

	item, err := s.items.FindBySKU(s.db, "FUR-002")
	require.NoError(t, err)
	_, err = newCheckout(s, PriceFromCatalog).Checkout(ctx, cartOf("299.99", CartLine{ItemID: item.ID, Quantity: 1}))
	require.NoError(t, err)
	require.NoError(t, s.suppliers.Create(ctx, &model.Supplier{Name: "Acme"}))

	require.NoError(t, svc.Reset(ctx))

	for _, m := range []interface{}{&model.Item{}, &model.Transaction{}, &model.TransactionLine{}, &model.ActivityLogEntry{}, &model.Supplier{}} {
		assert.Zero(t, s.count(t, m))
	}
	assert.Equal(t, int64(len(model.DefaultCategories)), s.count(t, &model.Category{}))

	admin, err := s.users.FindByUsername(ctx, repository.DefaultAdminUsername)
	require.NoError(t, err)
	assert.True(t, admin.CheckPassword(repository.DefaultAdminPassword))

	assert.Contains(t, s.events.actions(), messaging.ActionDatabaseReset)
}

func TestCheck(t *testing.T) {
	s := newTestStore(t)
	svc := newMaintenance(s)
	ctx := context.Background()
	require.NoError(t, svc.Seed(ctx))
	require.NoError(t, s.db.Create(&model.User{Username: "legacy"}).Error)

	report, err := svc.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), report.Tables["items"])
	assert.Equal(t, int64(2), report.Tables["users"])
	assert.Equal(t, []string{"legacy"}, report.UsersWithoutPassword)
}
