package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"storeminds/internal/messaging"
	"storeminds/internal/model"
	"storeminds/internal/repository"
	"storeminds/pkg/database"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var fixedNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

type testStore struct {
	db         *gorm.DB
	items      repository.ItemRepository
	txns       repository.TransactionRepository
	activity   repository.ActivityRepository
	users      repository.UserRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	events     *recordingPublisher
	cache      *recordingCache
}

func newTestStore(t *testing.T) *testStore {
	t.Helper()
	db, err := database.Open(database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
		LogLevel:   logger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, repository.Migrate(db))

	return &testStore{
		db:         db,
		items:      repository.NewItemRepo(db),
		txns:       repository.NewTransactionRepo(db),
		activity:   repository.NewActivityRepo(db),
		users:      repository.NewUserRepo(db),
		categories: repository.NewCategoryRepo(db),
		suppliers:  repository.NewSupplierRepo(db),
		events:     &recordingPublisher{},
		cache:      newRecordingCache(),
	}
}

func (s *testStore) addItem(t *testing.T, name, sku string, qty int, price string) *model.Item {
	t.Helper()
	item := &model.Item{
		Name:        name,
		SKU:         sku,
		Quantity:    qty,
		Price:       decimal.RequireFromString(price),
		Category:    "Electronics",
		LastUpdated: fixedNow,
	}
	require.NoError(t, s.items.Create(s.db, item))
	return item
}

func (s *testStore) quantity(t *testing.T, id uint) int {
	t.Helper()
	item, err := s.items.FindByID(s.db, id)
	require.NoError(t, err)
	return item.Quantity
}

func (s *testStore) count(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Model(m).Count(&n).Error)
	return n
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []messaging.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e messaging.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Action)
	}
	return out
}

// recordingCache is an in-memory AnalyticsCache that counts invalidations.
type recordingCache struct {
	mu           sync.Mutex
	entries      map[string]interface{}
	gets         int
	invalidation int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: map[string]interface{}{}}
}

func (c *recordingCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	copyInto(dest, v)
	return true, nil
}

func (c *recordingCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *recordingCache) InvalidatePrefix(_ context.Context, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]interface{}{}
	c.invalidation++
	return nil
}

func (c *recordingCache) invalidations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidation
}

func copyInto(dest, v interface{}) {
	switch d := dest.(type) {
	case *[]SalesPoint:
		*d = v.([]SalesPoint)
	case *[]repository.TopProduct:
		*d = v.([]repository.TopProduct)
	case *[]repository.PaymentSummary:
		*d = v.([]repository.PaymentSummary)
	}
}
