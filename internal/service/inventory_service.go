package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"storeminds/internal/cache"
	"storeminds/internal/messaging"
	"storeminds/internal/model"
	"storeminds/internal/repository"
	"storeminds/pkg/database"
	"storeminds/pkg/validator"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ItemInput is the writable part of an item, used by both create and update.
type ItemInput struct {
	Name       string          `json:"name" validate:"required"`
	SKU        string          `json:"sku" validate:"required"`
	Quantity   int             `json:"quantity" validate:"gte=0"`
	Price      decimal.Decimal `json:"price" validate:"nonneg_decimal"`
	Category   string          `json:"category"`
	ImageURL   string          `json:"image_url"`
	SupplierID *uint           `json:"supplier_id"`
}

type InventoryService interface {
	ListItems(ctx context.Context) ([]model.Item, error)
	CreateItem(ctx context.Context, req *ItemInput) (*model.Item, error)
	UpdateItem(ctx context.Context, id uint, req *ItemInput) (*model.Item, error)
	DeleteItem(ctx context.Context, id uint) error
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	GetTransaction(ctx context.Context, id uint) (*model.Transaction, error)
}

type inventoryService struct {
	db           *gorm.DB
	itemRepo     repository.ItemRepository
	txRepo       repository.TransactionRepository
	activityRepo repository.ActivityRepository
	publisher    messaging.Publisher
	cache        cache.AnalyticsCache
	logger       *zap.Logger
	now          func() time.Time
}

func NewInventoryService(
	db *gorm.DB,
	itemRepo repository.ItemRepository,
	txRepo repository.TransactionRepository,
	activityRepo repository.ActivityRepository,
	publisher messaging.Publisher,
	analytics cache.AnalyticsCache,
	logger *zap.Logger,
) InventoryService {
	return &inventoryService{
		db:           db,
		itemRepo:     itemRepo,
		txRepo:       txRepo,
		activityRepo: activityRepo,
		publisher:    publisher,
		cache:        analytics,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *inventoryService) ListItems(ctx context.Context) ([]model.Item, error) {
	items, err := s.itemRepo.FindAll(ctx)
	if err != nil {
		return nil, classify(err)
	}
	return items, nil
}

// CreateItem stores a new item and logs its opening quantity.
func (s *inventoryService) CreateItem(ctx context.Context, req *ItemInput) (*model.Item, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, validationError(err)
	}

	now := s.now().UTC()
	item := &model.Item{
		Name:        req.Name,
		SKU:         req.SKU,
		Quantity:    req.Quantity,
		Price:       req.Price.Round(2),
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		SupplierID:  req.SupplierID,
		LastUpdated: now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ensureUniqueSKU(tx, req.SKU, 0); err != nil {
			return err
		}
		if err := s.itemRepo.Create(tx, item); err != nil {
			return err
		}
		return s.activityRepo.Append(tx, model.ActivityNewItem, item.Name, item.Quantity, now)
	})
	if err != nil {
		return nil, classify(err)
	}

	s.announce(ctx, messaging.ActionItemCreated, item, fmt.Sprintf("Item '%s' created", item.Name), map[string]interface{}{
		"id":       item.ID,
		"sku":      item.SKU,
		"name":     item.Name,
		"quantity": item.Quantity,
		"price":    item.Price,
	})
	return item, nil
}

// UpdateItem replaces the item fields. A quantity change is logged as a
// restock when positive and as a manual adjustment when negative.
func (s *inventoryService) UpdateItem(ctx context.Context, id uint, req *ItemInput) (*model.Item, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, validationError(err)
	}

	now := s.now().UTC()
	var (
		updated  *model.Item
		oldStock int
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.itemRepo.FindByID(database.ForUpdate(tx), id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrItemNotFound
		}
		if err != nil {
			return err
		}
		if req.SKU != existing.SKU {
			if err := s.ensureUniqueSKU(tx, req.SKU, id); err != nil {
				return err
			}
		}

		oldStock = existing.Quantity
		existing.Name = req.Name
		existing.SKU = req.SKU
		existing.Quantity = req.Quantity
		existing.Price = req.Price.Round(2)
		existing.Category = req.Category
		existing.ImageURL = req.ImageURL
		existing.SupplierID = req.SupplierID
		existing.LastUpdated = now

		if err := s.itemRepo.Update(tx, existing); err != nil {
			return err
		}

		if delta := existing.Quantity - oldStock; delta != 0 {
			kind := model.ActivityRestock
			if delta < 0 {
				kind = model.ActivityManualAdjustment
			}
			if err := s.activityRepo.Append(tx, kind, existing.Name, delta, now); err != nil {
				return err
			}
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	s.announce(ctx, messaging.ActionItemUpdated, updated, fmt.Sprintf("Item '%s' updated", updated.Name), map[string]interface{}{
		"id":        updated.ID,
		"sku":       updated.SKU,
		"name":      updated.Name,
		"old_stock": oldStock,
		"new_stock": updated.Quantity,
		"price":     updated.Price,
	})
	return updated, nil
}

// DeleteItem removes the item. Past transaction lines keep their snapshot of
// the item name and price.
func (s *inventoryService) DeleteItem(ctx context.Context, id uint) error {
	now := s.now().UTC()
	var deleted *model.Item

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.itemRepo.FindByID(database.ForUpdate(tx), id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrItemNotFound
		}
		if err != nil {
			return err
		}
		if err := s.itemRepo.Delete(tx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrItemNotFound
			}
			return err
		}
		existing.LastUpdated = now
		deleted = existing
		return s.activityRepo.Append(tx, model.ActivityDelete, existing.Name, 0, now)
	})
	if err != nil {
		return classify(err)
	}

	s.announce(ctx, messaging.ActionItemDeleted, deleted, fmt.Sprintf("Item '%s' deleted", deleted.Name), map[string]interface{}{
		"id":   deleted.ID,
		"sku":  deleted.SKU,
		"name": deleted.Name,
	})
	return nil
}

func (s *inventoryService) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	txns, err := s.txRepo.FindAll(ctx)
	if err != nil {
		return nil, classify(err)
	}
	return txns, nil
}

func (s *inventoryService) GetTransaction(ctx context.Context, id uint) (*model.Transaction, error) {
	txn, err := s.txRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTransactionMissing
	}
	if err != nil {
		return nil, classify(err)
	}
	return txn, nil
}

func (s *inventoryService) ensureUniqueSKU(tx *gorm.DB, sku string, selfID uint) error {
	other, err := s.itemRepo.FindBySKU(tx, sku)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if other.ID != selfID {
		return ErrSKUExists
	}
	return nil
}

func (s *inventoryService) announce(ctx context.Context, action string, item *model.Item, message string, payload map[string]interface{}) {
	event := messaging.NewEvent(action, strconv.FormatUint(uint64(item.ID), 10), payload, message, item.LastUpdated)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish item event", zap.String("action", action), zap.Uint("item_id", item.ID), zap.Error(err))
	}
	if err := s.cache.InvalidatePrefix(ctx, cache.AnalyticsPrefix); err != nil {
		s.logger.Warn("failed to invalidate analytics cache", zap.Error(err))
	}
}
