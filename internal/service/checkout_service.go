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
	"storeminds/pkg/validator"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PricePolicy decides which unit price is recorded on a sale line.
type PricePolicy string

const (
	// PriceFromCatalog records the stored item price and requires the declared
	// total to match the computed one.
	PriceFromCatalog PricePolicy = "catalog"
	// PriceFromCart records the client-supplied price and total verbatim.
	PriceFromCart PricePolicy = "cart"
)

// CartLine is one entry of the client cart. The JSON names follow the browser
// cart, where the item id travels as "id" and the amount as "cartQuantity".
type CartLine struct {
	ItemID   uint            `json:"id" validate:"required"`
	Name     string          `json:"name"`
	Quantity int             `json:"cartQuantity" validate:"gt=0"`
	Price    decimal.Decimal `json:"price" validate:"nonneg_decimal"`
}

type CheckoutRequest struct {
	Cart          []CartLine          `json:"cart" validate:"dive"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod" validate:"required,oneof=Cash Card"`
	Total         decimal.Decimal     `json:"total" validate:"nonneg_decimal"`
}

type CheckoutResult struct {
	TransactionID uint                    `json:"transactionId"`
	Total         decimal.Decimal         `json:"total"`
	PaymentMethod model.PaymentMethod     `json:"paymentMethod"`
	Date          time.Time               `json:"date"`
	Lines         []model.TransactionLine `json:"items"`
}

type CheckoutService interface {
	Checkout(ctx context.Context, req *CheckoutRequest) (*CheckoutResult, error)
}

type checkoutService struct {
	db           *gorm.DB
	itemRepo     repository.ItemRepository
	txRepo       repository.TransactionRepository
	activityRepo repository.ActivityRepository
	publisher    messaging.Publisher
	cache        cache.AnalyticsCache
	policy       PricePolicy
	logger       *zap.Logger
	now          func() time.Time
}

func NewCheckoutService(
	db *gorm.DB,
	itemRepo repository.ItemRepository,
	txRepo repository.TransactionRepository,
	activityRepo repository.ActivityRepository,
	publisher messaging.Publisher,
	analytics cache.AnalyticsCache,
	policy PricePolicy,
	logger *zap.Logger,
) CheckoutService {
	if policy == "" {
		policy = PriceFromCatalog
	}
	return &checkoutService{
		db:           db,
		itemRepo:     itemRepo,
		txRepo:       txRepo,
		activityRepo: activityRepo,
		publisher:    publisher,
		cache:        analytics,
		policy:       policy,
		logger:       logger,
		now:          time.Now,
	}
}

// Checkout records a sale in one unit of work: the transaction header, one
// line per cart entry, the stock decrements and the activity entries commit
// together or not at all. Stock is decremented with a guarded update so
// concurrent checkouts can never oversell.
func (s *checkoutService) Checkout(ctx context.Context, req *CheckoutRequest) (*CheckoutResult, error) {
	if req == nil || len(req.Cart) == 0 {
		return nil, ErrEmptyCart
	}
	if err := validator.FirstError(req); err != nil {
		return nil, validationError(err)
	}

	now := s.now().UTC()
	var result *CheckoutResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txn := &model.Transaction{
			Total:         req.Total.Round(2),
			PaymentMethod: req.PaymentMethod,
			Date:          now,
		}
		if err := s.txRepo.Create(tx, txn); err != nil {
			return err
		}

		lines := make([]model.TransactionLine, 0, len(req.Cart))
		computed := decimal.Zero

		for _, entry := range req.Cart {
			item, err := s.itemRepo.FindByID(tx, entry.ItemID)
			if errors.Is(err, repository.ErrNotFound) {
				return &StockError{Kind: ErrItemNotFound, ItemID: entry.ItemID, ItemName: entry.Name, Requested: entry.Quantity}
			}
			if err != nil {
				return err
			}

			ok, err := s.itemRepo.DecrementStock(tx, item.ID, entry.Quantity, now)
			if err != nil {
				return err
			}
			if !ok {
				return &StockError{
					Kind:      ErrInsufficientStock,
					ItemID:    item.ID,
					ItemName:  item.Name,
					Requested: entry.Quantity,
					Available: item.Quantity,
				}
			}

			price := item.Price
			if s.policy == PriceFromCart {
				price = entry.Price
			}
			line := model.TransactionLine{
				TransactionID: txn.ID,
				ItemID:        item.ID,
				ItemName:      item.Name,
				Quantity:      entry.Quantity,
				Price:         price,
			}
			if err := s.txRepo.AddLine(tx, &line); err != nil {
				return err
			}
			if err := s.activityRepo.Append(tx, model.ActivityPointOfSale, item.Name, -entry.Quantity, now); err != nil {
				return err
			}

			computed = computed.Add(line.Subtotal())
			lines = append(lines, line)
		}

		if s.policy == PriceFromCatalog && !computed.Round(2).Equal(txn.Total) {
			return fmt.Errorf("%w: declared %s, expected %s", ErrTotalMismatch, txn.Total.StringFixed(2), computed.StringFixed(2))
		}

		result = &CheckoutResult{
			TransactionID: txn.ID,
			Total:         txn.Total,
			PaymentMethod: txn.PaymentMethod,
			Date:          txn.Date,
			Lines:         lines,
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("checkout rolled back",
			zap.Int("lines", len(req.Cart)),
			zap.String("payment_method", string(req.PaymentMethod)),
			zap.Error(err),
		)
		return nil, classify(err)
	}

	s.logger.Info("checkout committed",
		zap.Uint("transaction_id", result.TransactionID),
		zap.String("total", result.Total.StringFixed(2)),
		zap.Int("lines", len(result.Lines)),
	)
	s.afterCommit(ctx, result)
	return result, nil
}

// afterCommit notifies listeners and drops stale reports. Failures here never
// undo the sale.
func (s *checkoutService) afterCommit(ctx context.Context, result *CheckoutResult) {
	stock := make([]map[string]interface{}, 0, len(result.Lines))
	for _, l := range result.Lines {
		stock = append(stock, map[string]interface{}{
			"id":       l.ItemID,
			"name":     l.ItemName,
			"quantity": l.Quantity,
		})
	}
	event := messaging.NewEvent(
		messaging.ActionSaleCompleted,
		strconv.FormatUint(uint64(result.TransactionID), 10),
		map[string]interface{}{
			"transaction_id": result.TransactionID,
			"total":          result.Total,
			"payment_method": result.PaymentMethod,
			"items":          stock,
		},
		fmt.Sprintf("Sale #%d completed", result.TransactionID),
		result.Date,
	)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish sale event", zap.Uint("transaction_id", result.TransactionID), zap.Error(err))
	}
	if err := s.cache.InvalidatePrefix(ctx, cache.AnalyticsPrefix); err != nil {
		s.logger.Warn("failed to invalidate analytics cache", zap.Error(err))
	}
}
