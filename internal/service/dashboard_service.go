package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"storeminds/internal/cache"
	"storeminds/internal/model"
	"storeminds/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	RecentActivityLimit = 5
	DefaultTrendDays    = 7
	DefaultTopProducts  = 5
)

type Dashboard struct {
	Stats    *repository.InventoryStats `json:"stats"`
	Activity []model.ActivityResponse   `json:"activity"`
}

// SalesPoint is one UTC day of revenue.
type SalesPoint struct {
	Date         string          `json:"date"`
	Revenue      decimal.Decimal `json:"revenue"`
	Transactions int             `json:"transactions"`
}

type DashboardService interface {
	GetDashboard(ctx context.Context) (*Dashboard, error)
	GetSalesTrend(ctx context.Context, days int) ([]SalesPoint, error)
	GetTopProducts(ctx context.Context, limit int) ([]repository.TopProduct, error)
	GetDailySales(ctx context.Context) ([]repository.PaymentSummary, error)
}

type dashboardService struct {
	itemRepo          repository.ItemRepository
	txRepo            repository.TransactionRepository
	activityRepo      repository.ActivityRepository
	cache             cache.AnalyticsCache
	cacheTTL          time.Duration
	lowStockThreshold int
	logger            *zap.Logger
	now               func() time.Time
}

func NewDashboardService(
	itemRepo repository.ItemRepository,
	txRepo repository.TransactionRepository,
	activityRepo repository.ActivityRepository,
	analytics cache.AnalyticsCache,
	cacheTTL time.Duration,
	lowStockThreshold int,
	logger *zap.Logger,
) DashboardService {
	return &dashboardService{
		itemRepo:          itemRepo,
		txRepo:            txRepo,
		activityRepo:      activityRepo,
		cache:             analytics,
		cacheTTL:          cacheTTL,
		lowStockThreshold: lowStockThreshold,
		logger:            logger,
		now:               time.Now,
	}
}

// GetDashboard always reads live state; stock figures are never cached.
func (s *dashboardService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	stats, err := s.itemRepo.Stats(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, classify(err)
	}

	entries, err := s.activityRepo.Recent(ctx, RecentActivityLimit)
	if err != nil {
		return nil, classify(err)
	}

	activity := make([]model.ActivityResponse, 0, len(entries))
	for i := range entries {
		activity = append(activity, entries[i].ToResponse())
	}

	return &Dashboard{Stats: stats, Activity: activity}, nil
}

// GetSalesTrend returns revenue per day for today and the previous days-1
// days, oldest first. Days without sales are omitted.
func (s *dashboardService) GetSalesTrend(ctx context.Context, days int) ([]SalesPoint, error) {
	if days <= 0 {
		days = DefaultTrendDays
	}

	key := fmt.Sprintf("%ssales:%d", cache.AnalyticsPrefix, days)
	var points []SalesPoint
	if s.cached(ctx, key, &points) {
		return points, nil
	}

	today := startOfDay(s.now())
	from := today.AddDate(0, 0, -(days - 1))
	to := today.AddDate(0, 0, 1)

	txns, err := s.txRepo.FindBetween(ctx, from, to)
	if err != nil {
		return nil, classify(err)
	}

	byDay := make(map[string]*SalesPoint)
	for _, t := range txns {
		day := t.Date.UTC().Format("2006-01-02")
		p, ok := byDay[day]
		if !ok {
			p = &SalesPoint{Date: day, Revenue: decimal.Zero}
			byDay[day] = p
		}
		p.Revenue = p.Revenue.Add(t.Total)
		p.Transactions++
	}

	points = make([]SalesPoint, 0, len(byDay))
	for _, p := range byDay {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })

	s.store(ctx, key, points)
	return points, nil
}

func (s *dashboardService) GetTopProducts(ctx context.Context, limit int) ([]repository.TopProduct, error) {
	if limit <= 0 {
		limit = DefaultTopProducts
	}

	key := fmt.Sprintf("%stop-products:%d", cache.AnalyticsPrefix, limit)
	var top []repository.TopProduct
	if s.cached(ctx, key, &top) {
		return top, nil
	}

	top, err := s.txRepo.TopProducts(ctx, limit)
	if err != nil {
		return nil, classify(err)
	}
	s.store(ctx, key, top)
	return top, nil
}

// GetDailySales breaks down today's sales (UTC) by payment method.
func (s *dashboardService) GetDailySales(ctx context.Context) ([]repository.PaymentSummary, error) {
	today := startOfDay(s.now())

	key := fmt.Sprintf("%sdaily:%s", cache.AnalyticsPrefix, today.Format("2006-01-02"))
	var summary []repository.PaymentSummary
	if s.cached(ctx, key, &summary) {
		return summary, nil
	}

	summary, err := s.txRepo.PaymentBreakdown(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, classify(err)
	}
	s.store(ctx, key, summary)
	return summary, nil
}

// cached treats cache errors as misses.
func (s *dashboardService) cached(ctx context.Context, key string, dest interface{}) bool {
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Debug("analytics cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *dashboardService) store(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Debug("analytics cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
