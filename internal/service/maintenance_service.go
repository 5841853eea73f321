package service

import (
	"context"
	"time"

	"storeminds/internal/cache"
	"storeminds/internal/messaging"
	"storeminds/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DatabaseReport is what the operator check prints.
type DatabaseReport struct {
	Tables               map[string]int64 `json:"tables"`
	UsersWithoutPassword []string         `json:"users_without_password"`
}

type MaintenanceService interface {
	Seed(ctx context.Context) error
	Reset(ctx context.Context) error
	Check(ctx context.Context) (*DatabaseReport, error)
}

type maintenanceService struct {
	db           *gorm.DB
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	publisher    messaging.Publisher
	cache        cache.AnalyticsCache
	logger       *zap.Logger
	now          func() time.Time
}

func NewMaintenanceService(
	db *gorm.DB,
	itemRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	publisher messaging.Publisher,
	analytics cache.AnalyticsCache,
	logger *zap.Logger,
) MaintenanceService {
	return &maintenanceService{
		db:           db,
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		publisher:    publisher,
		cache:        analytics,
		logger:       logger,
		now:          time.Now,
	}
}

// Seed fills empty tables with the default categories, items and admin
// account. Tables that already hold rows are left alone.
func (s *maintenanceService) Seed(ctx context.Context) error {
	if err := s.categoryRepo.SeedDefaults(ctx); err != nil {
		return classify(err)
	}
	if err := s.itemRepo.SeedDefaults(ctx, s.now().UTC()); err != nil {
		return classify(err)
	}

	created, err := s.userRepo.SeedAdmin(s.db.WithContext(ctx))
	if err != nil {
		return classify(err)
	}
	if created {
		s.logger.Info("default admin user created", zap.String("username", repository.DefaultAdminUsername))
	}
	return nil
}

// Reset wipes operational data in one unit of work and re-creates the admin
// account. Categories survive.
func (s *maintenanceService) Reset(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.Reset(tx); err != nil {
			return err
		}
		_, err := s.userRepo.SeedAdmin(tx)
		return err
	})
	if err != nil {
		return classify(err)
	}

	s.logger.Warn("database reset")

	event := messaging.NewEvent(messaging.ActionDatabaseReset, "reset", nil, "Database reset", s.now().UTC())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish reset event", zap.Error(err))
	}
	if err := s.cache.InvalidatePrefix(ctx, cache.AnalyticsPrefix); err != nil {
		s.logger.Warn("failed to invalidate analytics cache", zap.Error(err))
	}
	return nil
}

func (s *maintenanceService) Check(ctx context.Context) (*DatabaseReport, error) {
	counts, err := repository.TableCounts(ctx, s.db)
	if err != nil {
		return nil, classify(err)
	}

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, classify(err)
	}

	report := &DatabaseReport{Tables: counts, UsersWithoutPassword: []string{}}
	for _, u := range users {
		if u.Password == "" {
			report.UsersWithoutPassword = append(report.UsersWithoutPassword, u.Username)
		}
	}
	return report, nil
}
