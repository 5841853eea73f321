package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"storeminds/internal/cache"
	"storeminds/internal/config"
	"storeminds/internal/messaging"
	"storeminds/internal/repository"
	"storeminds/internal/service"
	"storeminds/pkg/database"
	"storeminds/pkg/jwt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// store is the slice of the application the maintenance commands need.
type store struct {
	db          *gorm.DB
	auth        service.AuthService
	maintenance service.MaintenanceService
}

func openStore() (*store, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := database.Open(database.Config{
		Driver:     cfg.Database.Driver,
		DSN:        cfg.Database.URL,
		SQLitePath: cfg.Database.SQLitePath,
		LogLevel:   gormlogger.Silent,
	})
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger := zap.NewNop()
	users := repository.NewUserRepo(db)
	return &store{
		db:   db,
		auth: service.NewAuthService(users, jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TTL), logger),
		maintenance: service.NewMaintenanceService(db,
			repository.NewItemRepo(db),
			repository.NewCategoryRepo(db),
			users,
			messaging.Noop{},
			cache.Noop{},
			logger,
		),
	}, nil
}

func (s *store) Close() error {
	return database.Close(s.db)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
