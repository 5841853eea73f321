package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storeminds/internal/cache"
	"storeminds/internal/config"
	"storeminds/internal/handler"
	"storeminds/internal/messaging"
	"storeminds/internal/middleware"
	"storeminds/internal/model"
	"storeminds/internal/repository"
	"storeminds/internal/service"
	"storeminds/internal/ws"
	"storeminds/pkg/database"
	"storeminds/pkg/jwt"
	applogger "storeminds/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := applogger.New(applogger.Config{
		Development: cfg.IsDevelopment(),
		Level:       cfg.Logger.Level,
		Encoding:    cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	// 2. Setup Database
	dbLogLevel := gormlogger.Warn
	if cfg.Logger.Level == "debug" {
		dbLogLevel = gormlogger.Info
	}
	db, err := database.Open(database.Config{
		Driver:     cfg.Database.Driver,
		DSN:        cfg.Database.URL,
		SQLitePath: cfg.Database.SQLitePath,
		LogLevel:   dbLogLevel,
	})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := repository.Migrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}
	logger.Info("database ready", zap.String("driver", cfg.Database.Driver))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Setup WebSocket Hub and event sinks
	wsHub := ws.NewHub(logger)
	go wsHub.Run(ctx)

	publishers := messaging.Multi{wsHub}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		defer producer.Close()
		publishers = append(publishers, producer)
		logger.Info("kafka publishing enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	var analytics cache.AnalyticsCache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			logger.Warn("redis unavailable, analytics cache disabled", zap.Error(err))
			redisCache.Close()
		} else {
			defer redisCache.Close()
			analytics = redisCache
			logger.Info("analytics cache enabled", zap.String("addr", cfg.Redis.Addr))
		}
		cancel()
	}

	// 4. Dependency Injection (Wiring Layers)
	itemRepo := repository.NewItemRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	activityRepo := repository.NewActivityRepo(db)
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)

	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TTL)

	checkoutService := service.NewCheckoutService(db, itemRepo, txRepo, activityRepo, publishers, analytics,
		service.PricePolicy(cfg.Inventory.PricePolicy), logger)
	invService := service.NewInventoryService(db, itemRepo, txRepo, activityRepo, publishers, analytics, logger)
	dashService := service.NewDashboardService(itemRepo, txRepo, activityRepo, analytics,
		cfg.Redis.CacheTTL, cfg.Inventory.LowStockThreshold, logger)
	catalogService := service.NewCatalogService(categoryRepo, supplierRepo)
	authService := service.NewAuthService(userRepo, tokens, logger)
	maintenanceService := service.NewMaintenanceService(db, itemRepo, categoryRepo, userRepo, publishers, analytics, logger)

	if cfg.Server.Seed {
		if err := maintenanceService.Seed(ctx); err != nil {
			logger.Warn("failed to seed defaults", zap.Error(err))
		}
	}

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "StoreMinds Inventory & POS",
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	handler.Register(app, handler.Handlers{
		Pos:       handler.NewPosHandler(checkoutService),
		Inventory: handler.NewInventoryHandler(invService),
		Dashboard: handler.NewDashboardHandler(dashService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Auth:      handler.NewAuthHandler(authService),
		Admin:     handler.NewAdminHandler(maintenanceService),
		Users:     handler.NewUserHandler(service.NewUserService(userRepo)),
	}, middleware.RequireAuth(authService), middleware.RequireRole(model.RoleAdmin))

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(wsHub.Serve))

	// 6. Graceful Shutdown
	go func() {
		if err := app.Listen(cfg.Address()); err != nil {
			logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}
