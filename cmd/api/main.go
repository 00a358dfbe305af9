package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/AcebergChristian/jushuitan-sub000/api/swagger" // swagger docs
	"github.com/AcebergChristian/jushuitan-sub000/internal/config"
	"github.com/AcebergChristian/jushuitan-sub000/internal/database"
	"github.com/AcebergChristian/jushuitan-sub000/internal/handler"
	"github.com/AcebergChristian/jushuitan-sub000/internal/logger"
	"github.com/AcebergChristian/jushuitan-sub000/internal/metrics"
	"github.com/AcebergChristian/jushuitan-sub000/internal/middleware"
	"github.com/AcebergChristian/jushuitan-sub000/internal/ordersource"
	"github.com/AcebergChristian/jushuitan-sub000/internal/repository"
	"github.com/AcebergChristian/jushuitan-sub000/internal/service"
	"github.com/AcebergChristian/jushuitan-sub000/internal/synclock"
	"github.com/AcebergChristian/jushuitan-sub000/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           Reconciliation Report API
// @version         1.0
// @description     Order sync, goods and store aggregation and profitability reports.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}

	zl := logger.New(cfg.Log)
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(cfg.Database, zl)
	if err != nil {
		zl.Fatal("Database connection failed", zap.Error(err))
	}
	zl.Info("Connected to PostgreSQL successfully")

	var locker synclock.Locker = synclock.NewMemoryLocker()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			zl.Fatal("Redis connection failed", zap.Error(err))
		}
		locker = synclock.NewRedisLocker(rdb, cfg.Sync.LockTTL)
		zl.Info("Sync lock backed by Redis", zap.String("addr", cfg.Redis.Addr))
	}

	middleware.InitAuth(cfg.JWT.Secret, cfg.IsProduction())
	loc := cfg.Location()
	recorder := metrics.NewRecorder()

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(zl)
	go wsHub.Run(ctx)

	// Set up dependencies (Repository -> Service -> Handler)
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	goodsRepo := repository.NewGoodsRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	satelliteRepo := repository.NewSatelliteRepository(db)
	statsRepo := repository.NewStatisticsRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)

	entitlements := service.NewEntitlementResolver(userRepo, goodsRepo)
	auditService := service.NewAuditService(auditRepo)
	userService := service.NewUserService(userRepo, middleware.GetJWTSecret(), cfg.JWT.Expiration)
	syncService := service.NewSyncService(ordersource.NewClient(cfg.Upstream), orderRepo, goodsRepo, storeRepo,
		auditRepo, txManager, locker, recorder, wsHub, zl, service.SyncOptions{Location: loc, BatchSize: cfg.Sync.BatchSize})
	goodsService := service.NewGoodsService(goodsRepo, satelliteRepo, entitlements)
	storeService := service.NewStoreService(storeRepo, satelliteRepo, entitlements, loc)
	summaryService := service.NewSummaryService(userRepo, goodsRepo, entitlements)
	dashboardService := service.NewDashboardService(statsRepo, userRepo, orderRepo, loc)
	satelliteService := service.NewSatelliteService(satelliteRepo, txManager, loc)

	clock := handler.Clock{Location: loc}

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService, auditService, cfg.JWT.Expiration)
	syncHandler := handler.NewSyncHandler(syncService, clock)
	goodsHandler := handler.NewGoodsHandler(goodsService)
	reportHandler := handler.NewReportHandler(storeService, summaryService, clock)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, clock)
	satelliteHandler := handler.NewSatelliteHandler(satelliteService, auditService)
	auditHandler := handler.NewAuditHandler(auditService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(logger.GinMiddleware(zl), logger.Recovery(zl))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.App.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(recorder.Handler()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	api := router.Group("/api")
	userHandler.RegisterRoutes(api)
	syncHandler.RegisterRoutes(api)
	goodsHandler.RegisterRoutes(api)
	reportHandler.RegisterRoutes(api)
	dashboardHandler.RegisterRoutes(api)
	satelliteHandler.RegisterRoutes(api)
	auditHandler.RegisterRoutes(api)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("Graceful shutdown failed", zap.Error(err))
	}
}
