package main

import (
	"fmt"
	stdlog "log"
	"net/http"

	"vistoria/internal/config"
	"vistoria/internal/handlers"
	"vistoria/internal/middleware"
	"vistoria/internal/repositories/mongodb"
	"vistoria/internal/services"
	"vistoria/pkg/cache"
	"vistoria/pkg/database"
	"vistoria/pkg/logger"
	"vistoria/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Failed to load config: %v", err)
	}

	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}

	// Connect to MongoDB and apply migrations
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis is optional: without it reports are computed on every request.
	var cacheService services.CacheService
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, report caching disabled")
	} else {
		defer redisCache.Close()
		cacheService = services.NewCacheService(redisCache)
	}

	// Repositories
	userRepo := mongodb.NewUserRepository(db.Database)
	vehicleRepo := mongodb.NewVehicleRepository(db.Database)
	inspectionRepo := mongodb.NewInspectionRepository(db.Database)

	// Services
	authService := services.NewAuthService(userRepo, cfg.Security.JWTSecret, log)
	vehicleService := services.NewVehicleService(vehicleRepo, inspectionRepo, userRepo, log)
	inspectionService := services.NewInspectionService(inspectionRepo, vehicleRepo, userRepo, cacheService, log)
	reportService := services.NewReportService(inspectionRepo, vehicleRepo, userRepo, cacheService, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	inspectionHandler := handlers.NewInspectionHandler(inspectionService)
	reportHandler := handlers.NewReportHandler(reportService)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))

	if len(cfg.Security.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			log.Fatalf("Failed to set trusted proxies: %v", err)
		}
	}

	// API routes
	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, authHandler, cfg.Security.JWTSecret)
		routes.SetupVehicleRoutes(v1, vehicleHandler, cfg.Security.JWTSecret)
		routes.SetupInspectionRoutes(v1, inspectionHandler, cfg.Security.JWTSecret)
		routes.SetupReportRoutes(v1, reportHandler, cfg.Security.JWTSecret)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		if err := db.Ping(); err != nil {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  status,
			"version": cfg.App.Version,
		})
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Infof("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
