package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bloghub/internal/cache"
	"bloghub/internal/core"
	httpProtocol "bloghub/internal/protocols/http"
	wsProtocol "bloghub/internal/protocols/websocket"
	"bloghub/internal/repository"
	"bloghub/pkg/config"
	"bloghub/pkg/database"
	"bloghub/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("./configs/development.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	loggerCfg := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	logger.Init(loggerCfg)

	logger.Info("Starting BlogHub server...")

	// Connect to database
	dbCfg := database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		Timeout:         cfg.Database.Timeout,
	}

	// Bootstrap the schema over database/sql, then hand queries to pgx
	bootstrapDB, err := database.NewDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 30*time.Second)
	if err := bootstrapDB.EnsureSchema(schemaCtx); err != nil {
		cancelSchema()
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	cancelSchema()
	bootstrapDB.Close()

	pool, err := database.NewPGXPool(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	logger.Info("Connected to PostgreSQL database")

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	postRepo := repository.NewPostRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)

	logger.Info("Initialized all repositories")

	// Initialize core services
	authSvc := core.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	categorySvc := core.NewCategoryService(categoryRepo, postRepo, cfg.Pagination.CategoriesPerPage)
	postSvc := core.NewPostService(postRepo, categoryRepo, cfg.Pagination.PostsPerPage)
	commentSvc := core.NewCommentService(commentRepo, postRepo, cfg.Pagination.CommentsPerPage)
	userSvc := core.NewUserService(userRepo, cfg.Pagination.UsersPerPage)

	logger.Info("Initialized all core services")

	// HTTP REST API server
	httpServer := httpProtocol.NewServer(
		cfg,
		authSvc,
		postSvc,
		categorySvc,
		commentSvc,
		userSvc,
	)

	// Redis view counter, optional
	var views *cache.ViewCounter
	if cfg.Redis.Enabled {
		views, err = cache.NewViewCounter(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warnf("View counter disabled: %v", err)
		} else {
			httpServer.SetViewCounter(views)
			defer views.Close()
			logger.Info("Connected to Redis view counter")
		}
	}

	// Live comment feed over WebSocket
	feedHub := wsProtocol.NewHub()
	httpServer.SetFeedHub(feedHub)

	// Start HTTP server
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("HTTP server panic recovered: %v", r)
			}
		}()
		httpAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		logger.Info(fmt.Sprintf("Starting HTTP server on %s", httpAddr))
		if err := httpServer.Start(httpAddr); err != nil {
			logger.Errorf("HTTP server error: %v", err)
		}
	}()

	logger.Info("Server started successfully")
	logger.Info("Press Ctrl+C to shutdown")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	logger.Info(fmt.Sprintf("Received signal: %v", sig))

	logger.Info("Shutting down...")
	feedHub.Stop()
	logger.Info("Shutdown complete")
}
