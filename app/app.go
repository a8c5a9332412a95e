// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"go-wallet-api/config"
	"go-wallet-api/db"
	"go-wallet-api/handler"
	"go-wallet-api/logger"
	"go-wallet-api/repository"
	"go-wallet-api/router"
	"go-wallet-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	r := buildRouter(database, redisClient)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}

// buildRouter wires repositories, services and handlers together. This
// is the single place dependency injection happens.
func buildRouter(database *sql.DB, redisClient *redis.Client) http.Handler {
	authService := service.NewAuthService(config.AppConfig.JWT.SecretKey, config.AppConfig.JWT.TokenTTL)

	userRepo := repository.NewUserRepository(database)
	accountRepo := repository.NewAccountRepository(database)

	userService := service.NewUserService(database, userRepo, accountRepo, authService)
	accountService := service.NewAccountService(accountRepo, redisClient)
	transferService := service.NewTransferService(database, accountRepo, redisClient)

	userHandler := handler.NewUserHandler(userService)
	accountHandler := handler.NewAccountHandler(accountService, transferService)

	return router.NewRouter(userHandler, accountHandler, authService)
}

// TestApp exposes the wired router and raw DB handle to integration
// tests.
type TestApp struct {
	DB     *sql.DB
	Router http.Handler
}

func NewTestApp(database *sql.DB, redisClient *redis.Client) *TestApp {
	return &TestApp{
		DB:     database,
		Router: buildRouter(database, redisClient),
	}
}
