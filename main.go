package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"lifehub/config/database"
	authRepo "lifehub/internal/auth/repository"
	authService "lifehub/internal/auth/service"
	"lifehub/internal/auth/session"
	"lifehub/pkg/logger"
	"lifehub/router"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables from OS")
	}

	logger.Init()
	defer logger.Log.Sync()

	db := database.Connect()
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Sugar.Fatalf("Failed to migrate database: %v", err)
	}

	sessions, err := session.ManagerFromEnv()
	if err != nil {
		logger.Sugar.Fatalf("Failed to configure sessions: %v", err)
	}

	baseURL := strings.TrimSpace(os.Getenv("BASE_URL"))
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	resetBaseURL := strings.TrimSuffix(baseURL, "/") + "/password_reset_confirm/"

	// One auth service serves both the routes and the hourly token sweep.
	users := authRepo.NewUserRepository(db)
	authSvc := authService.New(users, sessions, authService.LogMailer{}, resetBaseURL)
	c := cron.New()
	if _, err := c.AddFunc("@hourly", func() {
		authSvc.PurgeExpiredTokens(context.Background())
	}); err != nil {
		logger.Sugar.Fatalf("Failed to schedule token purge: %v", err)
	}
	c.Start()
	defer c.Stop()

	handler := router.Setup(db, sessions, authSvc)

	addr := strings.TrimSpace(os.Getenv("ADDR"))
	if addr == "" {
		addr = ":8080"
	}
	logger.Sugar.Infof("Backend listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Sugar.Fatalf("Server stopped: %v", err)
	}
}
