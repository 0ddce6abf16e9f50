package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/shiftlog/shiftlog/internal/config"
	httpserver "github.com/shiftlog/shiftlog/internal/http"
	"github.com/shiftlog/shiftlog/internal/http/features/account"
	"github.com/shiftlog/shiftlog/internal/http/features/chatwork"
	"github.com/shiftlog/shiftlog/internal/http/features/orgs"
	"github.com/shiftlog/shiftlog/internal/http/features/slack"
	"github.com/shiftlog/shiftlog/pkg/attendance"
	"github.com/shiftlog/shiftlog/pkg/auth"
	"github.com/shiftlog/shiftlog/pkg/bot"
	"github.com/shiftlog/shiftlog/pkg/identity"
	"github.com/shiftlog/shiftlog/pkg/repository"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	location, err := time.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		logger.Error("invalid DISPLAY_TIMEZONE", "timezone", cfg.DisplayTimezone, "error", err)
		os.Exit(1)
	}

	// Connect to database
	db, err := repository.NewDB(repository.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("connected to database")

	// Initialize repositories
	usersRepo := repository.NewUsersRepository(db)
	credsRepo := repository.NewCredentialsRepository(db)
	identitiesRepo := repository.NewIdentitiesRepository(db)
	orgsRepo := repository.NewOrganizationsRepository(db)
	membershipsRepo := repository.NewMembershipsRepository(db)
	sessionsRepo := repository.NewWorkSessionsRepository(db)
	vacationsRepo := repository.NewVacationsRepository(db)

	// Initialize services
	passwordService := auth.NewPasswordService(db, usersRepo, credsRepo)
	tokenService := auth.NewTokenService(auth.TokenConfig{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.AccessTokenTTL,
	})
	attendanceService := attendance.NewService(sessionsRepo)
	resolver := identity.NewResolver(identitiesRepo, usersRepo, membershipsRepo)
	chatBot := bot.New(resolver, attendanceService, location, logger)

	// Initialize handlers
	accountHandler := account.NewHandler(logger, passwordService, tokenService)
	orgsHandler := orgs.NewHandler(
		logger, db,
		orgsRepo, membershipsRepo, usersRepo, identitiesRepo, vacationsRepo,
		attendanceService, location,
	)

	var slackHandler *slack.Handler
	if cfg.HasSlack() {
		slackHandler = slack.NewHandler(logger, chatBot, cfg.SlackSigningSecret)
		logger.Info("slack integration enabled")
	}

	var chatworkHandler *chatwork.Handler
	if cfg.HasChatwork() {
		client := chatwork.NewClient(cfg.ChatworkAPIToken)
		chatworkHandler = chatwork.NewHandler(logger, chatBot, cfg.ChatworkWebhookToken, client)
		logger.Info("chatwork integration enabled")
	}

	// Create router
	router := httpserver.NewRouter(httpserver.RouterConfig{
		Config:   cfg,
		Logger:   logger,
		Tokens:   tokenService,
		Account:  accountHandler,
		Orgs:     orgsHandler,
		Slack:    slackHandler,
		Chatwork: chatworkHandler,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.ServerAddr, cfg.ServerPort)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
