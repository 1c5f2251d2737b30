package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/linkscout/scheduler-finder/api/internal/auth"
	"github.com/linkscout/scheduler-finder/api/internal/config"
	"github.com/linkscout/scheduler-finder/api/internal/database"
	"github.com/linkscout/scheduler-finder/api/internal/handler"
	middlewarepkg "github.com/linkscout/scheduler-finder/api/internal/middleware"
	"github.com/linkscout/scheduler-finder/api/internal/repository"
	"github.com/linkscout/scheduler-finder/api/internal/router"
	"github.com/linkscout/scheduler-finder/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialise logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	contactsRepo := repository.NewPGXContactsRepository(pool)
	linksRepo := repository.NewPGXLinksRepository(pool)

	authService := service.NewAuthService(usersRepo, jwtManager)
	contactsService := service.NewContactsService(contactsRepo, linksRepo, logger)
	linkValidator := service.NewLinkValidator(linksRepo, logger,
		service.WithValidateTimeout(cfg.ValidateTimeout),
	)

	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Search:   handler.NewSearchHandler(),
		Contacts: handler.NewContactsHandler(contactsService),
		Import:   handler.NewImportHandler(contactsService),
		Links:    handler.NewLinksHandler(linkValidator),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(logger))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
