package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/acidni-llc/cdes-m/internal/config"
	"github.com/acidni-llc/cdes-m/internal/domain/condition"
	"github.com/acidni-llc/cdes-m/internal/domain/efficacy"
	"github.com/acidni-llc/cdes-m/internal/domain/message"
	"github.com/acidni-llc/cdes-m/internal/domain/patient"
	"github.com/acidni-llc/cdes-m/internal/domain/protocol"
	"github.com/acidni-llc/cdes-m/internal/domain/provider"
	"github.com/acidni-llc/cdes-m/internal/domain/recommendation"
	"github.com/acidni-llc/cdes-m/internal/platform/auth"
	"github.com/acidni-llc/cdes-m/internal/platform/db"
	"github.com/acidni-llc/cdes-m/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cdesm-server",
		Short: "CDES-M clinical data exchange server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the CDES-M API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the CDES-M tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required for migrate")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.Migrate(ctx, pool); err != nil {
				return err
			}
			fmt.Println("Schema applied.")
			return nil
		},
	}
}

// repos bundles the per-entity repositories, backed by Postgres when
// DATABASE_URL is set and by in-memory stores otherwise.
type repos struct {
	providers       provider.Repository
	patients        patient.Repository
	conditions      condition.Repository
	recommendations recommendation.Repository
	reports         efficacy.Repository
	messages        message.Repository
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	ctx := context.Background()

	var r repos
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		if err := db.Migrate(ctx, pool); err != nil {
			logger.Fatal().Err(err).Msg("failed to apply schema")
		}
		logger.Info().Msg("connected to database")
		r = repos{
			providers:       provider.NewRepoPG(pool),
			patients:        patient.NewRepoPG(pool),
			conditions:      condition.NewRepoPG(pool),
			recommendations: recommendation.NewRepoPG(pool),
			reports:         efficacy.NewRepoPG(pool),
			messages:        message.NewRepoPG(pool),
		}
	} else {
		logger.Warn().Msg("DATABASE_URL not set; using in-memory repositories")
		r = repos{
			providers:       provider.NewMemoryRepository(),
			patients:        patient.NewMemoryRepository(),
			conditions:      condition.NewMemoryRepository(),
			recommendations: recommendation.NewMemoryRepository(),
			reports:         efficacy.NewMemoryRepository(),
			messages:        message.NewMemoryRepository(),
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(auth.Middleware(auth.Config{
		Issuer:     cfg.AuthIssuer,
		SigningKey: []byte(cfg.AuthSecret),
		DevMode:    cfg.IsDev(),
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	apiV1 := e.Group("/api/v1")
	fhirGroup := e.Group("/fhir")

	provider.NewHandler(provider.NewService(r.providers)).RegisterRoutes(apiV1, fhirGroup)
	patient.NewHandler(patient.NewService(r.patients)).RegisterRoutes(apiV1, fhirGroup)
	condition.NewHandler(condition.NewService(r.conditions)).RegisterRoutes(apiV1, fhirGroup)
	recommendation.NewHandler(recommendation.NewService(r.recommendations)).RegisterRoutes(apiV1, fhirGroup)
	efficacy.NewHandler(efficacy.NewService(r.reports)).RegisterRoutes(apiV1, fhirGroup)
	message.NewHandler(message.NewService(r.messages)).RegisterRoutes(apiV1, fhirGroup)
	protocol.NewHandler(protocol.NewService(protocol.NewRegistry())).RegisterRoutes(apiV1)

	// Start and wait for shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
