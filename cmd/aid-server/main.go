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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/franzenjb/hurricane-aid-production/internal/alerts"
	"github.com/franzenjb/hurricane-aid-production/internal/api"
	"github.com/franzenjb/hurricane-aid-production/internal/config"
	"github.com/franzenjb/hurricane-aid-production/internal/geocode"
	"github.com/franzenjb/hurricane-aid-production/internal/intake"
	"github.com/franzenjb/hurricane-aid-production/internal/logging"
	"github.com/franzenjb/hurricane-aid-production/internal/notify"
	"github.com/franzenjb/hurricane-aid-production/internal/observability"
	"github.com/franzenjb/hurricane-aid-production/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	geocoder := geocode.NewChain(cfg.Geocoder, metrics)

	sender := notify.NewSenderFromConfig(cfg.Email)
	if sender == nil {
		slog.Warn("no email provider configured, alert dispatch will fail until RESEND_API_KEY or SENDGRID_API_KEY is set")
	} else {
		slog.Info("email provider selected", "provider", sender.Name())
	}
	dispatcher := notify.NewDispatcher(sender, cfg.Dispatch, metrics)

	intakeSvc := intake.NewService(db, db, geocoder, clock, metrics)
	alertSvc := alerts.NewService(db, db, dispatcher, clock, metrics)

	verifier := api.NewAuthServiceVerifier(cfg.Auth.ServiceURL)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(10)) // 10 req/s global limit

	handler := api.NewHandler(intakeSvc, alertSvc, db, db, db, db, verifier)
	handler.RegisterRoutes(router)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
