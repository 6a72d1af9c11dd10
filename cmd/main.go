package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/RaikyD/digital-link/internal/application"
	"github.com/RaikyD/digital-link/internal/config"
	"github.com/RaikyD/digital-link/internal/domain"
	"github.com/RaikyD/digital-link/internal/kafka"
	"github.com/RaikyD/digital-link/internal/logger"
	"github.com/RaikyD/digital-link/internal/presentation"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Init("development")
		logger.Warn("config load failed", "err", err)
		os.Exit(1)
	}
	logger.Init(cfg.LOG_MODE)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Kafka producer для событий по отгрузкам (created / signed)
	notifier := application.MultiNotifier{application.LogNotifier{}}
	var prod *kafka.Producer
	if cfg.KafkaEnabled() {
		prod = kafka.NewProducer(cfg.KAFKA_BROKERS, cfg.KAFKA_TOPIC)
		defer prod.Close()
		notifier = append(notifier, prod)
	}

	// Wiring
	svc, err := application.NewShipmentsService(application.ServiceConfig{
		SeedDemo:   cfg.SEED_DEMO,
		IDStrategy: cfg.ID_STRATEGY,
		Validation: domain.ValidationOptions{
			RequireProject:          cfg.REQUIRE_PROJECT,
			RequireTransportCompany: cfg.REQUIRE_TRANSPORT_COMPANY,
		},
		Notifier: notifier,
	})
	if err != nil {
		logger.Warn("service init failed", "err", err)
		os.Exit(1)
	}

	// Kafka consumer (черновики отгрузок из внешней системы -> CreateShipment)
	if cfg.KafkaEnabled() {
		_, _ = kafka.StartConsumer(ctx, svc.Company, kafka.ConsumerConfig{
			Brokers: cfg.KAFKA_BROKERS,
			Topic:   cfg.KAFKA_DRAFTS_TOPIC,
			GroupID: cfg.KAFKA_GROUP_ID,
		})
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// API
	h := presentation.NewShipmentsHandler(svc)
	h.Register(r)

	// STATIC (web/index.html + css/js)
	presentation.MountStatic(r)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP_PORT,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.SHUTDOWN_TIMEOUT)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown failed", "err", err)
		}
	}()

	logger.Info("starting http", "addr", srv.Addr, "shipments", svc.Store.Len(), "kafka", cfg.KafkaEnabled())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server crashed", "err", err)
		os.Exit(1)
	}
	logger.Info("http stopped")
}
