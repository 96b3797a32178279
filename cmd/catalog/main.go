package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/finchmedia/finch/internal/infrastructure/messaging"
	gormpersistence "github.com/finchmedia/finch/internal/infrastructure/persistence/gorm"
	"github.com/finchmedia/finch/internal/infrastructure/storage"
	"github.com/finchmedia/finch/internal/video/handler"
	videoservice "github.com/finchmedia/finch/internal/video/service"
	"github.com/finchmedia/finch/pkg/config"
	"github.com/finchmedia/finch/pkg/interfaces"
	"github.com/finchmedia/finch/pkg/logger"
)

func main() {
	cfg := config.MustLoadCatalogConfig()

	log, err := logger.NewZapLogger(cfg.Logger.Development)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("Catalog service starting",
		interfaces.String("environment", cfg.Service.Environment))

	db, dbCleanup, err := gormpersistence.NewDB(cfg.Database, log, cfg.Logger.Level == "debug")
	if err != nil {
		log.Fatal("Failed to connect to database", interfaces.Error(err))
	}
	defer dbCleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mediaStorage, err := storage.NewS3MediaStorage(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize media storage", interfaces.Error(err))
	}

	eventBus, natsCleanup, err := messaging.NewNATSPublisher(cfg.NATS, log)
	if err != nil {
		log.Fatal("Failed to connect to NATS", interfaces.Error(err))
	}
	defer natsCleanup()

	videoRepo := gormpersistence.NewVideoRepository(db)
	mediaService := videoservice.NewMediaService(videoRepo, mediaStorage, eventBus, log)

	listener := handler.NewEncoderListener(mediaService, log)
	consumer, err := messaging.NewKafkaConsumer(cfg.Kafka, listener.HandleMessage, log)
	if err != nil {
		log.Fatal("Failed to create encoder consumer", interfaces.Error(err))
	}

	go func() {
		log.Info("Encoder consumer starting",
			interfaces.String("topic", cfg.Kafka.Topic),
			interfaces.String("group_id", cfg.Kafka.GroupID))
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			log.Fatal("Encoder consumer failed", interfaces.Error(err))
		}
	}()

	healthServer := newHealthServer(8081)
	go func() {
		log.Info("Health server starting", interfaces.String("address", healthServer.Addr))
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Health server failed", interfaces.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Service.ShutdownTime)
	defer shutdownCancel()

	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down health server", interfaces.Error(err))
	}

	closed := make(chan error, 1)
	go func() { closed <- consumer.Close() }()
	select {
	case err := <-closed:
		if err != nil {
			log.Error("Failed to close encoder consumer", interfaces.Error(err))
		}
	case <-shutdownCtx.Done():
		log.Error("Shutdown budget exceeded waiting for encoder consumer")
	}

	log.Info("Catalog service stopped")
}

func newHealthServer(port int) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
}
