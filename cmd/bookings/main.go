package main

import (
	"context"
	"time"

	"divano/internal/bookings/handler"
	"divano/internal/bookings/service"
	"divano/internal/bookings/store"
	"divano/internal/bookings/validator"
	"divano/pkg/app"
	"divano/pkg/client"
	"divano/pkg/config"
	"divano/pkg/kafka"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting bookings service")

	bookingStore, cleanup := initStore(cfg)
	defer cleanup()

	var events service.EventPublisher
	if cfg.EventsEnabled() {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, ServiceName, cfg.Log)
		if err != nil {
			cfg.Log.Fatal("Failed to create event producer", "error", err)
		}
		defer producer.Close()
		events = producer
		cfg.Log.Info("Booking events enabled", "topic", cfg.KafkaTopic)
	}

	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingService := service.NewBookingService(bookingStore, bookingValidator, events, cfg)

	// Warm the cache. A failure is not fatal: the service starts with an
	// empty set and a reload can fill it once the store is reachable.
	loadCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	if _, err := bookingService.Load(loadCtx); err != nil {
		cfg.Log.Warn("Initial booking load failed, starting with empty cache", "error", err)
	}
	cancel()

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewBookingHandler(bookingService, cfg.Log),
		handler.NewHealthHandler(bookingStore, cfg.Log),
	)
	serverApp.Run()
}

func initStore(cfg *config.Config) (store.Store, func()) {
	switch cfg.StoreBackend {
	case config.StoreBackendMongo:
		mongoClient := client.NewMongoClient(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
		st := store.NewMongoStore(mongoClient.Client, cfg.MongoDatabaseName, cfg.MongoConnTimeout, cfg.Log)
		cleanup := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoClient.Disconnect(ctx); err != nil {
				cfg.Log.Error("Failed to disconnect MongoDB", "error", err)
			}
		}
		cfg.Log.Info("Booking store initialized", "backend", cfg.StoreBackend, "database", cfg.MongoDatabaseName)
		return st, cleanup

	default:
		httpClient := client.NewHttpClient(cfg.SheetAPIURL, cfg.SheetAPIToken, cfg.SheetTimeout)
		st := store.NewSheetStore(httpClient, cfg.Log)
		cfg.Log.Info("Booking store initialized", "backend", cfg.StoreBackend)
		return st, func() {}
	}
}
