package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mohandalborai/ShopSphere/config"
	"github.com/mohandalborai/ShopSphere/internal/api"
	"github.com/mohandalborai/ShopSphere/internal/authhash"
	"github.com/mohandalborai/ShopSphere/internal/broker"
	"github.com/mohandalborai/ShopSphere/internal/catalog"
	"github.com/mohandalborai/ShopSphere/internal/kvstore"
	"github.com/mohandalborai/ShopSphere/internal/state"
	"github.com/mohandalborai/ShopSphere/internal/util"
	"github.com/mohandalborai/ShopSphere/internal/worker"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting shopsphere")

	tp, err := util.InitTracer("shopsphere", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	kv, err := kvstore.New(cfg.KV.Backend, kvDSN(cfg))
	if err != nil {
		log.Fatalf("Failed to open persistent store: %v", err)
	}
	defer kv.Close()
	log.Printf("Persistent store ready: backend=%s", cfg.KV.Backend)

	var cache catalog.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err := catalog.NewRedisCache(
			cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		cache = redisCache
		log.Println("Catalog cache: redis")
	} else {
		cache = catalog.NewMemoryCache()
		log.Println("Catalog cache: in-process")
	}

	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cache)
	registry := state.NewRegistry(kv, authhash.Default(), cfg.App.DefaultLanguage)

	var publisher *broker.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder)
		defer producer.Close()
		publisher = broker.NewEventPublisher(producer)
		log.Println("Kafka producer initialized")
	}

	checkout := state.NewCheckout(cfg.App.CheckoutTaxRate, eventSink(publisher))

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	var fulfillment *worker.FulfillmentWorker
	if publisher != nil && cfg.App.FulfillmentWorkerEnabled {
		consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder, cfg.Kafka.ConsumerGroup)
		fulfillment = worker.NewFulfillmentWorker(consumer, registry, publisher,
			time.Duration(cfg.App.FulfillmentDelaySeconds)*time.Second)
		go func() {
			if err := fulfillment.Start(workerCtx); err != nil {
				log.Printf("Fulfillment worker error: %v", err)
			}
		}()
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(registry, catalogClient, checkout)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	if fulfillment != nil {
		fulfillment.Stop()
	}

	log.Println("Server exited")
}

func kvDSN(cfg *config.Config) string {
	if cfg.KV.Backend == kvstore.BackendPostgres {
		return cfg.KV.DatabaseURL
	}
	return cfg.KV.FilePath
}

// eventSink keeps the checkout free of a typed-nil interface when no
// broker is configured.
func eventSink(publisher *broker.EventPublisher) state.OrderEventSink {
	if publisher == nil {
		return nil
	}
	return publisher
}
