package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/mux"

	"github.com/Ahmed2003-Rav/Egypt-Map/config"
	"github.com/Ahmed2003-Rav/Egypt-Map/data"
	"github.com/Ahmed2003-Rav/Egypt-Map/events"
	"github.com/Ahmed2003-Rav/Egypt-Map/handlers"
	"github.com/Ahmed2003-Rav/Egypt-Map/storage"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, err := datasetSource(cfg)
	if err != nil {
		log.Fatalf("Failed to configure dataset source: %v", err)
	}
	log.Println("Loading dataset...")
	ds, err := source(ctx)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	store := data.NewStore(ds, source)
	log.Printf("Dataset %q ready: %d locations, %d roads", ds.City, len(ds.Locations()), len(ds.ExistingRoads))

	var archive storage.Archive
	if cfg.DatabaseURL != "" {
		pg, err := storage.NewPostgresArchive(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to open run archive: %v", err)
		}
		archive = pg
		log.Println("Archiving runs to Postgres")
	} else {
		archive = storage.NewMemoryArchive(200)
		log.Println("DATABASE_URL not set, keeping run history in memory")
	}
	defer archive.Close()

	var dispatcher events.Dispatcher = events.NopDispatcher{}
	if cfg.AMQPURL != "" {
		pub, err := events.NewDispatchPublisher(cfg.AMQPURL, cfg.DispatchQueue)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		dispatcher = pub
		log.Printf("Publishing emergency routes to queue %s", cfg.DispatchQueue)
	}
	defer dispatcher.Close()

	feedDone := make(chan struct{})
	if cfg.KafkaEnabled() {
		reader := events.NewKafkaReader(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID)
		feed := events.NewTrafficFeed(reader, store)
		go func() {
			defer close(feedDone)
			if err := feed.Run(ctx); err != nil {
				log.Printf("Traffic feed exited: %v", err)
			}
		}()
	} else {
		close(feedDone)
		log.Println("KAFKA_BROKERS not set, live traffic feed disabled")
	}

	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"*"}
	corsConfig.ExposeHeaders = []string{handlers.RequestIDHeader}
	r.Use(cors.New(corsConfig))
	r.Use(handlers.RequestID())
	handlers.NewPlannerHandler(store, archive, dispatcher, cfg.HistoryLimit).RegisterRoutes(r)

	adminRouter := mux.NewRouter()
	handlers.NewAdminHandler(store).RegisterRoutes(adminRouter)

	servers := []*http.Server{
		{Addr: ":" + cfg.Port, Handler: r},
		{Addr: ":" + cfg.AdminPort, Handler: adminRouter},
	}
	for _, srv := range servers {
		go func(srv *http.Server) {
			log.Printf("Listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("Failed to start server: %v", err)
			}
		}(srv)
	}

	<-ctx.Done()
	log.Println("Received termination signal, starting graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown of %s failed: %v", srv.Addr, err)
		}
	}
	<-feedDone
	log.Println("Server stopped")
}

// datasetSource picks S3, a local path, or the built-in dataset, in that
// order.
func datasetSource(cfg *config.Config) (data.Source, error) {
	if cfg.S3Enabled() {
		s3, err := storage.NewS3Source(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3UseSSL, cfg.S3Bucket, cfg.S3Object)
		if err != nil {
			return nil, err
		}
		return s3.FetchDataset, nil
	}
	if cfg.DatasetPath != "" {
		path := cfg.DatasetPath
		return func(context.Context) (*data.Dataset, error) { return data.LoadPath(path) }, nil
	}
	return func(context.Context) (*data.Dataset, error) { return data.Default() }, nil
}
