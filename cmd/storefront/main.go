package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/fid37is/toolup-store-sub000/internal/address"
	"github.com/fid37is/toolup-store-sub000/internal/cart"
	"github.com/fid37is/toolup-store-sub000/internal/catalog"
	"github.com/fid37is/toolup-store-sub000/internal/checkout"
	"github.com/fid37is/toolup-store-sub000/internal/config"
	"github.com/fid37is/toolup-store-sub000/internal/geo"
	"github.com/fid37is/toolup-store-sub000/internal/httpapi"
	"github.com/fid37is/toolup-store-sub000/internal/orders"
	"github.com/fid37is/toolup-store-sub000/internal/session"
	"github.com/fid37is/toolup-store-sub000/internal/wishlist"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Session store
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	notifier := session.NewNotifier()
	sessionStore := session.NewRedisStore(redisClient, notifier)

	changes := notifier.Subscribe()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case c := <-changes:
				logger.Debug("session key changed",
					zap.String("session_id", c.SessionID), zap.String("key", c.Key))
			}
		}
	}()

	// Document-store mirrors
	mongoDB, err := cart.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		logger.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	if err := cart.EnsureIndexes(ctx, mongoDB); err != nil {
		logger.Fatal("failed to create cart indexes", zap.Error(err))
	}

	cartService := cart.NewService(
		cart.NewMongoRepository(mongoDB),
		cart.NewLocalRepository(sessionStore),
		logger,
	)
	addressService := address.NewService(
		address.NewMongoRepository(mongoDB),
		address.NewLocalRepository(sessionStore),
		logger,
	)

	// Catalog
	catalogRepo, err := catalog.NewRepository(cfg.CatalogDBPath)
	if err != nil {
		logger.Fatal("failed to open catalog database", zap.Error(err))
	}
	defer catalogRepo.Close()
	if err := catalogRepo.RunMigrations(filepath.Join(cfg.MigrationsDir, "catalog")); err != nil {
		logger.Fatal("failed to run catalog migrations", zap.Error(err))
	}

	// Order ledger
	ordersCred := &orders.Credentials{
		Host:              cfg.PostgresHost,
		Port:              cfg.PostgresPort,
		User:              cfg.PostgresUser,
		Password:          cfg.PostgresPass,
		DBName:            cfg.PostgresDB,
		MigrationsDirPath: filepath.Join(cfg.MigrationsDir, "orders"),
	}
	ordersRepo, err := orders.NewRepository(ordersCred)
	if err != nil {
		logger.Fatal("failed to connect to orders database", zap.Error(err))
	}
	defer ordersRepo.Close()
	if err := ordersRepo.RunMigrations(ordersCred); err != nil {
		logger.Fatal("failed to run orders migrations", zap.Error(err))
	}

	// Order events
	brokers := strings.Split(cfg.KafkaBrokers, ",")
	publisher := orders.NewPublisher(brokers...)
	defer publisher.Close()

	consumer := orders.NewConsumer(cartService, logger, brokers...)
	defer consumer.Close()
	go consumer.Run(ctx)

	// Geography lookup
	geoClient, err := geo.NewClient(cfg.GeoLookupURL, logger)
	if err != nil {
		logger.Fatal("failed to build geo client", zap.Error(err))
	}

	// Checkout pipeline
	aggregator := checkout.NewAggregator(catalogRepo, cartService, sessionStore, logger)
	transfers := checkout.NewTransferManager(checkout.TransferTTL, time.Second)
	checkoutService := checkout.NewService(
		aggregator,
		addressService,
		ordersRepo,
		publisher,
		cartService,
		transfers,
		sessionStore,
		logger,
	)

	wishlistService := wishlist.NewService(sessionStore)

	requestTimeout := time.Duration(cfg.RequestTimeout) * time.Second
	router := httpapi.NewRouter(httpapi.Handlers{
		Carts:     cartService,
		Wishlist:  wishlistService,
		Addresses: addressService,
		Catalog:   catalogRepo,
		Geo:       geoClient,
		Checkout:  checkoutService,
		Orders:    ordersRepo,
	}, requestTimeout, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("storefront starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}
