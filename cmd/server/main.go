package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brightcart/storefront-api/docs"
	"github.com/brightcart/storefront-api/internal/api"
	"github.com/brightcart/storefront-api/internal/core/domain"
	"github.com/brightcart/storefront-api/internal/core/service"
	"github.com/brightcart/storefront-api/internal/infrastructure/config"
	mongodb "github.com/brightcart/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/brightcart/storefront-api/internal/infrastructure/db/redis"
	"github.com/brightcart/storefront-api/internal/infrastructure/payment"
	"github.com/brightcart/storefront-api/internal/infrastructure/queue"
	"github.com/brightcart/storefront-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// @title           Storefront API
// @version         1.0
// @description     E-commerce backend: catalog, carts, orders, reviews, addresses, and payments.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	// --- Backing stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer func() { _ = redisClient.Close() }()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	cartRepo := mongodb.NewCartRepository(db)
	orderRepo := mongodb.NewOrderRepository(mongoClient, db)
	reviewRepo := mongodb.NewReviewRepository(db)
	addressRepo := mongodb.NewAddressRepository(mongoClient, db)

	for name, idx := range map[string]interface {
		EnsureIndexes(context.Context) error
	}{
		"users":     userRepo,
		"roles":     roleRepo,
		"products":  productRepo,
		"orders":    orderRepo,
		"reviews":   reviewRepo,
		"addresses": addressRepo,
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// Registration depends on the default role existing in the registry.
	for _, name := range []string{domain.RoleAdmin, domain.RoleModerator, domain.RoleUser} {
		_, err := roleRepo.Create(ctx, &domain.Role{Name: name, CreatedAt: time.Now().UTC()})
		if err != nil && !errors.Is(err, domain.ErrRoleExists) {
			log.Fatal().Err(err).Str("role", name).Msg("role seed failed")
		}
	}

	// --- Core services ---
	tokenService, err := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token service init failed")
	}
	directory := service.NewDirectoryService(userRepo)
	authorizer := service.NewOwnershipService(directory, log)
	authService := service.NewAuthService(userRepo, roleRepo, tokenService, log)
	roleService := service.NewRoleService(userRepo, roleRepo, log)
	productService := service.NewProductService(productRepo, log)
	cartService := service.NewCartService(cartRepo, productRepo, log)
	orderService := service.NewOrderService(orderRepo, cartRepo, log)
	reviewService := service.NewReviewService(reviewRepo, productRepo, log)
	addressService := service.NewAddressService(addressRepo, log)

	processor := payment.NewClient(cfg.Payment.BaseURL, cfg.Payment.APIKey)
	paymentService := service.NewPaymentService(orderRepo, processor, cfg.Payment.Currency, log)

	// --- Payment event pipeline ---
	dedup := redisdb.NewDedupChecker(redisClient)
	eventService := service.NewPaymentEventService(orderRepo, dedup, log)
	dispatcher := queue.NewDispatcher(cfg.EventWorkers, eventService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Dependencies{
		Tokens:         tokenService,
		Directory:      directory,
		Authorizer:     authorizer,
		AuthService:    authService,
		RoleService:    roleService,
		ProductService: productService,
		CartService:    cartService,
		OrderService:   orderService,
		ReviewService:  reviewService,
		AddressService: addressService,
		PaymentService: paymentService,
		Users:          userRepo,
		Orders:         orderRepo,
		Reviews:        reviewRepo,
		Addresses:      addressRepo,
		EventQueue:     dispatcher,
		MongoClient:    mongoClient,
		RedisClient:    redisClient,
		Log:            log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
