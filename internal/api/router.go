package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brightcart/storefront-api/internal/api/handler"
	"github.com/brightcart/storefront-api/internal/api/middleware"
	"github.com/brightcart/storefront-api/internal/core/ports"
)

// Dependencies carries everything the router needs. Services and repositories
// are constructed in main so the same instances can feed the event workers.
type Dependencies struct {
	Tokens     ports.TokenService
	Directory  ports.Directory
	Authorizer ports.Authorizer

	AuthService    ports.AuthService
	RoleService    ports.RoleService
	ProductService ports.ProductService
	CartService    ports.CartService
	OrderService   ports.OrderService
	ReviewService  ports.ReviewService
	AddressService ports.AddressService
	PaymentService ports.PaymentService

	Users     ports.UserRepository
	Orders    ports.OrderRepository
	Reviews   ports.ReviewRepository
	Addresses ports.AddressRepository

	EventQueue handler.EventQueue

	MongoClient *mongo.Client
	RedisClient *redis.Client
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	userHandler := handler.NewUserHandler(deps.Users)
	roleHandler := handler.NewRoleHandler(deps.RoleService)
	productHandler := handler.NewProductHandler(deps.ProductService)
	cartHandler := handler.NewCartHandler(deps.CartService)
	orderHandler := handler.NewOrderHandler(deps.OrderService, deps.Orders, deps.Authorizer)
	reviewHandler := handler.NewReviewHandler(deps.ReviewService, deps.Reviews, deps.Authorizer, deps.Directory)
	addressHandler := handler.NewAddressHandler(deps.AddressService, deps.Addresses, deps.Authorizer)
	paymentHandler := handler.NewPaymentHandler(deps.PaymentService, deps.Orders, deps.Authorizer, deps.EventQueue)
	healthHandler := handler.NewHealthHandler(deps.MongoClient, deps.RedisClient)

	authGate := middleware.Auth(deps.Tokens, deps.Directory, deps.Log)
	adminGate := middleware.RequireAdmin(deps.Directory)

	// --- Unauthenticated surface ---
	e.GET("/healthz", healthHandler.Live)
	e.GET("/readyz", healthHandler.Ready)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/webhooks/payments", paymentHandler.Webhook)

	// --- Public catalog reads ---
	e.GET("/v1/products", productHandler.List)
	e.GET("/v1/products/:id", productHandler.Get)
	e.GET("/v1/products/:id/reviews", reviewHandler.ListByProduct)

	// --- Authenticated surface ---
	v1 := e.Group("/v1", authGate)

	v1.GET("/users/me", userHandler.Me)
	v1.GET("/users", userHandler.List, adminGate)
	v1.POST("/users/:id/roles", roleHandler.Grant, adminGate)
	v1.DELETE("/users/:id/roles/:name", roleHandler.Revoke, adminGate)

	v1.POST("/roles", roleHandler.Create, adminGate)
	v1.GET("/roles", roleHandler.List, adminGate)
	v1.DELETE("/roles/:id", roleHandler.Delete, adminGate)

	v1.POST("/products", productHandler.Create, adminGate)
	v1.PUT("/products/:id", productHandler.Update, adminGate)
	v1.DELETE("/products/:id", productHandler.Delete, adminGate)

	v1.GET("/cart", cartHandler.Get)
	v1.DELETE("/cart", cartHandler.Clear)
	v1.POST("/cart/items", cartHandler.AddItem)
	v1.PUT("/cart/items/:productId", cartHandler.UpdateItem)
	v1.DELETE("/cart/items/:productId", cartHandler.RemoveItem)

	v1.POST("/orders", orderHandler.Place)
	v1.GET("/orders", orderHandler.List)
	v1.GET("/orders/:id", orderHandler.Get)
	v1.POST("/orders/:id/cancel", orderHandler.Cancel)
	v1.POST("/orders/:id/payment", paymentHandler.CreateIntent)
	v1.GET("/orders/:id/payment", paymentHandler.GetStatus)

	v1.POST("/products/:id/reviews", reviewHandler.Create)
	v1.PUT("/reviews/:id", reviewHandler.Update)
	v1.DELETE("/reviews/:id", reviewHandler.Delete)

	v1.GET("/addresses", addressHandler.List)
	v1.POST("/addresses", addressHandler.Create)
	v1.PUT("/addresses/:id", addressHandler.Update)
	v1.DELETE("/addresses/:id", addressHandler.Delete)
	v1.POST("/addresses/:id/default", addressHandler.SetDefault)

	return e
}
