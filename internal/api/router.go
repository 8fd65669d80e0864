package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cleanhub/marketplace-api/internal/api/handler"
	"github.com/cleanhub/marketplace-api/internal/api/middleware"
	"github.com/cleanhub/marketplace-api/internal/core/ports"
	"github.com/cleanhub/marketplace-api/internal/core/service"
	mongodb "github.com/cleanhub/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/cleanhub/marketplace-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, payments ports.PaymentProvider, jwtSecret, currency string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("cleanhub"))

	// --- Dependencies ---
	tokens := service.NewTokenService(jwtSecret, 24*time.Hour)
	roleCache := redisdb.NewRoleCache(rdb)

	userRepo := mongodb.NewUserRepository(db)
	users := service.NewUserService(userRepo, tokens, roleCache, log)

	bookingRepo := mongodb.NewBookingRepository(db)
	bookings := service.NewBookingService(bookingRepo, payments, currency, log)

	serviceRepo := mongodb.NewServiceRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)

	userHandler := handler.NewUserHandler(users)
	bookingHandler := handler.NewBookingHandler(bookings, users)
	catalogHandler := handler.NewCatalogHandler(serviceRepo)
	reviewHandler := handler.NewReviewHandler(reviewRepo)

	authenticated := middleware.Auth(tokens)
	adminOnly := middleware.AdminOnly(users)

	// --- Users ---
	e.PUT("/user/:email", userHandler.SignIn)
	e.PUT("/user/update/:email", userHandler.UpdateProfile)
	e.GET("/user/:email", userHandler.Get)
	e.GET("/users", userHandler.List, authenticated, adminOnly)
	e.DELETE("/user/:id", userHandler.Delete, authenticated, adminOnly)
	e.PUT("/user/admin/:email", userHandler.Promote, authenticated, adminOnly)
	e.GET("/admin/:email", userHandler.IsAdmin)

	// --- Service catalog (pass-through CRUD, no auth by design) ---
	e.POST("/services", catalogHandler.Create)
	e.GET("/services", catalogHandler.List)
	e.GET("/services/:id", catalogHandler.Get)
	e.DELETE("/services/:id", catalogHandler.Delete)

	// --- Bookings ---
	e.POST("/bookings", bookingHandler.Create, authenticated)
	e.GET("/bookings", bookingHandler.List, authenticated, adminOnly)
	e.GET("/booking/:email", bookingHandler.ListByEmail, authenticated)
	e.PATCH("/bookings/:id", bookingHandler.Approve, authenticated, adminOnly)
	e.PATCH("/order/:id", bookingHandler.ConfirmPayment, authenticated, adminOnly)
	e.DELETE("/bookings/:id", bookingHandler.Delete, authenticated)
	e.POST("/create-payment-intent", bookingHandler.CreatePaymentIntent, authenticated)

	// --- Reviews (pass-through CRUD, no auth by design) ---
	e.POST("/review", reviewHandler.Create)
	e.GET("/reviews", reviewHandler.List)
	e.GET("/reviews/:email", reviewHandler.ListByEmail)
	e.PATCH("/review/:id", reviewHandler.ToggleStatus)
	e.DELETE("/review/:id", reviewHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
