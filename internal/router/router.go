package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/anonto42/souq-admin/backend/internal/handlers"
	"github.com/anonto42/souq-admin/backend/internal/middleware"
	"github.com/anonto42/souq-admin/backend/internal/models"
	"github.com/anonto42/souq-admin/backend/internal/notifications"
	"github.com/anonto42/souq-admin/backend/internal/orders"
	"github.com/anonto42/souq-admin/backend/internal/repositories"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models (staff accounts)
	if err := pgdb.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	mgdb := mgClient.Database("souqadmin")

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	customerRepo := repositories.NewMongoCustomerRepository(mgdb)
	productRepo := repositories.NewMongoProductRepository(mgdb)
	categoryRepo := repositories.NewMongoCategoryRepository(mgdb)
	brandRepo := repositories.NewMongoBrandRepository(mgdb)
	orderRepo := repositories.NewMongoOrderRepository(mgdb)
	supportRepo := repositories.NewMongoSupportMessageRepository(mgdb)
	staffNotifStore := repositories.NewStaffNotificationStore(mgdb)
	customerNotifStore := repositories.NewCustomerNotificationStore(mgdb)

	// --- Core services ---
	dispatcher := notifications.NewDispatcher(staffNotifStore, customerNotifStore)
	lifecycle := orders.NewLifecycle(orderRepo, dispatcher)

	// --- Unprotected routes ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	public := e.Group("/api/v1")
	customerHandler := handlers.NewCustomerHandler(customerRepo, firebaseAuthClient, dispatcher)
	customerHandler.RegisterPublicRoutes(public)
	log.Println("Customer registration route configured.")

	// --- Staff panel routes (require staff JWT + admin role) ---
	admin := e.Group("/api/v1/admin")
	admin.Use(middleware.StaffAuthMiddleware())
	admin.Use(middleware.RequireAdmin())
	log.Println("Staff authentication middleware applied to /api/v1/admin group.")

	// Catalog routes
	productHandler := handlers.NewProductHandler(productRepo, dispatcher)
	productHandler.RegisterProductRoutes(admin)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo)
	categoryHandler.RegisterCategoryRoutes(admin)
	brandHandler := handlers.NewBrandHandler(brandRepo)
	brandHandler.RegisterBrandRoutes(admin)
	log.Println("Catalog routes configured.")

	// Order routes
	orderHandler := handlers.NewOrderHandler(orderRepo, lifecycle, dispatcher)
	orderHandler.RegisterOrderRoutes(admin)
	log.Println("Order routes configured.")

	// Customer list routes
	customerHandler.RegisterStaffRoutes(admin)
	log.Println("Customer routes configured.")

	// Staff account routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterStaffRoutes(admin)
	log.Println("Staff account routes configured.")

	// Support routes (staff view)
	supportHandler := handlers.NewSupportHandler(supportRepo, dispatcher)
	supportHandler.RegisterStaffRoutes(admin)
	log.Println("Support routes configured.")

	// Staff inbox routes
	staffInboxHandler := handlers.NewStaffInboxHandler(staffNotifStore)
	staffInboxHandler.RegisterInboxRoutes(admin)
	log.Println("Staff inbox routes configured.")

	// --- Customer routes (require Firebase ID token) ---
	me := e.Group("/api/v1/me")
	me.Use(middleware.CustomerAuthMiddleware(firebaseAuthClient))
	log.Println("Firebase authentication middleware applied to /api/v1/me group.")

	// Customer inbox routes
	customerInboxHandler := handlers.NewCustomerInboxHandler(customerNotifStore)
	customerInboxHandler.RegisterInboxRoutes(me)
	log.Println("Customer inbox routes configured.")

	// Support routes (customer submission)
	supportHandler.RegisterCustomerRoutes(me)
	log.Println("Customer support routes configured.")

	log.Println("All routes configured.")
}
