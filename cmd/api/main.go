package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-retail-backoffice/internal/config"
	"go-retail-backoffice/internal/handler"
	"go-retail-backoffice/internal/middleware"
	"go-retail-backoffice/internal/model"
	"go-retail-backoffice/internal/repository"
	"go-retail-backoffice/internal/service"
	"go-retail-backoffice/internal/ws"
	"go-retail-backoffice/pkg/database"
	"go-retail-backoffice/pkg/hashing"
	"go-retail-backoffice/pkg/logger"
	"go-retail-backoffice/pkg/token"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	appLog := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// 2. Setup Database
	db := database.ConnectDB(cfg.Database.DSN())
	db.AutoMigrate(&model.User{}, &model.Client{}, &model.Product{}, &model.Order{}, &model.OrderLine{})
	appLog.Info().Msg("database connection established")

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	hasher := hashing.NewBcryptHasher(0)
	issuer := token.NewManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)

	userRepo := repository.NewUserRepo(db)
	clientRepo := repository.NewClientRepo(db)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	authService := service.NewAuthService(userRepo, hasher, issuer)
	clientService := service.NewClientService(clientRepo)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, clientRepo, wsHub)
	gateway := service.NewWhatsAppSimulator(appLog)
	notificationService := service.NewNotificationService(clientRepo, gateway)

	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// 5. Seed default admin user
	seedAdmin(userRepo, hasher, appLog)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Retail Back-Office v1.0",
	})

	// Middleware
	app.Use(fiberlogger.New()) // Logging request
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 7. Routes

	// ============ PUBLIC ROUTES ============
	app.Get("/", handler.Root)
	app.Get("/health", handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	auth := app.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh-token", authHandler.Refresh)

	// ============ PROTECTED ROUTES ============
	requireAuth := middleware.RequireAuth(issuer, userRepo)

	clients := app.Group("/clients", requireAuth)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.Get)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", middleware.RequireAdmin(), clientHandler.Delete)

	products := app.Group("/products", requireAuth)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", middleware.RequireAdmin(), productHandler.Delete)

	orders := app.Group("/orders", requireAuth)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.Get)
	orders.Put("/:id", orderHandler.Update)
	orders.Delete("/:id", middleware.RequireAdmin(), orderHandler.Delete)

	app.Post("/whatsapp/send", requireAuth, notificationHandler.Send)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	appLog.Info().Msg("server exited")
}

// seedAdmin creates the default admin account if it doesn't exist yet
func seedAdmin(userRepo repository.UserRepository, hasher hashing.Hasher, appLog zerolog.Logger) {
	if _, err := userRepo.FindByUsername("admin"); err == nil {
		return
	}

	hashed, err := hasher.Hash("admin123")
	if err != nil {
		appLog.Warn().Err(err).Msg("failed to hash default admin password")
		return
	}

	admin := &model.User{
		Username: "admin",
		Email:    "admin@example.com",
		Password: hashed,
		IsAdmin:  true,
	}
	if err := userRepo.Create(admin); err != nil {
		appLog.Warn().Err(err).Msg("failed to create default admin user")
		return
	}
	appLog.Info().Msg("default admin user created: admin / admin123")
}
