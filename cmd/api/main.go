package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-warehouse-api/internal/handler"
	"go-warehouse-api/internal/middleware"
	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/internal/service"
	"go-warehouse-api/internal/ws"
	"go-warehouse-api/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Supplier{},
		&model.Item{},
		&model.IncomingTransaction{},
		&model.OutgoingTransaction{},
		&model.RequestItem{},
	)

	// 3. Seed default admin
	seedAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	itemRepo := repository.NewItemRepo(db)
	incomingRepo := repository.NewIncomingRepo(db)
	outgoingRepo := repository.NewOutgoingRepo(db)
	requestRepo := repository.NewRequestRepo(db)
	dashboardRepo := repository.NewDashboardRepo(db)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	inventoryService := service.NewInventoryService(categoryRepo, supplierRepo, itemRepo, incomingRepo, outgoingRepo, db)
	stockService := service.NewStockService(itemRepo, incomingRepo, outgoingRepo, db, wsHub)
	requestService := service.NewRequestService(requestRepo, itemRepo, stockService, db)
	dashboardService := service.NewDashboardService(dashboardRepo, incomingRepo, outgoingRepo, requestRepo)
	reportService := service.NewReportService(itemRepo, incomingRepo, outgoingRepo, requestRepo)
	exportService := service.NewExportService(reportService)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	transactionHandler := handler.NewTransactionHandler(stockService)
	requestHandler := handler.NewRequestHandler(requestService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	reportHandler := handler.NewReportHandler(reportService, exportService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Warehouse Inventory API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Post("/auth/change-password", authHandler.ChangePassword)
	protected.Get("/auth/me", authHandler.Me)

	// Dashboard (any authenticated user)
	protected.Get("/dashboard", dashboardHandler.Overview)
	protected.Get("/dashboard/stock-movement", dashboardHandler.StockMovement)

	// User management (admin only)
	users := protected.Group("/users", middleware.RequireOperation(middleware.OpUserManagement))
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Post("/:id/toggle-active", userHandler.ToggleActive)
	users.Post("/:id/reset-password", userHandler.ResetPassword)

	// Master data (warehouse staff)
	masterData := middleware.RequireOperation(middleware.OpMasterData)
	protected.Get("/categories", masterData, inventoryHandler.ListCategories)
	protected.Post("/categories", masterData, inventoryHandler.CreateCategory)
	protected.Put("/categories/:id", masterData, inventoryHandler.UpdateCategory)
	protected.Delete("/categories/:id", masterData, inventoryHandler.DeleteCategory)

	protected.Get("/suppliers", masterData, inventoryHandler.ListSuppliers)
	protected.Get("/suppliers/:id", masterData, inventoryHandler.GetSupplier)
	protected.Post("/suppliers", masterData, inventoryHandler.CreateSupplier)
	protected.Put("/suppliers/:id", masterData, inventoryHandler.UpdateSupplier)
	protected.Delete("/suppliers/:id", masterData, inventoryHandler.DeleteSupplier)

	protected.Get("/items", masterData, inventoryHandler.ListItems)
	protected.Get("/items/:id", masterData, inventoryHandler.GetItem)
	protected.Post("/items", masterData, inventoryHandler.CreateItem)
	protected.Put("/items/:id", masterData, inventoryHandler.UpdateItem)
	protected.Delete("/items/:id", masterData, inventoryHandler.DeleteItem)

	// Stock transactions (warehouse staff)
	incomingOp := middleware.RequireOperation(middleware.OpIncomingStock)
	protected.Get("/incoming", incomingOp, transactionHandler.ListIncoming)
	protected.Get("/incoming/:id", incomingOp, transactionHandler.GetIncoming)
	protected.Post("/incoming", incomingOp, transactionHandler.CreateIncoming)
	protected.Put("/incoming/:id", incomingOp, transactionHandler.UpdateIncoming)

	outgoingOp := middleware.RequireOperation(middleware.OpOutgoingStock)
	protected.Get("/outgoing", outgoingOp, transactionHandler.ListOutgoing)
	protected.Get("/outgoing/:id", outgoingOp, transactionHandler.GetOutgoing)
	protected.Post("/outgoing", outgoingOp, transactionHandler.CreateOutgoing)
	protected.Put("/outgoing/:id", outgoingOp, transactionHandler.UpdateOutgoing)

	// Requisitions
	protected.Get("/requests", middleware.RequireOperation(middleware.OpRequestView), requestHandler.List)
	protected.Get("/requests/status-counts", middleware.RequireOperation(middleware.OpRequestView), requestHandler.StatusCounts)
	protected.Get("/requests/:id", middleware.RequireOperation(middleware.OpRequestView), requestHandler.Get)
	protected.Post("/requests", middleware.RequireOperation(middleware.OpRequestCreate), requestHandler.Create)
	protected.Post("/requests/:id/approve", middleware.RequireOperation(middleware.OpRequestApproval), requestHandler.Approve)
	protected.Post("/requests/:id/reject", middleware.RequireOperation(middleware.OpRequestApproval), requestHandler.Reject)

	// Reports (director)
	reports := protected.Group("/reports", middleware.RequireOperation(middleware.OpReports))
	reports.Get("/stock", reportHandler.StockReport)
	reports.Get("/incoming", reportHandler.IncomingReport)
	reports.Get("/incoming/pdf", reportHandler.ExportIncomingPDF)
	reports.Get("/outgoing", reportHandler.OutgoingReport)
	reports.Get("/outgoing/pdf", reportHandler.ExportOutgoingPDF)
	reports.Get("/requests", reportHandler.RequestReport)
	reports.Get("/activity", reportHandler.ActivityHistory)

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
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin account if it doesn't exist
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByUsername("admin"); err == nil {
		return
	}

	admin := &model.User{
		Username: "admin",
		Name:     "Administrator",
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword("admin123"); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Println("Admin user created: admin / admin123")
	}
}
