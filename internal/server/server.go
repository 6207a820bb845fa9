package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"officeflow/internal/config"
	"officeflow/internal/database"
	"officeflow/internal/handler"
	"officeflow/internal/middleware"
	"officeflow/internal/overdue"
	"officeflow/internal/promosync"
	"officeflow/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine  *gin.Engine
	DB      *gorm.DB
	Config  *config.Config
	Sweeper *overdue.Sweeper
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	// Apply schema migrations
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("❌ failed to access DB handle: %w", err)
	}
	if err := database.Migrate(sqlDB); err != nil {
		return nil, fmt.Errorf("❌ failed to run migrations: %w", err)
	}
	log.Println("✅ Migrations applied")

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	promoRepo := repository.NewPromotionRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	receiptRepo := repository.NewReadReceiptRepository(db)

	// The sync bridge keeps tasks and promotions mirrored
	bridge := promosync.NewBridge(taskRepo, promoRepo, userRepo, nil)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo)
	clientHandler := handler.NewClientHandler(clientRepo, taskRepo)
	taskHandler := handler.NewTaskHandler(taskRepo, userRepo, receiptRepo, bridge)
	promoHandler := handler.NewPromotionHandler(promoRepo, userRepo, bridge)
	noteHandler := handler.NewNoteHandler(noteRepo)
	invoiceHandler := handler.NewInvoiceHandler(invoiceRepo, clientRepo)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Task routes. Status changes are validated by the state machine,
		// so these are open to employees; the machine itself gates by role
		// and queue position.
		authorized.GET("/tasks", taskHandler.List)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.POST("/tasks/:id/status", taskHandler.UpdateStatus)
		authorized.GET("/tasks/:id/statuses", taskHandler.AvailableStatuses)
		authorized.POST("/tasks/:id/remarks", taskHandler.AddRemark)
		authorized.POST("/tasks/:id/seen", taskHandler.MarkSeen)

		// Client routes
		authorized.GET("/clients", clientHandler.List)
		authorized.GET("/clients/:id", clientHandler.GetByID)
		authorized.GET("/clients/:id/tasks", clientHandler.GetTasks)

		// Promotion routes
		authorized.GET("/promotions", promoHandler.List)
		authorized.GET("/promotions/:id", promoHandler.GetByID)
		authorized.POST("/promotions/:id/remarks", promoHandler.AddRemark)

		// Note routes
		authorized.GET("/notes", noteHandler.List)
		authorized.POST("/notes", noteHandler.Create)
		authorized.PUT("/notes/:id", noteHandler.Update)
		authorized.DELETE("/notes/:id", noteHandler.Delete)
		authorized.POST("/notes/reorder", noteHandler.Reorder)

		// Invoice routes
		authorized.GET("/invoices", invoiceHandler.List)
		authorized.GET("/invoices/:id", invoiceHandler.GetByID)
	}

	// Admin-only routes
	admin := authorized.Group("/")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/users", userHandler.List)

		admin.POST("/tasks", taskHandler.Create)
		admin.PUT("/tasks/:id", taskHandler.Update)
		admin.DELETE("/tasks/:id", taskHandler.Delete)
		admin.POST("/tasks/:id/assignees", taskHandler.SetAssignee)

		admin.POST("/clients", clientHandler.Create)
		admin.PUT("/clients/:id", clientHandler.Update)
		admin.DELETE("/clients/:id", clientHandler.Delete)

		admin.POST("/promotions", promoHandler.Create)
		admin.PUT("/promotions/:id", promoHandler.Update)
		admin.DELETE("/promotions/:id", promoHandler.Delete)

		admin.POST("/invoices", invoiceHandler.Create)
		admin.POST("/invoices/:id/status", invoiceHandler.UpdateStatus)
		admin.DELETE("/invoices/:id", invoiceHandler.Delete)
	}

	sweeper := overdue.NewSweeper(taskRepo, cfg.OverdueSweep)

	return &Server{
		Engine:  r,
		DB:      db,
		Config:  cfg,
		Sweeper: sweeper,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	if err := s.Sweeper.Start(); err != nil {
		log.Fatalf("❌ Failed to start overdue sweeper: %s\n", err)
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	s.Sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
