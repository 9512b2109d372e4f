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

	"taskhub/internal/config"
	"taskhub/internal/handler"
	"taskhub/internal/middleware"
	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
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

	// Additive schema sync only; nothing is dropped or rewritten.
	err = db.AutoMigrate(
		&model.Company{},
		&model.Position{},
		&model.User{},
		&model.Client{},
		&model.Project{},
		&model.Task{},
		&model.Comment{},
		&model.Invoice{},
		&model.Payment{},
		&model.Token{},
	)
	if err != nil {
		return nil, fmt.Errorf("❌ failed to migrate schema: %w", err)
	}

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	companyRepo := repository.NewCompanyRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	clientRepo := repository.NewClientRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	seedRepo := repository.NewSeedRepository(db)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userRepo, tokenRepo)
	companyHandler := handler.NewCompanyHandler(companyRepo)
	positionHandler := handler.NewPositionHandler(positionRepo)
	userHandler := handler.NewUserHandler(userRepo)
	projectHandler := handler.NewProjectHandler(projectRepo)
	taskHandler := handler.NewTaskHandler(taskRepo)
	commentHandler := handler.NewCommentHandler(commentRepo)
	clientHandler := handler.NewClientHandler(clientRepo)
	invoiceHandler := handler.NewInvoiceHandler(invoiceRepo, taskRepo)
	paymentHandler := handler.NewPaymentHandler(paymentRepo)
	seedHandler := handler.NewSeedHandler(seedRepo)

	// Public routes
	r.POST("/login", authHandler.Login)
	r.POST("/seed", seedHandler.Reset)

	// Protected routes - require a valid bearer token
	authorized := r.Group("/")
	authorized.Use(middleware.TokenAuthMiddleware(tokenRepo))
	{
		authorized.POST("/logout", authHandler.Logout)
		authorized.GET("/me", authHandler.Me)

		// Company routes
		authorized.POST("/companies", companyHandler.Create)
		authorized.GET("/companies", companyHandler.GetAll)
		authorized.GET("/companies/:id", companyHandler.GetByID)
		authorized.PUT("/companies/:id", companyHandler.Update)
		authorized.DELETE("/companies/:id", companyHandler.Delete)
		authorized.GET("/companies/:id/users", userHandler.GetByCompany)
		authorized.GET("/companies/:id/projects", projectHandler.GetByCompany)
		authorized.GET("/companies/:id/tasks", taskHandler.GetByCompany)
		authorized.GET("/companies/:id/clients", clientHandler.GetByCompany)
		authorized.GET("/companies/:id/clients/:client_id/tasks", taskHandler.GetByClient)
		authorized.GET("/companies/:id/invoices", invoiceHandler.GetByCompany)

		// Position routes
		authorized.POST("/positions", positionHandler.Create)
		authorized.GET("/positions", positionHandler.GetAll)

		// User routes
		authorized.POST("/users", userHandler.Create)
		authorized.GET("/users", userHandler.GetAll)
		authorized.GET("/users/:id", userHandler.GetByID)
		authorized.PUT("/users/:id", userHandler.Update)

		// Project routes
		authorized.POST("/projects", projectHandler.Create)
		authorized.GET("/projects", projectHandler.GetAll)
		authorized.GET("/projects/:id", projectHandler.GetByID)
		authorized.PUT("/projects/:id", projectHandler.Update)
		authorized.DELETE("/projects/:id", projectHandler.Delete)
		authorized.POST("/projects/:id/members", projectHandler.AddMember)
		authorized.DELETE("/projects/:id/members/:user_id", projectHandler.RemoveMember)
		authorized.GET("/projects/:id/tasks", taskHandler.GetByProject)

		// Task routes
		authorized.POST("/tasks", taskHandler.Create)
		authorized.GET("/tasks", taskHandler.GetAll)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
		authorized.GET("/tasks/:id/comments", commentHandler.GetByTask)

		// Comment routes
		authorized.POST("/comments", commentHandler.Create)

		// Client routes
		authorized.POST("/clients", clientHandler.Create)
		authorized.GET("/clients", clientHandler.GetAll)
		authorized.GET("/clients/:id", clientHandler.GetByID)
		authorized.PUT("/clients/:id", clientHandler.Update)
		authorized.DELETE("/clients/:id", clientHandler.Delete)

		// Invoice routes
		authorized.POST("/invoices", invoiceHandler.Create)
		authorized.GET("/invoices", invoiceHandler.GetAll)
		authorized.GET("/invoices/:id", invoiceHandler.GetByID)
		authorized.PUT("/invoices/:id", invoiceHandler.Update)
		authorized.POST("/invoices/:id/status", invoiceHandler.UpdateStatus)
		authorized.GET("/invoices/:id/payments", paymentHandler.ListByInvoice)

		// Payment routes
		authorized.POST("/payments", paymentHandler.Create)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
