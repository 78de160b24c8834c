package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/atriumlabs/atrium/backend/internal/auth"
	"github.com/atriumlabs/atrium/backend/internal/cache"
	"github.com/atriumlabs/atrium/backend/internal/config"
	"github.com/atriumlabs/atrium/backend/internal/database"
	"github.com/atriumlabs/atrium/backend/internal/event"
	"github.com/atriumlabs/atrium/backend/internal/health"
	"github.com/atriumlabs/atrium/backend/internal/logger"
	"github.com/atriumlabs/atrium/backend/internal/middleware"
	"github.com/atriumlabs/atrium/backend/internal/response"
	"github.com/atriumlabs/atrium/backend/internal/storage"
	"github.com/atriumlabs/atrium/backend/internal/user"

	"github.com/apache/pulsar-client-go/pulsar"
)

// Version is the service version reported by the health endpoint.
const Version = "0.1.0"

// App holds all application dependencies
type App struct {
	ctx    context.Context
	Config *config.Config
	logger logger.Logger
	router *gin.Engine

	db        *gorm.DB
	dbService *database.DatabaseService
	cache     cache.Service
	storage   storage.Service

	pulsarClient pulsar.Client
	producer     *event.UserProducer
	consumer     *event.AuditConsumer

	responseHandler response.Handler
	AuthService     *auth.Service
	UserService     *user.Service
}

// NewApp creates a new application instance with all dependencies
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	responseHandler := response.NewHandler(log)

	// Initialize database
	dbService := database.NewDatabaseService(&cfg.Database, cfg.Environment, log)
	db, err := dbService.Connect()
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %v", err)
	}

	// Initialize cache
	cacheService, err := cache.NewRedisService(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %v", err)
	}

	// Initialize object storage
	storageService, err := storage.NewS3Service(&cfg.Storage.S3, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %v", err)
	}
	if err := storageService.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure storage bucket: %v", err)
	}

	app := &App{
		ctx:             ctx,
		Config:          cfg,
		logger:          log,
		db:              db,
		dbService:       dbService,
		cache:           cacheService,
		storage:         storageService,
		responseHandler: responseHandler,
	}

	if err := app.initEvents(); err != nil {
		return nil, err
	}

	app.initServices()
	app.setupRouter()

	return app, nil
}

// initEvents wires the Pulsar producer and audit consumer when the
// event bus is enabled.
func (a *App) initEvents() error {
	if !a.Config.Events.Enabled {
		a.logger.LogInfo("Event bus disabled, skipping Pulsar setup", nil)
		return nil
	}

	client, err := event.NewClient(&a.Config.Pulsar)
	if err != nil {
		return fmt.Errorf("failed to initialize Pulsar client: %v", err)
	}

	producer, err := event.NewUserProducer(client, a.Config.Events.UserEventsTopic, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize event producer: %v", err)
	}

	consumer, err := event.NewAuditConsumer(client, a.Config.Events.UserEventsTopic, a.Config.Events.Subscription, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize audit consumer: %v", err)
	}
	consumer.Start(a.ctx)

	a.pulsarClient = client
	a.producer = producer
	a.consumer = consumer
	return nil
}

func (a *App) initServices() {
	var events user.EventPublisher
	if a.producer != nil {
		events = a.producer
	}

	userRepo := user.NewRepository(a.db)
	a.UserService = user.NewService(userRepo, a.cache, events, a.logger)

	authConfig := auth.NewConfigFromAuthConfig(&a.Config.Auth)
	jwtService := auth.NewJWTService(authConfig)
	tokenRepo := auth.NewRefreshTokenRepository(a.db, a.logger)
	a.AuthService = auth.NewService(userRepo, tokenRepo, jwtService, a.cache, events, a.logger, authConfig)
}

func (a *App) setupRouter() {
	gin.SetMode(ginMode(a.Config.Environment))

	router := gin.New()
	router.Use(middleware.RequestLogger(a.logger))
	router.Use(middleware.Recovery(a.logger, a.responseHandler))

	// Health check
	healthHandler := health.NewHandler(Version, a.responseHandler)
	router.GET("/health", healthHandler.HandleHealthCheck)

	// Auth routes
	authHandler := auth.NewHandler(a.AuthService, a.responseHandler)
	authHandler.RegisterRoutes(router)

	// User routes
	authRequired := auth.Middleware(a.AuthService, a.responseHandler)
	adminRequired := auth.RequireSuperuser(a.responseHandler)
	userHandler := user.NewHandler(a.UserService, a.storage, a.Config.Pagination, a.responseHandler)
	userHandler.RegisterRoutes(router, authRequired, adminRequired)

	// Unknown routes get the uniform 404 envelope, never gin's default body.
	router.NoRoute(func(c *gin.Context) {
		a.responseHandler.ErrorResponse(c, http.StatusNotFound, "Resource not found", "")
	})

	a.router = router
}

// Run starts the application
func (a *App) Run() error {
	port := a.Config.Server.Port
	a.logger.LogInfo(fmt.Sprintf("Starting server on port %d", port), nil)
	if err := a.router.Run(fmt.Sprintf(":%d", port)); err != nil {
		return a.logger.LogError(err, "server failed to start")
	}
	return nil
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown() error {
	a.logger.LogInfo("Initiating graceful shutdown", nil)

	if a.consumer != nil {
		if err := a.consumer.Close(); err != nil {
			a.logger.LogWarn("Error closing audit consumer", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.LogWarn("Error closing event producer", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if a.pulsarClient != nil {
		a.pulsarClient.Close()
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.LogWarn("Error closing cache connections", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil {
			a.logger.LogWarn("Error closing database connections", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	a.logger.LogInfo("Application shutdown complete", nil)
	return nil
}

func ginMode(environment string) string {
	switch environment {
	case "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
