package server

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/driveboxhq/drivebox/internal/config"
	"github.com/driveboxhq/drivebox/internal/domain"
	"github.com/driveboxhq/drivebox/internal/handler"
	"github.com/driveboxhq/drivebox/internal/middleware"
	"github.com/driveboxhq/drivebox/internal/repository"
	"github.com/driveboxhq/drivebox/internal/service"
	"github.com/driveboxhq/drivebox/internal/telemetry"
)

const idempotencyTTL = 10 * time.Minute

// AppDependencies holds the dependencies required to start the application.
// Storage is injected rather than constructed here so tests can substitute
// an in-memory implementation.
type AppDependencies struct {
	Config      *config.Config
	MongoDB     *mongo.Database
	RedisClient *redis.Client
	Storage     domain.BlobStorage
	AuthClient  service.FirebaseAuthClient
}

// NewApp creates and configures the Fiber application with the given dependencies
func NewApp(deps AppDependencies) *fiber.App {
	// Initialize repositories
	fileRepo := repository.NewMongoFileRepository(deps.MongoDB)
	shareRepo := repository.NewMongoFileShareRepository(deps.MongoDB)
	userRepo := repository.NewMongoUserRepository(deps.MongoDB)
	refreshTokenRepo := repository.NewMongoRefreshTokenRepository(deps.MongoDB)
	cacheRepo := repository.NewRedisCacheRepository(deps.RedisClient)

	// Initialize services
	fileService := service.NewFileService(fileRepo, deps.Storage, cacheRepo)
	shareService := service.NewShareService(fileRepo, shareRepo, deps.Storage)
	authService := service.NewAuthService(userRepo, deps.AuthClient)
	tokenService := service.NewTokenService(deps.Config.JWT, refreshTokenRepo, userRepo)

	// Initialize handlers
	fileHandler := handler.NewFileHandler(fileService, deps.Config.Server.MaxUploadSizeMB)
	shareHandler := handler.NewShareHandler(shareService)
	authHandler := handler.NewAuthHandler(authService, tokenService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Drivebox API",
		BodyLimit:    int(deps.Config.Server.MaxUploadSizeMB * 1024 * 1024),
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Correlation-ID",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	if deps.Config.OTEL.Enabled {
		app.Use(telemetry.FiberMiddleware())
	}

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "drivebox",
		})
	})

	// Auth endpoints (public)
	auth := app.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	// File endpoints (authenticated). Idempotent replay sits behind the
	// auth guard so cached responses are only served back to the identity
	// that produced them.
	authed := middleware.VerifyAccessToken(deps.Config.JWT.Secret)
	idempotent := middleware.IdempotencyMiddleware(deps.RedisClient, idempotencyTTL)

	app.Post("/upload", authed, idempotent, fileHandler.Upload)
	app.Get("/download/:id", authed, fileHandler.Download)
	app.Get("/files", authed, fileHandler.List)
	app.Get("/files/:id/shares", authed, shareHandler.ListShares)
	app.Post("/share/:id", authed, idempotent, shareHandler.Share)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	log.Printf("Error: %v", err)
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
