package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/sparkmatch/sparkmatch-backend/internal/config"
	"github.com/sparkmatch/sparkmatch-backend/internal/delivery/http"
	"github.com/sparkmatch/sparkmatch-backend/internal/delivery/http/handler"
	"github.com/sparkmatch/sparkmatch-backend/internal/delivery/http/middleware"
	"github.com/sparkmatch/sparkmatch-backend/internal/infrastructure/database"
	"github.com/sparkmatch/sparkmatch-backend/internal/infrastructure/server"
	"github.com/sparkmatch/sparkmatch-backend/internal/infrastructure/storage"
	"github.com/sparkmatch/sparkmatch-backend/internal/repository/postgres"
	"github.com/sparkmatch/sparkmatch-backend/internal/repository/rediscache"
	"github.com/sparkmatch/sparkmatch-backend/internal/usecase/auth"
	"github.com/sparkmatch/sparkmatch-backend/internal/usecase/chat"
	"github.com/sparkmatch/sparkmatch-backend/internal/usecase/discoveryfeed"
	"github.com/sparkmatch/sparkmatch-backend/internal/usecase/match"
	"github.com/sparkmatch/sparkmatch-backend/internal/usecase/profile"
)

const migrationsDir = "migrations"

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.RunMigrations(db, migrationsDir); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize photo storage
	photoStorage, err := storage.NewPhotoStorage(context.Background(), cfg.S3.Region, cfg.S3.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize photo storage: %w", err)
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	photoRepo := postgres.NewPhotoRepository(db)
	swipeRepo := postgres.NewSwipeRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	conversationRepo := postgres.NewConversationRepository(db)
	messageRepo := postgres.NewMessageRepository(db)

	otpStore := rediscache.NewOTPStore(redisClient, cfg.OTP.TTL)
	lastActionStore := rediscache.NewLastActionStore(redisClient)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		userRepo,
		otpStore,
		auth.LogSender{},
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.ExpiryHrs)*time.Hour,
	)

	profileUseCase := profile.NewProfileUseCase(
		profileRepo,
		photoRepo,
		photoStorage,
	)

	discoveryUseCase := discoveryfeed.NewDiscoveryUseCase(
		profileRepo,
		swipeRepo,
	)

	matchUseCase := match.NewMatchUseCase(
		swipeRepo,
		matchRepo,
		profileRepo,
		userRepo,
		conversationRepo,
		lastActionStore,
	)

	chatUseCase := chat.NewChatUseCase(
		conversationRepo,
		messageRepo,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	matchHandler := handler.NewMatchHandler(matchUseCase, discoveryUseCase)
	chatHandler := handler.NewChatHandler(chatUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		profileHandler,
		matchHandler,
		chatHandler,
		authMiddleware,
		cfg.CORS.AllowedOrigins,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter)

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			fmt.Printf("Error closing Redis: %v\n", err)
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
