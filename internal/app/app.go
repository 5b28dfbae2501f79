package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	videotubeHTTP "videotube/internal/controller/http"
	"videotube/internal/repo/persistent"
	"videotube/internal/usecase"
	"videotube/pkg/cache"
	"videotube/pkg/config"
	"videotube/pkg/database"
	"videotube/pkg/jwt"
	"videotube/pkg/logger"
	"videotube/pkg/media"
	"videotube/pkg/middleware"
	"videotube/pkg/minio"
	"videotube/pkg/s3"
	"videotube/pkg/validation"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "videotube/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	media       *media.Coordinator
	jwtService  *jwt.Service
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.NewWithLevel(cfg.LogLevel)

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		// Redis only backs the rate limiter; fall back to in-process limits
		log.Warn("Failed to connect to redis: %v (using local rate limiter)", err)
		redisClient = nil
	}

	store, err := newObjectStore(cfg)
	if err != nil {
		log.Error("Failed to create %s storage client: %v", cfg.StorageDriver, err)
		return nil, err
	}

	if err := validation.RegisterGin(); err != nil {
		return nil, err
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		media:       media.NewCoordinator(store, cfg.UploadTempDir, log.With("component", "media")),
		jwtService: jwt.NewService(
			cfg.AccessTokenSecret,
			cfg.RefreshTokenSecret,
			cfg.AccessTokenExpiry,
			cfg.RefreshTokenExpiry,
		),
	}, nil
}

func newObjectStore(cfg *config.Config) (media.ObjectStore, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverS3:
		return s3.NewClient(cfg)
	case config.StorageDriverMinIO:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return minio.NewClient(ctx, cfg)
	}
	return nil, errors.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

// Router builds the gin engine with every middleware and route mounted.
func (a *App) Router() *gin.Engine {
	// Initialize repositories
	userRepo := persistent.NewUserRepository(a.db)
	videoRepo := persistent.NewVideoRepository(a.db)
	commentRepo := persistent.NewCommentRepository(a.db)
	likeRepo := persistent.NewLikeRepository(a.db)
	subscriptionRepo := persistent.NewSubscriptionRepository(a.db)
	playlistRepo := persistent.NewPlaylistRepository(a.db)
	tweetRepo := persistent.NewTweetRepository(a.db)
	dashboardRepo := persistent.NewDashboardRepository(a.db)
	healthRepo := persistent.NewHealthRepository(a.db)

	// Initialize use cases
	userUseCase := usecase.NewUserUseCase(userRepo, a.jwtService, a.media, a.log)
	videoUseCase := usecase.NewVideoUseCase(videoRepo, userRepo, a.media, a.log)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, videoRepo)
	likeUseCase := usecase.NewLikeUseCase(likeRepo)
	subscriptionUseCase := usecase.NewSubscriptionUseCase(subscriptionRepo, userRepo, a.log)
	playlistUseCase := usecase.NewPlaylistUseCase(playlistRepo, videoRepo)
	tweetUseCase := usecase.NewTweetUseCase(tweetRepo, userRepo)
	dashboardUseCase := usecase.NewDashboardUseCase(dashboardRepo)
	healthUseCase := usecase.NewHealthUseCase(healthRepo, a.log)

	// Initialize HTTP handlers
	session := videotubeHTTP.NewSession(a.jwtService, userUseCase, a.cfg.CookieSecure)
	handlers := videotubeHTTP.Handlers{
		Session:      session,
		User:         videotubeHTTP.NewUserHandler(userUseCase, session, a.log),
		Video:        videotubeHTTP.NewVideoHandler(videoUseCase, a.log),
		Comment:      videotubeHTTP.NewCommentHandler(commentUseCase),
		Like:         videotubeHTTP.NewLikeHandler(likeUseCase),
		Subscription: videotubeHTTP.NewSubscriptionHandler(subscriptionUseCase),
		Playlist:     videotubeHTTP.NewPlaylistHandler(playlistUseCase),
		Tweet:        videotubeHTTP.NewTweetHandler(tweetUseCase),
		Dashboard:    videotubeHTTP.NewDashboardHandler(dashboardUseCase, healthUseCase),
	}

	r := gin.New()
	r.Use(middleware.Metrics())
	r.Use(middleware.RequestLogger(a.log))
	r.Use(middleware.ErrorHandler(a.log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{a.cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(
		middleware.NewLimiter(a.redisClient, a.cfg.RateLimitRequests, a.cfg.RateLimitWindow),
		a.log,
	))
	api.Use(middleware.BodyLimit(a.cfg.MaxBodyBytes, a.cfg.MaxUploadBytes))
	videotubeHTTP.RegisterRoutes(api, handlers)

	return r
}

func (a *App) Run() error {
	gin.SetMode(gin.ReleaseMode)

	a.httpServer = &http.Server{
		Addr:              ":" + a.cfg.ServerPort,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("Videotube API starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down videotube API...")
}

// Shutdown drains in-flight requests first, then waits for detached media
// deletions before closing the stores they depend on.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var shutdownErr error
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			shutdownErr = err
		}
	}

	if err := a.media.Wait(ctx); err != nil {
		a.log.Warn("Pending media deletions abandoned: %v", err)
	}

	// Close Redis connection
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	// Close database connection
	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	a.log.Info("Videotube API exited")
	return shutdownErr
}
