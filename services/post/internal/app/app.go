package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsdesk/pkg/cache"
	"newsdesk/pkg/config"
	"newsdesk/pkg/database"
	"newsdesk/pkg/jwt"
	"newsdesk/pkg/logger"
	"newsdesk/pkg/middleware"
	"newsdesk/pkg/queue"
	"newsdesk/pkg/s3"
	postHTTP "newsdesk/services/post/internal/controller/http"
	"newsdesk/services/post/internal/entity"
	postCache "newsdesk/services/post/internal/repo/cache"
	"newsdesk/services/post/internal/repo/inmemory"
	"newsdesk/services/post/internal/repo/persistent"
	"newsdesk/services/post/internal/seed"
	"newsdesk/services/post/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "newsdesk/services/post/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	queueClient *queue.Client
	jwtService  *jwt.Service
	postRepo    persistent.PostRepository
	authorRepo  persistent.AuthorRepository
	postUseCase usecase.PostUseCase
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	a := &App{
		cfg:        cfg,
		log:        log,
		jwtService: jwt.NewServiceWithTTL(cfg.JWTSecret, cfg.JWTTTL),
	}

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn("Using in-memory store, data is lost on restart")
		a.postRepo = inmemory.NewPostRepository()
		a.authorRepo = inmemory.NewAuthorRepository()
	default:
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Error("Failed to connect to database: %v", err)
			return nil, err
		}
		a.db = db
		a.postRepo = persistent.NewPostRepository(db)
		a.authorRepo = persistent.NewAuthorRepository(db)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		// Redis is optional: no cache and no rate limiting
		log.Error("Failed to connect to redis: %v (continuing without cache)", err)
		redisClient = nil
	}
	a.redisClient = redisClient

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v (image uploads disabled)", err)
		s3Client = nil
	}
	a.s3Client = s3Client

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil
	}
	a.queueClient = queueClient

	return a, nil
}

func (a *App) Run() error {
	if a.cfg.GinMode != "" {
		gin.SetMode(a.cfg.GinMode)
	}

	// Nil clients must stay nil interfaces
	var images usecase.ImageStorage
	if a.s3Client != nil {
		images = a.s3Client
	}
	var events usecase.EventPublisher
	if a.queueClient != nil {
		events = a.queueClient
	}

	// Initialize use cases
	views := usecase.NewViewCounter(a.postRepo, a.cfg.ViewIncrementTTL, a.log)
	a.postUseCase = usecase.NewPostUseCase(
		a.postRepo,
		a.authorRepo,
		postCache.NewPostCache(a.redisClient, a.cfg.CacheTTL),
		views,
		images,
		events,
		usecase.SettingsFromConfig(a.cfg),
		a.log,
	)
	authUseCase := usecase.NewAuthUseCase(a.authorRepo, a.jwtService, a.log)

	if a.cfg.StoreDriver == config.StoreDriverMemory {
		if err := seed.Run(context.Background(), a.authorRepo, a.postRepo, a.postUseCase, a.log); err != nil {
			a.log.Error("Failed to seed in-memory store: %v", err)
			return err
		}
	}

	// Initialize HTTP handlers
	postHandler := postHTTP.NewPostHandler(a.postUseCase, a.log)
	authHandler := postHTTP.NewAuthHandler(authUseCase, a.log)

	r := NewRouter(a.cfg, a.log, a.jwtService, a.redisClient, postHandler, authHandler)

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Newsdesk service starting on port %s (store: %s)", a.cfg.ServerPort, a.cfg.StoreDriver)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

// NewRouter mounts every route. redisClient may be nil, which disables rate
// limiting.
func NewRouter(
	cfg *config.Config,
	log *logger.Logger,
	jwtService *jwt.Service,
	redisClient *redis.Client,
	postHandler *postHTTP.PostHandler,
	authHandler *postHTTP.AuthHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitPerMinute, time.Minute, log))
	{
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/me", middleware.AuthMiddleware(jwtService), authHandler.Me)

		public := api.Group("")
		public.Use(middleware.OptionalAuthMiddleware(jwtService))
		{
			public.GET("/posts", postHandler.ListPosts)
			public.GET("/posts/slug/:slug", postHandler.GetPostBySlug)
			public.GET("/posts/id/:id", postHandler.GetPostByID)
			public.GET("/posts/popular", postHandler.GetTrending)
			public.GET("/posts/latest", postHandler.GetLatest)
			public.GET("/posts/search", postHandler.SearchPosts)
			public.GET("/posts/author/:authorId", postHandler.GetByAuthor)
			public.GET("/posts/:id/related", postHandler.GetRelated)
			public.GET("/tags", postHandler.ListTags)
			public.GET("/categories", postHandler.ListCategories)
		}

		admin := api.Group("")
		admin.Use(
			middleware.AuthMiddleware(jwtService),
			middleware.RequireRole(string(entity.RoleAuthor), string(entity.RoleSuperAdmin)),
		)
		{
			admin.POST("/posts", postHandler.CreatePost)
			admin.PUT("/posts/:id", postHandler.UpdatePost)
			admin.DELETE("/posts/:id", postHandler.DeletePost)
			admin.POST("/uploads/image", postHandler.UploadImage)
		}
	}

	return r
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down newsdesk service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Stop accepting requests before draining background work
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	if a.postUseCase != nil {
		a.postUseCase.Wait()
	}

	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				a.log.Error("Error closing database: %v", err)
			}
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	a.log.Info("Newsdesk service exited")
	a.log.Sync()
	return nil
}
