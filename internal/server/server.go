package server

import (
	"context"
	"net/http"
	"time"

	"github.com/Goodnessmbakara/skillsverse/internal/config"
	"github.com/Goodnessmbakara/skillsverse/internal/middleware"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/match/scoring"
	"github.com/Goodnessmbakara/skillsverse/pkg/metrics"
	"github.com/Goodnessmbakara/skillsverse/pkg/ratelimit"
	"github.com/Goodnessmbakara/skillsverse/pkg/storage"

	authHttp "github.com/Goodnessmbakara/skillsverse/internal/modules/auth/delivery/http"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/auth/identity"
	authService "github.com/Goodnessmbakara/skillsverse/internal/modules/auth/service"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/auth/session"

	"github.com/Goodnessmbakara/skillsverse/internal/modules/chain/client"
	chainHttp "github.com/Goodnessmbakara/skillsverse/internal/modules/chain/delivery/http"
	chainService "github.com/Goodnessmbakara/skillsverse/internal/modules/chain/service"

	jobHttp "github.com/Goodnessmbakara/skillsverse/internal/modules/job/delivery/http"
	jobRepo "github.com/Goodnessmbakara/skillsverse/internal/modules/job/repository"
	jobService "github.com/Goodnessmbakara/skillsverse/internal/modules/job/service"

	leaderboardHttp "github.com/Goodnessmbakara/skillsverse/internal/modules/leaderboard/delivery/http"
	leaderboardService "github.com/Goodnessmbakara/skillsverse/internal/modules/leaderboard/service"

	learningHttp "github.com/Goodnessmbakara/skillsverse/internal/modules/learning/delivery/http"
	learningRepo "github.com/Goodnessmbakara/skillsverse/internal/modules/learning/repository"
	learningService "github.com/Goodnessmbakara/skillsverse/internal/modules/learning/service"

	matchHttp "github.com/Goodnessmbakara/skillsverse/internal/modules/match/delivery/http"
	matchRepo "github.com/Goodnessmbakara/skillsverse/internal/modules/match/repository"
	matchService "github.com/Goodnessmbakara/skillsverse/internal/modules/match/service"

	notiHttp "github.com/Goodnessmbakara/skillsverse/internal/modules/notification/delivery/http"
	notifRepo "github.com/Goodnessmbakara/skillsverse/internal/modules/notification/repository"
	notifService "github.com/Goodnessmbakara/skillsverse/internal/modules/notification/service"

	searchService "github.com/Goodnessmbakara/skillsverse/internal/modules/search/service"

	statHttp "github.com/Goodnessmbakara/skillsverse/internal/modules/stat/delivery/http"
	statService "github.com/Goodnessmbakara/skillsverse/internal/modules/stat/service"

	userHttp "github.com/Goodnessmbakara/skillsverse/internal/modules/user/delivery/http"
	userRepo "github.com/Goodnessmbakara/skillsverse/internal/modules/user/repository"
	userService "github.com/Goodnessmbakara/skillsverse/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the process-wide resources the server is built from. Redis,
// Storage and Index may be nil.
type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	Redis   *redis.Client
	Storage storage.ImageStorage
	Index   searchService.JobIndex
	Chain   client.Node
	Metrics *metrics.Metrics
}

type Server struct {
	engine *gin.Engine
	jobs   jobService.JobService
}

func NewServer(deps Deps) *Server {
	cfg := deps.Config
	if deps.Index == nil {
		deps.Index = searchService.NewJobIndex("", "")
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	scorer := scoring.New(cfg.MatchScorer)

	userRepository := userRepo.NewUserRepository(deps.DB)
	userSvc := userService.NewUserService(userRepository, deps.Storage)
	userHandler := userHttp.NewUserHandler(userSvc)

	jobRepository := jobRepo.NewJobRepository(deps.DB)
	jobSvc := jobService.NewJobService(jobRepository, userRepository, deps.Index)
	jobHandler := jobHttp.NewJobHandler(jobSvc)

	// Notification Module
	notificationRepository := notifRepo.NewNotificationRepository(deps.DB)
	notificationSvc := notifService.NewNotificationService(notificationRepository, deps.Redis)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, deps.Redis, cfg.AllowedOrigins)

	matchRepository := matchRepo.NewMatchRepository(deps.DB)
	matchSvc := matchService.NewMatchService(
		matchRepository,
		userRepository,
		jobRepository,
		matchService.Options{
			Scorer:          scorer,
			Limiter:         ratelimit.New(deps.Redis),
			RateLimitWindow: cfg.RateLimitMatch,
			Notifier:        notificationSvc,
			Metrics:         deps.Metrics,
		},
	)
	matchHandler := matchHttp.NewMatchHandler(matchSvc)

	learningRepository := learningRepo.NewLearningResourceRepository(deps.DB)
	learningSvc := learningService.NewLearningService(learningRepository)
	learningHandler := learningHttp.NewLearningHandler(learningSvc)

	leaderboardSvc := leaderboardService.NewLeaderboardService(userRepository)
	leaderboardHandler := leaderboardHttp.NewLeaderboardHandler(leaderboardSvc)

	statSvc := statService.NewStatService(userRepository, jobRepository, matchRepository, learningRepository)
	statHandler := statHttp.NewStatHandler(statSvc)

	sessionStore := session.NewRedisStore(deps.Redis, cfg.SessionTTL)
	sessions := middleware.NewSessionMiddleware(sessionStore, cfg.CookieName, cfg.SecureCookie, cfg.SessionTTL)

	authSvc := authService.NewAuthService(authService.Options{
		Store:        sessionStore,
		Epochs:       deps.Chain,
		Prover:       identity.NewProver(cfg.JWTSecret, cfg.SessionTTL),
		Providers:    authService.DefaultProviders(cfg.GoogleClientID, cfg.FacebookClientID, cfg.TwitchClientID),
		RedirectBase: cfg.OAuthRedirectBase,
	})
	authHandler := authHttp.NewAuthHandler(authSvc, cfg.FrontendURL)

	chainSvc := chainService.NewChainService(deps.Chain, cfg.ChainPackageID, scorer)
	chainHandler := chainHttp.NewChainHandler(chainSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	router.Use(deps.Metrics.Middleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", deps.Metrics.Handler())

	api := router.Group("/api")
	{
		api.POST("/users", userHandler.CreateUser)
		api.GET("/users/by-username/:username", userHandler.GetUserByUsername)
		api.GET("/users/:id", userHandler.GetUser)
		api.PATCH("/users/:id/reputation", sessions.Load(), middleware.RequireSession(), userHandler.UpdateReputation)
		api.POST("/users/:id/avatar", userHandler.UploadAvatar)

		api.POST("/jobs", jobHandler.CreateJob)
		api.GET("/jobs", jobHandler.GetJobs)
		api.GET("/jobs/search", jobHandler.SearchJobs)
		api.GET("/jobs/:id", jobHandler.GetJob)

		api.POST("/matches", matchHandler.CreateMatch)
		api.GET("/matches/user/:userId", matchHandler.GetMatchesByUser)
		api.GET("/matches/job/:jobId", matchHandler.GetMatchesByJob)
		api.PATCH("/matches/:id/status", matchHandler.UpdateStatus)

		api.POST("/learning-resources", learningHandler.CreateResource)
		api.GET("/learning-resources", learningHandler.GetResources)

		api.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
		api.GET("/stats", statHandler.GetStats)

		api.GET("/notifications/user/:userId", notificationHandler.GetNotifications)
		api.GET("/notifications/user/:userId/unread-count", notificationHandler.UnreadCount)
		api.PATCH("/notifications/user/:userId/read-all", notificationHandler.MarkAllAsRead)
		api.PATCH("/notifications/:id/read", notificationHandler.MarkAsRead)
		api.GET("/notifications/ws", notificationHandler.HandleWebSocket)

		chain := api.Group("/chain")
		chain.Use(sessions.Load(), middleware.RequireSession())
		{
			chain.GET("/profile", chainHandler.GetProfile)
			chain.GET("/jobs", chainHandler.GetJobs)
			chain.GET("/jobs/posted", chainHandler.GetPostedJobs)
			chain.GET("/matches", chainHandler.GetMatches)
			chain.GET("/kiosk", chainHandler.GetKiosk)
			chain.GET("/name", chainHandler.GetName)
		}
	}

	auth := router.Group("/auth")
	auth.Use(sessions.Load())
	{
		auth.GET("/callback", authHandler.Callback)
		auth.POST("/complete", authHandler.CompleteLogin)
		auth.POST("/wallet", authHandler.WalletLogin)
		auth.GET("/status", authHandler.Status)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/:provider/login", authHandler.ProviderLogin)
		auth.GET("/:provider/return", authHandler.ProviderReturn)
	}

	return &Server{
		engine: router,
		jobs:   jobSvc,
	}
}

// Handler exposes the router for tests and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ReindexSearch pushes every stored job to the search index.
func (s *Server) ReindexSearch(ctx context.Context) error {
	return s.jobs.ReindexAll(ctx)
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
