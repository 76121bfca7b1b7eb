package server

import (
	"log"
	"strings"
	"time"

	"github.com/reelog/reelog-backend/internal/config"
	"github.com/reelog/reelog-backend/internal/middleware"
	"github.com/reelog/reelog-backend/pkg/storage"

	authHttp "github.com/reelog/reelog-backend/internal/modules/auth/delivery/http"
	authService "github.com/reelog/reelog-backend/internal/modules/auth/service"

	commentHttp "github.com/reelog/reelog-backend/internal/modules/comment/delivery/http"
	commentRepo "github.com/reelog/reelog-backend/internal/modules/comment/repository"
	commentService "github.com/reelog/reelog-backend/internal/modules/comment/service"

	likeHttp "github.com/reelog/reelog-backend/internal/modules/like/delivery/http"
	likeRepo "github.com/reelog/reelog-backend/internal/modules/like/repository"
	likeService "github.com/reelog/reelog-backend/internal/modules/like/service"

	movieHttp "github.com/reelog/reelog-backend/internal/modules/movie/delivery/http"
	movieClient "github.com/reelog/reelog-backend/internal/modules/movie/client"
	movieRepo "github.com/reelog/reelog-backend/internal/modules/movie/repository"
	movieService "github.com/reelog/reelog-backend/internal/modules/movie/service"

	notifHttp "github.com/reelog/reelog-backend/internal/modules/notification/delivery/http"
	notifRepo "github.com/reelog/reelog-backend/internal/modules/notification/repository"
	notifService "github.com/reelog/reelog-backend/internal/modules/notification/service"

	reviewHttp "github.com/reelog/reelog-backend/internal/modules/review/delivery/http"
	reviewRepo "github.com/reelog/reelog-backend/internal/modules/review/repository"
	reviewService "github.com/reelog/reelog-backend/internal/modules/review/service"

	searchHttp "github.com/reelog/reelog-backend/internal/modules/search/delivery/http"
	searchService "github.com/reelog/reelog-backend/internal/modules/search/service"

	userRepo "github.com/reelog/reelog-backend/internal/modules/user/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	users := userRepo.NewUserRepository(db)

	iconStorage, err := storage.NewCloudinaryStorage(cfg.CloudinaryFolder)
	if err != nil {
		// sign-ins still work without icon persistence
		log.Printf("Cloudinary storage unavailable, keeping provider icon URLs: %v", err)
		iconStorage = nil
	}

	meiliHost := cfg.MeiliSearchHost
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	searchSvc := searchService.NewReviewSearchService(meiliClient)
	searchHandler := searchHttp.NewSearchHandler(searchSvc)

	notificationRepository := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notificationRepository, redisClient)
	notificationHandler := notifHttp.NewNotificationHandler(notificationSvc, redisClient)

	authSvc := authService.NewAuthService(cfg, users, iconStorage, notificationSvc)
	authHandler := authHttp.NewAuthHandler(authSvc)

	metadataClient := movieClient.NewTMDBClient(cfg.MovieAPIBaseURL, cfg.MovieAPIKey)
	movieRepository := movieRepo.NewMovieRepository(db)
	movieSvc := movieService.NewMovieService(metadataClient, movieRepository, redisClient, cfg.SearchRateLimit, cfg.SearchCacheTTL)
	movieHandler := movieHttp.NewMovieHandler(movieSvc)

	likeRepository := likeRepo.NewLikeRepository(db)
	reviewRepository := reviewRepo.NewReviewRepository(db)

	reviewSvc := reviewService.NewReviewService(reviewRepository, likeRepository, movieSvc, searchSvc)
	reviewHandler := reviewHttp.NewReviewHandler(reviewSvc)

	commentRepository := commentRepo.NewCommentRepository(db)
	commentSvc := commentService.NewCommentService(commentRepository, reviewRepository, users, notificationSvc)
	commentHandler := commentHttp.NewCommentHandler(commentSvc)

	likeSvc := likeService.NewLikeService(likeRepository, reviewRepository, users, movieSvc, notificationSvc)
	likeHandler := likeHttp.NewLikeHandler(likeSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.GET("/:provider/login", authHandler.Login)
		auth.GET("/:provider/callback", authHandler.Callback)
	}

	// Read side: anonymous allowed, token resolved when present
	public := api.Group("")
	public.Use(authMiddleware.OptionalAuth())
	{
		public.GET("/movies/search", movieHandler.Search)
		public.GET("/movies/:id", movieHandler.GetMovie)
		public.GET("/movies/:id/likes", likeHandler.GetMovieLikes)
		public.GET("/movies/:id/reviews", reviewHandler.ListByMovie)

		public.GET("/reviews/:id", reviewHandler.GetByID)
		public.GET("/reviews/:id/comments", commentHandler.ListByReview)
		public.GET("/reviews/:id/likes", likeHandler.GetReviewLikes)
		public.GET("/users/:actorId/reviews", reviewHandler.ListByAuthor)

		public.GET("/search/reviews", searchHandler.SearchReviews)
	}

	// Every mutation sits behind authentication
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/reviews", reviewHandler.Create)
		protected.PUT("/reviews/:id", reviewHandler.Update)
		protected.DELETE("/reviews/:id", reviewHandler.Delete)

		protected.POST("/reviews/:id/comments", commentHandler.Create)
		protected.PUT("/reviews/:id/comments/:commentId", commentHandler.Update)
		protected.DELETE("/reviews/:id/comments/:commentId", commentHandler.Delete)

		protected.POST("/reviews/:id/likes", likeHandler.LikeReview)
		protected.DELETE("/reviews/:id/likes", likeHandler.UnlikeReview)
		protected.POST("/movies/:id/likes", likeHandler.LikeMovie)
		protected.DELETE("/movies/:id/likes", likeHandler.UnlikeMovie)

		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read", notificationHandler.MarkAllAsRead)
		protected.DELETE("/notifications/:id", notificationHandler.Delete)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
