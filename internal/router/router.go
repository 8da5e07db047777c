package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/socialpicture/backend/internal/handlers"
	"github.com/socialpicture/backend/internal/middleware"
	"github.com/socialpicture/backend/internal/models"
	"github.com/socialpicture/backend/internal/repositories"
	"github.com/socialpicture/backend/internal/services"
	"github.com/socialpicture/backend/pkg/config"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config) {
	// AutoMigrate models
	err := db.AutoMigrate(
		&models.User{},
		&models.Image{},
		&models.Comment{},
		&models.CommentLike{},
		&models.Like{},
		&models.Follow{},
		&models.SavedImage{},
		&models.Tag{},
		&models.ImageTag{},
		&models.Report{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("Auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	imageRepo := repositories.NewPostgresImageRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	commentLikeRepo := repositories.NewPostgresCommentLikeRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	savedImageRepo := repositories.NewPostgresSavedImageRepository(db)
	tagRepo := repositories.NewPostgresTagRepository(db)
	reportRepo := repositories.NewPostgresReportRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	// --- Initialize Services ---
	urls := services.NewURLResolver(cfg.PublicBaseURL)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, likeRepo, commentLikeRepo, commentRepo, reportRepo, urls)
	imageService := services.NewImageService(imageRepo, userRepo, likeRepo, commentRepo, commentLikeRepo, savedImageRepo, tagRepo, reportRepo, followRepo, urls)
	commentService := services.NewCommentService(commentRepo, commentLikeRepo, imageRepo, userRepo, notificationService, urls)
	commentLikeService := services.NewCommentLikeService(commentLikeRepo, commentRepo, userRepo, notificationService, urls)
	likeService := services.NewLikeService(likeRepo, imageRepo, userRepo, notificationService, urls)
	followService := services.NewFollowService(followRepo, userRepo, notificationService, urls)
	savedImageService := services.NewSavedImageService(savedImageRepo, imageRepo, imageService)
	tagService := services.NewTagService(tagRepo, imageRepo, userRepo, imageService)
	reportService := services.NewReportService(reportRepo, imageRepo, userRepo, notificationService, urls)
	userService := services.NewUserService(userRepo, imageRepo, followRepo, urls)
	searchService := services.NewSearchService(userRepo, imageRepo, imageService, urls)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(authService)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	userHandler := handlers.NewUserHandler(userService)
	userHandler.RegisterUserRoutes(api)

	imageHandler := handlers.NewImageHandler(imageService)
	imageHandler.RegisterImageRoutes(api)

	commentHandler := handlers.NewCommentHandler(commentService)
	commentHandler.RegisterCommentRoutes(api)

	commentLikeHandler := handlers.NewCommentLikeHandler(commentLikeService)
	commentLikeHandler.RegisterCommentLikeRoutes(api)

	likeHandler := handlers.NewLikeHandler(likeService)
	likeHandler.RegisterLikeRoutes(api)

	followHandler := handlers.NewFollowHandler(followService)
	followHandler.RegisterFollowRoutes(api)

	savedImageHandler := handlers.NewSavedImageHandler(savedImageService)
	savedImageHandler.RegisterSavedImageRoutes(api)

	tagHandler := handlers.NewTagHandler(tagService)
	tagHandler.RegisterTagRoutes(api)

	reportHandler := handlers.NewReportHandler(reportService)
	reportHandler.RegisterReportRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationService)
	notificationHandler.RegisterNotificationRoutes(api)

	searchHandler := handlers.NewSearchHandler(searchService)
	searchHandler.RegisterSearchRoutes(api)

	log.Println("All routes configured.")
}
