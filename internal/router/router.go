package router

import (
	"net/http"

	"task-api/internal/config"
	"task-api/internal/handler"
	"task-api/internal/middleware"
	"task-api/internal/repository"
	"task-api/internal/service"
	"task-api/internal/utils"
	"task-api/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRouter wires repositories, services and handlers onto a gin engine.
// limiter may be nil to disable login/register rate limiting.
func SetupRouter(
	cfg *config.Config,
	jwtManager *utils.JWTManager,
	logger *logrus.Logger,
	db *gorm.DB,
	tokens service.TokenStore,
	limiter middleware.Limiter,
	store storage.Storage,
) *gin.Engine {
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}
	utils.InitValidator()

	r := gin.New()

	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg))

	// health check
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Task API",
			"version": "1.0.0",
		})
	})

	if cfg.Storage.Driver == "local" && cfg.Storage.LocalPath != "" {
		r.Static("/storage", cfg.Storage.LocalPath)
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	authService := service.NewAuthService(userRepo, jwtManager, tokens, cfg, logger)
	profileService := service.NewProfileService(profileRepo, userRepo, store, cfg.Storage.MaxSizeBytes(), logger)
	taskService := service.NewTaskService(taskRepo, userRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)

	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	taskHandler := handler.NewTaskHandler(taskService)
	categoryHandler := handler.NewCategoryHandler(categoryService)

	api := r.Group("/api")
	{
		// public
		public := api.Group("")
		if limiter != nil {
			public.Use(middleware.RateLimit(limiter, "auth", logger))
		}
		public.POST("/register", authHandler.Register)
		if limiter != nil {
			public.POST("/login", middleware.ResetLimitOnSuccess(limiter, "auth", logger), authHandler.Login)
		} else {
			public.POST("/login", authHandler.Login)
		}

		authorized := api.Group("")
		authorized.Use(middleware.AuthMiddleware(authService))
		{
			authorized.POST("/logout", authHandler.Logout)
			authorized.GET("/user", authHandler.GetMe)
			authorized.GET("/user/tasks/:id", taskHandler.ListByUser)

			// profiles
			authorized.POST("/profiles", profileHandler.Create)
			authorized.GET("/profiles/:id", profileHandler.Show)
			authorized.PUT("/profiles/:id", profileHandler.Update)
			authorized.GET("/profiles/user/:id", profileHandler.GetByUser)

			// tasks
			authorized.GET("/tasks", taskHandler.List)
			authorized.POST("/tasks", taskHandler.Create)
			authorized.GET("/tasks/all", middleware.AdminMiddleware(), taskHandler.ListAll)
			authorized.GET("/tasks/favorites", taskHandler.ListFavorites)
			authorized.GET("/tasks/:id", taskHandler.Get)
			authorized.PUT("/tasks/:id", taskHandler.Update)
			authorized.DELETE("/tasks/:id", taskHandler.Delete)
			authorized.GET("/tasks/user/:id", taskHandler.GetOwner)
			authorized.POST("/tasks/:id/favorite", taskHandler.AddFavorite)
			authorized.DELETE("/tasks/:id/favorite", taskHandler.RemoveFavorite)
			authorized.POST("/tasks/categories/:id", taskHandler.AddCategory)
			authorized.GET("/tasks/categories/:id", taskHandler.GetCategories)

			// categories
			authorized.POST("/categories", categoryHandler.Create)
			authorized.GET("/categories/tasks/:id", categoryHandler.GetTasks)
		}
	}

	return r
}
