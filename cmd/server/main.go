package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/mgiannak/office-tasks/internal/config"
	"github.com/mgiannak/office-tasks/internal/constants"
	"github.com/mgiannak/office-tasks/internal/database"
	"github.com/mgiannak/office-tasks/internal/handlers"
	"github.com/mgiannak/office-tasks/internal/middleware"
	"github.com/mgiannak/office-tasks/internal/repository"
	"github.com/mgiannak/office-tasks/internal/services"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Optional rotating log file
	if cfg.LogFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
		})
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Session store: cookie by default, redis when configured
	var store sessions.Store
	if cfg.RedisAddr != "" {
		store, err = redisStore.NewStore(10, "tcp", cfg.RedisAddr, "", []byte(cfg.SessionSecret))
		if err != nil {
			log.Fatalf("Failed to create Redis store: %v", err)
		}
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo)
	statsService := services.NewStatsService(userRepo, projectRepo, taskRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	publicHandler := handlers.NewPublicHandler(statsService, userService, projectService, taskService)
	adminUserHandler := handlers.NewAdminUserHandler(userService)
	adminProjectHandler := handlers.NewAdminProjectHandler(projectService)
	adminTaskHandler := handlers.NewAdminTaskHandler(taskService, projectService, userService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Office task tracker is running",
		})
	})

	// Public routes (read-only, unauthenticated)
	r.GET("/", publicHandler.Dashboard)
	r.GET("/users", publicHandler.ListUsers)
	r.GET("/users/:id", publicHandler.GetUser)
	r.GET("/projects", publicHandler.ListProjects)
	r.GET("/projects/:id", publicHandler.GetProject)
	r.GET("/tasks", publicHandler.ListTasks)
	r.GET("/tasks/:id", publicHandler.GetTask)

	// Admin routes (session-gated mutations)
	admin := r.Group("/admin")
	{
		admin.POST("/login", authHandler.Login)
		admin.POST("/logout", authHandler.Logout)

		admin.GET("", middleware.RequireAdmin("/"), adminUserHandler.List)

		users := admin.Group("/users", middleware.RequireAdmin("/users"))
		{
			users.GET("", adminUserHandler.List)
			users.POST("", adminUserHandler.Create)
			users.POST("/:id", adminUserHandler.Update)
		}

		projects := admin.Group("/projects", middleware.RequireAdmin("/projects"))
		{
			projects.GET("", adminProjectHandler.List)
			projects.POST("", adminProjectHandler.Create)
			projects.POST("/:id", adminProjectHandler.Update)
			projects.GET("/:id/attachments", adminProjectHandler.ListAttachments)
			projects.POST("/:id/attachments", adminProjectHandler.CreateAttachment)
		}

		tasks := admin.Group("/tasks", middleware.RequireAdmin("/tasks"))
		{
			tasks.GET("", adminTaskHandler.List)
			tasks.GET("/options", adminTaskHandler.Options)
			tasks.POST("", adminTaskHandler.Create)
			tasks.POST("/:id", adminTaskHandler.Update)
			tasks.POST("/:id/comments", adminTaskHandler.CreateComment)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
