package main

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/activity-tracker-api/internal/auth"
	"github.com/yukikurage/activity-tracker-api/internal/config"
	"github.com/yukikurage/activity-tracker-api/internal/constants"
	"github.com/yukikurage/activity-tracker-api/internal/handlers"
	"github.com/yukikurage/activity-tracker-api/internal/middleware"
	"github.com/yukikurage/activity-tracker-api/internal/repository"
	"github.com/yukikurage/activity-tracker-api/internal/scheduler"
	"github.com/yukikurage/activity-tracker-api/internal/services"
)

type routerDeps struct {
	cfg          *config.Config
	logger       *slog.Logger
	redis        *redis.Client
	sessionStore sessions.Store
	jwtService   *auth.JWTService
	userRepo     repository.UserRepository

	authService        *services.AuthService
	resetService       *services.PasswordResetService
	activityService    *services.ActivityService
	userService        *services.UserService
	eventService       *services.EventService
	interactionService *services.InteractionService
	analyticsService   *services.AnalyticsService
	aiService          *services.AIService
	overdueJob         *scheduler.OverdueJob
}

func setupRouter(d routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.logger))
	r.Use(sessions.Sessions(constants.SessionCookieName, d.sessionStore))

	files := handlers.NewProfileFiles(d.cfg.UploadPath)

	authHandler := handlers.NewAuthHandler(d.authService, d.resetService, files)
	activityHandler := handlers.NewActivityHandler(d.activityService)
	taskHandler := handlers.NewTaskHandler(d.activityService, d.userService, d.aiService, d.overdueJob)
	eventHandler := handlers.NewEventHandler(d.eventService)
	interactionHandler := handlers.NewInteractionHandler(d.interactionService)
	analyticsHandler := handlers.NewAnalyticsHandler(d.analyticsService)
	userHandler := handlers.NewUserHandler(d.userService)
	fileHandler := handlers.NewFileHandler(files)

	requireAuth := middleware.RequireAuth(d.jwtService, d.userRepo)
	requireManager := middleware.RequireManager()
	limit := func(name string) gin.HandlerFunc {
		return middleware.RateLimit(d.redis, d.logger, name, d.cfg.RateLimitRequests, d.cfg.RateLimitWindow())
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Activity Tracker API is running",
		})
	})

	r.GET("/files/profiles/:filename", fileHandler.GetProfilePicture)

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", limit("login"), authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.POST("/forgot-password", limit("forgot-password"), authHandler.ForgotPassword)
			authGroup.POST("/reset-password", limit("reset-password"), authHandler.ResetPassword)
			authGroup.GET("/validate-reset-token/:token", authHandler.ValidateResetToken)
			authGroup.GET("/me", requireAuth, authHandler.GetCurrentUser)
			authGroup.PUT("/profile", requireAuth, authHandler.UpdateProfile)
		}

		activities := api.Group("/activities")
		activities.Use(requireAuth)
		{
			activities.GET("", activityHandler.ListActivities)
			activities.GET("/status/:status", activityHandler.ListByStatus)
			activities.POST("", requireManager, activityHandler.CreateActivity)
			activities.PUT("/:id", requireManager, activityHandler.UpdateActivity)
			activities.DELETE("/:id", requireManager, activityHandler.DeleteActivity)
		}

		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.POST("/assign", requireManager, taskHandler.AssignTask)
			tasks.GET("/calendar", taskHandler.GetCalendarTasks)
			tasks.GET("/in-progress", taskHandler.GetInProgress)
			tasks.GET("/by-date", taskHandler.GetByDate)
			tasks.GET("/by-date-detailed", taskHandler.GetByDateDetailed)
			tasks.GET("/user-tasks", taskHandler.GetUserTasks)
			tasks.GET("/user-tasks-by-date", taskHandler.GetUserTasksByDate)
			tasks.GET("/history", taskHandler.GetHistory)
			tasks.GET("/others-incoming", taskHandler.GetOthersIncoming)
			tasks.GET("/staff", requireManager, taskHandler.GetStaff)
			tasks.POST("/overdue/run", requireManager, taskHandler.RunOverdue)
			tasks.POST("/generate", requireManager, taskHandler.GenerateTasks)
			tasks.GET("/:id", middleware.RequireActivityAccess(d.activityService), taskHandler.GetTask)
			tasks.PUT("/:id", requireManager, taskHandler.UpdateTask)
			tasks.DELETE("/:id", requireManager, taskHandler.DeleteTask)
		}

		events := api.Group("/events")
		events.Use(requireAuth)
		{
			events.GET("", eventHandler.ListEvents)
			events.GET("/search", eventHandler.SearchEvents)
			events.POST("", eventHandler.CreateEvent)
			events.PUT("/:id", eventHandler.UpdateEvent)
			events.DELETE("/:id", eventHandler.DeleteEvent)
		}

		interactions := api.Group("/interactions")
		interactions.Use(requireAuth)
		{
			interactions.GET("", interactionHandler.ListRecent)
			interactions.POST("", interactionHandler.CreateInteraction)
			interactions.GET("/type/:type", interactionHandler.ListByType)
		}

		api.GET("/analytics", requireAuth, analyticsHandler.GetAnalytics)

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("/all", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id/role", requireManager, userHandler.UpdateRole)
		}
	}

	return r
}
