package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/activity-tracker-api/internal/auth"
	"github.com/yukikurage/activity-tracker-api/internal/constants"
	"github.com/yukikurage/activity-tracker-api/internal/database"
	"github.com/yukikurage/activity-tracker-api/internal/logger"
	"github.com/yukikurage/activity-tracker-api/internal/mail"
	"github.com/yukikurage/activity-tracker-api/internal/middleware"
	"github.com/yukikurage/activity-tracker-api/internal/models"
	"github.com/yukikurage/activity-tracker-api/internal/repository"
	"github.com/yukikurage/activity-tracker-api/internal/scheduler"
	"github.com/yukikurage/activity-tracker-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testNow is noon on 2024-06-01 local time. Every clock in the env uses it.
var testNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.Local)

// recordingMailer keeps every reset email instead of sending it.
type recordingMailer struct {
	mu   sync.Mutex
	sent []mail.PasswordReset
}

func (m *recordingMailer) SendPasswordReset(_ context.Context, msg mail.PasswordReset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) last() (mail.PasswordReset, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return mail.PasswordReset{}, false
	}
	return m.sent[len(m.sent)-1], true
}

type handlerTestEnv struct {
	db     *gorm.DB
	ctx    context.Context
	router *gin.Engine
	jwt    *auth.JWTService
	mailer *recordingMailer

	users           repository.UserRepository
	activities      repository.ActivityRepository
	activityService *services.ActivityService
	authService     *services.AuthService
}

func setupHandlerTestEnv(t *testing.T) *handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})
	require.NoError(t, db.AutoMigrate(database.Models()...))

	clock := func() time.Time { return testNow }
	log := logger.Discard()

	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	eventRepo := repository.NewEventRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	tokenRepo := repository.NewPasswordResetTokenRepository(db)

	jwtService := auth.NewJWTService("test-secret", time.Hour)
	mailer := &recordingMailer{}

	activityService := services.NewActivityService(activityRepo, userRepo).WithClock(clock)
	userService := services.NewUserService(userRepo)
	eventService := services.NewEventService(eventRepo)
	interactionService := services.NewInteractionService(interactionRepo)
	authService := services.NewAuthService(userRepo, jwtService)
	resetService := services.NewPasswordResetService(userRepo, tokenRepo, mailer, "http://localhost:3000", 30*time.Minute).WithClock(clock)
	analyticsService := services.NewAnalyticsService(interactionService, eventService, userService, activityService)
	overdueJob := scheduler.NewOverdueJob(activityRepo, log).WithClock(clock)

	files := NewProfileFiles(t.TempDir())

	authHandler := NewAuthHandler(authService, resetService, files)
	activityHandler := NewActivityHandler(activityService)
	taskHandler := NewTaskHandler(activityService, userService, services.NewAIService(""), overdueJob)
	eventHandler := NewEventHandler(eventService)
	interactionHandler := NewInteractionHandler(interactionService)
	analyticsHandler := NewAnalyticsHandler(analyticsService)
	userHandler := NewUserHandler(userService)

	requireAuth := middleware.RequireAuth(jwtService, userRepo)
	requireManager := middleware.RequireManager()

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.POST("/forgot-password", authHandler.ForgotPassword)
	authGroup.POST("/reset-password", authHandler.ResetPassword)
	authGroup.GET("/validate-reset-token/:token", authHandler.ValidateResetToken)
	authGroup.GET("/me", requireAuth, authHandler.GetCurrentUser)
	authGroup.PUT("/profile", requireAuth, authHandler.UpdateProfile)

	activities := api.Group("/activities", requireAuth)
	activities.GET("", activityHandler.ListActivities)
	activities.GET("/status/:status", activityHandler.ListByStatus)
	activities.POST("", requireManager, activityHandler.CreateActivity)
	activities.PUT("/:id", requireManager, activityHandler.UpdateActivity)
	activities.DELETE("/:id", requireManager, activityHandler.DeleteActivity)

	tasks := api.Group("/tasks", requireAuth)
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
	tasks.GET("/:id", middleware.RequireActivityAccess(activityService), taskHandler.GetTask)
	tasks.PUT("/:id", requireManager, taskHandler.UpdateTask)
	tasks.DELETE("/:id", requireManager, taskHandler.DeleteTask)

	events := api.Group("/events", requireAuth)
	events.GET("", eventHandler.ListEvents)
	events.GET("/search", eventHandler.SearchEvents)
	events.POST("", eventHandler.CreateEvent)
	events.PUT("/:id", eventHandler.UpdateEvent)
	events.DELETE("/:id", eventHandler.DeleteEvent)

	interactions := api.Group("/interactions", requireAuth)
	interactions.GET("", interactionHandler.ListRecent)
	interactions.POST("", interactionHandler.CreateInteraction)
	interactions.GET("/type/:type", interactionHandler.ListByType)

	api.GET("/analytics", requireAuth, analyticsHandler.GetAnalytics)

	users := api.Group("/users", requireAuth)
	users.GET("/all", userHandler.ListUsers)
	users.GET("/:id", userHandler.GetUser)
	users.PUT("/:id/role", requireManager, userHandler.UpdateRole)

	return &handlerTestEnv{
		db:              db,
		ctx:             context.Background(),
		router:          r,
		jwt:             jwtService,
		mailer:          mailer,
		users:           userRepo,
		activities:      activityRepo,
		activityService: activityService,
		authService:     authService,
	}
}

// createUser registers an account with password "password123" and the given role.
func (e *handlerTestEnv) createUser(t *testing.T, username string, role models.UserRole) *models.User {
	t.Helper()

	user, err := e.authService.Register(e.ctx, services.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	if role != user.Role {
		user.Role = role
		require.NoError(t, e.users.Update(e.ctx, user))
	}
	return user
}

func (e *handlerTestEnv) createActivity(t *testing.T, assignee string, date models.Date, status models.ActivityStatus) *models.Activity {
	t.Helper()

	activity, err := e.activityService.CreateActivity(e.ctx, services.CreateActivityInput{
		AssignedUser: assignee,
		Title:        "Task for " + assignee,
		Date:         date,
		Description:  "Do the thing",
		Status:       status,
	})
	require.NoError(t, err)
	return activity
}

func (e *handlerTestEnv) token(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := e.jwt.GenerateToken(user.ID, user.Username, string(user.Role))
	require.NoError(t, err)
	return token
}

// do sends a request through the router. A nil user sends no credentials.
func (e *handlerTestEnv) do(t *testing.T, method, url string, body interface{}, user *models.User) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, url, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	if user != nil {
		req.Header.Set("Authorization", "Bearer "+e.token(t, user))
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
