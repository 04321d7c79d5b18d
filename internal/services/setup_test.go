package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/activity-tracker-api/internal/auth"
	"github.com/yukikurage/activity-tracker-api/internal/database"
	"github.com/yukikurage/activity-tracker-api/internal/models"
	"github.com/yukikurage/activity-tracker-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db              *gorm.DB
	ctx             context.Context
	users           repository.UserRepository
	activities      repository.ActivityRepository
	events          repository.EventRepository
	interactions    repository.InteractionRepository
	tokens          repository.PasswordResetTokenRepository
	jwt             *auth.JWTService
	activityService *ActivityService
	authService     *AuthService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(database.Models()...))

	env := &testEnv{
		db:           db,
		ctx:          context.Background(),
		users:        repository.NewUserRepository(db),
		activities:   repository.NewActivityRepository(db),
		events:       repository.NewEventRepository(db),
		interactions: repository.NewInteractionRepository(db),
		tokens:       repository.NewPasswordResetTokenRepository(db),
		jwt:          auth.NewJWTService("test-secret", time.Hour),
	}
	env.activityService = NewActivityService(env.activities, env.users)
	env.authService = NewAuthService(env.users, env.jwt)
	return env
}

func (e *testEnv) createUser(t *testing.T, username string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, e.users.Create(e.ctx, user))
	return user
}

func (e *testEnv) createActivity(t *testing.T, assignee string, date models.Date, status models.ActivityStatus) *models.Activity {
	t.Helper()

	activity, err := e.activityService.CreateActivity(e.ctx, CreateActivityInput{
		AssignedUser: assignee,
		Title:        "Task for " + assignee,
		Date:         date,
		Description:  "Do the thing",
		Status:       status,
	})
	require.NoError(t, err)
	return activity
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
