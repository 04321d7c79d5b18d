package constants

// Context and session keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyRole     = "role"
	SessionCookieName  = "activity_session"
)

// Account rules
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 6
	DefaultAvatar     = "👤"
)

// Pagination. Pages are zero-based.
const (
	DefaultPage     = 0
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Activities
const (
	DefaultActivityTitle    = "Task"
	DefaultInteractionLimit = 50
	MaxAIGeneratedTasks     = 20
)
