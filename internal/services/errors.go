package services

import "errors"

// Error kinds. Every sentinel below wraps exactly one of them so callers can
// classify with errors.Is. Anything else returned by a service is a store failure.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

var (
	ErrActivityNotFound   = notFound("activity not found")
	ErrAssigneeNotFound   = notFound("assigned user not found")
	ErrUserNotFound       = notFound("user not found")
	ErrEventNotFound      = notFound("event not found")
	ErrResetTokenNotFound = notFound("invalid or expired reset token")

	ErrInvalidStatus       = invalidArgument("invalid activity status")
	ErrInvalidPriority     = invalidArgument("invalid activity priority")
	ErrInvalidRole         = invalidArgument("invalid user role")
	ErrInvalidDate         = invalidArgument("invalid date, expected YYYY-MM-DD")
	ErrInvalidPage         = invalidArgument("invalid page request")
	ErrDescriptionRequired = invalidArgument("description is required")
	ErrDateRequired        = invalidArgument("date is required")
	ErrAssigneeRequired    = invalidArgument("assigned user is required")
	ErrTitleRequired       = invalidArgument("title is required")
	ErrTypeRequired        = invalidArgument("interaction type is required")
	ErrQueryRequired       = invalidArgument("search query is required")
	ErrUsernameInvalid     = invalidArgument("username must be between 3 and 50 characters")
	ErrEmailRequired       = invalidArgument("email is required")
	ErrPasswordTooShort    = invalidArgument("password too short")
	ErrTokenRequired       = invalidArgument("token is required")
)

var (
	ErrUsernameTaken          = errors.New("username already exists")
	ErrEmailTaken             = errors.New("email already exists")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrFailedToHashPassword   = errors.New("failed to hash password")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
)

// kindError is a sentinel that classifies as its kind under errors.Is.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func notFound(msg string) error {
	return &kindError{kind: ErrNotFound, msg: msg}
}

func invalidArgument(msg string) error {
	return &kindError{kind: ErrInvalidArgument, msg: msg}
}
