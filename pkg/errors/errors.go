package errors

import "errors"

var (
	// Event errors
	ErrEventNotFound   = errors.New("event not found")
	ErrNotEventCreator = errors.New("only the event creator can do that")

	// Participation errors
	ErrAlreadyJoined    = errors.New("already joined this event")
	ErrCapacityExceeded = errors.New("event is full")

	// User / auth errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")

	// Validation errors
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidLatitude    = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude   = errors.New("longitude must be between -180 and 180")
	ErrInvalidOffset      = errors.New("max offset must be positive")
	ErrInvalidTitle       = errors.New("title must be 1-120 characters")
	ErrInvalidAddress     = errors.New("address cannot be empty")
	ErrInvalidCapacity    = errors.New("max participants must be between 1 and 10000")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidPassword    = errors.New("password must be at least 6 characters")
	ErrInvalidName        = errors.New("name must be 2-50 characters")
	ErrEmptyComment       = errors.New("comment cannot be empty")
	ErrCommentTooLong     = errors.New("comment must be at most 1000 characters")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrNotCommentAuthor   = errors.New("only the comment author can delete it")

	// Rate limit errors
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// Storage errors
	ErrStorageUnavailable = errors.New("storage unavailable")
)

type AppError struct {
	Err        error
	Message    string
	StatusCode int
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, statusCode int) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: statusCode,
	}
}
