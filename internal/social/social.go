package social

import (
	"context"
	"time"
)

// Comment on an event. Username is denormalized at read time for display.
type Comment struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the persistence contract for comments and likes.
type Store interface {
	InsertComment(ctx context.Context, c *Comment) error
	GetComment(ctx context.Context, id string) (*Comment, error)
	ListComments(ctx context.Context, eventID string) ([]*Comment, error)
	DeleteComment(ctx context.Context, id string) error

	InsertLike(ctx context.Context, eventID, userID string) error
	DeleteLike(ctx context.Context, eventID, userID string) error
	HasLike(ctx context.Context, eventID, userID string) (bool, error)
	CountLikes(ctx context.Context, eventID string) (int, error)

	EventExists(ctx context.Context, eventID string) (bool, error)
}
