package social

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/mysterymeet/backend/pkg/errors"
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// AddComment posts a comment on an event.
func (s *Service) AddComment(ctx context.Context, eventID, userID, text string) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.ErrEmptyComment
	}

	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:        uuid.New().String(),
		EventID:   eventID,
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.InsertComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	return comment, nil
}

// ListComments returns an event's comments, newest first.
func (s *Service) ListComments(ctx context.Context, eventID string) ([]*Comment, error) {
	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.store.ListComments(ctx, eventID)
}

// DeleteComment removes a comment; only its author may do so.
func (s *Service) DeleteComment(ctx context.Context, commentID, callerID string) error {
	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != callerID {
		return apperrors.ErrNotCommentAuthor
	}

	return s.store.DeleteComment(ctx, commentID)
}

// ToggleLike likes the event if the user has not liked it yet, otherwise
// removes the like. Returns whether the event is liked afterwards, plus the
// new count.
func (s *Service) ToggleLike(ctx context.Context, eventID, userID string) (bool, int, error) {
	if err := s.requireEvent(ctx, eventID); err != nil {
		return false, 0, err
	}

	liked, err := s.store.HasLike(ctx, eventID, userID)
	if err != nil {
		return false, 0, fmt.Errorf("failed to check like: %w", err)
	}

	if liked {
		err = s.store.DeleteLike(ctx, eventID, userID)
	} else {
		err = s.store.InsertLike(ctx, eventID, userID)
	}
	if err != nil {
		return false, 0, fmt.Errorf("failed to toggle like: %w", err)
	}

	count, err := s.store.CountLikes(ctx, eventID)
	if err != nil {
		return false, 0, fmt.Errorf("failed to count likes: %w", err)
	}

	return !liked, count, nil
}

// HasLiked reports whether the user has liked the event.
func (s *Service) HasLiked(ctx context.Context, eventID, userID string) (bool, error) {
	if err := s.requireEvent(ctx, eventID); err != nil {
		return false, err
	}
	return s.store.HasLike(ctx, eventID, userID)
}

// CountLikes returns the like count for an event.
func (s *Service) CountLikes(ctx context.Context, eventID string) (int, error) {
	if err := s.requireEvent(ctx, eventID); err != nil {
		return 0, err
	}
	return s.store.CountLikes(ctx, eventID)
}

func (s *Service) requireEvent(ctx context.Context, eventID string) error {
	exists, err := s.store.EventExists(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to check event: %w", err)
	}
	if !exists {
		return apperrors.ErrEventNotFound
	}
	return nil
}
