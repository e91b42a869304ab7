package participation

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/mysterymeet/backend/pkg/errors"
)

// Participation records that a user has committed to attend an event. One
// row per (event, user) pair; it is the sole trigger for exact-location
// disclosure.
type Participation struct {
	EventID  string    `json:"event_id"`
	UserID   string    `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

// Status is the outcome of a join attempt.
type Status int

const (
	StatusOk Status = iota
	StatusAlreadyJoined
	StatusCapacityExceeded
	StatusNotFound
)

func (s Status) String() string {
	switch s {
	case StatusOk:
		return "ok"
	case StatusAlreadyJoined:
		return "already_joined"
	case StatusCapacityExceeded:
		return "capacity_exceeded"
	case StatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Store is the atomic participation primitive the controller builds on.
//
// Insert must be linearizable per event: the capacity check and the row
// insert happen as one conditional write, so two callers racing for the last
// slot cannot both succeed. Implementations signal expected outcomes with
// apperrors.ErrEventNotFound, ErrAlreadyJoined and ErrCapacityExceeded;
// anything else is a storage fault.
type Store interface {
	Insert(ctx context.Context, p *Participation) error
	IsParticipant(ctx context.Context, eventID, userID string) (bool, error)
	Count(ctx context.Context, eventID string) (int, error)
}

// Controller is the only writer of participation rows.
type Controller struct {
	store Store
}

func NewController(store Store) *Controller {
	return &Controller{store: store}
}

// Join attempts to admit userID to eventID under the event's capacity
// ceiling. AlreadyJoined is a success-equivalent idempotent outcome;
// CapacityExceeded is a rejection; a storage fault surfaces as an error so
// callers can tell a hiccup from a full event.
func (c *Controller) Join(ctx context.Context, eventID, userID string) (Status, error) {
	p := &Participation{
		EventID:  eventID,
		UserID:   userID,
		JoinedAt: time.Now().UTC(),
	}

	err := c.store.Insert(ctx, p)
	switch {
	case err == nil:
		return StatusOk, nil
	case errors.Is(err, apperrors.ErrAlreadyJoined):
		return StatusAlreadyJoined, nil
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		return StatusCapacityExceeded, nil
	case errors.Is(err, apperrors.ErrEventNotFound):
		return StatusNotFound, nil
	default:
		return 0, fmt.Errorf("failed to join event: %w", err)
	}
}

// Count returns the number of participants, derived from the rows themselves.
func (c *Controller) Count(ctx context.Context, eventID string) (int, error) {
	return c.store.Count(ctx, eventID)
}

// IsParticipant reports whether the user has joined the event.
func (c *Controller) IsParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	return c.store.IsParticipant(ctx, eventID, userID)
}
