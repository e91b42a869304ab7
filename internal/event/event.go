package event

import (
	"context"
	"time"

	"github.com/mysterymeet/backend/internal/location"
)

// Event is the stored record. ExactLocation and ExactAddress are write-once
// at creation and only ever shown to the creator and current participants;
// PublicLocation and PublicArea are derived once by the obfuscator and
// persisted so repeated reads cannot be averaged back to the exact point.
type Event struct {
	ID              string
	Title           string
	Description     string
	Category        string
	VideoURL        string
	StartsAt        time.Time
	ExactLocation   location.Coordinate
	PublicLocation  location.Coordinate
	ExactAddress    string
	PublicArea      string
	AreaCell        string
	MaxParticipants int
	CreatorID       string
	CreatedAt       time.Time
}

// View is what a given viewer is allowed to see of an event. Location and
// address fields hold either the public or the exact variant depending on the
// viewer's participation; the other variant is not present at all.
type View struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	VideoURL        string    `json:"video_url,omitempty"`
	StartsAt        time.Time `json:"starts_at"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	Address         string    `json:"address"`
	AreaCell        string    `json:"area_cell"`
	IsParticipant   bool      `json:"is_participant"`
	Participants    int       `json:"participants"`
	MaxParticipants int       `json:"max_participants"`
	Likes           int       `json:"likes"`
	Comments        int       `json:"comments"`
	CreatorID       string    `json:"creator_id"`
	CreatedAt       time.Time `json:"created_at"`

	// HasLocation is false for legacy records without coordinates; the feed
	// ranks such events as far regardless of viewer position.
	HasLocation bool `json:"-"`
}

// Coordinate returns the resolved coordinate of the view.
func (v View) Coordinate() location.Coordinate {
	return location.Coordinate{Lat: v.Latitude, Lon: v.Longitude}
}

// Store is the persistence contract the event service needs.
type Store interface {
	CreateEvent(ctx context.Context, e *Event) error
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	ListEventsByCreator(ctx context.Context, creatorID string) ([]*Event, error)
	DeleteEvent(ctx context.Context, id string) error
	CountParticipants(ctx context.Context, eventID string) (int, error)
	CountLikes(ctx context.Context, eventID string) (int, error)
	CountComments(ctx context.Context, eventID string) (int, error)
}

// ParticipationLookup answers whether a user has joined an event. The event
// service only ever reads participation state; all writes go through the
// join controller.
type ParticipationLookup interface {
	IsParticipant(ctx context.Context, eventID, userID string) (bool, error)
}
