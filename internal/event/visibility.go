package event

import (
	"context"
	"fmt"

	"github.com/mysterymeet/backend/internal/location"
)

// ResolvedLocation is the per-viewer answer of the visibility resolver.
type ResolvedLocation struct {
	Location      location.Coordinate `json:"location"`
	Address       string              `json:"address"`
	IsParticipant bool                `json:"is_participant"`
}

// ResolveLocation decides which coordinate and address a viewer may see.
// Participants and the creator get the exact variants; everyone else,
// including anonymous viewers (empty viewerID), gets the stored public
// variants. Pure read: never mutates participation state.
func (s *Service) ResolveLocation(ctx context.Context, eventID, viewerID string) (*ResolvedLocation, error) {
	e, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, e, viewerID)
}

func (s *Service) resolve(ctx context.Context, e *Event, viewerID string) (*ResolvedLocation, error) {
	if viewerID == "" {
		return &ResolvedLocation{Location: e.PublicLocation, Address: e.PublicArea}, nil
	}

	// The creator already knows the exact point and must see consistent data
	// when previewing their own event.
	if viewerID == e.CreatorID {
		return &ResolvedLocation{Location: e.ExactLocation, Address: e.ExactAddress, IsParticipant: true}, nil
	}

	joined, err := s.participation.IsParticipant(ctx, e.ID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check participation: %w", err)
	}

	if !joined {
		return &ResolvedLocation{Location: e.PublicLocation, Address: e.PublicArea}, nil
	}

	return &ResolvedLocation{Location: e.ExactLocation, Address: e.ExactAddress, IsParticipant: true}, nil
}

// Resolve builds the full per-viewer view of an event, including derived
// participant, like and comment counts.
func (s *Service) Resolve(ctx context.Context, e *Event, viewerID string) (View, error) {
	loc, err := s.resolve(ctx, e, viewerID)
	if err != nil {
		return View{}, err
	}

	participants, err := s.store.CountParticipants(ctx, e.ID)
	if err != nil {
		return View{}, fmt.Errorf("failed to count participants: %w", err)
	}

	likes, err := s.store.CountLikes(ctx, e.ID)
	if err != nil {
		return View{}, fmt.Errorf("failed to count likes: %w", err)
	}

	comments, err := s.store.CountComments(ctx, e.ID)
	if err != nil {
		return View{}, fmt.Errorf("failed to count comments: %w", err)
	}

	return View{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Category:        e.Category,
		VideoURL:        e.VideoURL,
		StartsAt:        e.StartsAt,
		Latitude:        loc.Location.Lat,
		Longitude:       loc.Location.Lon,
		Address:         loc.Address,
		AreaCell:        e.AreaCell,
		IsParticipant:   loc.IsParticipant,
		Participants:    participants,
		MaxParticipants: e.MaxParticipants,
		Likes:           likes,
		Comments:        comments,
		CreatorID:       e.CreatorID,
		CreatedAt:       e.CreatedAt,
		HasLocation:     true,
	}, nil
}

// ResolveByID is Resolve for callers that only hold the event id.
func (s *Service) ResolveByID(ctx context.Context, eventID, viewerID string) (View, error) {
	e, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return View{}, err
	}
	return s.Resolve(ctx, e, viewerID)
}
