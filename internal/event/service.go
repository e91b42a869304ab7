package event

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mysterymeet/backend/internal/location"
	apperrors "github.com/mysterymeet/backend/pkg/errors"
)

const defaultMaxParticipants = 10

type Service struct {
	store         Store
	participation ParticipationLookup
	maxOffsetDeg  float64
	cellPrecision int
	areaLabel     location.AreaLabelFunc
}

type CreateRequest struct {
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Category        string              `json:"category"`
	VideoURL        string              `json:"video_url"`
	StartsAt        time.Time           `json:"starts_at"`
	Address         string              `json:"address"`
	Location        location.Coordinate `json:"location"`
	MaxParticipants int                 `json:"max_participants"`
}

func NewService(store Store, participation ParticipationLookup, maxOffsetDeg float64, cellPrecision int) *Service {
	return &Service{
		store:         store,
		participation: participation,
		maxOffsetDeg:  maxOffsetDeg,
		cellPrecision: cellPrecision,
		areaLabel:     location.DeriveAreaLabel,
	}
}

// Create validates the request, obfuscates the exact location exactly once
// and persists both variants.
func (s *Service) Create(ctx context.Context, creatorID string, req CreateRequest) (*Event, error) {
	if err := req.Location.Validate(); err != nil {
		return nil, err
	}

	maxParticipants := req.MaxParticipants
	if maxParticipants == 0 {
		maxParticipants = defaultMaxParticipants
	}
	if maxParticipants < 1 {
		return nil, apperrors.ErrInvalidCapacity
	}

	public, err := location.Obfuscate(req.Location, s.maxOffsetDeg)
	if err != nil {
		return nil, err
	}

	e := &Event{
		ID:              uuid.New().String(),
		Title:           strings.TrimSpace(req.Title),
		Description:     strings.TrimSpace(req.Description),
		Category:        req.Category,
		VideoURL:        req.VideoURL,
		StartsAt:        req.StartsAt,
		ExactLocation:   req.Location,
		PublicLocation:  public,
		ExactAddress:    strings.TrimSpace(req.Address),
		PublicArea:      s.areaLabel(req.Address),
		AreaCell:        public.AreaCell(s.cellPrecision),
		MaxParticipants: maxParticipants,
		CreatorID:       creatorID,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.store.CreateEvent(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return e, nil
}

// Get returns the stored event without any visibility filtering. Callers
// serving external viewers must go through Resolve.
func (s *Service) Get(ctx context.Context, id string) (*Event, error) {
	return s.store.GetEvent(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Event, error) {
	return s.store.ListEvents(ctx)
}

func (s *Service) ListByCreator(ctx context.Context, creatorID string) ([]*Event, error) {
	return s.store.ListEventsByCreator(ctx, creatorID)
}

// Delete removes an event. Only the creator may delete; participations,
// comments and likes cascade in the store.
func (s *Service) Delete(ctx context.Context, id, callerID string) error {
	e, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return err
	}

	if e.CreatorID != callerID {
		return apperrors.ErrNotEventCreator
	}

	return s.store.DeleteEvent(ctx, id)
}
