package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mysterymeet/backend/internal/auth"
	"github.com/mysterymeet/backend/internal/event"
	"github.com/mysterymeet/backend/internal/feed"
	"github.com/mysterymeet/backend/internal/location"
	"github.com/mysterymeet/backend/internal/participation"
	"github.com/mysterymeet/backend/internal/ratelimit"
	"github.com/mysterymeet/backend/internal/social"
	apperrors "github.com/mysterymeet/backend/pkg/errors"
	"github.com/mysterymeet/backend/pkg/validator"
)

// Pinger reports storage health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	authService   *auth.Service
	eventService  *event.Service
	joinCtrl      *participation.Controller
	socialService *social.Service
	ranker        *feed.Ranker
	rateLimiter   ratelimit.RateLimiter
	validator     validator.Validator
	storage       Pinger
}

func NewHandler(
	authService *auth.Service,
	eventService *event.Service,
	joinCtrl *participation.Controller,
	socialService *social.Service,
	ranker *feed.Ranker,
	rateLimiter ratelimit.RateLimiter,
	validator validator.Validator,
	storage Pinger,
) *Handler {
	return &Handler{
		authService:   authService,
		eventService:  eventService,
		joinCtrl:      joinCtrl,
		socialService: socialService,
		ranker:        ranker,
		rateLimiter:   rateLimiter,
		validator:     validator,
		storage:       storage,
	}
}

// POST /api/events
func (h *Handler) CreateEvent(c *gin.Context) {
	userID := CallerID(c)

	var req event.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("Invalid request", "INVALID_REQUEST"))
		return
	}

	if err := h.validator.ValidateTitle(req.Title); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse(err.Error(), "INVALID_TITLE"))
		return
	}
	if err := h.validator.ValidateAddress(req.Address); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse(err.Error(), "INVALID_ADDRESS"))
		return
	}
	if err := h.validator.ValidateCoordinates(req.Location.Lat, req.Location.Lon); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse(err.Error(), "INVALID_COORDINATES"))
		return
	}
	if req.MaxParticipants != 0 {
		if err := h.validator.ValidateMaxParticipants(req.MaxParticipants); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse(err.Error(), "INVALID_CAPACITY"))
			return
		}
	}

	allowed, err := h.rateLimiter.AllowEventCreation(c.Request.Context(), userID)
	if err != nil || !allowed {
		c.JSON(http.StatusTooManyRequests, ErrorResponse("Event creation limit reached", "RATE_LIMIT"))
		return
	}

	e, err := h.eventService.Create(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse("Failed to create event", "INTERNAL_ERROR"))
		return
	}

	// The creator sees their own event resolved, i.e. with exact fields.
	view, err := h.eventService.Resolve(c.Request.Context(), e, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse("Failed to resolve event", "INTERNAL_ERROR"))
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse(view))
}

// GET /api/events?lat=&lon=
func (h *Handler) ListEvents(c *gin.Context) {
	viewerID := CallerID(c)
	ctx := c.Request.Context()

	events, err := h.eventService.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse("Failed to load events", "INTERNAL_ERROR"))
		return
	}

	views := make([]event.View, 0, len(events))
	for _, e := range events {
		view, err := h.eventService.Resolve(ctx, e, viewerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse("Failed to resolve events", "INTERNAL_ERROR"))
			return
		}
		views = append(views, view)
	}

	viewerPos, ok, err := h.viewerPosition(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse(err.Error(), "INVALID_COORDINATES"))
		return
	}
	var pos *location.Coordinate
	if ok {
		pos = &viewerPos
	}

	ranked := h.ranker.Rank(views, pos)

	c.JSON(http.StatusOK, SuccessResponse(gin.H{
		"count":  len(ranked),
		"events": ranked,
	}))
}

// GET /api/events/my
func (h *Handler) ListMyEvents(c *gin.Context) {
	userID := CallerID(c)
	ctx := c.Request.Context()

	events, err := h.eventService.ListByCreator(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse("Failed to load events", "INTERNAL_ERROR"))
		return
	}

	views := make([]event.View, 0, len(events))
	for _, e := range events {
		view, err := h.eventService.Resolve(ctx, e, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse("Failed to resolve events", "INTERNAL_ERROR"))
			return
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, SuccessResponse(gin.H{
		"count":  len(views),
		"events": views,
	}))
}

// GET /api/events/:id
func (h *Handler) GetEvent(c *gin.Context) {
	view, err := h.eventService.ResolveByID(c.Request.Context(), c.Param("id"), CallerID(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse("Event not found", "NOT_FOUND"))
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse("Failed to load event", "INTERNAL_ERROR"))
		return
	}

	c.JSON(http.StatusOK, SuccessResponse(view))
}

// DELETE /api/events/:id
func (h *Handler) DeleteEvent(c *gin.Context) {
	err := h.eventService.Delete(c.Request.Context(), c.Param("id"), CallerID(c))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEventNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse("Event not found", "NOT_FOUND"))
		case errors.Is(err, apperrors.ErrNotEventCreator):
			c.JSON(http.StatusForbidden, ErrorResponse("Only the creator can delete this event", "FORBIDDEN"))
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse("Failed to delete event", "INTERNAL_ERROR"))
		}
		return
	}

	c.JSON(http.StatusOK, SuccessResponse(gin.H{"message": "Event deleted"}))
}

// POST /api/events/:id/join
func (h *Handler) JoinEvent(c *gin.Context) {
	userID := CallerID(c)
	ctx := c.Request.Context()

	allowed, err := h.rateLimiter.AllowJoin(ctx, userID)
	if err != nil || !allowed {
		c.JSON(http.StatusTooManyRequests, ErrorResponse("Too many join attempts", "RATE_LIMIT"))
		return
	}

	status, err := h.joinCtrl.Join(ctx, c.Param("id"), userID)
	if err != nil {
		// Storage fault, not a full event; callers may retry.
		c.JSON(http.StatusServiceUnavailable, ErrorResponse("Storage unavailable, try again", "STORAGE_UNAVAILABLE"))
		return
	}

	switch status {
	case participation.StatusOk, participation.StatusAlreadyJoined:
		// Joined (or already in the desired state): return the upgraded view
		// so the client gets the exact location immediately.
		view, err := h.eventService.ResolveByID(ctx, c.Param("id"), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse("Failed to resolve event", "INTERNAL_ERROR"))
			return
		}
		c.JSON(http.StatusOK, SuccessResponse(gin.H{
			"status": status.String(),
			"event":  view,
		}))
	case participation.StatusCapacityExceeded:
		c.JSON(http.StatusConflict, ErrorResponse("Event is full", "CAPACITY_EXCEEDED"))
	case participation.StatusNotFound:
		c.JSON(http.StatusNotFound, ErrorResponse("Event not found", "NOT_FOUND"))
	}
}

// GET /api/health
func (h *Handler) Health(c *gin.Context) {
	if err := h.storage.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "storage unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// viewerPosition parses optional lat/lon query parameters.
func (h *Handler) viewerPosition(c *gin.Context) (location.Coordinate, bool, error) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return location.Coordinate{}, false, nil
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return location.Coordinate{}, false, apperrors.ErrInvalidLatitude
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return location.Coordinate{}, false, apperrors.ErrInvalidLongitude
	}

	if err := h.validator.ValidateCoordinates(lat, lon); err != nil {
		return location.Coordinate{}, false, err
	}

	return location.Coordinate{Lat: lat, Lon: lon}, true, nil
}
