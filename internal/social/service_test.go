package social_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mysterymeet/backend/internal/event"
	"github.com/mysterymeet/backend/internal/location"
	"github.com/mysterymeet/backend/internal/social"
	"github.com/mysterymeet/backend/internal/storage"
	apperrors "github.com/mysterymeet/backend/pkg/errors"
)

func newSocialService(t *testing.T) (*social.Service, string) {
	t.Helper()
	store := storage.NewMemoryStore()

	e := &event.Event{
		ID:              "event-1",
		Title:           "Picnic",
		StartsAt:        time.Now().Add(time.Hour),
		ExactLocation:   location.Coordinate{Lat: 40, Lon: -74},
		PublicLocation:  location.Coordinate{Lat: 40.002, Lon: -74.003},
		MaxParticipants: 10,
		CreatorID:       "creator",
		CreatedAt:       time.Now(),
	}
	require.NoError(t, store.CreateEvent(context.Background(), e))

	return social.NewService(store), e.ID
}

func TestComments_RoundTrip(t *testing.T) {
	svc, eventID := newSocialService(t)
	ctx := context.Background()

	comment, err := svc.AddComment(ctx, eventID, "alice", "  see you there!  ")
	require.NoError(t, err)
	assert.Equal(t, "see you there!", comment.Text)

	comments, err := svc.ListComments(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, comment.ID, comments[0].ID)
}

func TestAddComment_EmptyRejected(t *testing.T) {
	svc, eventID := newSocialService(t)

	_, err := svc.AddComment(context.Background(), eventID, "alice", "   ")
	assert.ErrorIs(t, err, apperrors.ErrEmptyComment)
}

func TestAddComment_UnknownEvent(t *testing.T) {
	svc, _ := newSocialService(t)

	_, err := svc.AddComment(context.Background(), "no-such-event", "alice", "hi")
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestDeleteComment_OnlyAuthor(t *testing.T) {
	svc, eventID := newSocialService(t)
	ctx := context.Background()

	comment, err := svc.AddComment(ctx, eventID, "alice", "mine")
	require.NoError(t, err)

	err = svc.DeleteComment(ctx, comment.ID, "bob")
	assert.ErrorIs(t, err, apperrors.ErrNotCommentAuthor)

	require.NoError(t, svc.DeleteComment(ctx, comment.ID, "alice"))

	err = svc.DeleteComment(ctx, comment.ID, "alice")
	assert.ErrorIs(t, err, apperrors.ErrCommentNotFound)
}

func TestToggleLike(t *testing.T) {
	svc, eventID := newSocialService(t)
	ctx := context.Background()

	liked, count, err := svc.ToggleLike(ctx, eventID, "alice")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, count)

	liked, count, err = svc.ToggleLike(ctx, eventID, "alice")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, count)

	_, _, err = svc.ToggleLike(ctx, "no-such-event", "alice")
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestLikes_CountAndCheck(t *testing.T) {
	svc, eventID := newSocialService(t)
	ctx := context.Background()

	for _, u := range []string{"alice", "bob", "carol"} {
		_, _, err := svc.ToggleLike(ctx, eventID, u)
		require.NoError(t, err)
	}

	count, err := svc.CountLikes(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	liked, err := svc.HasLiked(ctx, eventID, "bob")
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.HasLiked(ctx, eventID, "dave")
	require.NoError(t, err)
	assert.False(t, liked)
}
