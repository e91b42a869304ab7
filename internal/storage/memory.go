package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/mysterymeet/backend/internal/auth"
	"github.com/mysterymeet/backend/internal/event"
	"github.com/mysterymeet/backend/internal/participation"
	"github.com/mysterymeet/backend/internal/social"
	apperrors "github.com/mysterymeet/backend/pkg/errors"
)

// MemoryStore is the in-process implementation of every store contract.
// Joins serialize on a single mutex, which satisfies the capacity invariant
// only while one process owns all writes; multi-instance deployments must
// use PostgresStore, where the database serializes joins instead.
type MemoryStore struct {
	mu             sync.RWMutex
	users          map[string]*auth.User
	usersByEmail   map[string]string
	events         map[string]*event.Event
	participations map[string]map[string]*participation.Participation
	comments       map[string]*social.Comment
	likes          map[string]map[string]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:          make(map[string]*auth.User),
		usersByEmail:   make(map[string]string),
		events:         make(map[string]*event.Event),
		participations: make(map[string]map[string]*participation.Participation),
		comments:       make(map[string]*social.Comment),
		likes:          make(map[string]map[string]bool),
	}
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}

// User operations

func (m *MemoryStore) CreateUser(ctx context.Context, u *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.usersByEmail[u.Email]; taken {
		return apperrors.ErrEmailTaken
	}

	copied := *u
	m.users[u.ID] = &copied
	m.usersByEmail[u.Email] = u.ID
	return nil
}

func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.usersByEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *m.users[id]
	return &copied, nil
}

func (m *MemoryStore) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

// Event operations

func (m *MemoryStore) CreateEvent(ctx context.Context, e *event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *e
	m.events[e.ID] = &copied
	return nil
}

func (m *MemoryStore) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	copied := *e
	return &copied, nil
}

func (m *MemoryStore) ListEvents(ctx context.Context) ([]*event.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]*event.Event, 0, len(m.events))
	for _, e := range m.events {
		copied := *e
		events = append(events, &copied)
	}
	sortEventsNewestFirst(events)
	return events, nil
}

func (m *MemoryStore) ListEventsByCreator(ctx context.Context, creatorID string) ([]*event.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var events []*event.Event
	for _, e := range m.events {
		if e.CreatorID == creatorID {
			copied := *e
			events = append(events, &copied)
		}
	}
	sortEventsNewestFirst(events)
	return events, nil
}

func sortEventsNewestFirst(events []*event.Event) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
}

func (m *MemoryStore) DeleteEvent(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[id]; !ok {
		return apperrors.ErrEventNotFound
	}

	delete(m.events, id)
	delete(m.participations, id)
	delete(m.likes, id)
	for cid, c := range m.comments {
		if c.EventID == id {
			delete(m.comments, cid)
		}
	}
	return nil
}

func (m *MemoryStore) EventExists(ctx context.Context, eventID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.events[eventID]
	return ok, nil
}

// Participation operations

// Insert performs the capacity check and the row insert under one lock, so
// concurrent joins on the same event cannot both take the last slot.
func (m *MemoryStore) Insert(ctx context.Context, p *participation.Participation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.events[p.EventID]
	if !ok {
		return apperrors.ErrEventNotFound
	}

	rows := m.participations[p.EventID]
	if rows == nil {
		rows = make(map[string]*participation.Participation)
		m.participations[p.EventID] = rows
	}

	if _, joined := rows[p.UserID]; joined {
		return apperrors.ErrAlreadyJoined
	}

	if len(rows) >= e.MaxParticipants {
		return apperrors.ErrCapacityExceeded
	}

	copied := *p
	rows[p.UserID] = &copied
	return nil
}

func (m *MemoryStore) IsParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, joined := m.participations[eventID][userID]
	return joined, nil
}

func (m *MemoryStore) Count(ctx context.Context, eventID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.participations[eventID]), nil
}

func (m *MemoryStore) CountParticipants(ctx context.Context, eventID string) (int, error) {
	return m.Count(ctx, eventID)
}

// Comment operations

func (m *MemoryStore) InsertComment(ctx context.Context, c *social.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *c
	if u, ok := m.users[c.UserID]; ok {
		copied.Username = u.Name
	}
	m.comments[c.ID] = &copied
	return nil
}

func (m *MemoryStore) GetComment(ctx context.Context, id string) (*social.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.comments[id]
	if !ok {
		return nil, apperrors.ErrCommentNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *MemoryStore) ListComments(ctx context.Context, eventID string) ([]*social.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var comments []*social.Comment
	for _, c := range m.comments {
		if c.EventID == eventID {
			copied := *c
			comments = append(comments, &copied)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (m *MemoryStore) DeleteComment(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.comments[id]; !ok {
		return apperrors.ErrCommentNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *MemoryStore) CountComments(ctx context.Context, eventID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, c := range m.comments {
		if c.EventID == eventID {
			count++
		}
	}
	return count, nil
}

// Like operations

func (m *MemoryStore) InsertLike(ctx context.Context, eventID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	likes := m.likes[eventID]
	if likes == nil {
		likes = make(map[string]bool)
		m.likes[eventID] = likes
	}
	likes[userID] = true
	return nil
}

func (m *MemoryStore) DeleteLike(ctx context.Context, eventID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.likes[eventID], userID)
	return nil
}

func (m *MemoryStore) HasLike(ctx context.Context, eventID, userID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.likes[eventID][userID], nil
}

func (m *MemoryStore) CountLikes(ctx context.Context, eventID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.likes[eventID]), nil
}
