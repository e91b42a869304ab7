package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/mysterymeet/backend/internal/auth"
	"github.com/mysterymeet/backend/internal/event"
	"github.com/mysterymeet/backend/internal/participation"
	"github.com/mysterymeet/backend/internal/social"
	apperrors "github.com/mysterymeet/backend/pkg/errors"
)

// PostgresStore backs all durable state: users, events, participations,
// comments and likes. The capacity-gated join runs inside a transaction that
// locks the event row, so concurrent joins on one event are serialized by
// the database rather than by this process; this is the mechanism that keeps
// the capacity ceiling intact across multiple serving instances.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}

	if err := store.initSchema(); err != nil {
		return nil, err
	}

	return store, nil
}

func (p *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS events (
		id UUID PRIMARY KEY,
		title VARCHAR(120) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category VARCHAR(50) NOT NULL DEFAULT '',
		video_url TEXT NOT NULL DEFAULT '',
		starts_at TIMESTAMPTZ NOT NULL,
		exact_lat DOUBLE PRECISION NOT NULL,
		exact_lon DOUBLE PRECISION NOT NULL,
		public_lat DOUBLE PRECISION NOT NULL,
		public_lon DOUBLE PRECISION NOT NULL,
		exact_address TEXT NOT NULL,
		public_area TEXT NOT NULL,
		area_cell VARCHAR(12) NOT NULL DEFAULT '',
		max_participants INT NOT NULL,
		creator_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_events_creator ON events (creator_id);
	CREATE INDEX IF NOT EXISTS idx_events_area_cell ON events (area_cell);

	CREATE TABLE IF NOT EXISTS participations (
		event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (event_id, user_id)
	);

	CREATE TABLE IF NOT EXISTS comments (
		id UUID PRIMARY KEY,
		event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		text TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_comments_event ON comments (event_id);

	CREATE TABLE IF NOT EXISTS likes (
		event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (event_id, user_id)
	);
	`

	_, err := p.db.Exec(schema)
	return err
}

func (p *PostgresStore) Close() error {
	return p.db.Close()
}

func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// User operations

func (p *PostgresStore) CreateUser(ctx context.Context, u *auth.User) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt,
	)
	return err
}

func (p *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return p.scanUser(p.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`,
		email,
	))
}

func (p *PostgresStore) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	return p.scanUser(p.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE id = $1`,
		id,
	))
}

func (p *PostgresStore) scanUser(row *sql.Row) (*auth.User, error) {
	var u auth.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Event operations

const eventColumns = `id, title, description, category, video_url, starts_at,
	exact_lat, exact_lon, public_lat, public_lon,
	exact_address, public_area, area_cell,
	max_participants, creator_id, created_at`

func (p *PostgresStore) CreateEvent(ctx context.Context, e *event.Event) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO events (`+eventColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		e.ID, e.Title, e.Description, e.Category, e.VideoURL, e.StartsAt,
		e.ExactLocation.Lat, e.ExactLocation.Lon, e.PublicLocation.Lat, e.PublicLocation.Lon,
		e.ExactAddress, e.PublicArea, e.AreaCell,
		e.MaxParticipants, e.CreatorID, e.CreatedAt,
	)
	return err
}

func (p *PostgresStore) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)

	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return e, nil
}

func (p *PostgresStore) ListEvents(ctx context.Context) ([]*event.Event, error) {
	return p.queryEvents(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY created_at DESC`)
}

func (p *PostgresStore) ListEventsByCreator(ctx context.Context, creatorID string) ([]*event.Event, error) {
	return p.queryEvents(ctx,
		`SELECT `+eventColumns+` FROM events WHERE creator_id = $1 ORDER BY created_at DESC`,
		creatorID)
}

func (p *PostgresStore) queryEvents(ctx context.Context, query string, args ...any) ([]*event.Event, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*event.Event, error) {
	var e event.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Category, &e.VideoURL, &e.StartsAt,
		&e.ExactLocation.Lat, &e.ExactLocation.Lon, &e.PublicLocation.Lat, &e.PublicLocation.Lon,
		&e.ExactAddress, &e.PublicArea, &e.AreaCell,
		&e.MaxParticipants, &e.CreatorID, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (p *PostgresStore) DeleteEvent(ctx context.Context, id string) error {
	result, err := p.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

func (p *PostgresStore) EventExists(ctx context.Context, eventID string) (bool, error) {
	var exists bool
	err := p.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, eventID).Scan(&exists)
	return exists, err
}

// Participation operations

// Insert admits a user to an event if capacity allows, atomically.
//
// The event row is locked with SELECT ... FOR UPDATE, which blocks any
// concurrent join on the same event until this transaction resolves. The
// count is then derived from the participation rows inside the same
// transaction, so the check-and-insert pair is linearizable and the ceiling
// cannot be exceeded even transiently. The composite primary key on
// (event_id, user_id) backstops the duplicate check.
func (p *PostgresStore) Insert(ctx context.Context, part *participation.Participation) (err error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var maxParticipants int
	err = tx.QueryRowContext(ctx,
		`SELECT max_participants FROM events WHERE id = $1 FOR UPDATE`,
		part.EventID,
	).Scan(&maxParticipants)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.ErrEventNotFound
		}
		return fmt.Errorf("failed to lock event row: %w", err)
	}

	var joined bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM participations WHERE event_id = $1 AND user_id = $2)`,
		part.EventID, part.UserID,
	).Scan(&joined)
	if err != nil {
		return fmt.Errorf("failed to check existing participation: %w", err)
	}
	if joined {
		return apperrors.ErrAlreadyJoined
	}

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM participations WHERE event_id = $1`,
		part.EventID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count participants: %w", err)
	}
	if count >= maxParticipants {
		return apperrors.ErrCapacityExceeded
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO participations (event_id, user_id, joined_at) VALUES ($1, $2, $3)`,
		part.EventID, part.UserID, part.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participation: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit join: %w", err)
	}
	return nil
}

func (p *PostgresStore) IsParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	var joined bool
	err := p.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM participations WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID,
	).Scan(&joined)
	return joined, err
}

func (p *PostgresStore) Count(ctx context.Context, eventID string) (int, error) {
	var count int
	err := p.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM participations WHERE event_id = $1`,
		eventID,
	).Scan(&count)
	return count, err
}

func (p *PostgresStore) CountParticipants(ctx context.Context, eventID string) (int, error) {
	return p.Count(ctx, eventID)
}

// Comment operations

func (p *PostgresStore) InsertComment(ctx context.Context, c *social.Comment) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO comments (id, event_id, user_id, text, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.EventID, c.UserID, c.Text, c.CreatedAt,
	)
	return err
}

func (p *PostgresStore) GetComment(ctx context.Context, id string) (*social.Comment, error) {
	var c social.Comment
	err := p.db.QueryRowContext(ctx,
		`SELECT c.id, c.event_id, c.user_id, u.name, c.text, c.created_at
		 FROM comments c JOIN users u ON u.id = c.user_id
		 WHERE c.id = $1`,
		id,
	).Scan(&c.ID, &c.EventID, &c.UserID, &c.Username, &c.Text, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (p *PostgresStore) ListComments(ctx context.Context, eventID string) ([]*social.Comment, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT c.id, c.event_id, c.user_id, u.name, c.text, c.created_at
		 FROM comments c JOIN users u ON u.id = c.user_id
		 WHERE c.event_id = $1
		 ORDER BY c.created_at DESC`,
		eventID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*social.Comment
	for rows.Next() {
		var c social.Comment
		if err := rows.Scan(&c.ID, &c.EventID, &c.UserID, &c.Username, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

func (p *PostgresStore) DeleteComment(ctx context.Context, id string) error {
	result, err := p.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

func (p *PostgresStore) CountComments(ctx context.Context, eventID string) (int, error) {
	var count int
	err := p.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE event_id = $1`, eventID).Scan(&count)
	return count, err
}

// Like operations

func (p *PostgresStore) InsertLike(ctx context.Context, eventID, userID string) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO likes (event_id, user_id) VALUES ($1, $2)
		 ON CONFLICT (event_id, user_id) DO NOTHING`,
		eventID, userID,
	)
	return err
}

func (p *PostgresStore) DeleteLike(ctx context.Context, eventID, userID string) error {
	_, err := p.db.ExecContext(ctx,
		`DELETE FROM likes WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	)
	return err
}

func (p *PostgresStore) HasLike(ctx context.Context, eventID, userID string) (bool, error) {
	var liked bool
	err := p.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM likes WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID,
	).Scan(&liked)
	return liked, err
}

func (p *PostgresStore) CountLikes(ctx context.Context, eventID string) (int, error) {
	var count int
	err := p.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes WHERE event_id = $1`, eventID).Scan(&count)
	return count, err
}
