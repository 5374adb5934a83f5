package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"randohub/internal/domain"
	"randohub/internal/domain/entities"
	"randohub/internal/ports/output"
)

var _ output.ParticipantRepository = (*ParticipantRepository)(nil)

// ParticipantRepository implements output.ParticipantRepository using pgx.
type ParticipantRepository struct {
	db DBTX
}

// NewParticipantRepository creates a ParticipantRepository.
func NewParticipantRepository(db DBTX) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

const createParticipant = `
INSERT INTO participants (event_id, user_id, status)
VALUES ($1, $2, $3)
RETURNING id, registered_at`

func (r *ParticipantRepository) Create(ctx context.Context, participant *entities.Participant) error {
	var (
		id           int64
		registeredAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, createParticipant,
		int64(participant.EventID), int64(participant.UserID), participant.Status.String(),
	).Scan(&id, &registeredAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrParticipantConflict
		}
		return fmt.Errorf("create participant: %w", err)
	}
	participant.ID = uint(id)
	participant.RegisteredAt = pgtypeTimestamptzToTime(registeredAt)
	return nil
}

const getParticipantByEventIDAndUserID = `
SELECT id, event_id, user_id, status, registered_at
FROM participants
WHERE event_id = $1 AND user_id = $2`

func (r *ParticipantRepository) FindByEventIDAndUserID(ctx context.Context, eventID, userID uint) (*entities.Participant, error) {
	var (
		id, evID, uID int64
		status        string
		registeredAt  pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, getParticipantByEventIDAndUserID, int64(eventID), int64(userID)).
		Scan(&id, &evID, &uID, &status, &registeredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrParticipationNotFound
		}
		return nil, fmt.Errorf("get participant by event id and user id: %w", err)
	}
	p, err := participantToDomain(id, evID, uID, status, registeredAt)
	if err != nil {
		return nil, fmt.Errorf("get participant by event id and user id: %w", err)
	}
	return &p, nil
}

const getParticipantsByEventID = `
SELECT u.id, u.first_name, u.last_name, COALESCE(u.profile_picture, ''), p.status
FROM participants p
JOIN users u ON p.user_id = u.id
WHERE p.event_id = $1
ORDER BY p.registered_at, p.id`

func (r *ParticipantRepository) FindByEventID(ctx context.Context, eventID uint) ([]entities.ParticipantView, error) {
	rows, err := r.db.Query(ctx, getParticipantsByEventID, int64(eventID))
	if err != nil {
		return nil, fmt.Errorf("get participants by event id: %w", err)
	}
	defer rows.Close()

	out := make([]entities.ParticipantView, 0)
	for rows.Next() {
		var (
			userID int64
			status string
			v      entities.ParticipantView
		)
		if err := rows.Scan(&userID, &v.FirstName, &v.LastName, &v.ProfilePicture, &status); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		v.UserID = uint(userID)
		if v.Status, err = domain.ParseStatus(status); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get participants by event id: %w", err)
	}
	return out, nil
}

const updateParticipantStatus = `
UPDATE participants SET status = $3
WHERE event_id = $1 AND user_id = $2`

// UpdateStatus leaves registered_at untouched.
func (r *ParticipantRepository) UpdateStatus(ctx context.Context, eventID, userID uint, status domain.ParticipantStatus) (int64, error) {
	tag, err := r.db.Exec(ctx, updateParticipantStatus, int64(eventID), int64(userID), status.String())
	if err != nil {
		return 0, fmt.Errorf("update participant status: %w", err)
	}
	return tag.RowsAffected(), nil
}

const listRegisteredWithContact = `
SELECT p.id, u.id, u.email, u.first_name, u.last_name
FROM participants p
JOIN users u ON p.user_id = u.id
WHERE p.event_id = $1 AND p.status = 'registered'
ORDER BY p.id`

func (r *ParticipantRepository) ListRegisteredWithContact(ctx context.Context, eventID uint) ([]entities.Contact, error) {
	rows, err := r.db.Query(ctx, listRegisteredWithContact, int64(eventID))
	if err != nil {
		return nil, fmt.Errorf("list registered participants: %w", err)
	}
	defer rows.Close()

	out := make([]entities.Contact, 0)
	for rows.Next() {
		var (
			pID, uID int64
			c        entities.Contact
		)
		if err := rows.Scan(&pID, &uID, &c.Email, &c.FirstName, &c.LastName); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		c.ParticipantID, c.UserID = uint(pID), uint(uID)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list registered participants: %w", err)
	}
	return out, nil
}
