package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"randohub/internal/domain"
	"randohub/internal/domain/entities"
	"randohub/internal/ports/output"
)

var _ output.UserRepository = (*UserRepository)(nil)

// UserRepository implements output.UserRepository using pgx.
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a UserRepository.
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `
SELECT id, email, password_hash, first_name, last_name, profile_picture,
       verification_code, is_verified, admin, super_admin, organizer, created_at
FROM users`

const createUser = `
INSERT INTO users (email, password_hash, first_name, last_name, profile_picture, verification_code)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	var row userRow
	err := r.db.QueryRow(ctx, createUser,
		user.Email, user.PasswordHash, user.FirstName, user.LastName,
		nullableText(user.ProfilePicture), nullableText(user.VerificationCode),
	).Scan(&row.ID, &row.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	user.ID = uint(row.ID)
	user.CreatedAt = pgtypeTimestamptzToTime(row.CreatedAt)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*entities.User, error) {
	return r.findOne(ctx, "get user by id", userColumns+"\nWHERE id = $1", int64(id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "get user by email", userColumns+"\nWHERE email = $1", email)
}

func (r *UserRepository) findOne(ctx context.Context, op, sql string, arg any) (*entities.User, error) {
	var row userRow
	if err := r.db.QueryRow(ctx, sql, arg).Scan(row.dest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u := userToDomain(row)
	return &u, nil
}

const markUserVerified = `
UPDATE users SET is_verified = TRUE, verification_code = NULL
WHERE email = $1 AND verification_code = $2`

func (r *UserRepository) MarkVerified(ctx context.Context, email, code string) error {
	tag, err := r.db.Exec(ctx, markUserVerified, email, code)
	if err != nil {
		return fmt.Errorf("mark user verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidVerificationCode
	}
	return nil
}

const setUserOrganizer = `UPDATE users SET organizer = $2 WHERE email = $1`

func (r *UserRepository) SetOrganizer(ctx context.Context, email string, organizer bool) error {
	tag, err := r.db.Exec(ctx, setUserOrganizer, email, organizer)
	if err != nil {
		return fmt.Errorf("set user organizer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

const (
	userPastEvents = `
SELECT e.id, e.name, e.description, e.location, e.start_point, e.date, e.duration,
       e.difficulty, e.created_by, e.effort_ipb, e.technicite, e.risques, e.altitude_min,
       e.altitude_max, e.denivele, e.visiorando, e.distance, e.created_at,
       u.first_name, u.last_name,
       (SELECT COUNT(*) FROM participants c WHERE c.event_id = e.id AND c.status = 'registered'),
       p.status
FROM participants p
JOIN events e ON p.event_id = e.id
LEFT JOIN users u ON e.created_by = u.id
WHERE p.user_id = $1 AND e.date < $2
ORDER BY e.date DESC`

	userFutureEvents = `
SELECT e.id, e.name, e.description, e.location, e.start_point, e.date, e.duration,
       e.difficulty, e.created_by, e.effort_ipb, e.technicite, e.risques, e.altitude_min,
       e.altitude_max, e.denivele, e.visiorando, e.distance, e.created_at,
       u.first_name, u.last_name,
       (SELECT COUNT(*) FROM participants c WHERE c.event_id = e.id AND c.status = 'registered'),
       p.status
FROM participants p
JOIN events e ON p.event_id = e.id
LEFT JOIN users u ON e.created_by = u.id
WHERE p.user_id = $1 AND e.date >= $2
ORDER BY e.date ASC`
)

// FindEvents splits the user's participations around now. Canceled rows are
// included so the caller can show them.
func (r *UserRepository) FindEvents(ctx context.Context, userID uint, now time.Time) (past, future []entities.UserEvent, err error) {
	if past, err = r.userEvents(ctx, userPastEvents, userID, now); err != nil {
		return nil, nil, fmt.Errorf("get user past events: %w", err)
	}
	if future, err = r.userEvents(ctx, userFutureEvents, userID, now); err != nil {
		return nil, nil, fmt.Errorf("get user future events: %w", err)
	}
	return past, future, nil
}

func (r *UserRepository) userEvents(ctx context.Context, sql string, userID uint, now time.Time) ([]entities.UserEvent, error) {
	rows, err := r.db.Query(ctx, sql, int64(userID), now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entities.UserEvent, 0)
	for rows.Next() {
		var (
			row    eventRow
			status string
		)
		if err := rows.Scan(append(row.dest(), &status)...); err != nil {
			return nil, err
		}
		s, err := domain.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		out = append(out, entities.UserEvent{Event: eventToDomain(row), Status: s})
	}
	return out, rows.Err()
}
