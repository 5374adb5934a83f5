package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"randohub/internal/domain"
	"randohub/internal/domain/entities"
	"randohub/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

// EventRepository implements output.EventRepository using pgx.
type EventRepository struct {
	db DBTX
}

// NewEventRepository creates an EventRepository.
func NewEventRepository(db DBTX) *EventRepository {
	return &EventRepository{db: db}
}

// eventColumns matches eventRow.dest. participant_count only counts live
// registrations.
const eventColumns = `
SELECT e.id, e.name, e.description, e.location, e.start_point, e.date, e.duration,
       e.difficulty, e.created_by, e.effort_ipb, e.technicite, e.risques, e.altitude_min,
       e.altitude_max, e.denivele, e.visiorando, e.distance, e.created_at,
       u.first_name, u.last_name,
       (SELECT COUNT(*) FROM participants p WHERE p.event_id = e.id AND p.status = 'registered')
FROM events e
LEFT JOIN users u ON e.created_by = u.id`

// patchableColumns is the allow-list for Update.
var patchableColumns = map[string]struct{}{
	"name": {}, "description": {}, "location": {}, "start_point": {}, "date": {},
	"duration": {}, "difficulty": {}, "effort_ipb": {}, "technicite": {}, "risques": {},
	"altitude_min": {}, "altitude_max": {}, "denivele": {}, "visiorando": {}, "distance": {},
}

const createEvent = `
INSERT INTO events (
    name, description, location, start_point, date, duration, difficulty, created_by,
    effort_ipb, technicite, risques, altitude_min, altitude_max, denivele, visiorando, distance
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
RETURNING id, created_at`

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	var createdBy any
	if event.CreatedBy != nil {
		createdBy = int64(*event.CreatedBy)
	}
	var row eventRow
	err := r.db.QueryRow(ctx, createEvent,
		event.Name, nullableText(event.Description), event.Location, event.StartPoint, event.Date,
		ptrInt4(event.DurationMinutes), nullableText(event.Difficulty), createdBy,
		ptrInt4(event.EffortIPB), ptrInt4(event.Technicite), ptrInt4(event.Risques),
		ptrInt4(event.AltitudeMin), ptrInt4(event.AltitudeMax), ptrInt4(event.Denivele),
		ptrInt4(event.Visiorando), ptrFloat8(event.Distance),
	).Scan(&row.ID, &row.CreatedAt)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	event.ID = uint(row.ID)
	event.CreatedAt = pgtypeTimestamptzToTime(row.CreatedAt)
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (*entities.Event, error) {
	var row eventRow
	err := r.db.QueryRow(ctx, eventColumns+"\nWHERE e.id = $1", int64(id)).Scan(row.dest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	e := eventToDomain(row)
	return &e, nil
}

func (r *EventRepository) List(ctx context.Context, filter output.EventFilter) ([]entities.Event, error) {
	where, args := buildEventWhere(filter)
	return r.query(ctx, "list events", eventColumns+where+"\nORDER BY e.date ASC", args...)
}

func (r *EventRepository) FindStartingBetween(ctx context.Context, from, to time.Time) ([]entities.Event, error) {
	return r.query(ctx, "get events starting between",
		eventColumns+"\nWHERE e.date >= $1 AND e.date < $2\nORDER BY e.date ASC", from, to)
}

func (r *EventRepository) Update(ctx context.Context, id uint, patch output.EventPatch) error {
	set, args, err := buildEventPatch(patch)
	if err != nil {
		return err
	}
	if set == "" {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return nil
	}
	args = append(args, int64(id))
	sql := fmt.Sprintf("UPDATE events SET %s WHERE id = $%d", set, len(args))
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) query(ctx context.Context, op, sql string, args ...any) ([]entities.Event, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]entities.Event, 0)
	for rows.Next() {
		var row eventRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, eventToDomain(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// buildEventWhere returns a WHERE clause with positional placeholders for the
// non-zero fields of filter.
func buildEventWhere(filter output.EventFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if !filter.DateFrom.IsZero() {
		add("e.date >= $%d", filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		add("e.date <= $%d", filter.DateTo)
	}
	if filter.Difficulty != "" {
		add("e.difficulty = $%d", filter.Difficulty)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "\nWHERE " + strings.Join(conds, " AND "), args
}

// buildEventPatch returns "col = $1, col = $2" in sorted column order.
func buildEventPatch(patch output.EventPatch) (string, []any, error) {
	keys := make([]string, 0, len(patch))
	for k := range patch {
		if _, ok := patchableColumns[k]; !ok {
			return "", nil, fmt.Errorf("%w: %s", domain.ErrUnknownField, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sets := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		args = append(args, patch[k])
		sets = append(sets, fmt.Sprintf("%s = $%d", k, len(args)))
	}
	return strings.Join(sets, ", "), args, nil
}
