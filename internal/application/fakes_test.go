package application

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"randohub/internal/domain"
	"randohub/internal/domain/entities"
	"randohub/internal/ports/output"
)

// ---------------------------------------------------------------------------
// Participant store: enforces UNIQUE(user, event) like the real schema.
// ---------------------------------------------------------------------------

type pairKey struct{ eventID, userID uint }

type fakeParticipantRepo struct {
	mu      sync.Mutex
	nextID  uint
	rows    map[pairKey]*entities.Participant
	users   *fakeUserRepo
	findErr error
	listErr error
	// hideOnFind makes the next find report "not found" to simulate a lost race.
	hideOnFind bool
}

func newFakeParticipantRepo(users *fakeUserRepo) *fakeParticipantRepo {
	return &fakeParticipantRepo{rows: map[pairKey]*entities.Participant{}, users: users}
}

func (r *fakeParticipantRepo) Create(_ context.Context, p *entities.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := pairKey{p.EventID, p.UserID}
	if _, ok := r.rows[k]; ok {
		return domain.ErrParticipantConflict
	}
	r.nextID++
	p.ID = r.nextID
	p.RegisteredAt = time.Now()
	cp := *p
	r.rows[k] = &cp
	return nil
}

func (r *fakeParticipantRepo) FindByEventIDAndUserID(_ context.Context, eventID, userID uint) (*entities.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.hideOnFind {
		r.hideOnFind = false
		return nil, domain.ErrParticipationNotFound
	}
	p, ok := r.rows[pairKey{eventID, userID}]
	if !ok {
		return nil, domain.ErrParticipationNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeParticipantRepo) FindByEventID(_ context.Context, eventID uint) ([]entities.ParticipantView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.ParticipantView
	for k, p := range r.rows {
		if k.eventID == eventID {
			out = append(out, entities.ParticipantView{UserID: p.UserID, Status: p.Status})
		}
	}
	return out, nil
}

func (r *fakeParticipantRepo) UpdateStatus(_ context.Context, eventID, userID uint, status domain.ParticipantStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[pairKey{eventID, userID}]
	if !ok {
		return 0, nil
	}
	p.Status = status
	return 1, nil
}

func (r *fakeParticipantRepo) ListRegisteredWithContact(_ context.Context, eventID uint) ([]entities.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []entities.Contact
	for k, p := range r.rows {
		if k.eventID != eventID || p.Status != domain.StatusRegistered {
			continue
		}
		u := r.users.byID[p.UserID]
		out = append(out, entities.Contact{ParticipantID: p.ID, UserID: p.UserID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ParticipantID < out[j].ParticipantID })
	return out, nil
}

func (r *fakeParticipantRepo) count(eventID, userID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[pairKey{eventID, userID}]; ok {
		return 1
	}
	return 0
}

func (r *fakeParticipantRepo) row(eventID, userID uint) entities.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.rows[pairKey{eventID, userID}]
}

// ---------------------------------------------------------------------------
// Event store
// ---------------------------------------------------------------------------

type fakeEventRepo struct {
	nextID  uint
	byID    map[uint]*entities.Event
	findErr error
	updated []output.EventPatch
}

func newFakeEventRepo(events ...entities.Event) *fakeEventRepo {
	r := &fakeEventRepo{byID: map[uint]*entities.Event{}}
	for i := range events {
		e := events[i]
		r.byID[e.ID] = &e
		if e.ID > r.nextID {
			r.nextID = e.ID
		}
	}
	return r
}

func (r *fakeEventRepo) Create(_ context.Context, e *entities.Event) error {
	r.nextID++
	e.ID = r.nextID
	cp := *e
	r.byID[e.ID] = &cp
	return nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, id uint) (*entities.Event, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEventRepo) List(_ context.Context, _ output.EventFilter) ([]entities.Event, error) {
	out := make([]entities.Event, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeEventRepo) FindStartingBetween(_ context.Context, from, to time.Time) ([]entities.Event, error) {
	var out []entities.Event
	for _, e := range r.byID {
		if !e.Date.Before(from) && e.Date.Before(to) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) Update(_ context.Context, id uint, patch output.EventPatch) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrEventNotFound
	}
	r.updated = append(r.updated, patch)
	if name, ok := patch["name"].(string); ok {
		r.byID[id].Name = name
	}
	return nil
}

// ---------------------------------------------------------------------------
// User store
// ---------------------------------------------------------------------------

type fakeUserRepo struct {
	nextID uint
	byID   map[uint]*entities.User
}

func newFakeUserRepo(users ...entities.User) *fakeUserRepo {
	r := &fakeUserRepo{byID: map[uint]*entities.User{}}
	for i := range users {
		u := users[i]
		r.byID[u.ID] = &u
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *entities.User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (*entities.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) MarkVerified(_ context.Context, email, code string) error {
	for _, u := range r.byID {
		if u.Email == email && u.VerificationCode == code && code != "" {
			u.IsVerified = true
			u.VerificationCode = ""
			return nil
		}
	}
	return domain.ErrInvalidVerificationCode
}

func (r *fakeUserRepo) SetOrganizer(_ context.Context, email string, organizer bool) error {
	for _, u := range r.byID {
		if u.Email == email {
			u.Organizer = organizer
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindEvents(_ context.Context, _ uint, _ time.Time) ([]entities.UserEvent, []entities.UserEvent, error) {
	return nil, nil, nil
}

// ---------------------------------------------------------------------------
// Notifier: records sends, fails for configured recipients.
// ---------------------------------------------------------------------------

type sentMessage struct {
	to      string
	kind    domain.TemplateKind
	payload output.Payload
}

type fakeNotifier struct {
	mu     sync.Mutex
	sent   []sentMessage
	failTo map[string]bool
	err    error
}

func (n *fakeNotifier) Send(_ context.Context, to string, kind domain.TemplateKind, payload output.Payload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{to: to, kind: kind, payload: payload})
	if n.err != nil {
		return n.err
	}
	if n.failTo[to] {
		return errors.New("smtp: 451 temporary failure")
	}
	return nil
}

func (n *fakeNotifier) kinds() []domain.TemplateKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.TemplateKind, len(n.sent))
	for i, m := range n.sent {
		out[i] = m.kind
	}
	return out
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func hiker(id uint, email string) entities.User {
	return entities.User{ID: id, Email: email, FirstName: "Hiker", LastName: email, IsVerified: true}
}

func futureEvent(id uint, createdBy uint) entities.Event {
	return entities.Event{
		ID:        id,
		Name:      "Tour du Mont Aiguille",
		Location:  "Vercors",
		Date:      time.Now().Add(72 * time.Hour),
		CreatedBy: &createdBy,
	}
}
