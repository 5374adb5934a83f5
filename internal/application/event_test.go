package application

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"randohub/internal/domain"
	"randohub/internal/ports/input"
	"randohub/internal/ports/output"
)

type stubBulk struct {
	called  chan uint
	release chan struct{}
}

func (b *stubBulk) NotifyAll(_ context.Context, eventID uint) (input.NotifyResult, error) {
	b.called <- eventID
	if b.release != nil {
		<-b.release
	}
	return input.NotifyResult{}, nil
}

func newEventFixture() (*EventService, *fakeEventRepo, *stubBulk) {
	organizer := hiker(1, "orga@example.com")
	organizer.Organizer = true
	admin := hiker(3, "admin@example.com")
	admin.Admin = true
	users := newFakeUserRepo(organizer, hiker(2, "bob@example.com"), admin)
	events := newFakeEventRepo(futureEvent(10, 1))
	bulk := &stubBulk{called: make(chan uint, 1)}
	svc := NewEventService(events, newFakeParticipantRepo(users), users, bulk, zerolog.Nop())
	return svc, events, bulk
}

func TestEventService_CreateEvent(t *testing.T) {
	svc, _, bulk := newEventFixture()

	event, err := svc.CreateEvent(context.Background(), input.NewEvent{
		Name:       "  Crêtes du Semnoz ",
		Location:   "Annecy",
		StartPoint: "Col de Leschaux",
		Date:       time.Now().Add(48 * time.Hour),
		Difficulty: domain.DifficultyMedium,
	}, 1, true)
	require.NoError(t, err)

	assert.NotZero(t, event.ID)
	assert.Equal(t, "Crêtes du Semnoz", event.Name)
	require.NotNil(t, event.CreatedBy)
	assert.Equal(t, uint(1), *event.CreatedBy)

	select {
	case id := <-bulk.called:
		assert.Equal(t, event.ID, id)
	case <-time.After(time.Second):
		t.Fatal("expected background notify")
	}
}

func TestEventService_WaitDrainsBackgroundNotify(t *testing.T) {
	svc, _, bulk := newEventFixture()
	bulk.release = make(chan struct{})

	_, err := svc.CreateEvent(context.Background(), input.NewEvent{
		Name: "Lac Blanc", Location: "Chamonix", StartPoint: "Flégère", Date: time.Now().Add(24 * time.Hour),
	}, 1, true)
	require.NoError(t, err)
	<-bulk.called

	done := make(chan struct{})
	go func() {
		svc.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned while a run was still sending")
	case <-time.After(50 * time.Millisecond):
	}

	close(bulk.release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after the run finished")
	}
}

func TestEventService_CreateEvent_Rules(t *testing.T) {
	svc, _, _ := newEventFixture()
	ctx := context.Background()
	valid := input.NewEvent{Name: "x", Location: "y", StartPoint: "z", Date: time.Now().Add(time.Hour)}

	_, err := svc.CreateEvent(ctx, valid, 2, false)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	past := valid
	past.Date = time.Now().Add(-time.Hour)
	_, err = svc.CreateEvent(ctx, past, 1, false)
	assert.ErrorIs(t, err, domain.ErrEventInPast)

	bad := valid
	bad.Difficulty = "extreme"
	_, err = svc.CreateEvent(ctx, bad, 1, false)
	assert.ErrorIs(t, err, domain.ErrInvalidDifficulty)
}

func TestEventService_EnsureOpenForRegistration(t *testing.T) {
	svc, events, _ := newEventFixture()
	ctx := context.Background()

	_, err := svc.EnsureOpenForRegistration(ctx, 10, time.Now())
	assert.NoError(t, err)

	_, err = svc.EnsureOpenForRegistration(ctx, 10, events.byID[10].Date.Add(time.Minute))
	assert.ErrorIs(t, err, domain.ErrEventInPast)

	_, err = svc.EnsureOpenForRegistration(ctx, 99, time.Now())
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestEventService_UpdateEvent_Authorization(t *testing.T) {
	svc, events, _ := newEventFixture()
	ctx := context.Background()

	_, err := svc.UpdateEvent(ctx, 10, output.EventPatch{"name": "Nouveau"}, 2)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := svc.UpdateEvent(ctx, 10, output.EventPatch{"name": "Nouveau"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "Nouveau", updated.Name)

	_, err = svc.UpdateEvent(ctx, 10, output.EventPatch{"name": "Admin edit"}, 3)
	assert.NoError(t, err)
	assert.Len(t, events.updated, 2)
}

func TestEventService_ListEvents_RejectsBadFilters(t *testing.T) {
	svc, _, _ := newEventFixture()
	ctx := context.Background()

	_, err := svc.ListEvents(ctx, output.EventFilter{Difficulty: "extreme"})
	assert.ErrorIs(t, err, domain.ErrInvalidDifficulty)

	now := time.Now()
	_, err = svc.ListEvents(ctx, output.EventFilter{DateFrom: now, DateTo: now.Add(-time.Hour)})
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)

	events, err := svc.ListEvents(ctx, output.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestEventService_CanNotify(t *testing.T) {
	svc, _, _ := newEventFixture()
	ctx := context.Background()

	assert.NoError(t, svc.CanNotify(ctx, 10, 1))
	assert.NoError(t, svc.CanNotify(ctx, 10, 3))
	assert.ErrorIs(t, svc.CanNotify(ctx, 10, 2), domain.ErrForbidden)
	assert.ErrorIs(t, svc.CanNotify(ctx, 11, 1), domain.ErrEventNotFound)
}
