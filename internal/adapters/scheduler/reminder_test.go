package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"randohub/internal/domain/entities"
	"randohub/internal/ports/input"
	"randohub/internal/ports/output"
)

type stubEvents struct {
	output.EventRepository
	events   []entities.Event
	err      error
	from, to time.Time
}

func (s *stubEvents) FindStartingBetween(_ context.Context, from, to time.Time) ([]entities.Event, error) {
	s.from, s.to = from, to
	return s.events, s.err
}

type stubBulk struct {
	calls []uint
	fail  map[uint]bool
}

func (s *stubBulk) NotifyAll(_ context.Context, eventID uint) (input.NotifyResult, error) {
	s.calls = append(s.calls, eventID)
	if s.fail[eventID] {
		return input.NotifyResult{}, errors.New("event vanished")
	}
	return input.NotifyResult{Count: 1, Total: 1}, nil
}

type stubGuard struct {
	taken    map[uint]bool
	err      error
	released []uint
}

func (g *stubGuard) Acquire(_ context.Context, eventID uint, _ time.Time, _ time.Duration) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	if g.taken[eventID] {
		return false, nil
	}
	g.taken[eventID] = true
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, eventID uint, _ time.Time) error {
	g.released = append(g.released, eventID)
	delete(g.taken, eventID)
	return nil
}

var fixedNow = time.Date(2026, 7, 14, 8, 0, 0, 0, time.UTC)

func newScheduler(events *stubEvents, bulk *stubBulk, guard *stubGuard) *ReminderScheduler {
	s := NewReminderScheduler("0 * * * *", 24*time.Hour, events, bulk, guard, zerolog.Nop())
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestRunOnce(t *testing.T) {
	events := &stubEvents{events: []entities.Event{{ID: 1, Date: fixedNow.Add(3 * time.Hour)}, {ID: 2, Date: fixedNow.Add(20 * time.Hour)}}}
	bulk := &stubBulk{}
	s := newScheduler(events, bulk, &stubGuard{taken: map[uint]bool{}})

	assert.Equal(t, 2, s.RunOnce(context.Background()))
	assert.Equal(t, []uint{1, 2}, bulk.calls)
	assert.Equal(t, fixedNow, events.from)
	assert.Equal(t, fixedNow.Add(24*time.Hour), events.to)

	// Second tick within the window sends nothing new.
	assert.Equal(t, 0, s.RunOnce(context.Background()))
	assert.Len(t, bulk.calls, 2)
}

func TestRunOnceGuardDown(t *testing.T) {
	events := &stubEvents{events: []entities.Event{{ID: 1}}}
	bulk := &stubBulk{}
	s := newScheduler(events, bulk, &stubGuard{err: errors.New("redis down")})

	assert.Equal(t, 1, s.RunOnce(context.Background()))
	assert.Equal(t, []uint{1}, bulk.calls)
}

func TestRunOnceErrors(t *testing.T) {
	s := newScheduler(&stubEvents{err: errors.New("db down")}, &stubBulk{}, &stubGuard{taken: map[uint]bool{}})
	assert.Equal(t, 0, s.RunOnce(context.Background()))

	bulk := &stubBulk{fail: map[uint]bool{1: true}}
	s = newScheduler(&stubEvents{events: []entities.Event{{ID: 1}, {ID: 2}}}, bulk, &stubGuard{taken: map[uint]bool{}})
	assert.Equal(t, 1, s.RunOnce(context.Background()))
	assert.Equal(t, []uint{1, 2}, bulk.calls)
}

func TestRunOnceFailedReminderIsRetried(t *testing.T) {
	guard := &stubGuard{taken: map[uint]bool{}}
	bulk := &stubBulk{fail: map[uint]bool{1: true}}
	s := newScheduler(&stubEvents{events: []entities.Event{{ID: 1}, {ID: 2}}}, bulk, guard)

	assert.Equal(t, 1, s.RunOnce(context.Background()))
	assert.Equal(t, []uint{1}, guard.released)
	assert.False(t, guard.taken[1])
	assert.True(t, guard.taken[2])

	bulk.fail = nil
	assert.Equal(t, 1, s.RunOnce(context.Background()))
	assert.Equal(t, []uint{1, 2, 1}, bulk.calls)
}

func TestRunOnceGuardDownSkipsRelease(t *testing.T) {
	guard := &stubGuard{err: errors.New("redis down")}
	s := newScheduler(&stubEvents{events: []entities.Event{{ID: 1}}}, &stubBulk{fail: map[uint]bool{1: true}}, guard)

	assert.Equal(t, 0, s.RunOnce(context.Background()))
	assert.Empty(t, guard.released)
}

func TestStartRejectsBadSpec(t *testing.T) {
	s := NewReminderScheduler("not a cron", time.Hour, &stubEvents{}, &stubBulk{}, &stubGuard{}, zerolog.Nop())
	require.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	s := NewReminderScheduler("@every 1h", time.Hour, &stubEvents{}, &stubBulk{}, &stubGuard{}, zerolog.Nop())
	require.NoError(t, s.Start())
	s.Stop()
}
