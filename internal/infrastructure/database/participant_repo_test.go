package database

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"randohub/internal/domain"
	"randohub/internal/domain/entities"
)

// testTx migrates the database named by RANDOHUB_TEST_DATABASE_URL and returns
// a transaction that is rolled back when the test ends.
func testTx(t *testing.T) DBTX {
	t.Helper()
	dsn := os.Getenv("RANDOHUB_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("RANDOHUB_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	require.NoError(t, RunMigrations(dsn, zerolog.Nop()))

	pool, err := NewPool(ctx, dsn, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(ctx) })
	return tx
}

func seedUser(t *testing.T, ctx context.Context, users *UserRepository, name string) *entities.User {
	t.Helper()
	u := &entities.User{
		Email:        fmt.Sprintf("%s.%d@randohub.test", name, time.Now().UnixNano()),
		PasswordHash: "x",
		FirstName:    name,
		LastName:     "Test",
	}
	require.NoError(t, users.Create(ctx, u))
	return u
}

func TestParticipantRepository_Postgres(t *testing.T) {
	db := testTx(t)
	ctx := context.Background()
	users, events, participants := NewUserRepository(db), NewEventRepository(db), NewParticipantRepository(db)

	alice := seedUser(t, ctx, users, "alice")
	bob := seedUser(t, ctx, users, "bob")
	carol := seedUser(t, ctx, users, "carol")
	event := &entities.Event{
		Name: "Dent de Crolles", Location: "Chartreuse", StartPoint: "Col du Coq",
		Date: time.Now().Add(72 * time.Hour), CreatedBy: &alice.ID,
	}
	require.NoError(t, events.Create(ctx, event))

	for _, u := range []*entities.User{alice, bob, carol} {
		p := &entities.Participant{EventID: event.ID, UserID: u.ID, Status: domain.StatusRegistered}
		require.NoError(t, participants.Create(ctx, p))
		assert.NotZero(t, p.ID)
		assert.False(t, p.RegisteredAt.IsZero())
	}
	first, err := participants.FindByEventIDAndUserID(ctx, event.ID, alice.ID)
	require.NoError(t, err)

	t.Run("reactivation keeps the row and registered_at", func(t *testing.T) {
		backdated := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
		_, err := db.Exec(ctx, `UPDATE participants SET registered_at = $1 WHERE id = $2`, backdated, int64(first.ID))
		require.NoError(t, err)

		n, err := participants.UpdateStatus(ctx, event.ID, alice.ID, domain.StatusCanceled)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		n, err = participants.UpdateStatus(ctx, event.ID, alice.ID, domain.StatusRegistered)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		got, err := participants.FindByEventIDAndUserID(ctx, event.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, domain.StatusRegistered, got.Status)
		assert.True(t, backdated.Equal(got.RegisteredAt), "registered_at = %s", got.RegisteredAt)
	})

	t.Run("only registered rows are contacted", func(t *testing.T) {
		_, err := participants.UpdateStatus(ctx, event.ID, carol.ID, domain.StatusCanceled)
		require.NoError(t, err)

		contacts, err := participants.ListRegisteredWithContact(ctx, event.ID)
		require.NoError(t, err)
		require.Len(t, contacts, 2)
		assert.Equal(t, alice.Email, contacts[0].Email)
		assert.Equal(t, bob.Email, contacts[1].Email)

		views, err := participants.FindByEventID(ctx, event.ID)
		require.NoError(t, err)
		require.Len(t, views, 3)
		assert.Equal(t, alice.ID, views[0].UserID, "oldest registration first")

		stored, err := events.FindByID(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.ParticipantCount)
	})

	t.Run("missing rows", func(t *testing.T) {
		n, err := participants.UpdateStatus(ctx, event.ID, carol.ID+1_000_000, domain.StatusCanceled)
		require.NoError(t, err)
		assert.Zero(t, n)

		_, err = participants.FindByEventIDAndUserID(ctx, event.ID, carol.ID+1_000_000)
		assert.ErrorIs(t, err, domain.ErrParticipationNotFound)
	})

	// Last: the unique violation aborts the transaction.
	t.Run("duplicate pair", func(t *testing.T) {
		err := participants.Create(ctx, &entities.Participant{EventID: event.ID, UserID: bob.ID, Status: domain.StatusRegistered})
		assert.ErrorIs(t, err, domain.ErrParticipantConflict)
	})
}
