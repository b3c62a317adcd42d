package db

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/apperrors"
)

// failingStore wraps a MemoryStore and fails Save or Load on demand.
type failingStore struct {
	*MemoryStore
	failSave bool
	failLoad bool
}

var errDiskFull = errors.New("disk full")

func (s *failingStore) Load(ctx context.Context) (*models.DatabaseData, error) {
	if s.failLoad {
		return nil, errors.New("corrupt snapshot")
	}
	return s.MemoryStore.Load(ctx)
}

func (s *failingStore) Save(ctx context.Context, data *models.DatabaseData) error {
	if s.failSave {
		return errDiskFull
	}
	return s.MemoryStore.Save(ctx, data)
}

func seedOne() (*models.DatabaseData, error) {
	return &models.DatabaseData{
		Users: []*models.User{{ID: "al_0001", Role: models.RoleAlumni, Username: "alumni", Name: "Harpreet Kaur"}},
	}, nil
}

func openTestDatabase(t *testing.T, store Store, seeder Seeder) *Database {
	t.Helper()
	database, err := Open(context.Background(), store, Options{
		Driver: "memory",
		Seeder: seeder,
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)
	return database
}

func TestOpen_SeedsEmptyStore(t *testing.T) {
	store := NewMemoryStore()
	database := openTestDatabase(t, store, seedOne)

	assert.Equal(t, 1, store.Saves(), "seed snapshot should be written once")

	snap := database.Snapshot()
	require.Len(t, snap.Users, 1)
	assert.NotNil(t, snap.Users[0].AlumniProfile, "alumni are normalized with a profile")
	assert.Empty(t, snap.Opportunities)
	assert.NotNil(t, snap.AuditLogs)
}

func TestOpen_LoadsExistingSnapshot(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), &models.DatabaseData{
		Events: []*models.Event{{ID: "ev_001", Title: "Meetup", Organizer: "collage"}},
	}))

	seederCalled := false
	database := openTestDatabase(t, store, func() (*models.DatabaseData, error) {
		seederCalled = true
		return seedOne()
	})

	assert.False(t, seederCalled)
	snap := database.Snapshot()
	require.Len(t, snap.Events, 1)
	assert.Equal(t, []string{}, snap.Events[0].Attendees)
	assert.Empty(t, snap.Users)
}

func TestOpen_LoadFailure(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(), failLoad: true}

	t.Run("fail closed", func(t *testing.T) {
		_, err := Open(context.Background(), store, Options{Logger: zerolog.Nop()})
		assert.Error(t, err)
	})

	t.Run("fail open", func(t *testing.T) {
		database, err := Open(context.Background(), store, Options{FailOpen: true, Logger: zerolog.Nop()})
		require.NoError(t, err)
		snap := database.Snapshot()
		assert.Empty(t, snap.Users)
		assert.NotNil(t, snap.Users)
	})
}

func TestUpdate_PersistsBeforeVisible(t *testing.T) {
	store := NewMemoryStore()
	database := openTestDatabase(t, store, nil)

	err := database.Update(context.Background(), func(data *models.DatabaseData) error {
		data.Messages = append(data.Messages, &models.Message{ID: "msg_001", From: "alumni", To: "students", Message: "hi"})
		return nil
	})
	require.NoError(t, err)

	reloaded, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, reloaded.Messages, 1)
	assert.Equal(t, "msg_001", reloaded.Messages[0].ID)
}

func TestUpdate_CallbackErrorChangesNothing(t *testing.T) {
	store := NewMemoryStore()
	database := openTestDatabase(t, store, seedOne)
	saves := store.Saves()

	boom := errors.New("boom")
	err := database.Update(context.Background(), func(data *models.DatabaseData) error {
		data.Users = nil
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Len(t, database.Snapshot().Users, 1)
	assert.Equal(t, saves, store.Saves())
}

func TestUpdate_SaveFailureKeepsPreviousState(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore()}
	database := openTestDatabase(t, store, seedOne)

	store.failSave = true
	err := database.Update(context.Background(), func(data *models.DatabaseData) error {
		data.Users = append(data.Users, &models.User{ID: "st_0001", Role: models.RoleStudents, Username: "students", Name: "Simran"})
		return nil
	})

	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.ErrorIs(t, err, errDiskFull)
	assert.Len(t, database.Snapshot().Users, 1, "memory must not run ahead of the store")
}

func TestSnapshot_IsACopy(t *testing.T) {
	database := openTestDatabase(t, NewMemoryStore(), seedOne)

	snap := database.Snapshot()
	snap.Users[0].Name = "changed"

	assert.Equal(t, "Harpreet Kaur", database.Snapshot().Users[0].Name)
}
