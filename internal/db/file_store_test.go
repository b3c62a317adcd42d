package db

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
)

func TestFileStore_MissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "db.json"))

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "db.json")
	store := NewFileStore(path)

	data := models.NewDatabaseData()
	data.Events = append(data.Events, &models.Event{ID: "ev_001", Title: "Alumni Meet", Organizer: "collage", Attendees: []string{"alumni"}})
	require.NoError(t, store.Save(context.Background(), data))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"users\": []", "snapshot is indented with two spaces")

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	for _, key := range []string{"users", "opportunities", "events", "messages", "auditLogs"} {
		assert.Contains(t, doc, key)
	}

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded.Events, 1)
	assert.Equal(t, []string{"alumni"}, loaded.Events[0].Attendees)
}

func TestFileStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "db.json"))

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Save(context.Background(), models.NewDatabaseData()))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "db.json", entries[0].Name())
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSnapshot)
}
