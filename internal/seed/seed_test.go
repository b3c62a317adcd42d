package seed

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
)

func TestParse_FillsMissingCollections(t *testing.T) {
	data, err := Parse([]byte(`{"users":[{"id":"al_0001","role":"alumni","username":"alumni","name":"A"}]}`))
	require.NoError(t, err)

	require.Len(t, data.Users, 1)
	assert.NotNil(t, data.Users[0].AlumniProfile)
	assert.NotNil(t, data.Opportunities)
	assert.NotNil(t, data.Events)
	assert.NotNil(t, data.Messages)
	assert.NotNil(t, data.AuditLogs)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`[]`))
	assert.Error(t, err)
}

func TestLoad_BundledSeed(t *testing.T) {
	data, err := Load(filepath.Join("..", "..", "seed", "alumni.json"))
	require.NoError(t, err)

	var alumni, students int
	for _, u := range data.Users {
		switch u.Role {
		case models.RoleAlumni:
			alumni++
		case models.RoleStudents:
			students++
		}
	}
	assert.Equal(t, 2, alumni)
	assert.Equal(t, 1, students)
	require.Len(t, data.Events, 1)
	assert.Equal(t, "collage", data.Events[0].Organizer)
}

func TestFromFile(t *testing.T) {
	t.Run("empty path seeds nothing", func(t *testing.T) {
		data, err := FromFile("", zerolog.Nop())()
		require.NoError(t, err)
		assert.Empty(t, data.Users)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := FromFile(filepath.Join(t.TempDir(), "nope.json"), zerolog.Nop())()
		assert.Error(t, err)
	})
}
