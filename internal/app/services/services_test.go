package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/auth"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/repositories"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/db"
)

// MockAuditRecorder is a mock implementation of AuditRecorder.
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, entry AuditEntry) {
	m.Called(ctx, entry)
}

// MockNotifier is a mock implementation of MessageNotifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyMessage(recipient string, message *models.Message) {
	m.Called(recipient, message)
}

var (
	adminActor   = &auth.Principal{Role: models.RoleAdmin, Username: "admin"}
	collegeActor = &auth.Principal{Role: models.RoleCollege, Username: "collage"}
	alumniActor  = &auth.Principal{Role: models.RoleAlumni, Username: "alumni"}
	studentActor = &auth.Principal{Role: models.RoleStudents, Username: "students"}
)

func seedData() *models.DatabaseData {
	created := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	addr := "Model Town, Ludhiana"
	return &models.DatabaseData{
		Users: []*models.User{
			{
				ID: "al_0001", Role: models.RoleAlumni, Username: "alumni", Name: "Harpreet Kaur",
				Email: "harpreet.kaur@example.com", Phone: "+91-98140-11111", College: "PEC", Degree: "B.Tech",
				Branch: "Computer Science", Year: 2018, GPA: "8.6", Skills: []string{"React", "Node.js"},
				Address: &addr, CreatedAt: created,
				AlumniProfile: &models.AlumniProfile{
					CurrentJob: models.CurrentJob{Title: "Senior Engineer", Company: "Infosys"},
				},
			},
			{
				ID: "al_0002", Role: models.RoleAlumni, Username: "gurpreet.singh", Name: "Gurpreet Singh",
				Year: 2021, CreatedAt: created, AlumniProfile: &models.AlumniProfile{},
			},
			{ID: "st_0001", Role: models.RoleStudents, Username: "students", Name: "Simran Gill", CreatedAt: created},
		},
	}
}

func newTestRepos(t *testing.T) *repositories.Repositories {
	t.Helper()
	database, err := db.Open(context.Background(), db.NewMemoryStore(), db.Options{
		Driver: "memory",
		Seeder: func() (*models.DatabaseData, error) { return seedData(), nil },
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)
	return repositories.NewRepositories(database)
}

// expectAudit registers an expectation for one entry with the given action.
func expectAudit(m *MockAuditRecorder, action models.AuditAction, targetID string) *mock.Call {
	return m.On("Record", mock.Anything, mock.MatchedBy(func(e AuditEntry) bool {
		return e.Action == action && e.TargetID == targetID
	}))
}
