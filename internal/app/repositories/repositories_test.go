package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/db"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/apperrors"
)

func fixture() *models.DatabaseData {
	created := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	return &models.DatabaseData{
		Users: []*models.User{
			{
				ID: "al_0001", Role: models.RoleAlumni, Username: "alumni", Name: "Harpreet Kaur",
				Year: 2018, Branch: "Computer Science", Skills: []string{"React", "Node.js"}, CreatedAt: created,
				AlumniProfile: &models.AlumniProfile{
					CurrentJob: models.CurrentJob{Title: "Senior Engineer", Company: "Infosys"},
					Mentorship: models.Mentorship{IsMentor: true},
					Donations:  []models.Donation{{ID: "d1", Amount: 5000}},
				},
			},
			{
				ID: "al_0002", Role: models.RoleAlumni, Username: "gurpreet.singh", Name: "Gurpreet Singh",
				Year: 2021, Branch: "Electronics", Skills: []string{"Embedded C", "IoT"}, CreatedAt: created,
				AlumniProfile: &models.AlumniProfile{
					CurrentJob: models.CurrentJob{Title: "Firmware Engineer", Company: "Bosch"},
					Donations:  []models.Donation{{ID: "d2", Amount: 2500}},
				},
			},
			{ID: "st_0001", Role: models.RoleStudents, Username: "students", Name: "Simran Gill", CreatedAt: created},
		},
		Events: []*models.Event{{ID: "ev_001", Title: "Alumni Meet", Organizer: "collage"}},
	}
}

func newTestRepositories(t *testing.T) (*Repositories, *db.MemoryStore) {
	t.Helper()
	store := db.NewMemoryStore()
	database, err := db.Open(context.Background(), store, db.Options{
		Driver: "memory",
		Seeder: func() (*models.DatabaseData, error) { return fixture(), nil },
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)
	return NewRepositories(database), store
}

func raw(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

func TestUserRepository_GetAlumni(t *testing.T) {
	repos, _ := newTestRepositories(t)

	all := repos.Users.GetAlumni(models.AlumniFilter{})
	require.Len(t, all, 2)
	assert.Equal(t, "al_0001", all[0].ID, "storage order is kept")

	bosch := repos.Users.GetAlumni(models.AlumniFilter{Company: "bosch"})
	require.Len(t, bosch, 1)
	assert.Equal(t, "al_0002", bosch[0].ID)

	assert.Empty(t, repos.Users.GetAlumni(models.AlumniFilter{Year: 2021, Skill: "react"}))
	assert.Len(t, repos.Users.GetStudents(), 1)
}

func TestUserRepository_GetReturnsCopies(t *testing.T) {
	repos, _ := newTestRepositories(t)

	u, err := repos.Users.GetByID("al_0001")
	require.NoError(t, err)
	u.Name = "mutated"

	again, err := repos.Users.GetByID("al_0001")
	require.NoError(t, err)
	assert.Equal(t, "Harpreet Kaur", again.Name)

	_, err = repos.Users.GetByUsername("nobody")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserRepository_Create(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	created, err := repos.Users.Create(ctx, &models.User{ID: "al_0003", Role: models.RoleAlumni, Username: "al_0003", Name: "Navdeep"}, nil)
	require.NoError(t, err)
	assert.NotNil(t, created.AlumniProfile)
	_, err = repos.Users.GetByID("al_0003")
	require.NoError(t, err)

	_, err = repos.Users.Create(ctx, &models.User{ID: "al_0003", Role: models.RoleAlumni, Username: "x", Name: "Dup"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	_, err = repos.Users.Create(ctx, &models.User{ID: "al_0004", Role: models.RoleAlumni, Username: "x"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "name is required")

	_, err = repos.Users.Create(ctx, &models.User{ID: "al_0005", Role: models.RoleAlumni, Username: "x", Name: "Y", Email: "not-an-email"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = repos.Users.Create(ctx, &models.User{Role: models.RoleAlumni, Name: "No id"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "an empty id needs an allocator")
}

func TestUserRepository_CreateAllocatesID(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	created, err := repos.Users.Create(ctx, &models.User{Role: models.RoleAlumni, Name: "Navdeep"}, SequentialIDs("al_", 4))
	require.NoError(t, err)
	assert.Equal(t, "al_0003", created.ID)
	assert.Equal(t, "al_0003", created.Username, "username defaults to the id")

	student, err := repos.Users.Create(ctx, &models.User{Role: models.RoleStudents, Name: "Aman"}, SequentialIDs("st_", 4))
	require.NoError(t, err)
	assert.Equal(t, "st_0002", student.ID)

	kept, err := repos.Users.Create(ctx, &models.User{ID: "al_0100", Role: models.RoleAlumni, Name: "Fixed"}, SequentialIDs("al_", 4))
	require.NoError(t, err)
	assert.Equal(t, "al_0100", kept.ID, "a supplied id is kept")
}

func TestUserRepository_ConcurrentCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	database, err := db.Open(context.Background(), db.NewFileStore(path), db.Options{
		Driver: "file",
		Seeder: func() (*models.DatabaseData, error) { return fixture(), nil },
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)
	repos := NewRepositories(database)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repos.Users.Create(context.Background(), &models.User{Role: models.RoleAlumni, Name: "X"}, SequentialIDs("al_", 4))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	alumni := repos.Users.GetAlumni(models.AlumniFilter{})
	require.Len(t, alumni, n+2)
	seen := map[string]bool{}
	for _, u := range alumni {
		assert.False(t, seen[u.ID], "duplicate id %s", u.ID)
		seen[u.ID] = true
	}
	assert.True(t, seen["al_0022"])

	persisted, err := db.NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, persisted.Users, n+3)
}

func TestUserRepository_Update(t *testing.T) {
	repos, store := newTestRepositories(t)
	ctx := context.Background()

	updated, err := repos.Users.Update(ctx, "al_0002", models.Patch{
		"name":        raw("Gurpreet S."),
		"current_job": raw(map[string]string{"title": "Lead", "company": "Bosch India"}),
		"id":          raw("hijack"),
		"role":        raw("admin"),
		"created_at":  raw("2000-01-01T00:00:00Z"),
	})
	require.NoError(t, err)

	assert.Equal(t, "al_0002", updated.ID)
	assert.Equal(t, models.RoleAlumni, updated.Role)
	assert.Equal(t, 2024, updated.CreatedAt.Year())
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	assert.Equal(t, "Gurpreet S.", updated.Name)
	assert.Equal(t, "Bosch India", updated.Company())
	assert.Equal(t, []string{"Embedded C", "IoT"}, updated.Skills, "untouched fields survive")

	persisted, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Gurpreet S.", persisted.Users[1].Name)
}

func TestUserRepository_UpdateChangesOnlyPatchedField(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	before, err := repos.Users.GetByID("al_0001")
	require.NoError(t, err)
	othersBefore := repos.Users.GetAll()[1:]

	updated, err := repos.Users.Update(ctx, "al_0001", models.Patch{"branch": raw("Information Technology")})
	require.NoError(t, err)

	expected := before.Clone()
	expected.Normalize()
	expected.Branch = "Information Technology"
	expected.UpdatedAt = updated.UpdatedAt
	assert.JSONEq(t, string(raw(expected)), string(raw(updated)))

	stored, err := repos.Users.GetByID("al_0001")
	require.NoError(t, err)
	assert.JSONEq(t, string(raw(updated)), string(raw(stored)))

	assert.Equal(t, othersBefore, repos.Users.GetAll()[1:], "other records are untouched")
}

func TestUserRepository_FailedUpdateLeavesAggregate(t *testing.T) {
	repos, store := newTestRepositories(t)
	ctx := context.Background()

	usersBefore := repos.Users.GetAll()
	persistedBefore, err := store.Load(ctx)
	require.NoError(t, err)

	_, err = repos.Users.Update(ctx, "al_0001", models.Patch{"year": raw("twenty")})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = repos.Users.Update(ctx, "al_9999", models.Patch{"name": raw("Ghost")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.Equal(t, usersBefore, repos.Users.GetAll())
	persistedAfter, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, persistedBefore, persistedAfter)
}

func TestUserRepository_DeleteTwice(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	require.NoError(t, repos.Users.Delete(ctx, "al_0002"))
	assert.ErrorIs(t, repos.Users.Delete(ctx, "al_0002"), apperrors.ErrNotFound)
	assert.Len(t, repos.Users.GetAlumni(models.AlumniFilter{}), 1)
}

func TestOpportunityRepository_ApplyOnce(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	_, err := repos.Opportunities.Create(ctx, &models.Opportunity{
		ID: "op_001", Title: "Frontend Intern", PostedBy: "alumni", Type: models.OpportunityInternship,
	}, nil)
	require.NoError(t, err)

	require.NoError(t, repos.Opportunities.Apply(ctx, "op_001", "st_0001"))
	err = repos.Opportunities.Apply(ctx, "op_001", "st_0001")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)

	op, err := repos.Opportunities.GetByID("op_001")
	require.NoError(t, err)
	require.Len(t, op.Applications, 1)
	assert.Equal(t, "st_0001", op.Applications[0].UserID)
	assert.Equal(t, models.ApplicationPending, op.Applications[0].Status)

	assert.ErrorIs(t, repos.Opportunities.Apply(ctx, "op_404", "st_0001"), apperrors.ErrNotFound)
}

func TestOpportunityRepository_SetApplicationStatus(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	_, err := repos.Opportunities.Create(ctx, &models.Opportunity{
		ID: "op_001", Title: "Firmware role", PostedBy: "al_0002", Type: models.OpportunityJob,
	}, nil)
	require.NoError(t, err)
	require.NoError(t, repos.Opportunities.Apply(ctx, "op_001", "students"))

	op, err := repos.Opportunities.SetApplicationStatus(ctx, "op_001", "students", models.ApplicationAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationAccepted, op.Applications[0].Status)

	_, err = repos.Opportunities.SetApplicationStatus(ctx, "op_001", "alumni", models.ApplicationRejected)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = repos.Opportunities.SetApplicationStatus(ctx, "op_001", "students", "maybe")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestOpportunityRepository_UpdateAndDelete(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	_, err := repos.Opportunities.Create(ctx, &models.Opportunity{
		ID: "op_001", Title: "Research grant", PostedBy: "collage", Type: models.OpportunityFunding,
	}, nil)
	require.NoError(t, err)

	updated, err := repos.Opportunities.Update(ctx, "op_001", models.Patch{"location": raw("Chandigarh")})
	require.NoError(t, err)
	assert.Equal(t, "Chandigarh", updated.Location)
	assert.Equal(t, "Research grant", updated.Title)

	_, err = repos.Opportunities.Update(ctx, "op_001", models.Patch{"type": raw("gig")})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	require.NoError(t, repos.Opportunities.Delete(ctx, "op_001"))
	assert.ErrorIs(t, repos.Opportunities.Delete(ctx, "op_001"), apperrors.ErrNotFound)
}

func TestEventRepository_RSVP(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	require.NoError(t, repos.Events.RSVP(ctx, "ev_001", "alumni"))
	assert.ErrorIs(t, repos.Events.RSVP(ctx, "ev_001", "alumni"), apperrors.ErrAlreadyRSVPed)
	assert.ErrorIs(t, repos.Events.RSVP(ctx, "ev_404", "alumni"), apperrors.ErrNotFound)

	ev, err := repos.Events.GetByID("ev_001")
	require.NoError(t, err)
	assert.Equal(t, []string{"alumni"}, ev.Attendees)
}

func TestMessageRepository(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	msgs := []*models.Message{
		{From: "alumni", To: "students", Message: "Welcome"},
		{From: "students", To: "alumni", Message: "Thanks"},
		{From: "admin", To: "students", Message: "Reminder"},
	}
	for i, m := range msgs {
		created, err := repos.Messages.Create(ctx, m, SequentialIDs("msg_", 3))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("msg_%03d", i+1), created.ID)
	}

	assert.Len(t, repos.Messages.GetMessages("students", ""), 3)
	assert.Len(t, repos.Messages.GetMessages("students", "alumni"), 2)
	assert.Len(t, repos.Messages.GetMessages("alumni", ""), 2)
	assert.Len(t, repos.Messages.GetAll(), 3)

	_, err := repos.Messages.MarkRead(ctx, "msg_001", "alumni")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	read, err := repos.Messages.MarkRead(ctx, "msg_001", "students")
	require.NoError(t, err)
	assert.True(t, read.Read)

	_, err = repos.Messages.Create(ctx, &models.Message{ID: "msg_004", From: "alumni", To: "students"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "empty text is rejected")
}

func TestAuditLogRepository(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	entry := &models.AuditLog{ID: "audit_1", ActorID: "admin", ActorRole: "admin", Action: models.ActionExportData, TargetID: "all"}
	require.NoError(t, repos.AuditLogs.Create(ctx, entry))
	assert.ErrorIs(t, repos.AuditLogs.Create(ctx, entry), apperrors.ErrAlreadyExists)

	logs := repos.AuditLogs.GetAll()
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActionExportData, logs[0].Action)
}

func TestAnalyticsRepository(t *testing.T) {
	repos, _ := newTestRepositories(t)

	a := repos.Analytics.Get()
	assert.Equal(t, models.Analytics{
		TotalAlumni:        2,
		TotalStudents:      1,
		TotalDonations:     7500,
		ActiveMentors:      1,
		TotalOpportunities: 0,
		TotalEvents:        1,
		TotalUsers:         3,
	}, a)
}
