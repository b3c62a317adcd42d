package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/apperrors"
)

func TestAdminService_ExportAlumni(t *testing.T) {
	repos := newTestRepos(t)
	audit := new(MockAuditRecorder)
	svc := NewAdminService(repos, audit, zerolog.Nop()).(*adminServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC) }

	audit.On("Record", mock.Anything, mock.MatchedBy(func(e AuditEntry) bool {
		return e.Action == models.ActionExportData &&
			e.TargetType == "alumni" &&
			e.TargetID == "all" &&
			e.Details == "Exported alumni data as CSV" &&
			e.Actor == collegeActor
	})).Once()

	file, err := svc.Export(context.Background(), collegeActor, "")
	require.NoError(t, err)
	assert.Equal(t, "alumni_export_2025-03-09.csv", file.Filename)
	assert.Equal(t, 2, file.Rows)

	records, err := csv.NewReader(bytes.NewReader(file.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, ExportHeader, records[0])
	assert.Equal(t, []string{
		"al_0001", "Harpreet Kaur", "harpreet.kaur@example.com", "+91-98140-11111", "PEC", "B.Tech",
		"Computer Science", "2018", "8.6", "React;Node.js", "Senior Engineer", "Infosys", "Model Town, Ludhiana",
	}, records[1])
	audit.AssertExpectations(t)
}

func TestAdminService_ExportStudents(t *testing.T) {
	audit := new(MockAuditRecorder)
	expectAudit(audit, models.ActionExportData, "all").Once()
	svc := NewAdminService(newTestRepos(t), audit, zerolog.Nop())

	file, err := svc.Export(context.Background(), adminActor, ExportStudents)
	require.NoError(t, err)
	assert.Contains(t, file.Filename, "students_export_")
	assert.Equal(t, 1, file.Rows)

	records, err := csv.NewReader(bytes.NewReader(file.Content)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"st_0001", "Simran Gill", "", "", "", "", "", "0", "", "", "", "", ""}, records[1])
}

func TestAdminService_ExportRejectsUnknownType(t *testing.T) {
	audit := new(MockAuditRecorder)
	svc := NewAdminService(newTestRepos(t), audit, zerolog.Nop())

	_, err := svc.Export(context.Background(), adminActor, "events")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	audit.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestAdminService_Analytics(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewAdminService(repos, new(MockAuditRecorder), zerolog.Nop())

	a := svc.Analytics()
	assert.Equal(t, 2, a.TotalAlumni)
	assert.Equal(t, 1, a.TotalStudents)
	assert.Equal(t, 3, a.TotalUsers)

	recorder := NewAuditRecorder(repos.AuditLogs, zerolog.Nop())
	recorder.Record(context.Background(), AuditEntry{Actor: adminActor, Action: models.ActionExportData, TargetID: "all"})
	require.Len(t, svc.AuditLogs(), 1)
	assert.Equal(t, "admin", svc.AuditLogs()[0].ActorID)
}

func TestWriteCSV_QuotesWhenNeeded(t *testing.T) {
	addr := `12 "Green" Ave, Patiala`
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []*models.User{{ID: "st_0009", Name: "Kaur, Aman", Address: &addr, Role: models.RoleStudents}}))

	assert.Contains(t, buf.String(), `"Kaur, Aman"`)
	assert.Contains(t, buf.String(), `"12 ""Green"" Ave, Patiala"`)
}
