package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/auth"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/repositories"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/apperrors"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/helpers"
)

// Export types accepted by Export
const (
	ExportAlumni   = "alumni"
	ExportStudents = "students"
)

// ExportHeader is the column layout of every CSV export
var ExportHeader = []string{
	"ID", "Name", "Email", "Phone", "College", "Degree", "Branch", "Year", "GPA",
	"Skills", "Current Job Title", "Current Company", "Address",
}

// ExportFile is a rendered CSV export
type ExportFile struct {
	Filename string
	Content  []byte
	Rows     int
}

// AdminService defines the administrative read and export operations
type AdminService interface {
	Analytics() models.Analytics
	AuditLogs() []*models.AuditLog
	Export(ctx context.Context, actor *auth.Principal, exportType string) (*ExportFile, error)
}

type adminServiceImpl struct {
	repos  *repositories.Repositories
	audit  AuditRecorder
	logger zerolog.Logger
	now    func() time.Time
}

// NewAdminService creates a new admin service instance
func NewAdminService(repos *repositories.Repositories, audit AuditRecorder, logger zerolog.Logger) AdminService {
	return &adminServiceImpl{
		repos:  repos,
		audit:  audit,
		logger: logger,
		now:    time.Now,
	}
}

func (s *adminServiceImpl) Analytics() models.Analytics {
	return s.repos.Analytics.Get()
}

func (s *adminServiceImpl) AuditLogs() []*models.AuditLog {
	return s.repos.AuditLogs.GetAll()
}

// Export renders the requested collection as CSV and audits the export.
// An empty type means alumni.
func (s *adminServiceImpl) Export(ctx context.Context, actor *auth.Principal, exportType string) (*ExportFile, error) {
	users, err := ExportUsers(s.repos.Users, exportType)
	if err != nil {
		return nil, err
	}
	if exportType == "" {
		exportType = ExportAlumni
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, users); err != nil {
		return nil, fmt.Errorf("render %s export: %w", exportType, err)
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:      actor,
		Action:     models.ActionExportData,
		TargetType: exportType,
		TargetID:   "all",
		Details:    fmt.Sprintf("Exported %s data as CSV", exportType),
	})

	return &ExportFile{
		Filename: ExportFilename(exportType, s.now()),
		Content:  buf.Bytes(),
		Rows:     len(users),
	}, nil
}

// ExportUsers selects the users for an export type
func ExportUsers(repo *repositories.UserRepository, exportType string) ([]*models.User, error) {
	switch exportType {
	case "", ExportAlumni:
		return repo.GetAlumni(models.AlumniFilter{}), nil
	case ExportStudents:
		return repo.GetStudents(), nil
	default:
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, fmt.Sprintf("Invalid export type %q", exportType)).
			WithDetails(map[string]interface{}{"allowed": []string{ExportAlumni, ExportStudents}})
	}
}

// ExportFilename names an export file the way downloads are named
func ExportFilename(exportType string, at time.Time) string {
	if exportType == "" {
		exportType = ExportAlumni
	}
	return fmt.Sprintf("%s_export_%s.csv", exportType, helpers.ExportDate(at))
}

// WriteCSV writes the header and one row per user
func WriteCSV(w io.Writer, users []*models.User) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return err
	}
	for _, u := range users {
		var title, company, address string
		if u.AlumniProfile != nil {
			title = u.CurrentJob.Title
			company = u.CurrentJob.Company
		}
		if u.Address != nil {
			address = *u.Address
		}
		row := []string{
			u.ID, u.Name, u.Email, u.Phone, u.College, u.Degree, u.Branch,
			strconv.Itoa(u.Year), u.GPA, strings.Join(u.Skills, ";"),
			title, company, address,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
