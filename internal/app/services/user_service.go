package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/auth"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/repositories"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/apperrors"
)

const (
	alumniIDPrefix  = "al_"
	studentIDPrefix = "st_"
	userIDWidth     = 4
)

// UserService defines the alumni directory and student operations
type UserService interface {
	ListAlumni(filter models.AlumniFilter) []*models.User
	GetAlumni(id string) (*models.User, error)
	CreateAlumni(ctx context.Context, actor *auth.Principal, user *models.User) (*models.User, error)
	UpdateAlumni(ctx context.Context, actor *auth.Principal, id string, patch models.Patch) (*models.User, error)
	DeleteAlumni(ctx context.Context, actor *auth.Principal, id string) error

	ListStudents() []*models.User
	GetStudent(id string) (*models.User, error)
	CreateStudent(ctx context.Context, actor *auth.Principal, user *models.User) (*models.User, error)
}

type userServiceImpl struct {
	userRepo *repositories.UserRepository
	audit    AuditRecorder
	logger   zerolog.Logger
	now      func() time.Time
}

// NewUserService creates a new user service instance
func NewUserService(userRepo *repositories.UserRepository, audit AuditRecorder, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		audit:    audit,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *userServiceImpl) ListAlumni(filter models.AlumniFilter) []*models.User {
	return s.userRepo.GetAlumni(filter)
}

func (s *userServiceImpl) GetAlumni(id string) (*models.User, error) {
	return s.getWithRole(id, models.RoleAlumni, "Alumni not found")
}

func (s *userServiceImpl) ListStudents() []*models.User {
	return s.userRepo.GetStudents()
}

func (s *userServiceImpl) GetStudent(id string) (*models.User, error) {
	return s.getWithRole(id, models.RoleStudents, "Student not found")
}

// getWithRole treats a user of another role as missing
func (s *userServiceImpl) getWithRole(id string, role models.Role, msg string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(msg)
		}
		return nil, err
	}
	if user.Role != role {
		return nil, apperrors.NewNotFoundError(msg)
	}
	return user, nil
}

func (s *userServiceImpl) CreateAlumni(ctx context.Context, actor *auth.Principal, user *models.User) (*models.User, error) {
	return s.create(ctx, actor, user, models.RoleAlumni, alumniIDPrefix, "alumni")
}

func (s *userServiceImpl) CreateStudent(ctx context.Context, actor *auth.Principal, user *models.User) (*models.User, error) {
	return s.create(ctx, actor, user, models.RoleStudents, studentIDPrefix, "students")
}

// create assigns the id, role and timestamps, stores the user and audits it
func (s *userServiceImpl) create(ctx context.Context, actor *auth.Principal, user *models.User, role models.Role, prefix, targetType string) (*models.User, error) {
	if user == nil {
		return nil, apperrors.NewValidationError("user data is required")
	}
	record := user.Clone()
	record.Role = role
	now := s.now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	record.Normalize()

	record, err := s.userRepo.Create(ctx, record, repositories.SequentialIDs(prefix, userIDWidth))
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:      actor,
		Action:     models.ActionCreateUser,
		TargetType: targetType,
		TargetID:   record.ID,
		Details:    fmt.Sprintf("Created new %s profile for %s", role, record.Name),
	})
	return record, nil
}

// UpdateAlumni lets an alumnus edit their own profile, or an admin edit any
func (s *userServiceImpl) UpdateAlumni(ctx context.Context, actor *auth.Principal, id string, patch models.Patch) (*models.User, error) {
	existing, err := s.GetAlumni(id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnerOrAdmin(actor, existing.Username); err != nil {
		return nil, err
	}

	// ownership follows the username so only admins may change it
	if !actor.IsAdmin() {
		patch = patch.Without("username")
	}

	updated, err := s.userRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:      actor,
		Action:     models.ActionUpdateUser,
		TargetType: "alumni",
		TargetID:   id,
		Details:    "Updated alumni profile",
	})
	return updated, nil
}

func (s *userServiceImpl) DeleteAlumni(ctx context.Context, actor *auth.Principal, id string) error {
	existing, err := s.GetAlumni(id)
	if err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:      actor,
		Action:     models.ActionDeleteUser,
		TargetType: "alumni",
		TargetID:   id,
		Details:    fmt.Sprintf("Deleted alumni profile for %s", existing.Name),
	})
	return nil
}
