package repositories

import (
	"context"
	"time"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/db"
)

// UserRepository handles alumni and student records
type UserRepository struct {
	database *db.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(database *db.Database) *UserRepository {
	return &UserRepository{database: database}
}

// GetAll returns every user in storage order
func (r *UserRepository) GetAll() []*models.User {
	var users []*models.User
	r.database.View(func(data *models.DatabaseData) {
		users = make([]*models.User, 0, len(data.Users))
		for _, u := range data.Users {
			users = append(users, u.Clone())
		}
	})
	return users
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	return r.find("user", id, func(u *models.User) bool { return u.ID == id })
}

// GetByUsername retrieves a user by login name
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	return r.find("user", username, func(u *models.User) bool { return u.Username == username })
}

func (r *UserRepository) find(kind, key string, match func(*models.User) bool) (*models.User, error) {
	var found *models.User
	r.database.View(func(data *models.DatabaseData) {
		if i := indexOf(data.Users, match); i >= 0 {
			found = data.Users[i].Clone()
		}
	})
	if found == nil {
		return nil, notFound(kind, key)
	}
	return found, nil
}

// GetAlumni returns the alumni matching every criterion set in filter
func (r *UserRepository) GetAlumni(filter models.AlumniFilter) []*models.User {
	return r.filter(func(u *models.User) bool { return u.IsAlumni() && filter.Matches(u) })
}

// GetStudents returns every student
func (r *UserRepository) GetStudents() []*models.User {
	return r.filter((*models.User).IsStudent)
}

func (r *UserRepository) filter(keep func(*models.User) bool) []*models.User {
	users := []*models.User{}
	r.database.View(func(data *models.DatabaseData) {
		for _, u := range data.Users {
			if keep(u) {
				users = append(users, u.Clone())
			}
		}
	})
	return users
}

// Create validates and appends a user and returns the stored copy. An empty
// id is filled from allocate; an empty username defaults to the id.
func (r *UserRepository) Create(ctx context.Context, user *models.User, allocate IDAllocator) (*models.User, error) {
	record := user.Clone()
	record.Normalize()
	err := r.database.Update(ctx, func(data *models.DatabaseData) error {
		assignID(&record.ID, data.Users, func(u *models.User) string { return u.ID }, allocate)
		if record.Username == "" {
			record.Username = record.ID
		}
		if err := validateRecord("user", record); err != nil {
			return err
		}
		if indexOf(data.Users, func(u *models.User) bool { return u.ID == record.ID }) >= 0 {
			return alreadyExists("user", record.ID)
		}
		data.Users = append(data.Users, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record.Clone(), nil
}

// Update merge-patches the user and bumps updated_at
func (r *UserRepository) Update(ctx context.Context, id string, patch models.Patch) (*models.User, error) {
	var updated *models.User
	err := r.database.Update(ctx, func(data *models.DatabaseData) error {
		i := indexOf(data.Users, func(u *models.User) bool { return u.ID == id })
		if i < 0 {
			return notFound("user", id)
		}
		current := data.Users[i]
		next, err := mergePatch("user", current, patch.Without("updated_at"))
		if err != nil {
			return err
		}
		next.ID, next.Role, next.CreatedAt = current.ID, current.Role, current.CreatedAt
		next.UpdatedAt = time.Now().UTC()
		next.Normalize()
		if err := validateRecord("user", next); err != nil {
			return err
		}
		data.Users[i] = next
		updated = next.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the user with the given id
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.database.Update(ctx, func(data *models.DatabaseData) error {
		i := indexOf(data.Users, func(u *models.User) bool { return u.ID == id })
		if i < 0 {
			return notFound("user", id)
		}
		data.Users = remove(data.Users, i)
		return nil
	})
}
