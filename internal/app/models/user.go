package models

import (
	"time"
)

// User is a portal member. Alumni carry an AlumniProfile and students a
// StudentProfile; both are flattened into the same JSON object on disk.
type User struct {
	ID        string    `json:"id" validate:"required"`
	Role      Role      `json:"role" validate:"required,oneof=alumni students admin collage"`
	Username  string    `json:"username" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"omitempty,email"`
	Phone     string    `json:"phone" validate:"omitempty,phone"`
	Address   *string   `json:"address,omitempty"`
	College   string    `json:"college"`
	Degree    string    `json:"degree"`
	Branch    string    `json:"branch"`
	Year      int       `json:"year" validate:"omitempty,gradyear"`
	GPA       string    `json:"gpa"`
	Skills    []string  `json:"skills" validate:"dive,skill"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	*AlumniProfile
	*StudentProfile
}

// AlumniProfile holds the alumni-only fields.
type AlumniProfile struct {
	CurrentJob CurrentJob `json:"current_job"`
	PastJobs   []PastJob  `json:"past_jobs"`
	Mentorship Mentorship `json:"mentorship"`
	Donations  []Donation `json:"donations"`
}

// StudentProfile holds the student-only fields.
type StudentProfile struct {
	Mentor string `json:"mentor,omitempty"`
}

type CurrentJob struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	Description string `json:"description"`
}

type PastJob struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	From    string `json:"from"`
	To      string `json:"to"`
}

type Mentorship struct {
	IsMentor bool     `json:"isMentor"`
	Mentees  []string `json:"mentees"`
}

type Donation struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
	Note   string  `json:"note"`
}

func (u *User) IsAlumni() bool  { return u.Role == RoleAlumni }
func (u *User) IsStudent() bool { return u.Role == RoleStudents }

// Company returns the employer of an alumnus, or "" for everyone else.
func (u *User) Company() string {
	if u.AlumniProfile == nil {
		return ""
	}
	return u.CurrentJob.Company
}

// TotalDonations sums every donation made by the user.
func (u *User) TotalDonations() float64 {
	if u.AlumniProfile == nil {
		return 0
	}
	var sum float64
	for _, d := range u.Donations {
		sum += d.Amount
	}
	return sum
}

// IsActiveMentor reports whether an alumnus volunteers as a mentor.
func (u *User) IsActiveMentor() bool {
	return u.IsAlumni() && u.AlumniProfile != nil && u.Mentorship.IsMentor
}

// HasSkill matches needle case-insensitively against any skill substring.
func (u *User) HasSkill(needle string) bool {
	for _, s := range u.Skills {
		if containsFold(s, needle) {
			return true
		}
	}
	return false
}

// Normalize gives the record the shape its role demands: alumni always have
// an alumni profile and collections are never null.
func (u *User) Normalize() {
	if u.Skills == nil {
		u.Skills = []string{}
	}
	switch u.Role {
	case RoleAlumni:
		if u.AlumniProfile == nil {
			u.AlumniProfile = &AlumniProfile{}
		}
		if u.PastJobs == nil {
			u.PastJobs = []PastJob{}
		}
		if u.Donations == nil {
			u.Donations = []Donation{}
		}
		if u.Mentorship.Mentees == nil {
			u.Mentorship.Mentees = []string{}
		}
		u.StudentProfile = nil
	case RoleStudents:
		u.AlumniProfile = nil
	}
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Skills = cloneStrings(u.Skills)
	if u.Address != nil {
		addr := *u.Address
		c.Address = &addr
	}
	if u.AlumniProfile != nil {
		ap := *u.AlumniProfile
		ap.PastJobs = append([]PastJob{}, u.PastJobs...)
		ap.Donations = append([]Donation{}, u.Donations...)
		ap.Mentorship.Mentees = cloneStrings(u.Mentorship.Mentees)
		c.AlumniProfile = &ap
	}
	if u.StudentProfile != nil {
		sp := *u.StudentProfile
		c.StudentProfile = &sp
	}
	return &c
}

// AlumniFilter narrows an alumni listing. Zero values are ignored and set
// fields compose with AND.
type AlumniFilter struct {
	Q       string
	Year    int
	Branch  string
	Company string
	Skill   string
}

// Matches reports whether an alumnus satisfies every set criterion.
func (f AlumniFilter) Matches(u *User) bool {
	if f.Year != 0 && u.Year != f.Year {
		return false
	}
	if f.Branch != "" && !containsFold(u.Branch, f.Branch) {
		return false
	}
	if f.Company != "" && !containsFold(u.Company(), f.Company) {
		return false
	}
	if f.Skill != "" && !u.HasSkill(f.Skill) {
		return false
	}
	if f.Q != "" {
		if !containsFold(u.Name, f.Q) && !containsFold(u.Company(), f.Q) && !u.HasSkill(f.Q) {
			return false
		}
	}
	return true
}
