package dto

import "github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"

// AlumniQuery holds the directory search parameters
type AlumniQuery struct {
	Q       string `form:"q"`
	Year    int    `form:"year" binding:"omitempty,min=0"`
	Branch  string `form:"branch"`
	Company string `form:"company"`
	Skill   string `form:"skill"`
}

// Filter converts the query into a repository filter
func (q AlumniQuery) Filter() models.AlumniFilter {
	return models.AlumniFilter{
		Q:       q.Q,
		Year:    q.Year,
		Branch:  q.Branch,
		Company: q.Company,
		Skill:   q.Skill,
	}
}
