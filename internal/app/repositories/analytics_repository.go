package repositories

import (
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/db"
)

// AnalyticsRepository computes dashboard aggregates
type AnalyticsRepository struct {
	database *db.Database
}

func NewAnalyticsRepository(database *db.Database) *AnalyticsRepository {
	return &AnalyticsRepository{database: database}
}

// Get computes the aggregate over one consistent view of the data.
func (r *AnalyticsRepository) Get() models.Analytics {
	var a models.Analytics
	r.database.View(func(data *models.DatabaseData) {
		for _, u := range data.Users {
			switch {
			case u.IsAlumni():
				a.TotalAlumni++
				a.TotalDonations += u.TotalDonations()
				if u.IsActiveMentor() {
					a.ActiveMentors++
				}
			case u.IsStudent():
				a.TotalStudents++
			}
		}
		a.TotalOpportunities = len(data.Opportunities)
		a.TotalEvents = len(data.Events)
	})
	a.TotalUsers = a.TotalAlumni + a.TotalStudents
	return a
}
