package models

// Analytics summarizes the store for the admin dashboard.
type Analytics struct {
	TotalAlumni        int     `json:"totalAlumni"`
	TotalStudents      int     `json:"totalStudents"`
	TotalDonations     float64 `json:"totalDonations"`
	ActiveMentors      int     `json:"activeMentors"`
	TotalOpportunities int     `json:"totalOpportunities"`
	TotalEvents        int     `json:"totalEvents"`
	TotalUsers         int     `json:"totalUsers"`
}
