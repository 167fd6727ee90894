package dashboard

// VolunteerStats summarizes a volunteer's activity on the platform.
type VolunteerStats struct {
	ApplicationsTotal    int `json:"applications_total" db:"applications_total"`
	ApplicationsPending  int `json:"applications_pending" db:"applications_pending"`
	ApplicationsAccepted int `json:"applications_accepted" db:"applications_accepted"`
	UpcomingCleanups     int `json:"upcoming_cleanups" db:"upcoming_cleanups"`
	CompletedCleanups    int `json:"completed_cleanups" db:"completed_cleanups"`
}

// OrganizationStats summarizes an organization's opportunities and inbound
// applications.
type OrganizationStats struct {
	OpportunitiesTotal     int `json:"opportunities_total" db:"opportunities_total"`
	OpportunitiesActive    int `json:"opportunities_active" db:"opportunities_active"`
	OpportunitiesCompleted int `json:"opportunities_completed" db:"opportunities_completed"`
	ApplicationsPending    int `json:"applications_pending" db:"applications_pending"`
	VolunteersAccepted     int `json:"volunteers_accepted" db:"volunteers_accepted"`
}
