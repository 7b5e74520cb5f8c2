package domain

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalUsers       int `json:"totalUsers"`
	TotalStudents    int `json:"totalStudents"`
	TotalInstructors int `json:"totalInstructors"`
	ActiveUsers      int `json:"activeUsers"`
}

// UserFilters narrows the admin user listing. Zero values mean "no filter".
type UserFilters struct {
	Role   Role
	Search string
}
