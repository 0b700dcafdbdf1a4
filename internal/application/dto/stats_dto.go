package dto

// StatisticsResponse conteo de usuarios por rol (solo admin).
type StatisticsResponse struct {
	TotalUsers   int `json:"total_users"`
	AdminCount   int `json:"admin_count"`
	ManagerCount int `json:"manager_count"`
	UserCount    int `json:"user_count"`
}
