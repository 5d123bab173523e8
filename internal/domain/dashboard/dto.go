package dashboard

// DashboardResponse is the landing page summary.
type DashboardResponse struct {
	TotalEmployees  int64   `json:"total_employees"`
	ActiveEmployees int64   `json:"active_employees"`
	PresentToday    int64   `json:"present_today"`
	TotalRecords    int64   `json:"total_records"`
	LastSync        *string `json:"last_sync"`
	Date            string  `json:"date"` // Format: "YYYY-MM-DD"
}
