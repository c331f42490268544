package models

// DashboardStats are the aggregate counters shown on the dashboard.
type DashboardStats struct {
	TotalAnalyses     int `json:"totalAnalyses"`
	TotalLLMResponses int `json:"totalLLMResponses"`
	CreditsUsed       int `json:"creditsUsed"`
	PublicAnalyses    int `json:"publicAnalyses"`
}

// Dashboard is the aggregate payload of GET /user/dashboard.
type Dashboard struct {
	Stats          DashboardStats `json:"stats"`
	RecentAnalyses []Analysis     `json:"recentAnalyses"`
}
