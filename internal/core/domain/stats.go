package domain

// DashboardStats backs the admin dashboard.
type DashboardStats struct {
	TotalProperties     int
	AvailableProperties int
	TotalLeads          int
	NewLeads            int
	LeadsLast30Days     int
	AverageBudget       int64 // over leads that carry a budget
	RecentLeads         []Lead
}

// LeadStats are the aggregates the lead store computes for the dashboard.
type LeadStats struct {
	Total         int
	New           int
	Since         int // leads created at or after the requested instant
	AverageBudget int64
}
