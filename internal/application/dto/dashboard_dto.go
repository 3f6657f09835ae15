package dto

// BreakdownEntry item count for one taxonomy term, for the dashboard charts.
type BreakdownEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DashboardResponse admin dashboard aggregates.
type DashboardResponse struct {
	TotalItems         int              `json:"total_items"`
	TotalLocations     int              `json:"total_locations"`
	TotalOwners        int              `json:"total_owners"`
	LowStockItems      int              `json:"low_stock_items"`
	OwnerBreakdown     []BreakdownEntry `json:"owner_breakdown"`
	ConditionBreakdown []BreakdownEntry `json:"condition_breakdown"`
}
