package models

// DashboardFilter represents query parameters accepted by the dashboard endpoints
type DashboardFilter struct {
	Start          string `form:"start"`          // YYYY-MM-DD or RFC3339, inclusive
	End            string `form:"end"`            // YYYY-MM-DD or RFC3339, exclusive
	Shoe           string `form:"shoe"`           // empty or "All" selects every shoe
	ExcludeUnknown bool   `form:"excludeUnknown"` // drop runs without equipment
}
