package api

// AnalyticsSummaryResponse aggregates ticket counts for an organization
type AnalyticsSummaryResponse struct {
	TotalTickets         int64            `json:"total_tickets"`
	OpenTickets          int64            `json:"open_tickets"`
	ResolvedTickets      int64            `json:"resolved_tickets"`
	TicketsByStatus      map[string]int64 `json:"tickets_by_status"`
	TicketsByPriority    map[string]int64 `json:"tickets_by_priority"`
	TicketsByCategory    map[string]int64 `json:"tickets_by_category"`
	AvgResolutionHours   float64          `json:"avg_resolution_hours"`
	AvgFirstResponseMins float64          `json:"avg_first_response_minutes"`
}
