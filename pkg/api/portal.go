package api

// PortalProfileResponse is the public face of a tenant: branding plus the
// active categories for the submission form.
type PortalProfileResponse struct {
	Organization OrganizationResponse     `json:"organization"`
	Categories   []TicketCategoryResponse `json:"categories"`
}

// PortalTicketResponse is a requester's view of their ticket: the ticket and
// the public part of its conversation.
type PortalTicketResponse struct {
	Ticket    TicketResponse       `json:"ticket"`
	Responses []TicketResponseItem `json:"responses"`
}
