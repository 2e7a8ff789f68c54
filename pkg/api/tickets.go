package api

import "time"

// TicketResponse holds data returned by the tickets API
type TicketResponse struct {
	UUID                 string     `json:"uuid" readonly:"true"`
	OrganizationUUID     string     `json:"organization_uuid" readonly:"true"`
	ReferenceID          string     `json:"reference_id" readonly:"true"` // Short quotable id, unique per organization
	Subject              string     `json:"subject"`
	Description          string     `json:"description"`
	Status               string     `json:"status"`
	Priority             string     `json:"priority"`
	Source               string     `json:"source"`
	RequesterEmail       string     `json:"requester_email"`
	CategoryUUID         string     `json:"category_uuid,omitempty"`
	CategoryName         string     `json:"category_name,omitempty"`
	AssignedTo           string     `json:"assigned_to,omitempty"`
	AssigneeName         string     `json:"assignee_name,omitempty"`
	Tags                 []string   `json:"tags,omitempty"`
	DueDate              *time.Time `json:"due_date,omitempty"`
	FirstResponseAt      *time.Time `json:"first_response_at,omitempty"`
	ResolvedAt           *time.Time `json:"resolved_at,omitempty"`
	ClosedAt             *time.Time `json:"closed_at,omitempty"`
	ResolutionNotes      string     `json:"resolution_notes,omitempty"`
	CustomerSatisfaction *int       `json:"customer_satisfaction,omitempty"`
	CreatedAt            time.Time  `json:"created_at" readonly:"true"`
	UpdatedAt            time.Time  `json:"updated_at" readonly:"true"`
}

// TicketRequest holds data received from a request to create or update a ticket
type TicketRequest struct {
	UUID           *string    `json:"uuid" readonly:"true" swaggerignore:"true"`
	Subject        *string    `json:"subject"`
	Description    *string    `json:"description"`
	Priority       *string    `json:"priority"`
	Source         *string    `json:"source"`
	RequesterEmail *string    `json:"requester_email"`
	CategoryUUID   *string    `json:"category_uuid"`
	Tags           *[]string  `json:"tags"`
	DueDate        *time.Time `json:"due_date"`
}

func (r *TicketRequest) FillDefaults() {
	defaultSubject := ""
	defaultDescription := ""
	defaultPriority := "normal"
	defaultSource := "portal"
	defaultEmail := ""
	defaultTags := []string{}

	if r.Subject == nil {
		r.Subject = &defaultSubject
	}
	if r.Description == nil {
		r.Description = &defaultDescription
	}
	if r.Priority == nil {
		r.Priority = &defaultPriority
	}
	if r.Source == nil {
		r.Source = &defaultSource
	}
	if r.RequesterEmail == nil {
		r.RequesterEmail = &defaultEmail
	}
	if r.Tags == nil {
		r.Tags = &defaultTags
	}
}

// TicketAssignRequest assigns or, with a null assignee, unassigns a ticket
type TicketAssignRequest struct {
	AssignedTo *string `json:"assigned_to"`
}

// TicketStatusRequest transitions a ticket's status
type TicketStatusRequest struct {
	Status          *string `json:"status"`
	ResolutionNotes *string `json:"resolution_notes"`
}

type TicketCollectionResponse struct {
	Data  []TicketResponse `json:"data"`  // Requested Data
	Meta  ResponseMetadata `json:"meta"`  // Metadata about the request
	Links Links            `json:"links"` // Links to other pages of results
}

func (r *TicketCollectionResponse) SetMetadata(meta ResponseMetadata, links Links) {
	r.Meta = meta
	r.Links = links
}

// TicketFilterData are the supported list filters
type TicketFilterData struct {
	Search       string `query:"search"`
	Status       string `query:"status"`
	Priority     string `query:"priority"`
	CategoryUUID string `query:"category_uuid"`
	AssignedTo   string `query:"assigned_to"`
}
