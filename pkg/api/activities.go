package api

import "time"

// TicketActivityResponse holds one audit trail entry for a ticket
type TicketActivityResponse struct {
	UUID         string         `json:"uuid" readonly:"true"`
	TicketUUID   string         `json:"ticket_uuid" readonly:"true"`
	UserUUID     string         `json:"user_uuid,omitempty"`
	UserEmail    string         `json:"user_email,omitempty"`
	ActivityType string         `json:"activity_type"`
	Description  string         `json:"description,omitempty"`
	OldValue     map[string]any `json:"old_value,omitempty"`
	NewValue     map[string]any `json:"new_value,omitempty"`
	CreatedAt    time.Time      `json:"created_at" readonly:"true"`
}

type TicketActivityCollectionResponse struct {
	Data  []TicketActivityResponse `json:"data"`
	Meta  ResponseMetadata         `json:"meta"`
	Links Links                    `json:"links"`
}

func (r *TicketActivityCollectionResponse) SetMetadata(meta ResponseMetadata, links Links) {
	r.Meta = meta
	r.Links = links
}
