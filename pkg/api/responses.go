package api

import "time"

// TicketResponseItem holds one conversation entry returned by the responses API
type TicketResponseItem struct {
	UUID         string    `json:"uuid" readonly:"true"`
	TicketUUID   string    `json:"ticket_uuid" readonly:"true"`
	UserUUID     string    `json:"user_uuid,omitempty"`
	UserEmail    string    `json:"user_email,omitempty"`
	ResponseText string    `json:"response_text"`
	ResponseType string    `json:"response_type"`
	IsInternal   bool      `json:"is_internal"`
	CreatedAt    time.Time `json:"created_at" readonly:"true"`
}

// TicketResponseRequest holds data received from a request to add a response
type TicketResponseRequest struct {
	ResponseText *string `json:"response_text"`
	ResponseType *string `json:"response_type"`
	IsInternal   *bool   `json:"is_internal"`
}

func (r *TicketResponseRequest) FillDefaults() {
	defaultText := ""
	defaultType := "comment"
	defaultInternal := false

	if r.ResponseText == nil {
		r.ResponseText = &defaultText
	}
	if r.ResponseType == nil {
		r.ResponseType = &defaultType
	}
	if r.IsInternal == nil {
		r.IsInternal = &defaultInternal
	}
}

type TicketResponseCollectionResponse struct {
	Data  []TicketResponseItem `json:"data"`
	Meta  ResponseMetadata     `json:"meta"`
	Links Links                `json:"links"`
}

func (r *TicketResponseCollectionResponse) SetMetadata(meta ResponseMetadata, links Links) {
	r.Meta = meta
	r.Links = links
}
