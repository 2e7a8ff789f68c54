package api

// TicketCategoryResponse holds data returned by the categories API
type TicketCategoryResponse struct {
	UUID             string `json:"uuid" readonly:"true"`
	OrganizationUUID string `json:"organization_uuid" readonly:"true"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Color            string `json:"color"`
	SortOrder        int    `json:"sort_order"`
	IsActive         bool   `json:"is_active"`
}

// TicketCategoryRequest holds data received from a request to create or update a category
type TicketCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

func (r *TicketCategoryRequest) FillDefaults() {
	defaultName := ""
	defaultDescription := ""
	defaultColor := ""
	defaultSortOrder := 0
	defaultIsActive := true

	if r.Name == nil {
		r.Name = &defaultName
	}
	if r.Description == nil {
		r.Description = &defaultDescription
	}
	if r.Color == nil {
		r.Color = &defaultColor
	}
	if r.SortOrder == nil {
		r.SortOrder = &defaultSortOrder
	}
	if r.IsActive == nil {
		r.IsActive = &defaultIsActive
	}
}

type TicketCategoryCollectionResponse struct {
	Data  []TicketCategoryResponse `json:"data"`
	Meta  ResponseMetadata         `json:"meta"`
	Links Links                    `json:"links"`
}

func (r *TicketCategoryCollectionResponse) SetMetadata(meta ResponseMetadata, links Links) {
	r.Meta = meta
	r.Links = links
}
