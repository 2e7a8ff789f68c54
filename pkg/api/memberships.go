package api

// MembershipResponse holds data returned by the members API
type MembershipResponse struct {
	UUID             string `json:"uuid" readonly:"true"`
	OrganizationUUID string `json:"organization_uuid" readonly:"true"`
	UserUUID         string `json:"user_uuid"`
	UserEmail        string `json:"user_email"`
	UserFullName     string `json:"user_full_name"`
	Role             string `json:"role"`
}

// MembershipRequest holds data received from a request to add a member or change a role
type MembershipRequest struct {
	UserUUID  *string `json:"user_uuid"`
	UserEmail *string `json:"user_email"` // Used to invite by address when the uuid is unknown
	Role      *string `json:"role"`
}

func (r *MembershipRequest) FillDefaults() {
	defaultRole := "member"
	if r.Role == nil {
		r.Role = &defaultRole
	}
}

type MembershipCollectionResponse struct {
	Data  []MembershipResponse `json:"data"`  // Requested Data
	Meta  ResponseMetadata     `json:"meta"`  // Metadata about the request
	Links Links                `json:"links"` // Links to other pages of results
}

func (r *MembershipCollectionResponse) SetMetadata(meta ResponseMetadata, links Links) {
	r.Meta = meta
	r.Links = links
}

// OrganizationDomainResponse holds one allowed self-registration email domain
type OrganizationDomainResponse struct {
	UUID             string `json:"uuid" readonly:"true"`
	OrganizationUUID string `json:"organization_uuid" readonly:"true"`
	Domain           string `json:"domain"`
}

type OrganizationDomainRequest struct {
	Domain *string `json:"domain"`
}

type OrganizationDomainCollectionResponse struct {
	Data  []OrganizationDomainResponse `json:"data"`
	Meta  ResponseMetadata             `json:"meta"`
	Links Links                        `json:"links"`
}

func (r *OrganizationDomainCollectionResponse) SetMetadata(meta ResponseMetadata, links Links) {
	r.Meta = meta
	r.Links = links
}
