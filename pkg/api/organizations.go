package api

// OrganizationResponse holds data returned by the organizations API
type OrganizationResponse struct {
	UUID      string         `json:"uuid" readonly:"true"` // UUID of the organization
	Name      string         `json:"name"`                 // Display name
	Subdomain string         `json:"subdomain"`            // Tenant lookup key, unique across the platform
	Profile   map[string]any `json:"profile"`              // Branding and welcome metadata
	LogoURL   string         `json:"logo_url"`             // Optional logo location
	Role      string         `json:"role,omitempty"`       // Caller's role within the organization, when known
}

// OrganizationRequest holds data received from a request to create or update an organization
type OrganizationRequest struct {
	UUID      *string         `json:"uuid" readonly:"true" swaggerignore:"true"`
	Name      *string         `json:"name"`      // Display name
	Subdomain *string         `json:"subdomain"` // Tenant lookup key; fixed after creation
	Profile   *map[string]any `json:"profile"`   // Branding and welcome metadata
	LogoURL   *string         `json:"logo_url"`  // Optional logo location
}

func (r *OrganizationRequest) FillDefaults() {
	// Fill in default values in case of PUT request, doesn't have to be valid, let the db validate that
	defaultName := ""
	defaultSubdomain := ""
	defaultLogoURL := ""
	defaultProfile := map[string]any{}

	if r.Name == nil {
		r.Name = &defaultName
	}
	if r.Subdomain == nil {
		r.Subdomain = &defaultSubdomain
	}
	if r.LogoURL == nil {
		r.LogoURL = &defaultLogoURL
	}
	if r.Profile == nil {
		r.Profile = &defaultProfile
	}
}

type OrganizationCollectionResponse struct {
	Data  []OrganizationResponse `json:"data"`  // Requested Data
	Meta  ResponseMetadata       `json:"meta"`  // Metadata about the request
	Links Links                  `json:"links"` // Links to other pages of results
}

func (r *OrganizationCollectionResponse) SetMetadata(meta ResponseMetadata, links Links) {
	r.Meta = meta
	r.Links = links
}

// SubdomainAvailabilityResponse reports whether a subdomain can still be
// claimed. Advisory only: creation re-checks under the unique index.
type SubdomainAvailabilityResponse struct {
	Subdomain string `json:"subdomain"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"` // reserved, taken or invalid
}
