package models

import (
	"regexp"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const SubdomainMinLength = 3
const SubdomainMaxLength = 50

var subdomainPattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$`)

// Organization is a tenant: a customer account scoped to a unique subdomain,
// owning its tickets, categories and members. Organizations are never hard
// deleted: DeletedAt turns Delete into a soft delete and keeps removed
// tenants out of every lookup, subdomain resolution included.
type Organization struct {
	Base
	Name      string         `json:"name" gorm:"not null"`
	Subdomain string         `json:"subdomain" gorm:"not null"`
	Profile   map[string]any `json:"profile" gorm:"type:jsonb;serializer:json"`
	LogoURL   string         `json:"logo_url" gorm:"default:null"`
	DeletedAt gorm.DeletedAt `json:"-"`
}

func (o *Organization) TableName() string {
	return "organizations"
}

// MapForUpdate returns the user changeable fields. Subdomain is excluded:
// it is the tenant lookup key and fixed at creation.
func (o *Organization) MapForUpdate() map[string]interface{} {
	forUpdate := make(map[string]interface{})
	forUpdate["name"] = o.Name
	forUpdate["profile"] = o.Profile
	forUpdate["logo_url"] = o.LogoURL
	return forUpdate
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if err := o.Base.BeforeCreate(tx); err != nil {
		return err
	}
	if o.Name == "" {
		return Error{Message: "Name cannot be blank.", Validation: true}
	}
	if err := ValidateSubdomain(o.Subdomain); err != nil {
		return err
	}
	return nil
}

// ValidateSubdomain checks the label rules for organization subdomains:
// lowercase [a-z0-9-], 3 to 50 characters, no leading or trailing hyphen.
func ValidateSubdomain(subdomain string) error {
	if len(subdomain) < SubdomainMinLength || len(subdomain) > SubdomainMaxLength {
		return Error{Message: "Subdomain must be between 3 and 50 characters.", Validation: true}
	}
	if !subdomainPattern.MatchString(subdomain) {
		return Error{Message: "Subdomain may only contain lowercase letters, digits and hyphens, and cannot start or end with a hyphen.", Validation: true}
	}
	return nil
}

var _ schema.Tabler = &Organization{}
