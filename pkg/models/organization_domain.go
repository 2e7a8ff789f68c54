package models

import (
	"strings"

	"gorm.io/gorm"
)

// OrganizationDomain restricts which email domains may self-register as
// members of an organization. No restriction applies when an organization
// has no domains.
type OrganizationDomain struct {
	Base
	OrganizationUUID string `json:"organization_uuid" gorm:"column:organization_uuid;not null"`
	Domain           string `json:"domain" gorm:"not null"`
}

func (d *OrganizationDomain) TableName() string {
	return "organization_domains"
}

func (d *OrganizationDomain) BeforeCreate(tx *gorm.DB) error {
	if err := d.Base.BeforeCreate(tx); err != nil {
		return err
	}
	d.Domain = strings.ToLower(strings.TrimSpace(d.Domain))
	if d.OrganizationUUID == "" {
		return Error{Message: "Organization UUID cannot be blank.", Validation: true}
	}
	if d.Domain == "" || !strings.Contains(d.Domain, ".") {
		return Error{Message: "Domain must be a valid email domain.", Validation: true}
	}
	return nil
}
