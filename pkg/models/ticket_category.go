package models

import (
	"gorm.io/gorm"
)

type TicketCategory struct {
	Base
	OrganizationUUID string `json:"organization_uuid" gorm:"column:organization_uuid;not null"`
	Name             string `json:"name" gorm:"not null"`
	Description      string `json:"description" gorm:"default:null"`
	Color            string `json:"color" gorm:"default:null"`
	SortOrder        int    `json:"sort_order" gorm:"default:0"`
	IsActive         bool   `json:"is_active" gorm:"default:true"`
}

func (c *TicketCategory) TableName() string {
	return "ticket_categories"
}

// MapForUpdate returns the user changeable fields, so that updates clear
// fields explicitly set to their zero value.
func (c *TicketCategory) MapForUpdate() map[string]interface{} {
	forUpdate := make(map[string]interface{})
	forUpdate["name"] = c.Name
	forUpdate["description"] = c.Description
	forUpdate["color"] = c.Color
	forUpdate["sort_order"] = c.SortOrder
	forUpdate["is_active"] = c.IsActive
	return forUpdate
}

func (c *TicketCategory) BeforeCreate(tx *gorm.DB) error {
	if err := c.Base.BeforeCreate(tx); err != nil {
		return err
	}
	if c.OrganizationUUID == "" {
		return Error{Message: "Organization UUID cannot be blank.", Validation: true}
	}
	if c.Name == "" {
		return Error{Message: "Name cannot be blank.", Validation: true}
	}
	return nil
}
