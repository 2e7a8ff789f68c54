package models

import (
	"gorm.io/gorm"
)

// TicketResponse is one entry in a ticket's conversation. Internal notes are
// only visible to agents and above.
type TicketResponse struct {
	Base
	TicketUUID   string  `json:"ticket_uuid" gorm:"column:ticket_uuid;not null"`
	UserUUID     *string `json:"user_uuid" gorm:"column:user_uuid;default:null"`
	UserEmail    string  `json:"user_email" gorm:"default:null"`
	ResponseText string  `json:"response_text" gorm:"not null"`
	ResponseType string  `json:"response_type" gorm:"default:comment"`
	IsInternal   bool    `json:"is_internal" gorm:"default:false"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserUUID"`
}

func (r *TicketResponse) TableName() string {
	return "ticket_responses"
}

func (r *TicketResponse) BeforeCreate(tx *gorm.DB) error {
	if err := r.Base.BeforeCreate(tx); err != nil {
		return err
	}
	if r.TicketUUID == "" {
		return Error{Message: "Ticket UUID cannot be blank.", Validation: true}
	}
	if r.ResponseText == "" {
		return Error{Message: "Response text cannot be blank.", Validation: true}
	}
	return nil
}
