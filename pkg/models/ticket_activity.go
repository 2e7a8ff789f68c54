package models

import (
	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityCreated         ActivityType = "created"
	ActivityAssigned        ActivityType = "assigned"
	ActivityUnassigned      ActivityType = "unassigned"
	ActivityStatusChanged   ActivityType = "status_changed"
	ActivityPriorityChanged ActivityType = "priority_changed"
	ActivityCommented       ActivityType = "commented"
	ActivityResolved        ActivityType = "resolved"
	ActivityClosed          ActivityType = "closed"
	ActivityReopened        ActivityType = "reopened"
	ActivityTagged          ActivityType = "tagged"
	ActivityCategorized     ActivityType = "categorized"
	ActivityNoteAdded       ActivityType = "note_added"
)

var ActivityTypes = []ActivityType{
	ActivityCreated, ActivityAssigned, ActivityUnassigned,
	ActivityStatusChanged, ActivityPriorityChanged, ActivityCommented,
	ActivityResolved, ActivityClosed, ActivityReopened,
	ActivityTagged, ActivityCategorized, ActivityNoteAdded,
}

func (a ActivityType) Valid() bool {
	for _, known := range ActivityTypes {
		if a == known {
			return true
		}
	}
	return false
}

// TicketActivity is one immutable entry in a ticket's audit timeline.
type TicketActivity struct {
	Base
	TicketUUID   string         `json:"ticket_uuid" gorm:"column:ticket_uuid;not null"`
	ActivityType ActivityType   `json:"activity_type" gorm:"not null"`
	UserUUID     *string        `json:"user_uuid" gorm:"column:user_uuid;default:null"`
	UserEmail    string         `json:"user_email" gorm:"default:null"`
	Description  string         `json:"description" gorm:"default:null"`
	OldValue     map[string]any `json:"old_value" gorm:"type:jsonb;serializer:json"`
	NewValue     map[string]any `json:"new_value" gorm:"type:jsonb;serializer:json"`
}

func (a *TicketActivity) TableName() string {
	return "ticket_activities"
}

func (a *TicketActivity) BeforeCreate(tx *gorm.DB) error {
	if err := a.Base.BeforeCreate(tx); err != nil {
		return err
	}
	if a.TicketUUID == "" {
		return Error{Message: "Ticket UUID cannot be blank.", Validation: true}
	}
	if !a.ActivityType.Valid() {
		return Error{Message: "Unknown activity type.", Validation: true}
	}
	return nil
}
