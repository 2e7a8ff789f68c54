package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type TicketStatus string

const (
	StatusNew        TicketStatus = "new"
	StatusOpen       TicketStatus = "open"
	StatusPending    TicketStatus = "pending"
	StatusInProgress TicketStatus = "in_progress"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
	StatusOnHold     TicketStatus = "on_hold"
)

var TicketStatuses = []TicketStatus{
	StatusNew, StatusOpen, StatusPending, StatusInProgress,
	StatusResolved, StatusClosed, StatusOnHold,
}

func (s TicketStatus) Valid() bool {
	for _, known := range TicketStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type TicketPriority string

const (
	PriorityLow      TicketPriority = "low"
	PriorityNormal   TicketPriority = "normal"
	PriorityHigh     TicketPriority = "high"
	PriorityUrgent   TicketPriority = "urgent"
	PriorityCritical TicketPriority = "critical"
)

var TicketPriorities = []TicketPriority{
	PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent, PriorityCritical,
}

func (p TicketPriority) Valid() bool {
	for _, known := range TicketPriorities {
		if p == known {
			return true
		}
	}
	return false
}

type TicketSource string

const (
	SourcePortal TicketSource = "portal"
	SourceEmail  TicketSource = "email"
	SourceChat   TicketSource = "chat"
	SourcePhone  TicketSource = "phone"
	SourceApi    TicketSource = "api"
	SourceWidget TicketSource = "widget"
)

var TicketSources = []TicketSource{
	SourcePortal, SourceEmail, SourceChat, SourcePhone, SourceApi, SourceWidget,
}

func (s TicketSource) Valid() bool {
	for _, known := range TicketSources {
		if s == known {
			return true
		}
	}
	return false
}

type Ticket struct {
	Base
	OrganizationUUID     string         `json:"organization_uuid" gorm:"column:organization_uuid;not null"`
	ReferenceID          string         `json:"reference_id" gorm:"not null"`
	Subject              string         `json:"subject" gorm:"not null"`
	Description          string         `json:"description" gorm:"default:null"`
	Status               TicketStatus   `json:"status" gorm:"not null;default:new"`
	Priority             TicketPriority `json:"priority" gorm:"not null;default:normal"`
	Source               TicketSource   `json:"source" gorm:"not null;default:portal"`
	RequesterEmail       string         `json:"requester_email" gorm:"not null"`
	CategoryUUID         *string        `json:"category_uuid" gorm:"column:category_uuid;default:null"`
	AssignedTo           *string        `json:"assigned_to" gorm:"default:null"`
	Tags                 pq.StringArray `json:"tags" gorm:"type:text[];default:null"`
	DueDate              *time.Time     `json:"due_date" gorm:"default:null"`
	FirstResponseAt      *time.Time     `json:"first_response_at" gorm:"default:null"`
	ResolvedAt           *time.Time     `json:"resolved_at" gorm:"default:null"`
	ClosedAt             *time.Time     `json:"closed_at" gorm:"default:null"`
	ResolutionNotes      string         `json:"resolution_notes" gorm:"default:null"`
	CustomerSatisfaction *int           `json:"customer_satisfaction" gorm:"default:null"`

	Category *TicketCategory `json:"category,omitempty" gorm:"foreignKey:CategoryUUID"`
	Assignee *User           `json:"assignee,omitempty" gorm:"foreignKey:AssignedTo"`
}

func (t *Ticket) TableName() string {
	return "tickets"
}

// MapForUpdate returns the user changeable fields. Status, assignment and
// the lifecycle timestamps change through their own operations.
func (t *Ticket) MapForUpdate() map[string]interface{} {
	forUpdate := make(map[string]interface{})
	forUpdate["subject"] = t.Subject
	forUpdate["description"] = t.Description
	forUpdate["priority"] = t.Priority
	forUpdate["requester_email"] = t.RequesterEmail
	forUpdate["category_uuid"] = t.CategoryUUID
	forUpdate["tags"] = t.Tags
	forUpdate["due_date"] = t.DueDate
	return forUpdate
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.UUID == "" {
		t.UUID = uuid.NewString()
	}
	if t.ReferenceID == "" {
		t.ReferenceID = NewTicketReferenceID()
	}
	if t.OrganizationUUID == "" {
		return Error{Message: "Organization UUID cannot be blank.", Validation: true}
	}
	if t.Subject == "" {
		return Error{Message: "Subject cannot be blank.", Validation: true}
	}
	if t.RequesterEmail == "" {
		return Error{Message: "Requester email cannot be blank.", Validation: true}
	}
	if t.Status == "" {
		t.Status = StatusNew
	}
	if t.Priority == "" {
		t.Priority = PriorityNormal
	}
	if t.Source == "" {
		t.Source = SourcePortal
	}
	if !t.Status.Valid() {
		return Error{Message: "Unknown ticket status.", Validation: true}
	}
	if !t.Priority.Valid() {
		return Error{Message: "Unknown ticket priority.", Validation: true}
	}
	if !t.Source.Valid() {
		return Error{Message: "Unknown ticket source.", Validation: true}
	}
	return nil
}

// NewTicketReferenceID generates a short human quotable ticket reference.
// Uniqueness per organization is enforced by the database index; callers
// retry on conflict.
func NewTicketReferenceID() string {
	return "TKT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[0:8])
}
