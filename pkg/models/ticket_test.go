package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicketBeforeCreateDefaults(t *testing.T) {
	ticket := Ticket{
		OrganizationUUID: "org-1",
		Subject:          "Printer on fire",
		RequesterEmail:   "user@acme.com",
	}
	assert.NoError(t, ticket.BeforeCreate(nil))
	assert.NotEmpty(t, ticket.UUID)
	assert.Equal(t, StatusNew, ticket.Status)
	assert.Equal(t, PriorityNormal, ticket.Priority)
	assert.Equal(t, SourcePortal, ticket.Source)
	assert.True(t, strings.HasPrefix(ticket.ReferenceID, "TKT-"))
}

func TestTicketBeforeCreateValidation(t *testing.T) {
	noSubject := Ticket{OrganizationUUID: "org-1", RequesterEmail: "a@b.com"}
	assert.Error(t, noSubject.BeforeCreate(nil))

	noEmail := Ticket{OrganizationUUID: "org-1", Subject: "x"}
	assert.Error(t, noEmail.BeforeCreate(nil))

	badStatus := Ticket{OrganizationUUID: "org-1", Subject: "x", RequesterEmail: "a@b.com", Status: "bogus"}
	assert.Error(t, badStatus.BeforeCreate(nil))

	badPriority := Ticket{OrganizationUUID: "org-1", Subject: "x", RequesterEmail: "a@b.com", Priority: "asap"}
	assert.Error(t, badPriority.BeforeCreate(nil))
}

func TestNewTicketReferenceID(t *testing.T) {
	ref := NewTicketReferenceID()
	assert.Len(t, ref, 12)
	assert.True(t, strings.HasPrefix(ref, "TKT-"))
	assert.NotEqual(t, ref, NewTicketReferenceID())
}

func TestTicketStatusValid(t *testing.T) {
	for _, s := range TicketStatuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, TicketStatus("escalated").Valid())
}
