package notifications

type EventName int

// Add more event names here and to below function as needed
const (
	TicketCreated EventName = iota
	TicketUpdated
	TicketAssigned
	TicketResolved
	TicketClosed
	TicketReopened
	TicketCommented
	MemberAdded
	MemberRoleChanged
	MemberRemoved
)

func (d EventName) String() string {
	switch d {
	case TicketCreated:
		return "ticket-created"
	case TicketUpdated:
		return "ticket-updated"
	case TicketAssigned:
		return "ticket-assigned"
	case TicketResolved:
		return "ticket-resolved"
	case TicketClosed:
		return "ticket-closed"
	case TicketReopened:
		return "ticket-reopened"
	case TicketCommented:
		return "ticket-commented"
	case MemberAdded:
		return "member-added"
	case MemberRoleChanged:
		return "member-role-changed"
	case MemberRemoved:
		return "member-removed"
	// Add more cases here when expanding EventName enum above
	default:
		return ""
	}
}
