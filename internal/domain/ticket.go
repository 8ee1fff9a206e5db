package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusNotStarted TicketStatus = "NOT_STARTED"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusCompleted  TicketStatus = "COMPLETED"
	TicketStatusCancelled  TicketStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is possible.
// COMPLETED is the normal end state; CANCELLED is absorbing.
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusCompleted || s == TicketStatusCancelled
}

// TicketPriority enumerates urgency levels assigned at creation time.
type TicketPriority string

const (
	TicketPriorityHigh   TicketPriority = "Alta"
	TicketPriorityMedium TicketPriority = "Media"
	TicketPriorityLow    TicketPriority = "Baja"
)

// ServiceType categorizes what the request is about.
type ServiceType string

const (
	ServiceTypePrinter  ServiceType = "Impresora"
	ServiceTypeComputer ServiceType = "Computadora"
	ServiceTypeInternet ServiceType = "Internet"
	ServiceTypeOther    ServiceType = "Otro"
)

// EquipmentKind distinguishes institution-owned hardware from personal devices.
type EquipmentKind string

const (
	EquipmentInstitutional EquipmentKind = "Institucional"
	EquipmentPersonal      EquipmentKind = "Personal"
)

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID             string
	ExternalKey    string
	OwnerUserID    string
	AssignedUserID *string
	Title          string
	Description    string
	Status         TicketStatus
	Priority       TicketPriority
	TypeOfService  ServiceType
	Equipment      EquipmentKind
	OpeningDate    time.Time
	LastUpdated    time.Time
}

// EffectiveStatus returns the status, defaulting to NOT_STARTED when the
// source payload omitted it.
func (t Ticket) EffectiveStatus() TicketStatus {
	if t.Status == "" {
		return TicketStatusNotStarted
	}
	return t.Status
}
