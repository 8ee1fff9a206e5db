package events

import (
	"time"

	"github.com/mesadeayuda/helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated   EventType = "ticket_created"
	EventTicketClaimed   EventType = "ticket_claimed"
	EventTicketCompleted EventType = "ticket_completed"
	EventTicketCancelled EventType = "ticket_cancelled"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	OwnerUserID   string                `json:"owner_user_id"`
	Title         string                `json:"title"`
	Priority      domain.TicketPriority `json:"priority"`
	TypeOfService domain.ServiceType    `json:"type_of_service"`
	Equipment     domain.EquipmentKind  `json:"equipment"`
}

// TicketStatusChangedPayload payload for claim, completion and cancellation.
type TicketStatusChangedPayload struct {
	OldStatus      domain.TicketStatus `json:"old_status"`
	NewStatus      domain.TicketStatus `json:"new_status"`
	AssignedUserID *string             `json:"assigned_user_id,omitempty"`
}
