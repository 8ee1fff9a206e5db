package dto

import (
	"time"

	"github.com/mesadeayuda/helpdesk/internal/domain"
)

// CreateTicketRequest payload. Priority is never accepted from the
// client; the service derives it.
type CreateTicketRequest struct {
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	TypeOfService domain.ServiceType   `json:"type_of_service"`
	Equipment     domain.EquipmentKind `json:"equipment"`
}

// TicketResponse is the full ticket shape plus the single action the
// requesting viewer may take on it, so clients render buttons without
// re-deriving lifecycle rules.
type TicketResponse struct {
	ID                  string                `json:"id"`
	ExternalKey         string                `json:"external_key"`
	OwnerUserID         string                `json:"owner_user_id"`
	AssignedUserID      *string               `json:"assigned_user_id"`
	Title               string                `json:"title"`
	Description         string                `json:"description"`
	Status              domain.TicketStatus   `json:"status"`
	Priority            domain.TicketPriority `json:"priority"`
	TypeOfService       domain.ServiceType    `json:"type_of_service"`
	Equipment           domain.EquipmentKind  `json:"equipment"`
	OpeningDate         time.Time             `json:"opening_date"`
	LastUpdated         time.Time             `json:"last_updated"`
	AvailableTransition string                `json:"available_transition,omitempty"`
}

// TotalsResponse carries the counters above a ticket list. Pending uses
// the definition of the view that served it.
type TotalsResponse struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

// TicketListResponse is the self-service listing.
type TicketListResponse struct {
	Totals  TotalsResponse   `json:"totals"`
	Tickets []TicketResponse `json:"tickets"`
}

// OwnerGroupResponse is one requester's group in the admin view.
type OwnerGroupResponse struct {
	OwnerUserID string           `json:"owner_user_id"`
	OwnerName   string           `json:"owner_name"`
	Totals      TotalsResponse   `json:"totals"`
	Tickets     []TicketResponse `json:"tickets"`
}

// GroupedTicketsResponse is the admin listing grouped by requester.
type GroupedTicketsResponse struct {
	Totals TotalsResponse       `json:"totals"`
	Groups []OwnerGroupResponse `json:"groups"`
}
