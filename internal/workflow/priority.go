package workflow

import (
	"strings"

	"github.com/mesadeayuda/helpdesk/internal/domain"
)

// PriorityFor computes the priority assigned to a ticket at creation time.
// Personal equipment is always low priority regardless of service type.
// Institutional equipment is ranked by how many people an outage affects:
// printers low, individual computers medium, internet high. Unrecognized
// service types (including "Otro") fall back to medium.
func PriorityFor(service domain.ServiceType, equipment domain.EquipmentKind) domain.TicketPriority {
	if strings.EqualFold(string(equipment), string(domain.EquipmentPersonal)) {
		return domain.TicketPriorityLow
	}
	switch {
	case strings.EqualFold(string(service), string(domain.ServiceTypePrinter)):
		return domain.TicketPriorityLow
	case strings.EqualFold(string(service), string(domain.ServiceTypeComputer)):
		return domain.TicketPriorityMedium
	case strings.EqualFold(string(service), string(domain.ServiceTypeInternet)):
		return domain.TicketPriorityHigh
	default:
		return domain.TicketPriorityMedium
	}
}
