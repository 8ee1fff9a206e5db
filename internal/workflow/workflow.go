// Package workflow implements the ticket lifecycle rules shared by every
// view of the system: which transition a viewer may perform on a ticket,
// the priority assigned at creation time, and the filter/aggregation
// helpers the listing endpoints are built on.
//
// Everything in this package is a pure computation over an in-memory
// snapshot. Nothing here performs I/O or mutates its inputs, so the
// functions are safe to call concurrently without coordination. The
// authoritative enforcement of every rule still happens at the storage
// layer; callers must treat a rejected mutation as a normal outcome, not
// a defect (another actor may have won a claim race since the snapshot
// was taken).
package workflow

import "github.com/mesadeayuda/helpdesk/internal/domain"

// Transition identifies a status change a viewer may request.
type Transition string

const (
	// TransitionClaim moves NOT_STARTED to IN_PROGRESS and records the
	// claimant as assignee.
	TransitionClaim Transition = "CLAIM_TICKET"
	// TransitionComplete moves IN_PROGRESS to COMPLETED. Assignee only.
	TransitionComplete Transition = "COMPLETE_TICKET"
)

// Target returns the status the transition leads to.
func (t Transition) Target() domain.TicketStatus {
	switch t {
	case TransitionClaim:
		return domain.TicketStatusInProgress
	case TransitionComplete:
		return domain.TicketStatusCompleted
	default:
		return ""
	}
}

// Denial classifies why a transition is not available. The zero value
// means the transition is allowed.
type Denial string

const (
	DenialNone Denial = ""
	// DenialNotAssignee: completion was requested by someone other than
	// the staff member who claimed the ticket.
	DenialNotAssignee Denial = "NOT_ASSIGNEE"
	// DenialAlreadyTerminal: the ticket is COMPLETED or CANCELLED.
	DenialAlreadyTerminal Denial = "ALREADY_TERMINAL"
	// DenialNotClaimable: the requested transition does not apply to the
	// ticket's current status (claiming an already-claimed ticket,
	// completing one that was never claimed).
	DenialNotClaimable Denial = "NOT_CLAIMABLE"
)

// AllowedTransition returns the single transition available to viewerID
// for the given ticket, or the denial explaining why none is.
//
// Any authenticated viewer may claim a NOT_STARTED ticket. Only the
// assignee may complete an IN_PROGRESS one. Terminal tickets admit no
// transition.
func AllowedTransition(t domain.Ticket, viewerID string) (Transition, Denial) {
	switch t.EffectiveStatus() {
	case domain.TicketStatusNotStarted:
		return TransitionClaim, DenialNone
	case domain.TicketStatusInProgress:
		if t.AssignedUserID != nil && *t.AssignedUserID == viewerID {
			return TransitionComplete, DenialNone
		}
		return "", DenialNotAssignee
	default:
		return "", DenialAlreadyTerminal
	}
}

// Authorize classifies an attempted transition. It mirrors
// AllowedTransition but answers for a specific request, so callers can
// report why the exact action a viewer asked for is unavailable.
func Authorize(t domain.Ticket, viewerID string, requested Transition) Denial {
	status := t.EffectiveStatus()
	if status.IsTerminal() {
		return DenialAlreadyTerminal
	}
	switch requested {
	case TransitionClaim:
		if status == domain.TicketStatusNotStarted {
			return DenialNone
		}
		return DenialNotClaimable
	case TransitionComplete:
		if status != domain.TicketStatusInProgress {
			return DenialNotClaimable
		}
		if t.AssignedUserID == nil || *t.AssignedUserID != viewerID {
			return DenialNotAssignee
		}
		return DenialNone
	default:
		return DenialNotClaimable
	}
}
