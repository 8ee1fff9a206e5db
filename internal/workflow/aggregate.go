package workflow

import (
	"iter"

	"github.com/mesadeayuda/helpdesk/internal/domain"
)

// Totals carries the counters shown above every ticket list.
//
// The admin and self-service views disagree on what "pending" means: the
// grouped admin view counts only unclaimed tickets, the self-service
// view counts everything still open. Both definitions are kept as
// distinctly named metrics; each call site picks the one its audience
// cares about.
type Totals struct {
	Total int
	// PendingUnclaimed counts NOT_STARTED tickets.
	PendingUnclaimed int
	// PendingOpen counts NOT_STARTED and IN_PROGRESS tickets.
	PendingOpen int
	Completed   int
}

// Aggregate computes Totals over a ticket sequence, composing directly
// with ApplyFilter.
func Aggregate(tickets iter.Seq[domain.Ticket]) Totals {
	var totals Totals
	for t := range tickets {
		totals.Total++
		switch t.EffectiveStatus() {
		case domain.TicketStatusNotStarted:
			totals.PendingUnclaimed++
			totals.PendingOpen++
		case domain.TicketStatusInProgress:
			totals.PendingOpen++
		case domain.TicketStatusCompleted:
			totals.Completed++
		}
	}
	return totals
}

// AggregateSlice is Aggregate over a plain slice.
func AggregateSlice(tickets []domain.Ticket) Totals {
	return Aggregate(func(yield func(domain.Ticket) bool) {
		for _, t := range tickets {
			if !yield(t) {
				return
			}
		}
	})
}
