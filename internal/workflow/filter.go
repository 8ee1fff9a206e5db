package workflow

import (
	"iter"
	"strings"

	"github.com/mesadeayuda/helpdesk/internal/domain"
)

// FilterAll is the sentinel matching every status or priority.
const FilterAll = "ALL"

// Predicate combines three independent, AND-combined criteria. Each
// criterion defaults to "match everything" when unset.
type Predicate struct {
	// Text is matched case-insensitively as a substring of the title,
	// the description, or (in the grouped-by-owner view) the owner's
	// display name.
	Text string
	// Status matches by equality; empty or "ALL" matches everything.
	Status domain.TicketStatus
	// Priority matches by equality; empty or "ALL" matches everything.
	Priority domain.TicketPriority
}

// Matches reports whether the ticket satisfies all three criteria.
func (p Predicate) Matches(t domain.Ticket) bool {
	return p.MatchesForOwner(t, "")
}

// MatchesForOwner is Matches with the owner's display name included in
// the text search, as the grouped admin view does.
func (p Predicate) MatchesForOwner(t domain.Ticket, ownerName string) bool {
	if !p.matchesText(t, ownerName) {
		return false
	}
	if p.Status != "" && p.Status != FilterAll && t.EffectiveStatus() != p.Status {
		return false
	}
	if p.Priority != "" && p.Priority != FilterAll && t.Priority != p.Priority {
		return false
	}
	return true
}

func (p Predicate) matchesText(t domain.Ticket, ownerName string) bool {
	if p.Text == "" {
		return true
	}
	needle := strings.ToLower(p.Text)
	return strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle) ||
		(ownerName != "" && strings.Contains(strings.ToLower(ownerName), needle))
}

// ApplyFilter returns the tickets satisfying the predicate as a lazy,
// restartable sequence preserving input order. The input is not mutated.
func ApplyFilter(tickets []domain.Ticket, p Predicate) iter.Seq[domain.Ticket] {
	return func(yield func(domain.Ticket) bool) {
		for _, t := range tickets {
			if !p.Matches(t) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// ApplyOwnerFilter is ApplyFilter for a single owner's tickets, with the
// owner's display name participating in the text match.
func ApplyOwnerFilter(tickets []domain.Ticket, ownerName string, p Predicate) iter.Seq[domain.Ticket] {
	return func(yield func(domain.Ticket) bool) {
		for _, t := range tickets {
			if !p.MatchesForOwner(t, ownerName) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}
