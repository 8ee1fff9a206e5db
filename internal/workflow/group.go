package workflow

import "github.com/mesadeayuda/helpdesk/internal/domain"

// GroupByOwner partitions a flat ticket collection by owner, preserving
// per-owner insertion order. A key is present only if its ticket list is
// non-empty, so filtering before grouping never leaves empty groups.
func GroupByOwner(tickets []domain.Ticket) map[string][]domain.Ticket {
	groups := make(map[string][]domain.Ticket)
	for _, t := range tickets {
		groups[t.OwnerUserID] = append(groups[t.OwnerUserID], t)
	}
	return groups
}

// OwnersInOrder returns owner IDs in order of first appearance, giving
// grouped views a deterministic iteration order over GroupByOwner's map.
func OwnersInOrder(tickets []domain.Ticket) []string {
	seen := make(map[string]struct{})
	order := make([]string, 0)
	for _, t := range tickets {
		if _, ok := seen[t.OwnerUserID]; ok {
			continue
		}
		seen[t.OwnerUserID] = struct{}{}
		order = append(order, t.OwnerUserID)
	}
	return order
}
