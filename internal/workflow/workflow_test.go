package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesadeayuda/helpdesk/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestAllowedTransitionNotStarted(t *testing.T) {
	ticket := domain.Ticket{ID: "1", Status: domain.TicketStatusNotStarted}
	for _, viewer := range []string{"u1", "u2", "anyone"} {
		tr, denial := AllowedTransition(ticket, viewer)
		assert.Equal(t, TransitionClaim, tr, "viewer %s", viewer)
		assert.Equal(t, DenialNone, denial)
	}
}

func TestAllowedTransitionInProgress(t *testing.T) {
	ticket := domain.Ticket{
		ID:             "2",
		Status:         domain.TicketStatusInProgress,
		AssignedUserID: strPtr("u1"),
	}

	tr, denial := AllowedTransition(ticket, "u1")
	assert.Equal(t, TransitionComplete, tr)
	assert.Equal(t, DenialNone, denial)

	tr, denial = AllowedTransition(ticket, "u2")
	assert.Empty(t, tr)
	assert.Equal(t, DenialNotAssignee, denial)
}

func TestAllowedTransitionTerminal(t *testing.T) {
	for _, status := range []domain.TicketStatus{domain.TicketStatusCompleted, domain.TicketStatusCancelled} {
		ticket := domain.Ticket{ID: "3", Status: status, AssignedUserID: strPtr("u1")}
		for _, viewer := range []string{"u1", "u2"} {
			tr, denial := AllowedTransition(ticket, viewer)
			assert.Empty(t, tr, "status %s viewer %s", status, viewer)
			assert.Equal(t, DenialAlreadyTerminal, denial)
		}
	}
}

func TestAllowedTransitionDefaultsMissingStatus(t *testing.T) {
	// A payload with no status reads as NOT_STARTED.
	tr, denial := AllowedTransition(domain.Ticket{ID: "4"}, "u1")
	assert.Equal(t, TransitionClaim, tr)
	assert.Equal(t, DenialNone, denial)
}

func TestAuthorize(t *testing.T) {
	cases := []struct {
		name      string
		status    domain.TicketStatus
		assignee  *string
		viewer    string
		requested Transition
		want      Denial
	}{
		{"claim fresh ticket", domain.TicketStatusNotStarted, nil, "u1", TransitionClaim, DenialNone},
		{"claim already claimed", domain.TicketStatusInProgress, strPtr("u2"), "u1", TransitionClaim, DenialNotClaimable},
		{"claim completed", domain.TicketStatusCompleted, strPtr("u2"), "u1", TransitionClaim, DenialAlreadyTerminal},
		{"claim cancelled", domain.TicketStatusCancelled, nil, "u1", TransitionClaim, DenialAlreadyTerminal},
		{"complete as assignee", domain.TicketStatusInProgress, strPtr("u1"), "u1", TransitionComplete, DenialNone},
		{"complete as other viewer", domain.TicketStatusInProgress, strPtr("u2"), "u1", TransitionComplete, DenialNotAssignee},
		{"complete unclaimed", domain.TicketStatusNotStarted, nil, "u1", TransitionComplete, DenialNotClaimable},
		{"complete completed", domain.TicketStatusCompleted, strPtr("u1"), "u1", TransitionComplete, DenialAlreadyTerminal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ticket := domain.Ticket{ID: "t", Status: tc.status, AssignedUserID: tc.assignee}
			assert.Equal(t, tc.want, Authorize(ticket, tc.viewer, tc.requested))
		})
	}
}

func TestTransitionTarget(t *testing.T) {
	assert.Equal(t, domain.TicketStatusInProgress, TransitionClaim.Target())
	assert.Equal(t, domain.TicketStatusCompleted, TransitionComplete.Target())
}

func TestPriorityFor(t *testing.T) {
	cases := []struct {
		service   domain.ServiceType
		equipment domain.EquipmentKind
		want      domain.TicketPriority
	}{
		{domain.ServiceTypePrinter, domain.EquipmentPersonal, domain.TicketPriorityLow},
		{domain.ServiceTypeComputer, domain.EquipmentPersonal, domain.TicketPriorityLow},
		{domain.ServiceTypeInternet, domain.EquipmentPersonal, domain.TicketPriorityLow},
		{domain.ServiceTypeOther, domain.EquipmentPersonal, domain.TicketPriorityLow},
		{domain.ServiceTypePrinter, domain.EquipmentInstitutional, domain.TicketPriorityLow},
		{domain.ServiceTypeComputer, domain.EquipmentInstitutional, domain.TicketPriorityMedium},
		{domain.ServiceTypeInternet, domain.EquipmentInstitutional, domain.TicketPriorityHigh},
		{domain.ServiceTypeOther, domain.EquipmentInstitutional, domain.TicketPriorityMedium},
		// Unknown service types fall back to medium.
		{domain.ServiceType("internet_unrecognized_case"), domain.EquipmentInstitutional, domain.TicketPriorityMedium},
		{domain.ServiceType(""), domain.EquipmentInstitutional, domain.TicketPriorityMedium},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PriorityFor(tc.service, tc.equipment),
			"service=%q equipment=%q", tc.service, tc.equipment)
	}
}

func sampleTickets() []domain.Ticket {
	return []domain.Ticket{
		{ID: "1", OwnerUserID: "o1", Title: "Printer jam", Description: "paper stuck", Status: domain.TicketStatusNotStarted, Priority: domain.TicketPriorityLow},
		{ID: "2", OwnerUserID: "o2", Title: "VPN down", Description: "cannot connect", Status: domain.TicketStatusInProgress, Priority: domain.TicketPriorityHigh, AssignedUserID: strPtr("s1")},
		{ID: "3", OwnerUserID: "o1", Title: "Slow laptop", Description: "takes minutes to boot", Status: domain.TicketStatusCompleted, Priority: domain.TicketPriorityMedium},
		{ID: "4", OwnerUserID: "o3", Title: "No network", Description: "lab without internet", Status: domain.TicketStatusCancelled, Priority: domain.TicketPriorityHigh},
	}
}

func collect(seq func(func(domain.Ticket) bool)) []domain.Ticket {
	var out []domain.Ticket
	seq(func(t domain.Ticket) bool {
		out = append(out, t)
		return true
	})
	return out
}

func TestApplyFilterText(t *testing.T) {
	tickets := []domain.Ticket{
		{ID: "1", Title: "Printer jam"},
		{ID: "2", Title: "VPN down"},
	}
	got := collect(ApplyFilter(tickets, Predicate{Text: "vpn"}))
	assert.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestApplyFilterCriteriaAreANDed(t *testing.T) {
	tickets := sampleTickets()
	pred := Predicate{Text: "o", Status: domain.TicketStatusInProgress, Priority: domain.TicketPriorityHigh}
	got := collect(ApplyFilter(tickets, pred))
	assert.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestApplyFilterAllSentinels(t *testing.T) {
	tickets := sampleTickets()
	pred := Predicate{Status: FilterAll, Priority: FilterAll}
	assert.Len(t, collect(ApplyFilter(tickets, pred)), len(tickets))
}

func TestApplyFilterIsIdempotent(t *testing.T) {
	tickets := sampleTickets()
	pred := Predicate{Priority: domain.TicketPriorityHigh}
	once := collect(ApplyFilter(tickets, pred))
	twice := collect(ApplyFilter(once, pred))
	assert.Equal(t, once, twice)
}

func TestApplyFilterIsRestartable(t *testing.T) {
	seq := ApplyFilter(sampleTickets(), Predicate{Status: domain.TicketStatusNotStarted})
	first := collect(seq)
	second := collect(seq)
	assert.Equal(t, first, second)
}

func TestApplyFilterPreservesOrderAndInput(t *testing.T) {
	tickets := sampleTickets()
	got := collect(ApplyFilter(tickets, Predicate{Priority: domain.TicketPriorityHigh}))
	assert.Equal(t, []string{"2", "4"}, []string{got[0].ID, got[1].ID})
	assert.Len(t, tickets, 4)
}

func TestApplyOwnerFilterMatchesOwnerName(t *testing.T) {
	tickets := []domain.Ticket{{ID: "1", OwnerUserID: "o1", Title: "Broken mouse"}}
	got := collect(ApplyOwnerFilter(tickets, "Maria Lopez", Predicate{Text: "lopez"}))
	assert.Len(t, got, 1)
	got = collect(ApplyOwnerFilter(tickets, "Maria Lopez", Predicate{Text: "garcia"}))
	assert.Empty(t, got)
}

func TestAggregate(t *testing.T) {
	totals := AggregateSlice(sampleTickets())
	assert.Equal(t, 4, totals.Total)
	assert.Equal(t, 1, totals.PendingUnclaimed)
	assert.Equal(t, 2, totals.PendingOpen)
	assert.Equal(t, 1, totals.Completed)
}

func TestAggregateMissingStatusCountsAsPending(t *testing.T) {
	totals := AggregateSlice([]domain.Ticket{{ID: "1"}})
	assert.Equal(t, 1, totals.PendingUnclaimed)
	assert.Equal(t, 1, totals.PendingOpen)
	assert.Zero(t, totals.Completed)
}

func TestAggregateComposesWithFilter(t *testing.T) {
	tickets := sampleTickets()
	pred := Predicate{Priority: domain.TicketPriorityHigh}
	totals := Aggregate(ApplyFilter(tickets, pred))
	assert.Equal(t, len(collect(ApplyFilter(tickets, pred))), totals.Total)
}

func TestGroupByOwner(t *testing.T) {
	groups := GroupByOwner(sampleTickets())
	assert.Len(t, groups, 3)
	assert.Equal(t, []string{"1", "3"}, []string{groups["o1"][0].ID, groups["o1"][1].ID})
	for owner, list := range groups {
		assert.NotEmpty(t, list, "owner %s", owner)
	}
}

func TestGroupByOwnerAfterFilterDropsEmptyGroups(t *testing.T) {
	filtered := collect(ApplyFilter(sampleTickets(), Predicate{Status: domain.TicketStatusInProgress}))
	groups := GroupByOwner(filtered)
	assert.Len(t, groups, 1)
	_, hasO1 := groups["o1"]
	assert.False(t, hasO1)
}

func TestOwnersInOrder(t *testing.T) {
	assert.Equal(t, []string{"o1", "o2", "o3"}, OwnersInOrder(sampleTickets()))
}

func TestEndToEndScenario(t *testing.T) {
	tickets := []domain.Ticket{
		{ID: "1", Status: domain.TicketStatusNotStarted},
		{ID: "2", Status: domain.TicketStatusInProgress, AssignedUserID: strPtr("u1")},
		{ID: "3", Status: domain.TicketStatusCompleted},
	}

	tr, denial := AllowedTransition(tickets[0], "u1")
	assert.Equal(t, TransitionClaim, tr)
	assert.Equal(t, DenialNone, denial)

	tr, denial = AllowedTransition(tickets[1], "u1")
	assert.Equal(t, TransitionComplete, tr)
	assert.Equal(t, DenialNone, denial)

	tr, denial = AllowedTransition(tickets[2], "u1")
	assert.Empty(t, tr)
	assert.Equal(t, DenialAlreadyTerminal, denial)
}
