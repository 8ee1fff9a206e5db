package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mesadeayuda/helpdesk/internal/domain"
	"github.com/mesadeayuda/helpdesk/internal/events"
	"github.com/mesadeayuda/helpdesk/internal/repository"
	"github.com/mesadeayuda/helpdesk/internal/workflow"
	apperrors "github.com/mesadeayuda/helpdesk/pkg/errorutil"
)

// TicketService coordinates ticket workflows. Transition legality is
// classified up front by the workflow package; the repository's
// conditional updates remain the authoritative check, so a snapshot that
// went stale between the two surfaces as a conflict, not a corruption.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket creation payload. Priority is not
// part of it: the service derives it from service type and equipment.
type TicketCreateInput struct {
	Title         string
	Description   string
	TypeOfService domain.ServiceType
	Equipment     domain.EquipmentKind
}

// OwnerTickets is one group of the admin view: a requester and their
// tickets surviving the active filter.
type OwnerTickets struct {
	OwnerUserID string
	OwnerName   string
	Tickets     []domain.Ticket
	Totals      workflow.Totals
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket creates a ticket for a requester. Status starts at
// NOT_STARTED with no assignee; priority follows the deterministic
// creation-time rule.
func (s *TicketService) CreateTicket(ctx context.Context, ownerID string, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}

	ticket := &domain.Ticket{
		ExternalKey:   generateTicketKey(),
		OwnerUserID:   ownerID,
		Title:         title,
		Description:   description,
		Status:        domain.TicketStatusNotStarted,
		Priority:      workflow.PriorityFor(input.TypeOfService, input.Equipment),
		TypeOfService: input.TypeOfService,
		Equipment:     input.Equipment,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  ownerID,
		Payload: events.TicketCreatedPayload{
			OwnerUserID:   ticket.OwnerUserID,
			Title:         ticket.Title,
			Priority:      ticket.Priority,
			TypeOfService: ticket.TypeOfService,
			Equipment:     ticket.Equipment,
		},
	})
	return ticket, nil
}

// ListOwnTickets returns a requester's tickets after filtering, with the
// self-service totals (pending means anything still open).
func (s *TicketService) ListOwnTickets(ctx context.Context, ownerID string, pred workflow.Predicate) ([]domain.Ticket, workflow.Totals, error) {
	tickets, err := s.tickets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, workflow.Totals{}, apperrors.MapError(err)
	}
	filtered := slices.Collect(workflow.ApplyFilter(tickets, pred))
	return filtered, workflow.AggregateSlice(filtered), nil
}

// ListGroupedByOwner returns every requester's tickets for the admin
// view, grouped and ordered by first appearance. The filter runs before
// grouping, so requesters whose tickets all fail it are dropped entirely.
func (s *TicketService) ListGroupedByOwner(ctx context.Context, pred workflow.Predicate) ([]OwnerTickets, workflow.Totals, error) {
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, workflow.Totals{}, apperrors.MapError(err)
	}

	names, err := s.ownerNames(ctx, tickets)
	if err != nil {
		return nil, workflow.Totals{}, apperrors.MapError(err)
	}

	filtered := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if pred.MatchesForOwner(t, names[t.OwnerUserID]) {
			filtered = append(filtered, t)
		}
	}

	groups := workflow.GroupByOwner(filtered)
	result := make([]OwnerTickets, 0, len(groups))
	for _, ownerID := range workflow.OwnersInOrder(filtered) {
		list := groups[ownerID]
		result = append(result, OwnerTickets{
			OwnerUserID: ownerID,
			OwnerName:   names[ownerID],
			Tickets:     list,
			Totals:      workflow.AggregateSlice(list),
		})
	}
	return result, workflow.AggregateSlice(filtered), nil
}

// ClaimTicket assigns a NOT_STARTED ticket to the acting staff member.
func (s *TicketService) ClaimTicket(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	if actor == nil || !actor.CanActOnTickets() {
		return nil, apperrors.NewForbidden("staff role required")
	}
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if denial := workflow.Authorize(*ticket, actor.ID, workflow.TransitionClaim); denial != workflow.DenialNone {
		return nil, denialError(denial, ticketID)
	}

	updated, err := s.tickets.Claim(ctx, ticketID, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrStaleTicket) {
			return nil, apperrors.NewStaleConflict("ticket was claimed by someone else", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	s.publishStatusEvent(ctx, events.EventTicketClaimed, actor.ID, ticket.Status, updated)
	return updated, nil
}

// CompleteTicket marks an IN_PROGRESS ticket COMPLETED; assignee only.
func (s *TicketService) CompleteTicket(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	if actor == nil || !actor.CanActOnTickets() {
		return nil, apperrors.NewForbidden("staff role required")
	}
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if denial := workflow.Authorize(*ticket, actor.ID, workflow.TransitionComplete); denial != workflow.DenialNone {
		return nil, denialError(denial, ticketID)
	}

	updated, err := s.tickets.Complete(ctx, ticketID, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrStaleTicket) {
			return nil, apperrors.NewStaleConflict("ticket changed since it was loaded", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	s.publishStatusEvent(ctx, events.EventTicketCompleted, actor.ID, ticket.Status, updated)
	return updated, nil
}

// CancelTicket moves a non-terminal ticket to the absorbing CANCELLED
// state. The requester may cancel their own ticket; admins may cancel any.
func (s *TicketService) CancelTicket(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.OwnerUserID != actor.ID && actor.Role != domain.UserRoleAdmin {
		return nil, apperrors.NewForbidden("only the requester or an admin can cancel")
	}
	if ticket.EffectiveStatus().IsTerminal() {
		return nil, denialError(workflow.DenialAlreadyTerminal, ticketID)
	}

	updated, err := s.tickets.Cancel(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrStaleTicket) {
			return nil, apperrors.NewStaleConflict("ticket changed since it was loaded", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	s.publishStatusEvent(ctx, events.EventTicketCancelled, actor.ID, ticket.Status, updated)
	return updated, nil
}

// GetTicket fetches a single ticket, enforcing ownership for requesters.
func (s *TicketService) GetTicket(ctx context.Context, viewer *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if viewer != nil && !viewer.CanActOnTickets() && ticket.OwnerUserID != viewer.ID {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

func (s *TicketService) getTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *TicketService) ownerNames(ctx context.Context, tickets []domain.Ticket) (map[string]string, error) {
	owners, err := s.users.ListByIDs(ctx, workflow.OwnersInOrder(tickets))
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(owners))
	for _, owner := range owners {
		names[owner.ID] = owner.Name
	}
	return names, nil
}

func denialError(denial workflow.Denial, ticketID string) error {
	details := map[string]any{"ticket_id": ticketID}
	switch denial {
	case workflow.DenialNotAssignee:
		return apperrors.NewTransitionDenied(string(denial), "only the assigned staff member can complete this ticket", details)
	case workflow.DenialAlreadyTerminal:
		return apperrors.NewTransitionDenied(string(denial), "ticket already completed or cancelled", details)
	default:
		return apperrors.NewTransitionDenied(string(workflow.DenialNotClaimable), "ticket is not in a claimable state", details)
	}
}

func generateTicketKey() string {
	return "HD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func (s *TicketService) publishStatusEvent(ctx context.Context, eventType events.EventType, actorID string, oldStatus domain.TicketStatus, ticket *domain.Ticket) {
	s.publishEvent(ctx, events.Event{
		Type:     eventType,
		TicketID: ticket.ID,
		ActorID:  actorID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus:      oldStatus,
			NewStatus:      ticket.Status,
			AssignedUserID: ticket.AssignedUserID,
		},
	})
}
