package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/mesadeayuda/helpdesk/internal/api/dto"
	"github.com/mesadeayuda/helpdesk/internal/auth"
	"github.com/mesadeayuda/helpdesk/internal/domain"
	"github.com/mesadeayuda/helpdesk/internal/service"
	"github.com/mesadeayuda/helpdesk/internal/workflow"
	apperrors "github.com/mesadeayuda/helpdesk/pkg/errorutil"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /api/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Description == "" || req.TypeOfService == "" || req.Equipment == "" {
		return apperrors.NewValidationError("title, description, type_of_service, equipment required", nil)
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), principal.User.ID, service.TicketCreateInput{
		Title:         req.Title,
		Description:   req.Description,
		TypeOfService: req.TypeOfService,
		Equipment:     req.Equipment,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket, principal.User.ID)})
}

// ListOwnTickets GET /api/tickets/mine.
func (h *TicketsHandler) ListOwnTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	tickets, totals, err := h.service.ListOwnTickets(c.UserContext(), principal.User.ID, parsePredicate(c))
	if err != nil {
		return err
	}

	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i], principal.User.ID))
	}
	return c.JSON(fiber.Map{"data": dto.TicketListResponse{
		// Self-service pending: everything still open.
		Totals:  totalsResponse(totals, totals.PendingOpen),
		Tickets: items,
	}})
}

// ListGrouped GET /api/tickets/all.
func (h *TicketsHandler) ListGrouped(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	groups, totals, err := h.service.ListGroupedByOwner(c.UserContext(), parsePredicate(c))
	if err != nil {
		return err
	}

	groupItems := make([]dto.OwnerGroupResponse, 0, len(groups))
	for _, group := range groups {
		tickets := make([]dto.TicketResponse, 0, len(group.Tickets))
		for i := range group.Tickets {
			tickets = append(tickets, ticketResponse(&group.Tickets[i], principal.User.ID))
		}
		groupItems = append(groupItems, dto.OwnerGroupResponse{
			OwnerUserID: group.OwnerUserID,
			OwnerName:   group.OwnerName,
			Totals:      totalsResponse(group.Totals, group.Totals.PendingUnclaimed),
			Tickets:     tickets,
		})
	}
	return c.JSON(fiber.Map{"data": dto.GroupedTicketsResponse{
		// Admin pending: only unclaimed tickets.
		Totals: totalsResponse(totals, totals.PendingUnclaimed),
		Groups: groupItems,
	}})
}

// GetTicket GET /api/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := h.service.GetTicket(c.UserContext(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket, principal.User.ID)})
}

// ClaimTicket PATCH /api/tickets/:id/claim.
func (h *TicketsHandler) ClaimTicket(c *fiber.Ctx) error {
	return h.mutate(c, h.service.ClaimTicket)
}

// CompleteTicket PATCH /api/tickets/:id/complete.
func (h *TicketsHandler) CompleteTicket(c *fiber.Ctx) error {
	return h.mutate(c, h.service.CompleteTicket)
}

// CancelTicket PATCH /api/tickets/:id/cancel.
func (h *TicketsHandler) CancelTicket(c *fiber.Ctx) error {
	return h.mutate(c, h.service.CancelTicket)
}

func (h *TicketsHandler) mutate(c *fiber.Ctx, op func(context.Context, *domain.User, string) (*domain.Ticket, error)) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := op(c.UserContext(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket, principal.User.ID)})
}

func parsePredicate(c *fiber.Ctx) workflow.Predicate {
	return workflow.Predicate{
		Text:     c.Query("search"),
		Status:   domain.TicketStatus(c.Query("status", workflow.FilterAll)),
		Priority: domain.TicketPriority(c.Query("priority", workflow.FilterAll)),
	}
}

func ticketResponse(ticket *domain.Ticket, viewerID string) dto.TicketResponse {
	resp := dto.TicketResponse{
		ID:             ticket.ID,
		ExternalKey:    ticket.ExternalKey,
		OwnerUserID:    ticket.OwnerUserID,
		AssignedUserID: ticket.AssignedUserID,
		Title:          ticket.Title,
		Description:    ticket.Description,
		Status:         ticket.EffectiveStatus(),
		Priority:       ticket.Priority,
		TypeOfService:  ticket.TypeOfService,
		Equipment:      ticket.Equipment,
		OpeningDate:    ticket.OpeningDate,
		LastUpdated:    ticket.LastUpdated,
	}
	if transition, denial := workflow.AllowedTransition(*ticket, viewerID); denial == workflow.DenialNone {
		resp.AvailableTransition = string(transition)
	}
	return resp
}

func totalsResponse(totals workflow.Totals, pending int) dto.TotalsResponse {
	return dto.TotalsResponse{
		Total:     totals.Total,
		Pending:   pending,
		Completed: totals.Completed,
	}
}
