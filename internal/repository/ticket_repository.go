package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mesadeayuda/helpdesk/internal/domain"
)

// ErrStaleTicket reports a conditional status update that matched no row:
// the ticket moved on since the caller's snapshot was taken, typically
// because another staff member won the claim race.
var ErrStaleTicket = pgx.ErrNoRows

// TicketRepository encapsulates ticket persistence.
//
// Status transitions are conditional updates keyed on the expected current
// state, so the database remains the single arbiter of the lifecycle no
// matter what the caller's snapshot said.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]domain.Ticket, error)
	ListAll(ctx context.Context) ([]domain.Ticket, error)
	ListChangedSince(ctx context.Context, since time.Time) ([]domain.Ticket, error)
	// Claim moves a NOT_STARTED ticket to IN_PROGRESS and records the
	// claimant. Returns ErrStaleTicket when the ticket is no longer
	// claimable.
	Claim(ctx context.Context, ticketID, staffID string) (*domain.Ticket, error)
	// Complete moves an IN_PROGRESS ticket to COMPLETED, only when
	// staffID is the recorded assignee.
	Complete(ctx context.Context, ticketID, staffID string) (*domain.Ticket, error)
	// Cancel moves a non-terminal ticket to CANCELLED.
	Cancel(ctx context.Context, ticketID string) (*domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, external_key, owner_user_id, assigned_user_id,
           title, description, status, priority, type_of_service, equipment,
           opening_date, last_updated`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (external_key, owner_user_id, title, description, status, priority, type_of_service, equipment)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, opening_date, last_updated`
	return r.pool.QueryRow(ctx, query,
		ticket.ExternalKey,
		ticket.OwnerUserID,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.TypeOfService,
		ticket.Equipment,
	).Scan(&ticket.ID, &ticket.OpeningDate, &ticket.LastUpdated)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) ListByOwner(ctx context.Context, ownerUserID string) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE owner_user_id=$1 ORDER BY opening_date, id`
	rows, err := r.pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets ORDER BY owner_user_id, opening_date, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListChangedSince(ctx context.Context, since time.Time) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE last_updated > $1 ORDER BY last_updated, id`
	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) Claim(ctx context.Context, ticketID, staffID string) (*domain.Ticket, error) {
	const query = `
        UPDATE tickets SET status='IN_PROGRESS', assigned_user_id=$2, last_updated=NOW()
        WHERE id=$1 AND status='NOT_STARTED'
        RETURNING ` + ticketColumns
	return r.fetchSingle(ctx, query, ticketID, staffID)
}

func (r *ticketRepository) Complete(ctx context.Context, ticketID, staffID string) (*domain.Ticket, error) {
	const query = `
        UPDATE tickets SET status='COMPLETED', last_updated=NOW()
        WHERE id=$1 AND status='IN_PROGRESS' AND assigned_user_id=$2
        RETURNING ` + ticketColumns
	return r.fetchSingle(ctx, query, ticketID, staffID)
}

func (r *ticketRepository) Cancel(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	const query = `
        UPDATE tickets SET status='CANCELLED', last_updated=NOW()
        WHERE id=$1 AND status NOT IN ('COMPLETED','CANCELLED')
        RETURNING ` + ticketColumns
	return r.fetchSingle(ctx, query, ticketID)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&ticket.ID,
		&ticket.ExternalKey,
		&ticket.OwnerUserID,
		&ticket.AssignedUserID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.Priority,
		&ticket.TypeOfService,
		&ticket.Equipment,
		&ticket.OpeningDate,
		&ticket.LastUpdated,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.ExternalKey,
			&ticket.OwnerUserID,
			&ticket.AssignedUserID,
			&ticket.Title,
			&ticket.Description,
			&ticket.Status,
			&ticket.Priority,
			&ticket.TypeOfService,
			&ticket.Equipment,
			&ticket.OpeningDate,
			&ticket.LastUpdated,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
