package repository

import (
	"context"

	"github.com/ndiaye-labs/gatepass/internal/domain"
)

// Repository is the durable mirror of issued tickets and recorded orders.
// The in-memory engine and ledger stay authoritative; the mirror exists so
// an external system of record can be rebuilt, and a write failure never
// vetoes a state transition.
type Repository interface {
	SaveOrder(ctx context.Context, order domain.Order, tickets []domain.Ticket) error
	MarkTicketUsed(ctx context.Context, ticket domain.Ticket) error
}
