package repository

import (
	"context"

	"github.com/ndiaye-labs/gatepass/internal/domain"
)

type noopRepository struct{}

// NewNoopRepository backs standalone runs with no durable mirror.
func NewNoopRepository() Repository {
	return noopRepository{}
}

func (noopRepository) SaveOrder(ctx context.Context, order domain.Order, tickets []domain.Ticket) error {
	return nil
}

func (noopRepository) MarkTicketUsed(ctx context.Context, ticket domain.Ticket) error {
	return nil
}
