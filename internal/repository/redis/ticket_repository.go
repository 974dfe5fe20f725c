package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ndiaye-labs/gatepass/internal/domain"
	"github.com/ndiaye-labs/gatepass/pkg/logger"
)

const keyPrefix = "gatepass"

type redisRepository struct {
	cli *redis.Client
	l   logger.Logger
}

func NewRedisRepository(cli *redis.Client, l logger.Logger) Repository {
	return &redisRepository{
		cli: cli,
		l:   l,
	}
}

func (r *redisRepository) SaveOrder(ctx context.Context, order domain.Order, tickets []domain.Ticket) error {
	orderData, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	// One pipeline per purchase so the mirror never holds a half-written
	// order.
	pipe := r.cli.Pipeline()
	pipe.Set(ctx, r.orderKey(order.ID), orderData, 0)
	pipe.RPush(ctx, r.orderIndexKey(), order.ID)

	for i := range tickets {
		ticketData, err := json.Marshal(tickets[i])
		if err != nil {
			return fmt.Errorf("failed to marshal ticket: %w", err)
		}
		pipe.Set(ctx, r.ticketKey(tickets[i].ID), ticketData, 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		r.l.Errorf(ctx, "repository.redisRepository.SaveOrder: %v", err)
		return err
	}

	r.l.Debugf(ctx, "order mirrored: %s (%d tickets)", order.ID, len(tickets))

	return nil
}

func (r *redisRepository) MarkTicketUsed(ctx context.Context, ticket domain.Ticket) error {
	data, err := json.Marshal(ticket)
	if err != nil {
		return fmt.Errorf("failed to marshal ticket: %w", err)
	}

	if err := r.cli.Set(ctx, r.ticketKey(ticket.ID), data, 0).Err(); err != nil {
		r.l.Errorf(ctx, "repository.redisRepository.MarkTicketUsed: %v", err)
		return err
	}

	return nil
}

func (r *redisRepository) ticketKey(ticketID string) string {
	return fmt.Sprintf("%s:ticket:%s", keyPrefix, ticketID)
}

func (r *redisRepository) orderKey(orderID string) string {
	return fmt.Sprintf("%s:order:%s", keyPrefix, orderID)
}

func (r *redisRepository) orderIndexKey() string {
	return fmt.Sprintf("%s:orders", keyPrefix)
}
