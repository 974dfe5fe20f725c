// Package validation owns the authoritative set of issued tickets and
// enforces one-time use at the gate. It is the only place a ticket's state
// is ever mutated.
package validation

import (
	"context"
	"sync"
	"time"

	"github.com/ndiaye-labs/gatepass/internal/clock"
	"github.com/ndiaye-labs/gatepass/internal/domain"
	"github.com/ndiaye-labs/gatepass/pkg/logger"
)

type Outcome string

const (
	OutcomeAccepted    Outcome = "ACCEPTED"
	OutcomeAlreadyUsed Outcome = "ALREADY_USED"
	OutcomeNotFound    Outcome = "NOT_FOUND"
)

// RedemptionResult is the verdict of one scan. Ticket is a copy of the
// ticket's state after the scan (nil when the id is unknown); UsedAt is the
// moment the ticket was first accepted.
type RedemptionResult struct {
	Outcome Outcome
	Ticket  *domain.Ticket
	UsedAt  *time.Time
}

// Engine serialises every check-and-set on the ticket map, so two
// simultaneous scans of one ticket resolve to exactly one ACCEPTED and the
// rest ALREADY_USED.
type Engine struct {
	mu      sync.Mutex
	tickets map[string]*domain.Ticket
	used    int64
	clock   clock.Clock
	l       logger.Logger
}

func NewEngine(clk clock.Clock, l logger.Logger) *Engine {
	return &Engine{
		tickets: make(map[string]*domain.Ticket),
		clock:   clk,
		l:       l,
	}
}

// Register admits newly issued tickets. The id generator already
// guarantees uniqueness; a duplicate here means a caller defect, and the
// batch is rejected whole so no partial registration is observable.
func (e *Engine) Register(ctx context.Context, tickets []domain.Ticket) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range tickets {
		if _, ok := e.tickets[tickets[i].ID]; ok {
			e.l.Errorf(ctx, "validation.Engine.Register: %v: %s", domain.ErrDuplicateTicketID, tickets[i].ID)
			return domain.ErrDuplicateTicketID
		}
	}
	for i := range tickets {
		t := tickets[i]
		e.tickets[t.ID] = &t
	}
	return nil
}

// Redeem looks up a ticket and transitions it ISSUED -> USED exactly once.
// A repeat scan reports ALREADY_USED with the original redemption time and
// changes nothing.
func (e *Engine) Redeem(ctx context.Context, ticketID string) RedemptionResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.tickets[ticketID]
	if !ok {
		return RedemptionResult{Outcome: OutcomeNotFound}
	}

	if t.IsUsed() {
		snapshot := *t
		return RedemptionResult{Outcome: OutcomeAlreadyUsed, Ticket: &snapshot, UsedAt: t.UsedAt}
	}

	now := e.clock.Now()
	t.State = domain.TicketStateUsed
	t.UsedAt = &now
	e.used++

	snapshot := *t
	return RedemptionResult{Outcome: OutcomeAccepted, Ticket: &snapshot, UsedAt: t.UsedAt}
}

// Get returns a copy of a registered ticket.
func (e *Engine) Get(ticketID string) (domain.Ticket, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.tickets[ticketID]
	if !ok {
		return domain.Ticket{}, false
	}
	return *t, true
}

// Tickets returns copies of the tickets with the given ids, in order,
// skipping unknown ids.
func (e *Engine) Tickets(ids []string) []domain.Ticket {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]domain.Ticket, 0, len(ids))
	for _, id := range ids {
		if t, ok := e.tickets[id]; ok {
			out = append(out, *t)
		}
	}
	return out
}

// Counts reports how many registered tickets have been used and how many
// remain available.
func (e *Engine) Counts() (used, available int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.used, int64(len(e.tickets)) - e.used
}
