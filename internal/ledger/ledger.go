// Package ledger keeps the append-only record of completed orders and the
// running aggregates derived from it. Orders are never updated or deleted;
// corrections would be new entries, not edits.
package ledger

import (
	"sync"

	"github.com/ndiaye-labs/gatepass/internal/domain"
)

// Stats is the aggregate view over everything recorded so far.
type Stats struct {
	TotalTickets   int64 `json:"total_tickets"`
	UsedCount      int64 `json:"used_count"`
	AvailableCount int64 `json:"available_count"`
	OrderCount     int64 `json:"order_count"`
	Revenue        int64 `json:"revenue"`
}

// Ledger maintains running counters instead of re-scanning on every stats
// call: Record advances the issuance side, NoteRedemption the usage side.
// Record is the single commit point of a purchase, so readers never observe
// an order without its tickets reflected in the aggregates.
type Ledger struct {
	mu           sync.RWMutex
	orders       map[string]domain.Order
	sequence     []string
	totalTickets int64
	usedCount    int64
	revenue      int64
}

func New() *Ledger {
	return &Ledger{
		orders: make(map[string]domain.Order),
	}
}

// Record appends a completed order. The tickets are the ones issued with
// it; they are cross-checked against the order so a mismatched commit is
// rejected rather than silently skewing the aggregates.
func (l *Ledger) Record(order domain.Order, tickets []domain.Ticket) error {
	if len(tickets) != len(order.TicketIDs) {
		return domain.ErrOrderTicketsMismatch
	}
	for i, t := range tickets {
		if t.ID != order.TicketIDs[i] {
			return domain.ErrOrderTicketsMismatch
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.orders[order.ID]; ok {
		return domain.ErrDuplicateOrderID
	}

	stored := order
	stored.TicketIDs = append([]string(nil), order.TicketIDs...)
	l.orders[order.ID] = stored
	l.sequence = append(l.sequence, order.ID)
	l.totalTickets += int64(len(tickets))
	l.revenue += order.TotalAmount
	return nil
}

// NoteRedemption advances the used counter. Callers invoke it exactly once
// per accepted redemption; the validation engine guarantees a ticket is
// accepted at most once.
func (l *Ledger) NoteRedemption(ticketID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.usedCount++
}

// Order returns a recorded order by id.
func (l *Ledger) Order(orderID string) (domain.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	order, ok := l.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	order.TicketIDs = append([]string(nil), order.TicketIDs...)
	return order, nil
}

// AllOrders returns a fresh snapshot of all recorded orders in recording
// order. Each call produces an independent traversal from the start.
func (l *Ledger) AllOrders() []domain.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Order, 0, len(l.sequence))
	for _, id := range l.sequence {
		order := l.orders[id]
		order.TicketIDs = append([]string(nil), order.TicketIDs...)
		out = append(out, order)
	}
	return out
}

// AggregateStats reports the current aggregates.
func (l *Ledger) AggregateStats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return Stats{
		TotalTickets:   l.totalTickets,
		UsedCount:      l.usedCount,
		AvailableCount: l.totalTickets - l.usedCount,
		OrderCount:     int64(len(l.sequence)),
		Revenue:        l.revenue,
	}
}
