package validation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndiaye-labs/gatepass/internal/clock"
	"github.com/ndiaye-labs/gatepass/internal/domain"
	"github.com/ndiaye-labs/gatepass/pkg/logger"
)

func newTestEngine() *Engine {
	return NewEngine(clock.NewSystem(), logger.InitializeTestZapLogger())
}

func issuedTicket(id string) domain.Ticket {
	return domain.Ticket{
		ID:          id,
		OrderID:     "ORD-1",
		HolderName:  "Awa",
		CategoryKey: "vip",
		PricePaid:   15000,
		State:       domain.TicketStateIssued,
		IssuedAt:    time.Now().UTC(),
	}
}

func TestRegisterAndRedeem(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	require.NoError(t, e.Register(ctx, []domain.Ticket{issuedTicket("TKT-1")}))

	res := e.Redeem(ctx, "TKT-1")
	assert.Equal(t, OutcomeAccepted, res.Outcome)
	require.NotNil(t, res.Ticket)
	assert.Equal(t, domain.TicketStateUsed, res.Ticket.State)
	require.NotNil(t, res.UsedAt)

	used, available := e.Counts()
	assert.Equal(t, int64(1), used)
	assert.Equal(t, int64(0), available)
}

func TestRedeemTwiceKeepsFirstUsedAt(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	require.NoError(t, e.Register(ctx, []domain.Ticket{issuedTicket("TKT-1")}))

	first := e.Redeem(ctx, "TKT-1")
	require.Equal(t, OutcomeAccepted, first.Outcome)
	firstUsedAt := *first.UsedAt

	for i := 0; i < 3; i++ {
		repeat := e.Redeem(ctx, "TKT-1")
		assert.Equal(t, OutcomeAlreadyUsed, repeat.Outcome)
		require.NotNil(t, repeat.UsedAt)
		assert.Equal(t, firstUsedAt, *repeat.UsedAt)
	}

	used, _ := e.Counts()
	assert.Equal(t, int64(1), used)
}

func TestRedeemUnknownID(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	require.NoError(t, e.Register(ctx, []domain.Ticket{issuedTicket("TKT-1")}))

	res := e.Redeem(ctx, "does-not-exist")
	assert.Equal(t, OutcomeNotFound, res.Outcome)
	assert.Nil(t, res.Ticket)
	assert.Nil(t, res.UsedAt)

	used, available := e.Counts()
	assert.Equal(t, int64(0), used)
	assert.Equal(t, int64(1), available)
}

func TestRegisterRejectsDuplicateWholeBatch(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	require.NoError(t, e.Register(ctx, []domain.Ticket{issuedTicket("TKT-1")}))

	err := e.Register(ctx, []domain.Ticket{issuedTicket("TKT-2"), issuedTicket("TKT-1")})
	assert.ErrorIs(t, err, domain.ErrDuplicateTicketID)

	// The non-duplicate ticket of the failed batch must not be admitted.
	_, ok := e.Get("TKT-2")
	assert.False(t, ok)
}

func TestConcurrentRedeemAcceptsExactlyOnce(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	require.NoError(t, e.Register(ctx, []domain.Ticket{issuedTicket("TKT-1")}))

	const scanners = 32
	var wg sync.WaitGroup
	results := make([]Outcome, scanners)

	wg.Add(scanners)
	for i := 0; i < scanners; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = e.Redeem(ctx, "TKT-1").Outcome
		}(i)
	}
	wg.Wait()

	var accepted, alreadyUsed int
	for _, outcome := range results {
		switch outcome {
		case OutcomeAccepted:
			accepted++
		case OutcomeAlreadyUsed:
			alreadyUsed++
		}
	}
	assert.Equal(t, 1, accepted)
	assert.Equal(t, scanners-1, alreadyUsed)
}

func TestRedeemDoesNotExposeInternalState(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	require.NoError(t, e.Register(ctx, []domain.Ticket{issuedTicket("TKT-1")}))

	res := e.Redeem(ctx, "TKT-1")
	res.Ticket.State = domain.TicketStateIssued

	stored, ok := e.Get("TKT-1")
	require.True(t, ok)
	assert.Equal(t, domain.TicketStateUsed, stored.State)
}

func TestTicketsReturnsInOrder(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	require.NoError(t, e.Register(ctx, []domain.Ticket{issuedTicket("TKT-1"), issuedTicket("TKT-2")}))

	out := e.Tickets([]string{"TKT-2", "TKT-1", "TKT-3"})
	require.Len(t, out, 2)
	assert.Equal(t, "TKT-2", out[0].ID)
	assert.Equal(t, "TKT-1", out[1].ID)
}
