package service

import (
	"context"
	"sync"

	"github.com/ndiaye-labs/gatepass/internal/catalog"
	kafka "github.com/ndiaye-labs/gatepass/internal/delivery/kafka"
	"github.com/ndiaye-labs/gatepass/internal/delivery/kafka/producer"
	"github.com/ndiaye-labs/gatepass/internal/domain"
	"github.com/ndiaye-labs/gatepass/internal/ledger"
	"github.com/ndiaye-labs/gatepass/internal/qrcode"
	repo "github.com/ndiaye-labs/gatepass/internal/repository/redis"
	"github.com/ndiaye-labs/gatepass/internal/ticket"
	"github.com/ndiaye-labs/gatepass/internal/validation"
	"github.com/ndiaye-labs/gatepass/monitoring"
	pkgLog "github.com/ndiaye-labs/gatepass/pkg/logger"
)

type gateService struct {
	factory *ticket.Factory
	engine  *validation.Engine
	ledger  *ledger.Ledger
	catalog *catalog.Catalog
	repo    repo.Repository
	prod    producer.Producer
	l       pkgLog.Logger

	// commitMu orders engine registration and ledger recording of one
	// purchase against other commits. Readers never see an order whose
	// tickets are missing: the ledger append is the single visibility
	// point.
	commitMu sync.Mutex
}

func NewGateService(
	factory *ticket.Factory,
	engine *validation.Engine,
	ldg *ledger.Ledger,
	cat *catalog.Catalog,
	repository repo.Repository,
	prod producer.Producer,
	l pkgLog.Logger,
) GateService {
	return &gateService{
		factory: factory,
		engine:  engine,
		ledger:  ldg,
		catalog: cat,
		repo:    repository,
		prod:    prod,
		l:       l,
	}
}

func (s *gateService) Purchase(ctx context.Context, in PurchaseInput) (*PurchaseOutput, error) {
	req := domain.OrderRequest{
		BuyerContact: in.BuyerContact,
		SendCopy:     in.SendCopy,
		Attendees:    make([]domain.Attendee, 0, len(in.Attendees)),
	}
	for _, a := range in.Attendees {
		req.Attendees = append(req.Attendees, domain.Attendee{
			Name:        a.Name,
			Contact:     a.Contact,
			CategoryKey: a.CategoryKey,
		})
	}

	order, tickets, err := s.factory.Issue(req)
	if err != nil {
		s.l.Warnf(ctx, "service.gateService.Purchase: %v", err)
		return nil, err
	}

	s.commitMu.Lock()
	if err := s.engine.Register(ctx, tickets); err != nil {
		s.commitMu.Unlock()
		return nil, err
	}
	if err := s.ledger.Record(order, tickets); err != nil {
		// Should never happen: ids are process-unique. The registered
		// tickets stay redeemable but the order is not recorded; surface
		// the integrity error instead of overwriting the ledger.
		s.commitMu.Unlock()
		s.l.Errorf(ctx, "service.gateService.Purchase: %v", err)
		return nil, err
	}
	s.commitMu.Unlock()

	categories := make([]string, 0, len(tickets))
	for i := range tickets {
		categories = append(categories, tickets[i].CategoryKey)
	}
	monitoring.RecordPurchase(categories, order.TotalAmount)

	// Mirror and notify after commit; neither may fail the purchase.
	if err := s.repo.SaveOrder(ctx, order, tickets); err != nil {
		s.l.Errorf(ctx, "service.gateService.Purchase: mirror write failed: %v", err)
	}
	s.publishPurchase(ctx, order, tickets, in.SendCopy)

	s.l.Infof(ctx, "order %s completed: %d tickets, total %d", order.ID, len(tickets), order.TotalAmount)

	return &PurchaseOutput{
		Order:   order,
		Total:   catalog.FormatAmount(order.TotalAmount, s.catalog.Currency()),
		Tickets: s.presentTickets(tickets),
	}, nil
}

func (s *gateService) Redeem(ctx context.Context, in RedeemInput) (*RedeemOutput, error) {
	ticketID, err := qrcode.DecodeScan(in.Scan)
	if err != nil {
		return nil, ErrEmptyScan
	}

	res := s.engine.Redeem(ctx, ticketID)
	monitoring.RecordRedemption(string(res.Outcome))

	if res.Outcome == validation.OutcomeAccepted {
		s.ledger.NoteRedemption(ticketID)

		if err := s.repo.MarkTicketUsed(ctx, *res.Ticket); err != nil {
			s.l.Errorf(ctx, "service.gateService.Redeem: mirror write failed: %v", err)
		}
		if err := s.prod.PublishTicketRedeemed(ctx, kafka.TicketRedeemedEvent{
			TicketID:    res.Ticket.ID,
			OrderID:     res.Ticket.OrderID,
			CategoryKey: res.Ticket.CategoryKey,
			UsedAt:      *res.UsedAt,
		}); err != nil {
			s.l.Errorf(ctx, "service.gateService.Redeem: %v", err)
		}

		s.l.Infof(ctx, "ticket %s redeemed", ticketID)
	}

	out := &RedeemOutput{
		Outcome: res.Outcome,
		UsedAt:  res.UsedAt,
	}
	if res.Ticket != nil {
		t := s.presentTicket(*res.Ticket)
		out.Ticket = &t
	}
	return out, nil
}

func (s *gateService) GetOrder(ctx context.Context, orderID string) (*OrderDetailOutput, error) {
	order, err := s.ledger.Order(orderID)
	if err != nil {
		s.l.Warnf(ctx, "service.gateService.GetOrder: %v", err)
		return nil, err
	}

	return &OrderDetailOutput{
		Order:   order,
		Total:   catalog.FormatAmount(order.TotalAmount, s.catalog.Currency()),
		Tickets: s.presentTickets(s.engine.Tickets(order.TicketIDs)),
	}, nil
}

func (s *gateService) ListOrders(ctx context.Context) ([]OrderSummary, error) {
	orders := s.ledger.AllOrders()

	out := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderSummary{
			ID:           o.ID,
			BuyerContact: o.BuyerContact,
			TicketCount:  len(o.TicketIDs),
			TotalAmount:  o.TotalAmount,
			Total:        catalog.FormatAmount(o.TotalAmount, s.catalog.Currency()),
			CreatedAt:    o.CreatedAt,
		})
	}
	return out, nil
}

func (s *gateService) Stats(ctx context.Context) (*StatsOutput, error) {
	stats := s.ledger.AggregateStats()

	return &StatsOutput{
		TotalTickets:   stats.TotalTickets,
		UsedCount:      stats.UsedCount,
		AvailableCount: stats.AvailableCount,
		OrderCount:     stats.OrderCount,
		Revenue:        stats.Revenue,
		RevenueDisplay: catalog.FormatAmount(stats.Revenue, s.catalog.Currency()),
	}, nil
}

func (s *gateService) publishPurchase(ctx context.Context, order domain.Order, tickets []domain.Ticket, sendCopy bool) {
	for i := range tickets {
		t := tickets[i]
		if err := s.prod.PublishTicketIssued(ctx, kafka.TicketIssuedEvent{
			TicketID:      t.ID,
			OrderID:       t.OrderID,
			HolderName:    t.HolderName,
			HolderContact: t.HolderContact,
			CategoryKey:   t.CategoryKey,
			PricePaid:     t.PricePaid,
			QRPayload:     t.QRPayload,
			RenderURL:     qrcode.RenderURL(t.QRPayload),
			IssuedAt:      t.IssuedAt,
		}); err != nil {
			s.l.Errorf(ctx, "service.gateService.publishPurchase: %v", err)
		}
	}

	if err := s.prod.PublishOrderCompleted(ctx, kafka.OrderCompletedEvent{
		OrderID:      order.ID,
		BuyerContact: order.BuyerContact,
		SendCopy:     sendCopy,
		TicketIDs:    order.TicketIDs,
		TotalAmount:  order.TotalAmount,
		CreatedAt:    order.CreatedAt,
	}); err != nil {
		s.l.Errorf(ctx, "service.gateService.publishPurchase: %v", err)
	}
}

func (s *gateService) presentTickets(tickets []domain.Ticket) []TicketOutput {
	out := make([]TicketOutput, 0, len(tickets))
	for i := range tickets {
		out = append(out, s.presentTicket(tickets[i]))
	}
	return out
}

func (s *gateService) presentTicket(t domain.Ticket) TicketOutput {
	currency := s.catalog.Currency()
	if cat, err := s.catalog.Category(t.CategoryKey); err == nil {
		currency = cat.CurrencyCode
	}
	return TicketOutput{
		ID:          t.ID,
		OrderID:     t.OrderID,
		HolderName:  t.HolderName,
		CategoryKey: t.CategoryKey,
		PricePaid:   t.PricePaid,
		Price:       catalog.FormatAmount(t.PricePaid, currency),
		QRPayload:   t.QRPayload,
		RenderURL:   qrcode.RenderURL(t.QRPayload),
		State:       string(t.State),
		IssuedAt:    t.IssuedAt,
		UsedAt:      t.UsedAt,
	}
}
