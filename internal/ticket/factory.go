// Package ticket issues tickets and orders from purchase requests. The
// factory validates input, mints ids, snapshots prices and builds the QR
// payloads; it does not register tickets for validation nor record the
// order — the caller commits those as a separate step so a downstream
// failure is distinguishable from a validation failure.
package ticket

import (
	"strings"

	"github.com/ndiaye-labs/gatepass/internal/catalog"
	"github.com/ndiaye-labs/gatepass/internal/clock"
	"github.com/ndiaye-labs/gatepass/internal/domain"
	"github.com/ndiaye-labs/gatepass/internal/idgen"
	"github.com/ndiaye-labs/gatepass/internal/qrcode"
)

type Factory struct {
	ids     *idgen.Generator
	catalog *catalog.Catalog
	encoder *qrcode.Encoder
	clock   clock.Clock
}

func NewFactory(ids *idgen.Generator, cat *catalog.Catalog, enc *qrcode.Encoder, clk clock.Clock) *Factory {
	return &Factory{
		ids:     ids,
		catalog: cat,
		encoder: enc,
		clock:   clk,
	}
}

// Issue validates the request and produces one Order plus one Ticket per
// attendee. Prices are read from the catalog at this moment and fixed on
// each ticket; later catalog changes never alter an issued ticket. On any
// validation error nothing is issued.
func (f *Factory) Issue(req domain.OrderRequest) (domain.Order, []domain.Ticket, error) {
	if len(req.Attendees) == 0 {
		return domain.Order{}, nil, domain.ErrEmptyOrder
	}
	if strings.TrimSpace(req.BuyerContact) == "" {
		return domain.Order{}, nil, domain.ErrMissingBuyerContact
	}
	for i, a := range req.Attendees {
		if strings.TrimSpace(a.Name) == "" {
			return domain.Order{}, nil, &domain.InvalidAttendeeError{Index: i, Reason: "name is required"}
		}
		if strings.TrimSpace(a.Contact) == "" {
			return domain.Order{}, nil, &domain.InvalidAttendeeError{Index: i, Reason: "contact is required"}
		}
		if !f.catalog.Exists(a.CategoryKey) {
			return domain.Order{}, nil, domain.ErrUnknownCategory
		}
	}

	now := f.clock.Now()
	orderID := f.ids.NextOrderID()

	tickets := make([]domain.Ticket, 0, len(req.Attendees))
	ticketIDs := make([]string, 0, len(req.Attendees))
	var total int64

	for _, a := range req.Attendees {
		price, err := f.catalog.PriceOf(a.CategoryKey)
		if err != nil {
			return domain.Order{}, nil, err
		}

		t := domain.Ticket{
			ID:            f.ids.NextTicketID(),
			OrderID:       orderID,
			HolderName:    a.Name,
			HolderContact: a.Contact,
			CategoryKey:   a.CategoryKey,
			PricePaid:     price,
			State:         domain.TicketStateIssued,
			IssuedAt:      now,
		}
		payload, err := f.encoder.Encode(t)
		if err != nil {
			return domain.Order{}, nil, err
		}
		t.QRPayload = payload

		tickets = append(tickets, t)
		ticketIDs = append(ticketIDs, t.ID)
		total += price
	}

	order := domain.Order{
		ID:           orderID,
		BuyerContact: req.BuyerContact,
		TicketIDs:    ticketIDs,
		TotalAmount:  total,
		CreatedAt:    now,
	}
	return order, tickets, nil
}
