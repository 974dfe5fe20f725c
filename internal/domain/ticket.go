package domain

import "time"

type TicketState string

const (
	TicketStateIssued TicketState = "ISSUED"
	TicketStateUsed   TicketState = "USED"
)

// Ticket is a single admission right. It is created by the factory with
// State ISSUED and mutated exactly once, by the validation engine, when it
// is redeemed at the gate.
type Ticket struct {
	ID            string      `json:"id"`
	OrderID       string      `json:"order_id"`
	HolderName    string      `json:"holder_name"`
	HolderContact string      `json:"holder_contact"`
	CategoryKey   string      `json:"category_key"`
	PricePaid     int64       `json:"price_paid"`
	QRPayload     string      `json:"qr_payload"`
	State         TicketState `json:"state"`
	IssuedAt      time.Time   `json:"issued_at"`
	UsedAt        *time.Time  `json:"used_at,omitempty"`
}

func (t *Ticket) IsUsed() bool {
	return t.State == TicketStateUsed
}
