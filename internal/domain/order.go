package domain

import "time"

// Order groups the tickets issued together for one buyer. TicketIDs keeps
// issuance order; TotalAmount is the sum of the constituent tickets'
// PricePaid, fixed at issuance.
type Order struct {
	ID           string    `json:"id"`
	BuyerContact string    `json:"buyer_contact"`
	TicketIDs    []string  `json:"ticket_ids"`
	TotalAmount  int64     `json:"total_amount"`
	CreatedAt    time.Time `json:"created_at"`
}

// Attendee is the transient per-ticket input of a purchase request. It is
// copied onto the issued Ticket and not persisted on its own.
type Attendee struct {
	Name        string `json:"name"`
	Contact     string `json:"contact"`
	CategoryKey string `json:"category_key"`
}

// OrderRequest is one purchase request: one buyer, one or more attendees.
type OrderRequest struct {
	BuyerContact string     `json:"buyer_contact"`
	SendCopy     bool       `json:"send_copy"`
	Attendees    []Attendee `json:"attendees"`
}
