package kafka

import "time"

// Events published by the gate service. The external notifier consumes
// order.completed to deliver tickets to the buyer (and attendees) by
// email or messaging; entry dashboards consume ticket.redeemed.

type TicketIssuedEvent struct {
	TicketID      string    `json:"ticket_id"`
	OrderID       string    `json:"order_id"`
	HolderName    string    `json:"holder_name"`
	HolderContact string    `json:"holder_contact"`
	CategoryKey   string    `json:"category_key"`
	PricePaid     int64     `json:"price_paid"`
	QRPayload     string    `json:"qr_payload"`
	RenderURL     string    `json:"render_url"`
	IssuedAt      time.Time `json:"issued_at"`
	Timestamp     time.Time `json:"timestamp"`
}

type TicketRedeemedEvent struct {
	TicketID    string    `json:"ticket_id"`
	OrderID     string    `json:"order_id"`
	CategoryKey string    `json:"category_key"`
	UsedAt      time.Time `json:"used_at"`
	Timestamp   time.Time `json:"timestamp"`
}

type OrderCompletedEvent struct {
	OrderID      string    `json:"order_id"`
	BuyerContact string    `json:"buyer_contact"`
	SendCopy     bool      `json:"send_copy"`
	TicketIDs    []string  `json:"ticket_ids"`
	TotalAmount  int64     `json:"total_amount"`
	CreatedAt    time.Time `json:"created_at"`
	Timestamp    time.Time `json:"timestamp"`
}
