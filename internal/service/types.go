package service

import (
	"time"

	"github.com/ndiaye-labs/gatepass/internal/domain"
	"github.com/ndiaye-labs/gatepass/internal/validation"
)

type AttendeeInput struct {
	Name        string `json:"name" validate:"required"`
	Contact     string `json:"contact" validate:"required"`
	CategoryKey string `json:"category_key" validate:"required"`
}

type PurchaseInput struct {
	BuyerContact string          `json:"buyer_contact" validate:"required"`
	SendCopy     bool            `json:"send_copy"`
	Attendees    []AttendeeInput `json:"attendees" validate:"required,min=1,dive"`
}

type TicketOutput struct {
	ID          string     `json:"id"`
	OrderID     string     `json:"order_id"`
	HolderName  string     `json:"holder_name"`
	CategoryKey string     `json:"category_key"`
	PricePaid   int64      `json:"price_paid"`
	Price       string     `json:"price"`
	QRPayload   string     `json:"qr_payload"`
	RenderURL   string     `json:"render_url"`
	State       string     `json:"state"`
	IssuedAt    time.Time  `json:"issued_at"`
	UsedAt      *time.Time `json:"used_at,omitempty"`
}

type PurchaseOutput struct {
	Order   domain.Order   `json:"order"`
	Total   string         `json:"total"`
	Tickets []TicketOutput `json:"tickets"`
}

type RedeemInput struct {
	// Scan is whatever the scanner read: a bare ticket id or a full QR
	// payload.
	Scan string `json:"scan" validate:"required"`
}

type RedeemOutput struct {
	Outcome validation.Outcome `json:"outcome"`
	Ticket  *TicketOutput      `json:"ticket,omitempty"`
	UsedAt  *time.Time         `json:"used_at,omitempty"`
}

type OrderSummary struct {
	ID           string    `json:"id"`
	BuyerContact string    `json:"buyer_contact"`
	TicketCount  int       `json:"ticket_count"`
	TotalAmount  int64     `json:"total_amount"`
	Total        string    `json:"total"`
	CreatedAt    time.Time `json:"created_at"`
}

type OrderDetailOutput struct {
	Order   domain.Order   `json:"order"`
	Total   string         `json:"total"`
	Tickets []TicketOutput `json:"tickets"`
}

type StatsOutput struct {
	TotalTickets   int64  `json:"total_tickets"`
	UsedCount      int64  `json:"used_count"`
	AvailableCount int64  `json:"available_count"`
	OrderCount     int64  `json:"order_count"`
	Revenue        int64  `json:"revenue"`
	RevenueDisplay string `json:"revenue_display"`
}
