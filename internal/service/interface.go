package service

import "context"

// GateService is the in-process API the delivery layers consume: the full
// purchase / redeem / order lookup / stats surface of the ticket engine.
type GateService interface {
	Purchase(ctx context.Context, in PurchaseInput) (*PurchaseOutput, error)
	Redeem(ctx context.Context, in RedeemInput) (*RedeemOutput, error)
	GetOrder(ctx context.Context, orderID string) (*OrderDetailOutput, error)
	ListOrders(ctx context.Context) ([]OrderSummary, error)
	Stats(ctx context.Context) (*StatsOutput, error)
}
