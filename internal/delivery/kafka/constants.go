package kafka

const (
	TopicTicketIssued   = "ticket.issued"
	TopicTicketRedeemed = "ticket.redeemed"
	TopicOrderCompleted = "order.completed"
)
