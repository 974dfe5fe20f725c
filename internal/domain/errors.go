package domain

import (
	"errors"
	"fmt"
)

var (
	// Validation errors: rejected before any state mutation.
	ErrEmptyOrder          = errors.New("order has no attendees")
	ErrMissingBuyerContact = errors.New("buyer contact is required")
	ErrUnknownCategory     = errors.New("unknown ticket category")
	ErrNegativePrice       = errors.New("category price must not be negative")

	// Integrity errors: a generator or caller defect, fatal to the request.
	ErrDuplicateTicketID    = errors.New("ticket id already registered")
	ErrDuplicateOrderID     = errors.New("order id already recorded")
	ErrOrderTicketsMismatch = errors.New("order ticket ids do not match issued tickets")
	ErrDuplicateCategoryKey = errors.New("duplicate category key")

	// Lookup errors.
	ErrOrderNotFound = errors.New("order not found")
)

// InvalidAttendeeError identifies which attendee of a purchase request
// failed validation and why.
type InvalidAttendeeError struct {
	Index  int
	Reason string
}

func (e *InvalidAttendeeError) Error() string {
	return fmt.Sprintf("invalid attendee at index %d: %s", e.Index, e.Reason)
}
