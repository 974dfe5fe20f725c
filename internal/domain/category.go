package domain

// TicketCategory is one price tier. The set of valid keys is closed at
// catalog construction; UnitPrice is in whole currency units.
type TicketCategory struct {
	Key          string `json:"key"`
	DisplayName  string `json:"display_name"`
	UnitPrice    int64  `json:"unit_price"`
	CurrencyCode string `json:"currency_code"`
}

// EventInfo describes the concert the tickets admit to. It is rendered
// into QR payloads and ticket responses; it never affects validation.
type EventInfo struct {
	Artist   string `json:"artist"`
	Venue    string `json:"venue"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

// Label is the short form embedded in QR payloads, e.g. "Didi B - Moscou".
func (e EventInfo) Label() string {
	return e.Artist + " - " + e.Location
}
