// Package qrcode builds the scannable payload carried by a ticket's QR
// code and decodes scanner input back to a ticket id. Rendering the payload
// into pixels is left to the external QR rendering service; this package
// only produces the payload string and the render URL.
package qrcode

import (
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"github.com/ndiaye-labs/gatepass/internal/domain"
)

const renderEndpoint = "https://api.qrserver.com/v1/create-qr-code/"

var ErrEmptyScan = errors.New("empty scan input")

// Payload is the document embedded in the QR code. Only TicketID matters
// for validation; the rest is informational, shown to humans on scan.
type Payload struct {
	TicketID string `json:"ticket_id"`
	Event    string `json:"event"`
	Holder   string `json:"holder"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

type Encoder struct {
	event domain.EventInfo
}

func NewEncoder(event domain.EventInfo) *Encoder {
	return &Encoder{event: event}
}

// Encode produces the ticket's QR payload. Deterministic: the same ticket
// always encodes to the same string.
func (e *Encoder) Encode(t domain.Ticket) (string, error) {
	data, err := json.Marshal(Payload{
		TicketID: t.ID,
		Event:    e.event.Label(),
		Holder:   t.HolderName,
		Category: t.CategoryKey,
		Date:     e.event.Date,
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RenderURL points the external rendering service at a payload.
func RenderURL(payload string) string {
	return renderEndpoint + "?size=300x300&data=" + url.QueryEscape(payload)
}

// DecodeScan extracts a ticket id from whatever the scanner read: either a
// bare ticket id or a full JSON payload.
func DecodeScan(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrEmptyScan
	}
	if strings.HasPrefix(input, "{") {
		var p Payload
		if err := json.Unmarshal([]byte(input), &p); err == nil && p.TicketID != "" {
			return p.TicketID, nil
		}
	}
	return input, nil
}
