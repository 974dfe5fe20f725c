// Package catalog holds the closed table of ticket categories and their
// prices. Lookups are pure; the only mutation is an explicit reprice, which
// never touches already-issued tickets (they snapshot their price at
// issuance).
package catalog

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ndiaye-labs/gatepass/internal/domain"
)

// Catalog is the fixed category table. Safe for concurrent lookups.
type Catalog struct {
	mu      sync.RWMutex
	keys    []string
	entries map[string]domain.TicketCategory
}

// NewDefault returns the concert's category table.
func NewDefault() *Catalog {
	c, _ := New([]domain.TicketCategory{
		{Key: "vip", DisplayName: "VIP", UnitPrice: 15000, CurrencyCode: "RUB"},
		{Key: "standard", DisplayName: "Standard", UnitPrice: 7500, CurrencyCode: "RUB"},
		{Key: "earlybird", DisplayName: "Early Bird", UnitPrice: 5000, CurrencyCode: "RUB"},
	})
	return c
}

// New builds a catalog from an ordered category list.
func New(categories []domain.TicketCategory) (*Catalog, error) {
	c := &Catalog{
		entries: make(map[string]domain.TicketCategory, len(categories)),
	}
	for _, cat := range categories {
		if cat.UnitPrice < 0 {
			return nil, domain.ErrNegativePrice
		}
		if _, ok := c.entries[cat.Key]; ok {
			return nil, domain.ErrDuplicateCategoryKey
		}
		c.keys = append(c.keys, cat.Key)
		c.entries[cat.Key] = cat
	}
	return c, nil
}

func (c *Catalog) Exists(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

func (c *Catalog) PriceOf(key string) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cat, ok := c.entries[key]
	if !ok {
		return 0, domain.ErrUnknownCategory
	}
	return cat.UnitPrice, nil
}

func (c *Catalog) Category(key string) (domain.TicketCategory, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cat, ok := c.entries[key]
	if !ok {
		return domain.TicketCategory{}, domain.ErrUnknownCategory
	}
	return cat, nil
}

// AllCategories returns the categories in their declared order.
func (c *Catalog) AllCategories() []domain.TicketCategory {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.TicketCategory, 0, len(c.keys))
	for _, key := range c.keys {
		out = append(out, c.entries[key])
	}
	return out
}

// Currency returns the catalog's currency code. Categories of one concert
// all share a currency; the first declared one wins.
func (c *Catalog) Currency() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.keys) == 0 {
		return ""
	}
	return c.entries[c.keys[0]].CurrencyCode
}

// SetPrice reprices a category for tickets issued from now on. Tickets
// already issued keep the price they were sold at.
func (c *Catalog) SetPrice(key string, price int64) error {
	if price < 0 {
		return domain.ErrNegativePrice
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	cat, ok := c.entries[key]
	if !ok {
		return domain.ErrUnknownCategory
	}
	cat.UnitPrice = price
	c.entries[key] = cat
	return nil
}

// FormatAmount renders a whole-unit amount as "7500.00 RUB" for responses
// and stats. Core components never format user-facing text themselves.
func FormatAmount(amount int64, currencyCode string) string {
	return decimal.NewFromInt(amount).StringFixed(2) + " " + currencyCode
}
