package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndiaye-labs/gatepass/internal/domain"
)

func TestDefaultCatalog(t *testing.T) {
	c := NewDefault()

	price, err := c.PriceOf("vip")
	require.NoError(t, err)
	assert.Equal(t, int64(15000), price)

	price, err = c.PriceOf("standard")
	require.NoError(t, err)
	assert.Equal(t, int64(7500), price)

	price, err = c.PriceOf("earlybird")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), price)

	assert.True(t, c.Exists("vip"))
	assert.False(t, c.Exists("backstage"))
	assert.Equal(t, "RUB", c.Currency())
}

func TestPriceOfUnknownCategory(t *testing.T) {
	c := NewDefault()

	_, err := c.PriceOf("backstage")
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestAllCategoriesKeepsDeclaredOrder(t *testing.T) {
	c := NewDefault()

	cats := c.AllCategories()
	require.Len(t, cats, 3)
	assert.Equal(t, "vip", cats[0].Key)
	assert.Equal(t, "standard", cats[1].Key)
	assert.Equal(t, "earlybird", cats[2].Key)
}

func TestNewRejectsNegativePrice(t *testing.T) {
	_, err := New([]domain.TicketCategory{
		{Key: "vip", DisplayName: "VIP", UnitPrice: -1, CurrencyCode: "RUB"},
	})
	assert.ErrorIs(t, err, domain.ErrNegativePrice)
}

func TestNewRejectsDuplicateKey(t *testing.T) {
	_, err := New([]domain.TicketCategory{
		{Key: "vip", UnitPrice: 1, CurrencyCode: "RUB"},
		{Key: "vip", UnitPrice: 2, CurrencyCode: "RUB"},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateCategoryKey)
}

func TestSetPrice(t *testing.T) {
	c := NewDefault()

	require.NoError(t, c.SetPrice("standard", 9000))
	price, err := c.PriceOf("standard")
	require.NoError(t, err)
	assert.Equal(t, int64(9000), price)

	assert.ErrorIs(t, c.SetPrice("backstage", 100), domain.ErrUnknownCategory)
	assert.ErrorIs(t, c.SetPrice("standard", -5), domain.ErrNegativePrice)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "7500.00 RUB", FormatAmount(7500, "RUB"))
	assert.Equal(t, "0.00 RUB", FormatAmount(0, "RUB"))
}
