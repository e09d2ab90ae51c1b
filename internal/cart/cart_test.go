package cart

import (
	"testing"

	"maison/internal/model"
	"maison/internal/storage"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollection(t *testing.T) *storage.Collection[Line] {
	t.Helper()

	store, err := storage.NewStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return storage.NewCollection[Line](store, "cart", zerolog.Nop())
}

func product(id int64, price string) model.Product {
	return model.Product{
		ID:       id,
		Name:     "Product",
		Category: "Decor",
		Price:    decimal.RequireFromString(price),
	}
}

func TestCart_AddMergesLinesByProduct(t *testing.T) {
	c := New(newTestCollection(t), zerolog.Nop())
	p := product(1, "10.00")

	c.Add(p, 1)
	c.Add(p, 2)
	c.Add(p, 1)

	lines := c.Lines()
	require.Len(t, lines, 1, "repeated adds must keep a single line per product")
	assert.Equal(t, 4, lines[0].Quantity)
}

func TestCart_AddPreservesEncounterOrder(t *testing.T) {
	c := New(newTestCollection(t), zerolog.Nop())

	c.Add(product(3, "5.00"), 1)
	c.Add(product(1, "5.00"), 1)
	c.Add(product(2, "5.00"), 1)
	c.Add(product(1, "5.00"), 1)

	lines := c.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, int64(3), lines[0].Product.ID)
	assert.Equal(t, int64(1), lines[1].Product.ID)
	assert.Equal(t, int64(2), lines[2].Product.ID)
}

func TestCart_AddDefaultsQuantityToOne(t *testing.T) {
	c := New(newTestCollection(t), zerolog.Nop())

	c.Add(product(1, "10.00"), 0)
	c.Add(product(2, "10.00"), -5)

	for _, line := range c.Lines() {
		assert.Equal(t, 1, line.Quantity)
	}
}

func TestCart_SetQuantityIsAbsolute(t *testing.T) {
	c := New(newTestCollection(t), zerolog.Nop())
	c.Add(product(1, "10.00"), 5)

	c.SetQuantity(1, 2)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestCart_SetQuantityZeroOrNegativeRemovesLine(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
	}{
		{name: "zero", quantity: 0},
		{name: "negative", quantity: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(newTestCollection(t), zerolog.Nop())
			c.Add(product(1, "10.00"), 3)

			c.SetQuantity(1, tt.quantity)

			assert.Empty(t, c.Lines())
			assert.Equal(t, 0, c.ItemCount())
		})
	}
}

func TestCart_RemoveMissingLineIsNoOp(t *testing.T) {
	c := New(newTestCollection(t), zerolog.Nop())
	c.Add(product(1, "10.00"), 1)

	c.Remove(99)

	assert.Len(t, c.Lines(), 1)
}

func TestCart_SubtotalAndItemCount(t *testing.T) {
	c := New(newTestCollection(t), zerolog.Nop())
	p := product(1, "49.99")

	c.Add(p, 2)

	assert.True(t, decimal.RequireFromString("99.98").Equal(c.Subtotal()),
		"expected 99.98, got %s", c.Subtotal())
	assert.Equal(t, 2, c.ItemCount())

	c.Remove(p.ID)

	assert.True(t, c.Subtotal().IsZero())
	assert.Equal(t, 0, c.ItemCount())
}

func TestCart_Clear(t *testing.T) {
	c := New(newTestCollection(t), zerolog.Nop())
	c.Add(product(1, "10.00"), 1)
	c.Add(product(2, "20.00"), 2)

	c.Clear()

	assert.Empty(t, c.Lines())
	assert.True(t, c.Subtotal().IsZero())
}

func TestCart_StateSurvivesReload(t *testing.T) {
	col := newTestCollection(t)

	first := New(col, zerolog.Nop())
	first.Add(product(1<<60+3, "49.99"), 2)
	first.Add(product(2, "15.50"), 1)

	second := New(col, zerolog.Nop())

	lines := second.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, int64(1<<60+3), lines[0].Product.ID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, decimal.RequireFromString("115.48").Equal(second.Subtotal()))
}

func TestCart_LinesReturnsCopy(t *testing.T) {
	c := New(newTestCollection(t), zerolog.Nop())
	c.Add(product(1, "10.00"), 1)

	lines := c.Lines()
	lines[0].Quantity = 100

	assert.Equal(t, 1, c.Lines()[0].Quantity)
}
