package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCart(t *testing.T) {
	t.Run("valid_payload", func(t *testing.T) {
		raw := []byte(`{"items":[{"product_id":1,"title":"Sourdough","price":6.5,"quantity":2,"buy_unit":"kg"}]}`)

		c := decodeCart(raw, "session-1")
		require.Len(t, c.Items, 1)
		assert.Equal(t, 1, c.Items[0].ProductID)
		assert.Equal(t, UnitKg, c.Items[0].BuyUnit)
		assert.Equal(t, 2, c.Items[0].Quantity)
	})

	t.Run("corrupt_payload_degrades_to_empty_cart", func(t *testing.T) {
		c := decodeCart([]byte(`{"items": [{`), "session-1")
		require.NotNil(t, c)
		assert.True(t, c.IsEmpty())
	})
}
