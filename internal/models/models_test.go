package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_JSONIncludesDerivedTotals(t *testing.T) {
	cart := &Cart{
		ID:     "cart-1",
		UserID: "user-001",
		Items: []CartItem{
			{ID: "a", ProductID: "p1", Product: Product{ID: "p1", Price: 1000}, Quantity: 2, Selected: true},
			{ID: "b", ProductID: "p2", Product: Product{ID: "p2", Price: 500}, Quantity: 1},
		},
	}

	raw, err := json.Marshal(CartResponse{Success: true, Message: "ok", Cart: cart})
	require.NoError(t, err)

	var got struct {
		Code *string `json:"code"`
		Cart struct {
			UserID        string `json:"userId"`
			TotalItems    int    `json:"totalItems"`
			TotalPrice    int64  `json:"totalPrice"`
			SelectedCount int    `json:"selectedCount"`
			Items         []struct {
				ProductID string `json:"productId"`
				Subtotal  int64  `json:"subtotal"`
			} `json:"items"`
		} `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Nil(t, got.Code)
	assert.Equal(t, "user-001", got.Cart.UserID)
	assert.Equal(t, 3, got.Cart.TotalItems)
	assert.Equal(t, int64(2500), got.Cart.TotalPrice)
	assert.Equal(t, 1, got.Cart.SelectedCount)
	require.Len(t, got.Cart.Items, 2)
	assert.Equal(t, "p1", got.Cart.Items[0].ProductID)
	assert.Equal(t, int64(2000), got.Cart.Items[0].Subtotal)
}

func TestCart_CloneIsIndependent(t *testing.T) {
	cart := &Cart{Items: []CartItem{{ID: "a", Quantity: 1}}}

	clone := cart.Clone()
	clone.Items[0].Quantity = 5

	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, 0, cart.FindItem("a"))
	assert.Equal(t, -1, cart.FindItem("missing"))
}
