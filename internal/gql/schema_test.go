package gql

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SigNoz/cart-graphql-api/internal/api"
	"github.com/SigNoz/cart-graphql-api/internal/format"
	"github.com/SigNoz/cart-graphql-api/internal/metrics"
	"github.com/SigNoz/cart-graphql-api/internal/services"
	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSchema(t *testing.T) graphql.Schema {
	t.Helper()
	m := metrics.NewNoopMetrics("cart-test")
	catalog := services.NewProductService(services.SeedProducts(), m)
	carts := services.NewCartService(services.NewMemoryCartStore(), catalog, services.DefaultPricingPolicy(), m, zap.NewNop())
	adapter := api.NewAdapter(carts, catalog, format.NewCurrency("vi", "đ"), "user-001")

	schema, err := NewSchema(adapter)
	require.NoError(t, err)
	return schema
}

func run(t *testing.T, schema graphql.Schema, query string, vars map[string]any) map[string]any {
	t.Helper()
	result := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        context.Background(),
	})
	require.Empty(t, result.Errors, "graphql errors: %v", result.Errors)

	// round-trip through JSON so nested values are plain maps
	raw, err := json.Marshal(result.Data)
	require.NoError(t, err)
	var data map[string]any
	require.NoError(t, json.Unmarshal(raw, &data))
	return data
}

func TestQueryProducts(t *testing.T) {
	schema := newTestSchema(t)

	data := run(t, schema, `{ products { id name price stock category } }`, nil)
	products := data["products"].([]any)
	require.Len(t, products, 8)

	first := products[0].(map[string]any)
	assert.Equal(t, "prod-001", first["id"])
	assert.EqualValues(t, 34990000, first["price"])
}

func TestQueryProduct(t *testing.T) {
	schema := newTestSchema(t)

	data := run(t, schema, `{ product(id: "prod-003") { name price } missing: product(id: "nope") { name } }`, nil)
	assert.Equal(t, "AirPods Pro 2", data["product"].(map[string]any)["name"])
	assert.Nil(t, data["missing"])
}

func TestQuerySearchProducts(t *testing.T) {
	schema := newTestSchema(t)

	data := run(t, schema, `{ searchProducts(query: "zzz-no-match") { id } }`, nil)
	assert.Empty(t, data["searchProducts"])
}

func TestCartMutationsAndSummary(t *testing.T) {
	schema := newTestSchema(t)

	data := run(t, schema, `mutation($input: AddToCartInput!) {
		addToCart(input: $input) {
			success message code
			cart { userId totalItems totalPrice selectedCount createdAt items { id quantity subtotal selected addedAt product { name } } }
		}
	}`, map[string]any{"input": map[string]any{"productId": "prod-003", "quantity": 2}})

	resp := data["addToCart"].(map[string]any)
	require.Equal(t, true, resp["success"])
	assert.Equal(t, "Product added to cart", resp["message"])
	assert.Nil(t, resp["code"])

	cart := resp["cart"].(map[string]any)
	assert.Equal(t, "user-001", cart["userId"])
	assert.EqualValues(t, 2, cart["totalItems"])
	assert.EqualValues(t, 13980000, cart["totalPrice"])
	assert.EqualValues(t, 1, cart["selectedCount"])
	assert.NotEmpty(t, cart["createdAt"])

	item := cart["items"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 13980000, item["subtotal"])
	assert.NotEmpty(t, item["addedAt"])
	itemID := item["id"].(string)

	data = run(t, schema, `query {
		checkoutSummary { totalItems subtotal tax shipping total formattedShipping formattedTotal selectedItems { id } }
	}`, nil)
	summary := data["checkoutSummary"].(map[string]any)
	assert.EqualValues(t, 2, summary["totalItems"])
	assert.EqualValues(t, 1398000, summary["tax"])
	assert.EqualValues(t, 0, summary["shipping"])
	assert.EqualValues(t, 15378000, summary["total"])
	assert.Equal(t, "Free", summary["formattedShipping"])
	assert.Equal(t, "15.378.000đ", summary["formattedTotal"])

	data = run(t, schema, `mutation($id: String!) {
		updateCartItem(input: {cartItemId: $id, quantity: 5}) { success cart { items { quantity } } }
		decrementQuantity(cartItemId: $id) { success cart { items { quantity } } }
	}`, map[string]any{"id": itemID})
	dec := data["decrementQuantity"].(map[string]any)
	require.Equal(t, true, dec["success"])
	assert.EqualValues(t, 4, dec["cart"].(map[string]any)["items"].([]any)[0].(map[string]any)["quantity"])

	data = run(t, schema, `query($id: String!) { cartItem(cartItemId: $id) { quantity } }`, map[string]any{"id": itemID})
	assert.EqualValues(t, 4, data["cartItem"].(map[string]any)["quantity"])

	data = run(t, schema, `mutation { checkout { success message summary { total } } }`, nil)
	checkout := data["checkout"].(map[string]any)
	require.Equal(t, true, checkout["success"])
	assert.Contains(t, checkout["message"], "Checkout successful! Total: ")
}

func TestMutationDomainFailure(t *testing.T) {
	schema := newTestSchema(t)

	data := run(t, schema, `mutation {
		addToCart(input: {productId: "nonexistent", quantity: 1}) { success message code cart { id } }
		checkout { success code summary { total } }
	}`, nil)

	add := data["addToCart"].(map[string]any)
	assert.Equal(t, false, add["success"])
	assert.Equal(t, "NOT_FOUND", add["code"])
	assert.NotEmpty(t, add["message"])
	assert.Nil(t, add["cart"])

	checkout := data["checkout"].(map[string]any)
	assert.Equal(t, false, checkout["success"])
	assert.Equal(t, "EMPTY_SELECTION", checkout["code"])
	assert.Nil(t, checkout["summary"])
}

func TestSelectionMutations(t *testing.T) {
	schema := newTestSchema(t)

	data := run(t, schema, `mutation {
		a: addToCart(input: {productId: "prod-001", quantity: 1}, userId: "u1") { cart { items { id } } }
	}`, nil)
	itemID := data["a"].(map[string]any)["cart"].(map[string]any)["items"].([]any)[0].(map[string]any)["id"].(string)

	data = run(t, schema, `mutation($ids: [String!]!) {
		selectItems(input: {cartItemIds: $ids, selected: false}, userId: "u1") { message cart { selectedCount } }
	}`, map[string]any{"ids": []any{itemID, "unknown"}})
	sel := data["selectItems"].(map[string]any)
	assert.Equal(t, "Items deselected", sel["message"])
	assert.EqualValues(t, 0, sel["cart"].(map[string]any)["selectedCount"])

	data = run(t, schema, `mutation {
		selectAllItems(selected: true, userId: "u1") { cart { selectedCount } }
		removeFromCart(cartItemId: "unknown", userId: "u1") { success code }
		clearCart(userId: "u1") { success cart { totalItems } }
	}`, nil)
	assert.EqualValues(t, 1, data["selectAllItems"].(map[string]any)["cart"].(map[string]any)["selectedCount"])
	assert.Equal(t, "NOT_FOUND", data["removeFromCart"].(map[string]any)["code"])
	assert.EqualValues(t, 0, data["clearCart"].(map[string]any)["cart"].(map[string]any)["totalItems"])

	data = run(t, schema, `{ cart(userId: "u1") { totalItems } other: cart { totalItems } }`, nil)
	assert.EqualValues(t, 0, data["cart"].(map[string]any)["totalItems"])
	assert.EqualValues(t, 0, data["other"].(map[string]any)["totalItems"])
}

func TestHandlerServesPost(t *testing.T) {
	h := NewHandler(newTestSchema(t), false)

	body, err := json.Marshal(map[string]any{"query": `{ products { id } }`})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"prod-008"`)
}
