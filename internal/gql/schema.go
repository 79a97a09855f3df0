// Package gql exposes the cart API over GraphQL.
package gql

import (
	"fmt"

	"github.com/SigNoz/cart-graphql-api/internal/api"
	"github.com/SigNoz/cart-graphql-api/internal/models"
	"github.com/graphql-go/graphql"
)

// NewSchema builds the GraphQL schema on top of the request adapter
func NewSchema(a *api.Adapter) (graphql.Schema, error) {
	t := newTypes(a.Currency())
	r := &resolver{adapter: a}

	userIDArg := &graphql.ArgumentConfig{Type: graphql.String}
	cartItemIDArg := &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.product))),
				Description: "All products in the catalog",
				Resolve:     r.products,
			},
			"product": &graphql.Field{
				Type:        t.product,
				Description: "A single product by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.product,
			},
			"searchProducts": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.product))),
				Description: "Products whose name, description or category contain the query",
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.searchProducts,
			},
			"cart": &graphql.Field{
				Type:        graphql.NewNonNull(t.cart),
				Description: "The user's cart, created on first access",
				Args:        graphql.FieldConfigArgument{"userId": userIDArg},
				Resolve:     r.cart,
			},
			"cartItem": &graphql.Field{
				Type:        t.cartItem,
				Description: "A single line of the user's cart",
				Args: graphql.FieldConfigArgument{
					"cartItemId": cartItemIDArg,
					"userId":     userIDArg,
				},
				Resolve: r.cartItem,
			},
			"checkoutSummary": &graphql.Field{
				Type:        graphql.NewNonNull(t.checkoutSummary),
				Description: "Totals over the selected lines",
				Args:        graphql.FieldConfigArgument{"userId": userIDArg},
				Resolve:     r.checkoutSummary,
			},
		},
	})

	cartResponse := graphql.NewNonNull(t.cartResponse)
	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addToCart": &graphql.Field{
				Type: cartResponse,
				Args: graphql.FieldConfigArgument{
					"input":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.addToCartInput)},
					"userId": userIDArg,
				},
				Resolve: r.addToCart,
			},
			"updateCartItem": &graphql.Field{
				Type: cartResponse,
				Args: graphql.FieldConfigArgument{
					"input":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.updateCartItemInput)},
					"userId": userIDArg,
				},
				Resolve: r.updateCartItem,
			},
			"removeFromCart": &graphql.Field{
				Type: cartResponse,
				Args: graphql.FieldConfigArgument{
					"cartItemId": cartItemIDArg,
					"userId":     userIDArg,
				},
				Resolve: r.removeFromCart,
			},
			"clearCart": &graphql.Field{
				Type:    cartResponse,
				Args:    graphql.FieldConfigArgument{"userId": userIDArg},
				Resolve: r.clearCart,
			},
			"selectItems": &graphql.Field{
				Type: cartResponse,
				Args: graphql.FieldConfigArgument{
					"input":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.selectItemsInput)},
					"userId": userIDArg,
				},
				Resolve: r.selectItems,
			},
			"selectAllItems": &graphql.Field{
				Type: cartResponse,
				Args: graphql.FieldConfigArgument{
					"selected": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Boolean)},
					"userId":   userIDArg,
				},
				Resolve: r.selectAllItems,
			},
			"incrementQuantity": &graphql.Field{
				Type: cartResponse,
				Args: graphql.FieldConfigArgument{
					"cartItemId": cartItemIDArg,
					"userId":     userIDArg,
				},
				Resolve: r.incrementQuantity,
			},
			"decrementQuantity": &graphql.Field{
				Type: cartResponse,
				Args: graphql.FieldConfigArgument{
					"cartItemId": cartItemIDArg,
					"userId":     userIDArg,
				},
				Resolve: r.decrementQuantity,
			},
			"checkout": &graphql.Field{
				Type:    graphql.NewNonNull(t.checkoutResponse),
				Args:    graphql.FieldConfigArgument{"userId": userIDArg},
				Resolve: r.checkout,
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to build graphql schema: %w", err)
	}
	return schema, nil
}

type resolver struct {
	adapter *api.Adapter
}

func stringArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

func inputArg(p graphql.ResolveParams) map[string]any {
	m, _ := p.Args["input"].(map[string]any)
	return m
}

func (r *resolver) products(p graphql.ResolveParams) (any, error) {
	return r.adapter.Products(p.Context), nil
}

func (r *resolver) product(p graphql.ResolveParams) (any, error) {
	product, ok := r.adapter.Product(p.Context, stringArg(p, "id"))
	if !ok {
		return nil, nil
	}
	return product, nil
}

func (r *resolver) searchProducts(p graphql.ResolveParams) (any, error) {
	return r.adapter.SearchProducts(p.Context, stringArg(p, "query")), nil
}

func (r *resolver) cart(p graphql.ResolveParams) (any, error) {
	return r.adapter.Cart(p.Context, stringArg(p, "userId"))
}

func (r *resolver) cartItem(p graphql.ResolveParams) (any, error) {
	item, ok, err := r.adapter.CartItem(p.Context, stringArg(p, "userId"), stringArg(p, "cartItemId"))
	if err != nil || !ok {
		return nil, err
	}
	return item, nil
}

func (r *resolver) checkoutSummary(p graphql.ResolveParams) (any, error) {
	return r.adapter.CheckoutSummary(p.Context, stringArg(p, "userId"))
}

func (r *resolver) addToCart(p graphql.ResolveParams) (any, error) {
	in := inputArg(p)
	productID, _ := in["productId"].(string)
	quantity, _ := in["quantity"].(int)
	return r.adapter.AddToCart(p.Context, stringArg(p, "userId"), models.AddToCartRequest{
		ProductID: productID,
		Quantity:  quantity,
	})
}

func (r *resolver) updateCartItem(p graphql.ResolveParams) (any, error) {
	in := inputArg(p)
	itemID, _ := in["cartItemId"].(string)
	quantity, _ := in["quantity"].(int)
	return r.adapter.UpdateCartItem(p.Context, stringArg(p, "userId"), itemID, quantity)
}

func (r *resolver) removeFromCart(p graphql.ResolveParams) (any, error) {
	return r.adapter.RemoveFromCart(p.Context, stringArg(p, "userId"), stringArg(p, "cartItemId"))
}

func (r *resolver) clearCart(p graphql.ResolveParams) (any, error) {
	return r.adapter.ClearCart(p.Context, stringArg(p, "userId"))
}

func (r *resolver) selectItems(p graphql.ResolveParams) (any, error) {
	in := inputArg(p)
	raw, _ := in["cartItemIds"].([]any)
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	selected, _ := in["selected"].(bool)
	return r.adapter.SelectItems(p.Context, stringArg(p, "userId"), models.SelectItemsRequest{
		CartItemIDs: ids,
		Selected:    selected,
	})
}

func (r *resolver) selectAllItems(p graphql.ResolveParams) (any, error) {
	selected, _ := p.Args["selected"].(bool)
	return r.adapter.SelectAllItems(p.Context, stringArg(p, "userId"), selected)
}

func (r *resolver) incrementQuantity(p graphql.ResolveParams) (any, error) {
	return r.adapter.IncrementQuantity(p.Context, stringArg(p, "userId"), stringArg(p, "cartItemId"))
}

func (r *resolver) decrementQuantity(p graphql.ResolveParams) (any, error) {
	return r.adapter.DecrementQuantity(p.Context, stringArg(p, "userId"), stringArg(p, "cartItemId"))
}

func (r *resolver) checkout(p graphql.ResolveParams) (any, error) {
	return r.adapter.Checkout(p.Context, stringArg(p, "userId"))
}
