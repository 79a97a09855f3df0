package api

import (
	"context"

	"github.com/SigNoz/cart-graphql-api/internal/format"
	"github.com/SigNoz/cart-graphql-api/internal/models"
	"github.com/SigNoz/cart-graphql-api/internal/services"
)

// Adapter turns cart operations into response envelopes. Domain failures
// become success=false envelopes; any other error is returned to the
// transport unchanged.
type Adapter struct {
	carts         *services.CartService
	catalog       services.Catalog
	currency      *format.Currency
	defaultUserID string
}

// NewAdapter creates a new request adapter
func NewAdapter(carts *services.CartService, catalog services.Catalog, currency *format.Currency, defaultUserID string) *Adapter {
	return &Adapter{
		carts:         carts,
		catalog:       catalog,
		currency:      currency,
		defaultUserID: defaultUserID,
	}
}

// UserID returns userID, or the default user when it is empty
func (a *Adapter) UserID(userID string) string {
	if userID == "" {
		return a.defaultUserID
	}
	return userID
}

// Currency returns the formatter used for messages
func (a *Adapter) Currency() *format.Currency {
	return a.currency
}

// Queries

func (a *Adapter) Products(ctx context.Context) []models.Product {
	return a.catalog.List(ctx)
}

func (a *Adapter) Product(ctx context.Context, id string) (*models.Product, bool) {
	p, ok := a.catalog.Lookup(ctx, id)
	if !ok {
		return nil, false
	}
	return &p, true
}

func (a *Adapter) SearchProducts(ctx context.Context, query string) []models.Product {
	return a.catalog.Search(ctx, query)
}

func (a *Adapter) Cart(ctx context.Context, userID string) (*models.Cart, error) {
	return a.carts.GetCart(ctx, a.UserID(userID))
}

func (a *Adapter) CartItem(ctx context.Context, userID, itemID string) (*models.CartItem, bool, error) {
	return a.carts.GetItem(ctx, a.UserID(userID), itemID)
}

func (a *Adapter) CheckoutSummary(ctx context.Context, userID string) (*models.CheckoutSummary, error) {
	return a.carts.Summary(ctx, a.UserID(userID))
}

// Mutations

func (a *Adapter) AddToCart(ctx context.Context, userID string, req models.AddToCartRequest) (*models.CartResponse, error) {
	return cartEnvelope("Product added to cart")(a.carts.AddItem(ctx, a.UserID(userID), req.ProductID, req.Quantity))
}

func (a *Adapter) UpdateCartItem(ctx context.Context, userID, itemID string, quantity int) (*models.CartResponse, error) {
	return cartEnvelope("Quantity updated")(a.carts.UpdateQuantity(ctx, a.UserID(userID), itemID, quantity))
}

func (a *Adapter) RemoveFromCart(ctx context.Context, userID, itemID string) (*models.CartResponse, error) {
	return cartEnvelope("Item removed from cart")(a.carts.RemoveItem(ctx, a.UserID(userID), itemID))
}

func (a *Adapter) ClearCart(ctx context.Context, userID string) (*models.CartResponse, error) {
	return cartEnvelope("Cart cleared")(a.carts.Clear(ctx, a.UserID(userID)))
}

func (a *Adapter) SelectItems(ctx context.Context, userID string, req models.SelectItemsRequest) (*models.CartResponse, error) {
	msg := "Items selected for checkout"
	if !req.Selected {
		msg = "Items deselected"
	}
	return cartEnvelope(msg)(a.carts.SelectItems(ctx, a.UserID(userID), req.CartItemIDs, req.Selected))
}

func (a *Adapter) SelectAllItems(ctx context.Context, userID string, selected bool) (*models.CartResponse, error) {
	msg := "All items selected"
	if !selected {
		msg = "All items deselected"
	}
	return cartEnvelope(msg)(a.carts.SelectAll(ctx, a.UserID(userID), selected))
}

func (a *Adapter) IncrementQuantity(ctx context.Context, userID, itemID string) (*models.CartResponse, error) {
	return cartEnvelope("Quantity increased")(a.carts.Increment(ctx, a.UserID(userID), itemID))
}

func (a *Adapter) DecrementQuantity(ctx context.Context, userID, itemID string) (*models.CartResponse, error) {
	return cartEnvelope("Quantity decreased")(a.carts.Decrement(ctx, a.UserID(userID), itemID))
}

func (a *Adapter) Checkout(ctx context.Context, userID string) (*models.CheckoutResponse, error) {
	summary, err := a.carts.Checkout(ctx, a.UserID(userID))
	if err != nil {
		ce, ok := services.AsCartError(err)
		if !ok {
			return nil, err
		}
		return &models.CheckoutResponse{Success: false, Message: ce.Message, Code: string(ce.Kind)}, nil
	}
	return &models.CheckoutResponse{
		Success: true,
		Message: "Checkout successful! Total: " + a.currency.Price(summary.Total),
		Summary: summary,
	}, nil
}

// cartEnvelope wraps the result of a cart mutation
func cartEnvelope(successMsg string) func(*models.Cart, error) (*models.CartResponse, error) {
	return func(cart *models.Cart, err error) (*models.CartResponse, error) {
		if err != nil {
			ce, ok := services.AsCartError(err)
			if !ok {
				return nil, err
			}
			return &models.CartResponse{Success: false, Message: ce.Message, Code: string(ce.Kind)}, nil
		}
		return &models.CartResponse{Success: true, Message: successMsg, Cart: cart}, nil
	}
}
