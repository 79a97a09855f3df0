package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SigNoz/cart-graphql-api/internal/metrics"
	"github.com/SigNoz/cart-graphql-api/internal/models"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// CartService implements the cart operations on top of a CartStore and a
// Catalog. A failed operation never changes the stored cart.
type CartService struct {
	mu      sync.Mutex
	store   CartStore
	catalog Catalog
	pricing PricingPolicy
	metrics *metrics.AppMetrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewCartService creates a new cart service
func NewCartService(store CartStore, catalog Catalog, pricing PricingPolicy, metrics *metrics.AppMetrics, logger *zap.Logger) *CartService {
	return &CartService{
		store:   store,
		catalog: catalog,
		pricing: pricing,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// GetCart returns the cart for userID, creating an empty one if needed
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.store.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return cart, nil
}

// GetItem returns one line of the user's cart
func (s *CartService) GetItem(ctx context.Context, userID, itemID string) (*models.CartItem, bool, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	idx := cart.FindItem(itemID)
	if idx < 0 {
		return nil, false, nil
	}
	item := cart.Items[idx]
	return &item, true, nil
}

// AddItem adds quantity of a product, merging into the existing line for
// that product. The cumulative quantity may not exceed current stock.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	const op = "cart.add_item"
	return s.mutate(ctx, op, userID, func(cart *models.Cart) error {
		product, ok := s.catalog.Lookup(ctx, productID)
		if !ok {
			return newCartError(KindNotFound, op, "product %s does not exist", productID)
		}
		if quantity <= 0 {
			return newCartError(KindInvalidQuantity, op, "quantity must be greater than 0")
		}
		if quantity > product.Stock {
			return newCartError(KindInsufficientStock, op, "not enough stock, only %d left", product.Stock)
		}

		if idx := cart.FindProduct(productID); idx >= 0 {
			newQuantity := cart.Items[idx].Quantity + quantity
			if newQuantity > product.Stock {
				return newCartError(KindInsufficientStock, op, "cannot add, total quantity exceeds stock (%d)", product.Stock)
			}
			cart.Items[idx].Quantity = newQuantity
			return nil
		}

		cart.Items = append(cart.Items, models.CartItem{
			ID:        uuid.NewString(),
			ProductID: productID,
			Product:   product,
			Quantity:  quantity,
			Selected:  true,
			AddedAt:   s.now().UTC(),
		})
		return nil
	})
}

// UpdateQuantity sets a line's quantity exactly. A quantity of zero or less
// removes the line instead of failing.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*models.Cart, error) {
	const op = "cart.update_quantity"
	return s.mutate(ctx, op, userID, func(cart *models.Cart) error {
		return s.setQuantity(ctx, op, cart, itemID, quantity)
	})
}

// Increment raises a line's quantity by one, subject to stock
func (s *CartService) Increment(ctx context.Context, userID, itemID string) (*models.Cart, error) {
	const op = "cart.increment"
	return s.mutate(ctx, op, userID, func(cart *models.Cart) error {
		idx := cart.FindItem(itemID)
		if idx < 0 {
			return newCartError(KindNotFound, op, "item not found in cart")
		}
		return s.setQuantity(ctx, op, cart, itemID, cart.Items[idx].Quantity+1)
	})
}

// Decrement lowers a line's quantity by one. It never removes the line: a
// quantity of 1 is rejected.
func (s *CartService) Decrement(ctx context.Context, userID, itemID string) (*models.Cart, error) {
	const op = "cart.decrement"
	return s.mutate(ctx, op, userID, func(cart *models.Cart) error {
		idx := cart.FindItem(itemID)
		if idx < 0 {
			return newCartError(KindNotFound, op, "item not found in cart")
		}
		if cart.Items[idx].Quantity <= 1 {
			return newCartError(KindInvalidQuantity, op, "quantity cannot be less than 1")
		}
		return s.setQuantity(ctx, op, cart, itemID, cart.Items[idx].Quantity-1)
	})
}

// RemoveItem deletes a line
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*models.Cart, error) {
	const op = "cart.remove_item"
	return s.mutate(ctx, op, userID, func(cart *models.Cart) error {
		idx := cart.FindItem(itemID)
		if idx < 0 {
			return newCartError(KindNotFound, op, "item not found in cart")
		}
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		return nil
	})
}

// Clear removes every line
func (s *CartService) Clear(ctx context.Context, userID string) (*models.Cart, error) {
	return s.mutate(ctx, "cart.clear", userID, func(cart *models.Cart) error {
		cart.Items = []models.CartItem{}
		return nil
	})
}

// SelectItems sets the selected flag on the listed lines. Unknown IDs are ignored.
func (s *CartService) SelectItems(ctx context.Context, userID string, itemIDs []string, selected bool) (*models.Cart, error) {
	wanted := make(map[string]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = struct{}{}
	}
	return s.mutate(ctx, "cart.select_items", userID, func(cart *models.Cart) error {
		for i := range cart.Items {
			if _, ok := wanted[cart.Items[i].ID]; ok {
				cart.Items[i].Selected = selected
			}
		}
		return nil
	})
}

// SelectAll sets the selected flag on every line
func (s *CartService) SelectAll(ctx context.Context, userID string, selected bool) (*models.Cart, error) {
	return s.mutate(ctx, "cart.select_all", userID, func(cart *models.Cart) error {
		for i := range cart.Items {
			cart.Items[i].Selected = selected
		}
		return nil
	})
}

// Summary computes checkout totals over the selected lines
func (s *CartService) Summary(ctx context.Context, userID string) (*models.CheckoutSummary, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.pricing.Summarize(cart.Items), nil
}

// Checkout validates that something is selected and returns the summary.
// It is a simulated checkout: stock, cart contents and selection are left
// untouched and no order is created.
func (s *CartService) Checkout(ctx context.Context, userID string) (*models.CheckoutSummary, error) {
	const op = "cart.checkout"
	summary, err := s.Summary(ctx, userID)
	if err != nil {
		s.metrics.RecordCartOperation(ctx, op, metrics.OutcomeError)
		return nil, err
	}
	if len(summary.SelectedItems) == 0 {
		s.metrics.RecordCartOperation(ctx, op, metrics.OutcomeRejected)
		return nil, newCartError(KindEmptySelection, op, "select at least one item to check out")
	}

	s.metrics.RecordCartOperation(ctx, op, metrics.OutcomeSuccess)
	s.metrics.CheckoutTotal.Add(ctx, summary.Total, metric.WithAttributes(s.metrics.WithServiceName([]attribute.KeyValue{})...))
	s.logger.Info("checkout",
		zap.String("user_id", userID),
		zap.Int("items", summary.TotalItems),
		zap.Int64("total", summary.Total),
	)
	return summary, nil
}

// setQuantity is shared by UpdateQuantity, Increment and Decrement. Stock is
// read from the catalog, not from the line's snapshot.
func (s *CartService) setQuantity(ctx context.Context, op string, cart *models.Cart, itemID string, quantity int) error {
	idx := cart.FindItem(itemID)
	if idx < 0 {
		return newCartError(KindNotFound, op, "item not found in cart")
	}

	if quantity <= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		return nil
	}

	stock := cart.Items[idx].Product.Stock
	if product, ok := s.catalog.Lookup(ctx, cart.Items[idx].ProductID); ok {
		stock = product.Stock
	}
	if quantity > stock {
		return newCartError(KindInsufficientStock, op, "not enough stock, only %d left", stock)
	}
	cart.Items[idx].Quantity = quantity
	return nil
}

// mutate loads the cart, applies fn to a private copy and saves it only when
// fn succeeds. UpdatedAt is bumped on every successful mutation.
func (s *CartService) mutate(ctx context.Context, op, userID string, fn func(cart *models.Cart) error) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.store.GetOrCreate(ctx, userID)
	if err != nil {
		s.metrics.RecordCartOperation(ctx, op, metrics.OutcomeError)
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if err := fn(cart); err != nil {
		if _, ok := AsCartError(err); ok {
			s.metrics.RecordCartOperation(ctx, op, metrics.OutcomeRejected)
			s.logger.Info("cart operation rejected",
				zap.String("op", op),
				zap.String("user_id", userID),
				zap.Error(err),
			)
		} else {
			s.metrics.RecordCartOperation(ctx, op, metrics.OutcomeError)
		}
		return nil, err
	}

	cart.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, cart); err != nil {
		s.metrics.RecordCartOperation(ctx, op, metrics.OutcomeError)
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.metrics.RecordCartOperation(ctx, op, metrics.OutcomeSuccess)
	s.updateCartItemsCount(ctx, cart)
	return cart, nil
}

// updateCartItemsCount updates the cart gauges after a mutation
func (s *CartService) updateCartItemsCount(ctx context.Context, cart *models.Cart) {
	cartAttrs := s.metrics.WithServiceName([]attribute.KeyValue{
		attribute.String("user_id", cart.UserID),
	})
	s.metrics.CartItemsCount.Record(ctx, int64(len(cart.Items)), metric.WithAttributes(cartAttrs...))

	_, nonEmpty, err := s.store.Count(ctx)
	if err != nil {
		s.logger.Warn("failed to count carts", zap.Error(err))
		return
	}
	s.metrics.ActiveCartsCount.Record(ctx, int64(nonEmpty), metric.WithAttributes(s.metrics.WithServiceName([]attribute.KeyValue{})...))
}
