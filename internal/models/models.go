package models

import (
	"encoding/json"
	"time"
)

// Product represents a product in the catalog
type Product struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Price       int64  `json:"price" db:"price"`
	Description string `json:"description,omitempty" db:"description"`
	Image       string `json:"image,omitempty" db:"image"`
	Stock       int    `json:"stock" db:"stock"`
	Category    string `json:"category,omitempty" db:"category"`
}

// CartItem represents a line in a cart. Product is a snapshot taken when the
// line was created.
type CartItem struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Product   Product   `json:"product"`
	Quantity  int       `json:"quantity"`
	Selected  bool      `json:"selected"`
	AddedAt   time.Time `json:"addedAt"`
}

// Subtotal returns unit price times quantity
func (i CartItem) Subtotal() int64 {
	return i.Product.Price * int64(i.Quantity)
}

// MarshalJSON adds the derived subtotal
func (i CartItem) MarshalJSON() ([]byte, error) {
	type item CartItem
	return json.Marshal(struct {
		item
		Subtotal int64 `json:"subtotal"`
	}{item(i), i.Subtotal()})
}

// Cart represents a shopping cart
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TotalItems returns the sum of quantities over all lines
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the sum of line subtotals, selected or not
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// SelectedCount returns the number of selected lines
func (c *Cart) SelectedCount() int {
	count := 0
	for _, item := range c.Items {
		if item.Selected {
			count++
		}
	}
	return count
}

// FindItem returns the index of the line with the given ID, or -1
func (c *Cart) FindItem(itemID string) int {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// FindProduct returns the index of the line for the given product, or -1
func (c *Cart) FindProduct(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the cart
func (c *Cart) Clone() *Cart {
	clone := *c
	clone.Items = make([]CartItem, len(c.Items))
	copy(clone.Items, c.Items)
	return &clone
}

// MarshalJSON adds the derived totals
func (c Cart) MarshalJSON() ([]byte, error) {
	type cart Cart
	return json.Marshal(struct {
		cart
		TotalItems    int   `json:"totalItems"`
		TotalPrice    int64 `json:"totalPrice"`
		SelectedCount int   `json:"selectedCount"`
	}{cart(c), c.TotalItems(), c.TotalPrice(), c.SelectedCount()})
}

// CheckoutSummary holds totals computed over the selected lines of a cart
type CheckoutSummary struct {
	SelectedItems []CartItem `json:"selectedItems"`
	TotalItems    int        `json:"totalItems"`
	Subtotal      int64      `json:"subtotal"`
	Tax           int64      `json:"tax"`
	Shipping      int64      `json:"shipping"`
	Total         int64      `json:"total"`
}

// CartResponse is the envelope returned by cart mutations
type CartResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Cart    *Cart  `json:"cart"`
}

// CheckoutResponse is the envelope returned by checkout
type CheckoutResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Code    string           `json:"code,omitempty"`
	Summary *CheckoutSummary `json:"summary"`
}

// AddToCartRequest represents a request to add item to cart
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest represents a request to set a line quantity
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// SelectItemsRequest represents a request to (de)select lines
type SelectItemsRequest struct {
	CartItemIDs []string `json:"cartItemIds"`
	Selected    bool     `json:"selected"`
}

// SelectAllRequest represents a request to (de)select every line
type SelectAllRequest struct {
	Selected bool `json:"selected"`
}
