package gql

import (
	"time"

	"github.com/SigNoz/cart-graphql-api/internal/format"
	"github.com/SigNoz/cart-graphql-api/internal/models"
	"github.com/graphql-go/graphql"
)

// Money is exposed as Float because GraphQL Int is 32-bit and prices are
// stored in the smallest currency unit.

func money(f func(src any) (int64, bool)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		v, ok := f(p.Source)
		if !ok {
			return nil, nil
		}
		return float64(v), nil
	}
}

func timestamp(f func(src any) (time.Time, bool)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		v, ok := f(p.Source)
		if !ok {
			return nil, nil
		}
		return v.UTC().Format(time.RFC3339Nano), nil
	}
}

func asProduct(src any) (models.Product, bool) {
	switch v := src.(type) {
	case models.Product:
		return v, true
	case *models.Product:
		if v != nil {
			return *v, true
		}
	}
	return models.Product{}, false
}

func asCartItem(src any) (models.CartItem, bool) {
	switch v := src.(type) {
	case models.CartItem:
		return v, true
	case *models.CartItem:
		if v != nil {
			return *v, true
		}
	}
	return models.CartItem{}, false
}

func asCart(src any) (*models.Cart, bool) {
	switch v := src.(type) {
	case *models.Cart:
		return v, v != nil
	case models.Cart:
		return &v, true
	}
	return nil, false
}

func asSummary(src any) (*models.CheckoutSummary, bool) {
	v, ok := src.(*models.CheckoutSummary)
	return v, ok && v != nil
}

// optionalString resolves "" to null
func optionalString(f func(src any) string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		if s := f(p.Source); s != "" {
			return s, nil
		}
		return nil, nil
	}
}

type types struct {
	product          *graphql.Object
	cartItem         *graphql.Object
	cart             *graphql.Object
	checkoutSummary  *graphql.Object
	cartResponse     *graphql.Object
	checkoutResponse *graphql.Object

	addToCartInput      *graphql.InputObject
	updateCartItemInput *graphql.InputObject
	selectItemsInput    *graphql.InputObject
}

func newTypes(currency *format.Currency) *types {
	t := &types{}

	t.product = graphql.NewObject(graphql.ObjectConfig{
		Name:        "Product",
		Description: "A product in the store catalog",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"price": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Resolve: money(func(src any) (int64, bool) {
					p, ok := asProduct(src)
					return p.Price, ok
				}),
			},
			"description": &graphql.Field{
				Type: graphql.String,
				Resolve: optionalString(func(src any) string {
					p, _ := asProduct(src)
					return p.Description
				}),
			},
			"image": &graphql.Field{
				Type: graphql.String,
				Resolve: optionalString(func(src any) string {
					p, _ := asProduct(src)
					return p.Image
				}),
			},
			"stock": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"category": &graphql.Field{
				Type: graphql.String,
				Resolve: optionalString(func(src any) string {
					p, _ := asProduct(src)
					return p.Category
				}),
			},
		},
	})

	t.cartItem = graphql.NewObject(graphql.ObjectConfig{
		Name:        "CartItem",
		Description: "A line in a cart",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"productId": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"product":   &graphql.Field{Type: graphql.NewNonNull(t.product)},
			"quantity":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"selected":  &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"addedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: timestamp(func(src any) (time.Time, bool) {
					i, ok := asCartItem(src)
					return i.AddedAt, ok
				}),
			},
			"subtotal": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Resolve: money(func(src any) (int64, bool) {
					i, ok := asCartItem(src)
					return i.Subtotal(), ok
				}),
			},
		},
	})

	t.cart = graphql.NewObject(graphql.ObjectConfig{
		Name:        "Cart",
		Description: "A user's shopping cart",
		Fields: graphql.Fields{
			"id":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"userId": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"items":  &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.cartItem)))},
			"totalItems": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					c, ok := asCart(p.Source)
					if !ok {
						return nil, nil
					}
					return c.TotalItems(), nil
				},
			},
			"totalPrice": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Resolve: money(func(src any) (int64, bool) {
					c, ok := asCart(src)
					if !ok {
						return 0, false
					}
					return c.TotalPrice(), true
				}),
			},
			"selectedCount": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					c, ok := asCart(p.Source)
					if !ok {
						return nil, nil
					}
					return c.SelectedCount(), nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: timestamp(func(src any) (time.Time, bool) {
					c, ok := asCart(src)
					if !ok {
						return time.Time{}, false
					}
					return c.CreatedAt, true
				}),
			},
			"updatedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: timestamp(func(src any) (time.Time, bool) {
					c, ok := asCart(src)
					if !ok {
						return time.Time{}, false
					}
					return c.UpdatedAt, true
				}),
			},
		},
	})

	summaryMoney := func(pick func(*models.CheckoutSummary) int64) graphql.FieldResolveFn {
		return money(func(src any) (int64, bool) {
			s, ok := asSummary(src)
			if !ok {
				return 0, false
			}
			return pick(s), true
		})
	}
	summaryText := func(render func(*models.CheckoutSummary) string) graphql.FieldResolveFn {
		return func(p graphql.ResolveParams) (any, error) {
			s, ok := asSummary(p.Source)
			if !ok {
				return nil, nil
			}
			return render(s), nil
		}
	}

	t.checkoutSummary = graphql.NewObject(graphql.ObjectConfig{
		Name:        "CheckoutSummary",
		Description: "Totals over the selected lines of a cart",
		Fields: graphql.Fields{
			"selectedItems": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.cartItem)))},
			"totalItems":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"subtotal": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Float),
				Resolve: summaryMoney(func(s *models.CheckoutSummary) int64 { return s.Subtotal }),
			},
			"tax": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Float),
				Resolve: summaryMoney(func(s *models.CheckoutSummary) int64 { return s.Tax }),
			},
			"shipping": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Float),
				Resolve: summaryMoney(func(s *models.CheckoutSummary) int64 { return s.Shipping }),
			},
			"total": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Float),
				Resolve: summaryMoney(func(s *models.CheckoutSummary) int64 { return s.Total }),
			},
			"formattedSubtotal": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: summaryText(func(s *models.CheckoutSummary) string { return currency.Price(s.Subtotal) }),
			},
			"formattedTax": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: summaryText(func(s *models.CheckoutSummary) string { return currency.Price(s.Tax) }),
			},
			"formattedShipping": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: summaryText(func(s *models.CheckoutSummary) string { return currency.Shipping(s.Shipping) }),
			},
			"formattedTotal": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: summaryText(func(s *models.CheckoutSummary) string { return currency.Price(s.Total) }),
			},
		},
	})

	t.cartResponse = graphql.NewObject(graphql.ObjectConfig{
		Name:        "CartResponse",
		Description: "Result of a cart mutation",
		Fields: graphql.Fields{
			"success": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"code": &graphql.Field{
				Type: graphql.String,
				Resolve: optionalString(func(src any) string {
					if r, ok := src.(*models.CartResponse); ok && r != nil {
						return r.Code
					}
					return ""
				}),
			},
			"cart": &graphql.Field{Type: t.cart},
		},
	})

	t.checkoutResponse = graphql.NewObject(graphql.ObjectConfig{
		Name:        "CheckoutResponse",
		Description: "Result of a checkout",
		Fields: graphql.Fields{
			"success": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"code": &graphql.Field{
				Type: graphql.String,
				Resolve: optionalString(func(src any) string {
					if r, ok := src.(*models.CheckoutResponse); ok && r != nil {
						return r.Code
					}
					return ""
				}),
			},
			"summary": &graphql.Field{Type: t.checkoutSummary},
		},
	})

	t.addToCartInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AddToCartInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"productId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"quantity":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	t.updateCartItemInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateCartItemInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"cartItemId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"quantity":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	t.selectItemsInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SelectItemsInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"cartItemIds": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
			"selected":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Boolean)},
		},
	})

	return t
}
