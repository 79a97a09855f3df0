package services

import (
	"github.com/SigNoz/cart-graphql-api/internal/models"
	"github.com/shopspring/decimal"
)

// PricingPolicy holds the checkout tax and shipping rules. Amounts are in
// the smallest currency unit.
type PricingPolicy struct {
	TaxRate               decimal.Decimal
	ShippingFee           int64
	FreeShippingThreshold int64
}

// DefaultPricingPolicy is 10% tax and a 30,000 flat fee waived from 1,000,000
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		TaxRate:               decimal.NewFromFloat(0.1),
		ShippingFee:           30000,
		FreeShippingThreshold: 1000000,
	}
}

// Tax returns subtotal * rate rounded half away from zero
func (p PricingPolicy) Tax(subtotal int64) int64 {
	return decimal.NewFromInt(subtotal).Mul(p.TaxRate).Round(0).IntPart()
}

// Shipping returns the flat fee, or zero once subtotal reaches the threshold
func (p PricingPolicy) Shipping(subtotal int64) int64 {
	if subtotal >= p.FreeShippingThreshold {
		return 0
	}
	return p.ShippingFee
}

// Summarize computes checkout totals over the selected lines of items
func (p PricingPolicy) Summarize(items []models.CartItem) *models.CheckoutSummary {
	summary := &models.CheckoutSummary{SelectedItems: []models.CartItem{}}
	for _, item := range items {
		if !item.Selected {
			continue
		}
		summary.SelectedItems = append(summary.SelectedItems, item)
		summary.TotalItems += item.Quantity
		summary.Subtotal += item.Subtotal()
	}

	summary.Tax = p.Tax(summary.Subtotal)
	summary.Shipping = p.Shipping(summary.Subtotal)
	summary.Total = summary.Subtotal + summary.Tax + summary.Shipping
	return summary
}
