// Package format renders money amounts for display.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FreeShipping is shown instead of a zero shipping fee
const FreeShipping = "Free"

// Currency formats integer amounts in the smallest currency unit with the
// locale's grouping separator and a trailing suffix, e.g. "6.990.000đ".
type Currency struct {
	printer *message.Printer
	suffix  string
}

// NewCurrency creates a formatter for a BCP 47 locale tag. An unparsable tag
// falls back to Vietnamese.
func NewCurrency(locale, suffix string) *Currency {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Vietnamese
	}
	return &Currency{
		printer: message.NewPrinter(tag),
		suffix:  suffix,
	}
}

// Price formats an amount
func (c *Currency) Price(amount int64) string {
	return c.printer.Sprintf("%d", amount) + c.suffix
}

// Shipping formats a shipping fee, rendering zero as FreeShipping
func (c *Currency) Shipping(amount int64) string {
	if amount == 0 {
		return FreeShipping
	}
	return c.Price(amount)
}
