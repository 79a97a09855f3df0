package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/SigNoz/cart-graphql-api/internal/metrics"
	"github.com/SigNoz/cart-graphql-api/internal/models"
	"github.com/SigNoz/cart-graphql-api/internal/services"
	"github.com/cucumber/godog"
	"go.uber.org/zap"
)

type cartTestContext struct {
	svc    *services.CartService
	userID string
	cart   *models.Cart
	err    error
}

func (c *cartTestContext) reset() {
	m := metrics.NewNoopMetrics("cart-features")
	c.svc = services.NewCartService(
		services.NewMemoryCartStore(),
		services.NewProductService(services.SeedProducts(), m),
		services.DefaultPricingPolicy(),
		m,
		zap.NewNop(),
	)
	c.userID = ""
	c.cart = nil
	c.err = nil
}

func (c *cartTestContext) anEmptyCartForUser(userID string) error {
	c.userID = userID
	cart, err := c.svc.GetCart(context.Background(), userID)
	c.cart = cart
	return err
}

func (c *cartTestContext) record(cart *models.Cart, err error) error {
	c.err = err
	if err == nil {
		c.cart = cart
	}
	return nil
}

func (c *cartTestContext) lineFor(productID string) (*models.CartItem, error) {
	cart, err := c.svc.GetCart(context.Background(), c.userID)
	if err != nil {
		return nil, err
	}
	idx := cart.FindProduct(productID)
	if idx < 0 {
		return nil, fmt.Errorf("no line for %s", productID)
	}
	return &cart.Items[idx], nil
}

func (c *cartTestContext) iAddOf(quantity int, productID string) error {
	return c.record(c.svc.AddItem(context.Background(), c.userID, productID, quantity))
}

func (c *cartTestContext) iSetTheQuantityOfTo(productID string, quantity int) error {
	line, err := c.lineFor(productID)
	if err != nil {
		return err
	}
	return c.record(c.svc.UpdateQuantity(context.Background(), c.userID, line.ID, quantity))
}

func (c *cartTestContext) iDecrement(productID string) error {
	line, err := c.lineFor(productID)
	if err != nil {
		return err
	}
	return c.record(c.svc.Decrement(context.Background(), c.userID, line.ID))
}

func (c *cartTestContext) iDeselect(productID string) error {
	line, err := c.lineFor(productID)
	if err != nil {
		return err
	}
	return c.record(c.svc.SelectItems(context.Background(), c.userID, []string{line.ID}, false))
}

func (c *cartTestContext) iDeselectAllLines() error {
	return c.record(c.svc.SelectAll(context.Background(), c.userID, false))
}

func (c *cartTestContext) iClearTheCart() error {
	return c.record(c.svc.Clear(context.Background(), c.userID))
}

func (c *cartTestContext) theOperationFailsWith(kind string) error {
	if c.err == nil {
		return errors.New("expected the operation to fail")
	}
	ce, ok := services.AsCartError(c.err)
	if !ok {
		return fmt.Errorf("expected a cart error, got %v", c.err)
	}
	if string(ce.Kind) != kind {
		return fmt.Errorf("expected %s, got %s", kind, ce.Kind)
	}
	return nil
}

func (c *cartTestContext) theCartHasLines(n int) error {
	cart, err := c.svc.GetCart(context.Background(), c.userID)
	if err != nil {
		return err
	}
	if len(cart.Items) != n {
		return fmt.Errorf("expected %d lines, got %d", n, len(cart.Items))
	}
	return nil
}

func (c *cartTestContext) theLineForHasQuantity(productID string, quantity int) error {
	line, err := c.lineFor(productID)
	if err != nil {
		return err
	}
	if line.Quantity != quantity {
		return fmt.Errorf("expected quantity %d, got %d", quantity, line.Quantity)
	}
	return nil
}

func (c *cartTestContext) summaryField(name string, want int64) error {
	summary, err := c.svc.Summary(context.Background(), c.userID)
	if err != nil {
		return err
	}
	var got int64
	switch name {
	case "subtotal":
		got = summary.Subtotal
	case "tax":
		got = summary.Tax
	case "shipping":
		got = summary.Shipping
	case "total":
		got = summary.Total
	default:
		return fmt.Errorf("unknown summary field %s", name)
	}
	if got != want {
		return fmt.Errorf("expected %s %d, got %d", name, want, got)
	}
	return nil
}

func (c *cartTestContext) theSummaryHasSelectedLines(n int) error {
	summary, err := c.svc.Summary(context.Background(), c.userID)
	if err != nil {
		return err
	}
	if len(summary.SelectedItems) != n {
		return fmt.Errorf("expected %d selected lines, got %d", n, len(summary.SelectedItems))
	}
	return nil
}

func (c *cartTestContext) checkoutFailsWith(kind string) error {
	_, c.err = c.svc.Checkout(context.Background(), c.userID)
	return c.theOperationFailsWith(kind)
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given / When steps
	ctx.Step(`^an empty cart for user "([^"]*)"$`, tc.anEmptyCartForUser)
	ctx.Step(`^I add (-?\d+) of "([^"]*)"$`, tc.iAddOf)
	ctx.Step(`^I set the quantity of "([^"]*)" to (-?\d+)$`, tc.iSetTheQuantityOfTo)
	ctx.Step(`^I decrement "([^"]*)"$`, tc.iDecrement)
	ctx.Step(`^I deselect "([^"]*)"$`, tc.iDeselect)
	ctx.Step(`^I deselect all lines$`, tc.iDeselectAllLines)
	ctx.Step(`^I clear the cart$`, tc.iClearTheCart)

	// Then steps
	ctx.Step(`^the operation fails with "([^"]*)"$`, tc.theOperationFailsWith)
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^the line for "([^"]*)" has quantity (\d+)$`, tc.theLineForHasQuantity)
	ctx.Step(`^the summary has (subtotal|tax|shipping|total) (\d+)$`, tc.summaryField)
	ctx.Step(`^the summary has (\d+) selected lines?$`, tc.theSummaryHasSelectedLines)
	ctx.Step(`^checkout fails with "([^"]*)"$`, tc.checkoutFailsWith)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/cart.feature"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
