package cart_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/abgdnv/gocart/internal/cart"
	"github.com/abgdnv/gocart/internal/store"
	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

const featureKey = "lithiumRepublicCart:feature"

type cartTestContext struct {
	slot          *store.InMemory
	cart          *cart.Store
	notifications []cart.Notification
	err           error
}

func (c *cartTestContext) reset() {
	c.slot = store.NewInMemoryStore()
	c.notifications = nil
	c.err = nil
	c.cart = c.newStore()
}

func (c *cartTestContext) newStore() *cart.Store {
	return cart.NewStore(c.slot, featureKey, cart.WithNotifier(cart.NotifierFunc(func(_ context.Context, n cart.Notification) {
		c.notifications = append(c.notifications, n)
	})))
}

func (c *cartTestContext) anEmptyCart() error {
	return c.cart.Restore(context.Background())
}

func (c *cartTestContext) iAddPriced(product, priceStr string) error {
	p, err := decimal.NewFromString(priceStr)
	if err != nil {
		return err
	}
	return c.cart.AddItem(context.Background(), product, p)
}

func (c *cartTestContext) iIncreaseTheQuantityAtIndex(index int) error {
	_, c.err = c.cart.IncreaseQuantity(context.Background(), index)
	return nil
}

func (c *cartTestContext) iDecreaseTheQuantityAtIndex(index int) error {
	_, c.err = c.cart.DecreaseQuantity(context.Background(), index)
	return nil
}

func (c *cartTestContext) iRemoveTheItemAtIndex(index int) error {
	_, c.err = c.cart.RemoveItem(context.Background(), index)
	return nil
}

func (c *cartTestContext) iClearTheCart() error {
	return c.cart.Clear(context.Background())
}

func (c *cartTestContext) iReloadThePage() error {
	c.cart = c.newStore()
	return c.cart.Restore(context.Background())
}

func (c *cartTestContext) noErrorIsReported() error {
	return c.err
}

func (c *cartTestContext) theCartHasLineItems(n int) error {
	if got := c.cart.Len(); got != n {
		return fmt.Errorf("expected %d line items, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) lineIsPricedWithQuantity(line int, product, priceStr string, quantity int) error {
	items := c.cart.Items()
	if line < 1 || line > len(items) {
		return fmt.Errorf("line %d does not exist, cart has %d lines", line, len(items))
	}
	it := items[line-1]
	want, err := decimal.NewFromString(priceStr)
	if err != nil {
		return err
	}
	if it.Product != product || !it.UnitPrice.Equal(want) || it.Quantity != quantity {
		return fmt.Errorf("line %d is %s priced %s with quantity %d", line, it.Product, it.UnitPrice, it.Quantity)
	}
	return nil
}

func (c *cartTestContext) theTotalPriceIs(priceStr string) error {
	want, err := decimal.NewFromString(priceStr)
	if err != nil {
		return err
	}
	if got := c.cart.TotalPrice(); !got.Equal(want) {
		return fmt.Errorf("expected total %s, got %s", want, got)
	}
	return nil
}

func (c *cartTestContext) theTotalItemCountIs(n int) error {
	if got := c.cart.TotalItemCount(); got != n {
		return fmt.Errorf("expected item count %d, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) theNotificationWasRaised(message string) error {
	for _, n := range c.notifications {
		if n.Message == message {
			return nil
		}
	}
	return fmt.Errorf("notification %q was not raised", message)
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)

	// When steps
	ctx.Step(`^I add "([^"]*)" priced (\d+(?:\.\d+)?)$`, tc.iAddPriced)
	ctx.Step(`^I increase the quantity at index (\d+)$`, tc.iIncreaseTheQuantityAtIndex)
	ctx.Step(`^I decrease the quantity at index (\d+)$`, tc.iDecreaseTheQuantityAtIndex)
	ctx.Step(`^I remove the item at index (\d+)$`, tc.iRemoveTheItemAtIndex)
	ctx.Step(`^I clear the cart$`, tc.iClearTheCart)
	ctx.Step(`^I reload the page$`, tc.iReloadThePage)

	// Then steps
	ctx.Step(`^no error is reported$`, tc.noErrorIsReported)
	ctx.Step(`^the cart has (\d+) line items$`, tc.theCartHasLineItems)
	ctx.Step(`^line (\d+) is "([^"]*)" priced (\d+(?:\.\d+)?) with quantity (\d+)$`, tc.lineIsPricedWithQuantity)
	ctx.Step(`^the total price is (\d+(?:\.\d+)?)$`, tc.theTotalPriceIs)
	ctx.Step(`^the total item count is (\d+)$`, tc.theTotalItemCountIs)
	ctx.Step(`^the notification "([^"]*)" was raised$`, tc.theNotificationWasRaised)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/cart.feature"},
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
