package payments

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const (
	donationProduct = "Donation"
	monthlyProduct  = "Monthly Donation"
)

// StripeGateway issues Stripe Checkout sessions
type StripeGateway struct {
	api        *client.API
	successURL string
	cancelURL  string
}

// NewStripeGateway creates a gateway for secretKey. frontendURL is where
// donors land after checkout. backends may be nil for the live API.
func NewStripeGateway(secretKey, frontendURL string, backends *stripe.Backends) *StripeGateway {
	return &StripeGateway{
		api:        client.New(secretKey, backends),
		successURL: frontendURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:  frontendURL + "/payment-cancel",
	}
}

// OneTimeSession opens a payment-mode session with a single line item
func (g *StripeGateway) OneTimeSession(ctx context.Context, d Donation) (*Checkout, error) {
	params := g.sessionParams(d, stripe.CheckoutSessionModePayment)
	params.LineItems = []*stripe.CheckoutSessionLineItemParams{{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency: stripe.String(string(stripe.CurrencyUSD)),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(donationProduct),
			},
			UnitAmount: stripe.Int64(d.Cents()),
		},
		Quantity: stripe.Int64(1),
	}}
	params.Context = ctx

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, stripeError(err)
	}
	return &Checkout{ID: sess.ID, URL: sess.URL}, nil
}

// MonthlySession creates a product and a monthly price for it, then opens
// a subscription-mode session on that price
func (g *StripeGateway) MonthlySession(ctx context.Context, d Donation) (*Checkout, error) {
	productParams := &stripe.ProductParams{Name: stripe.String(monthlyProduct)}
	productParams.Context = ctx
	product, err := g.api.Products.New(productParams)
	if err != nil {
		return nil, stripeError(err)
	}

	priceParams := &stripe.PriceParams{
		Currency:   stripe.String(string(stripe.CurrencyUSD)),
		UnitAmount: stripe.Int64(d.Cents()),
		Recurring: &stripe.PriceRecurringParams{
			Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
		},
		Product: stripe.String(product.ID),
	}
	priceParams.Context = ctx
	price, err := g.api.Prices.New(priceParams)
	if err != nil {
		return nil, stripeError(err)
	}

	params := g.sessionParams(d, stripe.CheckoutSessionModeSubscription)
	params.LineItems = []*stripe.CheckoutSessionLineItemParams{{
		Price:    stripe.String(price.ID),
		Quantity: stripe.Int64(1),
	}}
	params.Context = ctx

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, stripeError(err)
	}
	return &Checkout{ID: sess.ID, URL: sess.URL}, nil
}

func (g *StripeGateway) sessionParams(d Donation, mode stripe.CheckoutSessionMode) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(mode)),
		CustomerEmail:      stripe.String(d.Email),
		SuccessURL:         stripe.String(g.successURL),
		CancelURL:          stripe.String(g.cancelURL),
	}
	params.AddMetadata("donor_name", d.Name)
	if d.Message != "" {
		params.AddMetadata("message", d.Message)
	}
	return params
}

// stripeError surfaces Stripe's own message
func stripeError(err error) error {
	var se *stripe.Error
	if errors.As(err, &se) && se.Msg != "" {
		return gatewayError(se.Msg, err)
	}
	return gatewayError("", err)
}
