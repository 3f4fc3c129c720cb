package payments

import (
	"context"
	"errors"
	"sync"

	"github.com/plutov/paypal/v4"
	"stem-inspires/utils"
)

const (
	brandName     = "STEM Inspire"
	currencyUSD   = "USD"
	intentCapture = "CAPTURE"
	userActionPay = "PAY_NOW"
)

// PayPalGateway creates PayPal capture orders. The order response carries
// only an id, so the approval URL is built from the configured checkout base.
type PayPalGateway struct {
	client       *paypal.Client
	checkoutBase string
	returnURL    string
	cancelURL    string

	// mu serializes the first token fetch; afterwards the client refreshes
	// the token itself inside SendWithAuth
	mu     sync.Mutex
	authed bool
}

// NewPayPalGateway creates a gateway against the endpoints of one
// deployment mode
func NewPayPalGateway(clientID, secret string, endpoints utils.PayPalEndpoints, frontendURL string) (*PayPalGateway, error) {
	c, err := paypal.NewClient(clientID, secret, endpoints.APIBase)
	if err != nil {
		return nil, err
	}
	return &PayPalGateway{
		client:       c,
		checkoutBase: endpoints.CheckoutBase,
		returnURL:    frontendURL + "/payment-success",
		cancelURL:    frontendURL + "/payment-cancel",
	}, nil
}

// CaptureOrder creates an order for immediate capture of d.Amount
func (g *PayPalGateway) CaptureOrder(ctx context.Context, d Donation) (*Checkout, error) {
	if err := g.authorize(ctx); err != nil {
		return nil, paypalError(err)
	}

	units := []paypal.PurchaseUnitRequest{{
		Amount: &paypal.PurchaseUnitAmount{
			Currency: currencyUSD,
			Value:    d.AmountString(),
		},
		Description: "Donation from " + d.Name,
	}}
	appCtx := &paypal.ApplicationContext{
		BrandName:  brandName,
		UserAction: userActionPay,
		ReturnURL:  g.returnURL,
		CancelURL:  g.cancelURL,
	}

	order, err := g.client.CreateOrder(ctx, intentCapture, units, nil, appCtx)
	if err != nil {
		return nil, paypalError(err)
	}
	if order == nil || order.ID == "" {
		return nil, gatewayError("PayPal order has no id", nil)
	}
	return &Checkout{ID: order.ID, URL: g.checkoutBase + order.ID}, nil
}

// authorize fetches the first access token. A failed fetch is retried by
// the next order.
func (g *PayPalGateway) authorize(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.authed {
		return nil
	}
	if _, err := g.client.GetAccessToken(ctx); err != nil {
		return err
	}
	g.authed = true
	return nil
}

// paypalError surfaces PayPal's own message
func paypalError(err error) error {
	var pe *paypal.ErrorResponse
	if errors.As(err, &pe) && pe.Message != "" {
		return gatewayError(pe.Message, err)
	}
	return gatewayError("", err)
}
