package payments

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

func stripeTestGateway(t *testing.T, h http.Handler) *StripeGateway {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		HTTPClient:        srv.Client(),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return NewStripeGateway("sk_test_123", "https://stem.example", &stripe.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})
}

func testDonation(amount string) Donation {
	return Donation{Amount: decimal.RequireFromString(amount), Name: "Ada", Email: "ada@example.com"}
}

func TestStripeOneTimeSession(t *testing.T) {
	var form map[string]string
	gw := stripeTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		require.NoError(t, r.ParseForm())
		form = map[string]string{
			"mode":        r.PostForm.Get("mode"),
			"unit_amount": r.PostForm.Get("line_items[0][price_data][unit_amount]"),
			"currency":    r.PostForm.Get("line_items[0][price_data][currency]"),
			"success_url": r.PostForm.Get("success_url"),
			"cancel_url":  r.PostForm.Get("cancel_url"),
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_1"}`)
	}))

	co, err := gw.OneTimeSession(context.Background(), testDonation("25.5"))
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", co.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", co.URL)

	assert.Equal(t, "payment", form["mode"])
	assert.Equal(t, "2550", form["unit_amount"])
	assert.Equal(t, "usd", form["currency"])
	assert.Equal(t, "https://stem.example/payment-success?session_id={CHECKOUT_SESSION_ID}", form["success_url"])
	assert.Equal(t, "https://stem.example/payment-cancel", form["cancel_url"])
}

func TestStripeMonthlySession(t *testing.T) {
	var paths []string
	var interval, product, price string
	gw := stripeTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/products":
			io.WriteString(w, `{"id":"prod_1","object":"product","name":"Monthly Donation"}`)
		case "/v1/prices":
			interval = r.PostForm.Get("recurring[interval]")
			product = r.PostForm.Get("product")
			io.WriteString(w, `{"id":"price_1","object":"price"}`)
		case "/v1/checkout/sessions":
			price = r.PostForm.Get("line_items[0][price]")
			assert.Equal(t, "subscription", r.PostForm.Get("mode"))
			io.WriteString(w, `{"id":"cs_sub_1","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_sub_1"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	co, err := gw.MonthlySession(context.Background(), testDonation("10"))
	require.NoError(t, err)
	assert.Equal(t, "cs_sub_1", co.ID)
	assert.Equal(t, []string{"/v1/products", "/v1/prices", "/v1/checkout/sessions"}, paths)
	assert.Equal(t, "month", interval)
	assert.Equal(t, "prod_1", product)
	assert.Equal(t, "price_1", price)
}

func TestStripeErrorMessage(t *testing.T) {
	gw := stripeTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":{"type":"invalid_request_error","message":"Invalid API Key provided"}}`)
	}))

	_, err := gw.OneTimeSession(context.Background(), testDonation("25"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGateway))
	assert.Equal(t, "Invalid API Key provided", err.Error())
}
