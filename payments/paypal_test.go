package payments

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stem-inspires/utils"
)

type orderBody struct {
	Intent        string `json:"intent"`
	PurchaseUnits []struct {
		Amount struct {
			Currency string `json:"currency_code"`
			Value    string `json:"value"`
		} `json:"amount"`
	} `json:"purchase_units"`
	ApplicationContext struct {
		BrandName  string `json:"brand_name"`
		UserAction string `json:"user_action"`
		ReturnURL  string `json:"return_url"`
		CancelURL  string `json:"cancel_url"`
	} `json:"application_context"`
}

func paypalTestGateway(t *testing.T, orders http.HandlerFunc) *PayPalGateway {
	t.Helper()
	gw, _ := paypalCountingGateway(t, orders)
	return gw
}

// paypalCountingGateway also reports how many token requests were served
func paypalCountingGateway(t *testing.T, orders http.HandlerFunc) (*PayPalGateway, *int32) {
	t.Helper()
	var tokens int32
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&tokens, 1)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"access_token":"A21AA","token_type":"Bearer","expires_in":32400}`)
	})
	mux.HandleFunc("/v2/checkout/orders", orders)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	gw, err := NewPayPalGateway("client-id", "client-secret", utils.PayPalEndpoints{
		APIBase:      srv.URL,
		CheckoutBase: "https://www.sandbox.paypal.com/checkoutnow?token=",
	}, "https://stem.example")
	require.NoError(t, err)
	return gw, &tokens
}

func TestPayPalCaptureOrder(t *testing.T) {
	var body orderBody
	gw := paypalTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Bearer A21AA", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":"5O190127TN364715T","status":"CREATED"}`)
	})

	co, err := gw.CaptureOrder(context.Background(), testDonation("25"))
	require.NoError(t, err)
	assert.Equal(t, "5O190127TN364715T", co.ID)
	assert.Equal(t, "https://www.sandbox.paypal.com/checkoutnow?token=5O190127TN364715T", co.URL)

	assert.Equal(t, "CAPTURE", body.Intent)
	require.Len(t, body.PurchaseUnits, 1)
	assert.Equal(t, "USD", body.PurchaseUnits[0].Amount.Currency)
	assert.Equal(t, "25.00", body.PurchaseUnits[0].Amount.Value)
	assert.Equal(t, "STEM Inspire", body.ApplicationContext.BrandName)
	assert.Equal(t, "PAY_NOW", body.ApplicationContext.UserAction)
	assert.Equal(t, "https://stem.example/payment-success", body.ApplicationContext.ReturnURL)
	assert.Equal(t, "https://stem.example/payment-cancel", body.ApplicationContext.CancelURL)
}

func TestPayPalOrderWithoutID(t *testing.T) {
	gw := paypalTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"status":"CREATED"}`)
	})

	_, err := gw.CaptureOrder(context.Background(), testDonation("25"))
	assert.True(t, errors.Is(err, ErrGateway))
}

func TestPayPalRejectedOrder(t *testing.T) {
	gw := paypalTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"name":"UNPROCESSABLE_ENTITY","message":"The requested action could not be performed."}`)
	})

	_, err := gw.CaptureOrder(context.Background(), testDonation("25"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGateway))
	assert.Equal(t, "The requested action could not be performed.", err.Error())
}

func TestPayPalConcurrentOrdersShareOneToken(t *testing.T) {
	var orders int32
	gw, tokens := paypalCountingGateway(t, func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&orders, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":"ORDER-`+string(rune('A'+n%26))+`","status":"CREATED"}`)
	})

	const donors = 8
	var wg sync.WaitGroup
	errs := make([]error, donors)
	for i := 0; i < donors; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = gw.CaptureOrder(context.Background(), testDonation("10"))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(donors), atomic.LoadInt32(&orders))
	assert.Equal(t, int32(1), atomic.LoadInt32(tokens))
}

func TestPayPalTokenFailureIsRetried(t *testing.T) {
	var fail int32 = 1
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if atomic.CompareAndSwapInt32(&fail, 1, 0) {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"error":"invalid_client","error_description":"Client Authentication failed"}`)
			return
		}
		io.WriteString(w, `{"access_token":"A21AA","token_type":"Bearer","expires_in":32400}`)
	})
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":"5O190127TN364715T","status":"CREATED"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	gw, err := NewPayPalGateway("client-id", "client-secret", utils.PayPalEndpoints{
		APIBase:      srv.URL,
		CheckoutBase: "https://www.sandbox.paypal.com/checkoutnow?token=",
	}, "https://stem.example")
	require.NoError(t, err)

	_, err = gw.CaptureOrder(context.Background(), testDonation("10"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGateway))

	co, err := gw.CaptureOrder(context.Background(), testDonation("10"))
	require.NoError(t, err)
	assert.Equal(t, "5O190127TN364715T", co.ID)
}
