package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"stem-inspires/models"
	"stem-inspires/payments"
	"stem-inspires/utils"
)

// Donations starts donation checkouts and lists the recorded payments
type Donations interface {
	StripeOneTime(ctx context.Context, req payments.DonationRequest) (string, error)
	StripeMonthly(ctx context.Context, req payments.DonationRequest) (string, error)
	PayPalOneTime(ctx context.Context, req payments.DonationRequest) (string, error)
	List(ctx context.Context) ([]models.Payment, error)
}

// PaymentController handles donation requests
type PaymentController struct {
	Donations Donations
	// PublicListing exposes the payment list outside the admin routes
	PublicListing bool
	Log           zerolog.Logger
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(donations Donations, publicListing bool, log zerolog.Logger) *PaymentController {
	return &PaymentController{Donations: donations, PublicListing: publicListing, Log: log}
}

// CreateStripePayment starts a one-time Stripe checkout
func (pc *PaymentController) CreateStripePayment(w http.ResponseWriter, r *http.Request) {
	pc.checkout(w, r, "stripe one-time", pc.Donations.StripeOneTime)
}

// CreateStripeSubscription starts a monthly Stripe checkout
func (pc *PaymentController) CreateStripeSubscription(w http.ResponseWriter, r *http.Request) {
	pc.checkout(w, r, "stripe monthly", pc.Donations.StripeMonthly)
}

// CreatePayPalPayment starts a one-time PayPal order
func (pc *PaymentController) CreatePayPalPayment(w http.ResponseWriter, r *http.Request) {
	pc.checkout(w, r, "paypal one-time", pc.Donations.PayPalOneTime)
}

func (pc *PaymentController) checkout(w http.ResponseWriter, r *http.Request, kind string,
	start func(context.Context, payments.DonationRequest) (string, error)) {
	var req payments.DonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	url, err := start(r.Context(), req)
	switch {
	case err == nil:
		utils.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
	case errors.Is(err, payments.ErrValidation):
		utils.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, payments.ErrGateway):
		pc.Log.Error().Err(err).Str("checkout", kind).Msg("payment gateway")
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
	default:
		pc.Log.Error().Err(err).Str("checkout", kind).Msg("record payment")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to record payment")
	}
}

// GetPayments lists recorded payments, newest first. Mounted publicly it
// answers 404 unless PublicListing is set.
func (pc *PaymentController) GetPayments(w http.ResponseWriter, r *http.Request) {
	if !pc.PublicListing {
		utils.WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	pc.listPayments(w, r)
}

// GetAdminPayments lists recorded payments for an authenticated admin
func (pc *PaymentController) GetAdminPayments(w http.ResponseWriter, r *http.Request) {
	pc.listPayments(w, r)
}

func (pc *PaymentController) listPayments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	list, err := pc.Donations.List(ctx)
	if err != nil {
		pc.Log.Error().Err(err).Msg("list payments")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch payments")
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}
