// Package payments turns donation requests into provider checkouts and
// records each issued checkout in the local ledger.
//
// A ledger record is written only after the provider has issued the
// checkout session or order. Records start out pending: issuing a checkout
// says nothing about whether the donor completed it.
package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"stem-inspires/models"
)

var (
	// ErrValidation marks requests rejected before any provider call
	ErrValidation = errors.New("invalid donation")
	// ErrGateway marks provider failures; the message is the provider's own
	ErrGateway = errors.New("payment gateway error")
)

// Error carries a user-facing message together with its kind
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string        { return e.Msg }
func (e *Error) Unwrap() error        { return e.Err }
func (e *Error) Is(target error) bool { return target == e.Kind }

func validationError(msg string) error {
	return &Error{Kind: ErrValidation, Msg: msg}
}

func gatewayError(msg string, err error) error {
	if msg == "" && err != nil {
		msg = err.Error()
	}
	return &Error{Kind: ErrGateway, Msg: msg, Err: err}
}

// DonationRequest is the body accepted by the donation routes. Amount
// accepts a JSON number or a numeric string.
type DonationRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Message string          `json:"message"`
}

// Donation is a validated DonationRequest. Amount is in USD, rounded to cents.
type Donation struct {
	Amount  decimal.Decimal
	Name    string
	Email   string
	Message string
}

// MaxAmount is the largest single donation, Stripe's USD checkout limit.
// Anything above it cannot be charged as entered.
var MaxAmount = decimal.RequireFromString("999999.99")

// Validate trims and checks the request
func (r DonationRequest) Validate() (Donation, error) {
	d := Donation{
		Amount:  r.Amount.Round(2),
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Message: strings.TrimSpace(r.Message),
	}
	if d.Name == "" || d.Email == "" {
		return Donation{}, validationError("Amount, name, and email are required.")
	}
	if !d.Amount.IsPositive() {
		return Donation{}, validationError("Amount must be greater than zero.")
	}
	if d.Amount.GreaterThan(MaxAmount) {
		return Donation{}, validationError("Amount must not exceed " + MaxAmount.StringFixed(2) + ".")
	}
	return d, nil
}

// Cents is the amount in minor currency units
func (d Donation) Cents() int64 {
	return d.Amount.Shift(2).IntPart()
}

// AmountString is the amount with exactly two decimals, e.g. "25.50"
func (d Donation) AmountString() string {
	return d.Amount.StringFixed(2)
}

// Checkout is what a provider hands back for a donor to complete
type Checkout struct {
	ID  string // session or order id
	URL string // where the donor is sent
}

// CardCheckout issues card checkout sessions (Stripe)
type CardCheckout interface {
	OneTimeSession(ctx context.Context, d Donation) (*Checkout, error)
	MonthlySession(ctx context.Context, d Donation) (*Checkout, error)
}

// OrderCheckout issues capture orders (PayPal)
type OrderCheckout interface {
	CaptureOrder(ctx context.Context, d Donation) (*Checkout, error)
}

// Ledger stores payment records
type Ledger interface {
	Create(ctx context.Context, p *models.Payment) error
	List(ctx context.Context) ([]models.Payment, error)
}

// Notifier tells donors their checkout was recorded
type Notifier interface {
	SendDonationReceipt(p models.Payment) error
}

// Service is the payment gateway adapter used by the donation routes
type Service struct {
	card     CardCheckout
	orders   OrderCheckout
	ledger   Ledger
	notifier Notifier
	log      zerolog.Logger
	async    func(func())
}

// NewService wires the adapter. card, orders and notifier may be nil when
// the matching provider or mail is not configured.
func NewService(card CardCheckout, orders OrderCheckout, ledger Ledger, notifier Notifier, log zerolog.Logger) *Service {
	return &Service{
		card:     card,
		orders:   orders,
		ledger:   ledger,
		notifier: notifier,
		log:      log.With().Str("component", "payments").Logger(),
		async:    func(f func()) { go f() },
	}
}

// StripeOneTime opens a one-time card checkout and returns its URL
func (s *Service) StripeOneTime(ctx context.Context, req DonationRequest) (string, error) {
	d, err := req.Validate()
	if err != nil {
		return "", err
	}
	if s.card == nil {
		return "", gatewayError("Stripe is not configured", nil)
	}
	co, err := s.card.OneTimeSession(ctx, d)
	return s.record(ctx, d, models.ProviderStripe, models.PaymentOneTime, co, err)
}

// StripeMonthly opens a monthly subscription checkout and returns its URL
func (s *Service) StripeMonthly(ctx context.Context, req DonationRequest) (string, error) {
	d, err := req.Validate()
	if err != nil {
		return "", err
	}
	if s.card == nil {
		return "", gatewayError("Stripe is not configured", nil)
	}
	co, err := s.card.MonthlySession(ctx, d)
	return s.record(ctx, d, models.ProviderStripe, models.PaymentMonthly, co, err)
}

// PayPalOneTime creates a capture order and returns its approval URL
func (s *Service) PayPalOneTime(ctx context.Context, req DonationRequest) (string, error) {
	d, err := req.Validate()
	if err != nil {
		return "", err
	}
	if s.orders == nil {
		return "", gatewayError("PayPal is not configured", nil)
	}
	co, err := s.orders.CaptureOrder(ctx, d)
	return s.record(ctx, d, models.ProviderPayPal, models.PaymentOneTime, co, err)
}

// List returns the ledger, newest first
func (s *Service) List(ctx context.Context) ([]models.Payment, error) {
	return s.ledger.List(ctx)
}

// record writes the ledger entry for a checkout the provider has issued
func (s *Service) record(ctx context.Context, d Donation, provider models.Provider, typ models.PaymentType, co *Checkout, err error) (string, error) {
	log := s.log.With().Str("provider", string(provider)).Str("type", string(typ)).Logger()
	if err != nil {
		log.Error().Err(err).Msg("checkout failed")
		if !errors.Is(err, ErrGateway) {
			err = gatewayError("", err)
		}
		return "", err
	}
	if co == nil || co.ID == "" || co.URL == "" {
		log.Error().Msg("provider returned no usable checkout")
		return "", gatewayError(fmt.Sprintf("%s returned no checkout", provider), nil)
	}

	p := &models.Payment{
		Name:        d.Name,
		Email:       d.Email,
		Amount:      d.Amount.InexactFloat64(),
		Message:     d.Message,
		Provider:    provider,
		Type:        typ,
		Status:      models.PaymentPending,
		ProviderRef: co.ID,
	}
	if err := s.ledger.Create(ctx, p); err != nil {
		log.Error().Err(err).Str("ref", co.ID).Msg("checkout issued but not recorded")
		return "", fmt.Errorf("record payment: %w", err)
	}
	log.Info().Str("payment", p.ID.Hex()).Str("ref", co.ID).Msg("payment recorded")

	if s.notifier != nil {
		recorded := *p
		s.async(func() {
			if err := s.notifier.SendDonationReceipt(recorded); err != nil {
				s.log.Warn().Err(err).Str("payment", recorded.ID.Hex()).Msg("donation receipt not sent")
			}
		})
	}
	return co.URL, nil
}
