package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Provider identifies the external gateway that issued a checkout
type Provider string

const (
	ProviderStripe Provider = "stripe"
	ProviderPayPal Provider = "paypal"
)

// PaymentType distinguishes single charges from recurring ones
type PaymentType string

const (
	PaymentOneTime PaymentType = "one-time"
	PaymentMonthly PaymentType = "monthly"
)

// PaymentStatus is the local view of the provider transaction.
// Records are created as pending; nothing in this service confirms them yet.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	// Confirmed and failed are reserved for provider callbacks; nothing
	// sets them yet.
	PaymentConfirmed PaymentStatus = "confirmed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment is the ledger record of a donation
type Payment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Amount      float64            `bson:"amount" json:"amount"` // USD
	Message     string             `bson:"message,omitempty" json:"message,omitempty"`
	Provider    Provider           `bson:"provider" json:"provider"`
	Type        PaymentType        `bson:"type" json:"type"`
	Status      PaymentStatus      `bson:"status" json:"status"`
	ProviderRef string             `bson:"providerRef,omitempty" json:"providerRef,omitempty"` // checkout session or order id
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
