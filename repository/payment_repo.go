package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"stem-inspires/models"
)

// PaymentRepo is the donation ledger. Records are only ever inserted.
type PaymentRepo struct {
	Collection *mongo.Collection
}

// NewPaymentRepo creates a PaymentRepo on db
func NewPaymentRepo(db *mongo.Database) *PaymentRepo {
	return &PaymentRepo{Collection: db.Collection(PaymentsCollection)}
}

// Create stamps and inserts p, filling in its ID
func (r *PaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	ts := now()
	p.CreatedAt, p.UpdatedAt = ts, ts
	if p.Status == "" {
		p.Status = models.PaymentPending
	}
	res, err := r.Collection.InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("insert payment: %w", translate(err))
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}
	return nil
}

// List returns every payment, newest first
func (r *PaymentRepo) List(ctx context.Context) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find payments: %w", err)
	}
	defer cursor.Close(ctx)

	payments := []models.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return payments, nil
}
