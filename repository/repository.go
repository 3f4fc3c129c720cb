// Package repository stores the site's documents in MongoDB, one
// collection per record type.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// Collection names
const (
	ChampionsCollection = "champions"
	SchoolsCollection   = "schools"
	FLLCollection       = "flls"
	BannersCollection   = "banners"
	PaymentsCollection  = "payments"
	AdminsCollection    = "admins"
)

// now returns the timestamp stored in createdAt/updatedAt. Mongo keeps
// millisecond precision, so values are truncated before they are returned.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// translate maps driver errors onto the package errors
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

// afterUpdate returns the document as it is after the update
func afterUpdate() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// EnsureIndexes creates the indexes the repositories rely on
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		BannersCollection: {{
			Keys:    bson.D{{Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("banner_singleton"),
		}},
		AdminsCollection: {{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("admin_email"),
		}},
		PaymentsCollection: {{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("payment_created"),
		}},
	}
	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll, err)
		}
	}
	return nil
}
