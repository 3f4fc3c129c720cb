package repository

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"stem-inspires/models"
)

// AdminRepo stores administrator accounts
type AdminRepo struct {
	Collection *mongo.Collection
}

func NewAdminRepo(db *mongo.Database) *AdminRepo {
	return &AdminRepo{Collection: db.Collection(AdminsCollection)}
}

func (r *AdminRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	var a models.Admin
	if err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *AdminRepo) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	filter := bson.M{"email": strings.ToLower(strings.TrimSpace(email))}
	if err := r.Collection.FindOne(ctx, filter).Decode(&a); err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

// Save inserts a new admin or updates an existing one. The admin's
// BeforeSave hook runs first, so a plain password is hashed here.
func (r *AdminRepo) Save(ctx context.Context, a *models.Admin) error {
	if err := a.BeforeSave(); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	ts := now()
	a.UpdatedAt = ts

	if a.ID.IsZero() {
		a.CreatedAt = ts
		res, err := r.Collection.InsertOne(ctx, a)
		if err != nil {
			return fmt.Errorf("insert admin: %w", translate(err))
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			a.ID = id
		}
		return nil
	}

	res, err := r.Collection.UpdateOne(ctx, bson.M{"_id": a.ID}, bson.M{"$set": bson.M{
		"email":     a.Email,
		"password":  a.Password,
		"updatedAt": a.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update admin: %w", translate(err))
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
