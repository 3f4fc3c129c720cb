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

// FLLRepo stores FIRST LEGO League program entries
type FLLRepo struct {
	Collection *mongo.Collection
}

func NewFLLRepo(db *mongo.Database) *FLLRepo {
	return &FLLRepo{Collection: db.Collection(FLLCollection)}
}

// List returns entries, newest first
func (r *FLLRepo) List(ctx context.Context) ([]models.FLL, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find fll: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []models.FLL{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode fll: %w", err)
	}
	return entries, nil
}

func (r *FLLRepo) Get(ctx context.Context, id primitive.ObjectID) (*models.FLL, error) {
	var f models.FLL
	if err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&f); err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (r *FLLRepo) Create(ctx context.Context, f *models.FLL) error {
	ts := now()
	f.CreatedAt, f.UpdatedAt = ts, ts
	res, err := r.Collection.InsertOne(ctx, f)
	if err != nil {
		return fmt.Errorf("insert fll: %w", translate(err))
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		f.ID = id
	}
	return nil
}

func (r *FLLRepo) Update(ctx context.Context, id primitive.ObjectID, patch models.FLLPatch) (*models.FLL, error) {
	ts := now()
	patch.UpdatedAt = &ts
	var f models.FLL
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patch}, afterUpdate()).Decode(&f)
	if err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (r *FLLRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.FLL, error) {
	var f models.FLL
	if err := r.Collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&f); err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

// DeleteAll removes every document and reports how many were removed
func (r *FLLRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.Collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete fll entries: %w", err)
	}
	return res.DeletedCount, nil
}
