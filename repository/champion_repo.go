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

// ChampionRepo stores champions
type ChampionRepo struct {
	Collection *mongo.Collection
}

// NewChampionRepo creates a ChampionRepo on db
func NewChampionRepo(db *mongo.Database) *ChampionRepo {
	return &ChampionRepo{Collection: db.Collection(ChampionsCollection)}
}

// List returns champions, newest year first
func (r *ChampionRepo) List(ctx context.Context) ([]models.Champion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "year", Value: -1}, {Key: "createdAt", Value: -1}})
	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find champions: %w", err)
	}
	defer cursor.Close(ctx)

	champions := []models.Champion{}
	if err := cursor.All(ctx, &champions); err != nil {
		return nil, fmt.Errorf("decode champions: %w", err)
	}
	return champions, nil
}

// Get returns the champion with the given id
func (r *ChampionRepo) Get(ctx context.Context, id primitive.ObjectID) (*models.Champion, error) {
	var c models.Champion
	if err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// First returns the earliest inserted champion
func (r *ChampionRepo) First(ctx context.Context) (*models.Champion, error) {
	var c models.Champion
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	if err := r.Collection.FindOne(ctx, bson.M{}, opts).Decode(&c); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// Create inserts c
func (r *ChampionRepo) Create(ctx context.Context, c *models.Champion) error {
	ts := now()
	c.CreatedAt, c.UpdatedAt = ts, ts
	res, err := r.Collection.InsertOne(ctx, c)
	if err != nil {
		return fmt.Errorf("insert champion: %w", translate(err))
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = id
	}
	return nil
}

// Update applies patch and returns the updated champion
func (r *ChampionRepo) Update(ctx context.Context, id primitive.ObjectID, patch models.ChampionPatch) (*models.Champion, error) {
	ts := now()
	patch.UpdatedAt = &ts
	var c models.Champion
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patch}, afterUpdate()).Decode(&c)
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// Delete removes the champion and returns what was stored
func (r *ChampionRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.Champion, error) {
	var c models.Champion
	if err := r.Collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// DeleteAll removes every document and reports how many were removed
func (r *ChampionRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.Collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete champions: %w", err)
	}
	return res.DeletedCount, nil
}
