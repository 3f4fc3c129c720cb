package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"stem-inspires/models"
)

// SchoolRepo stores FTC schools
type SchoolRepo struct {
	Collection *mongo.Collection
}

// NewSchoolRepo creates a SchoolRepo on db
func NewSchoolRepo(db *mongo.Database) *SchoolRepo {
	return &SchoolRepo{Collection: db.Collection(SchoolsCollection)}
}

func (r *SchoolRepo) List(ctx context.Context) ([]models.School, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find schools: %w", err)
	}
	defer cursor.Close(ctx)

	schools := []models.School{}
	if err := cursor.All(ctx, &schools); err != nil {
		return nil, fmt.Errorf("decode schools: %w", err)
	}
	return schools, nil
}

func (r *SchoolRepo) Get(ctx context.Context, id primitive.ObjectID) (*models.School, error) {
	var s models.School
	if err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *SchoolRepo) Create(ctx context.Context, s *models.School) error {
	ts := now()
	s.CreatedAt, s.UpdatedAt = ts, ts
	res, err := r.Collection.InsertOne(ctx, s)
	if err != nil {
		return fmt.Errorf("insert school: %w", translate(err))
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = id
	}
	return nil
}

func (r *SchoolRepo) Update(ctx context.Context, id primitive.ObjectID, patch models.SchoolPatch) (*models.School, error) {
	ts := now()
	patch.UpdatedAt = &ts
	var s models.School
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patch}, afterUpdate()).Decode(&s)
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

// Delete removes the school and returns what was stored, so the caller
// can clean up its image.
func (r *SchoolRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.School, error) {
	var s models.School
	if err := r.Collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

// DeleteAll removes every document and reports how many were removed
func (r *SchoolRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.Collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete schools: %w", err)
	}
	return res.DeletedCount, nil
}
