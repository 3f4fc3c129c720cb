package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"stem-inspires/models"
)

// BannerRepo stores the singleton banner. The unique "banner_singleton"
// index on key keeps the collection at one document; writes go through an
// atomic upsert instead of find-then-insert.
type BannerRepo struct {
	Collection *mongo.Collection
}

func NewBannerRepo(db *mongo.Database) *BannerRepo {
	return &BannerRepo{Collection: db.Collection(BannersCollection)}
}

func singletonFilter() bson.M {
	return bson.M{"key": models.BannerKey}
}

// Get returns the banner
func (r *BannerRepo) Get(ctx context.Context) (*models.Banner, error) {
	var b models.Banner
	if err := r.Collection.FindOne(ctx, singletonFilter()).Decode(&b); err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

// Upsert applies the non-empty fields of u, and image when given. A missing
// banner is created only when u has a title and a description; otherwise
// Upsert returns ErrNotFound.
func (r *BannerRepo) Upsert(ctx context.Context, u models.BannerUpdate, image *string) (*models.Banner, error) {
	set := bson.M{}
	for field, value := range map[string]string{
		"title":           u.Title,
		"description":     u.Description,
		"primaryColor":    u.PrimaryColor,
		"secondaryColor":  u.SecondaryColor,
		"backgroundColor": u.BackgroundColor,
	} {
		if value != "" {
			set[field] = value
		}
	}
	if image != nil {
		set["image"] = *image
	}

	if u.Title == "" || u.Description == "" {
		if len(set) == 0 {
			return r.Get(ctx)
		}
		return r.apply(ctx, bson.M{"$set": set}, false)
	}

	onInsert := bson.M{}
	for field, def := range map[string]string{
		"primaryColor":    models.DefaultPrimaryColor,
		"secondaryColor":  models.DefaultSecondaryColor,
		"backgroundColor": models.DefaultBackgroundColor,
	} {
		if _, ok := set[field]; !ok {
			onInsert[field] = def
		}
	}
	update := bson.M{"$set": set}
	if len(onInsert) > 0 {
		update["$setOnInsert"] = onInsert
	}

	b, err := r.apply(ctx, update, true)
	if errors.Is(err, ErrDuplicate) {
		// another request inserted the banner between our match and insert
		return r.apply(ctx, bson.M{"$set": set}, false)
	}
	return b, err
}

func (r *BannerRepo) apply(ctx context.Context, update bson.M, upsert bool) (*models.Banner, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetUpsert(upsert)
	var b models.Banner
	if err := r.Collection.FindOneAndUpdate(ctx, singletonFilter(), update, opts).Decode(&b); err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

// Replace overwrites the banner with b, creating it when absent
func (r *BannerRepo) Replace(ctx context.Context, b *models.Banner) error {
	b.Key = models.BannerKey
	b.ID = primitive.NilObjectID
	_, err := r.Collection.ReplaceOne(ctx, singletonFilter(), b, options.Replace().SetUpsert(true))
	return translate(err)
}
