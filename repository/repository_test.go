package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"stem-inspires/models"
)

func namespace(mt *mtest.T) string {
	return mt.DB.Name() + "." + mt.Coll.Name()
}

func TestPaymentRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create stamps a pending record", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := &PaymentRepo{Collection: mt.Coll}

		p := &models.Payment{Name: "Ada", Email: "ada@example.com", Amount: 25, Provider: models.ProviderStripe, Type: models.PaymentOneTime}
		require.NoError(t, repo.Create(context.Background(), p))
		assert.False(t, p.ID.IsZero())
		assert.Equal(t, models.PaymentPending, p.Status)
		assert.False(t, p.CreatedAt.IsZero())
		assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	})

	mt.Run("list sorts newest first", func(mt *mtest.T) {
		newer := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
		older := newer.Add(-time.Hour)
		first := mtest.CreateCursorResponse(1, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "B"}, {Key: "createdAt", Value: newer}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "A"}, {Key: "createdAt", Value: older}},
		)
		last := mtest.CreateCursorResponse(0, namespace(mt), mtest.NextBatch)
		mt.AddMockResponses(first, last)
		repo := &PaymentRepo{Collection: mt.Coll}

		payments, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, payments, 2)
		assert.Equal(t, "B", payments[0].Name)

		evt := mt.GetStartedEvent()
		require.NotNil(t, evt)
		sort, err := evt.Command.Lookup("sort").Document().Elements()
		require.NoError(t, err)
		require.NotEmpty(t, sort)
		assert.Equal(t, "createdAt", sort[0].Key())
	})

	mt.Run("empty list is not nil", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))
		repo := &PaymentRepo{Collection: mt.Coll}

		payments, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, payments)
		assert.Empty(t, payments)
	})
}

func TestBannerRepoUpsert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	stored := bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "key", Value: models.BannerKey},
		{Key: "title", Value: "Our Commitment"},
		{Key: "description", Value: "Empowering teams"},
		{Key: "primaryColor", Value: models.DefaultPrimaryColor},
	}

	mt.Run("creation is a single atomic upsert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: stored}))
		repo := &BannerRepo{Collection: mt.Coll}

		b, err := repo.Upsert(context.Background(), models.BannerUpdate{Title: "Our Commitment", Description: "Empowering teams"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "Our Commitment", b.Title)

		evt := mt.GetStartedEvent()
		require.NotNil(t, evt)
		assert.Equal(t, "findAndModify", evt.CommandName)
		assert.True(t, evt.Command.Lookup("upsert").Boolean())
		assert.Equal(t, models.BannerKey, evt.Command.Lookup("query", "key").StringValue())
		_, err = evt.Command.LookupErr("update", "$setOnInsert", "secondaryColor")
		assert.NoError(t, err, "defaults are only applied on insert")
	})

	mt.Run("lost insert race falls back to plain update", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 11000, Name: "DuplicateKey", Message: "E11000 duplicate key error"}),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: stored}),
		)
		repo := &BannerRepo{Collection: mt.Coll}

		b, err := repo.Upsert(context.Background(), models.BannerUpdate{Title: "Our Commitment", Description: "Empowering teams"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "Empowering teams", b.Description)

		mt.GetStartedEvent()
		retry := mt.GetStartedEvent()
		require.NotNil(t, retry)
		upsert, ok := retry.Command.Lookup("upsert").BooleanOK()
		assert.False(t, ok && upsert)
	})

	mt.Run("partial edit never creates", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		repo := &BannerRepo{Collection: mt.Coll}

		_, err := repo.Upsert(context.Background(), models.BannerUpdate{PrimaryColor: "#111111"}, nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestContentReposNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("school delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		repo := &SchoolRepo{Collection: mt.Coll}
		_, err := repo.Delete(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	mt.Run("champion get", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))
		repo := &ChampionRepo{Collection: mt.Coll}
		_, err := repo.Get(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	mt.Run("fll update returns the new document", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id}, {Key: "title", Value: "FIRST LEGO League"}, {Key: "logo", Value: "/getInvolved/fll-logo.jpeg"},
		}}))
		repo := &FLLRepo{Collection: mt.Coll}
		title := "FIRST LEGO League"
		f, err := repo.Update(context.Background(), id, models.FLLPatch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, id, f.ID)
	})
}

func TestAdminRepoSaveHashes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := &AdminRepo{Collection: mt.Coll}

		a := &models.Admin{Email: " Admin@Example.com ", Password: "hunter2"}
		require.NoError(t, repo.Save(context.Background(), a))
		assert.Equal(t, "admin@example.com", a.Email)
		assert.NotEqual(t, "hunter2", a.Password)
		assert.True(t, a.CheckPassword("hunter2"))
	})

	mt.Run("update of a vanished admin", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		repo := &AdminRepo{Collection: mt.Coll}

		a := &models.Admin{ID: primitive.NewObjectID(), Email: "admin@example.com", Password: "new-secret"}
		assert.ErrorIs(t, repo.Save(context.Background(), a), ErrNotFound)
	})
}
