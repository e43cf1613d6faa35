package serviceRepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"shoecare/database"
	"shoecare/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zaptest"
)

// mongoTestRepo connects to MONGO_TEST_URI and returns a repository bound to a throwaway database.
func mongoTestRepo(t *testing.T) *MongoServiceRepo {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := database.Connect(ctx, uri)
	require.NoError(t, err)

	db := client.Database("shoecare_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return NewMongoServiceRepo(db, zaptest.NewLogger(t))
}

func TestMongoRepoReplaceCycle(t *testing.T) {
	repo := mongoTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.EnsureSchema(ctx))

	_, err := repo.InsertMany(ctx, []models.ServiceRecord{sample("Legacy")})
	require.NoError(t, err)

	deleted, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, err = repo.InsertMany(ctx, []models.ServiceRecord{sample("First"), sample("Second")})
	require.NoError(t, err)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "First", all[0].Title)
	assert.Equal(t, "Second", all[1].Title)
	assert.Equal(t, models.DefaultPopularCount, all[0].PopularCount)
}

func TestMongoRepoSchemaRejectsOutOfRangeRating(t *testing.T) {
	repo := mongoTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.EnsureSchema(ctx))

	// Bypass client-side validation to exercise the collection validator.
	doc := sample("Raw")
	doc.ApplyDefaults(time.Now())
	doc.Rating = 9
	_, err := repo.coll.InsertOne(ctx, doc)
	assert.Error(t, err)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMongoRepoEnsureSchemaTwice(t *testing.T) {
	repo := mongoTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.EnsureSchema(ctx))

	again := NewMongoServiceRepo(repo.db, zaptest.NewLogger(t))
	require.NoError(t, again.EnsureSchema(ctx))

	n, err := again.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMongoRepoReplacesDocumentsWithoutID(t *testing.T) {
	repo := mongoTestRepo(t)
	ctx := context.Background()

	// Documents written by other tools carry no id field.
	_, err := repo.coll.InsertMany(ctx, []interface{}{
		bson.M{"title": "Legacy A", "price": "$1"},
		bson.M{"title": "Legacy B", "price": "$2"},
	})
	require.NoError(t, err)

	// The id index tolerates them even before the clear.
	require.NoError(t, repo.EnsureSchema(ctx))

	_, err = repo.DeleteAll(ctx)
	require.NoError(t, err)
	_, err = repo.InsertMany(ctx, []models.ServiceRecord{sample("First"), sample("Second")})
	require.NoError(t, err)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "First", all[0].Title)
}

func TestCommandCode(t *testing.T) {
	assert.EqualValues(t, unauthorized, commandCode(mongo.CommandError{Code: 13, Name: "Unauthorized"}))
	assert.EqualValues(t, namespaceExists, commandCode(fmt.Errorf("wrapped: %w", mongo.CommandError{Code: 48})))
	assert.Zero(t, commandCode(errors.New("network down")))
}
