package serviceRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shoecare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Server error codes.
const (
	unauthorized    = 13
	namespaceExists = 48
)

// serviceSchema mirrors the record constraints on the server so writes from other tools are held to them too.
var serviceSchema = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"id", "title", "description", "backgroundImageUrl", "icon"},
		"properties": bson.M{
			"id":                 bson.M{"bsonType": "string"},
			"title":              bson.M{"bsonType": "string", "minLength": 1},
			"description":        bson.M{"bsonType": "string", "minLength": 1},
			"price":              bson.M{"bsonType": "string"},
			"turnaround":         bson.M{"bsonType": "string"},
			"popularCount":       bson.M{"bsonType": "string"},
			"backgroundImageUrl": bson.M{"bsonType": "string", "minLength": 1},
			"rating":             bson.M{"bsonType": bson.A{"double", "int", "long"}, "minimum": 0, "maximum": 5},
			"features":           bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
			"icon":               bson.M{"bsonType": "string", "minLength": 1},
			"isActive":           bson.M{"bsonType": "bool"},
			"createdAt":          bson.M{"bsonType": "date"},
			"updatedAt":          bson.M{"bsonType": "date"},
		},
	},
}

var _ ServiceRepository = (*MongoServiceRepo)(nil)

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	db     *mongo.Database
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewMongoServiceRepo binds the repository to db. It issues no commands; EnsureSchema does the collection setup.
func NewMongoServiceRepo(db *mongo.Database, logger *zap.Logger) *MongoServiceRepo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MongoServiceRepo{
		db:     db,
		coll:   db.Collection(CollectionName),
		logger: logger,
	}
}

// EnsureSchema gives the collection its validator and indexes.
func (r *MongoServiceRepo) EnsureSchema(ctx context.Context) error {
	if err := r.ensureValidator(ctx); err != nil {
		return err
	}
	return r.ensureIndexes(ctx)
}

func (r *MongoServiceRepo) ensureValidator(ctx context.Context) error {
	opts := options.CreateCollection().
		SetValidator(serviceSchema).
		SetValidationLevel("strict").
		SetValidationAction("error")

	err := r.db.CreateCollection(ctx, CollectionName, opts)
	if err == nil {
		return nil
	}
	if commandCode(err) != namespaceExists {
		return fmt.Errorf("failed to create %s collection: %w", CollectionName, err)
	}

	cmd := bson.D{
		{Key: "collMod", Value: CollectionName},
		{Key: "validator", Value: serviceSchema},
		{Key: "validationLevel", Value: "strict"},
		{Key: "validationAction", Value: "error"},
	}
	if err := r.db.RunCommand(ctx, cmd).Err(); err != nil {
		// collMod needs dbAdmin; a readWrite user keeps whatever validator the collection already has.
		if commandCode(err) == unauthorized {
			r.logger.Warn("Skipping validator update, not authorized for collMod",
				zap.String("collection", CollectionName), zap.Error(err))
			return nil
		}
		return fmt.Errorf("failed to update %s validator: %w", CollectionName, err)
	}
	return nil
}

// ensureIndexes creates indexes for fields the read API filters on.
// The id index only covers documents that have an id, so foreign documents never block it.
func (r *MongoServiceRepo) ensureIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "id", Value: 1}},
			Options: options.Index().
				SetName("id_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"id": bson.M{"$exists": true}}),
		},
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func commandCode(err error) int32 {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code
	}
	return 0
}

// DeleteAll removes every service document and returns how many were deleted.
func (r *MongoServiceRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to clear services: %w", err)
	}
	return res.DeletedCount, nil
}

// InsertMany validates the batch and writes it with a single ordered insert.
func (r *MongoServiceRepo) InsertMany(ctx context.Context, records []models.ServiceRecord) ([]models.ServiceRecord, error) {
	prepared, err := prepareBatch(records, time.Now().UTC().Truncate(time.Millisecond))
	if err != nil {
		return nil, err
	}
	if len(prepared) == 0 {
		return prepared, nil
	}

	docs := make([]interface{}, len(prepared))
	for i := range prepared {
		docs[i] = prepared[i]
	}
	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return nil, fmt.Errorf("failed to insert services: %w", err)
	}
	return prepared, nil
}

// GetAll returns every service in insertion order.
func (r *MongoServiceRepo) GetAll(ctx context.Context) ([]models.ServiceRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.ServiceRecord
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

// Count returns the number of stored services.
func (r *MongoServiceRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}
	return n, nil
}
