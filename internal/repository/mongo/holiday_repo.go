package mongo

import (
	"context"
	"errors"

	"acadex/academy-ops/internal/domain"
	"acadex/academy-ops/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const holidayCollectionName = "holidays"

// mongoHolidayRepository implements repository.HolidayRepository.
type mongoHolidayRepository struct {
	collection *mongo.Collection
}

// NewMongoHolidayRepository creates a new instance of mongoHolidayRepository.
func NewMongoHolidayRepository(db *mongo.Database) repository.HolidayRepository {
	return &mongoHolidayRepository{
		collection: db.Collection(holidayCollectionName),
	}
}

// Create registers a holiday date for a location.
func (r *mongoHolidayRepository) Create(ctx context.Context, holiday *domain.Holiday) (primitive.ObjectID, error) {
	if holiday.Location == "" || holiday.Date == "" {
		return primitive.NilObjectID, errors.New("holiday location and date are required")
	}

	holiday.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, holiday)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByLocation retrieves every holiday registered for a location.
func (r *mongoHolidayRepository) GetByLocation(ctx context.Context, location string) ([]domain.Holiday, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"location": location}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var holidays []domain.Holiday
	if err = cursor.All(ctx, &holidays); err != nil {
		return nil, err
	}
	return holidays, nil
}

// EnsureHolidayIndexes creates necessary indexes for the holidays collection.
func EnsureHolidayIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "location", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
