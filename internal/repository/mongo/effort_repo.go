package mongo

import (
	"context"
	"errors"
	"time"

	"acadex/academy-ops/internal/domain"
	"acadex/academy-ops/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const effortCollectionName = "stakeholder_efforts"

// mongoEffortRepository implements repository.EffortRepository. Effort
// records are append-only: there is no update or delete path.
type mongoEffortRepository struct {
	collection *mongo.Collection
}

// NewMongoEffortRepository creates a new instance of mongoEffortRepository.
func NewMongoEffortRepository(db *mongo.Database) repository.EffortRepository {
	return &mongoEffortRepository{
		collection: db.Collection(effortCollectionName),
	}
}

// Create inserts one effort record.
func (r *mongoEffortRepository) Create(ctx context.Context, record *domain.EffortRecord) (primitive.ObjectID, error) {
	if record.CohortID == primitive.NilObjectID || record.Role == "" || record.EffortDate == "" {
		return primitive.NilObjectID, errors.New("effort cohort ID, role, and date are required")
	}

	record.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// CreateMany inserts a batch of effort records, as produced by a weekly
// submission.
func (r *mongoEffortRepository) CreateMany(ctx context.Context, records []domain.EffortRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(records))
	for i := range records {
		records[i].ID = primitive.NewObjectID()
		records[i].CreatedAt = now
		records[i].UpdatedAt = now
		docs = append(docs, records[i])
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// GetByCohortID retrieves every effort record of a cohort.
func (r *mongoEffortRepository) GetByCohortID(ctx context.Context, cohortID primitive.ObjectID) ([]domain.EffortRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "effortDate", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"cohortId": cohortID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.EffortRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetByCohortAndDateRange retrieves the records of one cohort between two
// ISO dates inclusive. Lexicographic comparison is correct for ISO dates.
func (r *mongoEffortRepository) GetByCohortAndDateRange(ctx context.Context, cohortID primitive.ObjectID, startDate, endDate string) ([]domain.EffortRecord, error) {
	filter := bson.M{
		"cohortId":   cohortID,
		"effortDate": bson.M{"$gte": startDate, "$lte": endDate},
	}

	// The _id tiebreaker keeps ordering deterministic when a batch insert
	// stamps several records with the same createdAt.
	opts := options.Find().SetSort(bson.D{{Key: "effortDate", Value: 1}, {Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.EffortRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// EnsureEffortIndexes creates necessary indexes for the efforts collection.
func EnsureEffortIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "cohortId", Value: 1}, {Key: "effortDate", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "stakeholderId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
