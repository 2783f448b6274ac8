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

const candidateCollectionName = "candidates"

// mongoCandidateRepository implements repository.CandidateRepository.
type mongoCandidateRepository struct {
	collection *mongo.Collection
}

// NewMongoCandidateRepository creates a new instance of mongoCandidateRepository.
func NewMongoCandidateRepository(db *mongo.Database) repository.CandidateRepository {
	return &mongoCandidateRepository{
		collection: db.Collection(candidateCollectionName),
	}
}

// Create inserts a new candidate.
func (r *mongoCandidateRepository) Create(ctx context.Context, candidate *domain.Candidate) (primitive.ObjectID, error) {
	if candidate.CohortID == primitive.NilObjectID || candidate.GencID == "" {
		return primitive.NilObjectID, errors.New("candidate cohort ID and genc ID are required")
	}

	candidate.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	candidate.CreatedAt = now
	candidate.UpdatedAt = now
	if candidate.Status == "" {
		candidate.Status = domain.CandidateActive
	}

	result, err := r.collection.InsertOne(ctx, candidate)
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

// GetByID retrieves a candidate by ID.
func (r *mongoCandidateRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Candidate, error) {
	var candidate domain.Candidate
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&candidate)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &candidate, nil
}

// GetByCohortID retrieves a cohort's roster sorted by genc ID.
func (r *mongoCandidateRepository) GetByCohortID(ctx context.Context, cohortID primitive.ObjectID) ([]domain.Candidate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "gencId", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"cohortId": cohortID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var candidates []domain.Candidate
	if err = cursor.All(ctx, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// UpdateStatus transitions a candidate's lifecycle status.
func (r *mongoCandidateRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.CandidateStatus) error {
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureCandidateIndexes creates necessary indexes for the candidates collection.
func EnsureCandidateIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "cohortId", Value: 1}, {Key: "gencId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
