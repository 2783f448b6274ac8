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

const cohortCollectionName = "cohorts"

// mongoCohortRepository implements repository.CohortRepository using MongoDB.
type mongoCohortRepository struct {
	collection *mongo.Collection
}

// NewMongoCohortRepository creates a new instance of mongoCohortRepository.
func NewMongoCohortRepository(db *mongo.Database) repository.CohortRepository {
	return &mongoCohortRepository{
		collection: db.Collection(cohortCollectionName),
	}
}

// Create inserts a new cohort into the database.
func (r *mongoCohortRepository) Create(ctx context.Context, cohort *domain.Cohort) (primitive.ObjectID, error) {
	if cohort.Code == "" {
		return primitive.NilObjectID, errors.New("cohort code is required")
	}

	cohort.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	cohort.CreatedAt = now
	cohort.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, cohort)
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

// GetByID retrieves a cohort by its MongoDB ObjectID.
func (r *mongoCohortRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Cohort, error) {
	var cohort domain.Cohort
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cohort)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &cohort, nil
}

// GetAll retrieves every cohort, newest start date first.
func (r *mongoCohortRepository) GetAll(ctx context.Context) ([]domain.Cohort, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cohorts []domain.Cohort
	if err = cursor.All(ctx, &cohorts); err != nil {
		return nil, err
	}
	return cohorts, nil
}

// GetByCoachID retrieves the cohorts owned by one coach.
func (r *mongoCohortRepository) GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Cohort, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"coachId": coachID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cohorts []domain.Cohort
	if err = cursor.All(ctx, &cohorts); err != nil {
		return nil, err
	}
	return cohorts, nil
}

// Update replaces the mutable fields of an existing cohort.
func (r *mongoCohortRepository) Update(ctx context.Context, cohort *domain.Cohort) error {
	cohort.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"code":                cohort.Code,
		"bu":                  cohort.BU,
		"skill":               cohort.Skill,
		"activeGencCount":     cohort.ActiveGencCount,
		"trainingLocation":    cohort.TrainingLocation,
		"coachId":             cohort.CoachID,
		"primaryTrainerId":    cohort.PrimaryTrainerID,
		"behavioralTrainerId": cohort.BehavioralTrainerID,
		"primaryMentorId":     cohort.PrimaryMentorID,
		"buddyMentorId":       cohort.BuddyMentorID,
		"startDate":           cohort.StartDate,
		"endDate":             cohort.EndDate,
		"updatedAt":           cohort.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": cohort.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a cohort.
func (r *mongoCohortRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureCohortIndexes creates necessary indexes for the cohorts collection.
func EnsureCohortIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "coachId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
