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

const summaryCollectionName = "weekly_effort_summaries"

// mongoWeeklySummaryRepository implements repository.WeeklySummaryRepository.
// The unique (cohortId, weekStartDate) index is the server-side arbiter for
// the at-most-one-summary-per-week invariant; concurrent submissions race on
// it rather than on any client-side state.
type mongoWeeklySummaryRepository struct {
	collection *mongo.Collection
}

// NewMongoWeeklySummaryRepository creates a new instance of mongoWeeklySummaryRepository.
func NewMongoWeeklySummaryRepository(db *mongo.Database) repository.WeeklySummaryRepository {
	return &mongoWeeklySummaryRepository{
		collection: db.Collection(summaryCollectionName),
	}
}

// Create inserts a weekly summary. Returns repository.ErrDuplicate when a
// summary already exists for the same cohort and week start date.
func (r *mongoWeeklySummaryRepository) Create(ctx context.Context, summary *domain.WeeklySummary) (primitive.ObjectID, error) {
	if summary.CohortID == primitive.NilObjectID || summary.WeekStartDate == "" {
		return primitive.NilObjectID, errors.New("summary cohort ID and week start date are required")
	}

	summary.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	summary.CreatedAt = now
	if summary.SummaryDate.IsZero() {
		summary.SummaryDate = now
	}

	result, err := r.collection.InsertOne(ctx, summary)
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

// GetByCohortID retrieves a cohort's summaries, newest week first.
func (r *mongoWeeklySummaryRepository) GetByCohortID(ctx context.Context, cohortID primitive.ObjectID) ([]domain.WeeklySummary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "weekStartDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"cohortId": cohortID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summaries []domain.WeeklySummary
	if err = cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// GetByCohortAndWeekStart retrieves the summary locking one week, if any.
func (r *mongoWeeklySummaryRepository) GetByCohortAndWeekStart(ctx context.Context, cohortID primitive.ObjectID, weekStartDate string) (*domain.WeeklySummary, error) {
	filter := bson.M{"cohortId": cohortID, "weekStartDate": weekStartDate}

	var summary domain.WeeklySummary
	err := r.collection.FindOne(ctx, filter).Decode(&summary)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &summary, nil
}

// EnsureWeeklySummaryIndexes creates necessary indexes for the summaries
// collection. The unique compound index enforces at most one summary per
// (cohort, week).
func EnsureWeeklySummaryIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "cohortId", Value: 1}, {Key: "weekStartDate", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
