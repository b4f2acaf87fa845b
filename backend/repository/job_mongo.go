package repository

import (
	"context"
	"errors"
	"log"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"cogniverse/backend/models"
)

type jobMongoRepository struct {
	db *mongo.Database
}

// NewJobMongoRepository creates the jobs repository and ensures the TTL
// index on expiresAt. Expired jobs are purged by the store's own reaper;
// request code never assumes an expired document is still present.
func NewJobMongoRepository(ctx context.Context, logger *log.Logger, db *mongo.Database) JobRepository {
	_, err := db.Collection(jobCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		logger.Fatalf("failed to create job indexes: %v", err)
	}

	return &jobMongoRepository{db: db}
}

func (r *jobMongoRepository) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	job.CreatedAt = time.Now()
	if job.Applications == nil {
		job.Applications = []models.Application{}
	}
	if job.Salary.Currency == "" {
		job.Salary.Currency = "USD"
	}

	result, err := r.db.Collection(jobCollection).InsertOne(ctx, job)
	if err != nil {
		return nil, err
	}

	objectID, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}
	job.ID = objectID

	return job, nil
}

func (r *jobMongoRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var job models.Job
	err = r.db.Collection(jobCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &job, nil
}

func (r *jobMongoRepository) GetManyByIDs(ctx context.Context, ids []bson.ObjectID) ([]*models.Job, error) {
	if len(ids) == 0 {
		return []*models.Job{}, nil
	}

	cursor, err := r.db.Collection(jobCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var jobs []*models.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *jobMongoRepository) List(ctx context.Context, params ListJobsParams) ([]*models.Job, int64, error) {
	filter := bson.M{}
	if params.Category != "" {
		filter["category"] = params.Category
	}
	if params.Type != "" {
		filter["type"] = params.Type
	}
	if params.Experience != "" {
		filter["experience"] = params.Experience
	}
	if params.Search != "" {
		pattern := regexp.QuoteMeta(params.Search)
		filter["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"company": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}

	collection := r.db.Collection(jobCollection)

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((params.Page - 1) * params.Limit)).
		SetLimit(int64(params.Limit))

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	jobs := []*models.Job{}
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// AddApplication appends an application only when the user has not applied
// yet; the $ne guard keeps the at-most-once check inside a single update.
func (r *jobMongoRepository) AddApplication(ctx context.Context, jobID string, app models.Application) error {
	objectID, err := bson.ObjectIDFromHex(jobID)
	if err != nil {
		return ErrNotFound
	}

	result, err := r.db.Collection(jobCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID, "applications.user": bson.M{"$ne": app.User}},
		bson.M{"$push": bson.M{"applications": app}},
	)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		count, err := r.db.Collection(jobCollection).CountDocuments(ctx, bson.M{"_id": objectID})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrDuplicate
	}

	return nil
}
