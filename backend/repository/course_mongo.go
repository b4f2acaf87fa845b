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

type courseMongoRepository struct {
	db *mongo.Database
}

func NewCourseMongoRepository(ctx context.Context, logger *log.Logger, db *mongo.Database) CourseRepository {
	_, err := db.Collection(courseCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		logger.Fatalf("failed to create course indexes: %v", err)
	}

	return &courseMongoRepository{db: db}
}

func (r *courseMongoRepository) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	course.CreatedAt = time.Now()
	if course.Curriculum == nil {
		course.Curriculum = []models.CurriculumWeek{}
	}

	result, err := r.db.Collection(courseCollection).InsertOne(ctx, course)
	if err != nil {
		return nil, err
	}

	objectID, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}
	course.ID = objectID

	return course, nil
}

func (r *courseMongoRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var course models.Course
	err = r.db.Collection(courseCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&course)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &course, nil
}

func (r *courseMongoRepository) GetManyByIDs(ctx context.Context, ids []bson.ObjectID) ([]*models.Course, error) {
	if len(ids) == 0 {
		return []*models.Course{}, nil
	}

	cursor, err := r.db.Collection(courseCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var courses []*models.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}

	return courses, nil
}

// List returns one page of courses newest-first, plus the total count of
// documents matching the filter.
func (r *courseMongoRepository) List(ctx context.Context, params ListCoursesParams) ([]*models.Course, int64, error) {
	filter := bson.M{}
	if params.Category != "" {
		filter["category"] = params.Category
	}
	if params.Level != "" {
		filter["level"] = params.Level
	}
	if params.Search != "" {
		pattern := regexp.QuoteMeta(params.Search)
		filter["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}

	collection := r.db.Collection(courseCollection)

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

	courses := []*models.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

func (r *courseMongoRepository) Featured(ctx context.Context, limit int) ([]*models.Course, error) {
	cursor, err := r.db.Collection(courseCollection).Find(
		ctx,
		bson.M{"featured": true},
		options.Find().SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	courses := []*models.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseMongoRepository) IncrementEnrolled(ctx context.Context, id string, delta int) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := r.db.Collection(courseCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$inc": bson.M{"studentsEnrolled": delta}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}
