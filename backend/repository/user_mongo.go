package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"cogniverse/backend/models"
)

type userMongoRepository struct {
	db *mongo.Database
}

// NewUserMongoRepository creates the users repository and ensures the
// unique email index exists. Duplicate registrations are rejected by the
// store, not by a check-then-act read.
func NewUserMongoRepository(ctx context.Context, logger *log.Logger, db *mongo.Database) UserRepository {
	_, err := db.Collection(userCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		logger.Fatalf("failed to create user indexes: %v", err)
	}

	return &userMongoRepository{db: db}
}

func (r *userMongoRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.CreatedAt = time.Now()
	if user.EnrolledCourses == nil {
		user.EnrolledCourses = []models.Enrollment{}
	}
	if user.SavedJobs == nil {
		user.SavedJobs = []bson.ObjectID{}
	}

	result, err := r.db.Collection(userCollection).InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	objectID, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}
	user.ID = objectID

	return user, nil
}

func (r *userMongoRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var user models.User
	err = r.db.Collection(userCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.Collection(userCollection).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) GetManyByIDs(ctx context.Context, ids []bson.ObjectID) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}

	cursor, err := r.db.Collection(userCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userMongoRepository) UpdateProfile(
	ctx context.Context,
	id string,
	params UpdateProfileParams,
) (*models.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.Password != nil {
		updateMap["password"] = *params.Password
	}
	if params.Bio != nil {
		updateMap["profile.bio"] = *params.Bio
	}
	if params.Skills != nil {
		updateMap["profile.skills"] = *params.Skills
	}
	if params.Education != nil {
		updateMap["profile.education"] = *params.Education
	}
	if params.Experience != nil {
		updateMap["profile.experience"] = *params.Experience
	}

	if len(updateMap) == 0 {
		return r.GetByID(ctx, id)
	}

	var user models.User
	err = r.db.Collection(userCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

// AddEnrollment appends an enrollment record only when the course is not
// already present. The $ne guard makes the at-most-once check atomic.
func (r *userMongoRepository) AddEnrollment(ctx context.Context, userID string, courseID bson.ObjectID) error {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}

	result, err := r.db.Collection(userCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID, "enrolledCourses.course": bson.M{"$ne": courseID}},
		bson.M{"$push": bson.M{"enrolledCourses": models.Enrollment{
			Course:    courseID,
			Progress:  0,
			Completed: false,
		}}},
	)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		exists, err := r.exists(ctx, objectID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrDuplicate
	}

	return nil
}

// RemoveEnrollment is the compensating update for a failed course counter
// increment.
func (r *userMongoRepository) RemoveEnrollment(ctx context.Context, userID string, courseID bson.ObjectID) error {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}

	_, err = r.db.Collection(userCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$pull": bson.M{"enrolledCourses": bson.M{"course": courseID}}},
	)
	return err
}

// SaveJob records a saved job at most once; $addToSet is a no-op when the
// job is already saved, which surfaces as ErrDuplicate.
func (r *userMongoRepository) SaveJob(ctx context.Context, userID string, jobID bson.ObjectID) error {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}

	result, err := r.db.Collection(userCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$addToSet": bson.M{"savedJobs": jobID}},
	)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	if result.ModifiedCount == 0 {
		return ErrDuplicate
	}

	return nil
}

func (r *userMongoRepository) exists(ctx context.Context, id bson.ObjectID) (bool, error) {
	count, err := r.db.Collection(userCollection).CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
