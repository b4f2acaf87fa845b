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

type resumeMongoRepository struct {
	db *mongo.Database
}

// NewResumeMongoRepository creates the resumes repository and ensures the
// unique user index, which enforces the one-resume-per-user invariant even
// under concurrent first saves.
func NewResumeMongoRepository(ctx context.Context, logger *log.Logger, db *mongo.Database) ResumeRepository {
	_, err := db.Collection(resumeCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		logger.Fatalf("failed to create resume indexes: %v", err)
	}

	return &resumeMongoRepository{db: db}
}

func (r *resumeMongoRepository) GetByUser(ctx context.Context, userID bson.ObjectID) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.Collection(resumeCollection).FindOne(ctx, bson.M{"user": userID}).Decode(&resume)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &resume, nil
}

// Upsert creates the resume on first save and replaces the provided fields
// afterwards. A single upsert keyed on the user keeps concurrent saves
// last-write-wins without a read-modify-write window.
func (r *resumeMongoRepository) Upsert(ctx context.Context, resume *models.Resume) (*models.Resume, error) {
	resume.LastUpdated = time.Now()
	if resume.Template == "" {
		resume.Template = "modern"
	}

	set := bson.M{
		"personalInfo":   resume.PersonalInfo,
		"summary":        resume.Summary,
		"experience":     resume.Experience,
		"education":      resume.Education,
		"skills":         resume.Skills,
		"projects":       resume.Projects,
		"certifications": resume.Certifications,
		"template":       resume.Template,
		"lastUpdated":    resume.LastUpdated,
	}

	var updated models.Resume
	err := r.db.Collection(resumeCollection).FindOneAndUpdate(
		ctx,
		bson.M{"user": resume.User},
		bson.M{"$set": set, "$setOnInsert": bson.M{"user": resume.User}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}
